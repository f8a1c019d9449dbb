package backend

import (
	"github.com/cottand/tydecl/frontend/ir"
)

// TypeExpr is a type expression of the target language
type TypeExpr interface {
	typeExpr()
}

var (
	_ TypeExpr = UnitExpr{}
	_ TypeExpr = Tuple{}
	_ TypeExpr = Var{}
	_ TypeExpr = App{}
)

// UnitExpr is the target's unit type
type UnitExpr struct{}

// Tuple holds at least two elements
type Tuple struct {
	Elems []TypeExpr
}

// Var is a type variable
type Var struct {
	Name string
}

// App is a named type applied to Args. Without Args it is a bare type name
type App struct {
	Name string
	Args []TypeExpr
}

func (UnitExpr) typeExpr() {}
func (Tuple) typeExpr()    {}
func (Var) typeExpr()      {}
func (App) typeExpr()      {}

// Decl is a declaration of the target language, either an Alias or a Variant
type Decl interface {
	Declaration() ir.Declaration
	decl()
}

var (
	_ Decl = Alias{}
	_ Decl = Variant{}
)

// Alias transparently names Body
type Alias struct {
	Decl ir.Declaration
	Body TypeExpr
}

// Variant is a tagged union. A Variant without Constructors is uninhabited
type Variant struct {
	Decl         ir.Declaration
	Constructors []VariantConstructor
}

type VariantConstructor struct {
	Name    string
	Payload TypeExpr
}

func (a Alias) Declaration() ir.Declaration   { return a.Decl }
func (v Variant) Declaration() ir.Declaration { return v.Decl }
func (Alias) decl()                           {}
func (Variant) decl()                         {}

// VarsOf returns a Var per name of params, or nil if there are none
func VarsOf(params []string) []TypeExpr {
	if len(params) == 0 {
		return nil
	}
	vars := make([]TypeExpr, len(params))
	for i, param := range params {
		vars[i] = Var{Name: param}
	}
	return vars
}

// Unit is everything needed to print a type: the declarations it depends on,
// in dependency order, and optionally a trailing alias naming the type itself
type Unit struct {
	Decls []Decl
	// Top may be nil
	Top *Alias
}

// All returns Decls followed by Top, if present
func (u Unit) All() []Decl {
	if u.Top == nil {
		return u.Decls
	}
	all := make([]Decl, 0, len(u.Decls)+1)
	all = append(all, u.Decls...)
	return append(all, *u.Top)
}

// Renderer turns a Unit into source text of some target language
type Renderer interface {
	RenderUnit(u Unit) (string, error)
}
