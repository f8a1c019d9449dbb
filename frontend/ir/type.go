package ir

import (
	"fmt"
	"strconv"
	"strings"
)

// Type is a language-agnostic algebraic type description.
//
// The set of implementations is closed: Void, Unit, Sum, Product, BoundVar, Recursive and Named
type Type interface {
	// ShowIn renders the type for debugging, naming bound variables after the bindings of env
	// when they can be resolved
	ShowIn(env Env, outerPrecedence uint16) string
	typeNode()
}

var (
	_ Type = (*Void)(nil)
	_ Type = (*Unit)(nil)
	_ Type = (*Sum)(nil)
	_ Type = (*Product)(nil)
	_ Type = (*BoundVar)(nil)
	_ Type = (*Recursive)(nil)
	_ Type = (*Named)(nil)
)

func TypeString(t Type) string {
	return t.ShowIn(EmptyEnv(), 0)
}

// Void is the uninhabited type
type Void struct{}

func (*Void) typeNode()                  {}
func (*Void) ShowIn(Env, uint16) string { return "void" }

// Unit is the type with exactly one value
type Unit struct{}

func (*Unit) typeNode()                  {}
func (*Unit) ShowIn(Env, uint16) string { return "unit" }

// Sum is an n-ary tagged union of at least two types
type Sum struct {
	Types []Type
}

// NewSum returns a Sum of at least two types
func NewSum(fst, snd Type, rest ...Type) *Sum {
	return &Sum{Types: append([]Type{fst, snd}, rest...)}
}

func (*Sum) typeNode() {}

func (t *Sum) ShowIn(env Env, outerPrecedence uint16) string {
	const thisPrecedence uint16 = 20
	return showJoined(env, t.Types, " + ", thisPrecedence, outerPrecedence)
}

// Product is an n-ary tuple of at least two types
type Product struct {
	Types []Type
}

// NewProduct returns a Product of at least two types
func NewProduct(fst, snd Type, rest ...Type) *Product {
	return &Product{Types: append([]Type{fst, snd}, rest...)}
}

func (*Product) typeNode() {}

func (t *Product) ShowIn(env Env, outerPrecedence uint16) string {
	const thisPrecedence uint16 = 30
	return showJoined(env, t.Types, " * ", thisPrecedence, outerPrecedence)
}

func showJoined(env Env, ts []Type, sep string, thisPrecedence, outerPrecedence uint16) string {
	parts := make([]string, len(ts))
	for i, elem := range ts {
		parts[i] = elem.ShowIn(env, thisPrecedence+1)
	}
	joined := strings.Join(parts, sep)
	if outerPrecedence > thisPrecedence {
		return "(" + joined + ")"
	}
	return joined
}

// BoundVar refers to a binding of the enclosing Env by position, where 0 is the most recently bound
type BoundVar struct {
	Index int
}

func (*BoundVar) typeNode() {}

func (t *BoundVar) ShowIn(env Env, _ uint16) string {
	if t.Index < 0 || t.Index >= env.Len() {
		return "#" + strconv.Itoa(t.Index)
	}
	switch b := env.Lookup(t.Index).(type) {
	case FreeVariable:
		return "'" + b.Name
	case EnclosingDecl:
		return b.Decl.Name
	}
	return "#" + strconv.Itoa(t.Index)
}

// Constructor is a named alternative of a Recursive type
type Constructor struct {
	Name string
	Type Type
}

// Recursive is a named least-fixpoint type. Inside the constructor bodies,
// BoundVar 0 refers to the Recursive type itself and every other index is shifted by one
type Recursive struct {
	Name         string
	Constructors []Constructor
}

func (*Recursive) typeNode() {}

func (t *Recursive) ShowIn(env Env, _ uint16) string {
	inner := env.Prepend(EnclosingDecl{Decl: Declaration{Name: t.Name}})
	sb := strings.Builder{}
	sb.WriteString("mu ")
	sb.WriteString(t.Name)
	sb.WriteString(". [")
	for i, ctor := range t.Constructors {
		if i > 0 {
			sb.WriteString(" | ")
		}
		sb.WriteString(ctor.Name)
		sb.WriteString(": ")
		sb.WriteString(ctor.Type.ShowIn(inner, 0))
	}
	sb.WriteString("]")
	return sb.String()
}

// Named transparently binds Name to Body. It does not extend the Env of Body
type Named struct {
	Name string
	Body Type
}

func (*Named) typeNode() {}

func (t *Named) ShowIn(env Env, _ uint16) string {
	return fmt.Sprintf("(%s = %s)", t.Name, t.Body.ShowIn(env, 0))
}
