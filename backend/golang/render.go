// Package golang renders backend declarations as Go type declarations.
//
// A variant becomes a sealed interface with an unexported marker method,
// and each of its constructors a struct implementing it:
//
//	type Either[A, B any] interface {
//		isEither()
//	}
//
//	type EitherLeft[A, B any] struct {
//		Value A
//	}
//
//	func (EitherLeft[A, B]) isEither() {}
//
// Aliases with parameters are generic type aliases, which need Go 1.24 to compile
package golang

import (
	"bytes"
	"fmt"
	goast "go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"log/slog"
	"strings"

	"github.com/cottand/tydecl/backend"
	"github.com/cottand/tydecl/internal/log"
	"github.com/cottand/tydecl/util"
)

const DefaultPackage = "types"

const header = "// Code generated by tydecl. DO NOT EDIT.\n\n"

// Renderer implements backend.Renderer for Go
type Renderer struct {
	// Package is the name in the package clause of rendered files
	Package string

	*slog.Logger
}

var _ backend.Renderer = (*Renderer)(nil)

func NewRenderer(pkg string) *Renderer {
	if pkg == "" {
		pkg = DefaultPackage
	}
	return &Renderer{
		Package: pkg,
		Logger:  log.Section("render").With("target", "go"),
	}
}

// TypeName is name as an exported Go type name
func TypeName(name string) string { return util.Ident(name, true) }

// ConstructorName is the name of the struct for constructor ctor of variant
func ConstructorName(variant, ctor string) string {
	return TypeName(variant) + util.Ident(ctor, true)
}

func markerName(variant string) string { return "is" + TypeName(variant) }

// File returns the Go syntax tree for every declaration of u. Its nodes carry
// no positions, so RenderUnit is the way to print it
func (r *Renderer) File(u backend.Unit) *goast.File {
	var decls []goast.Decl
	for _, d := range u.All() {
		decls = append(decls, r.decl(d)...)
	}
	return &goast.File{
		Name:  goast.NewIdent(r.Package),
		Decls: decls,
	}
}

// RenderUnit returns the gofmt-ed source of File(u), with declarations separated by blank lines
func (r *Renderer) RenderUnit(u backend.Unit) (string, error) {
	file := r.File(u)
	r.Debug("rendering unit", "declarations", len(file.Decls), "package", r.Package)

	src := bytes.Buffer{}
	fmt.Fprintf(&src, "package %s\n", r.Package)
	for _, decl := range file.Decls {
		printed, err := printNode(token.NewFileSet(), decl)
		if err != nil {
			return "", fmt.Errorf("format go source: %w", err)
		}
		src.WriteByte('\n')
		src.Write(printed)
		src.WriteByte('\n')
	}

	fset := token.NewFileSet()
	positioned, err := parser.ParseFile(fset, r.Package+".go", src.Bytes(), 0)
	if err != nil {
		return "", fmt.Errorf("reparse go source: %w", err)
	}
	compactEmptyBraces(positioned)
	out, err := printNode(fset, positioned)
	if err != nil {
		return "", fmt.Errorf("format go source: %w", err)
	}
	return header + strings.TrimRight(string(out), "\n") + "\n", nil
}

// RenderType returns the gofmt-ed source of TypeExpr(t)
func RenderType(t backend.TypeExpr) (string, error) {
	src, err := printNode(token.NewFileSet(), TypeExpr(t))
	if err != nil {
		return "", err
	}
	fset := token.NewFileSet()
	positioned, err := parser.ParseExprFrom(fset, "", src, 0)
	if err != nil {
		return "", fmt.Errorf("reparse go type: %w", err)
	}
	compactEmptyBraces(positioned)
	out, err := printNode(fset, positioned)
	return string(out), err
}

func printNode(fset *token.FileSet, node goast.Node) ([]byte, error) {
	buf := bytes.Buffer{}
	if err := format.Node(&buf, fset, node); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// compactEmptyBraces moves the closing brace of every empty struct, interface
// and block onto the line of its opening brace, so that they print as {}
func compactEmptyBraces(node goast.Node) {
	goast.Inspect(node, func(n goast.Node) bool {
		switch n := n.(type) {
		case *goast.FieldList:
			if len(n.List) == 0 && n.Opening.IsValid() {
				n.Closing = n.Opening + 1
			}
		case *goast.BlockStmt:
			if len(n.List) == 0 && n.Lbrace.IsValid() {
				n.Rbrace = n.Lbrace + 1
			}
		}
		return true
	})
}

func (r *Renderer) decl(d backend.Decl) []goast.Decl {
	switch d := d.(type) {
	case backend.Alias:
		spec := &goast.TypeSpec{
			Name:       goast.NewIdent(TypeName(d.Decl.Name)),
			TypeParams: typeParams(d.Decl.Params),
			// any valid position makes the printer emit the '='
			Assign: token.Pos(1),
			Type:   TypeExpr(d.Body),
		}
		return []goast.Decl{typeDecl(spec)}

	case backend.Variant:
		name := d.Decl.Name
		iface := &goast.TypeSpec{
			Name:       goast.NewIdent(TypeName(name)),
			TypeParams: typeParams(d.Decl.Params),
			Type: &goast.InterfaceType{Methods: &goast.FieldList{List: []*goast.Field{{
				Names: []*goast.Ident{goast.NewIdent(markerName(name))},
				Type:  &goast.FuncType{Params: &goast.FieldList{}},
			}}}},
		}
		decls := []goast.Decl{typeDecl(iface)}
		for _, ctor := range d.Constructors {
			ctorName := ConstructorName(name, ctor.Name)
			decls = append(decls,
				typeDecl(&goast.TypeSpec{
					Name:       goast.NewIdent(ctorName),
					TypeParams: typeParams(d.Decl.Params),
					Type:       payloadStruct(ctor.Payload),
				}),
				&goast.FuncDecl{
					Recv: &goast.FieldList{List: []*goast.Field{{
						Type: applied(ctorName, backend.VarsOf(d.Decl.Params)),
					}}},
					Name: goast.NewIdent(markerName(name)),
					Type: &goast.FuncType{Params: &goast.FieldList{}},
					Body: &goast.BlockStmt{},
				},
			)
		}
		r.Debug("rendered variant", "name", name, "constructors", len(d.Constructors))
		return decls

	default:
		panic(fmt.Sprintf("golang: unexpected declaration %T", d))
	}
}

func typeDecl(spec *goast.TypeSpec) *goast.GenDecl {
	return &goast.GenDecl{Tok: token.TYPE, Specs: []goast.Spec{spec}}
}

// typeParams returns nil for a declaration without parameters
func typeParams(params []string) *goast.FieldList {
	if len(params) == 0 {
		return nil
	}
	names := make([]*goast.Ident, len(params))
	for i, param := range params {
		names[i] = goast.NewIdent(util.Ident(param, true))
	}
	return &goast.FieldList{List: []*goast.Field{{
		Names: names,
		Type:  goast.NewIdent("any"),
	}}}
}

func payloadStruct(payload backend.TypeExpr) *goast.StructType {
	switch p := payload.(type) {
	case backend.UnitExpr:
		return emptyStruct()
	case backend.Tuple:
		return tupleStruct(p)
	default:
		return &goast.StructType{Fields: &goast.FieldList{List: []*goast.Field{{
			Names: []*goast.Ident{goast.NewIdent("Value")},
			Type:  TypeExpr(p),
		}}}}
	}
}

func emptyStruct() *goast.StructType {
	return &goast.StructType{Fields: &goast.FieldList{}}
}

func tupleStruct(t backend.Tuple) *goast.StructType {
	fields := make([]*goast.Field, len(t.Elems))
	for i, elem := range t.Elems {
		fields[i] = &goast.Field{
			Names: []*goast.Ident{goast.NewIdent(fmt.Sprintf("F%d", i))},
			Type:  TypeExpr(elem),
		}
	}
	return &goast.StructType{Fields: &goast.FieldList{List: fields}}
}

func applied(name string, args []backend.TypeExpr) goast.Expr {
	x := goast.NewIdent(name)
	switch len(args) {
	case 0:
		return x
	case 1:
		return &goast.IndexExpr{X: x, Index: TypeExpr(args[0])}
	default:
		indices := make([]goast.Expr, len(args))
		for i, arg := range args {
			indices[i] = TypeExpr(arg)
		}
		return &goast.IndexListExpr{X: x, Indices: indices}
	}
}

// TypeExpr returns the Go type for t
func TypeExpr(t backend.TypeExpr) goast.Expr {
	switch t := t.(type) {
	case backend.UnitExpr:
		return emptyStruct()
	case backend.Tuple:
		return tupleStruct(t)
	case backend.Var:
		return goast.NewIdent(util.Ident(t.Name, true))
	case backend.App:
		return applied(TypeName(t.Name), t.Args)
	default:
		panic(fmt.Sprintf("golang: unexpected type expression %T", t))
	}
}
