// Package reason renders backend declarations as ReasonML type declarations
package reason

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/cottand/tydecl/backend"
	"github.com/cottand/tydecl/internal/log"
	"github.com/cottand/tydecl/internal/pretty"
	"github.com/cottand/tydecl/util"
	"github.com/hashicorp/go-set/v3"
)

const DefaultWidth = 80

// Renderer implements backend.Renderer for ReasonML
type Renderer struct {
	// Width is the column past which declarations are broken onto several lines
	Width int

	*slog.Logger
}

var _ backend.Renderer = (*Renderer)(nil)

func NewRenderer(width int) *Renderer {
	if width <= 0 {
		width = DefaultWidth
	}
	return &Renderer{
		Width:  width,
		Logger: log.Section("render").With("target", "reason"),
	}
}

// keywords cannot be used as lowercase identifiers in ReasonML
var keywords = set.From([]string{
	"and", "as", "assert", "begin", "class", "constraint", "do", "done", "downto",
	"else", "end", "esfun", "exception", "external", "false", "for", "fun", "function",
	"functor", "if", "in", "include", "inherit", "initializer", "lazy", "let", "module",
	"mutable", "new", "nonrec", "object", "of", "open", "or", "pri", "pub", "rec", "sig",
	"struct", "switch", "then", "to", "true", "try", "type", "val", "virtual", "when",
	"while", "with",
})

// lowerIdent is name as a lowercase identifier, with a trailing '_' if it is a keyword
func lowerIdent(name string) string {
	ident := util.Ident(name, false)
	if keywords.Contains(ident) {
		return ident + "_"
	}
	return ident
}

// TypeName is name as a ReasonML type constructor
func TypeName(name string) string { return lowerIdent(name) }

// VarName is name as a ReasonML type variable
func VarName(name string) string { return "'" + lowerIdent(name) }

// ConstructorName is name as a ReasonML variant constructor
func ConstructorName(name string) string { return util.Ident(name, true) }

func (r *Renderer) RenderType(t backend.TypeExpr) string {
	return pretty.Render(r.Width, typeDoc(t))
}

func (r *Renderer) RenderDecl(d backend.Decl) string {
	return pretty.Render(r.Width, declDoc(d))
}

// RenderUnit renders every declaration of u, separated by blank lines
func (r *Renderer) RenderUnit(u backend.Unit) (string, error) {
	decls := u.All()
	r.Debug("rendering unit", "declarations", len(decls))
	docs := slices.Collect(util.MapIter(slices.Values(decls), declDoc))
	return pretty.Render(r.Width, pretty.VCat(docs)) + "\n", nil
}

func typeDocs(ts []backend.TypeExpr) []pretty.Doc {
	return slices.Collect(util.MapIter(slices.Values(ts), typeDoc))
}

func typeDoc(t backend.TypeExpr) pretty.Doc {
	switch t := t.(type) {
	case backend.UnitExpr:
		return pretty.Text("unit")
	case backend.Var:
		return pretty.Text(VarName(t.Name))
	case backend.Tuple:
		return pretty.Parens(typeDocs(t.Elems))
	case backend.App:
		name := pretty.Text(TypeName(t.Name))
		if len(t.Args) == 0 {
			return name
		}
		return pretty.Concat(name, pretty.Parens(typeDocs(t.Args)))
	default:
		panic(fmt.Sprintf("reason: unexpected type expression %T", t))
	}
}

// head is the declared name applied to its parameters, after the type keyword
func head(name string, params []string) pretty.Doc {
	doc := pretty.Concat(pretty.Text("type "), pretty.Text(TypeName(name)))
	if len(params) == 0 {
		return doc
	}
	vars := make([]pretty.Doc, len(params))
	for i, param := range params {
		vars[i] = pretty.Text(VarName(param))
	}
	return pretty.Concat(doc, pretty.Parens(vars))
}

func declDoc(d backend.Decl) pretty.Doc {
	switch d := d.(type) {
	case backend.Alias:
		return pretty.Group(pretty.Concat(
			head(d.Decl.Name, d.Decl.Params),
			pretty.Text(" ="),
			pretty.Nest(2, pretty.Concat(pretty.Line(), typeDoc(d.Body))),
			pretty.Text(";"),
		))

	case backend.Variant:
		if len(d.Constructors) == 0 {
			return pretty.Concat(head(d.Decl.Name, d.Decl.Params), pretty.Text(";"))
		}
		ctors := make([]pretty.Doc, 0, 3*len(d.Constructors))
		for i, ctor := range d.Constructors {
			bar := pretty.Text("| ")
			if i == 0 {
				bar = pretty.FlatAlt(pretty.Empty, bar)
			}
			ctors = append(ctors, pretty.Line(), bar, constructorDoc(ctor))
		}
		return pretty.Group(pretty.Concat(
			head(d.Decl.Name, d.Decl.Params),
			pretty.Text(" ="),
			pretty.Nest(2, pretty.Concat(ctors...)),
			pretty.Text(";"),
		))

	default:
		panic(fmt.Sprintf("reason: unexpected declaration %T", d))
	}
}

func constructorDoc(ctor backend.VariantConstructor) pretty.Doc {
	name := pretty.Text(ConstructorName(ctor.Name))
	switch payload := ctor.Payload.(type) {
	case backend.UnitExpr:
		return name
	case backend.Tuple:
		return pretty.Concat(name, pretty.Parens(typeDocs(payload.Elems)))
	default:
		return pretty.Concat(name, pretty.Parens([]pretty.Doc{typeDoc(payload)}))
	}
}
