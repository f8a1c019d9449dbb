package backend

import (
	"fmt"
	"slices"

	"github.com/benbjohnson/immutable"
	"github.com/cottand/tydecl/frontend/ir"
	"github.com/cottand/tydecl/util"
)

var emptyNames = immutable.NewSet[string](immutable.NewHasher(""))

// ExtractState is the set of declaration names already emitted by an extraction.
// The zero ExtractState is empty and ready to use
type ExtractState struct {
	seen *immutable.Set[string]
}

func NewExtractState() ExtractState {
	return ExtractState{}
}

func (s ExtractState) names() immutable.Set[string] {
	if s.seen == nil {
		return emptyNames
	}
	return *s.seen
}

// Seen reports whether a declaration called name was already emitted
func (s ExtractState) Seen(name string) bool {
	return s.names().Has(name)
}

func (s ExtractState) Len() int {
	return s.names().Len()
}

func (s ExtractState) with(name string) ExtractState {
	next := s.names().Add(name)
	return ExtractState{seen: &next}
}

// Definitions returns every declaration t depends on under env, dependencies first
func (tp *Transpiler) Definitions(env ir.Env, t ir.Type) []Decl {
	decls, state := tp.ExtractDefinitions(env, t, NewExtractState())
	tp.Debug("extracted definitions", "type", ir.SlogType(env, t), "env", ir.SlogEnv(env), "count", len(decls), "names", state.Len())
	return slices.Collect(util.Reverse(decls))
}

// ExtractDefinitions walks t depth-first and returns the declarations it depends on
// that are not in state yet, each declaration before its own dependencies,
// along with state extended by their names.
//
// A name is added to state as soon as its declaration is emitted and before its body is
// walked, so types referring to each other are only declared once and the walk terminates
func (tp *Transpiler) ExtractDefinitions(env ir.Env, t ir.Type, state ExtractState) ([]Decl, ExtractState) {
	switch e := t.(type) {
	case *ir.Void:
		return tp.ExtractDefinitions(ir.EmptyEnv(), ir.VoidType, state)

	case *ir.Unit, *ir.BoundVar:
		return nil, state

	case *ir.Product:
		return tp.extractAll(env, e.Types, state)

	case *ir.Sum:
		var decls, helper []Decl
		decls, state = tp.extractAll(env, e.Types, state)
		helper, state = tp.ExtractDefinitions(ir.EitherEnv, ir.EitherType, state)
		return append(decls, helper...), state

	case *ir.Recursive:
		if state.Seen(e.Name) {
			return nil, state
		}
		decl := ir.Declaration{Name: e.Name, Params: tp.freeVariables(env, t)}
		inner := env.Prepend(ir.EnclosingDecl{Decl: decl})

		variant := Variant{Decl: decl, Constructors: make([]VariantConstructor, len(e.Constructors))}
		for i, ctor := range e.Constructors {
			variant.Constructors[i] = VariantConstructor{Name: ctor.Name, Payload: tp.TranspileType(inner, ctor.Type)}
		}
		tp.Debug("emitting variant", "name", e.Name, "params", decl.Params)
		state = state.with(e.Name)

		decls := []Decl{variant}
		for _, ctor := range e.Constructors {
			var nested []Decl
			nested, state = tp.ExtractDefinitions(inner, ctor.Type, state)
			decls = append(decls, nested...)
		}
		return decls, state

	case *ir.Named:
		if state.Seen(e.Name) {
			return nil, state
		}
		alias := Alias{
			Decl: ir.Declaration{Name: e.Name, Params: tp.freeVariables(env, t)},
			Body: tp.TranspileType(env, e.Body),
		}
		tp.Debug("emitting alias", "name", e.Name, "params", alias.Decl.Params)
		state = state.with(e.Name)

		var nested []Decl
		nested, state = tp.ExtractDefinitions(env, e.Body, state)
		return append([]Decl{alias}, nested...), state

	default:
		panic(fmt.Sprintf("ExtractDefinitions: unexpected type %T", t))
	}
}

// extractAll extracts each of ts in order, threading state through all of them
func (tp *Transpiler) extractAll(env ir.Env, ts []ir.Type, state ExtractState) ([]Decl, ExtractState) {
	var decls []Decl
	for _, t := range ts {
		var found []Decl
		found, state = tp.ExtractDefinitions(env, t, state)
		decls = append(decls, found...)
	}
	return decls, state
}
