package types

import (
	"github.com/cottand/tydecl/frontend/ir"
	"github.com/hashicorp/go-set/v3"
)

// FreeVariables returns the names of the free variables of env that t actually uses,
// in the order they appear in env (index 0 first), or nil if t uses none.
//
// A BoundVar resolving to an ir.EnclosingDecl uses every parameter of that declaration,
// because it stands for the declaration's name applied to its own parameters
func FreeVariables(env ir.Env, t ir.Type) []string {
	used := set.New[string](env.Len())
	collectFreeVariables(env, t, 0, used)

	var ordered []string
	emitted := set.New[string](used.Size())
	for _, b := range env.All() {
		free, ok := b.(ir.FreeVariable)
		if !ok || !used.Contains(free.Name) {
			continue
		}
		if emitted.Insert(free.Name) {
			ordered = append(ordered, free.Name)
		}
	}
	return ordered
}

// collectFreeVariables walks t where the innermost depth bindings are local to t
func collectFreeVariables(env ir.Env, t ir.Type, depth int, used *set.Set[string]) {
	switch t := t.(type) {
	case *ir.Void, *ir.Unit:
	case *ir.Sum:
		for _, elem := range t.Types {
			collectFreeVariables(env, elem, depth, used)
		}
	case *ir.Product:
		for _, elem := range t.Types {
			collectFreeVariables(env, elem, depth, used)
		}
	case *ir.BoundVar:
		if t.Index < depth {
			return
		}
		switch b := env.Lookup(t.Index - depth).(type) {
		case ir.FreeVariable:
			used.Insert(b.Name)
		case ir.EnclosingDecl:
			used.InsertSlice(b.Decl.Params)
		}
	case *ir.Recursive:
		for _, ctor := range t.Constructors {
			collectFreeVariables(env, ctor.Type, depth+1, used)
		}
	case *ir.Named:
		collectFreeVariables(env, t.Body, depth, used)
	default:
		panic("unreachable: unknown type " + ir.TypeString(t))
	}
}
