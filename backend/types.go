package backend

import (
	"fmt"

	"github.com/cottand/tydecl/frontend/ir"
)

// TranspileType translates t, interpreted under env, into a target type expression
func (tp *Transpiler) TranspileType(env ir.Env, t ir.Type) TypeExpr {
	switch e := t.(type) {
	case *ir.Void:
		return App{Name: ir.VoidName}

	case *ir.Unit:
		return UnitExpr{}

	case *ir.Sum:
		if len(e.Types) < 2 {
			panic(fmt.Sprintf("TranspileType: sum of %d elements, at least 2 are required", len(e.Types)))
		}
		// right fold into nested binary eithers: [a, b, c] is either(a, either(b, c))
		acc := tp.TranspileType(env, e.Types[len(e.Types)-1])
		for i := len(e.Types) - 2; i >= 0; i-- {
			acc = App{Name: ir.EitherName, Args: []TypeExpr{tp.TranspileType(env, e.Types[i]), acc}}
		}
		return acc

	case *ir.Product:
		if len(e.Types) < 2 {
			panic(fmt.Sprintf("TranspileType: product of %d elements, at least 2 are required", len(e.Types)))
		}
		elems := make([]TypeExpr, len(e.Types))
		for i, elem := range e.Types {
			elems[i] = tp.TranspileType(env, elem)
		}
		return Tuple{Elems: elems}

	case *ir.BoundVar:
		switch b := env.Lookup(e.Index).(type) {
		case ir.FreeVariable:
			return Var{Name: b.Name}
		case ir.EnclosingDecl:
			return App{Name: b.Decl.Name, Args: VarsOf(b.Decl.Params)}
		default:
			panic(fmt.Sprintf("TranspileType: unexpected binding %T", b))
		}

	case *ir.Recursive:
		return App{Name: e.Name, Args: VarsOf(tp.freeVariables(env, t))}

	case *ir.Named:
		return App{Name: e.Name, Args: VarsOf(tp.freeVariables(env, t))}

	default:
		panic(fmt.Sprintf("TranspileType: unexpected type %T", t))
	}
}
