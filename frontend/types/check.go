package types

import (
	"fmt"

	"github.com/cottand/tydecl/frontend/ir"
)

// Violation describes where a type breaks the arity or binding invariants of the algebra
type Violation struct {
	// Path is the chain of constructors and element indexes leading to the offending type
	Path    []string
	Message string
}

func (v Violation) Error() string {
	if len(v.Path) == 0 {
		return v.Message
	}
	return fmt.Sprintf("at %v: %s", v.Path, v.Message)
}

// Check reports every place where t is not well-formed under env:
// a Sum or Product with fewer than two elements, or a BoundVar outside its environment
func Check(env ir.Env, t ir.Type) []Violation {
	var found []Violation
	check(env.Len(), t, nil, &found)
	return found
}

func check(envLen int, t ir.Type, path []string, found *[]Violation) {
	at := func(segment string) []string {
		return append(path[:len(path):len(path)], segment)
	}
	switch t := t.(type) {
	case *ir.Void, *ir.Unit:
	case *ir.Sum:
		if len(t.Types) < 2 {
			*found = append(*found, Violation{Path: path, Message: fmt.Sprintf("sum of %d elements, at least 2 are required", len(t.Types))})
		}
		for i, elem := range t.Types {
			check(envLen, elem, at(fmt.Sprint("sum#", i)), found)
		}
	case *ir.Product:
		if len(t.Types) < 2 {
			*found = append(*found, Violation{Path: path, Message: fmt.Sprintf("product of %d elements, at least 2 are required", len(t.Types))})
		}
		for i, elem := range t.Types {
			check(envLen, elem, at(fmt.Sprint("product#", i)), found)
		}
	case *ir.BoundVar:
		if t.Index < 0 || t.Index >= envLen {
			*found = append(*found, Violation{Path: path, Message: fmt.Sprintf("variable %d is not bound, only %d variables are in scope", t.Index, envLen)})
		}
	case *ir.Recursive:
		for _, ctor := range t.Constructors {
			check(envLen+1, ctor.Type, at(t.Name+"."+ctor.Name), found)
		}
	case *ir.Named:
		check(envLen, t.Body, at(t.Name), found)
	case nil:
		*found = append(*found, Violation{Path: path, Message: "missing type"})
	default:
		*found = append(*found, Violation{Path: path, Message: fmt.Sprintf("unknown type %T", t)})
	}
}
