package backend

import (
	"fmt"
	"log/slog"

	"github.com/cottand/tydecl/frontend/ir"
	"github.com/cottand/tydecl/frontend/types"
	"github.com/cottand/tydecl/internal/log"
)

// FreeVariablesFunc returns the ordered names of the free variables of env that t uses
type FreeVariablesFunc func(env ir.Env, t ir.Type) []string

// Transpiler translates ir.Type values into target declarations and type expressions.
//
// A Transpiler holds no state between calls, so it may be shared by concurrent requests
type Transpiler struct {
	freeVariables FreeVariablesFunc

	*slog.Logger
}

// NewTranspiler returns a Transpiler using freeVariables to compute declaration
// parameters. A nil freeVariables defaults to types.FreeVariables
func NewTranspiler(freeVariables FreeVariablesFunc) *Transpiler {
	if freeVariables == nil {
		freeVariables = types.FreeVariables
	}
	return &Transpiler{
		freeVariables: freeVariables,
		Logger:        log.Section("extract"),
	}
}

// TranspileUnit returns the declarations t depends on, followed by an alias
// naming t itself as topName. An empty topName omits that alias.
//
// It fails if topName is also the name of one of the declarations, as the
// alias would then be declared twice
func (tp *Transpiler) TranspileUnit(env ir.Env, t ir.Type, topName string) (Unit, error) {
	unit := Unit{Decls: tp.Definitions(env, t)}
	if topName == "" {
		return unit, nil
	}
	for _, decl := range unit.Decls {
		if decl.Declaration().Name == topName {
			return Unit{}, fmt.Errorf("top-level name '%s' is already declared by the type itself, choose another one", topName)
		}
	}
	unit.Top = &Alias{
		Decl: ir.Declaration{Name: topName, Params: tp.freeVariables(env, t)},
		Body: tp.TranspileType(env, t),
	}
	return unit, nil
}
