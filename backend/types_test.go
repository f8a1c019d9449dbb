package backend

import (
	"testing"

	"github.com/cottand/tydecl/frontend/ir"
	"github.com/stretchr/testify/assert"
)

func listType(elemIndex int) *ir.Recursive {
	return &ir.Recursive{
		Name: "list",
		Constructors: []ir.Constructor{
			{Name: "Nil", Type: &ir.Unit{}},
			{Name: "Cons", Type: ir.NewProduct(&ir.BoundVar{Index: elemIndex}, &ir.BoundVar{Index: 0})},
		},
	}
}

func TestTranspileType(t *testing.T) {
	tp := NewTranspiler(nil)
	env := ir.NewFreeEnv("a", "b")

	testCases := []struct {
		name     string
		typ      ir.Type
		expected TypeExpr
	}{
		{"void", &ir.Void{}, App{Name: ir.VoidName}},
		{"unit", &ir.Unit{}, UnitExpr{}},
		{"free variable", &ir.BoundVar{Index: 1}, Var{Name: "b"}},
		{
			"binary sum",
			ir.NewSum(&ir.Unit{}, &ir.BoundVar{Index: 0}),
			App{Name: ir.EitherName, Args: []TypeExpr{UnitExpr{}, Var{Name: "a"}}},
		},
		{
			"sum folds to the right",
			ir.NewSum(&ir.BoundVar{Index: 0}, &ir.BoundVar{Index: 1}, &ir.Unit{}),
			App{Name: ir.EitherName, Args: []TypeExpr{
				Var{Name: "a"},
				App{Name: ir.EitherName, Args: []TypeExpr{Var{Name: "b"}, UnitExpr{}}},
			}},
		},
		{
			"product",
			ir.NewProduct(&ir.Unit{}, &ir.BoundVar{Index: 0}, &ir.Void{}),
			Tuple{Elems: []TypeExpr{UnitExpr{}, Var{Name: "a"}, App{Name: ir.VoidName}}},
		},
		{
			"recursive is applied to the free variables it uses",
			listType(2),
			App{Name: "list", Args: []TypeExpr{Var{Name: "b"}}},
		},
		{
			"closed recursive is a bare name",
			&ir.Recursive{Name: "bool", Constructors: []ir.Constructor{{Name: "T", Type: &ir.Unit{}}, {Name: "F", Type: &ir.Unit{}}}},
			App{Name: "bool"},
		},
		{
			"named",
			&ir.Named{Name: "pair", Body: ir.NewProduct(&ir.BoundVar{Index: 1}, &ir.BoundVar{Index: 0})},
			App{Name: "pair", Args: []TypeExpr{Var{Name: "a"}, Var{Name: "b"}}},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tp.TranspileType(env, tc.typ))
		})
	}
}

func TestTranspileEnclosingDecl(t *testing.T) {
	tp := NewTranspiler(nil)
	env := ir.NewFreeEnv("a").Prepend(ir.EnclosingDecl{Decl: ir.Declaration{Name: "tree", Params: []string{"a"}}})

	assert.Equal(t, App{Name: "tree", Args: []TypeExpr{Var{Name: "a"}}}, tp.TranspileType(env, &ir.BoundVar{Index: 0}))
}

func TestTranspileContractViolationsPanic(t *testing.T) {
	tp := NewTranspiler(nil)

	assert.PanicsWithValue(t, "TranspileType: sum of 1 elements, at least 2 are required", func() {
		tp.TranspileType(ir.EmptyEnv(), &ir.Sum{Types: []ir.Type{&ir.Unit{}}})
	})
	assert.PanicsWithValue(t, "TranspileType: product of 0 elements, at least 2 are required", func() {
		tp.TranspileType(ir.EmptyEnv(), &ir.Product{})
	})
	assert.PanicsWithValue(t, "bound variable index 0 is outside of an environment of length 0", func() {
		tp.TranspileType(ir.EmptyEnv(), &ir.BoundVar{Index: 0})
	})
}

func TestTranspilerUsesGivenAnalysis(t *testing.T) {
	var calls int
	tp := NewTranspiler(func(ir.Env, ir.Type) []string {
		calls++
		return []string{"z"}
	})
	got := tp.TranspileType(ir.EmptyEnv(), &ir.Named{Name: "n", Body: &ir.Unit{}})
	assert.Equal(t, App{Name: "n", Args: []TypeExpr{Var{Name: "z"}}}, got)
	assert.Equal(t, 1, calls)
}
