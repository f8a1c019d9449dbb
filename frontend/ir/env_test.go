package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvPrependDoesNotModifyOriginal(t *testing.T) {
	base := NewFreeEnv("a", "b")
	decl := Declaration{Name: "list", Params: []string{"a"}}
	extended := base.Prepend(EnclosingDecl{Decl: decl})

	assert.Equal(t, 2, base.Len())
	assert.Equal(t, 3, extended.Len())
	assert.Equal(t, EnclosingDecl{Decl: decl}, extended.Lookup(0))
	assert.Equal(t, FreeVariable{Name: "a"}, extended.Lookup(1))
	assert.Equal(t, FreeVariable{Name: "a"}, base.Lookup(0))
}

func TestEnvLookupOutOfRangePanics(t *testing.T) {
	env := NewFreeEnv("a")
	assert.PanicsWithValue(t, "bound variable index 1 is outside of an environment of length 1", func() {
		env.Lookup(1)
	})
	assert.Panics(t, func() { EmptyEnv().Lookup(0) })
	assert.Panics(t, func() { env.Lookup(-1) })
}

func TestZeroEnvIsEmpty(t *testing.T) {
	var env Env
	assert.Equal(t, 0, env.Len())
	assert.Equal(t, 1, env.Prepend(FreeVariable{Name: "x"}).Len())
}

func TestEnvAllIteratesFromIndexZero(t *testing.T) {
	env := NewFreeEnv("a", "b").Prepend(FreeVariable{Name: "c"})
	var names []string
	for i, b := range env.All() {
		assert.Equal(t, len(names), i)
		names = append(names, b.(FreeVariable).Name)
	}
	assert.Equal(t, []string{"c", "a", "b"}, names)
}

func TestShowIn(t *testing.T) {
	list := &Recursive{
		Name: "list",
		Constructors: []Constructor{
			{Name: "Nil", Type: &Unit{}},
			{Name: "Cons", Type: NewProduct(&BoundVar{Index: 1}, &BoundVar{Index: 0})},
		},
	}
	assert.Equal(t, "mu list. [Nil: unit | Cons: 'a * list]", list.ShowIn(NewFreeEnv("a"), 0))
	assert.Equal(t, "(unit + void) * unit", NewProduct(NewSum(&Unit{}, &Void{}), &Unit{}).ShowIn(EmptyEnv(), 0))
	assert.Equal(t, "#3", TypeString(&BoundVar{Index: 3}))
}
