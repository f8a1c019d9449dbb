package ir

import (
	"fmt"
	"iter"

	"github.com/benbjohnson/immutable"
)

// Binding is what a BoundVar may resolve to: either a FreeVariable or an EnclosingDecl
type Binding interface {
	binding()
}

// FreeVariable is an abstract, uninstantiated type parameter
type FreeVariable struct {
	Name string
}

// EnclosingDecl is the declaration of a Recursive type currently being defined,
// so that self-references inside its body resolve to an application of its own name
type EnclosingDecl struct {
	Decl Declaration
}

func (FreeVariable) binding()  {}
func (EnclosingDecl) binding() {}

// Declaration is a name plus its ordered formal type parameters
type Declaration struct {
	Name   string
	Params []string
}

// Env is an immutable, ordered binding environment.
// Index 0 is the most recently prepended binding
type Env struct {
	bindings *immutable.List[Binding]
}

func EmptyEnv() Env {
	return Env{bindings: immutable.NewList[Binding]()}
}

// NewEnv returns an Env where bindings[0] is at index 0
func NewEnv(bindings ...Binding) Env {
	return Env{bindings: immutable.NewList[Binding](bindings...)}
}

// NewFreeEnv returns an Env made of a FreeVariable per name, names[0] being at index 0
func NewFreeEnv(names ...string) Env {
	bindings := make([]Binding, len(names))
	for i, name := range names {
		bindings[i] = FreeVariable{Name: name}
	}
	return NewEnv(bindings...)
}

func (e Env) list() *immutable.List[Binding] {
	if e.bindings == nil {
		return immutable.NewList[Binding]()
	}
	return e.bindings
}

func (e Env) Len() int {
	return e.list().Len()
}

// Prepend returns a new Env with b at index 0, leaving e untouched
func (e Env) Prepend(b Binding) Env {
	return Env{bindings: e.list().Prepend(b)}
}

// Lookup returns the binding at index i
//
// An index outside the Env is a violation of the binding invariant of the
// type being processed, so Lookup panics rather than returning an error
func (e Env) Lookup(i int) Binding {
	l := e.list()
	if i < 0 || i >= l.Len() {
		panic(fmt.Sprintf("bound variable index %d is outside of an environment of length %d", i, l.Len()))
	}
	return l.Get(i)
}

// All iterates over the bindings of e starting from index 0
func (e Env) All() iter.Seq2[int, Binding] {
	return func(yield func(int, Binding) bool) {
		it := e.list().Iterator()
		for !it.Done() {
			i, b := it.Next()
			if !yield(i, b) {
				return
			}
		}
	}
}
