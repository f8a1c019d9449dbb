package util

import (
	"iter"
	"slices"
)

// Stack is a LIFO. The zero value is an empty Stack
type Stack[A any] struct {
	items []A
}

func (s *Stack[A]) Push(vs ...A) {
	s.items = append(s.items, vs...)
}

func (s *Stack[A]) Pop() (ret A, ok bool) {
	if len(s.items) <= 0 {
		return ret, false
	}
	lastIndex := len(s.items) - 1
	ret = s.items[lastIndex]
	s.items = s.items[:lastIndex]
	return ret, true
}

func (s *Stack[A]) Len() int {
	return len(s.items)
}

// TopDown iterates over the items of s from the most recently pushed one, without popping them
func (s *Stack[A]) TopDown() iter.Seq[A] {
	return func(yield func(A) bool) {
		for _, item := range slices.Backward(s.items) {
			if !yield(item) {
				return
			}
		}
	}
}
