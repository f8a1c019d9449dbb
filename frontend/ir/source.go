package ir

import "fmt"

// Positioner allows finding the location in the original source document.
// The easiest way to be a Positioner is to embed a Position
type Positioner interface {
	Pos() Position
}

// Position is a 1-based line and column in a source document.
// The zero Position means the location is unknown
type Position struct {
	Line   int
	Column int
}

func (p Position) Pos() Position { return p }

func (p Position) IsValid() bool { return p.Line > 0 }

func (p Position) String() string {
	if !p.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}
