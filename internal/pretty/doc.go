// Package pretty lays out structured text within a target width.
//
// A Doc describes text together with the places where it may be broken onto
// a new line. Group marks a part of a Doc that is printed on a single line when it
// fits in the remaining width, and with every one of its Line breaks taken otherwise
package pretty

import (
	"iter"
	"slices"
	"strings"

	"github.com/cottand/tydecl/util"
)

type Doc interface {
	doc()
}

type text string

type line struct {
	// flat is printed instead of the line break when the enclosing group fits
	flat string
}

type hardLine struct{}

type concat []Doc

type nest struct {
	indent int
	inner  Doc
}

type group struct {
	inner Doc
}

type flatAlt struct {
	flat, broken Doc
}

func (text) doc()     {}
func (line) doc()     {}
func (hardLine) doc() {}
func (concat) doc()   {}
func (nest) doc()     {}
func (group) doc()    {}
func (flatAlt) doc()  {}

// Text must not contain newlines
func Text(s string) Doc { return text(s) }

// Line is a line break, or a space when flat
func Line() Doc { return line{flat: " "} }

// SoftLine is a line break, or nothing when flat
func SoftLine() Doc { return line{} }

// HardLine is always a line break. A group containing it never fits on one line
func HardLine() Doc { return hardLine{} }

func Concat(docs ...Doc) Doc { return concat(docs) }

// Nest indents by indent every line break of inner
func Nest(indent int, inner Doc) Doc { return nest{indent: indent, inner: inner} }

func Group(inner Doc) Doc { return group{inner: inner} }

// FlatAlt is printed as flat inside a group that fits, and as broken otherwise
func FlatAlt(flat, broken Doc) Doc { return flatAlt{flat: flat, broken: broken} }

var Empty = Text("")

// Join places sep between each of docs
func Join(sep Doc, docs []Doc) Doc {
	joined := make(concat, 0, 2*len(docs))
	for i, d := range docs {
		if i > 0 {
			joined = append(joined, sep)
		}
		joined = append(joined, d)
	}
	return joined
}

// CommaList is docs separated by commas, broken one per line when they do not fit
func CommaList(docs []Doc) Doc {
	return Join(Concat(Text(","), Line()), docs)
}

// Parens wraps docs as a parenthesised comma-separated list
func Parens(docs []Doc) Doc {
	return Group(Concat(
		Text("("),
		Nest(2, Concat(SoftLine(), CommaList(docs))),
		SoftLine(),
		Text(")"),
	))
}

// VCat stacks docs vertically, separated by a blank line
func VCat(docs []Doc) Doc {
	return Join(Concat(HardLine(), HardLine()), docs)
}

type mode uint8

const (
	modeBreak mode = iota
	modeFlat
)

type frame struct {
	indent int
	mode   mode
	doc    Doc
}

// Render lays d out within width columns, where possible
func Render(width int, d Doc) string {
	sb := strings.Builder{}
	column := 0
	stack := &util.Stack[frame]{}
	stack.Push(frame{indent: 0, mode: modeBreak, doc: d})
	for {
		top, ok := stack.Pop()
		if !ok {
			break
		}

		switch d := top.doc.(type) {
		case text:
			sb.WriteString(string(d))
			column += len(d)
		case line:
			if top.mode == modeFlat {
				sb.WriteString(d.flat)
				column += len(d.flat)
				continue
			}
			sb.WriteByte('\n')
			sb.WriteString(strings.Repeat(" ", top.indent))
			column = top.indent
		case hardLine:
			sb.WriteByte('\n')
			sb.WriteString(strings.Repeat(" ", top.indent))
			column = top.indent
		case concat:
			for _, inner := range slices.Backward(d) {
				stack.Push(frame{indent: top.indent, mode: top.mode, doc: inner})
			}
		case nest:
			stack.Push(frame{indent: top.indent + d.indent, mode: top.mode, doc: d.inner})
		case group:
			m := modeBreak
			if top.mode == modeFlat || fits(width-column, frame{indent: top.indent, mode: modeFlat, doc: d.inner}, stack) {
				m = modeFlat
			}
			stack.Push(frame{indent: top.indent, mode: m, doc: d.inner})
		case flatAlt:
			stack.Push(frame{indent: top.indent, mode: top.mode, doc: d.pick(top.mode)})
		}
	}
	return trimTrailingSpaces(sb.String())
}

func (f flatAlt) pick(m mode) Doc {
	if m == modeFlat {
		return f.flat
	}
	return f.broken
}

// fits reports whether next, followed by the rest of the stack up to its
// next line break, can be printed within remaining columns
func fits(remaining int, next frame, rest *util.Stack[frame]) bool {
	pending := &util.Stack[frame]{}
	pending.Push(next)
	pullRest, stop := iter.Pull(rest.TopDown())
	defer stop()

	for remaining >= 0 {
		top, ok := pending.Pop()
		if !ok {
			if top, ok = pullRest(); !ok {
				return true
			}
		}

		switch d := top.doc.(type) {
		case text:
			remaining -= len(d)
		case line:
			if top.mode == modeBreak {
				return true
			}
			remaining -= len(d.flat)
		case hardLine:
			return top.mode == modeBreak
		case concat:
			for _, inner := range slices.Backward(d) {
				pending.Push(frame{indent: top.indent, mode: top.mode, doc: inner})
			}
		case nest:
			pending.Push(frame{indent: top.indent + d.indent, mode: top.mode, doc: d.inner})
		case group:
			pending.Push(frame{indent: top.indent, mode: top.mode, doc: d.inner})
		case flatAlt:
			pending.Push(frame{indent: top.indent, mode: top.mode, doc: d.pick(top.mode)})
		}
	}
	return false
}

func trimTrailingSpaces(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return strings.Join(lines, "\n")
}
