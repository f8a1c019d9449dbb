package ilerr

import (
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/cottand/tydecl/frontend/ir"
)

// enableDebugErrorPrinting makes errors include the frame that created them when printed
const enableDebugErrorPrinting bool = false
const enableDebugFullStacktrace bool = false

type ErrCode int

const (
	None ErrCode = iota
	Parse
	UnknownTypeKind
	Arity
	UnboundVariable
	DuplicateConstructor
	EmptyName
	NameCollision
)

type IleError interface {
	Error() string
	Code() ErrCode
	ir.Positioner

	withStack([]byte) IleError
	getStack() []byte
}

func FormatWithCode(e IleError) string {
	if enableDebugErrorPrinting && e.getStack() != nil {
		stack := string(e.getStack())
		if !enableDebugFullStacktrace {
			stack = strings.Split(stack, "\n")[6]
		}
		return fmt.Sprintf("%s:(E%03d) %s", stack, e.Code(), e.Error())
	}
	return fmt.Sprintf("(E%03d) %s", e.Code(), e.Error())
}

// FormatWithCodeAndSource formats e like FormatWithCode, followed by
// the offending line of source and a caret under the reported column
func FormatWithCodeAndSource(e IleError, source []byte) string {
	pos := e.Pos()
	if !pos.IsValid() {
		return FormatWithCode(e)
	}
	lines := strings.Split(string(source), "\n")
	if pos.Line > len(lines) {
		return fmt.Sprintf("%s: %s", pos, FormatWithCode(e))
	}
	line := lines[pos.Line-1]
	caret := strings.Repeat(" ", max(pos.Column-1, 0)) + "^"
	return fmt.Sprintf("%s: %s\n  %s\n  %s", pos, FormatWithCode(e), line, caret)
}

func New[E IleError](err E) IleError {
	return err.withStack(debug.Stack())
}

type NewParse struct {
	ir.Position
	ParserMessage string
	stack         []byte
}

func (e NewParse) Error() string    { return e.ParserMessage }
func (e NewParse) Code() ErrCode    { return Parse }
func (e NewParse) getStack() []byte { return e.stack }
func (e NewParse) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}

type NewUnknownTypeKind struct {
	ir.Position
	Kind  string
	stack []byte
}

func (e NewUnknownTypeKind) Error() string {
	return fmt.Sprintf("unknown type kind '%s', expected one of void, unit, var, sum, product, recursive, named", e.Kind)
}
func (e NewUnknownTypeKind) Code() ErrCode    { return UnknownTypeKind }
func (e NewUnknownTypeKind) getStack() []byte { return e.stack }
func (e NewUnknownTypeKind) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}

type NewArity struct {
	ir.Position
	Kind  string
	Got   int
	stack []byte
}

func (e NewArity) Error() string {
	return fmt.Sprintf("%s needs at least 2 elements, but has %d", e.Kind, e.Got)
}
func (e NewArity) Code() ErrCode    { return Arity }
func (e NewArity) getStack() []byte { return e.stack }
func (e NewArity) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}

type NewUnboundVariable struct {
	ir.Position
	Index   int
	InScope int
	stack   []byte
}

func (e NewUnboundVariable) Error() string {
	return fmt.Sprintf("variable %d is not bound, only %d variables are in scope", e.Index, e.InScope)
}
func (e NewUnboundVariable) Code() ErrCode    { return UnboundVariable }
func (e NewUnboundVariable) getStack() []byte { return e.stack }
func (e NewUnboundVariable) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}

type NewDuplicateConstructor struct {
	ir.Position
	TypeName string
	Names    []string
	stack    []byte
}

func (e NewDuplicateConstructor) Error() string {
	return fmt.Sprintf("type '%s' declares constructors more than once: %s", e.TypeName, strings.Join(e.Names, ", "))
}
func (e NewDuplicateConstructor) Code() ErrCode    { return DuplicateConstructor }
func (e NewDuplicateConstructor) getStack() []byte { return e.stack }
func (e NewDuplicateConstructor) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}

type NewEmptyName struct {
	ir.Position
	What  string
	stack []byte
}

func (e NewEmptyName) Error() string    { return fmt.Sprintf("%s must have a non-empty name", e.What) }
func (e NewEmptyName) Code() ErrCode    { return EmptyName }
func (e NewEmptyName) getStack() []byte { return e.stack }
func (e NewEmptyName) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}

// NewNameCollision is reported for distinct names that would be printed
// as the same identifier
type NewNameCollision struct {
	ir.Position
	What  string
	Names []string
	stack []byte
}

func (e NewNameCollision) Error() string {
	return fmt.Sprintf("%s %s would be printed with the same name", e.What, strings.Join(e.Names, ", "))
}
func (e NewNameCollision) Code() ErrCode    { return NameCollision }
func (e NewNameCollision) getStack() []byte { return e.stack }
func (e NewNameCollision) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}
