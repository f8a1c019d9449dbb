package ilerr

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/cottand/tydecl/frontend/ir"
	"github.com/stretchr/testify/assert"
)

func TestFormatWithCodeAndSource(t *testing.T) {
	source := []byte("type:\n  sum: [unit]\n")
	err := New(NewArity{Position: ir.Position{Line: 2, Column: 3}, Kind: "sum", Got: 1})

	formatted := FormatWithCodeAndSource(err, source)
	assert.Equal(t, "2:3: (E003) sum needs at least 2 elements, but has 1\n    sum: [unit]\n    ^", formatted)
}

func TestFormatWithoutPosition(t *testing.T) {
	err := New(NewEmptyName{What: "constructor"})
	assert.Equal(t, "(E006) constructor must have a non-empty name", FormatWithCodeAndSource(err, nil))
}

func TestErrorsAccumulate(t *testing.T) {
	var errs *Errors
	assert.False(t, errs.HasError())
	assert.Nil(t, errs.Errors())
	assert.Nil(t, errs.Codes())

	errs = errs.With(New(NewParse{ParserMessage: "bad"}))
	errs = errs.With(New(NewUnboundVariable{Index: 3, InScope: 1}))
	assert.True(t, errs.HasError())
	assert.Len(t, errs.Errors(), 2)
	assert.Equal(t, []ErrCode{Parse, UnboundVariable}, errs.Codes())
}

func TestErrorsLogValue(t *testing.T) {
	errs := (*Errors)(nil).With(New(NewArity{Position: ir.Position{Line: 2, Column: 3}, Kind: "sum", Got: 1}))

	buf := &bytes.Buffer{}
	slog.New(slog.NewTextHandler(buf, nil)).Error("document has errors", "errors", errs)
	assert.Contains(t, buf.String(), "errors.diagnostic0.code=E003")
	assert.Contains(t, buf.String(), `errors.diagnostic0.msg="sum needs at least 2 elements, but has 1"`)
	assert.Contains(t, buf.String(), "errors.diagnostic0.at=2:3")
}
