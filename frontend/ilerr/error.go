package ilerr

import (
	"fmt"
	"log/slog"
	"strconv"
)

// Errors accumulates the diagnostics of a document. A nil *Errors holds none,
// so decoding can start from nil and only allocate on the first problem
type Errors struct {
	errs []IleError
}

func (r *Errors) With(err ...IleError) *Errors {
	if r == nil {
		return &Errors{errs: err}
	}
	r.errs = append(r.errs, err...)
	return r
}

func (r *Errors) Errors() []IleError {
	if r == nil {
		return nil
	}
	return r.errs
}

func (r *Errors) HasError() bool {
	return len(r.Errors()) > 0
}

// Codes lists the code of every diagnostic, in the order they were reported
func (r *Errors) Codes() []ErrCode {
	var codes []ErrCode
	for _, err := range r.Errors() {
		codes = append(codes, err.Code())
	}
	return codes
}

// LogValue shows each diagnostic as a group keyed by its index,
// holding its code, message and position in the document
func (r *Errors) LogValue() slog.Value {
	diagnostics := make([]slog.Attr, 0, len(r.Errors()))
	for i, v := range r.Errors() {
		diagnostics = append(diagnostics, slog.Group(
			"diagnostic"+strconv.Itoa(i),
			slog.String("code", fmt.Sprintf("E%03d", v.Code())),
			slog.String("msg", v.Error()),
			slog.String("at", v.Pos().String()),
		))
	}
	return slog.GroupValue(diagnostics...)
}
