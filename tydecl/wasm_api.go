//go:build js && wasm

package tydecl

import (
	"fmt"
	"syscall/js"

	"github.com/cottand/tydecl/internal/config"
)

func errorObj(err string) any {
	return js.ValueOf(map[string]any{
		"error": err,
	})
}

func okResultObj(show string, output string) any {
	return js.ValueOf(map[string]any{
		"show":   show,
		"output": output,
	})
}

// generate does a full pass of a document for target, and returns the
// extracted declarations together with the generated output, or alternatively
// the document's error messages.
//
// output: { error: string } | { show: string, output: string }
func generate(target string, args []js.Value) (ret any) {
	defer func() {
		if r := recover(); r != nil {
			ret = errorObj("tydecl panicked: " + fmt.Sprint(r))
		}
	}()
	if len(args) != 1 {
		return errorObj(fmt.Sprintf("expected 1 argument, got %d", len(args)))
	}

	pkg, errs, err := NewPackageFromBytes([]byte(args[0].String()))
	if err != nil {
		return errorObj(fmt.Sprintf("tydecl encountered a failure:\n\n%s", err))
	}
	if errs.HasError() {
		return errorObj("the document has the following errors:\n" + pkg.FormatErrors())
	}

	show, err := pkg.Show()
	if err != nil {
		return errorObj(fmt.Sprintf("tydecl encountered a failure:\n%s", err))
	}
	output, err := pkg.Generate(target)
	if err != nil {
		return errorObj(fmt.Sprintf("tydecl encountered a failure:\n%s", err))
	}
	return okResultObj(show, output)
}

// GenerateReason renders a document as ReasonML
func GenerateReason(_ js.Value, args []js.Value) any {
	return generate(config.TargetReason, args)
}

// GenerateGo renders a document as Go
func GenerateGo(_ js.Value, args []js.Value) any {
	return generate(config.TargetGo, args)
}
