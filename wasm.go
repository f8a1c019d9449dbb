//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/cottand/tydecl/tydecl"
)

func main() {
	js.Global().Set("GenerateReason", js.FuncOf(tydecl.GenerateReason))
	js.Global().Set("GenerateGo", js.FuncOf(tydecl.GenerateGo))

	// wait indefinitely so that Go does not terminate execution
	// and the functions remain available
	<-make(chan struct{})
}
