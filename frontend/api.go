package frontend

import (
	"github.com/cottand/tydecl/frontend/ilerr"
	"github.com/cottand/tydecl/frontend/ir"
	"github.com/cottand/tydecl/internal/log"
	"gopkg.in/yaml.v3"
)

// Document is a single type translation request
type Document struct {
	// Name is the synthetic name of the top-level type, and may be ""
	Name string
	// Free are the names of the free variables of Type, Free[0] being bound at index 0
	Free []string
	Type ir.Type
}

// Env returns the binding environment Type is meant to be interpreted in
func (d Document) Env() ir.Env {
	return ir.NewFreeEnv(d.Free...)
}

// ParseDocument decodes a YAML type document.
//
// When the returned ilerr.Errors has errors, the returned Document must not be used
func ParseDocument(data []byte) (Document, *ilerr.Errors) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return Document{}, (*ilerr.Errors)(nil).With(ilerr.New(ilerr.NewParse{ParserMessage: err.Error()}))
	}
	d := &decoder{Logger: log.Section("load")}
	doc := d.document(&root)
	if d.errs.HasError() {
		d.Debug("document has errors", "errors", d.errs)
	} else {
		d.Debug("decoded document", "type", ir.SlogType(doc.Env(), doc.Type))
	}
	return doc, d.errs
}
