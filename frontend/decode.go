package frontend

import (
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"strings"

	"github.com/cottand/tydecl/frontend/ilerr"
	"github.com/cottand/tydecl/frontend/ir"
	"github.com/cottand/tydecl/util"
	"github.com/xtgo/set"
	"gopkg.in/yaml.v3"
)

type decoder struct {
	errs *ilerr.Errors
	*slog.Logger
}

func positionOf(n *yaml.Node) ir.Position {
	return ir.Position{Line: n.Line, Column: n.Column}
}

func (d *decoder) fail(err ilerr.IleError) {
	d.errs = d.errs.With(err)
}

func (d *decoder) parseError(n *yaml.Node, format string, args ...any) {
	d.fail(ilerr.New(ilerr.NewParse{Position: positionOf(n), ParserMessage: fmt.Sprintf(format, args...)}))
}

// resolve follows YAML aliases
func resolve(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

// fields returns the values of mapping n by key, reporting keys not in allowed
func (d *decoder) fields(n *yaml.Node, allowed ...string) map[string]*yaml.Node {
	found := make(map[string]*yaml.Node, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, value := n.Content[i], resolve(n.Content[i+1])
		if !slices.Contains(allowed, key.Value) {
			d.parseError(key, "unexpected key '%s', expected one of %s", key.Value, strings.Join(allowed, ", "))
			continue
		}
		found[key.Value] = value
	}
	return found
}

func (d *decoder) document(root *yaml.Node) Document {
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = resolve(root.Content[0])
	}
	if root.Kind != yaml.MappingNode {
		d.parseError(root, "a type document must be a mapping with a 'type' key")
		return Document{}
	}
	fields := d.fields(root, "name", "free", "type")

	var doc Document
	if name, ok := fields["name"]; ok {
		doc.Name = d.scalar(name, "name")
	}
	if free, ok := fields["free"]; ok {
		doc.Free = d.freeVariables(free)
	}
	typeNode, ok := fields["type"]
	if !ok {
		d.parseError(root, "missing key 'type'")
		return doc
	}
	doc.Type = d.decodeType(typeNode, len(doc.Free))
	return doc
}

func (d *decoder) scalar(n *yaml.Node, what string) string {
	if n.Kind != yaml.ScalarNode {
		d.parseError(n, "%s must be a string", what)
		return ""
	}
	if n.Value == "" {
		d.fail(ilerr.New(ilerr.NewEmptyName{Position: positionOf(n), What: what}))
	}
	return n.Value
}

func (d *decoder) freeVariables(n *yaml.Node) []string {
	if n.Kind != yaml.SequenceNode {
		d.parseError(n, "'free' must be a list of variable names")
		return nil
	}
	names := make([]string, 0, len(n.Content))
	for _, elem := range n.Content {
		names = append(names, d.scalar(resolve(elem), "free variable"))
	}
	if dupes := duplicates(names); len(dupes) > 0 {
		d.parseError(n, "free variable names must be unique, but found %s more than once", strings.Join(dupes, ", "))
	} else if clashes := collisions(names, false); len(clashes) > 0 {
		d.fail(ilerr.New(ilerr.NewNameCollision{Position: positionOf(n), What: "free variables", Names: clashes}))
	}
	return names
}

// decodeType decodes n where inScope variables are bound
//
// When n is malformed, decodeType reports it and returns a placeholder so that
// decoding can carry on and report further errors
func (d *decoder) decodeType(n *yaml.Node, inScope int) ir.Type {
	n = resolve(n)
	switch n.Kind {
	case yaml.ScalarNode:
		switch n.Value {
		case "void":
			return &ir.Void{}
		case "unit":
			return &ir.Unit{}
		}
		d.fail(ilerr.New(ilerr.NewUnknownTypeKind{Position: positionOf(n), Kind: n.Value}))
		return &ir.Unit{}
	case yaml.MappingNode:
		return d.decodeComposite(n, inScope)
	default:
		d.parseError(n, "a type must be a string or a mapping")
		return &ir.Unit{}
	}
}

// kinds are the keys that decide what a mapping type is
var kinds = []string{"var", "sum", "product", "recursive", "named"}

func (d *decoder) decodeComposite(n *yaml.Node, inScope int) ir.Type {
	fields := d.fields(n, "var", "sum", "product", "recursive", "constructors", "named", "type")
	var present []string
	for _, kind := range kinds {
		if fields[kind] != nil {
			present = append(present, kind)
		}
	}
	if len(present) > 1 {
		d.parseError(n, "a type must have exactly one of %s, but has %s", strings.Join(kinds, ", "), strings.Join(present, ", "))
	}
	if ctors := fields["constructors"]; ctors != nil && fields["recursive"] == nil {
		d.parseError(ctors, "'constructors' is only allowed next to 'recursive'")
	}
	if body := fields["type"]; body != nil && fields["named"] == nil {
		d.parseError(body, "'type' is only allowed next to 'named'")
	}

	switch {
	case fields["var"] != nil:
		node := fields["var"]
		if node.Kind != yaml.ScalarNode || node.ShortTag() != "!!int" {
			d.parseError(node, "'var' must be the integer index of a variable")
			return &ir.Unit{}
		}
		var index int
		if err := node.Decode(&index); err != nil {
			d.parseError(node, "'var' must be an integer: %v", err)
			return &ir.Unit{}
		}
		if index < 0 || index >= inScope {
			d.fail(ilerr.New(ilerr.NewUnboundVariable{Position: positionOf(fields["var"]), Index: index, InScope: inScope}))
		}
		return &ir.BoundVar{Index: index}

	case fields["sum"] != nil:
		return &ir.Sum{Types: d.elements(fields["sum"], "sum", inScope)}

	case fields["product"] != nil:
		return &ir.Product{Types: d.elements(fields["product"], "product", inScope)}

	case fields["recursive"] != nil:
		name := d.scalar(fields["recursive"], "recursive type")
		return &ir.Recursive{
			Name:         name,
			Constructors: d.constructors(fields["constructors"], name, inScope+1),
		}

	case fields["named"] != nil:
		name := d.scalar(fields["named"], "named type")
		body, ok := fields["type"]
		if !ok {
			d.parseError(n, "named type '%s' is missing key 'type'", name)
			return &ir.Unit{}
		}
		return &ir.Named{Name: name, Body: d.decodeType(body, inScope)}
	}
	d.fail(ilerr.New(ilerr.NewUnknownTypeKind{Position: positionOf(n), Kind: "mapping without var, sum, product, recursive or named"}))
	return &ir.Unit{}
}

func (d *decoder) elements(n *yaml.Node, kind string, inScope int) []ir.Type {
	if n.Kind != yaml.SequenceNode {
		d.parseError(n, "'%s' must be a list of types", kind)
		return nil
	}
	if len(n.Content) < 2 {
		d.fail(ilerr.New(ilerr.NewArity{Position: positionOf(n), Kind: kind, Got: len(n.Content)}))
	}
	elems := make([]ir.Type, 0, len(n.Content))
	for _, elem := range n.Content {
		elems = append(elems, d.decodeType(elem, inScope))
	}
	return elems
}

// constructors decodes the constructors of a recursive type, where inScope
// already accounts for the recursive type's own binding
func (d *decoder) constructors(n *yaml.Node, typeName string, inScope int) []ir.Constructor {
	if n == nil {
		return nil
	}
	if n.Kind != yaml.SequenceNode {
		d.parseError(n, "'constructors' must be a list")
		return nil
	}
	ctors := make([]ir.Constructor, 0, len(n.Content))
	for _, elem := range n.Content {
		elem = resolve(elem)
		switch elem.Kind {
		case yaml.ScalarNode:
			// a bare name is a constructor without payload
			ctors = append(ctors, ir.Constructor{Name: d.scalar(elem, "constructor"), Type: &ir.Unit{}})
		case yaml.MappingNode:
			fields := d.fields(elem, "name", "type")
			ctor := ir.Constructor{Type: &ir.Unit{}}
			if name, ok := fields["name"]; ok {
				ctor.Name = d.scalar(name, "constructor")
			} else {
				d.fail(ilerr.New(ilerr.NewEmptyName{Position: positionOf(elem), What: "constructor"}))
			}
			if payload, ok := fields["type"]; ok {
				ctor.Type = d.decodeType(payload, inScope)
			}
			ctors = append(ctors, ctor)
		default:
			d.parseError(elem, "a constructor must be a name or a mapping with 'name' and 'type'")
		}
	}

	names := make([]string, len(ctors))
	for i, ctor := range ctors {
		names[i] = ctor.Name
	}
	if dupes := duplicates(names); len(dupes) > 0 {
		d.fail(ilerr.New(ilerr.NewDuplicateConstructor{Position: positionOf(n), TypeName: typeName, Names: dupes}))
	} else if clashes := collisions(names, true); len(clashes) > 0 {
		d.fail(ilerr.New(ilerr.NewNameCollision{Position: positionOf(n), What: "constructors of '" + typeName + "'", Names: clashes}))
	}
	return ctors
}

// collisions returns, sorted, the distinct names that share an identifier
// once passed through util.Ident
func collisions(names []string, upperFirst bool) []string {
	byIdent := make(map[string][]string, len(names))
	for _, name := range names {
		ident := util.Ident(name, upperFirst)
		if !slices.Contains(byIdent[ident], name) {
			byIdent[ident] = append(byIdent[ident], name)
		}
	}
	var clashing []string
	for _, group := range byIdent {
		if len(group) > 1 {
			clashing = append(clashing, group...)
		}
	}
	sort.Strings(clashing)
	return clashing
}

// duplicates returns, sorted, the names that appear more than once in names
func duplicates(names []string) []string {
	sorted := slices.Clone(names)
	sort.Strings(sorted)
	// set.Uniq swaps the extra occurrences past the unique prefix
	extra := sorted[set.Uniq(sort.StringSlice(sorted)):]
	sort.Strings(extra)
	return extra[:set.Uniq(sort.StringSlice(extra))]
}
