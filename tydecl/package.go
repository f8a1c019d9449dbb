package tydecl

import (
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
	"testing/fstest"

	"github.com/cottand/tydecl/backend"
	"github.com/cottand/tydecl/backend/golang"
	"github.com/cottand/tydecl/backend/reason"
	"github.com/cottand/tydecl/frontend"
	"github.com/cottand/tydecl/frontend/ilerr"
	"github.com/cottand/tydecl/frontend/ir"
	"github.com/cottand/tydecl/frontend/types"
	"github.com/cottand/tydecl/internal/config"
	"github.com/cottand/tydecl/internal/log"
	"github.com/pkg/errors"
)

var packageLogger = log.Section("load").With("component", "package")

// Package is a single type document together with the settings it is generated with
type Package struct {
	name, path string
	source     []byte

	document frontend.Document
	errors   *ilerr.Errors
	Config   config.Config
	// topName overrides the document's name as top-level alias
	topName string

	transpiler *backend.Transpiler
	// unit is computed on first use, only for documents without errors
	unit *backend.Unit
}

type PkgLoadSettings struct {
	// Dir is the path of the folder in the filesystem where the package is located
	// the default is `.`
	Dir string

	// File is the document to load, relative to Dir. When empty, Dir must
	// contain a .yaml or .yml document
	File string

	// Config replaces the tydecl.toml of Dir when set
	Config *config.Config

	// TopName, when set, names the top-level alias over both the document's
	// name and the configured top_name
	TopName string
}

func isDocument(name string) bool {
	ext := path.Ext(name)
	return ext == ".yaml" || ext == ".yml"
}

// LoadPackage reads and decodes a document in fsys.
//
// A returned error means the package could not be loaded at all. Problems with
// the document itself are reported by Package.Errors instead
func LoadPackage(fsys fs.FS, settings PkgLoadSettings) (*Package, error) {
	dir := settings.Dir
	if dir == "" {
		dir = "."
	}

	file := settings.File
	if file == "" {
		entries, err := fs.ReadDir(fsys, dir)
		if err != nil {
			return nil, errors.Wrapf(err, "read package directory %s", dir)
		}
		var docs []string
		for _, entry := range entries {
			if !entry.IsDir() && isDocument(entry.Name()) {
				docs = append(docs, entry.Name())
			}
		}
		if len(docs) == 0 {
			return nil, errors.Errorf("no .yaml document found in %s", dir)
		}
		if len(docs) > 1 {
			packageLogger.Warn("multiple documents found, but packages hold a single one - using the first", "documents", docs)
		}
		file = docs[0]
	}

	filePath := path.Join(dir, file)
	source, err := fs.ReadFile(fsys, filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "read document %s", filePath)
	}

	var cfg config.Config
	if settings.Config != nil {
		cfg = *settings.Config
	} else {
		cfg, err = config.Load(fsys, path.Join(dir, config.FileName))
		if err != nil {
			return nil, errors.Wrap(err, "load config")
		}
	}

	pkg := &Package{
		name:       strings.TrimSuffix(file, path.Ext(file)),
		path:       filePath,
		source:     source,
		Config:     cfg,
		topName:    settings.TopName,
		transpiler: backend.NewTranspiler(nil),
	}
	pkg.document, pkg.errors = frontend.ParseDocument(source)
	if pkg.document.Name != "" {
		pkg.name = pkg.document.Name
	}
	packageLogger.Debug("loaded package", "path", filePath, "name", pkg.name, "errors", pkg.errors)
	return pkg, nil
}

// NewPackageFromBytes does all frontend passes end-to-end for a single document, meant for testing
func NewPackageFromBytes(data []byte) (*Package, *ilerr.Errors, error) {
	cfg := config.Default()
	filesystem := fstest.MapFS{
		"document.yaml": &fstest.MapFile{
			Data: data,
		},
	}
	pkg, err := LoadPackage(filesystem, PkgLoadSettings{Config: &cfg})
	if err != nil {
		return nil, nil, err
	}
	return pkg, pkg.errors, nil
}

// NewPackageFromDocument wraps a Document built in memory rather than decoded.
// Its type is checked when first transpiled
func NewPackageFromDocument(name string, doc frontend.Document, cfg config.Config) *Package {
	if doc.Name != "" {
		name = doc.Name
	}
	return &Package{
		name:       name,
		path:       name,
		document:   doc,
		Config:     cfg,
		transpiler: backend.NewTranspiler(nil),
	}
}

// Name is the document's name, or its file name without extension
func (p *Package) Name() string { return p.name }

func (p *Package) Path() string { return p.path }

func (p *Package) Errors() *ilerr.Errors { return p.errors }

// TopName is the name of the alias declared for the document's type, or
// empty if none should be declared. An explicit override wins over the
// document's name, which wins over the configured top_name
func (p *Package) TopName() string {
	configured := p.Config.EffectiveTopName()
	switch {
	case configured == "":
		return ""
	case p.topName != "":
		return p.topName
	case p.document.Name != "":
		return p.document.Name
	default:
		return configured
	}
}

// FormatErrors lists every error of the package, one per paragraph, pointing into its source
func (p *Package) FormatErrors() string {
	sb := &strings.Builder{}
	for i, ileError := range p.errors.Errors() {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(ilerr.FormatWithCodeAndSource(ileError, p.source))
	}
	return sb.String()
}

func (p *Package) checkErrors() error {
	if p.errors.HasError() {
		return errors.Errorf("errors found in %s:\n%s", p.path, p.FormatErrors())
	}
	return nil
}

// Unit returns the declarations needed to print the document's type
func (p *Package) Unit() (backend.Unit, error) {
	if err := p.checkErrors(); err != nil {
		return backend.Unit{}, err
	}
	if p.unit == nil {
		if violations := types.Check(p.document.Env(), p.document.Type); len(violations) > 0 {
			msgs := make([]string, len(violations))
			for i, v := range violations {
				msgs[i] = v.Error()
			}
			return backend.Unit{}, errors.Errorf("malformed type in %s:\n%s", p.path, strings.Join(msgs, "\n"))
		}
		unit, err := p.transpiler.TranspileUnit(p.document.Env(), p.document.Type, p.TopName())
		if err != nil {
			return backend.Unit{}, errors.Wrapf(err, "transpile %s", p.path)
		}
		p.unit = &unit
	}
	return *p.unit, nil
}

// Declarations returns the extracted declarations, dependencies first, without the top-level alias
func (p *Package) Declarations() ([]backend.Decl, error) {
	unit, err := p.Unit()
	return unit.Decls, err
}

// Renderer returns the backend.Renderer for target, configured by p.Config.
// An empty target is p.Config.Target
func (p *Package) Renderer(target string) (backend.Renderer, error) {
	if target == "" {
		target = p.Config.Target
	}
	switch target {
	case config.TargetReason:
		return reason.NewRenderer(p.Config.Width), nil
	case config.TargetGo:
		return golang.NewRenderer(p.Config.GoPackage), nil
	default:
		return nil, errors.Errorf("unknown target %q, expected one of %s", target, strings.Join(config.Targets, ", "))
	}
}

// Extension is the file extension of output for target
func Extension(target string) string {
	switch target {
	case config.TargetGo:
		return ".go"
	default:
		return ".re"
	}
}

// Generate renders the document's declarations as target source
func (p *Package) Generate(target string) (string, error) {
	renderer, err := p.Renderer(target)
	if err != nil {
		return "", err
	}
	unit, err := p.Unit()
	if err != nil {
		return "", err
	}
	out, err := renderer.RenderUnit(unit)
	if err != nil {
		return "", errors.Wrapf(err, "render %s", p.path)
	}
	return out, nil
}

// Show describes the decoded document and what it extracts to, for inspection
func (p *Package) Show() (string, error) {
	unit, err := p.Unit()
	if err != nil {
		return "", err
	}
	env := p.document.Env()
	r := reason.NewRenderer(p.Config.Width)

	sb := &strings.Builder{}
	fmt.Fprintf(sb, "document %s\n", p.name)
	if len(p.document.Free) > 0 {
		fmt.Fprintf(sb, "  free: %s\n", strings.Join(p.document.Free, ", "))
	}
	fmt.Fprintf(sb, "  type: %s\n", p.document.Type.ShowIn(env, 0))

	sb.WriteString("declarations:\n")
	for _, decl := range unit.Decls {
		fmt.Fprintf(sb, "  %-8s %s\n", kindOf(decl), showDeclaration(decl.Declaration()))
	}
	fmt.Fprintf(sb, "top: %s\n", r.RenderType(p.transpiler.TranspileType(env, p.document.Type)))
	return sb.String(), nil
}

func kindOf(d backend.Decl) string {
	switch d.(type) {
	case backend.Variant:
		return "variant"
	default:
		return "alias"
	}
}

func showDeclaration(d ir.Declaration) string {
	if len(d.Params) == 0 {
		return d.Name
	}
	params := slices.Clone(d.Params)
	for i, param := range params {
		params[i] = reason.VarName(param)
	}
	return fmt.Sprintf("%s(%s)", d.Name, strings.Join(params, ", "))
}
