package main

import (
	"embed"
	"go/parser"
	"go/token"
	"path"
	"strings"
	"testing"

	"github.com/cottand/tydecl/backend"
	"github.com/cottand/tydecl/backend/golang"
	"github.com/cottand/tydecl/internal/config"
	"github.com/cottand/tydecl/tydecl"
	"github.com/stretchr/testify/assert"
	"github.com/traefik/yaegi/interp"
)

// embeds the test folder
//
//go:embed testdata
var testSet embed.FS

const expectDirective = "# tydecl:expect"

// extractExpected returns the expected ReasonML output of a document, format is as follows:
//
//	# tydecl:expect <output line>
//
// once per line of output, where an empty directive is an empty line
func extractExpected(t *testing.T, content string) string {
	var expected []string
	for _, line := range strings.Split(content, "\n") {
		if !strings.HasPrefix(line, expectDirective) {
			continue
		}
		expected = append(expected, strings.TrimPrefix(strings.TrimPrefix(line, expectDirective), " "))
	}
	if len(expected) == 0 {
		t.Fatalf("no %s directive found", expectDirective)
	}
	return strings.Join(expected, "\n") + "\n"
}

func TestEndToEnd(t *testing.T) {
	files, err := testSet.ReadDir("testdata")
	assert.NoError(t, err)
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".yaml") {
			continue
		}
		t.Run(f.Name(), func(t *testing.T) {
			content, err := testSet.ReadFile(path.Join("testdata", f.Name()))
			assert.NoError(t, err)

			pkg, errs, err := tydecl.NewPackageFromBytes(content)
			if !assert.NoError(t, err) {
				return
			}
			if !assert.False(t, errs.HasError(), "document errors:\n%s", pkg.FormatErrors()) {
				return
			}

			out, err := pkg.Generate(config.TargetReason)
			assert.NoError(t, err)
			assert.Equal(t, extractExpected(t, string(content)), out)

			goOut, err := pkg.Generate(config.TargetGo)
			assert.NoError(t, err)
			_, err = parser.ParseFile(token.NewFileSet(), f.Name()+".go", goOut, parser.AllErrors)
			assert.NoError(t, err, "go output:\n-------\n%v---------", goOut)
		})
	}
}

func isGeneric(unit backend.Unit) bool {
	for _, d := range unit.All() {
		if len(d.Declaration().Params) > 0 {
			return true
		}
	}
	return false
}

// TestGoOutputCompiles interprets the Go output of every document without type parameters
func TestGoOutputCompiles(t *testing.T) {
	files, err := testSet.ReadDir("testdata")
	assert.NoError(t, err)
	for _, f := range files {
		content, err := testSet.ReadFile(path.Join("testdata", f.Name()))
		assert.NoError(t, err)
		pkg, _, err := tydecl.NewPackageFromBytes(content)
		assert.NoError(t, err)
		unit, err := pkg.Unit()
		assert.NoError(t, err)
		if isGeneric(unit) {
			continue
		}

		t.Run(f.Name(), func(t *testing.T) {
			src, err := golang.NewRenderer("main").RenderUnit(unit)
			if !assert.NoError(t, err) {
				return
			}
			i := interp.New(interp.Options{})
			_, err = i.Eval(src)
			assert.NoError(t, err)
		})
	}
}
