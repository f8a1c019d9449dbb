package frontend

import (
	"testing"

	"github.com/cottand/tydecl/frontend/ilerr"
	"github.com/cottand/tydecl/frontend/ir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string) Document {
	t.Helper()
	doc, errs := ParseDocument([]byte(src))
	if errs.HasError() {
		for _, err := range errs.Errors() {
			t.Errorf("  %s", ilerr.FormatWithCodeAndSource(err, []byte(src)))
		}
		t.FailNow()
	}
	return doc
}

func TestParseList(t *testing.T) {
	doc := mustParse(t, `
name: ints
free: [a]
type:
  recursive: list
  constructors:
    - Nil
    - name: Cons
      type:
        product: [{var: 1}, {var: 0}]
`)
	assert.Equal(t, "ints", doc.Name)
	assert.Equal(t, []string{"a"}, doc.Free)
	assert.Equal(t, &ir.Recursive{
		Name: "list",
		Constructors: []ir.Constructor{
			{Name: "Nil", Type: &ir.Unit{}},
			{Name: "Cons", Type: ir.NewProduct(&ir.BoundVar{Index: 1}, &ir.BoundVar{Index: 0})},
		},
	}, doc.Type)
	assert.Equal(t, 1, doc.Env().Len())
}

func TestParseScalarsAndComposites(t *testing.T) {
	doc := mustParse(t, `
type:
  product:
    - unit
    - sum: [unit, void, {named: flag, type: unit}]
`)
	assert.Equal(t, ir.NewProduct(
		&ir.Unit{},
		ir.NewSum(&ir.Unit{}, &ir.Void{}, &ir.Named{Name: "flag", Body: &ir.Unit{}}),
	), doc.Type)
	assert.Empty(t, doc.Name)
	assert.Equal(t, 0, doc.Env().Len())
}

func TestParseFollowsAliases(t *testing.T) {
	doc := mustParse(t, `
free: [a]
type:
  product:
    - &elem {var: 0}
    - *elem
`)
	assert.Equal(t, ir.NewProduct(&ir.BoundVar{Index: 0}, &ir.BoundVar{Index: 0}), doc.Type)
}

func TestParseRecursiveWithoutConstructors(t *testing.T) {
	doc := mustParse(t, `type: {recursive: never}`)
	assert.Equal(t, &ir.Recursive{Name: "never"}, doc.Type)
}

func TestParseErrors(t *testing.T) {
	testCases := []struct {
		name     string
		src      string
		expected []ilerr.ErrCode
	}{
		{
			name:     "not yaml",
			src:      "type: [unit",
			expected: []ilerr.ErrCode{ilerr.Parse},
		},
		{
			name:     "missing type",
			src:      "name: x",
			expected: []ilerr.ErrCode{ilerr.Parse},
		},
		{
			name:     "unknown scalar kind",
			src:      "type: int",
			expected: []ilerr.ErrCode{ilerr.UnknownTypeKind},
		},
		{
			name:     "sum of one",
			src:      "type: {sum: [unit]}",
			expected: []ilerr.ErrCode{ilerr.Arity},
		},
		{
			name:     "product of none",
			src:      "type: {product: []}",
			expected: []ilerr.ErrCode{ilerr.Arity},
		},
		{
			name:     "unbound variable at top level",
			src:      "free: [a]\ntype: {var: 1}",
			expected: []ilerr.ErrCode{ilerr.UnboundVariable},
		},
		{
			name: "recursive binder counts towards scope",
			src: `
type:
  recursive: r
  constructors:
    - {name: Ok, type: {var: 0}}
    - {name: Bad, type: {var: 1}}
`,
			expected: []ilerr.ErrCode{ilerr.UnboundVariable},
		},
		{
			name:     "duplicate constructors",
			src:      "type: {recursive: r, constructors: [A, B, A]}",
			expected: []ilerr.ErrCode{ilerr.DuplicateConstructor},
		},
		{
			name:     "constructor without name",
			src:      "type: {recursive: r, constructors: [{type: unit}]}",
			expected: []ilerr.ErrCode{ilerr.EmptyName},
		},
		{
			name:     "unexpected key",
			src:      "type: unit\nextra: 1",
			expected: []ilerr.ErrCode{ilerr.Parse},
		},
		{
			name:     "duplicate free variables",
			src:      "free: [a, a]\ntype: unit",
			expected: []ilerr.ErrCode{ilerr.Parse},
		},
		{
			name:     "null variable",
			src:      "free: [a]\ntype: {var: ~}",
			expected: []ilerr.ErrCode{ilerr.Parse},
		},
		{
			name:     "variable given as a string",
			src:      "free: [a]\ntype: {var: \"0\"}",
			expected: []ilerr.ErrCode{ilerr.Parse},
		},
		{
			name:     "more than one kind",
			src:      "type: {sum: [unit, unit], product: [unit, unit]}",
			expected: []ilerr.ErrCode{ilerr.Parse},
		},
		{
			name:     "constructors without recursive",
			src:      "type: {sum: [unit, unit], constructors: [A]}",
			expected: []ilerr.ErrCode{ilerr.Parse},
		},
		{
			name:     "type without named",
			src:      "type: {product: [unit, unit], type: unit}",
			expected: []ilerr.ErrCode{ilerr.Parse},
		},
		{
			name:     "free variables printed alike",
			src:      "free: [A, a]\ntype: unit",
			expected: []ilerr.ErrCode{ilerr.NameCollision},
		},
		{
			name:     "constructors printed alike",
			src:      "type: {recursive: r, constructors: [red, Red]}",
			expected: []ilerr.ErrCode{ilerr.NameCollision},
		},
		{
			name:     "several errors are all reported",
			src:      "type: {product: [{sum: [unit]}, int]}",
			expected: []ilerr.ErrCode{ilerr.Arity, ilerr.UnknownTypeKind},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, errs := ParseDocument([]byte(tc.src))
			require.True(t, errs.HasError())
			assert.Equal(t, tc.expected, errs.Codes())
		})
	}
}

func TestDuplicateConstructorNamesAreReported(t *testing.T) {
	_, errs := ParseDocument([]byte("type: {recursive: r, constructors: [B, A, B, A, B, C]}"))
	require.Len(t, errs.Errors(), 1)
	assert.Equal(t, "type 'r' declares constructors more than once: A, B", errs.Errors()[0].Error())
	assert.Equal(t, ir.Position{Line: 1, Column: 36}, errs.Errors()[0].Pos())
}

func TestNameCollisionsAreReported(t *testing.T) {
	_, errs := ParseDocument([]byte("free: [x, my-var, my_var]\ntype: unit"))
	require.Len(t, errs.Errors(), 1)
	assert.Equal(t, "free variables my-var, my_var would be printed with the same name", errs.Errors()[0].Error())
	assert.Equal(t, ir.Position{Line: 1, Column: 7}, errs.Errors()[0].Pos())
}

func TestCollisions(t *testing.T) {
	assert.Empty(t, collisions(nil, false))
	assert.Empty(t, collisions([]string{"a", "a", "b"}, false))
	assert.Equal(t, []string{"A", "a"}, collisions([]string{"a", "b", "A"}, false))
	assert.Equal(t, []string{"1x", "_1x"}, collisions([]string{"_1x", "1x"}, true))
}

func TestDuplicates(t *testing.T) {
	assert.Empty(t, duplicates(nil))
	assert.Empty(t, duplicates([]string{"a", "b"}))
	assert.Equal(t, []string{"a"}, duplicates([]string{"a", "b", "a", "a"}))
}
