package config

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
)

func TestLoadMissingFileIsDefault(t *testing.T) {
	cfg, err := Load(fstest.MapFS{}, FileName)
	assert.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	fsys := fstest.MapFS{
		FileName: &fstest.MapFile{Data: []byte(`
target = "go"
go_package = "model"
emit_top = false
`)},
	}
	cfg, err := Load(fsys, FileName)
	assert.NoError(t, err)
	assert.Equal(t, TargetGo, cfg.Target)
	assert.Equal(t, "model", cfg.GoPackage)
	assert.Equal(t, "t", cfg.TopName)
	assert.Equal(t, 80, cfg.Width)
	assert.Equal(t, "", cfg.EffectiveTopName())
}

func TestParseErrors(t *testing.T) {
	testCases := []struct {
		name, data, errContains string
	}{
		{"unknown key", `colour = "blue"`, "unknown config keys: colour"},
		{"unknown target", `target = "ocaml"`, `unknown target "ocaml"`},
		{"empty top name", `top_name = ""`, "top_name must not be empty"},
		{"negative width", `width = -1`, "width must not be negative"},
		{"bad toml", `target = `, "decode config"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.data), Default())
			assert.ErrorContains(t, err, tc.errContains)
		})
	}
}

func TestEffectiveTopName(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "t", cfg.EffectiveTopName())
	cfg.TopName = "document"
	assert.Equal(t, "document", cfg.EffectiveTopName())
}
