// Package config reads tydecl.toml, the per-project settings of the tydecl command
package config

import (
	"io/fs"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// FileName is looked up next to the input document
const FileName = "tydecl.toml"

const (
	TargetReason = "reason"
	TargetGo     = "go"
)

var Targets = []string{TargetReason, TargetGo}

type Config struct {
	// Target is the output language, one of Targets
	Target string `toml:"target"`

	// TopName names the alias declared for the document's type itself
	TopName string `toml:"top_name"`

	// EmitTop controls whether that alias is declared at all
	EmitTop bool `toml:"emit_top"`

	// Width is the column past which ReasonML declarations are broken
	Width int `toml:"width"`

	// GoPackage is the package clause of Go output
	GoPackage string `toml:"go_package"`
}

func Default() Config {
	return Config{
		Target:    TargetReason,
		TopName:   "t",
		EmitTop:   true,
		Width:     80,
		GoPackage: "types",
	}
}

// Load reads path from fsys over Default. A missing file is not an error
func Load(fsys fs.FS, path string) (Config, error) {
	cfg := Default()
	data, err := fs.ReadFile(fsys, path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrapf(err, "read %s", path)
	}
	return Parse(data, cfg)
}

// Parse decodes data over base, rejecting unknown keys
func Parse(data []byte, base Config) (Config, error) {
	cfg := base
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return base, errors.Wrap(err, "decode config")
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return base, errors.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if !slices.Contains(Targets, c.Target) {
		return errors.Errorf("unknown target %q, expected one of %s", c.Target, strings.Join(Targets, ", "))
	}
	if c.EmitTop && c.TopName == "" {
		return errors.New("top_name must not be empty when emit_top is set")
	}
	if c.Width < 0 {
		return errors.Errorf("width must not be negative, got %d", c.Width)
	}
	return nil
}

// EffectiveTopName is TopName, or empty when no top-level alias should be declared
func (c Config) EffectiveTopName() string {
	if !c.EmitTop {
		return ""
	}
	return c.TopName
}
