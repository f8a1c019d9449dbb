package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cottand/tydecl/internal/config"
	"github.com/cottand/tydecl/internal/log"
	"github.com/cottand/tydecl/tydecl"
	"github.com/spf13/cobra"
)

// flags shared by every subcommand that loads a document
type loadFlags struct {
	logLevel *int
	target   *string
	name     *string
	noTop    *bool
	width    *int
	goPkg    *string
}

func addLoadFlags(cmd *cobra.Command) *loadFlags {
	return &loadFlags{
		logLevel: cmd.Flags().IntP("log-level", "l", int(slog.LevelError), "log level"),
		target:   cmd.Flags().StringP("target", "t", "", "output language, reason or go"),
		name:     cmd.Flags().String("name", "", "name of the top-level alias, over the document's own name"),
		noTop:    cmd.Flags().Bool("no-top", false, "do not declare a top-level alias"),
		width:    cmd.Flags().IntP("width", "w", 0, "line width of ReasonML output"),
		goPkg:    cmd.Flags().String("package", "", "package name of Go output"),
	}
}

// overrides applies the flags the user set over cfg
func (f *loadFlags) overrides(cmd *cobra.Command, cfg config.Config) (config.Config, error) {
	if cmd.Flags().Changed("target") {
		cfg.Target = *f.target
	}
	if cmd.Flags().Changed("no-top") {
		cfg.EmitTop = !*f.noTop
	}
	if cmd.Flags().Changed("width") {
		cfg.Width = *f.width
	}
	if cmd.Flags().Changed("package") {
		cfg.GoPackage = *f.goPkg
	}
	return cfg, cfg.Validate()
}

// load reads the document at args[0], with the tydecl.toml next to it
func (f *loadFlags) load(cmd *cobra.Command, args []string) (*tydecl.Package, error) {
	log.SetLevel(slog.Level(*f.logLevel))

	target, err := filepath.Abs(args[0])
	if err != nil {
		return nil, fmt.Errorf("could not get absolute path of target: %w", err)
	}

	stat, err := os.Stat(target)
	if err != nil {
		return nil, fmt.Errorf("could not stat target: %w", err)
	}

	settings := tydecl.PkgLoadSettings{}
	rootDir := target
	if !stat.IsDir() {
		rootDir = filepath.Dir(target)
		settings.File = filepath.Base(target)
	}
	folderFS := os.DirFS(rootDir)

	cfg, err := config.Load(folderFS, config.FileName)
	if err != nil {
		return nil, fmt.Errorf("could not load %s: %w", config.FileName, err)
	}
	cfg, err = f.overrides(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}
	settings.Config = &cfg
	if cmd.Flags().Changed("name") {
		if *f.name == "" {
			return nil, fmt.Errorf("invalid flags: --name must not be empty")
		}
		settings.TopName = *f.name
	}

	pkg, err := tydecl.LoadPackage(folderFS, settings)
	if err != nil {
		return nil, fmt.Errorf("could not load package (this is a bug and not a document error): %w", err)
	}
	if pkg.Errors().HasError() {
		return nil, fmt.Errorf("errors found in document:\n%s", pkg.FormatErrors())
	}
	return pkg, nil
}
