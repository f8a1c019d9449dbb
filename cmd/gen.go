package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cottand/tydecl/tydecl"
	"github.com/spf13/cobra"
)

var GenCmd = &cobra.Command{
	Use:          "gen ./folder|file.yaml",
	Short:        "Generate type declarations for a type document",
	RunE:         runGen,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
}

var (
	genOutPath *string
	genFlags   *loadFlags
)

func init() {
	genOutPath = GenCmd.Flags().StringP("out", "o", "", "output directory, stdout when empty")
	genFlags = addLoadFlags(GenCmd)
}

func runGen(cmd *cobra.Command, args []string) error {
	pkg, err := genFlags.load(cmd, args)
	if err != nil {
		return err
	}

	out, err := pkg.Generate(pkg.Config.Target)
	if err != nil {
		return fmt.Errorf("could not generate declarations: %w", err)
	}

	if *genOutPath == "" {
		_, err = fmt.Fprint(cmd.OutOrStdout(), out)
		return err
	}

	err = os.MkdirAll(*genOutPath, os.ModePerm)
	if err != nil {
		return fmt.Errorf("could not create output directory: %w", err)
	}
	at := filepath.Join(*genOutPath, pkg.Name()+tydecl.Extension(pkg.Config.Target))
	if err := os.WriteFile(at, []byte(out), 0o644); err != nil {
		return fmt.Errorf("could not write %s: %w", at, err)
	}
	return nil
}
