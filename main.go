//go:build !(js || wasm)

package main

import (
	"os"

	"github.com/cottand/tydecl/cmd"
	"github.com/spf13/cobra"
)

func main() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "tydecl [subcommand]",
	Short:        "tydecl\n turns algebraic type documents into ReasonML or Go type declarations",
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(cmd.GenCmd)
	rootCmd.AddCommand(cmd.ShowCmd)
}
