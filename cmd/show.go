package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var ShowCmd = &cobra.Command{
	Use:          "show ./folder|file.yaml",
	Short:        "Show a decoded type document and the declarations it extracts to",
	RunE:         runShow,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
}

var showFlags *loadFlags

func init() {
	showFlags = addLoadFlags(ShowCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	pkg, err := showFlags.load(cmd, args)
	if err != nil {
		return err
	}
	shown, err := pkg.Show()
	if err != nil {
		return fmt.Errorf("could not show document: %w", err)
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), shown)
	return err
}
