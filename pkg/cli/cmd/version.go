package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewVersionCmd() *cobra.Command {
	return NewCommand("version", "Print the version of blockfs").
		WithArgs(cobra.NoArgs).
		WithRunE(func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "blockfs v%s\n", Version)

			return nil
		}).
		Build()
}
