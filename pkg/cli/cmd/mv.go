package cmd

import (
	"fmt"

	"github.com/litebase/blockfs/pkg/cli/components"
	"github.com/litebase/blockfs/pkg/config"
	"github.com/spf13/cobra"
)

func NewMvCmd(c *config.Config) *cobra.Command {
	return NewCommand("mv <file> <new-name>", "Rename a virtual file").
		WithArgs(cobra.ExactArgs(2)).
		WithRunE(func(cmd *cobra.Command, args []string) error {
			bfs, err := blockFileSystem(c)

			if err != nil {
				return err
			}

			if err := bfs.Rename(args[0], args[1]); err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), components.Container(
				components.SuccessAlert(fmt.Sprintf("Renamed %s to %s", args[0], args[1])),
			))

			return nil
		}).
		Build()
}
