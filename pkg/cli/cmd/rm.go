package cmd

import (
	"fmt"

	"github.com/litebase/blockfs/pkg/cli/components"
	"github.com/litebase/blockfs/pkg/config"
	"github.com/spf13/cobra"
)

func NewRmCmd(c *config.Config) *cobra.Command {
	return NewCommand("rm <file>", "Delete a virtual file and all of its blocks").
		WithArgs(cobra.ExactArgs(1)).
		WithRunE(func(cmd *cobra.Command, args []string) error {
			bfs, err := blockFileSystem(c)

			if err != nil {
				return err
			}

			if err := bfs.Delete(args[0]); err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), components.Container(
				components.SuccessAlert(fmt.Sprintf("Deleted %s", args[0])),
			))

			return nil
		}).
		Build()
}
