package cmd

import (
	"fmt"

	"github.com/litebase/blockfs/pkg/blocks"
	"github.com/litebase/blockfs/pkg/cli/components"
	"github.com/litebase/blockfs/pkg/cli/styles"
	"github.com/litebase/blockfs/pkg/config"
	"github.com/spf13/cobra"
)

func NewStatCmd(c *config.Config) *cobra.Command {
	return NewCommand("stat <file>", "Show the size and block count of a virtual file").
		WithArgs(cobra.ExactArgs(1)).
		WithRunE(func(cmd *cobra.Command, args []string) error {
			_, file, err := openExisting(c, args[0])

			if err != nil {
				return err
			}

			defer file.Close()

			infos, err := file.Blocks()

			if err != nil {
				return err
			}

			size, err := file.Size()

			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), components.Container(
				styles.TitleStyle.Render(args[0]),
				components.TabularList([]components.ListItem{
					{Key: "Size", Value: fmt.Sprintf("%d bytes", size)},
					{Key: "Blocks", Value: fmt.Sprintf("%d of %d bytes", len(infos), blocks.BlockSize)},
					{Key: "Directory", Value: blocks.BlockDir(args[0])},
				}),
			))

			return nil
		}).
		Build()
}
