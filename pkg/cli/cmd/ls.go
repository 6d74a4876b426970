package cmd

import (
	"fmt"
	"strconv"

	"github.com/litebase/blockfs/pkg/blocks"
	"github.com/litebase/blockfs/pkg/cli/components"
	"github.com/litebase/blockfs/pkg/config"
	"github.com/spf13/cobra"
)

func NewLsCmd(c *config.Config) *cobra.Command {
	return NewCommand("ls <file>", "List the block files of a virtual file").
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

			rows := make([][]string, 0, len(infos))

			for _, info := range infos {
				rows = append(rows, []string{
					strconv.FormatInt(info.Index, 10),
					blocks.BlockFileName(info.Index),
					strconv.FormatInt(info.Index*blocks.BlockSize, 10),
					strconv.FormatInt(info.Size, 10),
				})
			}

			fmt.Fprint(cmd.OutOrStdout(), components.Container(
				components.Table([]string{"Index", "Name", "Offset", "Size"}, rows),
			))

			return nil
		}).
		Build()
}
