package cmd

import (
	"fmt"
	"strconv"

	"github.com/litebase/blockfs/pkg/cli/components"
	"github.com/litebase/blockfs/pkg/config"
	"github.com/spf13/cobra"
)

func NewTruncateCmd(c *config.Config) *cobra.Command {
	return NewCommand("truncate <file> <size>", "Change the size of a virtual file").
		WithArgs(cobra.ExactArgs(2)).
		WithRunE(func(cmd *cobra.Command, args []string) error {
			size, err := strconv.ParseInt(args[1], 10, 64)

			if err != nil {
				return fmt.Errorf("invalid size %q: %w", args[1], err)
			}

			_, file, err := openExisting(c, args[0])

			if err != nil {
				return err
			}

			defer file.Close()

			if err := file.Truncate(size); err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), components.Container(
				components.SuccessAlert(fmt.Sprintf("Truncated %s to %d bytes", args[0], size)),
			))

			return nil
		}).
		Build()
}
