package cmd

import (
	"github.com/litebase/blockfs/internal/utils"
	"github.com/litebase/blockfs/pkg/config"
	"github.com/spf13/cobra"
)

func NewCatCmd(c *config.Config) *cobra.Command {
	var offset, length int64

	return NewCommand("cat <file>", "Write the contents of a virtual file to stdout").
		WithLong("Unwritten ranges read as zero bytes. Without --length the file is read up to its end.").
		WithArgs(cobra.ExactArgs(1)).
		WithExample("  blockfs cat app.db --offset 4096 --length 100").
		WithFlags(func(cmd *cobra.Command) {
			cmd.Flags().Int64Var(&offset, "offset", 0, "Byte offset to start reading at")
			cmd.Flags().Int64Var(&length, "length", -1, "Number of bytes to read")
		}).
		WithCheck(nonNegative("offset", &offset)).
		WithRunE(func(cmd *cobra.Command, args []string) error {
			_, file, err := openExisting(c, args[0])

			if err != nil {
				return err
			}

			defer file.Close()

			n := length

			if n < 0 {
				size, err := file.Size()

				if err != nil {
					return err
				}

				n = max(size-offset, 0)
			}

			size, err := utils.SafeInt64ToInt(n)

			if err != nil {
				return err
			}

			data, err := file.Read(size, offset)

			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(data)

			return err
		}).
		Build()
}
