package cmd

import (
	"fmt"
	"io"

	"github.com/litebase/blockfs/pkg/cli/components"
	"github.com/litebase/blockfs/pkg/config"
	"github.com/spf13/cobra"
)

func NewWriteCmd(c *config.Config) *cobra.Command {
	var offset int64

	return NewCommand("write <file> [data]", "Write data to a virtual file").
		WithLong("Writes data at --offset, creating the virtual file if needed. Data is read from stdin when it is not given as an argument.").
		WithArgs(cobra.RangeArgs(1, 2)).
		WithExample("  blockfs write app.db hello --offset 4094\n  cat page.bin | blockfs write app.db --offset 8192").
		WithFlags(func(cmd *cobra.Command) {
			cmd.Flags().Int64Var(&offset, "offset", 0, "Byte offset to start writing at")
		}).
		WithCheck(nonNegative("offset", &offset)).
		WithRunE(func(cmd *cobra.Command, args []string) error {
			var data []byte

			if len(args) == 2 {
				data = []byte(args[1])
			} else {
				input, err := io.ReadAll(cmd.InOrStdin())

				if err != nil {
					return err
				}

				data = input
			}

			bfs, err := blockFileSystem(c)

			if err != nil {
				return err
			}

			file, err := bfs.Open(args[0])

			if err != nil {
				return err
			}

			defer file.Close()

			n, err := file.Write(data, offset)

			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), components.Container(
				components.SuccessAlert(fmt.Sprintf("Wrote %d bytes to %s at offset %d", n, args[0], offset)),
			))

			return nil
		}).
		Build()
}
