package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/litebase/blockfs/pkg/blocks"
	"github.com/litebase/blockfs/pkg/cli/components"
	"github.com/litebase/blockfs/pkg/config"
	"github.com/litebase/blockfs/pkg/storage"
	"github.com/spf13/cobra"
)

const Version = "0.1.0"

func addCommands(cmd *cobra.Command, c *config.Config) {
	cmd.AddCommand(NewCatCmd(c))
	cmd.AddCommand(NewLsCmd(c))
	cmd.AddCommand(NewMvCmd(c))
	cmd.AddCommand(NewRmCmd(c))
	cmd.AddCommand(NewSQLCmd(c))
	cmd.AddCommand(NewStatCmd(c))
	cmd.AddCommand(NewTruncateCmd(c))
	cmd.AddCommand(NewVersionCmd())
	cmd.AddCommand(NewWriteCmd(c))
}

// NewRoot returns the blockfs command. Flags given on the command line
// override the matching fields of c before any subcommand runs.
func NewRoot(c *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "blockfs <command> [flags]",
		Short:             "Inspect and edit block backed virtual files",
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		SilenceUsage:      true,
		Long:              `Read, write and manage virtual files stored as directories of 4096 byte blocks`,
		Run: func(cmd *cobra.Command, args []string) {
			title := lipgloss.NewStyle().Bold(true).
				Render(fmt.Sprintf("blockfs - v%s", Version))

			fmt.Fprint(cmd.OutOrStdout(), components.Container(
				title,
				components.TabularList([]components.ListItem{
					{Key: "Data path", Value: displayPath(c.DataPath)},
					{Key: "Driver", Value: c.Driver},
					{Key: "VFS", Value: fmt.Sprintf("%s (%s)", c.VFSName, c.Backend)},
				}),
				`For help type "blockfs help"`,
			))
		},
	}

	addCommands(cmd, c)

	cmd.PersistentFlags().StringVar(&c.DataPath, "data-path", c.DataPath, "Directory the virtual file names are resolved in")
	cmd.PersistentFlags().StringVar(&c.Driver, "driver", c.Driver, "Storage driver: local or object")
	cmd.PersistentFlags().StringVar(&c.StorageBucket, "bucket", c.StorageBucket, "Bucket used by the object driver")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return c.Validate()
	}

	return cmd
}

// blockFileSystem builds the block layer over the storage driver selected in
// c.
func blockFileSystem(c *config.Config) (*blocks.FileSystem, error) {
	fileSystem, err := storage.Init(c)

	if err != nil {
		return nil, err
	}

	return blocks.NewFileSystem(fileSystem), nil
}

// openExisting opens name, or fails when it has no block directory.
func openExisting(c *config.Config, name string) (*blocks.FileSystem, *blocks.File, error) {
	bfs, err := blockFileSystem(c)

	if err != nil {
		return nil, nil, err
	}

	exists, err := bfs.Exists(name)

	if err != nil {
		return nil, nil, err
	}

	if !exists {
		return nil, nil, fmt.Errorf("virtual file %q does not exist", name)
	}

	file, err := bfs.Open(name)

	if err != nil {
		return nil, nil, err
	}

	return bfs, file, nil
}

func displayPath(path string) string {
	if path == "" {
		return "."
	}

	return path
}
