package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Command assembles a cobra command. Flags are registered when the command
// is built and checks run in order before the command body.
type Command struct {
	checks  []func(cmd *cobra.Command, args []string) error
	command *cobra.Command
	flags   []func(cmd *cobra.Command)
	runE    func(cmd *cobra.Command, args []string) error
}

func NewCommand(use, short string) *Command {
	return &Command{
		command: &cobra.Command{
			Use:   use,
			Short: short,
		},
	}
}

func (c *Command) Build() *cobra.Command {
	for _, flags := range c.flags {
		flags(c.command)
	}

	if c.runE == nil {
		return c.command
	}

	c.command.RunE = func(cmd *cobra.Command, args []string) error {
		for _, check := range c.checks {
			if err := check(cmd, args); err != nil {
				return err
			}
		}

		return c.runE(cmd, args)
	}

	return c.command
}

func (c *Command) WithArgs(args cobra.PositionalArgs) *Command {
	c.command.Args = args

	return c
}

// WithCheck adds a check that must pass before the command runs.
func (c *Command) WithCheck(check func(cmd *cobra.Command, args []string) error) *Command {
	c.checks = append(c.checks, check)

	return c
}

func (c *Command) WithExample(example string) *Command {
	c.command.Example = example

	return c
}

func (c *Command) WithFlags(flags func(cmd *cobra.Command)) *Command {
	c.flags = append(c.flags, flags)

	return c
}

func (c *Command) WithLong(long string) *Command {
	c.command.Long = long

	return c
}

func (c *Command) WithRunE(run func(cmd *cobra.Command, args []string) error) *Command {
	c.runE = run

	return c
}

// nonNegative rejects a negative value for the named flag.
func nonNegative(flag string, value *int64) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if *value < 0 {
			return fmt.Errorf("--%s must not be negative, got %d", flag, *value)
		}

		return nil
	}
}
