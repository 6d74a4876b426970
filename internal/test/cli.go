package test

import (
	"bytes"

	"github.com/litebase/blockfs/pkg/cli/cmd"
	"github.com/litebase/blockfs/pkg/config"
	"github.com/spf13/cobra"
)

type TestCLI struct {
	Cmd          *cobra.Command
	Config       *config.Config
	outputBuffer *bytes.Buffer
}

// NewTestCLI returns the blockfs command bound to c, with its output
// captured. The VFS name is made unique so every CLI registers its own VFS.
func NewTestCLI(c *config.Config) *TestCLI {
	c.VFSName = "blockfs-" + CreateHash(12)

	cli := &TestCLI{
		Config:       c,
		outputBuffer: bytes.NewBuffer(make([]byte, 0)),
	}

	cli.Cmd = cmd.NewRoot(c)
	cli.Cmd.SetOut(cli.outputBuffer)
	cli.Cmd.SetErr(cli.outputBuffer)

	return cli
}

// ClearOutput resets the output buffer for the CLI
func (c *TestCLI) ClearOutput() {
	c.outputBuffer.Reset()
}

// GetOutput returns the current output buffer content for debugging
func (c *TestCLI) GetOutput() string {
	return c.outputBuffer.String()
}

// Run executes the CLI command with the provided arguments
func (c *TestCLI) Run(args ...string) error {
	if args == nil {
		args = []string{}
	}

	c.Cmd.SetArgs(args)

	return c.Cmd.Execute()
}

// RunWithInput executes the CLI command reading stdin from input
func (c *TestCLI) RunWithInput(input []byte, args ...string) error {
	c.Cmd.SetIn(bytes.NewReader(input))

	return c.Run(args...)
}

// Check if the output buffer does not contain the expected text
func (c *TestCLI) DoesntSee(text string) bool {
	return !c.Sees(text)
}

// Check if the output buffer contains the expected text
func (c *TestCLI) Sees(text string) bool {
	return bytes.Contains(c.outputBuffer.Bytes(), []byte(text))
}
