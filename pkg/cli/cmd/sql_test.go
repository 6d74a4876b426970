package cmd_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/litebase/blockfs/internal/test"
	"github.com/litebase/blockfs/pkg/config"
)

func TestSQLCmd(t *testing.T) {
	test.Run(t, func(c *config.Config) {
		cli := test.NewTestCLI(c)

		if err := cli.Run("sql", "app.db", "CREATE TABLE kv (k TEXT, v TEXT)"); err != nil {
			t.Fatalf("sql returned an error: %v", err)
		}

		if !cli.Sees("Query executed") {
			t.Errorf("unexpected sql output %q", cli.GetOutput())
		}

		cli = test.NewTestCLI(c)

		if err := cli.Run("sql", "app.db", "INSERT INTO kv VALUES ('greeting', 'hello')"); err != nil {
			t.Fatal(err)
		}

		cli = test.NewTestCLI(c)

		if err := cli.Run("sql", "app.db", "SELECT k, v FROM kv"); err != nil {
			t.Fatal(err)
		}

		if !cli.Sees("greeting") || !cli.Sees("hello") {
			t.Errorf("sql output %q does not contain the row", cli.GetOutput())
		}

		if _, err := os.Stat(filepath.Join(c.DataPath, "app.db.blocks", "block_000000")); err != nil {
			t.Errorf("database block is missing: %v", err)
		}
	})
}
