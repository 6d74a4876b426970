package cmd

import (
	"database/sql"
	"fmt"

	"github.com/litebase/blockfs/pkg/cli/components"
	"github.com/litebase/blockfs/pkg/config"
	"github.com/litebase/blockfs/pkg/vfs"
	"github.com/spf13/cobra"

	_ "github.com/mattn/go-sqlite3"
)

func NewSQLCmd(c *config.Config) *cobra.Command {
	return NewCommand("sql <database> <query>", "Run a SQL query against a database stored through the VFS").
		WithLong("Opens the database with SQLite using the configured VFS, so its pages are read from and written to block files.").
		WithArgs(cobra.ExactArgs(2)).
		WithRunE(func(cmd *cobra.Command, args []string) error {
			_, logger, err := vfs.Init(c)

			if err != nil {
				return err
			}

			defer logger.Close()

			db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?vfs=%s", args[0], c.VFSName))

			if err != nil {
				return err
			}

			defer db.Close()

			db.SetMaxOpenConns(1)

			rows, err := db.QueryContext(cmd.Context(), args[1])

			if err != nil {
				return err
			}

			defer rows.Close()

			columns, err := rows.Columns()

			if err != nil {
				return err
			}

			var results [][]string

			for rows.Next() {
				values := make([]sql.NullString, len(columns))
				pointers := make([]any, len(columns))

				for i := range values {
					pointers[i] = &values[i]
				}

				if err := rows.Scan(pointers...); err != nil {
					return err
				}

				row := make([]string, len(columns))

				for i, value := range values {
					if value.Valid {
						row[i] = value.String
					} else {
						row[i] = "NULL"
					}
				}

				results = append(results, row)
			}

			if err := rows.Err(); err != nil {
				return err
			}

			if len(columns) == 0 {
				fmt.Fprint(cmd.OutOrStdout(), components.Container(components.SuccessAlert("Query executed")))
				return nil
			}

			fmt.Fprint(cmd.OutOrStdout(), components.Container(components.Table(columns, results)))

			return nil
		}).
		Build()
}
