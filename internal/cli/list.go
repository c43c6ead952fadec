package cli

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/petar-djukic/foodblog/internal/sqlite"
	"github.com/petar-djukic/foodblog/pkg/types"
)

func (a *app) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <database_file> <table>",
		Short: "Print every row of a table",
		Long:  "Print the rows of meals, ingredients, measures or recipes as a table.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			table := args[1]
			if _, err := types.LookupTable(table); err != nil {
				return fmt.Errorf("table %q: %w", table, err)
			}

			err := sqlite.WithSession(ctx, a.storeConfig(args[0]), func(s *sqlite.Store) error {
				if err := s.EnsureSchema(ctx); err != nil {
					return err
				}
				records, err := s.SelectAll(ctx, table)
				if err != nil {
					return err
				}
				renderRecords(cmd.OutOrStdout(), table, records)
				return nil
			})
			return storeError(err)
		},
	}
}

// renderRecords writes records as a table followed by a row count.
func renderRecords(w io.Writer, name string, records []types.Record) {
	if len(records) == 0 {
		fmt.Fprintln(w, "(0 rows)")
		return
	}

	withDesc := name == types.RecipesTable
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	header := table.Row{"ID", "Name"}
	if withDesc {
		header = append(header, "Description")
	}
	t.AppendHeader(header)

	for _, rec := range records {
		row := table.Row{rec.ID, rec.Name}
		if withDesc {
			row = append(row, rec.Description)
		}
		t.AppendRow(row)
	}

	t.Render()
	fmt.Fprintf(w, "(%d rows)\n", len(records))
}
