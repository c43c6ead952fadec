package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/petar-djukic/foodblog/internal/sqlite"
)

func (a *app) newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <database_file> <dir>",
		Short: "Write every table as JSON Lines",
		Long:  "Write each table to <dir>/<table>.jsonl, one row per line.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			err := sqlite.WithSession(ctx, a.storeConfig(args[0]), func(s *sqlite.Store) error {
				if err := s.EnsureSchema(ctx); err != nil {
					return err
				}
				written, err := s.ExportJSONL(ctx, args[1])
				for _, path := range written {
					fmt.Fprintln(cmd.OutOrStdout(), path)
				}
				return err
			})
			return storeError(err)
		},
	}
}

func (a *app) newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <database_file> <dir>",
		Short: "Replace every table with the rows of a JSON Lines export",
		Long: "Load <dir>/<table>.jsonl files written by export into the database,\n" +
			"replacing what it held. Malformed lines are skipped.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			err := sqlite.WithSession(ctx, a.storeConfig(args[0]), func(s *sqlite.Store) error {
				if err := s.EnsureSchema(ctx); err != nil {
					return err
				}
				n, err := s.ImportJSONL(ctx, args[1])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d rows\n", n)
				return nil
			})
			return storeError(err)
		},
	}
}
