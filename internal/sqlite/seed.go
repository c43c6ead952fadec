package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/petar-djukic/foodblog/pkg/types"
)

// DefaultSeeds returns the reference data written when no other seeds are
// configured. The empty measure means "no unit".
func DefaultSeeds() types.Seeds {
	return types.Seeds{
		Meals:       []string{"breakfast", "brunch", "lunch", "supper"},
		Ingredients: []string{"milk", "cacao", "strawberry", "blueberry", "blackberry", "sugar"},
		Measures:    []string{"ml", "g", "l", "cup", "tbsp", "tsp", "dsp", ""},
	}
}

// Seed replaces the rows of the reference tables with seeds. The clear and
// every insert share one transaction: if any seed is rejected the previous
// rows are kept and the error is returned.
func (s *Store) Seed(ctx context.Context, seeds types.Seeds) error {
	err := s.withDB(ctx, "seed", func(db *sql.DB) error {
		return withForeignKeysOff(ctx, db, func(tx *sql.Tx) error {
			if err := clearReferenceTables(ctx, tx); err != nil {
				return err
			}
			for _, table := range types.ReferenceTableNames {
				spec, err := types.LookupTable(table)
				if err != nil {
					return err
				}
				if err := insertNames(ctx, tx, spec, seeds.ForTable(table)); err != nil {
					return fmt.Errorf("seeding %s: %w", table, err)
				}
			}
			return nil
		})
	})
	if err != nil {
		return err
	}
	s.log.Info("reference tables seeded",
		"meals", len(seeds.Meals),
		"ingredients", len(seeds.Ingredients),
		"measures", len(seeds.Measures))
	return nil
}

// Bootstrap ensures the schema exists and reseeds the reference tables. It is
// the startup sequence of the CLI.
func (s *Store) Bootstrap(ctx context.Context, seeds types.Seeds) error {
	if err := s.EnsureSchema(ctx); err != nil {
		return err
	}
	return s.Seed(ctx, seeds)
}
