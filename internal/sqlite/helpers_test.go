package sqlite

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/foodblog/pkg/types"
)

// testConfig returns a config for a fresh database file in a temp dir.
func testConfig(t *testing.T) types.Config {
	t.Helper()
	return types.Config{
		Path:   filepath.Join(t.TempDir(), "food_blog.db"),
		Logger: slog.New(slog.DiscardHandler),
	}
}

// openStore opens cfg and registers cleanup.
func openStore(t *testing.T, cfg types.Config) *Store {
	t.Helper()
	s, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

// newEmptyStore returns a store with the schema created and no rows.
func newEmptyStore(t *testing.T) *Store {
	t.Helper()
	s := openStore(t, testConfig(t))
	require.NoError(t, s.EnsureSchema(context.Background()))
	return s
}

// newSeededStore returns a store with the schema and the default seeds.
func newSeededStore(t *testing.T) *Store {
	t.Helper()
	s := openStore(t, testConfig(t))
	require.NoError(t, s.Bootstrap(context.Background(), DefaultSeeds()))
	return s
}

// ingredientLine is one (quantity, measure, ingredient) entry for addRecipe.
type ingredientLine struct {
	quantity   int
	measure    string
	ingredient string
}

// addRecipe creates a recipe served at meals with the given ingredient
// lines, resolving names through the seeded reference tables.
func addRecipe(t *testing.T, s *Store, name string, meals []string, lines ...ingredientLine) int64 {
	t.Helper()
	ctx := context.Background()

	recipeID, err := s.CreateRecipe(ctx, name, name+" description")
	require.NoError(t, err)

	for _, meal := range meals {
		rec, err := s.Meals().FindByName(ctx, meal)
		require.NoError(t, err, meal)
		require.NoError(t, s.AttachServe(ctx, recipeID, rec.ID))
	}
	for _, line := range lines {
		ing, err := s.Ingredients().FindByName(ctx, line.ingredient)
		require.NoError(t, err, line.ingredient)
		meas, err := s.Measures().FindByName(ctx, line.measure)
		require.NoError(t, err, line.measure)
		require.NoError(t, s.AttachQuantity(ctx, line.quantity, recipeID, meas.ID, ing.ID))
	}
	return recipeID
}

// countRows returns the number of rows in table.
func countRows(t *testing.T, s *Store, table string) int {
	t.Helper()
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n)
	require.NoError(t, err)
	return n
}

// names extracts record names in order.
func names(records []types.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Name
	}
	return out
}
