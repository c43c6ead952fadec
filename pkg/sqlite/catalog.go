// Package sqlite is the public entry point to the SQLite recipe catalog.
// It exposes constructors returning types.Catalog while keeping the store
// implementation internal.
package sqlite

import (
	"context"

	"github.com/petar-djukic/foodblog/internal/sqlite"
	"github.com/petar-djukic/foodblog/pkg/types"
)

// Open opens the catalog at cfg.Path, creates any missing tables and
// reseeds the reference tables from seeds. A zero Seeds uses DefaultSeeds.
// The caller must Close the result.
//
// Example:
//
//	catalog, err := sqlite.Open(ctx, types.Config{Path: "food_blog.db"}, types.Seeds{})
//	if err != nil {
//	    return err
//	}
//	defer catalog.Close()
func Open(ctx context.Context, cfg types.Config, seeds types.Seeds) (types.Catalog, error) {
	s, err := sqlite.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if seeds.Meals == nil && seeds.Ingredients == nil && seeds.Measures == nil {
		seeds = sqlite.DefaultSeeds()
	}
	if err := s.Bootstrap(ctx, seeds); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// DefaultSeeds returns the built-in meals, ingredients and measures.
func DefaultSeeds() types.Seeds {
	return sqlite.DefaultSeeds()
}
