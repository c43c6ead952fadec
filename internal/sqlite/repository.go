package sqlite

import (
	"context"

	"github.com/petar-djukic/foodblog/pkg/types"
)

// nameRepository binds the generic record primitives to one table.
type nameRepository struct {
	store *Store
	table string
}

var _ types.NameRepository = (*nameRepository)(nil)

// Meals returns the repository for the meals table.
func (s *Store) Meals() types.NameRepository {
	return &nameRepository{store: s, table: types.MealsTable}
}

// Ingredients returns the repository for the ingredients table.
func (s *Store) Ingredients() types.NameRepository {
	return &nameRepository{store: s, table: types.IngredientsTable}
}

// Measures returns the repository for the measures table.
func (s *Store) Measures() types.NameRepository {
	return &nameRepository{store: s, table: types.MeasuresTable}
}

// Recipes returns the repository for the recipes table.
func (s *Store) Recipes() types.NameRepository {
	return &nameRepository{store: s, table: types.RecipesTable}
}

func (r *nameRepository) Table() string {
	return r.table
}

func (r *nameRepository) Insert(ctx context.Context, name string) error {
	return r.store.InsertOne(ctx, r.table, name)
}

func (r *nameRepository) InsertMany(ctx context.Context, names []string) error {
	return r.store.InsertMany(ctx, r.table, names)
}

func (r *nameRepository) FindByName(ctx context.Context, name string) (types.Record, error) {
	return r.store.SelectOneByName(ctx, r.table, name)
}

func (r *nameRepository) ListAll(ctx context.Context) ([]types.Record, error) {
	return r.store.SelectAll(ctx, r.table)
}

func (r *nameRepository) DeleteByName(ctx context.Context, name string) (int64, error) {
	return r.store.DeleteByName(ctx, r.table, name)
}
