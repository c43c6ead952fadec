package types

import "context"

// NameRepository is the capability set shared by every table with a single
// name column. Implementations bind one table of the registry.
type NameRepository interface {
	// Table returns the bound table name.
	Table() string

	// Insert adds one row with the given name.
	Insert(ctx context.Context, name string) error

	// InsertMany adds one row per name in a single transaction. Either all
	// rows are written or none are.
	InsertMany(ctx context.Context, names []string) error

	// FindByName returns the first row with the given name.
	// Returns ErrNotFound if no row matches.
	FindByName(ctx context.Context, name string) (Record, error)

	// ListAll returns every row in store order.
	ListAll(ctx context.Context) ([]Record, error)

	// DeleteByName removes every row with the given name and returns the
	// number of rows removed.
	DeleteByName(ctx context.Context, name string) (int64, error)
}

// Catalog is the recipe catalog as seen by the CLI and the interactive
// entry session.
type Catalog interface {
	Meals() NameRepository
	Ingredients() NameRepository
	Measures() NameRepository
	Recipes() NameRepository

	// CreateRecipe inserts a recipe and returns its id.
	CreateRecipe(ctx context.Context, name, description string) (int64, error)

	// AttachServe marks a recipe as servable at a meal. Duplicate pairs are
	// not rejected.
	AttachServe(ctx context.Context, recipeID, mealID int64) error

	// AttachQuantity adds one ingredient line to a recipe.
	AttachQuantity(ctx context.Context, quantity int, recipeID, measureID, ingredientID int64) error

	// FindRecipes returns the names of recipes that contain the ingredients
	// and are served at one of the meals, joined with ", ".
	FindRecipes(ctx context.Context, ingredients, meals []string) (string, error)

	// Close releases the store handle.
	Close() error
}
