package sqlite

import (
	"context"

	"github.com/petar-djukic/foodblog/pkg/types"
)

// CreateRecipe inserts one recipe and returns its id. Names need not be
// unique.
func (s *Store) CreateRecipe(ctx context.Context, name, description string) (int64, error) {
	id, err := s.insertRow(ctx, types.RecipesTable,
		[]string{"recipe_name", "recipe_description"},
		[]any{name, description})
	if err != nil {
		return 0, err
	}
	s.log.Debug("recipe created", "recipe_id", id, "name", name)
	return id, nil
}

// AttachServe links a recipe to a meal. Calling it twice with the same pair
// creates two rows. Unknown ids fail with ErrConstraintViolation.
func (s *Store) AttachServe(ctx context.Context, recipeID, mealID int64) error {
	_, err := s.insertRow(ctx, types.ServeTable,
		[]string{"recipe_id", "meal_id"},
		[]any{recipeID, mealID})
	return err
}

// AttachQuantity adds one ingredient line to a recipe. The amount is not
// range checked.
func (s *Store) AttachQuantity(ctx context.Context, quantity int, recipeID, measureID, ingredientID int64) error {
	_, err := s.insertRow(ctx, types.QuantityTable,
		[]string{"quantity", "recipe_id", "measure_id", "ingredient_id"},
		[]any{quantity, recipeID, measureID, ingredientID})
	return err
}
