package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// legacySingleIngredient is the ingredient a single-ingredient search matches
// unless strict search is enabled, whatever ingredient was requested.
const legacySingleIngredient = "cacao"

const recipeJoin = `SELECT r.recipe_name
FROM recipes r
JOIN quantity q ON r.recipe_id = q.recipe_id
JOIN ingredients i ON q.ingredient_id = i.ingredient_id
JOIN serve s ON r.recipe_id = s.recipe_id
JOIN meals m ON s.meal_id = m.meal_id`

// recipeQuery is a search statement and its bound arguments.
type recipeQuery struct {
	text string
	args []any
}

// buildRecipeQuery builds the search statement. The second return is false
// when the search cannot match anything and no query should run.
//
// With several ingredients a recipe must contain all of them (the WHERE
// clause ORs the names and HAVING counts the distinct matches) and be served
// at one or more of the meals. With a single ingredient and strict unset the
// ingredient is replaced by legacySingleIngredient and rows are grouped per
// meal.
func buildRecipeQuery(ingredients, meals []string, strict bool) (recipeQuery, bool) {
	ingredients = distinct(ingredients)
	meals = distinct(meals)
	if len(ingredients) == 0 || len(meals) == 0 {
		return recipeQuery{}, false
	}

	var q recipeQuery
	var sb strings.Builder
	sb.WriteString(recipeJoin)

	if len(ingredients) == 1 && !strict {
		sb.WriteString("\nWHERE (i.ingredient_name = ?)")
		q.args = append(q.args, legacySingleIngredient)
		fmt.Fprintf(&sb, "\nAND (m.meal_name IN (%s))", placeholders(len(meals)))
		for _, m := range meals {
			q.args = append(q.args, m)
		}
		sb.WriteString("\nGROUP BY m.meal_name")
		q.text = sb.String()
		return q, true
	}

	terms := make([]string, len(ingredients))
	for i, ing := range ingredients {
		terms[i] = "i.ingredient_name = ?"
		q.args = append(q.args, ing)
	}
	fmt.Fprintf(&sb, "\nWHERE (%s)", strings.Join(terms, " OR "))
	fmt.Fprintf(&sb, "\nAND (m.meal_name IN (%s))", placeholders(len(meals)))
	for _, m := range meals {
		q.args = append(q.args, m)
	}
	sb.WriteString("\nGROUP BY r.recipe_name")
	sb.WriteString("\nHAVING COUNT(DISTINCT i.ingredient_name) = ?")
	q.args = append(q.args, len(ingredients))

	q.text = sb.String()
	return q, true
}

// FindRecipeNames returns the names of recipes that contain every ingredient
// and are served at one or more of the meals. Names may repeat.
//
// Repeated ingredients and meals are dropped before the query is chosen, so
// a list that names one ingredient several times is a single-ingredient
// search and, unless strict search is set, matches on "cacao".
func (s *Store) FindRecipeNames(ctx context.Context, ingredients, meals []string) ([]string, error) {
	q, ok := buildRecipeQuery(ingredients, meals, s.config.StrictSearch)
	if !ok {
		return nil, nil
	}
	s.log.Debug("searching recipes",
		"ingredients", len(ingredients), "meals", len(meals), "strict", s.config.StrictSearch)

	var names []string
	err := s.withDB(ctx, "find recipes", func(db *sql.DB) error {
		names = names[:0]
		rows, err := db.QueryContext(ctx, q.text, q.args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var name string
			if err := rows.Scan(&name); err != nil {
				return err
			}
			names = append(names, name)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("finding recipes: %w", err)
	}
	return names, nil
}

// FindRecipes is FindRecipeNames joined with ", ". No match gives "".
func (s *Store) FindRecipes(ctx context.Context, ingredients, meals []string) (string, error) {
	names, err := s.FindRecipeNames(ctx, ingredients, meals)
	if err != nil {
		return "", err
	}
	return strings.Join(names, ", "), nil
}

// distinct drops repeated values, keeping first occurrences in order.
func distinct(values []string) []string {
	if len(values) < 2 {
		return values
	}
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
