// Tests for recipe search: query building and results.
package sqlite

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/foodblog/pkg/types"
)

func TestBuildRecipeQuery(t *testing.T) {
	t.Run("empty sets build nothing", func(t *testing.T) {
		_, ok := buildRecipeQuery(nil, []string{"lunch"}, false)
		assert.False(t, ok)
		_, ok = buildRecipeQuery([]string{"milk"}, nil, false)
		assert.False(t, ok)
		_, ok = buildRecipeQuery([]string{"milk", "sugar"}, []string{}, true)
		assert.False(t, ok)
	})

	t.Run("values are bound, never interpolated", func(t *testing.T) {
		evil := "milk' OR '1'='1"
		q, ok := buildRecipeQuery([]string{evil, "sugar"}, []string{"lunch'--"}, false)
		require.True(t, ok)

		assert.NotContains(t, q.text, "milk")
		assert.NotContains(t, q.text, "lunch")
		assert.Equal(t, []any{evil, "sugar", "lunch'--", 2}, q.args)
		assert.Equal(t, 4, strings.Count(q.text, "?"))
	})

	t.Run("single ingredient binds the legacy name", func(t *testing.T) {
		q, ok := buildRecipeQuery([]string{"sugar"}, []string{"breakfast", "lunch"}, false)
		require.True(t, ok)

		assert.Equal(t, []any{legacySingleIngredient, "breakfast", "lunch"}, q.args)
		assert.Contains(t, q.text, "GROUP BY m.meal_name")
		assert.NotContains(t, q.text, "HAVING")
	})

	t.Run("strict single ingredient uses the requested name", func(t *testing.T) {
		q, ok := buildRecipeQuery([]string{"sugar"}, []string{"breakfast"}, true)
		require.True(t, ok)

		assert.Equal(t, []any{"sugar", "breakfast", 1}, q.args)
		assert.Contains(t, q.text, "GROUP BY r.recipe_name")
		assert.Contains(t, q.text, "HAVING COUNT(DISTINCT i.ingredient_name) = ?")
	})

	t.Run("duplicates are dropped before counting", func(t *testing.T) {
		q, ok := buildRecipeQuery([]string{"milk", "sugar", "milk"}, []string{"lunch", "lunch"}, false)
		require.True(t, ok)
		assert.Equal(t, []any{"milk", "sugar", "lunch", 2}, q.args)
	})
}

// searchFixture seeds a store with a few recipes:
//
//	hot chocolate: milk, cacao         breakfast
//	sweet milk:    milk, sugar         breakfast, lunch
//	plain milk:    milk                lunch
//	berry mix:     strawberry, sugar,  supper
//	               blueberry
func searchFixture(t *testing.T, cfg types.Config) *Store {
	t.Helper()
	s := openStore(t, cfg)
	require.NoError(t, s.Bootstrap(context.Background(), DefaultSeeds()))

	addRecipe(t, s, "hot chocolate", []string{"breakfast"},
		ingredientLine{250, "ml", "milk"},
		ingredientLine{2, "tbsp", "cacao"},
	)
	addRecipe(t, s, "sweet milk", []string{"breakfast", "lunch"},
		ingredientLine{1, "cup", "milk"},
		ingredientLine{1, "tsp", "sugar"},
	)
	addRecipe(t, s, "plain milk", []string{"lunch"},
		ingredientLine{1, "cup", "milk"},
	)
	addRecipe(t, s, "berry mix", []string{"supper"},
		ingredientLine{100, "g", "strawberry"},
		ingredientLine{1, "", "sugar"},
		ingredientLine{100, "g", "blueberry"},
	)
	return s
}

func TestFindRecipes(t *testing.T) {
	s := searchFixture(t, testConfig(t))
	ctx := context.Background()

	tests := []struct {
		name        string
		ingredients []string
		meals       []string
		want        string
	}{
		{
			name:        "single ingredient matches cacao regardless of request",
			ingredients: []string{"sugar"},
			meals:       []string{"breakfast"},
			want:        "hot chocolate",
		},
		{
			name:        "single ingredient without cacao recipe at meal",
			ingredients: []string{"sugar"},
			meals:       []string{"supper"},
			want:        "",
		},
		{
			name:        "all ingredients at one of the meals",
			ingredients: []string{"milk", "sugar"},
			meals:       []string{"lunch"},
			want:        "sweet milk",
		},
		{
			name:        "several matching meals still yield one row",
			ingredients: []string{"milk", "sugar"},
			meals:       []string{"breakfast", "lunch"},
			want:        "sweet milk",
		},
		{
			name:        "recipe must hold every ingredient",
			ingredients: []string{"milk", "cacao"},
			meals:       []string{"breakfast", "lunch"},
			want:        "hot chocolate",
		},
		{
			name:        "extra meals do not add recipes",
			ingredients: []string{"milk", "sugar"},
			meals:       []string{"breakfast", "lunch", "supper"},
			want:        "sweet milk",
		},
		{
			name:        "three ingredients",
			ingredients: []string{"strawberry", "blueberry", "sugar"},
			meals:       []string{"supper"},
			want:        "berry mix",
		},
		{
			name:        "unknown ingredient matches nothing",
			ingredients: []string{"nonexistent", "milk"},
			meals:       []string{"breakfast"},
			want:        "",
		},
		{
			name:        "wrong meal matches nothing",
			ingredients: []string{"milk", "sugar"},
			meals:       []string{"supper"},
			want:        "",
		},
		{
			name:        "empty ingredients",
			ingredients: nil,
			meals:       []string{"breakfast"},
			want:        "",
		},
		{
			name:        "empty meals",
			ingredients: []string{"milk", "sugar"},
			meals:       nil,
			want:        "",
		},
		{
			name:        "quoted input is treated as data",
			ingredients: []string{"milk' OR '1'='1", "sugar"},
			meals:       []string{"breakfast') OR ('1'='1"},
			want:        "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.FindRecipes(ctx, tt.ingredients, tt.meals)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	// Tables are untouched by the quoted input above.
	assert.Equal(t, 4, countRows(t, s, types.RecipesTable))
}

func TestFindRecipes_JoinsWithCommaSpace(t *testing.T) {
	s := searchFixture(t, testConfig(t))
	ctx := context.Background()
	addRecipe(t, s, "cocoa milk", []string{"lunch"},
		ingredientLine{1, "cup", "milk"},
		ingredientLine{1, "tbsp", "cacao"},
	)

	got, err := s.FindRecipes(ctx, []string{"milk", "cacao"}, []string{"breakfast", "lunch"})
	require.NoError(t, err)

	parts := strings.Split(got, ", ")
	assert.ElementsMatch(t, []string{"hot chocolate", "cocoa milk"}, parts)
}

func TestFindRecipes_LegacyGroupsPerMeal(t *testing.T) {
	s := searchFixture(t, testConfig(t))
	ctx := context.Background()
	addRecipe(t, s, "mocha", []string{"lunch"},
		ingredientLine{1, "tbsp", "cacao"},
	)

	names, err := s.FindRecipeNames(ctx, []string{"milk"}, []string{"breakfast", "lunch", "supper"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"hot chocolate", "mocha"}, names)
}

func TestFindRecipes_RepeatedIngredientIsSingleIngredient(t *testing.T) {
	ctx := context.Background()

	legacy := searchFixture(t, testConfig(t))
	got, err := legacy.FindRecipes(ctx, []string{"sugar", "sugar"}, []string{"breakfast"})
	require.NoError(t, err)
	assert.Equal(t, "hot chocolate", got)

	q, ok := buildRecipeQuery([]string{"sugar", "sugar"}, []string{"breakfast"}, false)
	require.True(t, ok)
	assert.Equal(t, []any{legacySingleIngredient, "breakfast"}, q.args)

	cfg := testConfig(t)
	cfg.StrictSearch = true
	strict := searchFixture(t, cfg)
	got, err = strict.FindRecipes(ctx, []string{"sugar", "sugar"}, []string{"breakfast"})
	require.NoError(t, err)
	assert.Equal(t, "sweet milk", got)
}

func TestFindRecipes_Strict(t *testing.T) {
	cfg := testConfig(t)
	cfg.StrictSearch = true
	s := searchFixture(t, cfg)
	ctx := context.Background()

	got, err := s.FindRecipes(ctx, []string{"sugar"}, []string{"breakfast"})
	require.NoError(t, err)
	assert.Equal(t, "sweet milk", got)

	names, err := s.FindRecipeNames(ctx, []string{"milk"}, []string{"breakfast", "lunch"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"hot chocolate", "sweet milk", "plain milk"}, names)
}

func TestDistinct(t *testing.T) {
	assert.Nil(t, distinct(nil))
	assert.Equal(t, []string{"a"}, distinct([]string{"a"}))
	assert.Equal(t, []string{"b", "a"}, distinct([]string{"b", "a", "b", "a"}))
}
