package entry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/petar-djukic/foodblog/pkg/types"
)

// Prompt labels.
const (
	exitHint         = "Pass the empty recipe name to exit."
	labelName        = "Enter recipe name: "
	labelDescription = "Describe recipe: "
	labelMeals       = "Enter proposed meals separated by a space: "
	labelIngredient  = "Input quantity of ingredient <press enter to stop>: "
)

// Session runs the interactive recipe-entry loop against a catalog.
type Session struct {
	catalog types.Catalog
	prompt  Prompter
	out     io.Writer
	log     *slog.Logger
}

// NewSession returns a session. A nil logger uses slog.Default().
func NewSession(catalog types.Catalog, prompt Prompter, out io.Writer, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{catalog: catalog, prompt: prompt, out: out, log: logger}
}

// Run prompts for recipes until an empty name or end of input and returns
// the number of recipes saved.
func (s *Session) Run(ctx context.Context) (int, error) {
	saved := 0
	for {
		fmt.Fprintln(s.out, exitHint)
		name, err := s.prompt.Prompt(labelName)
		if errors.Is(err, io.EOF) {
			return saved, nil
		}
		if err != nil {
			return saved, err
		}
		name = strings.TrimSpace(name)
		if name == "" {
			return saved, nil
		}

		if err := s.enterRecipe(ctx, name); err != nil {
			return saved, err
		}
		saved++
	}
}

func (s *Session) enterRecipe(ctx context.Context, name string) error {
	desc, err := s.prompt.Prompt(labelDescription)
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	recipeID, err := s.catalog.CreateRecipe(ctx, name, strings.TrimSpace(desc))
	if err != nil {
		return fmt.Errorf("saving recipe %q: %w", name, err)
	}

	served, err := s.enterMeals(ctx, recipeID)
	if err != nil {
		return err
	}
	lines, err := s.enterIngredients(ctx, recipeID)
	if err != nil {
		return err
	}

	s.log.Info("recipe saved", "recipe_id", recipeID, "name", name, "meals", served, "ingredients", lines)
	return nil
}

// enterMeals lists the meals, asks which ones serve the recipe and links
// them. It re-prompts until every index is valid.
func (s *Session) enterMeals(ctx context.Context, recipeID int64) (int, error) {
	meals, err := s.catalog.Meals().ListAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing meals: %w", err)
	}

	items := make([]string, len(meals))
	for i, m := range meals {
		items[i] = fmt.Sprintf("%d) %s", i+1, m.Name)
	}
	fmt.Fprintln(s.out, strings.Join(items, " "))

	for {
		line, err := s.prompt.Prompt(labelMeals)
		if errors.Is(err, io.EOF) {
			return 0, nil
		}
		if err != nil {
			return 0, err
		}

		indices, err := ParseMealIndices(line, len(meals))
		if err != nil {
			fmt.Fprintln(s.out, "Invalid meal:", err)
			continue
		}
		for _, idx := range indices {
			if err := s.catalog.AttachServe(ctx, recipeID, meals[idx-1].ID); err != nil {
				return 0, fmt.Errorf("serving at %s: %w", meals[idx-1].Name, err)
			}
		}
		return len(indices), nil
	}
}

// enterIngredients reads ingredient lines until an empty line. Lines that do
// not parse or name unknown ingredients or measures are reported and
// skipped.
func (s *Session) enterIngredients(ctx context.Context, recipeID int64) (int, error) {
	saved := 0
	for {
		line, err := s.prompt.Prompt(labelIngredient)
		if errors.Is(err, io.EOF) {
			return saved, nil
		}
		if err != nil {
			return saved, err
		}
		if strings.TrimSpace(line) == "" {
			return saved, nil
		}

		parsed, err := ParseIngredientLine(line)
		if err != nil {
			fmt.Fprintln(s.out, "Invalid ingredient line:", err)
			continue
		}

		ingredient, err := s.catalog.Ingredients().FindByName(ctx, parsed.Ingredient)
		if errors.Is(err, types.ErrNotFound) {
			fmt.Fprintf(s.out, "Unknown ingredient %q\n", parsed.Ingredient)
			continue
		}
		if err != nil {
			return saved, err
		}

		measure, err := s.catalog.Measures().FindByName(ctx, parsed.Measure)
		if errors.Is(err, types.ErrNotFound) {
			fmt.Fprintf(s.out, "Unknown measure %q\n", parsed.Measure)
			continue
		}
		if err != nil {
			return saved, err
		}

		if err := s.catalog.AttachQuantity(ctx, parsed.Quantity, recipeID, measure.ID, ingredient.ID); err != nil {
			return saved, fmt.Errorf("adding %s: %w", parsed.Ingredient, err)
		}
		saved++
	}
}
