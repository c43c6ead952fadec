package entry

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/petar-djukic/foodblog/pkg/types"
)

// IngredientLine is one parsed "quantity [measure] ingredient" entry.
// Measure is empty when the line has two tokens.
type IngredientLine struct {
	Quantity   int
	Measure    string
	Ingredient string
}

// shorthands expands bare tokens to the ingredient names they stand for.
var shorthands = map[string]string{
	"black": "blackberry",
	"blue":  "blueberry",
}

// ExpandIngredient returns the full ingredient name for a shorthand token.
func ExpandIngredient(token string) string {
	if full, ok := shorthands[token]; ok {
		return full
	}
	return token
}

// ParseIngredientLine parses 2 or 3 whitespace-separated tokens:
// "quantity ingredient" or "quantity measure ingredient".
func ParseIngredientLine(line string) (IngredientLine, error) {
	fields := strings.Fields(line)

	var qty, measure, ingredient string
	switch len(fields) {
	case 2:
		qty, ingredient = fields[0], fields[1]
	case 3:
		qty, measure, ingredient = fields[0], fields[1], fields[2]
	default:
		return IngredientLine{}, fmt.Errorf("%q has %d tokens, want 2 or 3: %w", line, len(fields), types.ErrArity)
	}

	n, err := strconv.Atoi(qty)
	if err != nil {
		return IngredientLine{}, fmt.Errorf("%q: %w", qty, types.ErrInvalidQuantity)
	}

	return IngredientLine{
		Quantity:   n,
		Measure:    measure,
		Ingredient: ExpandIngredient(ingredient),
	}, nil
}

// ParseMealIndices parses space-separated 1-based indices into a list of
// mealCount meals. Repeated indices are kept.
func ParseMealIndices(line string, mealCount int) ([]int, error) {
	fields := strings.Fields(line)
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil || n < 1 || n > mealCount {
			return nil, fmt.Errorf("%q (choose 1-%d): %w", f, mealCount, types.ErrInvalidMealIndex)
		}
		out = append(out, n)
	}
	return out, nil
}

// SplitList splits a comma-separated flag value, trimming blanks and
// dropping empty items.
func SplitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
