package types

// Record is one row of a named table. Description is only populated for
// recipes.
type Record struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Seeds holds the reference data written on every startup.
type Seeds struct {
	Meals       []string `json:"meals" yaml:"meals" mapstructure:"meals"`
	Ingredients []string `json:"ingredients" yaml:"ingredients" mapstructure:"ingredients"`
	Measures    []string `json:"measures" yaml:"measures" mapstructure:"measures"`
}

// ForTable returns the seed values for a reference table, or nil.
func (s Seeds) ForTable(table string) []string {
	switch table {
	case MealsTable:
		return s.Meals
	case IngredientsTable:
		return s.Ingredients
	case MeasuresTable:
		return s.Measures
	default:
		return nil
	}
}
