package types

// Standard table names.
const (
	MealsTable       = "meals"
	IngredientsTable = "ingredients"
	MeasuresTable    = "measures"
	RecipesTable     = "recipes"
	ServeTable       = "serve"
	QuantityTable    = "quantity"
)

// ReferenceTableNames lists the seeded tables that can be cleared and
// repopulated independently of recipe data.
var ReferenceTableNames = []string{
	MealsTable,
	IngredientsTable,
	MeasuresTable,
}

// NamedTableNames lists the tables that have a single name column and can be
// driven by the generic record primitives.
var NamedTableNames = []string{
	MealsTable,
	IngredientsTable,
	MeasuresTable,
	RecipesTable,
}

// TableSpec describes a table reachable through the generic record primitives.
type TableSpec struct {
	Name       string
	IDColumn   string
	NameColumn string
}

var registry = map[string]TableSpec{
	MealsTable:       {Name: MealsTable, IDColumn: "meal_id", NameColumn: "meal_name"},
	IngredientsTable: {Name: IngredientsTable, IDColumn: "ingredient_id", NameColumn: "ingredient_name"},
	MeasuresTable:    {Name: MeasuresTable, IDColumn: "measure_id", NameColumn: "measure_name"},
	RecipesTable:     {Name: RecipesTable, IDColumn: "recipe_id", NameColumn: "recipe_name"},
}

// LookupTable returns the spec for a named table.
// Returns ErrUnsupportedTable for serve, quantity and anything unknown.
func LookupTable(name string) (TableSpec, error) {
	spec, ok := registry[name]
	if !ok {
		return TableSpec{}, ErrUnsupportedTable
	}
	return spec, nil
}

// NameColumn resolves the name column of a table.
func NameColumn(name string) (string, error) {
	spec, err := LookupTable(name)
	if err != nil {
		return "", err
	}
	return spec.NameColumn, nil
}
