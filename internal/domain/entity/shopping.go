package entity

// IngredientAmount is one (ingredient, amount) row of a recipe in a user's cart.
// The same ingredient appears once per recipe that uses it.
type IngredientAmount struct {
	Name   string
	Unit   string
	Amount int64
}

// AggregatedLine is the summed amount of one (name, unit) pair across the cart.
type AggregatedLine struct {
	Name  string
	Unit  string
	Total int64
}
