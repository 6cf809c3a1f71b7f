package entity

import "time"

// Recipe is a user-authored recipe with its tags and ingredient amounts.
// Tags and Ingredients are filled by the repository on read.
type Recipe struct {
	ID          int64
	AuthorID    int64
	Name        string
	Text        string
	CookingTime int
	Image       string
	PubDate     time.Time
	Tags        []Tag
	Ingredients []RecipeIngredient
}

// RecipeIngredient is one ingredient line of a recipe.
// Name and MeasurementUnit are denormalized from the catalogue on read.
type RecipeIngredient struct {
	IngredientID    int64
	Name            string
	MeasurementUnit string
	Amount          int
}

// Validate checks recipe fields and the tag / ingredient id lists.
// Existence of referenced tags and ingredients is checked by the use case.
func (r *Recipe) Validate() error {
	if r.Name == "" {
		return &ValidationError{Field: "name", Message: "is required"}
	}
	if runeLen(r.Name) > MaxRecipeNameLength {
		return &ValidationError{Field: "name", Message: "is too long"}
	}
	if r.Text == "" {
		return &ValidationError{Field: "text", Message: "is required"}
	}
	if r.CookingTime < 1 {
		return &ValidationError{Field: "cooking_time", Message: "must be at least 1"}
	}
	if r.Image == "" {
		return &ValidationError{Field: "image", Message: "is required"}
	}
	if len(r.Tags) == 0 {
		return &ValidationError{Field: "tags", Message: "is required"}
	}
	seenTags := make(map[int64]struct{}, len(r.Tags))
	for _, t := range r.Tags {
		if _, dup := seenTags[t.ID]; dup {
			return &ValidationError{Field: "tags", Message: "must be unique"}
		}
		seenTags[t.ID] = struct{}{}
	}
	if len(r.Ingredients) == 0 {
		return &ValidationError{Field: "ingredients", Message: "is required"}
	}
	seenIngr := make(map[int64]struct{}, len(r.Ingredients))
	for _, in := range r.Ingredients {
		if in.Amount < 1 {
			return &ValidationError{Field: "amount", Message: "must be at least 1"}
		}
		if _, dup := seenIngr[in.IngredientID]; dup {
			return &ValidationError{Field: "ingredients", Message: "must be unique"}
		}
		seenIngr[in.IngredientID] = struct{}{}
	}
	return nil
}

// TagIDs returns the ids of r.Tags in order.
func (r *Recipe) TagIDs() []int64 {
	ids := make([]int64, 0, len(r.Tags))
	for _, t := range r.Tags {
		ids = append(ids, t.ID)
	}
	return ids
}

// IngredientIDs returns the ids of r.Ingredients in order.
func (r *Recipe) IngredientIDs() []int64 {
	ids := make([]int64, 0, len(r.Ingredients))
	for _, in := range r.Ingredients {
		ids = append(ids, in.IngredientID)
	}
	return ids
}
