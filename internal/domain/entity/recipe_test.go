package entity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validRecipe() Recipe {
	return Recipe{
		Name:        "Omelette",
		Text:        "Beat the eggs.",
		CookingTime: 5,
		Image:       "data:image/png;base64,AAAA",
		Tags:        []Tag{{ID: 1}, {ID: 2}},
		Ingredients: []RecipeIngredient{
			{IngredientID: 10, Amount: 3},
			{IngredientID: 11, Amount: 50},
		},
	}
}

func TestRecipe_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(r *Recipe)
		wantField string
	}{
		{name: "valid", mutate: func(r *Recipe) {}},
		{name: "missing name", mutate: func(r *Recipe) { r.Name = "" }, wantField: "name"},
		{name: "missing text", mutate: func(r *Recipe) { r.Text = "" }, wantField: "text"},
		{name: "zero cooking time", mutate: func(r *Recipe) { r.CookingTime = 0 }, wantField: "cooking_time"},
		{name: "missing image", mutate: func(r *Recipe) { r.Image = "" }, wantField: "image"},
		{name: "no tags", mutate: func(r *Recipe) { r.Tags = nil }, wantField: "tags"},
		{name: "duplicate tags", mutate: func(r *Recipe) { r.Tags = []Tag{{ID: 1}, {ID: 1}} }, wantField: "tags"},
		{name: "no ingredients", mutate: func(r *Recipe) { r.Ingredients = nil }, wantField: "ingredients"},
		{
			name: "duplicate ingredients",
			mutate: func(r *Recipe) {
				r.Ingredients = []RecipeIngredient{{IngredientID: 10, Amount: 1}, {IngredientID: 10, Amount: 2}}
			},
			wantField: "ingredients",
		},
		{
			name:      "zero amount",
			mutate:    func(r *Recipe) { r.Ingredients[0].Amount = 0 },
			wantField: "amount",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRecipe()
			tt.mutate(&r)
			err := r.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var ve *ValidationError
			if assert.True(t, errors.As(err, &ve)) {
				assert.Equal(t, tt.wantField, ve.Field)
			}
		})
	}
}

func TestRecipe_IDs(t *testing.T) {
	r := validRecipe()
	assert.Equal(t, []int64{1, 2}, r.TagIDs())
	assert.Equal(t, []int64{10, 11}, r.IngredientIDs())
}

func TestTag_Validate(t *testing.T) {
	assert.NoError(t, (&Tag{Name: "Завтрак", Color: "#E26C2D", Slug: "breakfast"}).Validate())
	assert.Error(t, (&Tag{Name: "", Color: "#E26C2D", Slug: "breakfast"}).Validate())
	assert.Error(t, (&Tag{Name: "Lunch", Color: "green", Slug: "lunch"}).Validate())
	assert.Error(t, (&Tag{Name: "Lunch", Color: "#49B64E", Slug: "lun ch"}).Validate())
}

func TestIngredient_Validate(t *testing.T) {
	assert.NoError(t, (&Ingredient{Name: "egg", MeasurementUnit: "pc"}).Validate())
	assert.Error(t, (&Ingredient{Name: "", MeasurementUnit: "pc"}).Validate())
	assert.Error(t, (&Ingredient{Name: "egg", MeasurementUnit: ""}).Validate())
}
