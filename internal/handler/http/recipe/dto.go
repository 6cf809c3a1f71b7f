package recipe

import (
	"foodgram/internal/handler/http/catalog"
	userHTTP "foodgram/internal/handler/http/user"
	recipeUC "foodgram/internal/usecase/recipe"
)

// IngredientAmountDTO is one ingredient line of a recipe.
type IngredientAmountDTO struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

// DTO is the full recipe representation.
type DTO struct {
	ID               int64                 `json:"id"`
	Tags             []catalog.TagDTO      `json:"tags"`
	Author           userHTTP.DTO          `json:"author"`
	Ingredients      []IngredientAmountDTO `json:"ingredients"`
	IsFavorited      bool                  `json:"is_favorited"`
	IsInShoppingCart bool                  `json:"is_in_shopping_cart"`
	Name             string                `json:"name"`
	Image            string                `json:"image"`
	Text             string                `json:"text"`
	CookingTime      int                   `json:"cooking_time"`
}

type ingredientRequest struct {
	ID     int64 `json:"id" validate:"required,gt=0"`
	Amount int   `json:"amount" validate:"required,min=1,max=32000"`
}

// recipeRequest is the body of POST and PATCH. Image may be omitted on PATCH.
type recipeRequest struct {
	Ingredients []ingredientRequest `json:"ingredients" validate:"required,min=1,dive"`
	Tags        []int64             `json:"tags" validate:"required,min=1,unique,dive,gt=0"`
	Image       string              `json:"image"`
	Name        string              `json:"name" validate:"required,max=256"`
	Text        string              `json:"text" validate:"required"`
	CookingTime int                 `json:"cooking_time" validate:"required,min=1,max=32000"`
}

type linkResponse struct {
	ShortLink string `json:"short-link"`
}

func (req recipeRequest) input() recipeUC.Input {
	in := recipeUC.Input{
		Name:        req.Name,
		Text:        req.Text,
		CookingTime: req.CookingTime,
		Image:       req.Image,
		Tags:        req.Tags,
		Ingredients: make([]recipeUC.IngredientInput, 0, len(req.Ingredients)),
	}
	for _, li := range req.Ingredients {
		in.Ingredients = append(in.Ingredients, recipeUC.IngredientInput{ID: li.ID, Amount: li.Amount})
	}
	return in
}

// NewDTO converts a recipe view into its JSON form.
func NewDTO(v recipeUC.View) DTO {
	r := v.Recipe
	d := DTO{
		ID:               r.ID,
		Tags:             make([]catalog.TagDTO, 0, len(r.Tags)),
		Ingredients:      make([]IngredientAmountDTO, 0, len(r.Ingredients)),
		IsFavorited:      v.IsFavorited,
		IsInShoppingCart: v.IsInShoppingCart,
		Name:             r.Name,
		Image:            r.Image,
		Text:             r.Text,
		CookingTime:      r.CookingTime,
	}
	if v.Author.User != nil {
		d.Author = userHTTP.NewDTO(v.Author)
	}
	for _, t := range r.Tags {
		d.Tags = append(d.Tags, catalog.NewTagDTO(t))
	}
	for _, li := range r.Ingredients {
		d.Ingredients = append(d.Ingredients, IngredientAmountDTO{
			ID:              li.IngredientID,
			Name:            li.Name,
			MeasurementUnit: li.MeasurementUnit,
			Amount:          li.Amount,
		})
	}
	return d
}
