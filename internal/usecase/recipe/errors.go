// Package recipe implements recipe CRUD, filtered listings, favorites,
// the shopping cart and short links.
package recipe

import "errors"

var (
	// ErrRecipeNotFound is returned when the recipe does not exist.
	ErrRecipeNotFound = errors.New("recipe not found")

	// ErrForbidden is returned when a user other than the author changes a recipe.
	ErrForbidden = errors.New("only the author can change this recipe")

	// ErrAlreadyFavorited is returned when the recipe is already in favorites.
	ErrAlreadyFavorited = errors.New("recipe is already in favorites")

	// ErrNotFavorited is returned when removing a recipe that is not in favorites.
	ErrNotFavorited = errors.New("recipe is not in favorites")

	// ErrAlreadyInCart is returned when the recipe is already in the shopping cart.
	ErrAlreadyInCart = errors.New("recipe is already in the shopping cart")

	// ErrNotInCart is returned when removing a recipe that is not in the shopping cart.
	ErrNotInCart = errors.New("recipe is not in the shopping cart")

	// ErrShortLinkNotFound is returned for codes that do not resolve to a recipe.
	ErrShortLinkNotFound = errors.New("short link not found")
)
