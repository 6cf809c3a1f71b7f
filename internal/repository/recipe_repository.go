package repository

import (
	"context"

	"foodgram/internal/domain/entity"
)

// RecipeFilter narrows recipe listings. Nil / empty fields do not filter.
type RecipeFilter struct {
	AuthorID    *int64   // recipes written by this user
	TagSlugs    []string // recipes carrying any of these tags
	FavoritedBy *int64   // recipes in this user's favorites
	InCartOf    *int64   // recipes in this user's shopping cart
}

// RecipeRepository stores recipes and their tag / ingredient links.
// Get and List return recipes without Tags and Ingredients; use ListTags and
// ListIngredients to load them in bulk.
type RecipeRepository interface {
	Get(ctx context.Context, id int64) (*entity.Recipe, error)
	// List returns recipes ordered by pub_date DESC, id DESC.
	List(ctx context.Context, filter RecipeFilter, offset, limit int) ([]*entity.Recipe, error)
	Count(ctx context.Context, filter RecipeFilter) (int64, error)
	ListTags(ctx context.Context, recipeIDs []int64) (map[int64][]entity.Tag, error)
	ListIngredients(ctx context.Context, recipeIDs []int64) (map[int64][]entity.RecipeIngredient, error)
	// Create inserts the recipe with its links in one transaction and sets
	// r.ID and r.PubDate.
	Create(ctx context.Context, r *entity.Recipe) error
	// Update rewrites the recipe row and replaces its links in one transaction.
	Update(ctx context.Context, r *entity.Recipe) error
	Delete(ctx context.Context, id int64) error
}

// RecipeCollectionRepository is a per-user set of recipes (favorites, cart).
type RecipeCollectionRepository interface {
	// Add returns entity.ErrConflict when the recipe is already in the set.
	Add(ctx context.Context, userID, recipeID int64) error
	// Remove reports whether a row was removed.
	Remove(ctx context.Context, userID, recipeID int64) (bool, error)
	// ContainsAmong returns the subset of recipeIDs present in the user's set.
	ContainsAmong(ctx context.Context, userID int64, recipeIDs []int64) (map[int64]bool, error)
	CountEntries(ctx context.Context) (int64, error)
}

// ShoppingCartReader is the read side used to build the shopping list.
type ShoppingCartReader interface {
	// ListCartRecipeIDs returns the ids of recipes in the user's cart.
	ListCartRecipeIDs(ctx context.Context, userID int64) ([]int64, error)
	// ListIngredientAmounts returns one row per (recipe, ingredient) pair for
	// the given recipes. Rows are not aggregated.
	ListIngredientAmounts(ctx context.Context, recipeIDs []int64) ([]entity.IngredientAmount, error)
}

type CartRepository interface {
	RecipeCollectionRepository
	ShoppingCartReader
}
