package recipe

import (
	"context"
	"errors"
	"fmt"

	"foodgram/internal/domain/entity"
	"foodgram/internal/observability/metrics"
	"foodgram/internal/repository"
)

// Collection names a per-user recipe set.
type Collection string

const (
	Favorites    Collection = "favorites"
	ShoppingCart Collection = "shopping_cart"
)

func (s *Service) collection(c Collection) (repo repository.RecipeCollectionRepository, errDup, errMissing error) {
	switch c {
	case Favorites:
		return s.Favorites, ErrAlreadyFavorited, ErrNotFavorited
	case ShoppingCart:
		return s.Cart, ErrAlreadyInCart, ErrNotInCart
	}
	panic(fmt.Sprintf("recipe: unknown collection %q", c))
}

// AddTo puts the recipe into the user's collection and returns the recipe.
func (s *Service) AddTo(ctx context.Context, c Collection, userID, recipeID int64) (*entity.Recipe, error) {
	repo, errDup, _ := s.collection(c)
	r, err := s.mustGet(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	present, err := repo.ContainsAmong(ctx, userID, []int64{recipeID})
	if err != nil {
		return nil, fmt.Errorf("add to %s: %w", c, err)
	}
	if present[recipeID] {
		return nil, errDup
	}
	if err := repo.Add(ctx, userID, recipeID); err != nil {
		// 一意制約違反は重複扱い
		if errors.Is(err, entity.ErrConflict) {
			return nil, errDup
		}
		return nil, fmt.Errorf("add to %s: %w", c, err)
	}
	metrics.RecordCollectionChange(string(c), true)
	return r, nil
}

// RemoveFrom takes the recipe out of the user's collection.
func (s *Service) RemoveFrom(ctx context.Context, c Collection, userID, recipeID int64) error {
	repo, _, errMissing := s.collection(c)
	if _, err := s.mustGet(ctx, recipeID); err != nil {
		return err
	}
	removed, err := repo.Remove(ctx, userID, recipeID)
	if err != nil {
		return fmt.Errorf("remove from %s: %w", c, err)
	}
	if !removed {
		return errMissing
	}
	metrics.RecordCollectionChange(string(c), false)
	return nil
}
