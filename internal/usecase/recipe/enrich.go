package recipe

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"foodgram/internal/domain/entity"
	userUC "foodgram/internal/usecase/user"
)

// enrichWorkers bounds the concurrent lookups of one page.
const enrichWorkers = 6

// enrich loads tags, ingredient lines, authors and the viewer's flags for a
// page of recipes. The lookups run concurrently; the first failure cancels
// the rest.
func (s *Service) enrich(ctx context.Context, viewerID int64, recipes []*entity.Recipe) ([]View, error) {
	views := make([]View, len(recipes))
	if len(recipes) == 0 {
		return views, nil
	}

	ids := make([]int64, len(recipes))
	authorSet := make(map[int64]struct{}, len(recipes))
	for i, r := range recipes {
		ids[i] = r.ID
		authorSet[r.AuthorID] = struct{}{}
	}
	authorIDs := make([]int64, 0, len(authorSet))
	for id := range authorSet {
		authorIDs = append(authorIDs, id)
	}

	var (
		tags        map[int64][]entity.Tag
		ingredients map[int64][]entity.RecipeIngredient
		favorited   map[int64]bool
		inCart      map[int64]bool
		followed    map[int64]bool

		mu      sync.Mutex
		authors = make(map[int64]*entity.User, len(authorIDs))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(enrichWorkers)

	g.Go(func() (err error) {
		tags, err = s.Recipes.ListTags(gctx, ids)
		if err != nil {
			return fmt.Errorf("load recipe tags: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		ingredients, err = s.Recipes.ListIngredients(gctx, ids)
		if err != nil {
			return fmt.Errorf("load recipe ingredients: %w", err)
		}
		return nil
	})
	if viewerID != 0 {
		g.Go(func() (err error) {
			favorited, err = s.Favorites.ContainsAmong(gctx, viewerID, ids)
			if err != nil {
				return fmt.Errorf("load favorites: %w", err)
			}
			return nil
		})
		g.Go(func() (err error) {
			inCart, err = s.Cart.ContainsAmong(gctx, viewerID, ids)
			if err != nil {
				return fmt.Errorf("load cart: %w", err)
			}
			return nil
		})
		g.Go(func() (err error) {
			followed, err = s.Follows.FollowedAmong(gctx, viewerID, authorIDs)
			if err != nil {
				return fmt.Errorf("load subscriptions: %w", err)
			}
			return nil
		})
	}
	for _, id := range authorIDs {
		g.Go(func() error {
			u, err := s.Users.Get(gctx, id)
			if err != nil {
				return fmt.Errorf("load author %d: %w", id, err)
			}
			if u == nil {
				return fmt.Errorf("load author %d: %w", id, userUC.ErrUserNotFound)
			}
			mu.Lock()
			authors[id] = u
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, r := range recipes {
		r.Tags = nonNil(tags[r.ID])
		r.Ingredients = nonNil(ingredients[r.ID])
		views[i] = View{
			Recipe: r,
			Author: userUC.Profile{
				User:         authors[r.AuthorID],
				IsSubscribed: followed[r.AuthorID],
			},
			IsFavorited:      favorited[r.ID],
			IsInShoppingCart: inCart[r.ID],
		}
	}
	return views, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
