package recipe

import (
	"context"
	"fmt"
	"strings"

	"foodgram/internal/common/pagination"
	"foodgram/internal/domain/entity"
	"foodgram/internal/observability/metrics"
	"foodgram/internal/repository"
	userUC "foodgram/internal/usecase/user"
)

// IngredientInput is one ingredient line of a create / update request.
type IngredientInput struct {
	ID     int64
	Amount int
}

// Input carries the writable recipe fields.
// On update an empty Image keeps the stored one.
type Input struct {
	Name        string
	Text        string
	CookingTime int
	Image       string
	Tags        []int64
	Ingredients []IngredientInput
}

// ListQuery holds the listing filters. IsFavorited and IsInShoppingCart are
// ignored for anonymous viewers.
type ListQuery struct {
	AuthorID         *int64
	TagSlugs         []string
	IsFavorited      bool
	IsInShoppingCart bool
}

// View is a recipe as seen by a viewer.
type View struct {
	Recipe           *entity.Recipe
	Author           userUC.Profile
	IsFavorited      bool
	IsInShoppingCart bool
}

// LinkCodec turns recipe ids into short codes and back.
type LinkCodec interface {
	Encode(id int64) (string, error)
	Decode(code string) (int64, error)
}

// Service holds the recipe use cases.
type Service struct {
	Recipes     repository.RecipeRepository
	Tags        repository.TagRepository
	Ingredients repository.IngredientRepository
	Users       repository.UserRepository
	Follows     repository.FollowRepository
	Favorites   repository.RecipeCollectionRepository
	Cart        repository.RecipeCollectionRepository
	Links       LinkCodec
	// BaseURL prefixes short links, e.g. "https://foodgram.example".
	BaseURL string
}

// List returns a page of recipes, newest first, and the total count.
func (s *Service) List(ctx context.Context, viewerID int64, q ListQuery, params pagination.Params) ([]View, int64, error) {
	filter := repository.RecipeFilter{AuthorID: q.AuthorID, TagSlugs: q.TagSlugs}
	if viewerID != 0 {
		if q.IsFavorited {
			filter.FavoritedBy = &viewerID
		}
		if q.IsInShoppingCart {
			filter.InCartOf = &viewerID
		}
	}

	total, err := s.Recipes.Count(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count recipes: %w", err)
	}
	recipes, err := s.Recipes.List(ctx, filter, params.Offset(), params.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list recipes: %w", err)
	}
	views, err := s.enrich(ctx, viewerID, recipes)
	if err != nil {
		return nil, 0, err
	}
	return views, total, nil
}

// Get returns one recipe as seen by viewerID (0 for anonymous).
func (s *Service) Get(ctx context.Context, viewerID, id int64) (*View, error) {
	r, err := s.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}
	views, err := s.enrich(ctx, viewerID, []*entity.Recipe{r})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// Create stores a new recipe by authorID and returns it.
func (s *Service) Create(ctx context.Context, authorID int64, in Input) (*View, error) {
	r := build(in)
	r.AuthorID = authorID
	if err := s.validate(ctx, r); err != nil {
		return nil, err
	}
	if err := s.Recipes.Create(ctx, r); err != nil {
		return nil, fmt.Errorf("create recipe: %w", err)
	}
	metrics.RecordRecipeCreated()
	return s.Get(ctx, authorID, r.ID)
}

// Update replaces the recipe fields and links. Only the author may update.
func (s *Service) Update(ctx context.Context, actorID, id int64, in Input) (*View, error) {
	current, err := s.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.AuthorID != actorID {
		return nil, ErrForbidden
	}

	r := build(in)
	r.ID = id
	r.AuthorID = current.AuthorID
	r.PubDate = current.PubDate
	if r.Image == "" {
		r.Image = current.Image
	}
	if err := s.validate(ctx, r); err != nil {
		return nil, err
	}
	if err := s.Recipes.Update(ctx, r); err != nil {
		return nil, fmt.Errorf("update recipe: %w", err)
	}
	return s.Get(ctx, actorID, id)
}

// Delete removes the recipe. Only the author may delete.
func (s *Service) Delete(ctx context.Context, actorID, id int64) error {
	r, err := s.mustGet(ctx, id)
	if err != nil {
		return err
	}
	if r.AuthorID != actorID {
		return ErrForbidden
	}
	if err := s.Recipes.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	return nil
}

// GetLink returns the absolute short link of the recipe.
func (s *Service) GetLink(ctx context.Context, id int64) (string, error) {
	if _, err := s.mustGet(ctx, id); err != nil {
		return "", err
	}
	code, err := s.Links.Encode(id)
	if err != nil {
		return "", fmt.Errorf("get link: %w", err)
	}
	return strings.TrimRight(s.BaseURL, "/") + "/s/" + code, nil
}

// Resolve maps a short code back to an existing recipe id.
func (s *Service) Resolve(ctx context.Context, code string) (id int64, err error) {
	defer func() { metrics.RecordShortLinkResolve(err == nil) }()

	id, err = s.Links.Decode(code)
	if err != nil {
		return 0, ErrShortLinkNotFound
	}
	r, err := s.Recipes.Get(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("resolve link: %w", err)
	}
	if r == nil {
		return 0, ErrShortLinkNotFound
	}
	return id, nil
}

func build(in Input) *entity.Recipe {
	r := &entity.Recipe{
		Name:        strings.TrimSpace(in.Name),
		Text:        in.Text,
		CookingTime: in.CookingTime,
		Image:       in.Image,
		Tags:        make([]entity.Tag, 0, len(in.Tags)),
		Ingredients: make([]entity.RecipeIngredient, 0, len(in.Ingredients)),
	}
	for _, id := range in.Tags {
		r.Tags = append(r.Tags, entity.Tag{ID: id})
	}
	for _, li := range in.Ingredients {
		r.Ingredients = append(r.Ingredients, entity.RecipeIngredient{IngredientID: li.ID, Amount: li.Amount})
	}
	return r
}

// validate runs the field rules and checks that every referenced tag and
// ingredient exists.
func (s *Service) validate(ctx context.Context, r *entity.Recipe) error {
	if err := r.Validate(); err != nil {
		return err
	}

	tags, err := s.Tags.GetByIDs(ctx, r.TagIDs())
	if err != nil {
		return fmt.Errorf("check tags: %w", err)
	}
	if len(tags) != len(r.Tags) {
		return &entity.ValidationError{Field: "tags", Message: "contains unknown tag ids"}
	}
	r.Tags = tags

	ingredients, err := s.Ingredients.GetByIDs(ctx, r.IngredientIDs())
	if err != nil {
		return fmt.Errorf("check ingredients: %w", err)
	}
	if len(ingredients) != len(r.Ingredients) {
		return &entity.ValidationError{Field: "ingredients", Message: "contains unknown ingredient ids"}
	}
	return nil
}

func (s *Service) mustGet(ctx context.Context, id int64) (*entity.Recipe, error) {
	if id <= 0 {
		return nil, ErrRecipeNotFound
	}
	r, err := s.Recipes.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	if r == nil {
		return nil, ErrRecipeNotFound
	}
	return r, nil
}
