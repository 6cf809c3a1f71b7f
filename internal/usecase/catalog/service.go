package catalog

import (
	"context"
	"fmt"
	"strings"

	"foodgram/internal/domain/entity"
	"foodgram/internal/repository"
)

// TagService lists tags and loads tag fixtures.
type TagService struct {
	Repo repository.TagRepository
}

// List returns every tag. Tags are not paginated.
func (s *TagService) List(ctx context.Context) ([]*entity.Tag, error) {
	tags, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return tags, nil
}

// Get returns the tag with id.
func (s *TagService) Get(ctx context.Context, id int64) (*entity.Tag, error) {
	if id <= 0 {
		return nil, ErrTagNotFound
	}
	t, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get tag: %w", err)
	}
	if t == nil {
		return nil, ErrTagNotFound
	}
	return t, nil
}

// Load validates every tag first and then upserts them by slug.
// Nothing is written when any tag is invalid.
func (s *TagService) Load(ctx context.Context, tags []entity.Tag) (int, error) {
	for i := range tags {
		if err := tags[i].Validate(); err != nil {
			return 0, fmt.Errorf("tag %d (%q): %w", i+1, tags[i].Slug, err)
		}
	}
	for i := range tags {
		if err := s.Repo.Upsert(ctx, &tags[i]); err != nil {
			return i, fmt.Errorf("upsert tag %q: %w", tags[i].Slug, err)
		}
	}
	return len(tags), nil
}

// IngredientService searches the ingredient catalogue and bulk loads it.
type IngredientService struct {
	Repo repository.IngredientRepository
}

// List returns ingredients whose name starts with namePrefix, ignoring case.
func (s *IngredientService) List(ctx context.Context, namePrefix string) ([]*entity.Ingredient, error) {
	items, err := s.Repo.List(ctx, strings.TrimSpace(namePrefix))
	if err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	return items, nil
}

// Get returns the ingredient with id.
func (s *IngredientService) Get(ctx context.Context, id int64) (*entity.Ingredient, error) {
	if id <= 0 {
		return nil, ErrIngredientNotFound
	}
	in, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get ingredient: %w", err)
	}
	if in == nil {
		return nil, ErrIngredientNotFound
	}
	return in, nil
}

// Load validates items and inserts them, skipping existing (name, unit)
// pairs. It returns the number of new rows.
func (s *IngredientService) Load(ctx context.Context, items []entity.Ingredient) (int64, error) {
	for i := range items {
		items[i].Name = strings.TrimSpace(items[i].Name)
		items[i].MeasurementUnit = strings.TrimSpace(items[i].MeasurementUnit)
		if err := items[i].Validate(); err != nil {
			return 0, fmt.Errorf("ingredient %d (%q): %w", i+1, items[i].Name, err)
		}
	}
	n, err := s.Repo.BulkCreate(ctx, items)
	if err != nil {
		return 0, fmt.Errorf("load ingredients: %w", err)
	}
	return n, nil
}
