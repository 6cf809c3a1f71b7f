package repository

import (
	"context"

	"foodgram/internal/domain/entity"
)

type TagRepository interface {
	List(ctx context.Context) ([]*entity.Tag, error)
	Get(ctx context.Context, id int64) (*entity.Tag, error)
	// GetByIDs returns the tags that exist among ids, ordered by id.
	GetByIDs(ctx context.Context, ids []int64) ([]entity.Tag, error)
	// Upsert inserts the tag or updates name and color of the tag with the same slug.
	Upsert(ctx context.Context, tag *entity.Tag) error
}

type IngredientRepository interface {
	// List returns ingredients whose name starts with namePrefix
	// (case-insensitive), ordered by name. An empty prefix lists all.
	List(ctx context.Context, namePrefix string) ([]*entity.Ingredient, error)
	Get(ctx context.Context, id int64) (*entity.Ingredient, error)
	GetByIDs(ctx context.Context, ids []int64) ([]entity.Ingredient, error)
	// BulkCreate inserts items, skipping (name, measurement_unit) pairs that
	// already exist, and returns the number of rows inserted.
	BulkCreate(ctx context.Context, items []entity.Ingredient) (int64, error)
}
