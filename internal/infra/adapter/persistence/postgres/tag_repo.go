package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"foodgram/internal/domain/entity"
	"foodgram/internal/repository"
)

type TagRepo struct{ db *sql.DB }

func NewTagRepo(db *sql.DB) repository.TagRepository {
	return &TagRepo{db: db}
}

func (repo *TagRepo) List(ctx context.Context) ([]*entity.Tag, error) {
	const query = `
SELECT id, name, color, slug
FROM tags
ORDER BY id ASC`
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer func() { _ = rows.Close() }()

	tags := make([]*entity.Tag, 0, 8)
	for rows.Next() {
		var t entity.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Color, &t.Slug); err != nil {
			return nil, fmt.Errorf("List: Scan: %w", err)
		}
		tags = append(tags, &t)
	}
	return tags, rows.Err()
}

func (repo *TagRepo) Get(ctx context.Context, id int64) (*entity.Tag, error) {
	const query = `
SELECT id, name, color, slug
FROM tags
WHERE id = $1`
	var t entity.Tag
	err := repo.db.QueryRowContext(ctx, query, id).Scan(&t.ID, &t.Name, &t.Color, &t.Slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return &t, nil
}

func (repo *TagRepo) GetByIDs(ctx context.Context, ids []int64) ([]entity.Tag, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return []entity.Tag{}, nil
	}
	query := `
SELECT id, name, color, slug
FROM tags
WHERE id IN (` + inPlaceholders(1, len(ids)) + `)
ORDER BY id ASC`
	rows, err := repo.db.QueryContext(ctx, query, int64Args(ids)...)
	if err != nil {
		return nil, fmt.Errorf("GetByIDs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	tags := make([]entity.Tag, 0, len(ids))
	for rows.Next() {
		var t entity.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Color, &t.Slug); err != nil {
			return nil, fmt.Errorf("GetByIDs: Scan: %w", err)
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

func (repo *TagRepo) Upsert(ctx context.Context, tag *entity.Tag) error {
	const query = `
INSERT INTO tags (name, color, slug)
VALUES ($1, $2, $3)
ON CONFLICT (slug) DO UPDATE SET name = EXCLUDED.name, color = EXCLUDED.color
RETURNING id`
	err := repo.db.QueryRowContext(ctx, query, tag.Name, tag.Color, tag.Slug).Scan(&tag.ID)
	if isUniqueViolation(err) {
		// name / color の重複
		return fmt.Errorf("Upsert: %w", entity.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("Upsert: %w", err)
	}
	return nil
}
