package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"foodgram/internal/domain/entity"
	"foodgram/internal/pkg/search"
	"foodgram/internal/repository"
)

// bulkInsertBatchSize keeps each INSERT well under PostgreSQL's 65535 parameter limit.
const bulkInsertBatchSize = 500

type IngredientRepo struct{ db *sql.DB }

func NewIngredientRepo(db *sql.DB) repository.IngredientRepository {
	return &IngredientRepo{db: db}
}

func (repo *IngredientRepo) List(ctx context.Context, namePrefix string) ([]*entity.Ingredient, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if namePrefix == "" {
		const query = `
SELECT id, name, measurement_unit
FROM ingredients
ORDER BY name ASC, id ASC`
		rows, err = repo.db.QueryContext(ctx, query)
	} else {
		const query = `
SELECT id, name, measurement_unit
FROM ingredients
WHERE lower(name) LIKE $1
ORDER BY name ASC, id ASC`
		rows, err = repo.db.QueryContext(ctx, query, search.PrefixPattern(namePrefix))
	}
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer func() { _ = rows.Close() }()

	// パフォーマンス最適化: メモリ再割り当てを削減するため事前割り当て
	items := make([]*entity.Ingredient, 0, 100)
	for rows.Next() {
		var in entity.Ingredient
		if err := rows.Scan(&in.ID, &in.Name, &in.MeasurementUnit); err != nil {
			return nil, fmt.Errorf("List: Scan: %w", err)
		}
		items = append(items, &in)
	}
	return items, rows.Err()
}

func (repo *IngredientRepo) Get(ctx context.Context, id int64) (*entity.Ingredient, error) {
	const query = `
SELECT id, name, measurement_unit
FROM ingredients
WHERE id = $1`
	var in entity.Ingredient
	err := repo.db.QueryRowContext(ctx, query, id).Scan(&in.ID, &in.Name, &in.MeasurementUnit)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return &in, nil
}

func (repo *IngredientRepo) GetByIDs(ctx context.Context, ids []int64) ([]entity.Ingredient, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return []entity.Ingredient{}, nil
	}
	query := `
SELECT id, name, measurement_unit
FROM ingredients
WHERE id IN (` + inPlaceholders(1, len(ids)) + `)
ORDER BY id ASC`
	rows, err := repo.db.QueryContext(ctx, query, int64Args(ids)...)
	if err != nil {
		return nil, fmt.Errorf("GetByIDs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	items := make([]entity.Ingredient, 0, len(ids))
	for rows.Next() {
		var in entity.Ingredient
		if err := rows.Scan(&in.ID, &in.Name, &in.MeasurementUnit); err != nil {
			return nil, fmt.Errorf("GetByIDs: Scan: %w", err)
		}
		items = append(items, in)
	}
	return items, rows.Err()
}

func (repo *IngredientRepo) BulkCreate(ctx context.Context, items []entity.Ingredient) (int64, error) {
	if len(items) == 0 {
		return 0, nil
	}

	tx, err := repo.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("BulkCreate: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var inserted int64
	for start := 0; start < len(items); start += bulkInsertBatchSize {
		end := start + bulkInsertBatchSize
		if end > len(items) {
			end = len(items)
		}
		query, args := buildIngredientInsert(items[start:end])
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return 0, fmt.Errorf("BulkCreate: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("BulkCreate: %w", err)
		}
		inserted += n
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("BulkCreate: commit: %w", err)
	}
	return inserted, nil
}

func buildIngredientInsert(batch []entity.Ingredient) (string, []interface{}) {
	var b strings.Builder
	b.WriteString("INSERT INTO ingredients (name, measurement_unit) VALUES ")
	args := make([]interface{}, 0, len(batch)*2)
	for i, in := range batch {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "($%d, $%d)", i*2+1, i*2+2)
		args = append(args, in.Name, in.MeasurementUnit)
	}
	b.WriteString(" ON CONFLICT (name, measurement_unit) DO NOTHING")
	return b.String(), args
}
