package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"foodgram/internal/domain/entity"
	"foodgram/internal/repository"
)

const (
	favoritesTable    = "favorites"
	shoppingCartTable = "shopping_cart"
)

// CollectionRepo is a (user_id, recipe_id) set stored in table.
// table is always one of the constants above, never user input.
type CollectionRepo struct {
	db    *sql.DB
	table string
}

func NewFavoriteRepo(db *sql.DB) repository.RecipeCollectionRepository {
	return &CollectionRepo{db: db, table: favoritesTable}
}

func (repo *CollectionRepo) Add(ctx context.Context, userID, recipeID int64) error {
	query := `INSERT INTO ` + repo.table + ` (user_id, recipe_id) VALUES ($1, $2)`
	_, err := repo.db.ExecContext(ctx, query, userID, recipeID)
	if isUniqueViolation(err) {
		return fmt.Errorf("Add: %w", entity.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("Add: %w", err)
	}
	return nil
}

func (repo *CollectionRepo) Remove(ctx context.Context, userID, recipeID int64) (bool, error) {
	query := `DELETE FROM ` + repo.table + ` WHERE user_id = $1 AND recipe_id = $2`
	res, err := repo.db.ExecContext(ctx, query, userID, recipeID)
	if err != nil {
		return false, fmt.Errorf("Remove: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("Remove: %w", err)
	}
	return n > 0, nil
}

func (repo *CollectionRepo) ContainsAmong(ctx context.Context, userID int64, recipeIDs []int64) (map[int64]bool, error) {
	result := make(map[int64]bool, len(recipeIDs))
	recipeIDs = uniqueIDs(recipeIDs)
	if len(recipeIDs) == 0 {
		return result, nil
	}

	query := `SELECT recipe_id FROM ` + repo.table + ` WHERE user_id = $1 AND recipe_id IN (` +
		inPlaceholders(2, len(recipeIDs)) + `)`
	args := append([]interface{}{userID}, int64Args(recipeIDs)...)
	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ContainsAmong: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("ContainsAmong: Scan: %w", err)
		}
		result[id] = true
	}
	return result, rows.Err()
}

func (repo *CollectionRepo) CountEntries(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM ` + repo.table
	var count int64
	if err := repo.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("CountEntries: %w", err)
	}
	return count, nil
}

// CartRepo is the shopping cart. The shopping-list reads go through reader,
// normally a circuitbreaker.DB wrapping the same pool.
type CartRepo struct {
	*CollectionRepo
	reader Querier
}

func NewCartRepo(db *sql.DB, reader Querier) repository.CartRepository {
	if reader == nil {
		reader = db
	}
	return &CartRepo{
		CollectionRepo: &CollectionRepo{db: db, table: shoppingCartTable},
		reader:         reader,
	}
}

func (repo *CartRepo) ListCartRecipeIDs(ctx context.Context, userID int64) ([]int64, error) {
	const query = `
SELECT recipe_id
FROM shopping_cart
WHERE user_id = $1
ORDER BY recipe_id ASC`
	rows, err := repo.reader.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("ListCartRecipeIDs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	ids := make([]int64, 0, 16)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("ListCartRecipeIDs: Scan: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListCartRecipeIDs: %w", err)
	}
	return ids, nil
}

func (repo *CartRepo) ListIngredientAmounts(ctx context.Context, recipeIDs []int64) ([]entity.IngredientAmount, error) {
	recipeIDs = uniqueIDs(recipeIDs)
	if len(recipeIDs) == 0 {
		return []entity.IngredientAmount{}, nil
	}

	query := `
SELECT i.name, i.measurement_unit, ri.amount
FROM recipe_ingredients ri
JOIN ingredients i ON i.id = ri.ingredient_id
WHERE ri.recipe_id IN (` + inPlaceholders(1, len(recipeIDs)) + `)`
	rows, err := repo.reader.QueryContext(ctx, query, int64Args(recipeIDs)...)
	if err != nil {
		return nil, fmt.Errorf("ListIngredientAmounts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	// パフォーマンス最適化: 1 レシピあたり数行を想定して事前割り当て
	items := make([]entity.IngredientAmount, 0, len(recipeIDs)*8)
	for rows.Next() {
		var it entity.IngredientAmount
		if err := rows.Scan(&it.Name, &it.Unit, &it.Amount); err != nil {
			return nil, fmt.Errorf("ListIngredientAmounts: Scan: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListIngredientAmounts: %w", err)
	}
	return items, nil
}
