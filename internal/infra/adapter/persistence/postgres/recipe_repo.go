package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"foodgram/internal/domain/entity"
	"foodgram/internal/repository"
)

type RecipeRepo struct {
	db           *sql.DB
	queryBuilder *RecipeQueryBuilder
}

func NewRecipeRepo(db *sql.DB) repository.RecipeRepository {
	return &RecipeRepo{
		db:           db,
		queryBuilder: NewRecipeQueryBuilder(),
	}
}

const recipeColumns = `r.id, r.author_id, r.name, r.text, r.cooking_time, r.image, r.pub_date`

func scanRecipe(s rowScanner) (*entity.Recipe, error) {
	var r entity.Recipe
	if err := s.Scan(&r.ID, &r.AuthorID, &r.Name, &r.Text, &r.CookingTime, &r.Image, &r.PubDate); err != nil {
		return nil, err
	}
	return &r, nil
}

func (repo *RecipeRepo) Get(ctx context.Context, id int64) (*entity.Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes r WHERE r.id = $1`
	r, err := scanRecipe(repo.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return r, nil
}

func (repo *RecipeRepo) List(ctx context.Context, filter repository.RecipeFilter, offset, limit int) ([]*entity.Recipe, error) {
	whereClause, args := repo.queryBuilder.BuildWhereClause(filter, 1)
	n := len(args)
	query := fmt.Sprintf(`SELECT %s FROM recipes r %s
ORDER BY r.pub_date DESC, r.id DESC
LIMIT $%d OFFSET $%d`, recipeColumns, whereClause, n+1, n+2)
	args = append(args, limit, offset)

	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer func() { _ = rows.Close() }()

	// パフォーマンス最適化: メモリ再割り当てを削減するため事前割り当て
	recipes := make([]*entity.Recipe, 0, limit)
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("List: Scan: %w", err)
		}
		recipes = append(recipes, r)
	}
	return recipes, rows.Err()
}

func (repo *RecipeRepo) Count(ctx context.Context, filter repository.RecipeFilter) (int64, error) {
	whereClause, args := repo.queryBuilder.BuildWhereClause(filter, 1)
	query := `SELECT COUNT(*) FROM recipes r ` + whereClause

	var count int64
	if err := repo.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return count, nil
}

func (repo *RecipeRepo) ListTags(ctx context.Context, recipeIDs []int64) (map[int64][]entity.Tag, error) {
	result := make(map[int64][]entity.Tag, len(recipeIDs))
	recipeIDs = uniqueIDs(recipeIDs)
	if len(recipeIDs) == 0 {
		return result, nil
	}

	query := `
SELECT rt.recipe_id, t.id, t.name, t.color, t.slug
FROM recipe_tags rt
JOIN tags t ON t.id = rt.tag_id
WHERE rt.recipe_id IN (` + inPlaceholders(1, len(recipeIDs)) + `)
ORDER BY rt.recipe_id ASC, t.id ASC`
	rows, err := repo.db.QueryContext(ctx, query, int64Args(recipeIDs)...)
	if err != nil {
		return nil, fmt.Errorf("ListTags: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			recipeID int64
			t        entity.Tag
		)
		if err := rows.Scan(&recipeID, &t.ID, &t.Name, &t.Color, &t.Slug); err != nil {
			return nil, fmt.Errorf("ListTags: Scan: %w", err)
		}
		result[recipeID] = append(result[recipeID], t)
	}
	return result, rows.Err()
}

func (repo *RecipeRepo) ListIngredients(ctx context.Context, recipeIDs []int64) (map[int64][]entity.RecipeIngredient, error) {
	result := make(map[int64][]entity.RecipeIngredient, len(recipeIDs))
	recipeIDs = uniqueIDs(recipeIDs)
	if len(recipeIDs) == 0 {
		return result, nil
	}

	query := `
SELECT ri.recipe_id, i.id, i.name, i.measurement_unit, ri.amount
FROM recipe_ingredients ri
JOIN ingredients i ON i.id = ri.ingredient_id
WHERE ri.recipe_id IN (` + inPlaceholders(1, len(recipeIDs)) + `)
ORDER BY ri.recipe_id ASC, i.name ASC`
	rows, err := repo.db.QueryContext(ctx, query, int64Args(recipeIDs)...)
	if err != nil {
		return nil, fmt.Errorf("ListIngredients: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			recipeID int64
			ri       entity.RecipeIngredient
		)
		if err := rows.Scan(&recipeID, &ri.IngredientID, &ri.Name, &ri.MeasurementUnit, &ri.Amount); err != nil {
			return nil, fmt.Errorf("ListIngredients: Scan: %w", err)
		}
		result[recipeID] = append(result[recipeID], ri)
	}
	return result, rows.Err()
}

func (repo *RecipeRepo) Create(ctx context.Context, r *entity.Recipe) error {
	tx, err := repo.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("Create: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const query = `
INSERT INTO recipes (author_id, name, text, cooking_time, image)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, pub_date`
	if err := tx.QueryRowContext(ctx, query,
		r.AuthorID, r.Name, r.Text, r.CookingTime, r.Image,
	).Scan(&r.ID, &r.PubDate); err != nil {
		return fmt.Errorf("Create: %w", err)
	}

	if err := insertRecipeLinks(ctx, tx, r); err != nil {
		return fmt.Errorf("Create: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("Create: commit: %w", err)
	}
	return nil
}

func (repo *RecipeRepo) Update(ctx context.Context, r *entity.Recipe) error {
	tx, err := repo.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("Update: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const query = `
UPDATE recipes
SET name = $1, text = $2, cooking_time = $3, image = $4
WHERE id = $5`
	if _, err := tx.ExecContext(ctx, query, r.Name, r.Text, r.CookingTime, r.Image, r.ID); err != nil {
		return fmt.Errorf("Update: %w", err)
	}

	// リンクは全置換
	if _, err := tx.ExecContext(ctx, `DELETE FROM recipe_tags WHERE recipe_id = $1`, r.ID); err != nil {
		return fmt.Errorf("Update: delete tags: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM recipe_ingredients WHERE recipe_id = $1`, r.ID); err != nil {
		return fmt.Errorf("Update: delete ingredients: %w", err)
	}
	if err := insertRecipeLinks(ctx, tx, r); err != nil {
		return fmt.Errorf("Update: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("Update: commit: %w", err)
	}
	return nil
}

func (repo *RecipeRepo) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM recipes WHERE id = $1`
	if _, err := repo.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	return nil
}

// insertRecipeLinks writes recipe_tags and recipe_ingredients rows for r
// with one multi-row INSERT each.
func insertRecipeLinks(ctx context.Context, tx *sql.Tx, r *entity.Recipe) error {
	if len(r.Tags) > 0 {
		query := "INSERT INTO recipe_tags (recipe_id, tag_id) VALUES "
		args := make([]interface{}, 0, len(r.Tags)*2)
		for i, t := range r.Tags {
			if i > 0 {
				query += ", "
			}
			query += fmt.Sprintf("($%d, $%d)", i*2+1, i*2+2)
			args = append(args, r.ID, t.ID)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert tags: %w", err)
		}
	}

	if len(r.Ingredients) > 0 {
		query := "INSERT INTO recipe_ingredients (recipe_id, ingredient_id, amount) VALUES "
		args := make([]interface{}, 0, len(r.Ingredients)*3)
		for i, in := range r.Ingredients {
			if i > 0 {
				query += ", "
			}
			query += fmt.Sprintf("($%d, $%d, $%d)", i*3+1, i*3+2, i*3+3)
			args = append(args, r.ID, in.IngredientID, in.Amount)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert ingredients: %w", err)
		}
	}
	return nil
}
