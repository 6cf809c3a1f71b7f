package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"foodgram/internal/domain/entity"
	"foodgram/internal/repository"
)

type FollowRepo struct{ db *sql.DB }

func NewFollowRepo(db *sql.DB) repository.FollowRepository {
	return &FollowRepo{db: db}
}

func (repo *FollowRepo) Create(ctx context.Context, userID, authorID int64) error {
	const query = `INSERT INTO follows (user_id, author_id) VALUES ($1, $2)`
	_, err := repo.db.ExecContext(ctx, query, userID, authorID)
	if isUniqueViolation(err) {
		return fmt.Errorf("Create: %w", entity.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *FollowRepo) Delete(ctx context.Context, userID, authorID int64) (bool, error) {
	const query = `DELETE FROM follows WHERE user_id = $1 AND author_id = $2`
	res, err := repo.db.ExecContext(ctx, query, userID, authorID)
	if err != nil {
		return false, fmt.Errorf("Delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("Delete: %w", err)
	}
	return n > 0, nil
}

func (repo *FollowRepo) Exists(ctx context.Context, userID, authorID int64) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM follows WHERE user_id = $1 AND author_id = $2)`
	var exists bool
	if err := repo.db.QueryRowContext(ctx, query, userID, authorID).Scan(&exists); err != nil {
		return false, fmt.Errorf("Exists: %w", err)
	}
	return exists, nil
}

func (repo *FollowRepo) FollowedAmong(ctx context.Context, userID int64, authorIDs []int64) (map[int64]bool, error) {
	result := make(map[int64]bool, len(authorIDs))
	authorIDs = uniqueIDs(authorIDs)
	if len(authorIDs) == 0 {
		return result, nil
	}

	query := `SELECT author_id FROM follows WHERE user_id = $1 AND author_id IN (` +
		inPlaceholders(2, len(authorIDs)) + `)`
	args := append([]interface{}{userID}, int64Args(authorIDs)...)
	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("FollowedAmong: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("FollowedAmong: Scan: %w", err)
		}
		result[id] = true
	}
	return result, rows.Err()
}

func (repo *FollowRepo) ListAuthors(ctx context.Context, userID int64, offset, limit int) ([]*entity.User, error) {
	const query = `
SELECT u.id, u.email, u.username, u.first_name, u.last_name, u.password_hash, u.avatar
FROM follows f
INNER JOIN users u ON u.id = f.author_id
WHERE f.user_id = $1
ORDER BY u.username ASC, u.id ASC
LIMIT $2 OFFSET $3`
	rows, err := repo.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("ListAuthors: %w", err)
	}
	defer func() { _ = rows.Close() }()

	authors := make([]*entity.User, 0, limit)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("ListAuthors: Scan: %w", err)
		}
		authors = append(authors, u)
	}
	return authors, rows.Err()
}

func (repo *FollowRepo) CountAuthors(ctx context.Context, userID int64) (int64, error) {
	const query = `SELECT COUNT(*) FROM follows WHERE user_id = $1`
	var n int64
	if err := repo.db.QueryRowContext(ctx, query, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("CountAuthors: %w", err)
	}
	return n, nil
}
