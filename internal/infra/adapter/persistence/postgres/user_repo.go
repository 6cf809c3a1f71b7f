package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"foodgram/internal/domain/entity"
	"foodgram/internal/repository"
)

type UserRepo struct{ db *sql.DB }

func NewUserRepo(db *sql.DB) repository.UserRepository {
	return &UserRepo{db: db}
}

const userColumns = `id, email, username, first_name, last_name, password_hash, avatar`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(s rowScanner) (*entity.User, error) {
	var u entity.User
	if err := s.Scan(&u.ID, &u.Email, &u.Username, &u.FirstName, &u.LastName,
		&u.PasswordHash, &u.Avatar); err != nil {
		return nil, err
	}
	return &u, nil
}

func (repo *UserRepo) Get(ctx context.Context, id int64) (*entity.User, error) {
	const query = `
SELECT ` + userColumns + `
FROM users
WHERE id = $1`
	u, err := scanUser(repo.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return u, nil
}

func (repo *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	const query = `
SELECT ` + userColumns + `
FROM users
WHERE lower(email) = lower($1)`
	u, err := scanUser(repo.db.QueryRowContext(ctx, query, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetByEmail: %w", err)
	}
	return u, nil
}

func (repo *UserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM users WHERE lower(email) = lower($1))`
	var exists bool
	if err := repo.db.QueryRowContext(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("ExistsByEmail: %w", err)
	}
	return exists, nil
}

func (repo *UserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`
	var exists bool
	if err := repo.db.QueryRowContext(ctx, query, username).Scan(&exists); err != nil {
		return false, fmt.Errorf("ExistsByUsername: %w", err)
	}
	return exists, nil
}

func (repo *UserRepo) List(ctx context.Context, offset, limit int) ([]*entity.User, error) {
	const query = `
SELECT ` + userColumns + `
FROM users
ORDER BY id ASC
LIMIT $1 OFFSET $2`
	rows, err := repo.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer func() { _ = rows.Close() }()

	users := make([]*entity.User, 0, limit)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("List: Scan: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (repo *UserRepo) Count(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM users`
	var n int64
	if err := repo.db.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return n, nil
}

func (repo *UserRepo) Create(ctx context.Context, u *entity.User) error {
	const query = `
INSERT INTO users (email, username, first_name, last_name, password_hash, avatar)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`
	err := repo.db.QueryRowContext(ctx, query,
		u.Email, u.Username, u.FirstName, u.LastName, u.PasswordHash, u.Avatar,
	).Scan(&u.ID)
	if isUniqueViolation(err) {
		return fmt.Errorf("Create: %w", entity.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *UserRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	const query = `UPDATE users SET password_hash = $1 WHERE id = $2`
	if _, err := repo.db.ExecContext(ctx, query, passwordHash, id); err != nil {
		return fmt.Errorf("UpdatePassword: %w", err)
	}
	return nil
}

func (repo *UserRepo) UpdateAvatar(ctx context.Context, id int64, avatar string) error {
	const query = `UPDATE users SET avatar = $1 WHERE id = $2`
	if _, err := repo.db.ExecContext(ctx, query, avatar, id); err != nil {
		return fmt.Errorf("UpdateAvatar: %w", err)
	}
	return nil
}
