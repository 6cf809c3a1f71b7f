package repository

import (
	"context"

	"foodgram/internal/domain/entity"
)

// UserRepository persists accounts. Lookups return (nil, nil) when no row matches.
type UserRepository interface {
	Get(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	// List returns users ordered by id.
	List(ctx context.Context, offset, limit int) ([]*entity.User, error)
	Count(ctx context.Context) (int64, error)
	// Create inserts the user and sets u.ID. Returns entity.ErrConflict on a
	// duplicate email or username.
	Create(ctx context.Context, u *entity.User) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	UpdateAvatar(ctx context.Context, id int64, avatar string) error
}

// FollowRepository stores author subscriptions.
type FollowRepository interface {
	// Create returns entity.ErrConflict when the subscription already exists.
	Create(ctx context.Context, userID, authorID int64) error
	// Delete reports whether a row was removed.
	Delete(ctx context.Context, userID, authorID int64) (bool, error)
	Exists(ctx context.Context, userID, authorID int64) (bool, error)
	// FollowedAmong returns the subset of authorIDs that userID follows.
	FollowedAmong(ctx context.Context, userID int64, authorIDs []int64) (map[int64]bool, error)
	ListAuthors(ctx context.Context, userID int64, offset, limit int) ([]*entity.User, error)
	CountAuthors(ctx context.Context, userID int64) (int64, error)
}
