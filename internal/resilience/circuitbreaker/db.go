package circuitbreaker

import (
	"context"
	"database/sql"
)

// DB routes reads through a breaker. It satisfies the repositories'
// Querier so the shopping-list queries fail fast while the database is down.
type DB struct {
	*Breaker
	db *sql.DB
}

// NewDB wraps db with a DatabaseConfig breaker.
func NewDB(db *sql.DB) *DB {
	return NewDBWithConfig(db, DatabaseConfig())
}

func NewDBWithConfig(db *sql.DB, cfg Config) *DB {
	return &DB{Breaker: New(cfg), db: db}
}

// QueryContext counts a failed query, not a failed scan, against the breaker.
func (d *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	res, err := d.Execute(func() (any, error) {
		return d.db.QueryContext(ctx, query, args...)
	})
	if err != nil {
		return nil, err
	}
	return res.(*sql.Rows), nil
}
