package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"foodgram/internal/pkg/config"
	"foodgram/internal/resilience/retry"
)

// ConnectionConfig holds database connection pool configuration.
type ConnectionConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DefaultConnectionConfig returns the default connection pool configuration.
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		MaxOpenConns:    25,               // Maximum number of open connections
		MaxIdleConns:    10,               // Maximum number of idle connections
		ConnMaxLifetime: 1 * time.Hour,    // Maximum lifetime of a connection
		ConnMaxIdleTime: 30 * time.Minute, // Maximum idle time of a connection
	}
}

// Open creates the connection pool from DATABASE_URL and exits the process
// when the database is unreachable. Used by long-running binaries.
func Open() *sql.DB {
	dsn := config.GetEnvString("DATABASE_URL", "")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}
	db, err := OpenDSN(context.Background(), dsn)
	if err != nil {
		log.Fatal(err)
	}
	return db
}

// OpenDSN opens a pgx-backed pool for dsn, applies the pool settings from the
// environment and verifies the connection.
func OpenDSN(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	cfg := getConnectionConfigFromEnv()
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	slog.Info("database connection pool configured",
		slog.Int("max_open_conns", cfg.MaxOpenConns),
		slog.Int("max_idle_conns", cfg.MaxIdleConns),
		slog.Duration("conn_max_lifetime", cfg.ConnMaxLifetime),
		slog.Duration("conn_max_idle_time", cfg.ConnMaxIdleTime))

	// コンテナ起動直後は接続拒否されるためバックオフ付きで再試行
	err = retry.Do(ctx, retry.Postgres, func() error {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return db.PingContext(pingCtx)
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	slog.Info("database connection established successfully")
	return db, nil
}

// getConnectionConfigFromEnv reads connection pool configuration from environment variables.
// Non-positive or unparsable values fall back to the defaults.
func getConnectionConfigFromEnv() ConnectionConfig {
	cfg := DefaultConnectionConfig()

	if v := config.GetEnvInt("DB_MAX_OPEN_CONNS", cfg.MaxOpenConns); v > 0 {
		cfg.MaxOpenConns = v
	}
	if v := config.GetEnvInt("DB_MAX_IDLE_CONNS", cfg.MaxIdleConns); v > 0 {
		cfg.MaxIdleConns = v
	}
	if v := config.GetEnvDuration("DB_CONN_MAX_LIFETIME", cfg.ConnMaxLifetime); v > 0 {
		cfg.ConnMaxLifetime = v
	}
	if v := config.GetEnvDuration("DB_CONN_MAX_IDLE_TIME", cfg.ConnMaxIdleTime); v > 0 {
		cfg.ConnMaxIdleTime = v
	}

	return cfg
}
