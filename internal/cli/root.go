package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"foodgram/internal/domain/entity"
)

const name = "foodgramctl"

// overridden during build with ldflags
var version = "dev"

// IngredientLoader bulk inserts ingredients and returns the number of new rows.
type IngredientLoader interface {
	Load(ctx context.Context, items []entity.Ingredient) (int64, error)
}

// TagLoader upserts tags by slug.
type TagLoader interface {
	Load(ctx context.Context, tags []entity.Tag) (int, error)
}

// Backend is what the commands need from the database.
type Backend struct {
	Ingredients IngredientLoader
	Tags        TagLoader
	Migrate     func(ctx context.Context) error
	MigrateDown func(ctx context.Context) error
	Close       func() error
}

// Connector opens a Backend for dsn.
type Connector func(ctx context.Context, dsn string) (*Backend, error)

var errNoDatabase = errors.New("database url is required (--database-url or DATABASE_URL)")

// NewApp returns the root command. connect is called once per command run.
func NewApp(connect Connector) *cli.Command {
	return &cli.Command{
		Name:    name,
		Usage:   "Foodgram administration tool",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "database-url",
				Usage:   "PostgreSQL connection string",
				Sources: cli.EnvVars("DATABASE_URL"),
			},
		},
		Commands: []*cli.Command{
			migrateCmd(connect),
			loadIngredientsCmd(connect),
			loadTagsCmd(connect),
		},
	}
}

// withBackend opens the backend, runs fn and closes it.
func withBackend(ctx context.Context, cmd *cli.Command, connect Connector, fn func(*Backend) error) (err error) {
	dsn := cmd.String("database-url")
	if dsn == "" {
		return errNoDatabase
	}

	b, err := connect(ctx, dsn)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer func() {
		if b.Close == nil {
			return
		}
		if cerr := b.Close(); cerr != nil {
			slog.Warn("failed to close database", slog.Any("error", cerr))
		}
	}()

	return fn(b)
}
