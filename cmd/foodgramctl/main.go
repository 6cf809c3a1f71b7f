package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"foodgram/internal/cli"
	pgRepo "foodgram/internal/infra/adapter/persistence/postgres"
	"foodgram/internal/infra/db"
	"foodgram/internal/observability/logging"
	catalogUC "foodgram/internal/usecase/catalog"
)

func connect(ctx context.Context, dsn string) (*cli.Backend, error) {
	database, err := db.OpenDSN(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &cli.Backend{
		Ingredients: &catalogUC.IngredientService{Repo: pgRepo.NewIngredientRepo(database)},
		Tags:        &catalogUC.TagService{Repo: pgRepo.NewTagRepo(database)},
		Migrate: func(context.Context) error {
			return db.MigrateUp(database)
		},
		MigrateDown: func(context.Context) error {
			return db.MigrateDown(database)
		},
		Close: database.Close,
	}, nil
}

func main() {
	slog.SetDefault(logging.NewLogger())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewApp(connect).Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
