package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"
)

var errDropNotConfirmed = errors.New("refusing to drop tables without --yes (or FOODGRAM_CONFIRM_DROP=true)")

func migrateCmd(connect Connector) *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Create the schema and seed the default tags",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "down",
				Usage: "Drop every Foodgram table instead (deletes all data)",
			},
			&cli.BoolFlag{
				Name:    "yes",
				Usage:   "Confirm --down",
				Sources: cli.EnvVars("FOODGRAM_CONFIRM_DROP"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Bool("down") {
				return migrateDown(ctx, cmd, connect)
			}
			return withBackend(ctx, cmd, connect, func(b *Backend) error {
				if err := b.Migrate(ctx); err != nil {
					return fmt.Errorf("migrate: %w", err)
				}
				_, err := fmt.Fprintln(cmd.Root().Writer, "Migrations applied.")
				return err
			})
		},
	}
}

// migrateDown checks the confirmation before any connection is opened.
func migrateDown(ctx context.Context, cmd *cli.Command, connect Connector) error {
	if !cmd.Bool("yes") {
		return errDropNotConfirmed
	}
	return withBackend(ctx, cmd, connect, func(b *Backend) error {
		if b.MigrateDown == nil {
			return errors.New("migrate down: not supported by this backend")
		}
		if err := b.MigrateDown(ctx); err != nil {
			return fmt.Errorf("migrate down: %w", err)
		}
		slog.Warn("all foodgram tables dropped")
		_, err := fmt.Fprintln(cmd.Root().Writer, "Tables dropped.")
		return err
	})
}
