package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"
)

func fileFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "file",
		Aliases:  []string{"f"},
		Usage:    "Path of the data file",
		Required: true,
	}
}

func loadIngredientsCmd(connect Connector) *cli.Command {
	return &cli.Command{
		Name:  "load-ingredients",
		Usage: "Load ingredients from a CSV (name,measurement_unit) or JSON file",
		Description: `Existing (name, measurement_unit) pairs are skipped.
The format is chosen by the file extension: .csv or .json.`,
		Flags: []cli.Flag{fileFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path := cmd.String("file")
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("open %q: %w", path, err)
			}
			defer func() { _ = f.Close() }()

			format, err := formatOf(path, FormatCSV, FormatJSON)
			if err != nil {
				return err
			}
			items, err := ReadIngredients(f, format)
			if err != nil {
				return fmt.Errorf("read %q: %w", path, err)
			}

			return withBackend(ctx, cmd, connect, func(b *Backend) error {
				n, err := b.Ingredients.Load(ctx, items)
				if err != nil {
					return err
				}
				slog.Info("ingredients loaded",
					slog.String("file", path),
					slog.Int("read", len(items)),
					slog.Int64("inserted", n))
				_, err = fmt.Fprintf(cmd.Root().Writer, "Loaded %d of %d ingredients.\n", n, len(items))
				return err
			})
		},
	}
}

func loadTagsCmd(connect Connector) *cli.Command {
	return &cli.Command{
		Name:  "load-tags",
		Usage: "Load tags from a YAML file, updating existing slugs",
		Flags: []cli.Flag{fileFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path := cmd.String("file")
			if _, err := formatOf(path, FormatYAML); err != nil {
				return err
			}
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("open %q: %w", path, err)
			}
			defer func() { _ = f.Close() }()

			tags, err := ReadTags(f)
			if err != nil {
				return fmt.Errorf("read %q: %w", path, err)
			}

			return withBackend(ctx, cmd, connect, func(b *Backend) error {
				n, err := b.Tags.Load(ctx, tags)
				if err != nil {
					return err
				}
				slog.Info("tags loaded", slog.String("file", path), slog.Int("count", n))
				_, err = fmt.Fprintf(cmd.Root().Writer, "Loaded %d tags.\n", n)
				return err
			})
		},
	}
}
