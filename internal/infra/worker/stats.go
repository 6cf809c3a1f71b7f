package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"foodgram/internal/observability/metrics"
	"foodgram/internal/repository"
)

// UserCounter counts accounts.
type UserCounter interface {
	Count(ctx context.Context) (int64, error)
}

// RecipeCounter counts recipes matching a filter.
type RecipeCounter interface {
	Count(ctx context.Context, filter repository.RecipeFilter) (int64, error)
}

// EntryCounter counts the rows of a favorites or cart table.
type EntryCounter interface {
	CountEntries(ctx context.Context) (int64, error)
}

// StatsJob refreshes the table-size gauges.
type StatsJob struct {
	Users     UserCounter
	Recipes   RecipeCounter
	Favorites EntryCounter
	Cart      EntryCounter
	Metrics   *WorkerMetrics
	Logger    *slog.Logger
	Timeout   time.Duration
}

// Collect runs the four counts in parallel. On any error no gauge is touched.
func (j *StatsJob) Collect(ctx context.Context) (metrics.Stats, error) {
	var s metrics.Stats
	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() (err error) {
		s.Users, err = j.Users.Count(ctx)
		if err != nil {
			return fmt.Errorf("count users: %w", err)
		}
		return nil
	})
	eg.Go(func() (err error) {
		s.Recipes, err = j.Recipes.Count(ctx, repository.RecipeFilter{})
		if err != nil {
			return fmt.Errorf("count recipes: %w", err)
		}
		return nil
	})
	eg.Go(func() (err error) {
		s.Favorites, err = j.Favorites.CountEntries(ctx)
		if err != nil {
			return fmt.Errorf("count favorites: %w", err)
		}
		return nil
	})
	eg.Go(func() (err error) {
		s.CartEntries, err = j.Cart.CountEntries(ctx)
		if err != nil {
			return fmt.Errorf("count cart entries: %w", err)
		}
		return nil
	})

	if err := eg.Wait(); err != nil {
		return metrics.Stats{}, err
	}
	return s, nil
}

// Run is the cron entry point: collect, publish and record the outcome.
func (j *StatsJob) Run() {
	start := time.Now()

	ctx := context.Background()
	if j.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.Timeout)
		defer cancel()
	}

	s, err := j.Collect(ctx)
	if err != nil {
		j.Metrics.RecordJobRun(StatusFailure, time.Since(start))
		j.Logger.Error("stats collection failed", slog.Any("error", err))
		return
	}

	metrics.UpdateStats(s)
	j.Metrics.RecordJobRun(StatusSuccess, time.Since(start))
	j.Logger.Info("stats collected",
		slog.Int64("users", s.Users),
		slog.Int64("recipes", s.Recipes),
		slog.Int64("favorites", s.Favorites),
		slog.Int64("cart_entries", s.CartEntries),
		slog.Duration("duration", time.Since(start)))
}
