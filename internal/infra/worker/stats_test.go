package worker

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodgram/internal/observability/metrics"
	"foodgram/internal/repository"
)

/* ───────── モック実装 ───────── */

type stubUsers struct {
	n   int64
	err error
}

func (s stubUsers) Count(context.Context) (int64, error) { return s.n, s.err }

type stubRecipes struct {
	n      int64
	err    error
	filter *repository.RecipeFilter
}

func (s *stubRecipes) Count(_ context.Context, f repository.RecipeFilter) (int64, error) {
	s.filter = &f
	return s.n, s.err
}

type stubEntries struct {
	n   int64
	err error
}

func (s stubEntries) CountEntries(context.Context) (int64, error) { return s.n, s.err }

func newJob(recipes *stubRecipes, usersErr error) (*StatsJob, *WorkerMetrics) {
	m := newTestMetrics()
	return &StatsJob{
		Users:     stubUsers{n: 12, err: usersErr},
		Recipes:   recipes,
		Favorites: stubEntries{n: 40},
		Cart:      stubEntries{n: 7},
		Metrics:   m,
		Logger:    slog.New(slog.DiscardHandler),
	}, m
}

func TestStatsJob_Collect(t *testing.T) {
	recipes := &stubRecipes{n: 30}
	job, _ := newJob(recipes, nil)

	s, err := job.Collect(context.Background())

	require.NoError(t, err)
	assert.Equal(t, metrics.Stats{Recipes: 30, Users: 12, Favorites: 40, CartEntries: 7}, s)
	// 全レシピを数える
	require.NotNil(t, recipes.filter)
	assert.Equal(t, repository.RecipeFilter{}, *recipes.filter)
}

func TestStatsJob_Collect_Error(t *testing.T) {
	job, _ := newJob(&stubRecipes{n: 30}, errors.New("connection refused"))

	s, err := job.Collect(context.Background())

	assert.ErrorContains(t, err, "count users")
	assert.Equal(t, metrics.Stats{}, s)
}

func TestStatsJob_Run_UpdatesGauges(t *testing.T) {
	job, m := newJob(&stubRecipes{n: 31}, nil)

	job.Run()

	assert.Equal(t, float64(31), testutil.ToFloat64(metrics.RecipesTotal))
	assert.Equal(t, float64(12), testutil.ToFloat64(metrics.UsersTotal))
	assert.Equal(t, float64(40), testutil.ToFloat64(metrics.FavoritesTotal))
	assert.Equal(t, float64(7), testutil.ToFloat64(metrics.ShoppingCartEntriesTotal))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.JobRunsTotal.WithLabelValues(StatusSuccess)))
	assert.Positive(t, testutil.ToFloat64(m.JobLastSuccess))
}

func TestStatsJob_Run_FailureKeepsGauges(t *testing.T) {
	metrics.UpdateStats(metrics.Stats{Recipes: 5, Users: 5, Favorites: 5, CartEntries: 5})
	job, m := newJob(&stubRecipes{n: 99}, errors.New("timeout"))

	job.Run()

	assert.Equal(t, float64(5), testutil.ToFloat64(metrics.RecipesTotal))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.JobRunsTotal.WithLabelValues(StatusFailure)))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.JobLastSuccess))
	assert.Equal(t, uint64(1), histogramCount(t, m))
}
