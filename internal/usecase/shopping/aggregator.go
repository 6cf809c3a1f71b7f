package shopping

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"foodgram/internal/domain/entity"
	"foodgram/internal/observability/metrics"
	"foodgram/internal/observability/tracing"
	"foodgram/internal/repository"
)

// Aggregator sums the ingredient amounts of every recipe in a user's cart.
// It only reads from Repo and keeps no state between calls.
type Aggregator struct {
	Repo repository.ShoppingCartReader
}

// BuildReport returns one line per (ingredient name, unit) with the amounts
// summed across the cart, sorted by name and then unit.
// An empty cart yields an empty, non-nil slice. Any read failure is returned
// as ErrStorageUnavailable without a partial result.
func (a *Aggregator) BuildReport(ctx context.Context, userID int64) (lines []entity.AggregatedLine, err error) {
	ctx, span := tracing.GetTracer().Start(ctx, "shopping.BuildReport",
		trace.WithAttributes(attribute.Int64("user.id", userID)))
	start := time.Now()
	defer func() {
		metrics.RecordShoppingListBuild(len(lines), err, time.Since(start))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, ErrStorageUnavailable.Error())
		}
		span.SetAttributes(attribute.Int("shopping.lines", len(lines)))
		span.End()
	}()

	recipeIDs, err := a.Repo.ListCartRecipeIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list cart recipes: %w: %w", ErrStorageUnavailable, err)
	}
	span.SetAttributes(attribute.Int("shopping.recipes", len(recipeIDs)))
	if len(recipeIDs) == 0 {
		return []entity.AggregatedLine{}, nil
	}

	rows, err := a.Repo.ListIngredientAmounts(ctx, recipeIDs)
	if err != nil {
		return nil, fmt.Errorf("list ingredient amounts: %w: %w", ErrStorageUnavailable, err)
	}
	return Aggregate(rows), nil
}

type lineKey struct {
	name string
	unit string
}

// Aggregate folds rows by (name, unit) and sorts the result by name, then unit.
// Names differing only in unit stay on separate lines.
func Aggregate(rows []entity.IngredientAmount) []entity.AggregatedLine {
	totals := make(map[lineKey]int64, len(rows))
	for _, r := range rows {
		totals[lineKey{name: r.Name, unit: r.Unit}] += r.Amount
	}

	lines := make([]entity.AggregatedLine, 0, len(totals))
	for k, total := range totals {
		lines = append(lines, entity.AggregatedLine{Name: k.name, Unit: k.unit, Total: total})
	}
	// map の順序は不定なので必ずソートする
	slices.SortFunc(lines, func(a, b entity.AggregatedLine) int {
		if c := cmp.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.Unit, b.Unit)
	})
	return lines
}
