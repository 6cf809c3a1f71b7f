package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Shopping list results.
const (
	ShoppingListOK    = "success"
	ShoppingListEmpty = "empty"
	ShoppingListError = "error"
)

var (
	ShoppingListBuildsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodgram_shopping_list_builds_total",
			Help: "Total number of shopping list builds by result",
		},
		[]string{"result"},
	)

	ShoppingListLines = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "foodgram_shopping_list_lines",
			Help:    "Number of aggregated lines per shopping list",
			Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500},
		},
	)

	ShoppingListBuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "foodgram_shopping_list_build_duration_seconds",
			Help:    "Time taken to read and aggregate a shopping list",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
	)

	RecipesCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "foodgram_recipes_created_total",
			Help: "Total number of recipes created",
		},
	)

	UsersRegisteredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "foodgram_users_registered_total",
			Help: "Total number of user registrations",
		},
	)

	// collection: favorites | shopping_cart | subscriptions, action: add | remove
	CollectionChangesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodgram_collection_changes_total",
			Help: "Total number of favorite, cart and subscription changes",
		},
		[]string{"collection", "action"},
	)

	ShortLinkResolvesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodgram_short_link_resolves_total",
			Help: "Total number of short link lookups by result",
		},
		[]string{"result"}, // found | not_found
	)
)

// Gauges refreshed by the worker's stats job.
var (
	RecipesTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "foodgram_recipes",
			Help: "Number of recipes in the database",
		},
	)

	UsersTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "foodgram_users",
			Help: "Number of registered users",
		},
	)

	FavoritesTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "foodgram_favorites",
			Help: "Number of favorite entries across all users",
		},
	)

	ShoppingCartEntriesTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "foodgram_shopping_cart_entries",
			Help: "Number of shopping cart entries across all users",
		},
	)
)

// RecordShoppingListBuild records one BuildReport call.
// An empty, successful report counts as "empty" and is not observed in the lines histogram.
func RecordShoppingListBuild(lines int, err error, duration time.Duration) {
	ShoppingListBuildDuration.Observe(duration.Seconds())
	switch {
	case err != nil:
		ShoppingListBuildsTotal.WithLabelValues(ShoppingListError).Inc()
	case lines == 0:
		ShoppingListBuildsTotal.WithLabelValues(ShoppingListEmpty).Inc()
	default:
		ShoppingListBuildsTotal.WithLabelValues(ShoppingListOK).Inc()
		ShoppingListLines.Observe(float64(lines))
	}
}

func RecordRecipeCreated() {
	RecipesCreatedTotal.Inc()
}

func RecordUserRegistered() {
	UsersRegisteredTotal.Inc()
}

// RecordCollectionChange counts an add or remove on favorites, shopping_cart or subscriptions.
func RecordCollectionChange(collection string, added bool) {
	action := "remove"
	if added {
		action = "add"
	}
	CollectionChangesTotal.WithLabelValues(collection, action).Inc()
}

func RecordShortLinkResolve(found bool) {
	result := "not_found"
	if found {
		result = "found"
	}
	ShortLinkResolvesTotal.WithLabelValues(result).Inc()
}

// Stats is a snapshot of table sizes collected by the worker.
type Stats struct {
	Recipes     int64
	Users       int64
	Favorites   int64
	CartEntries int64
}

// UpdateStats sets the table-size gauges from s.
func UpdateStats(s Stats) {
	RecipesTotal.Set(float64(s.Recipes))
	UsersTotal.Set(float64(s.Users))
	FavoritesTotal.Set(float64(s.Favorites))
	ShoppingCartEntriesTotal.Set(float64(s.CartEntries))
}
