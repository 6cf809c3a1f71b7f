// Package circuitbreaker guards PostgreSQL and Redis calls with
// github.com/sony/gobreaker so a failing backend is reported at once
// instead of piling up blocked requests.
package circuitbreaker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sony/gobreaker"
)

var stateGauge = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "foodgram_circuit_breaker_state",
		Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
	},
	[]string{"name"},
)

// Config tunes one breaker.
type Config struct {
	Name string
	// HalfOpenRequests may pass while probing a recovered backend.
	HalfOpenRequests uint32
	// Interval clears the counts while closed.
	Interval time.Duration
	// OpenTimeout is how long the breaker stays open before probing.
	OpenTimeout time.Duration
	// The breaker trips once MinRequests were seen and the failure ratio reaches FailureRatio.
	FailureRatio float64
	MinRequests  uint32
}

// DatabaseConfig trips only when every one of at least five requests failed.
func DatabaseConfig() Config {
	return Config{
		Name:             "database",
		HalfOpenRequests: 3,
		Interval:         time.Minute,
		OpenTimeout:      30 * time.Second,
		FailureRatio:     1.0,
		MinRequests:      5,
	}
}

// RedisConfig trips and recovers faster than the database breaker.
func RedisConfig() Config {
	return Config{
		Name:             "redis",
		HalfOpenRequests: 1,
		Interval:         30 * time.Second,
		OpenTimeout:      15 * time.Second,
		FailureRatio:     0.5,
		MinRequests:      4,
	}
}

// Breaker is a named gobreaker.CircuitBreaker that logs and exports its state.
type Breaker struct {
	cb *gobreaker.CircuitBreaker
}

// New creates a closed breaker.
func New(cfg Config) *Breaker {
	stateGauge.WithLabelValues(cfg.Name).Set(float64(gobreaker.StateClosed))
	return &Breaker{cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:         cfg.Name,
		MaxRequests:  cfg.HalfOpenRequests,
		Interval:     cfg.Interval,
		Timeout:      cfg.OpenTimeout,
		IsSuccessful: isSuccessful,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.Requests >= cfg.MinRequests &&
				float64(c.TotalFailures)/float64(c.Requests) >= cfg.FailureRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			stateGauge.WithLabelValues(name).Set(float64(to))
			slog.Warn("circuit breaker state changed",
				slog.String("circuit", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
	})}
}

// isSuccessful treats caller cancellations and deadlines as healthy calls:
// a client that hangs up says nothing about the backend.
func isSuccessful(err error) bool {
	return err == nil ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

// Execute runs fn unless the breaker is open, in which case it returns
// gobreaker.ErrOpenState without calling fn.
func (b *Breaker) Execute(fn func() (any, error)) (any, error) {
	return b.cb.Execute(fn)
}

func (b *Breaker) State() gobreaker.State { return b.cb.State() }

func (b *Breaker) Name() string { return b.cb.Name() }
