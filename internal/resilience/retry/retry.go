// Package retry waits for PostgreSQL and Redis to accept connections at
// startup, backing off exponentially between attempts.
package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// SQLSTATE codes seen while PostgreSQL is still starting.
const (
	pgCannotConnectNow   = "57P03"
	pgTooManyConnections = "53300"
)

var retriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "foodgram_startup_retries_total",
		Help: "Failed connection attempts that were retried, by target",
	},
	[]string{"target"},
)

// Policy describes how often and how long to retry.
type Policy struct {
	// Target labels logs and the retry metric ("postgres", "redis").
	Target   string
	Attempts int
	Base     time.Duration
	Max      time.Duration
	// Jitter adds up to this fraction of the delay at random.
	Jitter float64
}

// Postgres allows the database a few seconds to come up.
var Postgres = Policy{Target: "postgres", Attempts: 3, Base: 100 * time.Millisecond, Max: time.Second, Jitter: 0.1}

// Redis is slightly more patient than Postgres; the store is optional.
var Redis = Policy{Target: "redis", Attempts: 4, Base: 200 * time.Millisecond, Max: 2 * time.Second, Jitter: 0.1}

// Do calls fn until it succeeds, returns a permanent error, the attempts
// run out or ctx ends. Delays double from Base up to Max.
func Do(ctx context.Context, p Policy, fn func() error) error {
	delay := p.Base
	var err error
	for attempt := 1; attempt <= p.Attempts; attempt++ {
		if err = fn(); err == nil {
			if attempt > 1 {
				slog.Info("connected after retry", slog.String("target", p.Target), slog.Int("attempt", attempt))
			}
			return nil
		}
		if !IsTransient(err) {
			return err
		}
		if attempt == p.Attempts {
			break
		}

		retriesTotal.WithLabelValues(p.Target).Inc()
		wait := p.jittered(delay)
		slog.Warn("connection failed, retrying",
			slog.String("target", p.Target),
			slog.Int("attempt", attempt),
			slog.Duration("delay", wait),
			slog.Any("error", err))

		t := time.NewTimer(wait)
		select {
		case <-t.C:
		case <-ctx.Done():
			t.Stop()
			return fmt.Errorf("retry aborted: %w", ctx.Err())
		}
		delay = min(delay*2, p.Max)
	}
	return fmt.Errorf("%s: gave up after %d attempts: %w", p.Target, p.Attempts, err)
}

func (p Policy) jittered(d time.Duration) time.Duration {
	if p.Jitter <= 0 {
		return d
	}
	// #nosec G404 -- jitter does not need crypto randomness
	return d + time.Duration(rand.Float64()*float64(d)*min(p.Jitter, 1))
}

// IsTransient reports whether err looks like a server that is not up yet.
func IsTransient(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ETIMEDOUT) || errors.Is(err, syscall.ENETUNREACH) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgCannotConnectNow || pgErr.Code == pgTooManyConnections
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}
	return pgconn.SafeToRetry(err)
}
