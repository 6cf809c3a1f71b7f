package worker

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"foodgram/internal/pkg/config"
)

// WorkerConfig controls the stats worker.
type WorkerConfig struct {
	// CronSchedule is a five-field cron expression or descriptor. Default: "*/5 * * * *"
	CronSchedule string

	// Timezone is the IANA zone the schedule is evaluated in. Default: "UTC"
	Timezone string

	// JobTimeout bounds one stats collection. Range 1s-10m. Default: 1m
	JobTimeout time.Duration

	// MetricsPort serves /metrics, /health and /health/ready. Range 1024-65535. Default: 9091
	MetricsPort int
}

// DefaultConfig returns the defaults documented on WorkerConfig.
func DefaultConfig() WorkerConfig {
	return WorkerConfig{
		CronSchedule: "*/5 * * * *",
		Timezone:     "UTC",
		JobTimeout:   time.Minute,
		MetricsPort:  9091,
	}
}

func validateJobTimeout(d time.Duration) error {
	return config.ValidateDuration(d, time.Second, 10*time.Minute)
}

func validateMetricsPort(p int) error {
	return config.ValidateIntRange(p, 1024, 65535)
}

// Validate checks every field and reports all problems at once.
func (c *WorkerConfig) Validate() error {
	var errs []error
	if err := config.ValidateCronSchedule(c.CronSchedule); err != nil {
		errs = append(errs, fmt.Errorf("cron schedule: %w", err))
	}
	if err := config.ValidateTimezone(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("timezone: %w", err))
	}
	if err := validateJobTimeout(c.JobTimeout); err != nil {
		errs = append(errs, fmt.Errorf("job timeout: %w", err))
	}
	if err := validateMetricsPort(c.MetricsPort); err != nil {
		errs = append(errs, fmt.Errorf("metrics port: %w", err))
	}
	return errors.Join(errs...)
}

// Location returns the schedule's time zone, UTC when Timezone does not load.
func (c *WorkerConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// LoadConfigFromEnv reads WORKER_CRON_SCHEDULE, WORKER_TIMEZONE, WORKER_JOB_TIMEOUT
// and WORKER_METRICS_PORT. Invalid values fall back to their defaults with a
// warning and a fallback metric, so the result is always valid.
func LoadConfigFromEnv(logger *slog.Logger, metrics *WorkerMetrics) WorkerConfig {
	cfg := DefaultConfig()
	fallback := false

	note := func(field, warning string) {
		fallback = true
		metrics.RecordFallback(field)
		logger.Warn("configuration fallback applied",
			slog.String("field", field),
			slog.String("warning", warning))
	}

	if r := config.LoadEnvString("WORKER_CRON_SCHEDULE", cfg.CronSchedule, config.ValidateCronSchedule); r.FallbackApplied {
		note("cron_schedule", r.Warning)
	} else {
		cfg.CronSchedule = r.Value
	}

	if r := config.LoadEnvString("WORKER_TIMEZONE", cfg.Timezone, config.ValidateTimezone); r.FallbackApplied {
		note("timezone", r.Warning)
	} else {
		cfg.Timezone = r.Value
	}

	if r := config.LoadEnvDuration("WORKER_JOB_TIMEOUT", cfg.JobTimeout, validateJobTimeout); r.FallbackApplied {
		note("job_timeout", r.Warning)
	} else {
		cfg.JobTimeout = r.Value
	}

	if r := config.LoadEnvInt("WORKER_METRICS_PORT", cfg.MetricsPort, validateMetricsPort); r.FallbackApplied {
		note("metrics_port", r.Warning)
	} else {
		cfg.MetricsPort = r.Value
	}

	metrics.SetFallbackActive(fallback)
	metrics.RecordLoadTimestamp()
	return cfg
}
