package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"

	pgRepo "foodgram/internal/infra/adapter/persistence/postgres"
	"foodgram/internal/infra/db"
	workerPkg "foodgram/internal/infra/worker"
	"foodgram/internal/observability/logging"
)

// waitForMigrations blocks until the API has created the schema.
func waitForMigrations(logger *slog.Logger, database *sql.DB) {
	const probe = "SELECT 1 FROM recipes LIMIT 1"
	for i := 0; i < 10; i++ {
		if _, err := database.Exec(probe); err == nil {
			return
		}
		logger.Info("waiting for migrations, retrying in 3s", slog.Int("attempt", i+1))
		time.Sleep(3 * time.Second)
	}
	logger.Error("migrations did not complete in time")
	os.Exit(1)
}

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	database := db.Open()
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()
	waitForMigrations(logger, database)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 設定値が不正でもデフォルトで起動する (fail-open)
	workerMetrics := workerPkg.NewWorkerMetrics(prometheus.DefaultRegisterer)
	cfg := workerPkg.LoadConfigFromEnv(logger, workerMetrics)
	logger.Info("worker configuration loaded",
		slog.String("cron_schedule", cfg.CronSchedule),
		slog.String("timezone", cfg.Timezone),
		slog.Duration("job_timeout", cfg.JobTimeout),
		slog.Int("metrics_port", cfg.MetricsPort))

	healthServer := workerPkg.NewHealthServer(fmt.Sprintf(":%d", cfg.MetricsPort), logger, prometheus.DefaultGatherer)
	go func() {
		if err := healthServer.Start(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("health server stopped", slog.Any("error", err))
		}
	}()

	job := &workerPkg.StatsJob{
		Users:     pgRepo.NewUserRepo(database),
		Recipes:   pgRepo.NewRecipeRepo(database),
		Favorites: pgRepo.NewFavoriteRepo(database),
		Cart:      pgRepo.NewCartRepo(database, nil),
		Metrics:   workerMetrics,
		Logger:    logger,
		Timeout:   cfg.JobTimeout,
	}

	c := cron.New(
		cron.WithLocation(cfg.Location()),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
	if _, err := c.AddJob(cfg.CronSchedule, job); err != nil {
		logger.Error("failed to schedule stats job", slog.Any("error", err))
		os.Exit(1)
	}

	// 起動直後に一度集計しておく
	job.Run()

	c.Start()
	healthServer.SetReady(true)
	logger.Info("worker started", slog.String("schedule", cfg.CronSchedule))

	<-ctx.Done()
	logger.Info("shutting down worker...")
	healthServer.SetReady(false)

	// 実行中のジョブの完了を待つ
	<-c.Stop().Done()
	logger.Info("worker stopped")
}
