package worker

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HealthServer serves the worker's operational endpoints:
//
//	GET /health        liveness, always 200
//	GET /health/ready  200 once the scheduler runs, 503 before
//	GET /metrics       Prometheus exposition of gatherer
type HealthServer struct {
	addr     string
	logger   *slog.Logger
	gatherer prometheus.Gatherer
	isReady  atomic.Bool
	server   *http.Server
}

type healthResponse struct {
	Status string `json:"status"`
}

// NewHealthServer creates a server listening on addr. It starts not ready.
func NewHealthServer(addr string, logger *slog.Logger, gatherer prometheus.Gatherer) *HealthServer {
	return &HealthServer{addr: addr, logger: logger, gatherer: gatherer}
}

// Handler returns the routes of the server.
func (h *HealthServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", h.handleLiveness)
	mux.HandleFunc("GET /health/ready", h.handleReadiness)
	mux.Handle("GET /metrics", promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{}))
	return mux
}

// Start serves until ctx is canceled, then shuts down within 5 seconds.
// It returns http.ErrServerClosed after a graceful shutdown.
func (h *HealthServer) Start(ctx context.Context) error {
	h.server = &http.Server{
		Addr:         h.addr,
		Handler:      h.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		h.logger.Info("health server starting", slog.String("addr", h.addr))
		errChan <- h.server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		h.logger.Info("health server shutting down")
		if err := h.server.Shutdown(shutdownCtx); err != nil {
			h.logger.Error("health server shutdown failed", slog.Any("error", err))
			return err
		}
		return http.ErrServerClosed

	case err := <-errChan:
		if !errors.Is(err, http.ErrServerClosed) {
			h.logger.Error("health server failed", slog.Any("error", err))
		}
		return err
	}
}

// SetReady switches the readiness probe.
func (h *HealthServer) SetReady(ready bool) {
	h.isReady.Store(ready)
	h.logger.Info("health server readiness changed", slog.Bool("ready", ready))
}

func (h *HealthServer) handleLiveness(w http.ResponseWriter, _ *http.Request) {
	h.write(w, http.StatusOK, "ok")
}

func (h *HealthServer) handleReadiness(w http.ResponseWriter, _ *http.Request) {
	if h.isReady.Load() {
		h.write(w, http.StatusOK, "ok")
		return
	}
	h.write(w, http.StatusServiceUnavailable, "not ready")
}

func (h *HealthServer) write(w http.ResponseWriter, code int, status string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(healthResponse{Status: status}); err != nil {
		h.logger.Error("failed to encode health response", slog.Any("error", err))
	}
}
