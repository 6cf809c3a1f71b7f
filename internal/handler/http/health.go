// Package http provides the top-level HTTP plumbing of the API server:
// health probes, request metrics and the shared middleware chain.
// Resource handlers live in the sub-packages (user, recipe, catalog, shopping).
package http

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/goccy/go-json"
)

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string                 `json:"status"`    // "healthy" or "unhealthy"
	Timestamp string                 `json:"timestamp"` // ISO 8601 format
	Checks    map[string]CheckStatus `json:"checks"`
	Version   string                 `json:"version"`
}

// CheckStatus represents the status of a single health check.
type CheckStatus struct {
	Status  string         `json:"status"` // "healthy", "degraded" or "unhealthy"
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// Pinger is implemented by optional dependencies such as the token revocation store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports database and revocation store health.
// A failing revocation store only degrades the service: anonymous reads keep working.
type HealthHandler struct {
	DB         *sql.DB
	Revocation Pinger
	Version    string
}

// ServeHTTP returns 200 OK when the database is reachable, 503 otherwise.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]CheckStatus)
	allHealthy := true

	// データベース接続チェック
	if h.DB != nil {
		dbCheck := h.checkDatabase(ctx)
		checks["database"] = dbCheck
		if dbCheck.Status == "unhealthy" {
			allHealthy = false
		}
	} else {
		checks["database"] = CheckStatus{Status: "unhealthy", Message: "not configured"}
		allHealthy = false
	}

	if h.Revocation != nil {
		checks["revocation_store"] = h.checkRevocation(ctx)
	}

	status := "healthy"
	statusCode := http.StatusOK
	if !allHealthy {
		status = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	}

	response := HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		slog.Warn("health: failed to encode response", slog.Any("error", err))
	}
}

// checkDatabase pings the database and reports connection pool statistics.
func (h *HealthHandler) checkDatabase(ctx context.Context) CheckStatus {
	if err := h.DB.PingContext(ctx); err != nil {
		return CheckStatus{Status: "unhealthy", Message: err.Error()}
	}

	stats := h.DB.Stats()
	details := map[string]any{
		"max_open_connections": stats.MaxOpenConnections,
		"open_connections":     stats.OpenConnections,
		"in_use":               stats.InUse,
		"idle":                 stats.Idle,
		"wait_count":           stats.WaitCount,
		"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
	}

	// MaxOpenConnections == 0 はプール上限なし
	if stats.MaxOpenConnections == 0 {
		return CheckStatus{
			Status:  "degraded",
			Message: "connection pool max connections not configured",
			Details: details,
		}
	}

	utilizationPercent := float64(stats.InUse) / float64(stats.MaxOpenConnections) * 100
	details["utilization_percent"] = utilizationPercent

	if utilizationPercent >= 80.0 {
		return CheckStatus{
			Status:  "degraded",
			Message: "connection pool utilization above 80%",
			Details: details,
		}
	}

	return CheckStatus{Status: "healthy", Details: details}
}

func (h *HealthHandler) checkRevocation(ctx context.Context) CheckStatus {
	if err := h.Revocation.Ping(ctx); err != nil {
		return CheckStatus{Status: "degraded", Message: err.Error()}
	}
	return CheckStatus{Status: "healthy"}
}

// ReadyHandler handles readiness probe requests.
type ReadyHandler struct {
	DB *sql.DB
}

// ServeHTTP returns 200 OK once the database accepts connections.
func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if h.DB == nil {
		http.Error(w, "database not configured", http.StatusServiceUnavailable)
		return
	}

	if err := h.DB.PingContext(ctx); err != nil {
		http.Error(w, "database not ready: "+err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// LiveHandler handles liveness probe requests.
type LiveHandler struct{}

func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("alive"))
}
