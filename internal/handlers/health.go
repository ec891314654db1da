package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"rulebook-api/internal/contextutil"
)

// Pinger is a dependency that can report whether it is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles HTTP requests for health checks.
type HealthHandler struct {
	repository         Pinger
	cache              Pinger
	healthCheckTimeout time.Duration
}

// NewHealthHandler creates a new HealthHandler. cache may be nil when no
// snapshot cache is configured.
func NewHealthHandler(repository Pinger, cache Pinger) *HealthHandler {
	return &HealthHandler{
		repository:         repository,
		cache:              cache,
		healthCheckTimeout: 5 * time.Second,
	}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	// Overall health status: "healthy", "degraded", or "unhealthy"
	Status string `json:"status"`

	// Timestamp of the health check
	Timestamp string `json:"timestamp"`

	// Individual check results
	Checks map[string]string `json:"checks"`

	// List of issues (only present if status is degraded or unhealthy)
	Issues []string `json:"issues,omitempty"`
}

// ServeHTTP handles GET /api/health.
//
// The content repository is required: when it fails the service is
// unhealthy and 503 is returned. The snapshot cache is optional, so a Redis
// failure only degrades the service and still returns 200.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	checkCtx, cancel := context.WithTimeout(ctx, h.healthCheckTimeout)
	defer cancel()

	checks := make(map[string]string)
	var issues []string
	status := "healthy"
	httpStatus := http.StatusOK

	if h.check(checkCtx, logger, "repository", h.repository) {
		checks["repository"] = "ok"
	} else {
		checks["repository"] = "error"
		issues = append(issues, "repository_unavailable")
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	}

	switch {
	case h.cache == nil:
		checks["cache"] = "disabled"
	case h.check(checkCtx, logger, "cache", h.cache):
		checks["cache"] = "ok"
	default:
		checks["cache"] = "error"
		issues = append(issues, "cache_unavailable")
		if status == "healthy" {
			status = "degraded"
		}
	}

	writeJSON(w, ctx, httpStatus, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Issues:    issues,
	})
}

func (h *HealthHandler) check(ctx context.Context, logger *slog.Logger, name string, p Pinger) bool {
	if err := p.Ping(ctx); err != nil {
		logger.WarnContext(ctx, "health check failed", "check", name, "error", err)
		return false
	}
	return true
}
