package handlers

import (
	"context"
	"net/http"

	"rulebook-api/internal/contextutil"
	"rulebook-api/internal/indexer"
	"rulebook-api/internal/search"
)

// IndexManager rebuilds and describes the search index.
type IndexManager interface {
	Invalidate(ctx context.Context) error
	Rebuild(ctx context.Context) (*search.Index, error)
	Stats() (indexer.IndexStats, bool)
}

// IndexHandler handles HTTP requests for rebuilding the search index.
type IndexHandler struct {
	indexes IndexManager
}

// NewIndexHandler creates a new IndexHandler.
func NewIndexHandler(indexes IndexManager) *IndexHandler {
	return &IndexHandler{indexes: indexes}
}

// IndexResponse represents the response from the rebuild endpoint.
type IndexResponse struct {
	Message string              `json:"message"`
	Status  string              `json:"status"`
	Stats   *indexer.IndexStats `json:"stats,omitempty"`
}

// ServeHTTP handles POST /api/index.
//
// force=true drops the cached snapshot first so the rebuild reads the
// backend. wait=true blocks until the new index is published.
func (h *IndexHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	force := r.URL.Query().Get("force") == "true"
	wait := r.URL.Query().Get("wait") == "true"

	if force {
		logger.InfoContext(ctx, "forced index rebuild triggered via API")
	} else {
		logger.InfoContext(ctx, "index rebuild triggered via API")
	}

	if wait {
		if err := h.rebuild(ctx, force); err != nil {
			writeError(w, http.StatusBadGateway, "Index rebuild failed")
			return
		}
		stats, _ := h.indexes.Stats()
		writeJSON(w, ctx, http.StatusOK, IndexResponse{
			Message: "Index rebuilt.",
			Status:  "completed",
			Stats:   &stats,
		})
		return
	}

	// Keep the request logger but not its cancellation.
	go func() {
		_ = h.rebuild(context.WithoutCancel(ctx), force)
	}()

	message := "Index rebuild started. Check server logs for progress."
	if force {
		message = "Forced index rebuild started (snapshot cache cleared). Check server logs for progress."
	}
	writeJSON(w, ctx, http.StatusAccepted, IndexResponse{
		Message: message,
		Status:  "accepted",
	})
}

func (h *IndexHandler) rebuild(ctx context.Context, force bool) error {
	logger := contextutil.LoggerFromContext(ctx)
	if force {
		if err := h.indexes.Invalidate(ctx); err != nil {
			logger.WarnContext(ctx, "failed to clear snapshot cache", "error", err)
		}
	}
	if _, err := h.indexes.Rebuild(ctx); err != nil {
		logger.ErrorContext(ctx, "index rebuild failed", "error", err)
		return err
	}
	logger.InfoContext(ctx, "index rebuild completed")
	return nil
}

// Stats handles GET /api/index/stats.
func (h *IndexHandler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	stats, ok := h.indexes.Stats()
	if !ok {
		writeError(w, http.StatusServiceUnavailable, "Index not built yet")
		return
	}
	writeJSON(w, ctx, http.StatusOK, stats)
}
