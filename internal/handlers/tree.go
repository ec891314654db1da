package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"rulebook-api/internal/contextutil"
	"rulebook-api/internal/service"
)

// TreeHandler handles the progressive-disclosure tree views.
type TreeHandler struct {
	treeService service.TreeService
}

// NewTreeHandler creates a new TreeHandler.
func NewTreeHandler(treeService service.TreeService) *TreeHandler {
	return &TreeHandler{treeService: treeService}
}

// Open handles POST /api/tree/sessions.
func (h *TreeHandler) Open(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req service.OpenTreeRequest
	if err := decodeJSON(r, &req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	session, err := h.treeService.Open(ctx, req)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to open tree")
		return
	}

	writeJSON(w, ctx, http.StatusCreated, session)
}

// Get handles GET /api/tree/sessions/{sessionID}.
func (h *TreeHandler) Get(w http.ResponseWriter, r *http.Request) {
	session, err := h.treeService.Get(r.Context(), chi.URLParam(r, "sessionID"))
	respond(w, r, session, err, "Failed to get tree")
}

// Close handles DELETE /api/tree/sessions/{sessionID}.
func (h *TreeHandler) Close(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.treeService.Close(ctx, chi.URLParam(r, "sessionID")); err != nil {
		handleServiceError(w, ctx, err, "Failed to close tree")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Toggle handles POST /api/tree/sessions/{sessionID}/{level}/{nodeID}/toggle.
func (h *TreeHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	view, err := h.treeService.Toggle(r.Context(),
		chi.URLParam(r, "sessionID"),
		chi.URLParam(r, "level"),
		chi.URLParam(r, "nodeID"),
	)
	respond(w, r, view, err, "Failed to toggle node")
}

// ToggleCases handles POST /api/tree/sessions/{sessionID}/rules/{ruleID}/cases/toggle.
func (h *TreeHandler) ToggleCases(w http.ResponseWriter, r *http.Request) {
	acc, err := h.treeService.ToggleCases(r.Context(), chi.URLParam(r, "sessionID"), chi.URLParam(r, "ruleID"))
	respond(w, r, acc, err, "Failed to toggle cases")
}

// ToggleGuidelines handles POST /api/tree/sessions/{sessionID}/articles/{articleID}/guidelines/toggle.
func (h *TreeHandler) ToggleGuidelines(w http.ResponseWriter, r *http.Request) {
	acc, err := h.treeService.ToggleGuidelines(r.Context(), chi.URLParam(r, "sessionID"), chi.URLParam(r, "articleID"))
	respond(w, r, acc, err, "Failed to toggle guidelines")
}
