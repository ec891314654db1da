package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"rulebook-api/internal/service"
)

// BrowseHandler serves the per-environment reference listings.
type BrowseHandler struct {
	browseService service.BrowseService
}

// NewBrowseHandler creates a new BrowseHandler.
func NewBrowseHandler(browseService service.BrowseService) *BrowseHandler {
	return &BrowseHandler{browseService: browseService}
}

// Definitions handles GET /api/{env}/definitions.
func (h *BrowseHandler) Definitions(w http.ResponseWriter, r *http.Request) {
	defs, err := h.browseService.Definitions(r.Context(), chi.URLParam(r, "env"))
	respond(w, r, defs, err, "Failed to list definitions")
}

// Diagrams handles GET /api/{env}/diagrams.
func (h *BrowseHandler) Diagrams(w http.ResponseWriter, r *http.Request) {
	diagrams, err := h.browseService.Diagrams(r.Context(), chi.URLParam(r, "env"))
	respond(w, r, diagrams, err, "Failed to list diagrams")
}

// Gestures handles GET /api/{env}/gestures.
func (h *BrowseHandler) Gestures(w http.ResponseWriter, r *http.Request) {
	gestures, err := h.browseService.Gestures(r.Context(), chi.URLParam(r, "env"))
	respond(w, r, gestures, err, "Failed to list gestures")
}

// Protocols handles GET /api/{env}/protocols.
func (h *BrowseHandler) Protocols(w http.ResponseWriter, r *http.Request) {
	protocols, err := h.browseService.Protocols(r.Context(), chi.URLParam(r, "env"))
	respond(w, r, protocols, err, "Failed to list protocols")
}

// respond writes v as 200 OK, or maps err.
func respond(w http.ResponseWriter, r *http.Request, v any, err error, defaultMsg string) {
	if err != nil {
		handleServiceError(w, r.Context(), err, defaultMsg)
		return
	}
	writeJSON(w, r.Context(), http.StatusOK, v)
}
