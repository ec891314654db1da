package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"rulebook-api/internal/contextutil"
	"rulebook-api/internal/service"
)

// ExtrasHandler handles the news and multimedia endpoints.
type ExtrasHandler struct {
	extrasService service.ExtrasService
}

// NewExtrasHandler creates a new ExtrasHandler.
func NewExtrasHandler(extrasService service.ExtrasService) *ExtrasHandler {
	return &ExtrasHandler{extrasService: extrasService}
}

// List handles GET /api/extras. Tags may be repeated or comma-separated.
func (h *ExtrasHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	extras, err := h.extrasService.List(r.Context(), service.ListExtrasRequest{
		Tags: splitTags(q["tag"]),
		Kind: q.Get("kind"),
	})
	respond(w, r, extras, err, "Failed to list extras")
}

// Get handles GET /api/extras/{id}.
func (h *ExtrasHandler) Get(w http.ResponseWriter, r *http.Request) {
	extra, err := h.extrasService.Get(r.Context(), chi.URLParam(r, "id"))
	respond(w, r, extra, err, "Failed to get extra")
}

// Create handles POST /api/extras.
func (h *ExtrasHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var in service.ExtraInput
	if err := decodeJSON(r, &in); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	extra, err := h.extrasService.Create(ctx, in)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to create extra")
		return
	}
	writeJSON(w, ctx, http.StatusCreated, extra)
}

// Update handles PUT /api/extras/{id}.
func (h *ExtrasHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var in service.ExtraInput
	if err := decodeJSON(r, &in); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	extra, err := h.extrasService.Update(ctx, chi.URLParam(r, "id"), in)
	respond(w, r, extra, err, "Failed to update extra")
}

// Delete handles DELETE /api/extras/{id}.
func (h *ExtrasHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.extrasService.Delete(ctx, chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, ctx, err, "Failed to delete extra")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func splitTags(values []string) []string {
	var tags []string
	for _, v := range values {
		for _, tag := range strings.Split(v, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				tags = append(tags, tag)
			}
		}
	}
	return tags
}
