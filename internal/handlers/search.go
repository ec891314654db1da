package handlers

import (
	"net/http"

	"rulebook-api/internal/contextutil"
	"rulebook-api/internal/service"
)

// SearchHandler handles HTTP requests for the rulebook search.
type SearchHandler struct {
	searchService service.SearchService
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(searchService service.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// ServeHTTP handles GET /api/search?q=&env=&category=.
//
// A blank query is not an error; it yields an empty result list.
func (h *SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	q := r.URL.Query()
	resp, err := h.searchService.Search(ctx, service.SearchRequest{
		Query:       q.Get("q"),
		Environment: q.Get("env"),
		Category:    q.Get("category"),
	})
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to search")
		return
	}

	writeJSON(w, ctx, http.StatusOK, resp)
}
