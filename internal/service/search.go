package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_services.go -package=mocks rulebook-api/internal/service IndexProvider,SearchService,TreeService,BrowseService,ExtrasService

import (
	"context"
	"fmt"

	"rulebook-api/internal/content"
	"rulebook-api/internal/contextutil"
	"rulebook-api/internal/metrics"
	"rulebook-api/internal/search"
)

// IndexProvider hands out the current search index.
type IndexProvider interface {
	Index(ctx context.Context) (*search.Index, error)
}

// SearchRequest is a faceted search query.
type SearchRequest struct {
	Query       string `json:"q" validate:"max=200"`
	Environment string `json:"env" validate:"required"`
	Category    string `json:"category"`
}

// SearchResponse lists the matching records in priority order.
type SearchResponse struct {
	Query       string              `json:"query"`
	Environment content.Environment `json:"environment"`
	Category    search.Category     `json:"category"`
	Results     []search.Result     `json:"results"`
	Total       int                 `json:"total"`
}

// SearchService runs queries against the search index.
type SearchService interface {
	Search(ctx context.Context, req SearchRequest) (SearchResponse, error)
}

type searchService struct {
	indexes IndexProvider
	metrics *metrics.Metrics
}

// NewSearchService creates a new SearchService. m may be nil.
func NewSearchService(indexes IndexProvider, m *metrics.Metrics) SearchService {
	return &searchService{indexes: indexes, metrics: m}
}

func (s *searchService) Search(ctx context.Context, req SearchRequest) (SearchResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if err := validateStruct(req); err != nil {
		logger.WarnContext(ctx, "invalid search request", "error", err)
		return SearchResponse{}, err
	}
	env, err := content.ParseEnvironment(req.Environment)
	if err != nil {
		return SearchResponse{}, &ValidationError{Field: "env", Message: err.Error()}
	}
	category, err := search.ParseCategory(req.Category)
	if err != nil {
		return SearchResponse{}, &ValidationError{Field: "category", Message: err.Error()}
	}

	index, err := s.indexes.Index(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "search index unavailable", "error", err)
		return SearchResponse{}, fmt.Errorf("search index unavailable: %w: %w", ErrExternalService, err)
	}

	results := index.Search(req.Query, env, category)
	s.metrics.ObserveSearch(string(category), string(env), len(results))

	logger.DebugContext(ctx, "search completed", "category", category, "environment", env, "results", len(results))
	return SearchResponse{
		Query:       req.Query,
		Environment: env,
		Category:    category,
		Results:     results,
		Total:       len(results),
	}, nil
}
