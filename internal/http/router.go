package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"rulebook-api/internal/handlers"
	"rulebook-api/internal/metrics"
	"rulebook-api/internal/repository"
	"rulebook-api/internal/service"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	SearchService service.SearchService
	TreeService   service.TreeService
	BrowseService service.BrowseService
	ExtrasService service.ExtrasService
	Indexes       handlers.IndexManager

	// Repository is required for health checks. Cache may be nil.
	Repository handlers.Pinger
	Cache      handlers.Pinger

	TokenVerifier repository.TokenVerifier
	Metrics       *metrics.Metrics
	// Gatherer backs /metrics. Nil disables the endpoint.
	Gatherer   prometheus.Gatherer
	CORSOrigin string
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(RequestLogger)
	r.Use(Instrument(deps.Metrics))
	r.Use(CORS(deps.CORSOrigin))

	searchHandler := handlers.NewSearchHandler(deps.SearchService)
	browseHandler := handlers.NewBrowseHandler(deps.BrowseService)
	treeHandler := handlers.NewTreeHandler(deps.TreeService)
	extrasHandler := handlers.NewExtrasHandler(deps.ExtrasService)
	extraPageHandler := handlers.NewExtraPageHandler(deps.ExtrasService)
	indexHandler := handlers.NewIndexHandler(deps.Indexes)
	healthHandler := handlers.NewHealthHandler(deps.Repository, deps.Cache)

	requireAdmin := RequireAdmin(deps.TokenVerifier)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/health", healthHandler)
		r.Method(http.MethodGet, "/search", searchHandler)

		r.Route("/tree/sessions", func(r chi.Router) {
			r.Post("/", treeHandler.Open)
			r.Get("/{sessionID}", treeHandler.Get)
			r.Delete("/{sessionID}", treeHandler.Close)
			r.Post("/{sessionID}/rules/{ruleID}/cases/toggle", treeHandler.ToggleCases)
			r.Post("/{sessionID}/articles/{articleID}/guidelines/toggle", treeHandler.ToggleGuidelines)
			r.Post("/{sessionID}/{level}/{nodeID}/toggle", treeHandler.Toggle)
		})

		r.Route("/extras", func(r chi.Router) {
			r.Get("/", extrasHandler.List)
			r.Get("/{id}", extrasHandler.Get)
			r.Group(func(r chi.Router) {
				r.Use(requireAdmin)
				r.Post("/", extrasHandler.Create)
				r.Put("/{id}", extrasHandler.Update)
				r.Delete("/{id}", extrasHandler.Delete)
			})
		})

		r.Route("/index", func(r chi.Router) {
			r.Use(requireAdmin)
			r.Method(http.MethodPost, "/", indexHandler)
			r.Get("/stats", indexHandler.Stats)
		})

		r.Get("/{env}/definitions", browseHandler.Definitions)
		r.Get("/{env}/diagrams", browseHandler.Diagrams)
		r.Get("/{env}/gestures", browseHandler.Gestures)
		r.Get("/{env}/protocols", browseHandler.Protocols)
	})

	r.Method(http.MethodGet, "/extras/{id}", extraPageHandler)

	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	return r
}
