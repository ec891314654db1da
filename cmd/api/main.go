package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	"rulebook-api/internal/config"
	"rulebook-api/internal/http"
	"rulebook-api/internal/indexer"
	"rulebook-api/internal/metrics"
	"rulebook-api/internal/repository"
	"rulebook-api/internal/repository/supabase"
	"rulebook-api/internal/service"
	"rulebook-api/internal/snapshotcache"
	"rulebook-api/internal/storage"
)

// backend is one configured content backend.
type backend struct {
	repo     repository.Repository
	extras   repository.ExtrasStore
	verifier repository.TokenVerifier
	close    func() error
}

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	be, err := openBackend(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open content backend: %v", err)
	}
	defer func() {
		_ = be.close()
	}()

	// Every backend call goes through one circuit breaker.
	guard := repository.NewGuard(repository.BreakerConfig{
		Name:        cfg.ContentBackend,
		MaxFailures: cfg.BreakerMaxFailures,
		OpenTimeout: cfg.BreakerOpenTimeout,
	}, m)
	repo := repository.NewGuarded(be.repo, guard)
	extras := repository.NewGuardedExtras(be.extras, guard)

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = snapshotcache.NewClient(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer func() {
			_ = redisClient.Close()
		}()
		slog.Info("Snapshot cache enabled", "ttl", cfg.SnapshotTTL)
	}
	snapshots := snapshotcache.New(redisClient, repo, cfg.ContentBackend, cfg.SnapshotTTL)

	pipeline := indexer.NewPipeline(snapshots, m)
	treeService := service.NewTreeService(repo, m)

	deps := &http.Deps{
		SearchService: service.NewSearchService(pipeline, m),
		TreeService:   treeService,
		BrowseService: service.NewBrowseService(repo),
		ExtrasService: service.NewExtrasService(extras),
		Indexes:       pipeline,
		Repository:    repo,
		TokenVerifier: be.verifier,
		Metrics:       m,
		Gatherer:      registry,
		CORSOrigin:    cfg.CORSOrigin,
	}
	if snapshots.Enabled() {
		deps.Cache = snapshots
	}
	router := http.NewRouter(deps)

	// Build the first index in the background; searches before it is
	// ready join the same build.
	go func() {
		if _, err := pipeline.Rebuild(ctx); err != nil {
			slog.Error("Initial index build failed", "error", err)
			return
		}
		slog.Info("Initial index build completed")
	}()
	go pipeline.Run(ctx, cfg.IndexRefreshInterval)
	go sweepTreeSessions(ctx, treeService, cfg.TreeSessionIdle)

	// Start API server
	addr := ":" + cfg.APIPort
	server := &nethttp.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Graceful shutdown failed", "error", err)
		}
	}()

	slog.Info("Starting API server", "addr", addr, "backend", cfg.ContentBackend)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
		log.Fatalf("API server failed to start: %v", err)
	}
	slog.Info("API server stopped")
}

// openBackend connects the configured content backend.
func openBackend(ctx context.Context, cfg *config.Config) (*backend, error) {
	switch cfg.ContentBackend {
	case config.BackendSQLite:
		db, err := storage.New(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		if err := storage.Migrate(db); err != nil {
			_ = db.Close()
			return nil, err
		}
		repo := storage.NewContentRepo(db)
		if err := seed(ctx, repo, cfg.SeedPath); err != nil {
			_ = db.Close()
			return nil, err
		}
		if cfg.AdminToken == "" {
			slog.Warn("ADMIN_TOKEN is not set; admin endpoints will reject every request")
		}
		slog.Info("Database initialized", "path", cfg.DBPath)
		return &backend{
			repo:     repo,
			extras:   repo,
			verifier: storage.NewStaticTokenVerifier(cfg.AdminToken),
			close:    db.Close,
		}, nil

	default:
		client, err := supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseKey)
		if err != nil {
			return nil, err
		}
		repo := supabase.New(client)
		slog.Info("Supabase backend configured", "url", cfg.SupabaseURL)
		return &backend{
			repo:     repo,
			extras:   repo,
			verifier: supabase.NewVerifier(client),
			close:    func() error { return nil },
		}, nil
	}
}

// seed imports the dataset at path, if any.
func seed(ctx context.Context, repo *storage.ContentRepo, path string) error {
	if path == "" {
		return nil
	}
	ds, err := storage.LoadDataset(path)
	if err != nil {
		return err
	}
	if err := repo.Import(ctx, ds); err != nil {
		return err
	}
	slog.Info("Seed data imported", "path", path)
	return nil
}

// sweepTreeSessions drops idle tree sessions until ctx is done.
func sweepTreeSessions(ctx context.Context, trees service.TreeService, maxIdle time.Duration) {
	if maxIdle <= 0 {
		return
	}
	ticker := time.NewTicker(maxIdle / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := trees.CloseIdle(maxIdle); n > 0 {
				slog.Info("Closed idle tree sessions", "count", n)
			}
		}
	}
}
