package repository

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"

	"rulebook-api/internal/content"
	"rulebook-api/internal/contextutil"
	"rulebook-api/internal/metrics"
)

// BreakerConfig configures the circuit breaker in front of the backend.
type BreakerConfig struct {
	Name string
	// MaxFailures is the number of consecutive failures that opens the breaker.
	MaxFailures uint32
	// OpenTimeout is how long the breaker stays open before probing again.
	OpenTimeout time.Duration
}

// DefaultBreakerConfig returns the breaker settings used when none are configured.
func DefaultBreakerConfig(name string) BreakerConfig {
	return BreakerConfig{
		Name:        name,
		MaxFailures: 5,
		OpenTimeout: 30 * time.Second,
	}
}

// Guard runs backend calls through a circuit breaker and records their
// outcome. It never retries.
type Guard struct {
	cb      *gobreaker.CircuitBreaker
	metrics *metrics.Metrics
}

// NewGuard creates a Guard. m may be nil.
func NewGuard(cfg BreakerConfig, m *metrics.Metrics) *Guard {
	if cfg.MaxFailures == 0 {
		cfg.MaxFailures = DefaultBreakerConfig(cfg.Name).MaxFailures
	}
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: 1,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.MaxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("Circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
		// Missing records and rejected tokens are answers, not backend failures.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNotFound) || errors.Is(err, ErrUnauthorized)
		},
	})
	return &Guard{cb: cb, metrics: m}
}

// State returns the current breaker state.
func (g *Guard) State() gobreaker.State {
	return g.cb.State()
}

func call[T any](ctx context.Context, g *Guard, op string, fn func() (T, error)) (T, error) {
	start := time.Now()
	out, err := g.cb.Execute(func() (interface{}, error) {
		return fn()
	})

	status := "ok"
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		status = "unavailable"
		err = &Error{Op: op, Err: ErrUnavailable}
	case err != nil:
		status = "error"
		err = Wrap(op, err)
	}
	g.metrics.ObserveRepositoryCall(op, status, time.Since(start))

	if err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "Repository call failed", "op", op, "status", status, "error", err)
		var zero T
		return zero, err
	}
	if out == nil {
		var zero T
		return zero, nil
	}
	return out.(T), nil
}

// Guarded decorates a Repository with a Guard.
type Guarded struct {
	repo  Repository
	guard *Guard
}

var _ Repository = (*Guarded)(nil)

// NewGuarded wraps repo.
func NewGuarded(repo Repository, guard *Guard) *Guarded {
	return &Guarded{repo: repo, guard: guard}
}

func (g *Guarded) ListChapters(ctx context.Context, env content.Environment) ([]content.Chapter, error) {
	return call(ctx, g.guard, "list_chapters", func() ([]content.Chapter, error) {
		return g.repo.ListChapters(ctx, env)
	})
}

func (g *Guarded) ListArticles(ctx context.Context, chapterID content.ID) ([]content.Article, error) {
	return call(ctx, g.guard, "list_articles", func() ([]content.Article, error) {
		return g.repo.ListArticles(ctx, chapterID)
	})
}

func (g *Guarded) ListRules(ctx context.Context, articleID content.ID) ([]content.Rule, error) {
	return call(ctx, g.guard, "list_rules", func() ([]content.Rule, error) {
		return g.repo.ListRules(ctx, articleID)
	})
}

func (g *Guarded) CheckCaseExistence(ctx context.Context, ruleIDs []content.ID) (map[content.ID][]int, error) {
	return call(ctx, g.guard, "check_case_existence", func() (map[content.ID][]int, error) {
		return g.repo.CheckCaseExistence(ctx, ruleIDs)
	})
}

func (g *Guarded) FetchCaseDetails(ctx context.Context, ruleIDs []content.ID) ([]content.Case, error) {
	return call(ctx, g.guard, "fetch_case_details", func() ([]content.Case, error) {
		return g.repo.FetchCaseDetails(ctx, ruleIDs)
	})
}

func (g *Guarded) CheckGuidelineExistence(ctx context.Context, articleID content.ID, ruleIDs []content.ID) (bool, error) {
	return call(ctx, g.guard, "check_guideline_existence", func() (bool, error) {
		return g.repo.CheckGuidelineExistence(ctx, articleID, ruleIDs)
	})
}

func (g *Guarded) FetchGuidelineDetails(ctx context.Context, articleID content.ID, ruleIDs []content.ID) ([]content.Guideline, error) {
	return call(ctx, g.guard, "fetch_guideline_details", func() ([]content.Guideline, error) {
		return g.repo.FetchGuidelineDetails(ctx, articleID, ruleIDs)
	})
}

func (g *Guarded) ListDefinitions(ctx context.Context, env content.Environment) ([]content.Definition, error) {
	return call(ctx, g.guard, "list_definitions", func() ([]content.Definition, error) {
		return g.repo.ListDefinitions(ctx, env)
	})
}

func (g *Guarded) ListDiagrams(ctx context.Context, env content.Environment) ([]content.Diagram, error) {
	return call(ctx, g.guard, "list_diagrams", func() ([]content.Diagram, error) {
		return g.repo.ListDiagrams(ctx, env)
	})
}

func (g *Guarded) ListGestures(ctx context.Context, env content.Environment) ([]content.Gesture, error) {
	return call(ctx, g.guard, "list_gestures", func() ([]content.Gesture, error) {
		return g.repo.ListGestures(ctx, env)
	})
}

func (g *Guarded) ListProtocols(ctx context.Context, env content.Environment) (*content.Protocols, error) {
	return call(ctx, g.guard, "list_protocols", func() (*content.Protocols, error) {
		return g.repo.ListProtocols(ctx, env)
	})
}

func (g *Guarded) ListAllForSearch(ctx context.Context) (*content.Snapshot, error) {
	return call(ctx, g.guard, "list_all_for_search", func() (*content.Snapshot, error) {
		return g.repo.ListAllForSearch(ctx)
	})
}

func (g *Guarded) Ping(ctx context.Context) error {
	_, err := call(ctx, g.guard, "ping", func() (struct{}, error) {
		return struct{}{}, g.repo.Ping(ctx)
	})
	return err
}

// GuardedExtras decorates an ExtrasStore with a Guard.
type GuardedExtras struct {
	store ExtrasStore
	guard *Guard
}

var _ ExtrasStore = (*GuardedExtras)(nil)

// NewGuardedExtras wraps store.
func NewGuardedExtras(store ExtrasStore, guard *Guard) *GuardedExtras {
	return &GuardedExtras{store: store, guard: guard}
}

func (g *GuardedExtras) ListExtras(ctx context.Context) ([]content.Extra, error) {
	return call(ctx, g.guard, "list_extras", func() ([]content.Extra, error) {
		return g.store.ListExtras(ctx)
	})
}

func (g *GuardedExtras) GetExtra(ctx context.Context, id content.ID) (*content.Extra, error) {
	return call(ctx, g.guard, "get_extra", func() (*content.Extra, error) {
		return g.store.GetExtra(ctx, id)
	})
}

func (g *GuardedExtras) CreateExtra(ctx context.Context, extra *content.Extra) (*content.Extra, error) {
	return call(ctx, g.guard, "create_extra", func() (*content.Extra, error) {
		return g.store.CreateExtra(ctx, extra)
	})
}

func (g *GuardedExtras) UpdateExtra(ctx context.Context, extra *content.Extra) (*content.Extra, error) {
	return call(ctx, g.guard, "update_extra", func() (*content.Extra, error) {
		return g.store.UpdateExtra(ctx, extra)
	})
}

func (g *GuardedExtras) DeleteExtra(ctx context.Context, id content.ID) error {
	_, err := call(ctx, g.guard, "delete_extra", func() (struct{}, error) {
		return struct{}{}, g.store.DeleteExtra(ctx, id)
	})
	return err
}
