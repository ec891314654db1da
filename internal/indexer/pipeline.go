package indexer

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"rulebook-api/internal/content"
	"rulebook-api/internal/contextutil"
	"rulebook-api/internal/metrics"
	"rulebook-api/internal/search"
)

// Source provides the bulk content snapshot the index is built from.
type Source interface {
	ListAllForSearch(ctx context.Context) (*content.Snapshot, error)
}

// Invalidator is implemented by sources that cache the snapshot.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

// built is one published index together with its build statistics.
type built struct {
	index *search.Index
	stats IndexStats
}

// Pipeline loads content snapshots and publishes search indexes.
// The published index is replaced wholesale on every rebuild.
type Pipeline struct {
	source  Source
	metrics *metrics.Metrics
	current atomic.Pointer[built]
	group   singleflight.Group
	now     func() time.Time
}

// NewPipeline creates a new index pipeline. m may be nil.
func NewPipeline(source Source, m *metrics.Metrics) *Pipeline {
	return &Pipeline{
		source:  source,
		metrics: m,
		now:     time.Now,
	}
}

// getLogger extracts logger from context or returns default logger.
func (p *Pipeline) getLogger(ctx context.Context) *slog.Logger {
	return contextutil.LoggerFromContext(ctx)
}

// Index returns the current index, building it on first use.
// Concurrent first callers share one build.
func (p *Pipeline) Index(ctx context.Context) (*search.Index, error) {
	if b := p.current.Load(); b != nil {
		return b.index, nil
	}
	return p.Rebuild(ctx)
}

// Rebuild loads a fresh snapshot, builds a new index and publishes it.
// On failure the previously published index stays in place.
func (p *Pipeline) Rebuild(ctx context.Context) (*search.Index, error) {
	ch := p.group.DoChan("rebuild", func() (any, error) {
		return p.rebuild(context.WithoutCancel(ctx))
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*search.Index), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (p *Pipeline) rebuild(ctx context.Context) (*search.Index, error) {
	logger := p.getLogger(ctx)
	start := p.now()

	snap, err := p.source.ListAllForSearch(ctx)
	if err != nil {
		p.metrics.ObserveIndexBuild(err, nil)
		logger.ErrorContext(ctx, "failed to load content snapshot", "error", err)
		return nil, fmt.Errorf("failed to load content snapshot: %w", err)
	}

	index, err := search.Build(snap.Collections())
	if err != nil {
		p.metrics.ObserveIndexBuild(err, nil)
		logger.ErrorContext(ctx, "failed to build search index", "error", err)
		return nil, fmt.Errorf("failed to build search index: %w", err)
	}

	stats := newIndexStats(snap, index.Stats(), start, p.now().Sub(start))
	p.current.Store(&built{index: index, stats: stats})
	p.metrics.ObserveIndexBuild(nil, stats.Counts)

	logger.InfoContext(ctx, "search index built",
		"duration", stats.Duration,
		"version", stats.Version,
		"rules", stats.Counts["rules"],
		"cases", stats.Counts["cases"],
	)
	return index, nil
}

// Invalidate drops the cached snapshot so the next rebuild reads the
// backend. It is a no-op for sources without a cache.
func (p *Pipeline) Invalidate(ctx context.Context) error {
	inv, ok := p.source.(Invalidator)
	if !ok {
		return nil
	}
	return inv.Invalidate(ctx)
}

// Stats returns the statistics of the published index, or false if no
// index has been built yet.
func (p *Pipeline) Stats() (IndexStats, bool) {
	b := p.current.Load()
	if b == nil {
		return IndexStats{}, false
	}
	return b.stats, true
}

// Run rebuilds the index every interval until ctx is done. Failed rebuilds
// are logged and keep the previous index.
func (p *Pipeline) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	logger := p.getLogger(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := p.Invalidate(ctx); err != nil {
				logger.WarnContext(ctx, "failed to invalidate snapshot cache", "error", err)
			}
			if _, err := p.Rebuild(ctx); err != nil {
				logger.WarnContext(ctx, "periodic index refresh failed", "error", err)
			}
		}
	}
}
