package snapshotcache

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"rulebook-api/internal/content"
)

func init() {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

type countingSource struct {
	calls int
	snap  *content.Snapshot
	err   error
}

func (s *countingSource) ListAllForSearch(ctx context.Context) (*content.Snapshot, error) {
	s.calls++
	return s.snap, s.err
}

func testSnapshot() *content.Snapshot {
	return &content.Snapshot{
		Rules: []content.Rule{{ID: "1", Number: "1.1", Title: "Court Dimensions", Environment: content.EnvironmentIndoor}},
		Cases: []content.Case{{ID: "9", CaseNumber: 3, RuleRefs: []content.ID{"1"}, Ruling: "In"}},
	}
}

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	s := miniredis.RunT(t)
	client, err := NewClient("redis://" + s.Addr())
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	t.Cleanup(func() {
		_ = client.Close()
	})
	return client, s
}

func TestCache_ReadThrough(t *testing.T) {
	client, s := setupTestRedis(t)
	src := &countingSource{snap: testSnapshot()}
	cache := New(client, src, "sqlite", time.Minute)
	ctx := context.Background()

	first, err := cache.ListAllForSearch(ctx)
	if err != nil {
		t.Fatalf("ListAllForSearch() error = %v", err)
	}
	if !s.Exists("rulebook:snapshot:sqlite") {
		t.Fatal("snapshot should be stored after a miss")
	}
	if ttl := s.TTL("rulebook:snapshot:sqlite"); ttl != time.Minute {
		t.Errorf("TTL = %v, want 1m", ttl)
	}

	second, err := cache.ListAllForSearch(ctx)
	if err != nil {
		t.Fatalf("ListAllForSearch() error = %v", err)
	}
	if src.calls != 1 {
		t.Errorf("source calls = %d, want 1", src.calls)
	}
	if len(second.Rules) != 1 || second.Rules[0].Title != first.Rules[0].Title {
		t.Errorf("cached snapshot = %+v", second)
	}
	if second.Diagrams != nil {
		t.Error("missing collections should stay nil through the cache")
	}
	if len(second.Cases) != 1 || second.Cases[0].RuleRefs[0] != "1" {
		t.Errorf("cached cases = %+v", second.Cases)
	}
}

func TestCache_Expiry(t *testing.T) {
	client, s := setupTestRedis(t)
	src := &countingSource{snap: testSnapshot()}
	cache := New(client, src, "sqlite", time.Minute)
	ctx := context.Background()

	if _, err := cache.ListAllForSearch(ctx); err != nil {
		t.Fatalf("ListAllForSearch() error = %v", err)
	}
	s.FastForward(2 * time.Minute)
	if _, err := cache.ListAllForSearch(ctx); err != nil {
		t.Fatalf("ListAllForSearch() error = %v", err)
	}
	if src.calls != 2 {
		t.Errorf("source calls = %d, want 2 after expiry", src.calls)
	}
}

func TestCache_Invalidate(t *testing.T) {
	client, s := setupTestRedis(t)
	src := &countingSource{snap: testSnapshot()}
	cache := New(client, src, "supabase", 0)
	ctx := context.Background()

	if _, err := cache.ListAllForSearch(ctx); err != nil {
		t.Fatalf("ListAllForSearch() error = %v", err)
	}
	if ttl := s.TTL(cache.Key()); ttl != DefaultTTL {
		t.Errorf("TTL = %v, want default %v", ttl, DefaultTTL)
	}
	if err := cache.Invalidate(ctx); err != nil {
		t.Fatalf("Invalidate() error = %v", err)
	}
	if s.Exists(cache.Key()) {
		t.Error("Invalidate() should delete the key")
	}
	if _, err := cache.ListAllForSearch(ctx); err != nil {
		t.Fatalf("ListAllForSearch() error = %v", err)
	}
	if src.calls != 2 {
		t.Errorf("source calls = %d, want 2", src.calls)
	}
}

func TestCache_DegradesWhenRedisDown(t *testing.T) {
	client, s := setupTestRedis(t)
	src := &countingSource{snap: testSnapshot()}
	cache := New(client, src, "sqlite", time.Minute)

	s.Close()

	snap, err := cache.ListAllForSearch(context.Background())
	if err != nil {
		t.Fatalf("ListAllForSearch() error = %v, want fallback to source", err)
	}
	if len(snap.Rules) != 1 || src.calls != 1 {
		t.Errorf("snapshot = %+v, calls = %d", snap, src.calls)
	}
	if err := cache.Ping(context.Background()); err == nil {
		t.Error("Ping() should fail when Redis is down")
	}
}

func TestCache_CorruptEntry(t *testing.T) {
	client, s := setupTestRedis(t)
	src := &countingSource{snap: testSnapshot()}
	cache := New(client, src, "sqlite", time.Minute)

	if err := s.Set(cache.Key(), "{not json"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	if _, err := cache.ListAllForSearch(context.Background()); err != nil {
		t.Fatalf("ListAllForSearch() error = %v", err)
	}
	if src.calls != 1 {
		t.Errorf("source calls = %d, want 1", src.calls)
	}
}

func TestCache_SourceErrorNotCached(t *testing.T) {
	client, s := setupTestRedis(t)
	wantErr := errors.New("backend down")
	cache := New(client, &countingSource{err: wantErr}, "sqlite", time.Minute)

	_, err := cache.ListAllForSearch(context.Background())
	if !errors.Is(err, wantErr) {
		t.Errorf("error = %v, want %v", err, wantErr)
	}
	if s.Exists(cache.Key()) {
		t.Error("failed loads should not be cached")
	}
}

func TestCache_NilClientPassThrough(t *testing.T) {
	src := &countingSource{snap: testSnapshot()}
	cache := New(nil, src, "sqlite", time.Minute)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := cache.ListAllForSearch(ctx); err != nil {
			t.Fatalf("ListAllForSearch() error = %v", err)
		}
	}
	if src.calls != 2 {
		t.Errorf("source calls = %d, want 2", src.calls)
	}
	if cache.Enabled() {
		t.Error("Enabled() = true, want false")
	}
	if err := cache.Invalidate(ctx); err != nil {
		t.Errorf("Invalidate() error = %v", err)
	}
	if err := cache.Ping(ctx); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
}

func TestNewClient_InvalidURL(t *testing.T) {
	if _, err := NewClient("not-a-url"); err == nil {
		t.Error("NewClient() should reject an invalid url")
	}
}
