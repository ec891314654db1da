package repository_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sony/gobreaker"
	"go.uber.org/mock/gomock"

	"rulebook-api/internal/content"
	"rulebook-api/internal/metrics"
	"rulebook-api/internal/repository"
	"rulebook-api/internal/repository/mocks"
)

func init() {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestGuarded_PassesThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := mocks.NewMockRepository(ctrl)
	m := metrics.New(prometheus.NewRegistry())

	rules := []content.Rule{{ID: "1", Title: "Service"}}
	mockRepo.EXPECT().ListRules(gomock.Any(), content.ID("a1")).Return(rules, nil)

	g := repository.NewGuarded(mockRepo, repository.NewGuard(repository.DefaultBreakerConfig("test"), m))
	got, err := g.ListRules(context.Background(), "a1")
	if err != nil {
		t.Fatalf("ListRules() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != "1" {
		t.Errorf("ListRules() = %v", got)
	}
	if n := testutil.ToFloat64(m.RepositoryCalls.WithLabelValues("list_rules", "ok")); n != 1 {
		t.Errorf("ok calls = %v, want 1", n)
	}
}

func TestGuarded_WrapsErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := mocks.NewMockRepository(ctrl)

	backendErr := errors.New("connection refused")
	mockRepo.EXPECT().FetchCaseDetails(gomock.Any(), gomock.Any()).Return(nil, backendErr)

	g := repository.NewGuarded(mockRepo, repository.NewGuard(repository.DefaultBreakerConfig("test"), nil))
	_, err := g.FetchCaseDetails(context.Background(), []content.ID{"1"})

	var repoErr *repository.Error
	if !errors.As(err, &repoErr) {
		t.Fatalf("error = %v, want *repository.Error", err)
	}
	if repoErr.Op != "fetch_case_details" {
		t.Errorf("Op = %q", repoErr.Op)
	}
	if !errors.Is(err, backendErr) {
		t.Error("error should unwrap to the backend error")
	}
}

func TestGuarded_OpensAfterConsecutiveFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := mocks.NewMockRepository(ctrl)
	m := metrics.New(prometheus.NewRegistry())

	mockRepo.EXPECT().ListChapters(gomock.Any(), gomock.Any()).Return(nil, errors.New("timeout")).Times(3)

	guard := repository.NewGuard(repository.BreakerConfig{Name: "test", MaxFailures: 3, OpenTimeout: time.Minute}, m)
	g := repository.NewGuarded(mockRepo, guard)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := g.ListChapters(ctx, content.EnvironmentIndoor); err == nil {
			t.Fatalf("call %d: expected error", i)
		}
	}
	if guard.State() != gobreaker.StateOpen {
		t.Fatalf("State() = %v, want open", guard.State())
	}

	// The backend is not called while the breaker is open.
	_, err := g.ListChapters(ctx, content.EnvironmentIndoor)
	if !errors.Is(err, repository.ErrUnavailable) {
		t.Errorf("error = %v, want ErrUnavailable", err)
	}
	if n := testutil.ToFloat64(m.RepositoryCalls.WithLabelValues("list_chapters", "unavailable")); n != 1 {
		t.Errorf("unavailable calls = %v, want 1", n)
	}
}

func TestGuarded_NotFoundDoesNotTrip(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockStore := mocks.NewMockExtrasStore(ctrl)

	mockStore.EXPECT().GetExtra(gomock.Any(), gomock.Any()).Return(nil, repository.ErrNotFound).Times(5)

	guard := repository.NewGuard(repository.BreakerConfig{Name: "test", MaxFailures: 2, OpenTimeout: time.Minute}, nil)
	g := repository.NewGuardedExtras(mockStore, guard)

	for i := 0; i < 5; i++ {
		_, err := g.GetExtra(context.Background(), "missing")
		if !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("GetExtra() error = %v, want ErrNotFound", err)
		}
	}
	if guard.State() != gobreaker.StateClosed {
		t.Errorf("State() = %v, want closed", guard.State())
	}
}

func TestWrap(t *testing.T) {
	if repository.Wrap("op", nil) != nil {
		t.Error("Wrap(nil) should be nil")
	}

	inner := &repository.Error{Op: "inner", Err: repository.ErrNotFound}
	if got := repository.Wrap("outer", inner); got != inner {
		t.Errorf("Wrap() = %v, want the existing *Error", got)
	}

	if got := repository.Wrap("op", errors.New("x")).Error(); got != "repository op: x" {
		t.Errorf("Error() = %q", got)
	}
}
