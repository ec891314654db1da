package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"rulebook-api/internal/content"
	"rulebook-api/internal/contextutil"
	"rulebook-api/internal/disclosure"
	"rulebook-api/internal/metrics"
)

// TreeSession is the state of one open tree view.
type TreeSession struct {
	ID          string                `json:"id"`
	Environment content.Environment   `json:"environment"`
	Nodes       []disclosure.NodeView `json:"nodes"`
	Stats       disclosure.Stats      `json:"stats"`
}

// OpenTreeRequest opens a tree view for one environment.
type OpenTreeRequest struct {
	Environment string `json:"environment" validate:"required"`
}

// TreeService keeps one disclosure cache per open tree view. Closing a view
// drops its cache; a new view starts empty.
type TreeService interface {
	Open(ctx context.Context, req OpenTreeRequest) (TreeSession, error)
	Get(ctx context.Context, sessionID string) (TreeSession, error)
	Close(ctx context.Context, sessionID string) error
	Toggle(ctx context.Context, sessionID, level, nodeID string) (disclosure.NodeView, error)
	ToggleCases(ctx context.Context, sessionID, ruleID string) (disclosure.CaseAccordion, error)
	ToggleGuidelines(ctx context.Context, sessionID, articleID string) (disclosure.GuidelineAccordion, error)
	// CloseIdle drops sessions unused for longer than maxIdle and returns
	// how many were dropped.
	CloseIdle(maxIdle time.Duration) int
}

type treeSession struct {
	cache    *disclosure.Cache
	lastUsed time.Time
}

type treeService struct {
	source  disclosure.Source
	metrics *metrics.Metrics

	mu       sync.Mutex
	sessions map[string]*treeSession
	now      func() time.Time
}

// NewTreeService creates a TreeService backed by source. m may be nil.
func NewTreeService(source disclosure.Source, m *metrics.Metrics) TreeService {
	return &treeService{
		source:   source,
		metrics:  m,
		sessions: make(map[string]*treeSession),
		now:      time.Now,
	}
}

// Open creates a session and loads its root level. The session is only
// registered once the chapters loaded.
func (s *treeService) Open(ctx context.Context, req OpenTreeRequest) (TreeSession, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if err := validateStruct(req); err != nil {
		return TreeSession{}, err
	}
	env, err := content.ParseEnvironment(req.Environment)
	if err != nil {
		return TreeSession{}, &ValidationError{Field: "environment", Message: err.Error()}
	}

	cache := disclosure.New(s.source, env)
	nodes, err := cache.LoadChapters(ctx)
	if err != nil {
		return TreeSession{}, treeError(err, "failed to load chapters")
	}

	id := uuid.New().String()
	s.mu.Lock()
	s.sessions[id] = &treeSession{cache: cache, lastUsed: s.now()}
	n := len(s.sessions)
	s.mu.Unlock()
	s.metrics.SetTreeSessions(n)

	logger.InfoContext(ctx, "tree session opened", "session_id", id, "environment", env, "chapters", len(nodes))
	return TreeSession{ID: id, Environment: env, Nodes: nodes, Stats: cache.Stats()}, nil
}

func (s *treeService) Get(ctx context.Context, sessionID string) (TreeSession, error) {
	cache, err := s.session(sessionID)
	if err != nil {
		return TreeSession{}, err
	}
	return TreeSession{
		ID:          sessionID,
		Environment: cache.Environment(),
		Nodes:       cache.Tree(),
		Stats:       cache.Stats(),
	}, nil
}

func (s *treeService) Close(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	_, ok := s.sessions[sessionID]
	delete(s.sessions, sessionID)
	n := len(s.sessions)
	s.mu.Unlock()

	if !ok {
		return fmt.Errorf("tree session %s: %w", sessionID, ErrNotFound)
	}
	s.metrics.SetTreeSessions(n)
	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "tree session closed", "session_id", sessionID)
	return nil
}

func (s *treeService) Toggle(ctx context.Context, sessionID, level, nodeID string) (disclosure.NodeView, error) {
	lvl, err := disclosure.ParseLevel(level)
	if err != nil {
		return disclosure.NodeView{}, &ValidationError{Field: "level", Message: err.Error()}
	}
	cache, err := s.session(sessionID)
	if err != nil {
		return disclosure.NodeView{}, err
	}
	view, err := cache.Toggle(ctx, disclosure.NodeKey{Level: lvl, ID: content.ID(nodeID)})
	if err != nil {
		return disclosure.NodeView{}, treeError(err, "failed to toggle node")
	}
	return view, nil
}

func (s *treeService) ToggleCases(ctx context.Context, sessionID, ruleID string) (disclosure.CaseAccordion, error) {
	cache, err := s.session(sessionID)
	if err != nil {
		return disclosure.CaseAccordion{}, err
	}
	acc, err := cache.ToggleCases(ctx, content.ID(ruleID))
	if err != nil {
		return disclosure.CaseAccordion{}, treeError(err, "failed to toggle cases")
	}
	return acc, nil
}

func (s *treeService) ToggleGuidelines(ctx context.Context, sessionID, articleID string) (disclosure.GuidelineAccordion, error) {
	cache, err := s.session(sessionID)
	if err != nil {
		return disclosure.GuidelineAccordion{}, err
	}
	acc, err := cache.ToggleGuidelines(ctx, content.ID(articleID))
	if err != nil {
		return disclosure.GuidelineAccordion{}, treeError(err, "failed to toggle guidelines")
	}
	return acc, nil
}

func (s *treeService) CloseIdle(maxIdle time.Duration) int {
	cutoff := s.now().Add(-maxIdle)

	s.mu.Lock()
	dropped := 0
	for id, sess := range s.sessions {
		if sess.lastUsed.Before(cutoff) {
			delete(s.sessions, id)
			dropped++
		}
	}
	n := len(s.sessions)
	s.mu.Unlock()

	if dropped > 0 {
		s.metrics.SetTreeSessions(n)
	}
	return dropped
}

func (s *treeService) session(id string) (*disclosure.Cache, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("tree session %s: %w", id, ErrNotFound)
	}
	sess.lastUsed = s.now()
	return sess.cache, nil
}

// treeError keeps *disclosure.LoadError reachable for callers that offer a
// scoped retry.
func treeError(err error, msg string) error {
	if errors.Is(err, disclosure.ErrUnknownNode) {
		return fmt.Errorf("%s: %w: %w", msg, ErrNotFound, err)
	}
	return fmt.Errorf("%s: %w: %w", msg, ErrExternalService, err)
}
