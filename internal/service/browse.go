package service

import (
	"context"

	"rulebook-api/internal/content"
	"rulebook-api/internal/contextutil"
)

// BrowseSource is the part of the content repository behind the flat
// reference listings.
type BrowseSource interface {
	ListDefinitions(ctx context.Context, env content.Environment) ([]content.Definition, error)
	ListDiagrams(ctx context.Context, env content.Environment) ([]content.Diagram, error)
	ListGestures(ctx context.Context, env content.Environment) ([]content.Gesture, error)
	ListProtocols(ctx context.Context, env content.Environment) (*content.Protocols, error)
}

// BrowseService lists the reference content of one environment.
type BrowseService interface {
	Definitions(ctx context.Context, env string) ([]content.Definition, error)
	Diagrams(ctx context.Context, env string) ([]content.Diagram, error)
	Gestures(ctx context.Context, env string) ([]content.Gesture, error)
	Protocols(ctx context.Context, env string) (*content.Protocols, error)
}

type browseService struct {
	source BrowseSource
}

// NewBrowseService creates a new BrowseService.
func NewBrowseService(source BrowseSource) BrowseService {
	return &browseService{source: source}
}

func parseEnv(env string) (content.Environment, error) {
	e, err := content.ParseEnvironment(env)
	if err != nil {
		return "", &ValidationError{Field: "env", Message: err.Error()}
	}
	return e, nil
}

// browse validates env and runs one listing.
func browse[T any](ctx context.Context, what, env string, list func(context.Context, content.Environment) (T, error)) (T, error) {
	var zero T
	e, err := parseEnv(env)
	if err != nil {
		return zero, err
	}
	out, err := list(ctx, e)
	if err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to list "+what, "environment", e, "error", err)
		return zero, wrapRepositoryError(err, "failed to list "+what)
	}
	return out, nil
}

func (s *browseService) Definitions(ctx context.Context, env string) ([]content.Definition, error) {
	return browse(ctx, "definitions", env, s.source.ListDefinitions)
}

func (s *browseService) Diagrams(ctx context.Context, env string) ([]content.Diagram, error) {
	return browse(ctx, "diagrams", env, s.source.ListDiagrams)
}

func (s *browseService) Gestures(ctx context.Context, env string) ([]content.Gesture, error) {
	return browse(ctx, "gestures", env, s.source.ListGestures)
}

func (s *browseService) Protocols(ctx context.Context, env string) (*content.Protocols, error) {
	return browse(ctx, "protocols", env, s.source.ListProtocols)
}
