package service

import (
	"context"
	"strings"

	"rulebook-api/internal/content"
	"rulebook-api/internal/contextutil"
	"rulebook-api/internal/repository"
	"rulebook-api/internal/search"
)

// ExtraInput is the editable part of an extra.
type ExtraInput struct {
	Kind  string   `json:"kind" validate:"required,oneof=news multimedia"`
	Title string   `json:"title" validate:"required,max=200"`
	Body  string   `json:"body" validate:"max=20000"`
	URL   string   `json:"url" validate:"omitempty,url"`
	Tags  []string `json:"tags" validate:"max=20,dive,required,max=40"`
}

// ListExtrasRequest filters the extras listing. Tags match if any of them
// is present on an extra.
type ListExtrasRequest struct {
	Tags []string
	Kind string `validate:"omitempty,oneof=news multimedia"`
}

// ExtrasService manages news and multimedia extras.
type ExtrasService interface {
	List(ctx context.Context, req ListExtrasRequest) ([]content.Extra, error)
	Get(ctx context.Context, id string) (*content.Extra, error)
	Create(ctx context.Context, in ExtraInput) (*content.Extra, error)
	Update(ctx context.Context, id string, in ExtraInput) (*content.Extra, error)
	Delete(ctx context.Context, id string) error
}

type extrasService struct {
	store repository.ExtrasStore
}

// NewExtrasService creates a new ExtrasService.
func NewExtrasService(store repository.ExtrasStore) ExtrasService {
	return &extrasService{store: store}
}

func (s *extrasService) List(ctx context.Context, req ListExtrasRequest) ([]content.Extra, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	extras, err := s.store.ListExtras(ctx)
	if err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to list extras", "error", err)
		return nil, wrapRepositoryError(err, "failed to list extras")
	}
	return search.FilterExtras(extras, req.Tags, content.ExtraKind(req.Kind)), nil
}

func (s *extrasService) Get(ctx context.Context, id string) (*content.Extra, error) {
	if strings.TrimSpace(id) == "" {
		return nil, &ValidationError{Field: "id", Message: "is required"}
	}
	extra, err := s.store.GetExtra(ctx, content.ID(id))
	if err != nil {
		return nil, wrapRepositoryError(err, "failed to get extra")
	}
	return extra, nil
}

func (s *extrasService) Create(ctx context.Context, in ExtraInput) (*content.Extra, error) {
	logger := contextutil.LoggerFromContext(ctx)

	in = normalizeInput(in)
	if err := validateStruct(in); err != nil {
		logger.WarnContext(ctx, "invalid extra", "error", err)
		return nil, err
	}

	created, err := s.store.CreateExtra(ctx, in.extra(""))
	if err != nil {
		logger.ErrorContext(ctx, "failed to create extra", "error", err)
		return nil, wrapRepositoryError(err, "failed to create extra")
	}
	logger.InfoContext(ctx, "extra created", "id", created.ID, "kind", created.Kind)
	return created, nil
}

func (s *extrasService) Update(ctx context.Context, id string, in ExtraInput) (*content.Extra, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if strings.TrimSpace(id) == "" {
		return nil, &ValidationError{Field: "id", Message: "is required"}
	}
	in = normalizeInput(in)
	if err := validateStruct(in); err != nil {
		logger.WarnContext(ctx, "invalid extra", "error", err)
		return nil, err
	}

	updated, err := s.store.UpdateExtra(ctx, in.extra(content.ID(id)))
	if err != nil {
		return nil, wrapRepositoryError(err, "failed to update extra")
	}
	logger.InfoContext(ctx, "extra updated", "id", updated.ID)
	return updated, nil
}

func (s *extrasService) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return &ValidationError{Field: "id", Message: "is required"}
	}
	if err := s.store.DeleteExtra(ctx, content.ID(id)); err != nil {
		return wrapRepositoryError(err, "failed to delete extra")
	}
	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "extra deleted", "id", id)
	return nil
}

// normalizeInput trims text fields and lower-cases tags, dropping blanks.
func normalizeInput(in ExtraInput) ExtraInput {
	in.Kind = strings.ToLower(strings.TrimSpace(in.Kind))
	in.Title = strings.TrimSpace(in.Title)
	in.URL = strings.TrimSpace(in.URL)

	tags := make([]string, 0, len(in.Tags))
	for _, tag := range in.Tags {
		if t := strings.ToLower(strings.TrimSpace(tag)); t != "" {
			tags = append(tags, t)
		}
	}
	in.Tags = tags
	return in
}

func (in ExtraInput) extra(id content.ID) *content.Extra {
	return &content.Extra{
		ID:    id,
		Kind:  content.ExtraKind(in.Kind),
		Title: in.Title,
		Body:  in.Body,
		URL:   in.URL,
		Tags:  in.Tags,
	}
}
