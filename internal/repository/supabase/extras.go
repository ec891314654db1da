package supabase

import (
	"context"
	"fmt"
	"time"

	"github.com/supabase-community/postgrest-go"

	"rulebook-api/internal/content"
	"rulebook-api/internal/repository"
)

// extraRow is the writable part of an extras row; ids and created_at are
// assigned by the database.
type extraRow struct {
	Kind      content.ExtraKind `json:"kind"`
	Title     string            `json:"title"`
	Body      string            `json:"body"`
	URL       string            `json:"url"`
	Tags      []string          `json:"tags"`
	UpdatedAt time.Time         `json:"updated_at"`
}

func toRow(extra *content.Extra) extraRow {
	tags := extra.Tags
	if tags == nil {
		tags = []string{}
	}
	return extraRow{
		Kind:      extra.Kind,
		Title:     extra.Title,
		Body:      extra.Body,
		URL:       extra.URL,
		Tags:      tags,
		UpdatedAt: time.Now().UTC(),
	}
}

// ListExtras returns all extras, newest first.
func (r *Repository) ListExtras(ctx context.Context) ([]content.Extra, error) {
	var extras []content.Extra
	_, err := r.client.From(tableExtras).
		Select("*", "", false).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		ExecuteTo(&extras)
	if err != nil {
		return nil, repository.Wrap("list_extras", err)
	}
	return orEmpty(extras), nil
}

func (r *Repository) GetExtra(ctx context.Context, id content.ID) (*content.Extra, error) {
	var extras []content.Extra
	_, err := r.client.From(tableExtras).
		Select("*", "", false).
		Eq("id", id.String()).
		ExecuteTo(&extras)
	if err != nil {
		return nil, repository.Wrap("get_extra", err)
	}
	return single("get_extra", id, extras)
}

func (r *Repository) CreateExtra(ctx context.Context, extra *content.Extra) (*content.Extra, error) {
	var created []content.Extra
	_, err := r.client.From(tableExtras).
		Insert(toRow(extra), false, "", "representation", "").
		ExecuteTo(&created)
	if err != nil {
		return nil, repository.Wrap("create_extra", err)
	}
	out, err := single("create_extra", "", created)
	if err != nil {
		return nil, err
	}
	r.getLogger(ctx).InfoContext(ctx, "Created extra", "id", out.ID, "kind", out.Kind)
	return out, nil
}

func (r *Repository) UpdateExtra(ctx context.Context, extra *content.Extra) (*content.Extra, error) {
	var updated []content.Extra
	_, err := r.client.From(tableExtras).
		Update(toRow(extra), "representation", "").
		Eq("id", extra.ID.String()).
		ExecuteTo(&updated)
	if err != nil {
		return nil, repository.Wrap("update_extra", err)
	}
	return single("update_extra", extra.ID, updated)
}

func (r *Repository) DeleteExtra(ctx context.Context, id content.ID) error {
	var deleted []content.Extra
	_, err := r.client.From(tableExtras).
		Delete("representation", "").
		Eq("id", id.String()).
		ExecuteTo(&deleted)
	if err != nil {
		return repository.Wrap("delete_extra", err)
	}
	if len(deleted) == 0 {
		return &repository.Error{Op: "delete_extra", Err: fmt.Errorf("extra %s: %w", id, repository.ErrNotFound)}
	}
	r.getLogger(ctx).InfoContext(ctx, "Deleted extra", "id", id)
	return nil
}

// single returns the only row of a representation response.
func single(op string, id content.ID, rows []content.Extra) (*content.Extra, error) {
	if len(rows) == 0 {
		return nil, &repository.Error{Op: op, Err: fmt.Errorf("extra %s: %w", id, repository.ErrNotFound)}
	}
	return &rows[0], nil
}
