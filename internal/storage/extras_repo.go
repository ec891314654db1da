package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"rulebook-api/internal/content"
	"rulebook-api/internal/repository"
)

const extraColumns = "id, kind, title, body, url, tags, created_at, updated_at"

func scanExtra(s rowScanner) (content.Extra, error) {
	var (
		e    content.Extra
		tags string
	)
	if err := s.Scan(&e.ID, &e.Kind, &e.Title, &e.Body, &e.URL, &tags, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return e, err
	}
	if err := json.Unmarshal([]byte(tags), &e.Tags); err != nil {
		return e, fmt.Errorf("extra %s tags: %w", e.ID, err)
	}
	return e, nil
}

func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("failed to encode tags: %w", err)
	}
	return string(b), nil
}

// ListExtras returns all extras, newest first.
func (r *ContentRepo) ListExtras(ctx context.Context) ([]content.Extra, error) {
	extras, err := queryAll(ctx, r.db, scanExtra,
		"SELECT "+extraColumns+" FROM extras ORDER BY created_at DESC, rowid DESC")
	if err != nil {
		return nil, repository.Wrap("list_extras", err)
	}
	return extras, nil
}

// GetExtra gets an extra by id. Returns an error wrapping
// repository.ErrNotFound if it does not exist.
func (r *ContentRepo) GetExtra(ctx context.Context, id content.ID) (*content.Extra, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+extraColumns+" FROM extras WHERE id = ?", id)
	extra, err := scanExtra(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &repository.Error{Op: "get_extra", Err: fmt.Errorf("extra %s: %w", id, repository.ErrNotFound)}
	}
	if err != nil {
		return nil, repository.Wrap("get_extra", err)
	}
	return &extra, nil
}

// CreateExtra inserts a new extra with a generated UUID.
func (r *ContentRepo) CreateExtra(ctx context.Context, extra *content.Extra) (*content.Extra, error) {
	tags, err := encodeTags(extra.Tags)
	if err != nil {
		return nil, repository.Wrap("create_extra", err)
	}

	now := time.Now().UTC()
	created := *extra
	created.ID = content.ID(uuid.New().String())
	created.CreatedAt = now
	created.UpdatedAt = now
	if created.Tags == nil {
		created.Tags = []string{}
	}

	_, err = r.db.ExecContext(ctx,
		"INSERT INTO extras ("+extraColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		created.ID, created.Kind, created.Title, created.Body, created.URL, tags, created.CreatedAt, created.UpdatedAt,
	)
	if err != nil {
		return nil, repository.Wrap("create_extra", fmt.Errorf("failed to insert extra: %w", err))
	}
	return &created, nil
}

// UpdateExtra replaces the editable fields of an existing extra.
func (r *ContentRepo) UpdateExtra(ctx context.Context, extra *content.Extra) (*content.Extra, error) {
	tags, err := encodeTags(extra.Tags)
	if err != nil {
		return nil, repository.Wrap("update_extra", err)
	}

	res, err := r.db.ExecContext(ctx,
		"UPDATE extras SET kind = ?, title = ?, body = ?, url = ?, tags = ?, updated_at = ? WHERE id = ?",
		extra.Kind, extra.Title, extra.Body, extra.URL, tags, time.Now().UTC(), extra.ID,
	)
	if err != nil {
		return nil, repository.Wrap("update_extra", fmt.Errorf("failed to update extra: %w", err))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, &repository.Error{Op: "update_extra", Err: fmt.Errorf("extra %s: %w", extra.ID, repository.ErrNotFound)}
	}
	return r.GetExtra(ctx, extra.ID)
}

// DeleteExtra removes an extra.
func (r *ContentRepo) DeleteExtra(ctx context.Context, id content.ID) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM extras WHERE id = ?", id)
	if err != nil {
		return repository.Wrap("delete_extra", fmt.Errorf("failed to delete extra: %w", err))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &repository.Error{Op: "delete_extra", Err: fmt.Errorf("extra %s: %w", id, repository.ErrNotFound)}
	}
	return nil
}
