package storage

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"rulebook-api/internal/content"
	"rulebook-api/internal/repository"
)

func TestContentRepo_ExtrasLifecycle(t *testing.T) {
	repo := setupContentRepo(t)
	ctx := context.Background()

	created, err := repo.CreateExtra(ctx, &content.Extra{
		Kind:  content.ExtraNews,
		Title: "Rule changes 2025",
		Body:  "# Changes",
		Tags:  []string{"rules", "2025"},
	})
	if err != nil {
		t.Fatalf("CreateExtra() error = %v", err)
	}
	if created.ID == "" {
		t.Fatal("CreateExtra() should assign an id")
	}
	if created.CreatedAt.IsZero() || !created.CreatedAt.Equal(created.UpdatedAt) {
		t.Errorf("timestamps = %v / %v", created.CreatedAt, created.UpdatedAt)
	}

	got, err := repo.GetExtra(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetExtra() error = %v", err)
	}
	if got.Title != "Rule changes 2025" || !reflect.DeepEqual(got.Tags, []string{"rules", "2025"}) {
		t.Errorf("GetExtra() = %+v", got)
	}

	got.Title = "Rule changes 2026"
	got.Tags = nil
	updated, err := repo.UpdateExtra(ctx, got)
	if err != nil {
		t.Fatalf("UpdateExtra() error = %v", err)
	}
	if updated.Title != "Rule changes 2026" {
		t.Errorf("Title = %q", updated.Title)
	}
	if updated.Tags == nil || len(updated.Tags) != 0 {
		t.Errorf("Tags = %#v, want empty", updated.Tags)
	}
	if updated.UpdatedAt.Before(updated.CreatedAt) {
		t.Error("UpdatedAt should not precede CreatedAt")
	}

	list, err := repo.ListExtras(ctx)
	if err != nil {
		t.Fatalf("ListExtras() error = %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("ListExtras() = %d items, want 1", len(list))
	}

	if err := repo.DeleteExtra(ctx, created.ID); err != nil {
		t.Fatalf("DeleteExtra() error = %v", err)
	}
	if _, err := repo.GetExtra(ctx, created.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("GetExtra() after delete error = %v, want ErrNotFound", err)
	}
}

func TestContentRepo_ExtrasNotFound(t *testing.T) {
	repo := setupContentRepo(t)
	ctx := context.Background()

	tests := []struct {
		name string
		call func() error
	}{
		{
			name: "get",
			call: func() error {
				_, err := repo.GetExtra(ctx, "missing")
				return err
			},
		},
		{
			name: "update",
			call: func() error {
				_, err := repo.UpdateExtra(ctx, &content.Extra{ID: "missing", Kind: content.ExtraNews, Title: "x"})
				return err
			},
		},
		{
			name: "delete",
			call: func() error {
				return repo.DeleteExtra(ctx, "missing")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			if !errors.Is(err, repository.ErrNotFound) {
				t.Errorf("error = %v, want ErrNotFound", err)
			}
			var repoErr *repository.Error
			if !errors.As(err, &repoErr) {
				t.Errorf("error = %T, want *repository.Error", err)
			}
		})
	}
}

func TestContentRepo_ListExtrasEmpty(t *testing.T) {
	repo := setupContentRepo(t)

	list, err := repo.ListExtras(context.Background())
	if err != nil {
		t.Fatalf("ListExtras() error = %v", err)
	}
	if list == nil || len(list) != 0 {
		t.Errorf("ListExtras() = %#v, want empty non-nil", list)
	}
}

func TestStaticTokenVerifier(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		token      string
		wantErr    bool
	}{
		{name: "match", configured: "s3cret", token: "s3cret"},
		{name: "mismatch", configured: "s3cret", token: "guess", wantErr: true},
		{name: "empty token", configured: "s3cret", token: "", wantErr: true},
		{name: "not configured", configured: "", token: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := NewStaticTokenVerifier(tt.configured).VerifyToken(context.Background(), tt.token)
			if (err != nil) != tt.wantErr {
				t.Fatalf("VerifyToken() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, repository.ErrUnauthorized) {
					t.Errorf("error = %v, want ErrUnauthorized", err)
				}
				return
			}
			if !user.IsAdmin() {
				t.Errorf("VerifyToken() user = %+v, want admin", user)
			}
		})
	}
}
