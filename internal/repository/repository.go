// Package repository defines the content repository contract consumed by the
// search index and the disclosure cache, together with its error taxonomy.
package repository

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_repository.go -package=mocks rulebook-api/internal/repository Repository,ExtrasStore,TokenVerifier

import (
	"context"

	"rulebook-api/internal/content"
)

// Repository is the read side of the rulebook backend.
type Repository interface {
	// ListChapters returns the chapters of one environment in display order.
	ListChapters(ctx context.Context, env content.Environment) ([]content.Chapter, error)
	// ListArticles returns the articles of a chapter.
	ListArticles(ctx context.Context, chapterID content.ID) ([]content.Article, error)
	// ListRules returns the rules of an article.
	ListRules(ctx context.Context, articleID content.ID) ([]content.Rule, error)
	// CheckCaseExistence is the batched tier-1 check: for every rule id that has
	// casebook entries, the case numbers referencing it. Rules without cases are
	// absent from the map.
	CheckCaseExistence(ctx context.Context, ruleIDs []content.ID) (map[content.ID][]int, error)
	// FetchCaseDetails returns the casebook entries referencing any of the rules.
	FetchCaseDetails(ctx context.Context, ruleIDs []content.ID) ([]content.Case, error)
	// CheckGuidelineExistence reports whether the article, or any of its rules,
	// has referee guidelines.
	CheckGuidelineExistence(ctx context.Context, articleID content.ID, ruleIDs []content.ID) (bool, error)
	// FetchGuidelineDetails returns the guidelines of the article and its rules.
	FetchGuidelineDetails(ctx context.Context, articleID content.ID, ruleIDs []content.ID) ([]content.Guideline, error)

	ListDefinitions(ctx context.Context, env content.Environment) ([]content.Definition, error)
	ListDiagrams(ctx context.Context, env content.Environment) ([]content.Diagram, error)
	ListGestures(ctx context.Context, env content.Environment) ([]content.Gesture, error)
	ListProtocols(ctx context.Context, env content.Environment) (*content.Protocols, error)

	// ListAllForSearch returns the bulk snapshot used to build the search index.
	ListAllForSearch(ctx context.Context) (*content.Snapshot, error)

	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error
}

// ExtrasStore is the admin-editable news and multimedia collection.
type ExtrasStore interface {
	ListExtras(ctx context.Context) ([]content.Extra, error)
	// GetExtra returns ErrNotFound (wrapped) when no extra has the id.
	GetExtra(ctx context.Context, id content.ID) (*content.Extra, error)
	CreateExtra(ctx context.Context, extra *content.Extra) (*content.Extra, error)
	UpdateExtra(ctx context.Context, extra *content.Extra) (*content.Extra, error)
	DeleteExtra(ctx context.Context, id content.ID) error
}

// User is an authenticated principal as reported by the identity provider.
type User struct {
	ID    string
	Email string
	Role  string
}

// IsAdmin reports whether the user may edit content.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// RoleAdmin is the role required for content mutations.
const RoleAdmin = "admin"

// TokenVerifier validates externally issued bearer tokens.
type TokenVerifier interface {
	// VerifyToken returns ErrUnauthorized (wrapped) for unknown or expired tokens.
	VerifyToken(ctx context.Context, token string) (User, error)
}
