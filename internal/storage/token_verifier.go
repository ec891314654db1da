package storage

import (
	"context"
	"crypto/subtle"

	"rulebook-api/internal/repository"
)

// StaticTokenVerifier accepts a single configured admin token. It backs
// admin authentication when content is served from SQLite.
type StaticTokenVerifier struct {
	token string
}

var _ repository.TokenVerifier = (*StaticTokenVerifier)(nil)

// NewStaticTokenVerifier creates a verifier for token. An empty token
// rejects every request.
func NewStaticTokenVerifier(token string) *StaticTokenVerifier {
	return &StaticTokenVerifier{token: token}
}

func (v *StaticTokenVerifier) VerifyToken(ctx context.Context, token string) (repository.User, error) {
	if v.token == "" || subtle.ConstantTimeCompare([]byte(token), []byte(v.token)) != 1 {
		return repository.User{}, &repository.Error{Op: "verify_token", Err: repository.ErrUnauthorized}
	}
	return repository.User{ID: "admin", Role: repository.RoleAdmin}, nil
}
