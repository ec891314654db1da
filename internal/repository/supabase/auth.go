package supabase

import (
	"context"
	"fmt"

	"github.com/supabase-community/supabase-go"

	"rulebook-api/internal/repository"
)

// Verifier validates access tokens issued by Supabase auth. The admin role
// is read from the user's app_metadata.role claim.
type Verifier struct {
	client *supabase.Client
}

var _ repository.TokenVerifier = (*Verifier)(nil)

// NewVerifier creates a Verifier.
func NewVerifier(client *supabase.Client) *Verifier {
	return &Verifier{client: client}
}

// VerifyToken resolves the user behind token.
func (v *Verifier) VerifyToken(ctx context.Context, token string) (repository.User, error) {
	if token == "" {
		return repository.User{}, &repository.Error{Op: "verify_token", Err: repository.ErrUnauthorized}
	}

	// GetUser does not take a context.
	resp, err := v.client.Auth.WithToken(token).GetUser()
	if err != nil {
		return repository.User{}, &repository.Error{Op: "verify_token", Err: fmt.Errorf("%w: %v", repository.ErrUnauthorized, err)}
	}

	user := repository.User{ID: resp.ID.String(), Email: resp.Email}
	if role, ok := resp.AppMetadata["role"].(string); ok {
		user.Role = role
	}
	return user, nil
}
