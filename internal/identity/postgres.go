package identity

import (
	"context"
	"strings"

	"github.com/nordvik/wardrobe/internal/domain"
	"github.com/nordvik/wardrobe/internal/repository"
)

// PostgresProvider implements Provider backed by the users table. Each
// successful sign-in upserts the user row and refreshes last login, matching
// the behavior of the upstream auth endpoint it replaces.
type PostgresProvider struct {
	repo repository.Querier
}

var _ Provider = (*PostgresProvider)(nil)

// NewPostgresProvider creates a new PostgreSQL-backed identity provider.
func NewPostgresProvider(repo repository.Querier) *PostgresProvider {
	return &PostgresProvider{repo: repo}
}

// SignIn validates the credentials and records the sign-in. Any rejection is
// sign-in failure; there is no retry.
func (p *PostgresProvider) SignIn(ctx context.Context, email, name string) (*domain.UserIdentity, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.Invalid("identity.sign_in", "a valid email is required")
	}

	user, err := p.repo.UpsertUser(ctx, repository.UpsertUserParams{
		Email: email,
		Name:  name,
	})
	if err != nil {
		return nil, domain.Unavailable(err, "identity.sign_in", "Authentication failed. Please try again.")
	}

	return &domain.UserIdentity{
		Email:    user.Email,
		Name:     user.Name,
		PhotoURL: user.PhotoURL,
	}, nil
}
