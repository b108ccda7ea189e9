// Package identity abstracts the external identity provider. The original
// interactive sign-in flow is modeled as a single call returning a user
// identity or failure; the core never assumes any particular UI mechanism.
package identity

import (
	"context"

	"github.com/nordvik/wardrobe/internal/domain"
)

// Provider performs one sign-in attempt. Any rejection is sign-in failure;
// there is no retry.
type Provider interface {
	SignIn(ctx context.Context, email, name string) (*domain.UserIdentity, error)
}
