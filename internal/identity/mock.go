package identity

import (
	"context"

	"github.com/nordvik/wardrobe/internal/domain"
)

// MockProvider implements Provider for testing.
type MockProvider struct {
	// SignInFunc overrides SignIn behavior when set.
	SignInFunc func(ctx context.Context, email, name string) (*domain.UserIdentity, error)
}

// SignIn delegates to SignInFunc, or echoes the given identity back.
func (m *MockProvider) SignIn(ctx context.Context, email, name string) (*domain.UserIdentity, error) {
	if m.SignInFunc != nil {
		return m.SignInFunc(ctx, email, name)
	}

	return &domain.UserIdentity{Email: email, Name: name}, nil
}
