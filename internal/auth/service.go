// Package auth implements registration and login on top of the identity
// provider and the user registry.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/pawhome/service/internal/identity"
	"github.com/pawhome/service/internal/user"
)

// ErrNotRegistered is returned when credentials verify against the identity
// provider but no user record exists in the registry.
var ErrNotRegistered = errors.New("user is not registered")

// LoginResult holds the outcome of a successful login.
type LoginResult struct {
	User  *user.User
	Token string
}

// Service contains the business logic for account registration and login.
type Service struct {
	provider identity.Provider
	users    user.Repository
}

// NewService creates a new auth Service.
func NewService(provider identity.Provider, users user.Repository) *Service {
	return &Service{provider: provider, users: users}
}

// Register creates the identity-provider account and the matching user
// record, keyed by the provider-assigned UID.
func (s *Service) Register(ctx context.Context, email, password, firstName string) (*user.User, error) {
	acct, err := s.provider.CreateAccount(ctx, email, password, firstName)
	if err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}

	u := &user.User{UID: acct.UID, Email: acct.Email, FirstName: firstName}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("create user record: %w", err)
	}
	return u, nil
}

// Login verifies the credentials and returns the user record with a fresh
// token. A verified identity with no user record is rejected as
// ErrNotRegistered, and the orphaned provider account is deleted so the two
// stores converge again; this compensating delete happens on the login path
// only.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	acct, token, err := s.provider.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}

	u, err := s.users.GetByUID(ctx, acct.UID)
	if errors.Is(err, user.ErrNotFound) {
		_ = s.provider.DeleteAccount(ctx, acct.UID)
		return nil, ErrNotRegistered
	}
	if err != nil {
		return nil, fmt.Errorf("get user record: %w", err)
	}

	return &LoginResult{User: u, Token: token}, nil
}
