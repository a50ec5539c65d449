// Package identity defines the capability contract the service needs from an
// identity provider: account creation, credential verification with token
// issuance, token validation, and account deletion. Handlers and middleware
// depend only on the Provider interface so the concrete provider can be
// swapped without touching request flow.
package identity

import (
	"context"
	"errors"
)

// Account is an identity-provider account as seen by this service.
type Account struct {
	UID         string
	Email       string
	DisplayName string
}

// ErrEmailTaken is returned when the email is already registered with the provider.
var ErrEmailTaken = errors.New("email already registered")

// ErrInvalidCredentials is returned when the email is unknown or the password is wrong.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrInvalidToken is returned when a bearer token fails verification.
var ErrInvalidToken = errors.New("invalid or expired token")

// Provider is the narrow interface over the identity provider.
type Provider interface {
	// CreateAccount registers a new account and returns it with its assigned UID.
	CreateAccount(ctx context.Context, email, password, displayName string) (*Account, error)
	// SignIn verifies the credentials and issues a bearer token for the account.
	SignIn(ctx context.Context, email, password string) (*Account, string, error)
	// VerifyToken validates a bearer token and returns the account UID it names.
	VerifyToken(ctx context.Context, token string) (string, error)
	// DeleteAccount removes the account. Deleting an unknown UID is not an error.
	DeleteAccount(ctx context.Context, uid string) error
}
