// Package user manages the application's user registry. A user record exists
// for every registered account; identity-provider accounts and user records
// can diverge when a record is deleted out-of-band, which downstream code
// treats as "not registered" rather than as a server fault.
package user

import (
	"context"
	"errors"
	"time"
)

// User is a registered PawHome user. The UID is assigned by the identity
// provider at registration; records are immutable afterwards.
type User struct {
	UID       string    `json:"uid"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	CreatedAt time.Time `json:"createdAt"`
}

// ErrNotFound is returned when a user does not exist in the registry.
var ErrNotFound = errors.New("user not found")

// Repository is the narrow interface over user persistence.
type Repository interface {
	// Create inserts a new user record keyed by the provider-assigned UID.
	Create(ctx context.Context, u *User) error
	// GetByUID fetches a user by their UID, or ErrNotFound.
	GetByUID(ctx context.Context, uid string) (*User, error)
}
