// Package pet owns the pet-post resource: the listings users create to
// rehome an animal. All field values are strings because they arrive as
// multipart form values and are passed through untyped.
package pet

import (
	"context"
	"errors"
	"io"
	"time"
)

// Post is a pet listing. UserID names the owning user and is set once at
// creation. ProfileImage is the public URL of the uploaded image, or the
// empty string when no image was ever attached (never null).
type Post struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	Name         string    `json:"name"`
	Age          string    `json:"age"`
	Weight       string    `json:"weight"`
	Title        string    `json:"title"`
	Location     string    `json:"location"`
	Gender       string    `json:"gender"`
	Contact      string    `json:"contact"`
	Breed        string    `json:"breed"`
	Description  string    `json:"description"`
	ProfileImage string    `json:"profileImage"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Fields carries the text fields of a create request.
type Fields struct {
	Name        string
	Age         string
	Weight      string
	Title       string
	Location    string
	Gender      string
	Contact     string
	Breed       string
	Description string
}

// Update carries a partial update: nil pointers leave the stored value
// untouched.
type Update struct {
	Name         *string
	Age          *string
	Weight       *string
	Title        *string
	Location     *string
	Gender       *string
	Contact      *string
	Breed        *string
	Description  *string
	ProfileImage *string
}

// Upload is an attachment file staged by the multipart parser.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// ErrNotFound is returned when a post does not exist.
var ErrNotFound = errors.New("pet post not found")

// Repository is the narrow interface over pet-post persistence.
type Repository interface {
	// Insert persists a new post with its app-assigned id.
	Insert(ctx context.Context, p *Post) error
	// GetByID fetches a post by id, or ErrNotFound.
	GetByID(ctx context.Context, id string) (*Post, error)
	// Update overwrites the fields carried by upd and returns ErrNotFound
	// when the id does not exist. An empty update is a no-op.
	Update(ctx context.Context, id string, upd Update) error
	// ListAll returns every post, unfiltered.
	ListAll(ctx context.Context) ([]Post, error)
	// ListByOwner returns the posts whose owner equals userID.
	ListByOwner(ctx context.Context, userID string) ([]Post, error)
	// Delete removes the post. Deleting an unknown id is not an error.
	Delete(ctx context.Context, id string) error
}
