package pet

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pawhome/service/internal/storage"
)

// Service contains the business logic for pet posts.
type Service struct {
	repo  Repository
	store storage.Storage
}

// NewService creates a new pet Service.
func NewService(repo Repository, store storage.Storage) *Service {
	return &Service{repo: repo, store: store}
}

// Create persists a new post owned by ownerUID. When an image is supplied it
// is uploaded first; an upload failure fails the whole operation so no
// document is ever saved without its image reference. If the document insert
// fails after a successful upload, the uploaded object is removed again.
func (s *Service) Create(ctx context.Context, ownerUID string, fields Fields, image *Upload) (*Post, error) {
	id := uuid.NewString()

	imageURL := ""
	imageKey := ""
	if image != nil && image.Size > 0 {
		imageKey = objectKey(id, image.Filename)
		if err := s.store.Upload(ctx, imageKey, image.Reader, image.Size, image.ContentType); err != nil {
			return nil, fmt.Errorf("upload image: %w", err)
		}
		imageURL = s.store.PublicURL(imageKey)
	}

	p := &Post{
		ID:           id,
		UserID:       ownerUID,
		Name:         fields.Name,
		Age:          fields.Age,
		Weight:       fields.Weight,
		Title:        fields.Title,
		Location:     fields.Location,
		Gender:       fields.Gender,
		Contact:      fields.Contact,
		Breed:        fields.Breed,
		Description:  fields.Description,
		ProfileImage: imageURL,
	}
	if err := s.repo.Insert(ctx, p); err != nil {
		if imageKey != "" {
			// Best effort: do not leave an orphaned object behind.
			_ = s.store.Delete(ctx, imageKey)
		}
		return nil, fmt.Errorf("save pet post: %w", err)
	}
	return p, nil
}

// Update applies a partial merge: only the fields carried by upd overwrite
// stored values. A new image replaces the stored URL; the previous object is
// left in the bucket (clients may still hold its URL). Returns the post as
// re-fetched after the update.
func (s *Service) Update(ctx context.Context, id string, upd Update, image *Upload) (*Post, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	if image != nil && image.Size > 0 {
		key := objectKey(id, image.Filename)
		if err := s.store.Upload(ctx, key, image.Reader, image.Size, image.ContentType); err != nil {
			return nil, fmt.Errorf("upload image: %w", err)
		}
		url := s.store.PublicURL(key)
		upd.ProfileImage = &url
	}

	if err := s.repo.Update(ctx, id, upd); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// GetByID returns the post or ErrNotFound.
func (s *Service) GetByID(ctx context.Context, id string) (*Post, error) {
	return s.repo.GetByID(ctx, id)
}

// ListAll returns every post in the collection, unfiltered and unpaginated.
func (s *Service) ListAll(ctx context.Context) ([]Post, error) {
	return s.repo.ListAll(ctx)
}

// ListByOwner returns the posts owned by userID; empty slice for none.
func (s *Service) ListByOwner(ctx context.Context, userID string) ([]Post, error) {
	return s.repo.ListByOwner(ctx, userID)
}

// Delete removes the post unconditionally. Unknown ids still report success.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// objectKey builds the per-post storage key for an uploaded image.
func objectKey(postID, filename string) string {
	return "pets/" + postID + "/" + filename
}
