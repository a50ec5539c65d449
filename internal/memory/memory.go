// Package memory provides in-memory implementations of the service's
// external collaborators (identity provider, user registry, pet-post store,
// blob store) for tests and local development without backing services.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pawhome/service/internal/identity"
	"github.com/pawhome/service/internal/pet"
	"github.com/pawhome/service/internal/user"
)

// UserRepository is an in-memory user.Repository.
type UserRepository struct {
	mu    sync.RWMutex
	byUID map[string]user.User
}

// NewUserRepository creates an empty in-memory user registry.
func NewUserRepository() *UserRepository {
	return &UserRepository{byUID: make(map[string]user.User)}
}

// Create inserts a user record.
func (r *UserRepository) Create(_ context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	r.byUID[u.UID] = *u
	return nil
}

// GetByUID fetches a user record.
func (r *UserRepository) GetByUID(_ context.Context, uid string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byUID[uid]
	if !ok {
		return nil, user.ErrNotFound
	}
	return &u, nil
}

// Remove deletes a user record; used by tests to simulate out-of-band
// deletion of registry records.
func (r *UserRepository) Remove(uid string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byUID, uid)
}

// PostRepository is an in-memory pet.Repository.
type PostRepository struct {
	mu   sync.RWMutex
	byID map[string]pet.Post
}

// NewPostRepository creates an empty in-memory post store.
func NewPostRepository() *PostRepository {
	return &PostRepository{byID: make(map[string]pet.Post)}
}

// Insert persists a new post.
func (r *PostRepository) Insert(_ context.Context, p *pet.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	r.byID[p.ID] = *p
	return nil
}

// GetByID fetches a post.
func (r *PostRepository) GetByID(_ context.Context, id string) (*pet.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byID[id]
	if !ok {
		return nil, pet.ErrNotFound
	}
	return &p, nil
}

// Update merges the non-nil fields of upd into the stored post.
func (r *PostRepository) Update(_ context.Context, id string, upd pet.Update) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok {
		return pet.ErrNotFound
	}
	apply := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	apply(&p.Name, upd.Name)
	apply(&p.Age, upd.Age)
	apply(&p.Weight, upd.Weight)
	apply(&p.Title, upd.Title)
	apply(&p.Location, upd.Location)
	apply(&p.Gender, upd.Gender)
	apply(&p.Contact, upd.Contact)
	apply(&p.Breed, upd.Breed)
	apply(&p.Description, upd.Description)
	apply(&p.ProfileImage, upd.ProfileImage)
	p.UpdatedAt = time.Now()
	r.byID[id] = p
	return nil
}

// ListAll returns every post, oldest first.
func (r *PostRepository) ListAll(_ context.Context) ([]pet.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]pet.Post, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p)
	}
	sortPosts(out)
	return out, nil
}

// ListByOwner returns the posts owned by userID, oldest first.
func (r *PostRepository) ListByOwner(_ context.Context, userID string) ([]pet.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]pet.Post, 0)
	for _, p := range r.byID {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	sortPosts(out)
	return out, nil
}

// Delete removes a post; unknown ids are not an error.
func (r *PostRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
	return nil
}

func sortPosts(posts []pet.Post) {
	sort.Slice(posts, func(i, j int) bool {
		if posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].ID < posts[j].ID
		}
		return posts[i].CreatedAt.Before(posts[j].CreatedAt)
	})
}

// account pairs an identity account with its password.
type account struct {
	identity.Account
	password string
}

// IdentityProvider is an in-memory identity.Provider issuing opaque tokens.
type IdentityProvider struct {
	mu       sync.RWMutex
	byEmail  map[string]*account
	byUID    map[string]*account
	tokenUID map[string]string
}

// NewIdentityProvider creates an empty in-memory provider.
func NewIdentityProvider() *IdentityProvider {
	return &IdentityProvider{
		byEmail:  make(map[string]*account),
		byUID:    make(map[string]*account),
		tokenUID: make(map[string]string),
	}
}

// CreateAccount registers a new account.
func (p *IdentityProvider) CreateAccount(_ context.Context, email, password, displayName string) (*identity.Account, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, exists := p.byEmail[email]; exists {
		return nil, identity.ErrEmailTaken
	}
	a := &account{
		Account:  identity.Account{UID: uuid.NewString(), Email: email, DisplayName: displayName},
		password: password,
	}
	p.byEmail[email] = a
	p.byUID[a.UID] = a
	acct := a.Account
	return &acct, nil
}

// SignIn verifies the credentials and issues an opaque token.
func (p *IdentityProvider) SignIn(_ context.Context, email, password string) (*identity.Account, string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	a, ok := p.byEmail[email]
	if !ok || a.password != password {
		return nil, "", identity.ErrInvalidCredentials
	}
	token := uuid.NewString()
	p.tokenUID[token] = a.UID
	acct := a.Account
	return &acct, token, nil
}

// VerifyToken resolves an issued token back to its account UID.
func (p *IdentityProvider) VerifyToken(_ context.Context, token string) (string, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	uid, ok := p.tokenUID[token]
	if !ok {
		return "", identity.ErrInvalidToken
	}
	return uid, nil
}

// DeleteAccount removes the account and revokes its tokens.
func (p *IdentityProvider) DeleteAccount(_ context.Context, uid string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	a, ok := p.byUID[uid]
	if !ok {
		return nil
	}
	delete(p.byEmail, a.Email)
	delete(p.byUID, uid)
	for token, tokenUID := range p.tokenUID {
		if tokenUID == uid {
			delete(p.tokenUID, token)
		}
	}
	return nil
}
