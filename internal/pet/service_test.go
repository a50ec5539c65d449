package pet_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/pawhome/service/internal/memory"
	"github.com/pawhome/service/internal/pet"
)

func newService() (*pet.Service, *memory.PostRepository, *memory.BlobStore) {
	repo := memory.NewPostRepository()
	store := memory.NewBlobStore()
	return pet.NewService(repo, store), repo, store
}

func upload(filename, content string) *pet.Upload {
	return &pet.Upload{
		Filename:    filename,
		ContentType: "image/jpeg",
		Size:        int64(len(content)),
		Reader:      strings.NewReader(content),
	}
}

func TestCreate_WithoutImage(t *testing.T) {
	svc, _, store := newService()

	p, err := svc.Create(context.Background(), "owner-1", pet.Fields{Name: "Rex", Age: "3"}, nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.ID == "" {
		t.Fatal("expected an assigned id")
	}
	if p.UserID != "owner-1" {
		t.Fatalf("owner = %q, want owner-1", p.UserID)
	}
	if p.ProfileImage != "" {
		t.Fatalf("profileImage = %q, want empty string", p.ProfileImage)
	}
	if store.Len() != 0 {
		t.Fatalf("expected no stored objects, got %d", store.Len())
	}
}

func TestCreate_WithImage(t *testing.T) {
	svc, _, store := newService()

	p, err := svc.Create(context.Background(), "owner-1", pet.Fields{Name: "Rex"}, upload("rex.jpg", "jpeg-bytes"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	wantKey := "pets/" + p.ID + "/rex.jpg"
	data, ok := store.Object(wantKey)
	if !ok {
		t.Fatalf("object %q not uploaded", wantKey)
	}
	if string(data) != "jpeg-bytes" {
		t.Fatalf("stored bytes = %q", data)
	}
	if p.ProfileImage != store.PublicURL(wantKey) {
		t.Fatalf("profileImage = %q, want %q", p.ProfileImage, store.PublicURL(wantKey))
	}
}

func TestCreate_ZeroSizeImageIgnored(t *testing.T) {
	svc, _, store := newService()

	p, err := svc.Create(context.Background(), "owner-1", pet.Fields{}, upload("empty.jpg", ""))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.ProfileImage != "" || store.Len() != 0 {
		t.Fatalf("empty upload must be ignored, got url=%q objects=%d", p.ProfileImage, store.Len())
	}
}

func TestCreate_UploadFailurePersistsNothing(t *testing.T) {
	svc, repo, store := newService()
	store.FailUploads = true

	_, err := svc.Create(context.Background(), "owner-1", pet.Fields{Name: "Rex"}, upload("rex.jpg", "x"))
	if err == nil {
		t.Fatal("expected an error")
	}

	posts, err := repo.ListAll(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(posts) != 0 {
		t.Fatalf("expected no persisted posts, got %d", len(posts))
	}
}

func TestUpdate_PartialMerge(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()

	p, err := svc.Create(ctx, "owner-1", pet.Fields{Name: "Rex", Age: "3", Breed: "corgi"}, nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	age := "4"
	updated, err := svc.Update(ctx, p.ID, pet.Update{Age: &age}, nil)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Age != "4" {
		t.Fatalf("age = %q, want 4", updated.Age)
	}
	if updated.Name != "Rex" || updated.Breed != "corgi" {
		t.Fatalf("untouched fields changed: name=%q breed=%q", updated.Name, updated.Breed)
	}

	// Applying the same partial update twice yields the same final record.
	again, err := svc.Update(ctx, p.ID, pet.Update{Age: &age}, nil)
	if err != nil {
		t.Fatalf("second update: %v", err)
	}
	if again.Age != updated.Age || again.Name != updated.Name || again.ProfileImage != updated.ProfileImage {
		t.Fatalf("partial update not idempotent: %+v vs %+v", again, updated)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	svc, _, _ := newService()

	name := "Rex"
	_, err := svc.Update(context.Background(), "missing", pet.Update{Name: &name}, nil)
	if !errors.Is(err, pet.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestUpdate_NewImageLeavesOldObject(t *testing.T) {
	svc, _, store := newService()
	ctx := context.Background()

	p, err := svc.Create(ctx, "owner-1", pet.Fields{Name: "Rex"}, upload("old.jpg", "old"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	oldURL := p.ProfileImage

	updated, err := svc.Update(ctx, p.ID, pet.Update{}, upload("new.jpg", "new"))
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ProfileImage == oldURL {
		t.Fatal("profileImage URL not replaced")
	}
	// The replaced object stays in the bucket.
	if _, ok := store.Object("pets/" + p.ID + "/old.jpg"); !ok {
		t.Fatal("old object was removed")
	}
	if _, ok := store.Object("pets/" + p.ID + "/new.jpg"); !ok {
		t.Fatal("new object missing")
	}
}

func TestDelete_NonexistentReportsSuccess(t *testing.T) {
	svc, _, _ := newService()

	if err := svc.Delete(context.Background(), "never-existed"); err != nil {
		t.Fatalf("delete of unknown id must succeed, got %v", err)
	}
}

func TestDelete_RemovesPost(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()

	p, err := svc.Create(ctx, "owner-1", pet.Fields{Name: "Rex"}, nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Delete(ctx, p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.GetByID(ctx, p.ID); !errors.Is(err, pet.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound after delete", err)
	}
}

func TestListByOwner(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()

	for _, owner := range []string{"a", "a", "b"} {
		if _, err := svc.Create(ctx, owner, pet.Fields{Name: "pet of " + owner}, nil); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	for owner, want := range map[string]int{"a": 2, "b": 1, "c": 0} {
		posts, err := svc.ListByOwner(ctx, owner)
		if err != nil {
			t.Fatalf("list by owner %q: %v", owner, err)
		}
		if len(posts) != want {
			t.Fatalf("owner %q: got %d posts, want %d", owner, len(posts), want)
		}
		for _, p := range posts {
			if p.UserID != owner {
				t.Fatalf("owner %q list contains post of %q", owner, p.UserID)
			}
		}
	}

	all, err := svc.ListAll(ctx)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("list all: got %d posts, want 3", len(all))
	}
}
