package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/pawhome/service/internal/auth"
	"github.com/pawhome/service/internal/identity"
	"github.com/pawhome/service/internal/memory"
)

func newService() (*auth.Service, *memory.IdentityProvider, *memory.UserRepository) {
	provider := memory.NewIdentityProvider()
	users := memory.NewUserRepository()
	return auth.NewService(provider, users), provider, users
}

func TestRegisterThenLogin(t *testing.T) {
	svc, provider, _ := newService()
	ctx := context.Background()

	u, err := svc.Register(ctx, "a@x.com", "pw", "A")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.UID == "" {
		t.Fatal("expected a provider-assigned uid")
	}
	if u.Email != "a@x.com" || u.FirstName != "A" {
		t.Fatalf("unexpected user record: %+v", u)
	}

	result, err := svc.Login(ctx, "a@x.com", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.Token == "" {
		t.Fatal("expected a token")
	}
	if result.User.UID != u.UID {
		t.Fatalf("login uid = %q, want %q", result.User.UID, u.UID)
	}

	// The issued token authenticates against the provider.
	uid, err := provider.VerifyToken(ctx, result.Token)
	if err != nil || uid != u.UID {
		t.Fatalf("verify token: uid=%q err=%v", uid, err)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, "a@x.com", "pw", "A"); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, err := svc.Login(ctx, "a@x.com", "nope")
	if !errors.Is(err, identity.ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _, _ := newService()

	_, err := svc.Login(context.Background(), "who@x.com", "pw")
	if !errors.Is(err, identity.ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestLogin_VerifiedButUnregisteredDeletesAccount(t *testing.T) {
	svc, _, users := newService()
	ctx := context.Background()

	u, err := svc.Register(ctx, "a@x.com", "pw", "A")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	// Simulate the registry record being deleted out-of-band.
	users.Remove(u.UID)

	_, err = svc.Login(ctx, "a@x.com", "pw")
	if !errors.Is(err, auth.ErrNotRegistered) {
		t.Fatalf("err = %v, want ErrNotRegistered", err)
	}

	// The orphaned provider account was removed, so the same credentials now
	// fail as unknown.
	_, err = svc.Login(ctx, "a@x.com", "pw")
	if !errors.Is(err, identity.ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials after compensating delete", err)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, "a@x.com", "pw", "A"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Register(ctx, "a@x.com", "pw2", "B"); err == nil {
		t.Fatal("expected duplicate registration to fail")
	}
}
