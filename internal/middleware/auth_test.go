package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pawhome/service/internal/memory"
	"github.com/pawhome/service/internal/middleware"
	"github.com/pawhome/service/internal/user"
)

// gateFixture stands up the gate in front of a handler that records the
// resolved uid.
func gateFixture(t *testing.T) (http.Handler, *memory.IdentityProvider, *memory.UserRepository, *string) {
	t.Helper()

	provider := memory.NewIdentityProvider()
	users := memory.NewUserRepository()

	var seenUID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUID, _ = r.Context().Value(middleware.UserIDKey).(string)
		w.WriteHeader(http.StatusOK)
	})

	return middleware.RequireUser(provider, users)(next), provider, users, &seenUID
}

func request(handler http.Handler, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestGate_MissingHeader(t *testing.T) {
	handler, _, _, _ := gateFixture(t)

	if rec := request(handler, ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestGate_WrongScheme(t *testing.T) {
	handler, _, _, _ := gateFixture(t)

	if rec := request(handler, "Basic abc"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestGate_InvalidToken(t *testing.T) {
	handler, _, _, _ := gateFixture(t)

	if rec := request(handler, "Bearer not-a-token"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestGate_VerifiedButUnregistered(t *testing.T) {
	handler, provider, _, _ := gateFixture(t)
	ctx := context.Background()

	if _, err := provider.CreateAccount(ctx, "a@x.com", "pw", "A"); err != nil {
		t.Fatalf("create account: %v", err)
	}
	_, token, err := provider.SignIn(ctx, "a@x.com", "pw")
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}

	// Valid token, but no record in the user registry.
	if rec := request(handler, "Bearer "+token); rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestGate_AdmitsRegisteredUser(t *testing.T) {
	handler, provider, users, seenUID := gateFixture(t)
	ctx := context.Background()

	acct, err := provider.CreateAccount(ctx, "a@x.com", "pw", "A")
	if err != nil {
		t.Fatalf("create account: %v", err)
	}
	if err := users.Create(ctx, &user.User{UID: acct.UID, Email: acct.Email, FirstName: "A"}); err != nil {
		t.Fatalf("create user: %v", err)
	}
	_, token, err := provider.SignIn(ctx, "a@x.com", "pw")
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}

	rec := request(handler, "Bearer "+token)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if *seenUID != acct.UID {
		t.Fatalf("context uid = %q, want %q", *seenUID, acct.UID)
	}
}
