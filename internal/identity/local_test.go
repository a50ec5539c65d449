package identity

import (
	"context"
	"errors"
	"testing"
)

// Token issuing and verification need no database, so the provider is
// constructed directly with just a secret.

func TestTokenRoundTrip(t *testing.T) {
	p := &LocalProvider{secret: []byte("test-secret")}

	token, err := p.issueToken("uid-123", "a@x.com")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	uid, err := p.VerifyToken(context.Background(), token)
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	if uid != "uid-123" {
		t.Fatalf("uid = %q, want uid-123", uid)
	}
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	issuer := &LocalProvider{secret: []byte("secret-a")}
	verifier := &LocalProvider{secret: []byte("secret-b")}

	token, err := issuer.issueToken("uid-123", "a@x.com")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	if _, err := verifier.VerifyToken(context.Background(), token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyToken_Garbage(t *testing.T) {
	p := &LocalProvider{secret: []byte("test-secret")}

	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := p.VerifyToken(context.Background(), token); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("token %q: err = %v, want ErrInvalidToken", token, err)
		}
	}
}

func TestVerifyToken_Tampered(t *testing.T) {
	p := &LocalProvider{secret: []byte("test-secret")}

	token, err := p.issueToken("uid-123", "a@x.com")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	tampered := token[:len(token)-2] + "xx"
	if _, err := p.VerifyToken(context.Background(), tampered); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
}
