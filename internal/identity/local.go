package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

// LocalProvider implements Provider with accounts stored in Postgres and
// self-issued HS256 JWTs. It owns the identity_accounts table; application
// code never queries it directly.
type LocalProvider struct {
	db     *pgxpool.Pool
	secret []byte
}

// NewLocalProvider creates a LocalProvider signing tokens with secret.
func NewLocalProvider(db *pgxpool.Pool, secret string) *LocalProvider {
	return &LocalProvider{db: db, secret: []byte(secret)}
}

// CreateAccount hashes the password with bcrypt and inserts the account.
func (p *LocalProvider) CreateAccount(ctx context.Context, email, password, displayName string) (*Account, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	acct := &Account{UID: uuid.NewString(), Email: email, DisplayName: displayName}
	_, err = p.db.Exec(ctx,
		`INSERT INTO identity_accounts (uid, email, password_hash, display_name)
		 VALUES ($1, $2, $3, $4)`,
		acct.UID, email, string(hash), displayName,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("insert account: %w", err)
	}
	return acct, nil
}

// SignIn verifies the password against the stored bcrypt hash and issues a token.
func (p *LocalProvider) SignIn(ctx context.Context, email, password string) (*Account, string, error) {
	var (
		acct Account
		hash string
	)
	err := p.db.QueryRow(ctx,
		`SELECT uid, email, password_hash, display_name
		 FROM identity_accounts WHERE email = $1`,
		email,
	).Scan(&acct.UID, &acct.Email, &hash, &acct.DisplayName)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", fmt.Errorf("get account by email: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := p.issueToken(acct.UID, acct.Email)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return &acct, token, nil
}

// VerifyToken checks the signature and expiry and returns the subject UID.
// Deletion of the account is not detected within the token's lifetime; the
// registry check downstream covers that divergence.
func (p *LocalProvider) VerifyToken(_ context.Context, tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return p.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	uid, _ := claims["sub"].(string)
	if uid == "" {
		return "", ErrInvalidToken
	}
	return uid, nil
}

// DeleteAccount removes the account row. Unknown UIDs delete zero rows and succeed.
func (p *LocalProvider) DeleteAccount(ctx context.Context, uid string) error {
	_, err := p.db.Exec(ctx, `DELETE FROM identity_accounts WHERE uid = $1`, uid)
	return err
}

// issueToken creates a signed JWT for the given account.
func (p *LocalProvider) issueToken(uid, email string) (string, error) {
	claims := jwt.MapClaims{
		"sub":   uid,
		"email": email,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(p.secret)
}

// isUniqueViolation checks whether an error is a PostgreSQL unique_violation (code 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
