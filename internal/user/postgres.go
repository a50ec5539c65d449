package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository implements Repository on a pgx connection pool.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a Repository backed by the given pool.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new user record.
func (r *PostgresRepository) Create(ctx context.Context, u *User) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO users (uid, email, first_name)
		 VALUES ($1, $2, $3)
		 RETURNING created_at`,
		u.UID, u.Email, u.FirstName,
	).Scan(&u.CreatedAt)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// GetByUID fetches a user by their UID.
func (r *PostgresRepository) GetByUID(ctx context.Context, uid string) (*User, error) {
	u := &User{}
	err := r.db.QueryRow(ctx,
		`SELECT uid, email, first_name, created_at
		 FROM users WHERE uid = $1`,
		uid,
	).Scan(&u.UID, &u.Email, &u.FirstName, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user by uid: %w", err)
	}
	return u, nil
}
