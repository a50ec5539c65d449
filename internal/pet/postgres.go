package pet

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const postColumns = `id, user_id, name, age, weight, title, location, gender,
	contact, breed, description, profile_image, created_at, updated_at`

// PostgresRepository implements Repository on a pgx connection pool.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a Repository backed by the given pool.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Insert persists a new post.
func (r *PostgresRepository) Insert(ctx context.Context, p *Post) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO pet_posts
		 (id, user_id, name, age, weight, title, location, gender, contact, breed, description, profile_image)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING created_at, updated_at`,
		p.ID, p.UserID, p.Name, p.Age, p.Weight, p.Title, p.Location,
		p.Gender, p.Contact, p.Breed, p.Description, p.ProfileImage,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert pet post: %w", err)
	}
	return nil
}

// GetByID fetches a post by id.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Post, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+postColumns+` FROM pet_posts WHERE id = $1`, id)
	p, err := scanPost(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get pet post by id: %w", err)
	}
	return p, nil
}

// Update builds an UPDATE statement covering only the fields present in upd.
func (r *PostgresRepository) Update(ctx context.Context, id string, upd Update) error {
	var (
		sets []string
		args []interface{}
	)
	set := func(column string, v *string) {
		if v != nil {
			args = append(args, *v)
			sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
		}
	}
	set("name", upd.Name)
	set("age", upd.Age)
	set("weight", upd.Weight)
	set("title", upd.Title)
	set("location", upd.Location)
	set("gender", upd.Gender)
	set("contact", upd.Contact)
	set("breed", upd.Breed)
	set("description", upd.Description)
	set("profile_image", upd.ProfileImage)

	if len(sets) == 0 {
		// Nothing to change; still report ErrNotFound for unknown ids.
		_, err := r.GetByID(ctx, id)
		return err
	}

	sets = append(sets, "updated_at = NOW()")
	args = append(args, id)
	query := fmt.Sprintf(`UPDATE pet_posts SET %s WHERE id = $%d`,
		strings.Join(sets, ", "), len(args))

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update pet post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListAll returns every post, oldest first.
func (r *PostgresRepository) ListAll(ctx context.Context) ([]Post, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+postColumns+` FROM pet_posts ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list pet posts: %w", err)
	}
	defer rows.Close()
	return collectPosts(rows)
}

// ListByOwner returns the posts owned by userID, oldest first.
func (r *PostgresRepository) ListByOwner(ctx context.Context, userID string) ([]Post, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+postColumns+` FROM pet_posts WHERE user_id = $1 ORDER BY created_at`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("list pet posts by owner: %w", err)
	}
	defer rows.Close()
	return collectPosts(rows)
}

// Delete removes the post row. Unknown ids delete zero rows and succeed.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM pet_posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete pet post: %w", err)
	}
	return nil
}

func scanPost(row pgx.Row) (*Post, error) {
	p := &Post{}
	err := row.Scan(
		&p.ID, &p.UserID, &p.Name, &p.Age, &p.Weight, &p.Title, &p.Location,
		&p.Gender, &p.Contact, &p.Breed, &p.Description, &p.ProfileImage,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func collectPosts(rows pgx.Rows) ([]Post, error) {
	posts := make([]Post, 0)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pet post: %w", err)
		}
		posts = append(posts, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pet posts: %w", err)
	}
	return posts, nil
}
