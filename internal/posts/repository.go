package posts

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pressgate/pressgate/internal/shared"
)

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListPosts returns one page of posts, newest first.
func (r *Repository) ListPosts(ctx context.Context, limit, offset int) ([]Post, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, content, author_id, created_at, updated_at FROM posts
		 ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []Post
	for rows.Next() {
		var p Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &p.AuthorID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// CountPosts returns the total number of posts.
func (r *Repository) CountPosts(ctx context.Context) (int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM posts`).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// GetPost fetches a post by ID.
func (r *Repository) GetPost(ctx context.Context, id int64) (Post, error) {
	var p Post
	err := r.pool.QueryRow(ctx,
		`SELECT id, title, content, author_id, created_at, updated_at FROM posts WHERE id = $1`, id,
	).Scan(&p.ID, &p.Title, &p.Content, &p.AuthorID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Post{}, shared.ErrNotFound
		}
		return Post{}, err
	}
	return p, nil
}

// CreatePost inserts a post.
func (r *Repository) CreatePost(ctx context.Context, title, content string, authorID int64) (Post, error) {
	var p Post
	err := r.pool.QueryRow(ctx,
		`INSERT INTO posts (title, content, author_id) VALUES ($1, $2, $3)
		 RETURNING id, title, content, author_id, created_at, updated_at`,
		title, content, authorID,
	).Scan(&p.ID, &p.Title, &p.Content, &p.AuthorID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return Post{}, err
	}
	return p, nil
}

// UpdatePost edits a post.
func (r *Repository) UpdatePost(ctx context.Context, id int64, title, content string) (Post, error) {
	var p Post
	err := r.pool.QueryRow(ctx,
		`UPDATE posts SET title = $2, content = $3, updated_at = NOW() WHERE id = $1
		 RETURNING id, title, content, author_id, created_at, updated_at`,
		id, title, content,
	).Scan(&p.ID, &p.Title, &p.Content, &p.AuthorID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Post{}, shared.ErrNotFound
		}
		return Post{}, err
	}
	return p, nil
}

// DeletePost removes a post row.
func (r *Repository) DeletePost(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ RepositoryPort = (*Repository)(nil)
