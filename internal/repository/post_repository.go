package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"simpleblog/internal/models"
)

type postRepository struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, title, body string, authorID int64, createdAt time.Time) (*models.Post, error) {
	post := &models.Post{
		Title:     title,
		Body:      body,
		AuthorID:  authorID,
		CreatedAt: createdAt,
	}

	query := `
		INSERT INTO posts (title, body, author_id, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.db.GetContext(ctx, &post.ID, query, title, body, authorID, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	return post, nil
}

func (r *postRepository) GetByID(ctx context.Context, postID int64) (*models.Post, error) {
	var post models.Post

	query := `SELECT * FROM posts WHERE id = $1`

	err := r.db.GetContext(ctx, &post, query, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return &post, nil
}

func (r *postRepository) GetByIDWithAuthor(ctx context.Context, postID int64) (*models.PostWithAuthor, error) {
	var post models.PostWithAuthor

	query := `
		SELECT posts.*, users.username
		FROM posts
		INNER JOIN users ON posts.author_id = users.id
		WHERE posts.id = $1
	`

	err := r.db.GetContext(ctx, &post, query, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get post with author: %w", err)
	}

	return &post, nil
}

func (r *postRepository) GetByAuthorID(ctx context.Context, authorID int64) ([]models.Post, error) {
	query := `
		SELECT * FROM posts
		WHERE author_id = $1
		ORDER BY created_at DESC
	`

	var posts []models.Post
	err := r.db.SelectContext(ctx, &posts, query, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	return posts, nil
}

// Update touches title and body only. A vanished post is not an error,
// callers resolve the post before mutating it.
func (r *postRepository) Update(ctx context.Context, postID int64, title, body string) error {
	query := `UPDATE posts SET title = $1, body = $2 WHERE id = $3`

	_, err := r.db.ExecContext(ctx, query, title, body, postID)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}

	return nil
}

func (r *postRepository) Delete(ctx context.Context, postID int64) error {
	query := `DELETE FROM posts WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, postID)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	return nil
}
