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

type imageRepository struct {
	db *sqlx.DB
}

func NewImageRepository(db *sqlx.DB) ImageRepository {
	return &imageRepository{db: db}
}

func (r *imageRepository) Create(ctx context.Context, image *models.Image) error {
	if image.CreatedAt.IsZero() {
		image.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO images (post_id, image_url, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.GetContext(ctx, &image.ID, query, image.PostID, image.ImageURL, image.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create image: %w", err)
	}

	return nil
}

func (r *imageRepository) GetByID(ctx context.Context, imageID int64) (*models.Image, error) {
	var image models.Image

	query := `SELECT * FROM images WHERE id = $1`

	err := r.db.GetContext(ctx, &image, query, imageID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get image: %w", err)
	}

	return &image, nil
}

func (r *imageRepository) GetByPostID(ctx context.Context, postID int64) ([]models.Image, error) {
	query := `SELECT * FROM images WHERE post_id = $1 ORDER BY created_at`

	var images []models.Image
	err := r.db.SelectContext(ctx, &images, query, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}

	return images, nil
}

func (r *imageRepository) Delete(ctx context.Context, imageID int64) error {
	query := `DELETE FROM images WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, imageID)
	if err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}

	return nil
}

func (r *imageRepository) DeleteByPostID(ctx context.Context, postID int64) error {
	query := `DELETE FROM images WHERE post_id = $1`

	_, err := r.db.ExecContext(ctx, query, postID)
	if err != nil {
		return fmt.Errorf("failed to delete post images: %w", err)
	}

	return nil
}
