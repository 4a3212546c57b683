package repository

import (
	"context"
	"errors"
	"simpleblog/internal/models"
	"time"

	"github.com/jmoiron/sqlx"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicateUsername is returned when the unique constraint on
// users.username is violated.
var ErrDuplicateUsername = errors.New("username already exists")

type UserRepository interface {
	CreateUser(ctx context.Context, username, passwordHash string) (*models.User, error)
	GetUserByID(ctx context.Context, userID int64) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

type PostRepository interface {
	Create(ctx context.Context, title, body string, authorID int64, createdAt time.Time) (*models.Post, error)
	GetByID(ctx context.Context, postID int64) (*models.Post, error)
	GetByIDWithAuthor(ctx context.Context, postID int64) (*models.PostWithAuthor, error)
	GetByAuthorID(ctx context.Context, authorID int64) ([]models.Post, error)
	Update(ctx context.Context, postID int64, title, body string) error
	Delete(ctx context.Context, postID int64) error
}

type ImageRepository interface {
	Create(ctx context.Context, image *models.Image) error
	GetByID(ctx context.Context, imageID int64) (*models.Image, error)
	GetByPostID(ctx context.Context, postID int64) ([]models.Image, error)
	Delete(ctx context.Context, imageID int64) error
	DeleteByPostID(ctx context.Context, postID int64) error
}

type Repository struct {
	User  UserRepository
	Post  PostRepository
	Image ImageRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User:  NewUserRepository(db),
		Post:  NewPostRepository(db),
		Image: NewImageRepository(db),
	}
}
