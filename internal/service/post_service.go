package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"simpleblog/internal/config"
	"simpleblog/internal/models"
	"simpleblog/internal/repository"
	"simpleblog/internal/storage"
)

// PostDetail is the public detail view of a post.
type PostDetail struct {
	models.PostWithAuthor
	Images []models.Image `json:"images"`
}

type PostService interface {
	CreatePost(ctx context.Context, authorID int64, title, body string) (*models.Post, error)
	UpdatePost(ctx context.Context, callerID, postID int64, title, body string) error
	DeletePost(ctx context.Context, callerID, postID int64) error
	GetPost(ctx context.Context, postID int64) (*PostDetail, error)
	GetOwnedPost(ctx context.Context, callerID, postID int64) (*models.Post, error)
	ListPostsByAuthor(ctx context.Context, authorID int64) ([]models.Post, error)
	AttachImage(ctx context.Context, callerID, postID int64, fileName string, file io.Reader, size int64) (*models.Image, error)
	DeleteImage(ctx context.Context, callerID, postID, imageID int64) error
}

type postService struct {
	postRepo  repository.PostRepository
	imageRepo repository.ImageRepository
	storage   storage.Storage
	policy    *bluemonday.Policy
	cfg       *config.Config
}

func NewPostService(postRepo repository.PostRepository, imageRepo repository.ImageRepository, storage storage.Storage, cfg *config.Config) PostService {
	return &postService{
		postRepo:  postRepo,
		imageRepo: imageRepo,
		storage:   storage,
		policy:    bluemonday.StrictPolicy(),
		cfg:       cfg,
	}
}

// Sanitize trims the field and strips every tag and attribute, leaving
// entity-escaped plain text. Entity-encoded markup stays escaped text, it
// is never decoded back into live tags, so running it twice changes
// nothing.
func (p *postService) Sanitize(raw string) string {
	return p.policy.Sanitize(strings.TrimSpace(raw))
}

// validatePostFields sanitizes first, then checks presence, so a field that
// was nothing but markup counts as missing. Title and body are reported
// independently.
func (p *postService) validatePostFields(title, body string) (string, string, error) {
	title = p.Sanitize(title)
	body = p.Sanitize(body)

	var messages []string
	if title == "" {
		messages = append(messages, "you must provide a title")
	}
	if body == "" {
		messages = append(messages, "you must provide a body")
	}

	if len(messages) > 0 {
		return "", "", &ValidationError{Messages: messages}
	}

	return title, body, nil
}

func (p *postService) CreatePost(ctx context.Context, authorID int64, title, body string) (*models.Post, error) {
	title, body, err := p.validatePostFields(title, body)
	if err != nil {
		return nil, err
	}

	post, err := p.postRepo.Create(ctx, title, body, authorID, time.Now())
	if err != nil {
		return nil, err
	}

	return post, nil
}

func (p *postService) UpdatePost(ctx context.Context, callerID, postID int64, title, body string) error {
	if _, err := p.ownedPost(ctx, callerID, postID); err != nil {
		return err
	}

	title, body, err := p.validatePostFields(title, body)
	if err != nil {
		return err
	}

	// author and created_at never change
	return p.postRepo.Update(ctx, postID, title, body)
}

func (p *postService) DeletePost(ctx context.Context, callerID, postID int64) error {
	if _, err := p.ownedPost(ctx, callerID, postID); err != nil {
		return err
	}

	images, err := p.imageRepo.GetByPostID(ctx, postID)
	if err != nil {
		return err
	}

	for _, image := range images {
		objectName := p.storage.ObjectNameFromURL(image.ImageURL)
		if err := p.storage.DeleteImage(ctx, objectName); err != nil {
			log.Printf("warning: failed to delete object %s: %v", objectName, err)
		}
	}

	// the schema cascades image rows on post delete, but the cleanup stays
	// explicit so the service does not depend on it
	if err := p.imageRepo.DeleteByPostID(ctx, postID); err != nil {
		return err
	}

	return p.postRepo.Delete(ctx, postID)
}

func (p *postService) GetPost(ctx context.Context, postID int64) (*PostDetail, error) {
	post, err := p.postRepo.GetByIDWithAuthor(ctx, postID)
	if err != nil {
		return nil, err
	}

	images, err := p.imageRepo.GetByPostID(ctx, postID)
	if err != nil {
		return nil, err
	}

	return &PostDetail{PostWithAuthor: *post, Images: images}, nil
}

// GetOwnedPost resolves a post and refuses callers that do not own it.
func (p *postService) GetOwnedPost(ctx context.Context, callerID, postID int64) (*models.Post, error) {
	return p.ownedPost(ctx, callerID, postID)
}

func (p *postService) ListPostsByAuthor(ctx context.Context, authorID int64) ([]models.Post, error) {
	return p.postRepo.GetByAuthorID(ctx, authorID)
}

func (p *postService) AttachImage(ctx context.Context, callerID, postID int64, fileName string, file io.Reader, size int64) (*models.Image, error) {
	if _, err := p.ownedPost(ctx, callerID, postID); err != nil {
		return nil, err
	}

	objectName, imageURL, err := p.storage.UploadImage(ctx, postID, fileName, file, size)
	if err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}

	image := &models.Image{
		PostID:    postID,
		ImageURL:  imageURL,
		CreatedAt: time.Now(),
	}

	if err := p.imageRepo.Create(ctx, image); err != nil {
		// keep the bucket and the table in step
		if delErr := p.storage.DeleteImage(ctx, objectName); delErr != nil {
			log.Printf("warning: failed to delete orphaned object %s: %v", objectName, delErr)
		}
		return nil, err
	}

	return image, nil
}

func (p *postService) DeleteImage(ctx context.Context, callerID, postID, imageID int64) error {
	if _, err := p.ownedPost(ctx, callerID, postID); err != nil {
		return err
	}

	image, err := p.imageRepo.GetByID(ctx, imageID)
	if err != nil {
		return err
	}
	if image.PostID != postID {
		return repository.ErrNotFound
	}

	objectName := p.storage.ObjectNameFromURL(image.ImageURL)
	if err := p.storage.DeleteImage(ctx, objectName); err != nil {
		log.Printf("warning: failed to delete object %s: %v", objectName, err)
	}

	return p.imageRepo.Delete(ctx, imageID)
}

func (p *postService) ownedPost(ctx context.Context, callerID, postID int64) (*models.Post, error) {
	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if post.AuthorID != callerID {
		return nil, ErrNotOwner
	}

	return post, nil
}
