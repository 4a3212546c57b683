package test

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
	"simpleblog/internal/models"
	"simpleblog/internal/service"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, username, password string) (*models.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (*models.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) IssueToken(user *models.User) (string, error) {
	args := m.Called(user)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) VerifyToken(tokenString string) (*service.Identity, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Identity), args.Error(1)
}

type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) CreatePost(ctx context.Context, authorID int64, title, body string) (*models.Post, error) {
	args := m.Called(ctx, authorID, title, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) UpdatePost(ctx context.Context, callerID, postID int64, title, body string) error {
	args := m.Called(ctx, callerID, postID, title, body)
	return args.Error(0)
}

func (m *MockPostService) DeletePost(ctx context.Context, callerID, postID int64) error {
	args := m.Called(ctx, callerID, postID)
	return args.Error(0)
}

func (m *MockPostService) GetPost(ctx context.Context, postID int64) (*service.PostDetail, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PostDetail), args.Error(1)
}

func (m *MockPostService) GetOwnedPost(ctx context.Context, callerID, postID int64) (*models.Post, error) {
	args := m.Called(ctx, callerID, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) ListPostsByAuthor(ctx context.Context, authorID int64) ([]models.Post, error) {
	args := m.Called(ctx, authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostService) AttachImage(ctx context.Context, callerID, postID int64, fileName string, file io.Reader, size int64) (*models.Image, error) {
	args := m.Called(ctx, callerID, postID, fileName, file, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Image), args.Error(1)
}

func (m *MockPostService) DeleteImage(ctx context.Context, callerID, postID, imageID int64) error {
	args := m.Called(ctx, callerID, postID, imageID)
	return args.Error(0)
}
