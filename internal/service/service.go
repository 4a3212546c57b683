package service

import (
	"simpleblog/internal/config"
	"simpleblog/internal/repository"
	"simpleblog/internal/storage"
)

type Service struct {
	Auth AuthService
	Post PostService
}

func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage) *Service {
	return &Service{
		Auth: NewAuthService(rep.User, cfg),
		Post: NewPostService(rep.Post, rep.Image, storage, cfg),
	}
}
