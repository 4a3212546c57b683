package handlers

import (
	"github.com/go-playground/validator/v10"
	"simpleblog/internal/config"
	"simpleblog/internal/database"
	"simpleblog/internal/service"
)

type Handlers struct {
	AuthService service.AuthService
	PostService service.PostService
	DB          *database.DB
	Cfg         *config.Config
	Validate    *validator.Validate
}

func NewHandlers(db *database.DB, service *service.Service, config *config.Config) *Handlers {
	return &Handlers{
		AuthService: service.Auth,
		PostService: service.Post,
		DB:          db,
		Cfg:         config,
		Validate:    validator.New(),
	}
}
