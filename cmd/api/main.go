package main

import (
	"fmt"
	"log"
	"net/http"
	"simpleblog/cmd/app"
	"simpleblog/internal/config"
	handlers "simpleblog/internal/handler"
	"simpleblog/internal/middleware"

	"github.com/gorilla/mux"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()

	if cfg.JWTSecretKey == "" {
		log.Fatal("JWT_SECRET_KEY is not set in the .env file")
	}

	db, _, services := app.App(cfg)
	defer db.CloseDB()

	handler := handlers.NewHandlers(db, services, cfg)

	// setting up routes
	router := mux.NewRouter()

	router.HandleFunc("/", handler.Home).Methods(http.MethodGet)
	router.HandleFunc("/health", handler.Health).Methods(http.MethodGet)

	router.HandleFunc("/register", handler.Register).Methods(http.MethodPost)
	router.HandleFunc("/login", handler.Login).Methods(http.MethodPost)
	router.HandleFunc("/logout", handler.Logout).Methods(http.MethodGet)

	router.HandleFunc("/post/{id:[0-9]+}", handler.GetPost).Methods(http.MethodGet)

	// mutating post routes sit behind the auth gate; ownership is checked
	// against the loaded post further down
	router.Handle("/create-post",
		middleware.RequireAuth(http.HandlerFunc(handler.CreatePost))).Methods(http.MethodPost)
	router.Handle("/edit-post/{id:[0-9]+}",
		middleware.RequireAuth(http.HandlerFunc(handler.EditPostForm))).Methods(http.MethodGet)
	router.Handle("/edit-post/{id:[0-9]+}",
		middleware.RequireAuth(http.HandlerFunc(handler.UpdatePost))).Methods(http.MethodPost)
	router.Handle("/delete-post/{id:[0-9]+}",
		middleware.RequireAuth(http.HandlerFunc(handler.DeletePost))).Methods(http.MethodPost)

	router.Handle("/post/{id:[0-9]+}/images",
		middleware.RequireAuth(http.HandlerFunc(handler.AddImage))).Methods(http.MethodPost)
	router.Handle("/post/{id:[0-9]+}/images/{imageId:[0-9]+}/delete",
		middleware.RequireAuth(http.HandlerFunc(handler.DeleteImage))).Methods(http.MethodPost)

	handlerChain := middleware.Chain(
		router,
		middleware.Session(cfg, services.Auth),
		middleware.CORSMiddleware,
		middleware.LoggingMiddleware,
	)

	// Starting the server
	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	fmt.Printf("server listening on %s\n", addr)
	fmt.Printf("database: %s\n", cfg.DB.DbNAME)

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
