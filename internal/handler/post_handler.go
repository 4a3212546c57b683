package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"simpleblog/internal/middleware"
	"simpleblog/internal/models"
)

type DashboardResponse struct {
	Username string        `json:"username"`
	Posts    []models.Post `json:"posts"`
}

type LandingResponse struct {
	Message string `json:"message"`
}

// Home is the landing state: the caller's own posts when logged in, the
// logged-out experience otherwise.
func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFrom(r.Context())
	if identity == nil {
		writeSuccess(w, LandingResponse{Message: "welcome to simpleblog"}, http.StatusOK)
		return
	}

	posts, err := h.PostService.ListPostsByAuthor(r.Context(), identity.UserID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeSuccess(w, DashboardResponse{Username: identity.Username, Posts: posts}, http.StatusOK)
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFrom(r.Context())
	if identity == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	post, err := h.PostService.CreatePost(r.Context(), identity.UserID, r.FormValue("title"), r.FormValue("body"))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/post/%d", post.ID), http.StatusSeeOther)
}

// GetPost is public. An id that does not resolve falls back to the landing
// page instead of a 404.
func (h *Handlers) GetPost(w http.ResponseWriter, r *http.Request) {
	postID, ok := postIDFromRequest(w, r)
	if !ok {
		return
	}

	post, err := h.PostService.GetPost(r.Context(), postID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeSuccess(w, post, http.StatusOK)
}

// EditPostForm returns the post for form prefill, owners only.
func (h *Handlers) EditPostForm(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFrom(r.Context())
	if identity == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	postID, ok := postIDFromRequest(w, r)
	if !ok {
		return
	}

	post, err := h.PostService.GetOwnedPost(r.Context(), identity.UserID, postID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeSuccess(w, post, http.StatusOK)
}

func (h *Handlers) UpdatePost(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFrom(r.Context())
	if identity == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	postID, ok := postIDFromRequest(w, r)
	if !ok {
		return
	}

	err := h.PostService.UpdatePost(r.Context(), identity.UserID, postID, r.FormValue("title"), r.FormValue("body"))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/post/%d", postID), http.StatusSeeOther)
}

// DeletePost redirects to the owner's listing whether or not the post was
// still there, so deleting twice looks the same both times.
func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFrom(r.Context())
	if identity == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	postID, ok := postIDFromRequest(w, r)
	if !ok {
		return
	}

	err := h.PostService.DeletePost(r.Context(), identity.UserID, postID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handlers) AddImage(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFrom(r.Context())
	if identity == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	postID, ok := postIDFromRequest(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSize)
	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		WriteError(w, "file is too large or the form is malformed", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		WriteError(w, "missing image file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	image, err := h.PostService.AttachImage(r.Context(), identity.UserID, postID, header.Filename, file, header.Size)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeSuccess(w, image, http.StatusCreated)
}

func (h *Handlers) DeleteImage(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFrom(r.Context())
	if identity == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	postID, ok := postIDFromRequest(w, r)
	if !ok {
		return
	}

	imageID, err := strconv.ParseInt(mux.Vars(r)["imageId"], 10, 64)
	if err != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if err := h.PostService.DeleteImage(r.Context(), identity.UserID, postID, imageID); err != nil {
		handleServiceError(w, r, err)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/post/%d", postID), http.StatusSeeOther)
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.DB.HealthCheck(); err != nil {
		WriteError(w, "database unavailable", http.StatusServiceUnavailable)
		return
	}

	writeSuccess(w, map[string]string{"status": "ok"}, http.StatusOK)
}

// postIDFromRequest parses the {id} path variable. A malformed id gets the
// same landing redirect as a lookup miss.
func postIDFromRequest(w http.ResponseWriter, r *http.Request) (int64, bool) {
	postID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return 0, false
	}
	return postID, true
}
