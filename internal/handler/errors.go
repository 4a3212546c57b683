package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"simpleblog/internal/repository"
	"simpleblog/internal/service"
)

// ErrorResponse is the standard single-error reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationResponse carries the ordered message list for form re-display.
type ValidationResponse struct {
	Errors []string `json:"errors"`
}

func WriteError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

func WriteValidationErrors(w http.ResponseWriter, messages []string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnprocessableEntity)
	json.NewEncoder(w).Encode(ValidationResponse{Errors: messages})
}

func writeSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// handleServiceError maps the error taxonomy onto the boundary: validation
// lists go back to the form, refusals and lookup misses become the same
// redirect, anything else is a store fault for this request only.
func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if ve, ok := service.AsValidationError(err); ok {
		WriteValidationErrors(w, ve.Messages)
		return
	}

	switch err {
	case service.ErrAuthRequired, service.ErrNotOwner:
		http.Redirect(w, r, "/", http.StatusSeeOther)
	default:
		if isNotFound(err) {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		log.Printf("request failed: %v", err)
		WriteError(w, "internal server error", http.StatusInternalServerError)
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}
