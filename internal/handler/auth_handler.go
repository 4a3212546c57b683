package handlers

import (
	"net/http"
)

type LoginRequest struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

// Register creates an account and logs the new user straight in. Failures
// come back as the ordered message list for the form.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// FormValue coerces an absent or repeated field to a plain string,
	// which gives the "missing becomes empty" normalization for free
	username := r.FormValue("username")
	password := r.FormValue("password")

	user, err := h.AuthService.Register(r.Context(), username, password)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	token, err := h.AuthService.IssueToken(user)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	h.setSessionCookie(w, token)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Login answers every failure with the same generic message so usernames
// cannot be probed.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	req := LoginRequest{
		Username: r.FormValue("username"),
		Password: r.FormValue("password"),
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteValidationErrors(w, []string{"invalid username / password."})
		return
	}

	user, err := h.AuthService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	token, err := h.AuthService.IssueToken(user)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	h.setSessionCookie(w, token)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.Cfg.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// setSessionCookie matches the cookie lifetime to the token's own expiry
// window.
func (h *Handlers) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.Cfg.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.Cfg.SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}
