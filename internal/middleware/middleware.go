package middleware

import (
	"context"
	"log"
	"net/http"

	"simpleblog/internal/config"
	"simpleblog/internal/service"
)

type Middleware func(http.Handler) http.Handler

type contextKey int

const identityKey contextKey = iota

// IdentityFrom returns the authenticated caller, or nil for an anonymous
// request.
func IdentityFrom(ctx context.Context) *service.Identity {
	identity, _ := ctx.Value(identityKey).(*service.Identity)
	return identity
}

// WithIdentity is exported for tests that need an authenticated context.
func WithIdentity(ctx context.Context, identity *service.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// Session decodes the session cookie on every request. A missing cookie, a
// bad signature or an expired token all collapse to anonymous, the request
// pipeline never fails here.
func Session(cfg *config.Config, auth service.AuthService) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cfg.SessionCookieName)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			identity, err := auth.VerifyToken(cookie.Value)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}

// RequireAuth sends anonymous callers back to the landing page. Refusal is a
// redirect, not an error page.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if IdentityFrom(r.Context()) == nil {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("%s %s %s", r.Method, r.RequestURI, r.RemoteAddr)
		next.ServeHTTP(w, r)
	})
}

func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for _, m := range middlewares {
		h = m(h)
	}
	return h
}
