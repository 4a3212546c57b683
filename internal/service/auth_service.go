package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"simpleblog/internal/config"
	"simpleblog/internal/models"
	"simpleblog/internal/repository"
)

const (
	usernameMinLen = 3
	usernameMaxLen = 10
	passwordMinLen = 12
	passwordMaxLen = 70
)

// genericLoginError is deliberately the same for an unknown username and a
// wrong password so usernames cannot be enumerated.
const genericLoginError = "invalid username / password."

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

// Identity is the verified content of a session token.
type Identity struct {
	UserID   int64
	Username string
}

type AuthService interface {
	Register(ctx context.Context, username, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (*models.User, error)
	IssueToken(user *models.User) (string, error)
	VerifyToken(tokenString string) (*Identity, error)
}

type authService struct {
	userRepo repository.UserRepository
	cfg      *config.Config
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

// sessionClaims embeds the registered claims so expiry is checked by the
// jwt library itself on parse.
type sessionClaims struct {
	jwt.RegisteredClaims
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
}

func (s *authService) Register(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)

	var messages []string

	if username == "" {
		messages = append(messages, "you must provide a username")
	}
	if username != "" && utf8.RuneCountInString(username) < usernameMinLen {
		messages = append(messages, "username must be at least 3 characters")
	}
	if username != "" && utf8.RuneCountInString(username) > usernameMaxLen {
		messages = append(messages, "username cannot exceed 10 characters")
	}
	if username != "" && !usernamePattern.MatchString(username) {
		messages = append(messages, "username can only contain letters and numbers")
	}

	// case-sensitive exact match against the store
	if username != "" {
		existing, err := s.userRepo.GetUserByUsername(ctx, username)
		if err != nil && err != repository.ErrNotFound {
			return nil, fmt.Errorf("failed to check username: %w", err)
		}
		if existing != nil {
			messages = append(messages, "that username is already taken")
		}
	}

	if password == "" {
		messages = append(messages, "you must provide a password")
	}
	if password != "" && utf8.RuneCountInString(password) < passwordMinLen {
		messages = append(messages, "password must be at least 12 characters")
	}
	if password != "" && utf8.RuneCountInString(password) > passwordMaxLen {
		messages = append(messages, "password cannot exceed 70 characters")
	}

	if len(messages) > 0 {
		return nil, &ValidationError{Messages: messages}
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userRepo.CreateUser(ctx, username, hash)
	if err != nil {
		// two registrations can race past the lookup above, the unique
		// constraint is the final arbiter
		if err == repository.ErrDuplicateUsername {
			return nil, &ValidationError{Messages: []string{"that username is already taken"}}
		}
		return nil, err
	}

	return user, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)

	if username == "" || password == "" {
		return nil, &ValidationError{Messages: []string{genericLoginError}}
	}

	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, &ValidationError{Messages: []string{genericLoginError}}
		}
		return nil, err
	}

	if !CheckPassword(password, user.PasswordHash) {
		return nil, &ValidationError{Messages: []string{genericLoginError}}
	}

	return user, nil
}

func (s *authService) IssueToken(user *models.User) (string, error) {
	now := time.Now()

	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.SessionTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID:   user.ID,
		Username: user.Username,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.cfg.JWTSecretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// VerifyToken checks signature and expiry. Any structural corruption,
// signature mismatch or expired token yields an error the caller collapses
// to anonymous.
func (s *authService) VerifyToken(tokenString string) (*Identity, error) {
	claims := &sessionClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return &Identity{UserID: claims.UserID, Username: claims.Username}, nil
}

// HashPassword produces a salted bcrypt digest of the plaintext.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compares in constant time. A malformed digest verifies
// as false rather than erroring.
func CheckPassword(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
