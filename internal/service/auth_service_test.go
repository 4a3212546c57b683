package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"simpleblog/internal/config"
	"simpleblog/internal/models"
	"simpleblog/internal/repository"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecretKey:      "test-secret-key",
		SessionCookieName: "session",
		SessionTTL:        24 * time.Hour,
	}
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("valid username and password succeed", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		svc := NewAuthService(userRepo, testConfig())

		userRepo.On("GetUserByUsername", mock.Anything, "alice").
			Return(nil, repository.ErrNotFound)
		userRepo.On("CreateUser", mock.Anything, "alice", mock.AnythingOfType("string")).
			Return(&models.User{ID: 1, Username: "alice", PasswordHash: "digest"}, nil)

		user, err := svc.Register(ctx, "alice", "correcthorsebattery1")

		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)

		// the stored digest is never the plaintext
		createArgs := userRepo.Calls[1].Arguments
		assert.NotEqual(t, "correcthorsebattery1", createArgs.String(2))
		assert.True(t, CheckPassword("correcthorsebattery1", createArgs.String(2)))

		userRepo.AssertExpectations(t)
	})

	t.Run("password length boundaries", func(t *testing.T) {
		cases := []struct {
			name     string
			password string
			wantOK   bool
		}{
			{"11 characters fails", strings.Repeat("p", 11), false},
			{"12 characters succeeds", strings.Repeat("p", 12), true},
			{"70 characters succeeds", strings.Repeat("p", 70), true},
			{"71 characters fails", strings.Repeat("p", 71), false},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				userRepo := new(mockUserRepository)
				svc := NewAuthService(userRepo, testConfig())

				userRepo.On("GetUserByUsername", mock.Anything, "bob").
					Return(nil, repository.ErrNotFound)
				if tc.wantOK {
					userRepo.On("CreateUser", mock.Anything, "bob", mock.AnythingOfType("string")).
						Return(&models.User{ID: 2, Username: "bob"}, nil)
				}

				_, err := svc.Register(ctx, "bob", tc.password)

				if tc.wantOK {
					assert.NoError(t, err)
				} else {
					ve, ok := AsValidationError(err)
					require.True(t, ok)
					assert.Contains(t, strings.Join(ve.Messages, " "), "password")
					userRepo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything, mock.Anything)
				}
			})
		}
	})

	t.Run("username rules", func(t *testing.T) {
		cases := []struct {
			name     string
			username string
			message  string
		}{
			{"too short", "ab", "at least 3"},
			{"too long", "abcdefghijk", "cannot exceed 10"},
			{"non-alphanumeric", "al_ce", "letters and numbers"},
			{"empty", "", "you must provide a username"},
			{"whitespace only", "   ", "you must provide a username"},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				userRepo := new(mockUserRepository)
				svc := NewAuthService(userRepo, testConfig())

				userRepo.On("GetUserByUsername", mock.Anything, mock.AnythingOfType("string")).
					Return(nil, repository.ErrNotFound).Maybe()

				_, err := svc.Register(ctx, tc.username, "correcthorsebattery1")

				ve, ok := AsValidationError(err)
				require.True(t, ok)
				assert.Contains(t, strings.Join(ve.Messages, " "), tc.message)
			})
		}
	})

	t.Run("duplicate username", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		svc := NewAuthService(userRepo, testConfig())

		userRepo.On("GetUserByUsername", mock.Anything, "alice").
			Return(&models.User{ID: 1, Username: "alice"}, nil)

		_, err := svc.Register(ctx, "alice", "correcthorsebattery1")

		ve, ok := AsValidationError(err)
		require.True(t, ok)
		assert.Contains(t, ve.Messages, "that username is already taken")
		userRepo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("constraint race still reports a duplicate", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		svc := NewAuthService(userRepo, testConfig())

		userRepo.On("GetUserByUsername", mock.Anything, "alice").
			Return(nil, repository.ErrNotFound)
		userRepo.On("CreateUser", mock.Anything, "alice", mock.AnythingOfType("string")).
			Return(nil, repository.ErrDuplicateUsername)

		_, err := svc.Register(ctx, "alice", "correcthorsebattery1")

		ve, ok := AsValidationError(err)
		require.True(t, ok)
		assert.Contains(t, ve.Messages, "that username is already taken")
	})

	t.Run("empty username and password report both", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		svc := NewAuthService(userRepo, testConfig())

		_, err := svc.Register(ctx, "", "")

		ve, ok := AsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, []string{
			"you must provide a username",
			"you must provide a password",
		}, ve.Messages)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	digest, err := HashPassword("correcthorsebattery1")
	require.NoError(t, err)

	t.Run("correct credentials succeed", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		svc := NewAuthService(userRepo, testConfig())

		userRepo.On("GetUserByUsername", mock.Anything, "alice").
			Return(&models.User{ID: 1, Username: "alice", PasswordHash: digest}, nil)

		user, err := svc.Login(ctx, "alice", "correcthorsebattery1")

		require.NoError(t, err)
		assert.Equal(t, int64(1), user.ID)
	})

	t.Run("unknown user gets the generic message", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		svc := NewAuthService(userRepo, testConfig())

		userRepo.On("GetUserByUsername", mock.Anything, "nobody").
			Return(nil, repository.ErrNotFound)

		_, err := svc.Login(ctx, "nobody", "correcthorsebattery1")

		ve, ok := AsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, []string{"invalid username / password."}, ve.Messages)
	})

	t.Run("wrong password gets the same generic message", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		svc := NewAuthService(userRepo, testConfig())

		userRepo.On("GetUserByUsername", mock.Anything, "alice").
			Return(&models.User{ID: 1, Username: "alice", PasswordHash: digest}, nil)

		_, err := svc.Login(ctx, "alice", "wrong-password-entirely")

		ve, ok := AsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, []string{"invalid username / password."}, ve.Messages)
	})

	t.Run("empty fields get the generic message without a lookup", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		svc := NewAuthService(userRepo, testConfig())

		_, err := svc.Login(ctx, "", "")

		ve, ok := AsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, []string{"invalid username / password."}, ve.Messages)
		userRepo.AssertNotCalled(t, "GetUserByUsername", mock.Anything, mock.Anything)
	})
}

func TestAuthService_Tokens(t *testing.T) {
	user := &models.User{ID: 42, Username: "alice"}

	t.Run("verify returns the original identity before expiry", func(t *testing.T) {
		svc := NewAuthService(new(mockUserRepository), testConfig())

		token, err := svc.IssueToken(user)
		require.NoError(t, err)

		identity, err := svc.VerifyToken(token)
		require.NoError(t, err)
		assert.Equal(t, int64(42), identity.UserID)
		assert.Equal(t, "alice", identity.Username)
	})

	t.Run("expired token is invalid", func(t *testing.T) {
		cfg := testConfig()
		cfg.SessionTTL = -time.Second
		svc := NewAuthService(new(mockUserRepository), cfg)

		token, err := svc.IssueToken(user)
		require.NoError(t, err)

		identity, err := svc.VerifyToken(token)
		assert.Error(t, err)
		assert.Nil(t, identity)
	})

	t.Run("token signed with a different secret is invalid", func(t *testing.T) {
		issuerCfg := testConfig()
		issuerCfg.JWTSecretKey = "another-secret"
		issuer := NewAuthService(new(mockUserRepository), issuerCfg)
		verifier := NewAuthService(new(mockUserRepository), testConfig())

		token, err := issuer.IssueToken(user)
		require.NoError(t, err)

		identity, err := verifier.VerifyToken(token)
		assert.Error(t, err)
		assert.Nil(t, identity)
	})

	t.Run("garbage is invalid, not a panic", func(t *testing.T) {
		svc := NewAuthService(new(mockUserRepository), testConfig())

		identity, err := svc.VerifyToken("not.a.token")
		assert.Error(t, err)
		assert.Nil(t, identity)
	})
}

func TestPasswordHasher(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		digest, err := HashPassword("correcthorsebattery1")
		require.NoError(t, err)

		assert.True(t, CheckPassword("correcthorsebattery1", digest))
		assert.False(t, CheckPassword("somethingelse", digest))
	})

	t.Run("fresh salt per digest", func(t *testing.T) {
		first, err := HashPassword("correcthorsebattery1")
		require.NoError(t, err)
		second, err := HashPassword("correcthorsebattery1")
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
	})

	t.Run("malformed digest verifies false", func(t *testing.T) {
		assert.False(t, CheckPassword("correcthorsebattery1", "not-a-bcrypt-digest"))
		assert.False(t, CheckPassword("correcthorsebattery1", ""))
	})
}
