package service

import (
	"context"
	"ctchen222/bucketlist/internal/api/apperr"
	"ctchen222/bucketlist/internal/api/models"
	"ctchen222/bucketlist/internal/api/repository"
	"ctchen222/bucketlist/internal/db"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) AuthService {
	t.Helper()
	pool, err := db.Connect(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { pool.Close() })

	tokens := NewTokenService([]byte("test-secret"), time.Hour)
	return NewAuthService(repository.NewUserRepository(pool), tokens)
}

func register(t *testing.T, svc AuthService, email string) *RegisterResult {
	t.Helper()
	result, err := svc.Register(context.Background(), &models.RegisterRequest{
		Name:     "Ada",
		Email:    email,
		Password: "secret1",
	})
	require.NoError(t, err)
	return result
}

func TestAuthService_RegisterIssuesToken(t *testing.T) {
	svc := newAuthService(t)

	result := register(t, svc, "ada@x.com")
	assert.NotZero(t, result.UserID)
	assert.NotEmpty(t, result.Token)
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	svc := newAuthService(t)
	register(t, svc, "ada@x.com")

	_, err := svc.Register(context.Background(), &models.RegisterRequest{
		Name:     "Other Ada",
		Email:    "ada@x.com",
		Password: "secret2",
	})
	assert.ErrorIs(t, err, apperr.ErrEmailTaken)
}

func TestAuthService_Login(t *testing.T) {
	svc := newAuthService(t)
	register(t, svc, "ada@x.com")

	token, err := svc.Login(context.Background(), &models.LoginRequest{Email: "ada@x.com", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	// Wrong password and unknown email fail identically.
	_, err = svc.Login(context.Background(), &models.LoginRequest{Email: "ada@x.com", Password: "wrong"})
	assert.ErrorIs(t, err, apperr.ErrInvalidCredentials)
	_, err = svc.Login(context.Background(), &models.LoginRequest{Email: "nobody@x.com", Password: "secret1"})
	assert.ErrorIs(t, err, apperr.ErrInvalidCredentials)
}

func TestAuthService_EditUser(t *testing.T) {
	ctx := context.Background()

	t.Run("updates each changed field", func(t *testing.T) {
		svc := newAuthService(t)
		result := register(t, svc, "ada@x.com")

		messages, err := svc.EditUser(ctx, result.UserID, &models.EditUserRequest{
			Name:        "Ada Lovelace",
			Email:       "lovelace@x.com",
			Password:    "newsecret",
			OldPassword: "secret1",
		})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"name_update_success", "email_update_success", "password_update_success"}, messages)

		// The new credentials work, the old ones do not.
		_, err = svc.Login(ctx, &models.LoginRequest{Email: "lovelace@x.com", Password: "newsecret"})
		assert.NoError(t, err)
		_, err = svc.Login(ctx, &models.LoginRequest{Email: "ada@x.com", Password: "secret1"})
		assert.ErrorIs(t, err, apperr.ErrInvalidCredentials)
	})

	t.Run("password change requires matching old password", func(t *testing.T) {
		svc := newAuthService(t)
		result := register(t, svc, "ada@x.com")

		_, err := svc.EditUser(ctx, result.UserID, &models.EditUserRequest{
			Password:    "newsecret",
			OldPassword: "wrong",
		})
		assert.ErrorIs(t, err, apperr.ErrWrongPassword)
	})

	t.Run("empty edit reports no changes", func(t *testing.T) {
		svc := newAuthService(t)
		result := register(t, svc, "ada@x.com")

		_, err := svc.EditUser(ctx, result.UserID, &models.EditUserRequest{})
		assert.ErrorIs(t, err, apperr.ErrNoChanges)

		// Resubmitting the current values is also no change.
		_, err = svc.EditUser(ctx, result.UserID, &models.EditUserRequest{Name: "Ada", Email: "ada@x.com"})
		assert.ErrorIs(t, err, apperr.ErrNoChanges)
	})
}
