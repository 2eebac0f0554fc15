package repository

import (
	"context"
	"ctchen222/bucketlist/internal/api/apperr"
	"ctchen222/bucketlist/internal/api/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestUserRepository_CreateAndFetch(t *testing.T) {
	pool := newTestDB(t)
	repo := NewUserRepository(pool)
	ctx := context.Background()

	user := &models.User{Name: "Ada", Email: "ada@x.com"}
	require.NoError(t, repo.CreateUser(ctx, user, "secret1"))
	assert.NotZero(t, user.ID)
	assert.NotEqual(t, "secret1", user.PasswordHash, "password must never be stored in plaintext")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret1")))

	byEmail, err := repo.GetUserByEmail(ctx, "ada@x.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, user.ID, byEmail.ID)

	byID, err := repo.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "ada@x.com", byID.Email)

	missing, err := repo.GetUserByEmail(ctx, "nobody@x.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	pool := newTestDB(t)
	repo := NewUserRepository(pool)
	ctx := context.Background()

	require.NoError(t, repo.CreateUser(ctx, &models.User{Name: "Ada", Email: "ada@x.com"}, "secret1"))

	err := repo.CreateUser(ctx, &models.User{Name: "Imposter", Email: "ada@x.com"}, "secret2")
	assert.ErrorIs(t, err, apperr.ErrEmailTaken)
}

func TestUserRepository_UpdateEmailCollision(t *testing.T) {
	pool := newTestDB(t)
	repo := NewUserRepository(pool)
	ctx := context.Background()

	ada := &models.User{Name: "Ada", Email: "ada@x.com"}
	require.NoError(t, repo.CreateUser(ctx, ada, "secret1"))
	bob := &models.User{Name: "Bob", Email: "bob@x.com"}
	require.NoError(t, repo.CreateUser(ctx, bob, "secret1"))

	bob.Email = "ada@x.com"
	assert.ErrorIs(t, repo.UpdateUser(ctx, bob), apperr.ErrEmailTaken)
}
