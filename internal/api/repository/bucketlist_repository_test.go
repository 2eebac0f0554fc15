package repository

import (
	"context"
	"ctchen222/bucketlist/internal/api/apperr"
	"ctchen222/bucketlist/internal/api/models"
	"ctchen222/bucketlist/internal/db"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	pool, err := db.Connect(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { pool.Close() })
	return pool
}

func newTestUser(t *testing.T, pool *sqlx.DB, email string) int64 {
	t.Helper()
	user := &models.User{Name: "Test User", Email: email}
	require.NoError(t, NewUserRepository(pool).CreateUser(context.Background(), user, "secret1"))
	return user.ID
}

func TestBucketlistRepository_CreateDuplicatePerOwner(t *testing.T) {
	pool := newTestDB(t)
	repo := NewBucketlistRepository(pool)
	ctx := context.Background()

	userA := newTestUser(t, pool, "a@example.com")
	userB := newTestUser(t, pool, "b@example.com")

	_, err := repo.Create(ctx, userA, "Learn Go")
	require.NoError(t, err)

	// Same owner, same name: rejected.
	_, err = repo.Create(ctx, userA, "Learn Go")
	assert.ErrorIs(t, err, apperr.ErrDuplicateName)

	// Different owner, same name: uniqueness is per owner, not global.
	_, err = repo.Create(ctx, userB, "Learn Go")
	assert.NoError(t, err)
}

func TestBucketlistRepository_OwnershipDenial(t *testing.T) {
	pool := newTestDB(t)
	repo := NewBucketlistRepository(pool)
	ctx := context.Background()

	userA := newTestUser(t, pool, "a@example.com")
	userB := newTestUser(t, pool, "b@example.com")

	list, err := repo.Create(ctx, userA, "Travel")
	require.NoError(t, err)

	// An existing list owned by someone else and a missing list must be
	// indistinguishable.
	_, err = repo.Get(ctx, userB, list.ID)
	assert.ErrorIs(t, err, apperr.ErrNotOwned)
	_, err = repo.Get(ctx, userB, 9999)
	assert.ErrorIs(t, err, apperr.ErrNotOwned)

	_, err = repo.Rename(ctx, userB, list.ID, "Stolen")
	assert.ErrorIs(t, err, apperr.ErrNotOwned)
	assert.ErrorIs(t, repo.Delete(ctx, userB, list.ID), apperr.ErrNotOwned)
	_, err = repo.CreateItem(ctx, userB, list.ID, "Paris")
	assert.ErrorIs(t, err, apperr.ErrNotOwned)

	// The owner still sees it untouched.
	got, err := repo.Get(ctx, userA, list.ID)
	require.NoError(t, err)
	assert.Equal(t, "Travel", got.Name)
}

func TestBucketlistRepository_RenameChecksSiblingsOnly(t *testing.T) {
	pool := newTestDB(t)
	repo := NewBucketlistRepository(pool)
	ctx := context.Background()

	userA := newTestUser(t, pool, "a@example.com")

	first, err := repo.Create(ctx, userA, "First")
	require.NoError(t, err)
	_, err = repo.Create(ctx, userA, "Second")
	require.NoError(t, err)

	// Renaming onto a sibling's name collides.
	_, err = repo.Rename(ctx, userA, first.ID, "Second")
	assert.ErrorIs(t, err, apperr.ErrDuplicateName)

	// Renaming onto the list's own name does not.
	renamed, err := repo.Rename(ctx, userA, first.ID, "First")
	require.NoError(t, err)
	assert.Equal(t, "First", renamed.Name)
}

func TestBucketlistRepository_ItemLifecycle(t *testing.T) {
	pool := newTestDB(t)
	repo := NewBucketlistRepository(pool)
	ctx := context.Background()

	userA := newTestUser(t, pool, "a@example.com")
	list, err := repo.Create(ctx, userA, "Groceries")
	require.NoError(t, err)

	item, err := repo.CreateItem(ctx, userA, list.ID, "Milk")
	require.NoError(t, err)
	assert.False(t, item.Done)

	// Item names are unique within their list.
	_, err = repo.CreateItem(ctx, userA, list.ID, "Milk")
	assert.ErrorIs(t, err, apperr.ErrDuplicateName)

	// Marking done, then an update without done, preserves the value.
	done := true
	item, err = repo.UpdateItem(ctx, userA, list.ID, item.ID, nil, &done)
	require.NoError(t, err)
	assert.True(t, item.Done)

	newName := "Oat milk"
	item, err = repo.UpdateItem(ctx, userA, list.ID, item.ID, &newName, nil)
	require.NoError(t, err)
	assert.Equal(t, "Oat milk", item.Name)
	assert.True(t, item.Done, "omitted done must preserve the stored value")

	// An explicit false is honored.
	notDone := false
	item, err = repo.UpdateItem(ctx, userA, list.ID, item.ID, nil, &notDone)
	require.NoError(t, err)
	assert.False(t, item.Done)

	// Unknown item id inside an owned list is its own failure.
	_, err = repo.UpdateItem(ctx, userA, list.ID, 9999, nil, &done)
	assert.ErrorIs(t, err, apperr.ErrItemNotFound)

	require.NoError(t, repo.DeleteItem(ctx, userA, list.ID, item.ID))
	assert.ErrorIs(t, repo.DeleteItem(ctx, userA, list.ID, item.ID), apperr.ErrItemNotFound)
}

func TestBucketlistRepository_ItemRenameExcludesSelf(t *testing.T) {
	pool := newTestDB(t)
	repo := NewBucketlistRepository(pool)
	ctx := context.Background()

	userA := newTestUser(t, pool, "a@example.com")
	list, err := repo.Create(ctx, userA, "Groceries")
	require.NoError(t, err)

	milk, err := repo.CreateItem(ctx, userA, list.ID, "Milk")
	require.NoError(t, err)
	_, err = repo.CreateItem(ctx, userA, list.ID, "Bread")
	require.NoError(t, err)

	// Renaming onto a sibling collides, renaming onto itself does not.
	name := "Bread"
	_, err = repo.UpdateItem(ctx, userA, list.ID, milk.ID, &name, nil)
	assert.ErrorIs(t, err, apperr.ErrDuplicateName)

	name = "Milk"
	_, err = repo.UpdateItem(ctx, userA, list.ID, milk.ID, &name, nil)
	assert.NoError(t, err)
}

func TestBucketlistRepository_DeleteCascadesItems(t *testing.T) {
	pool := newTestDB(t)
	repo := NewBucketlistRepository(pool)
	ctx := context.Background()

	userA := newTestUser(t, pool, "a@example.com")
	list, err := repo.Create(ctx, userA, "Groceries")
	require.NoError(t, err)
	_, err = repo.CreateItem(ctx, userA, list.ID, "Milk")
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, userA, list.ID))

	var n int
	require.NoError(t, pool.Get(&n, `SELECT COUNT(*) FROM items WHERE bucketlist_id = ?`, list.ID))
	assert.Zero(t, n, "deleting a list must not orphan its items")
}

func TestBucketlistRepository_ListPaginationAndSearch(t *testing.T) {
	pool := newTestDB(t)
	repo := NewBucketlistRepository(pool)
	ctx := context.Background()

	userA := newTestUser(t, pool, "a@example.com")
	userB := newTestUser(t, pool, "b@example.com")

	for i := 1; i <= 3; i++ {
		list, err := repo.Create(ctx, userA, fmt.Sprintf("List %d", i))
		require.NoError(t, err)
		_, err = repo.CreateItem(ctx, userA, list.ID, "only item")
		require.NoError(t, err)
	}
	_, err := repo.Create(ctx, userB, "List 1")
	require.NoError(t, err)

	// First page of one.
	lists, total, err := repo.List(ctx, userA, "", 1, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, lists, 1)
	assert.Equal(t, "List 1", lists[0].Name)
	require.Len(t, lists[0].Items, 1, "items must be eager-loaded")

	// Case-insensitive substring search, scoped to the owner.
	lists, total, err = repo.List(ctx, userA, "list 2", 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, lists, 1)
	assert.Equal(t, "List 2", lists[0].Name)

	// No cross-user leakage.
	lists, total, err = repo.List(ctx, userB, "", 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, lists, 1)
	assert.Empty(t, lists[0].Items)
}
