package repository

import (
	"context"
	"ctchen222/bucketlist/internal/api/apperr"
	"ctchen222/bucketlist/internal/api/models"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("repository.bucketlist")

// BucketlistRepository defines ownership-scoped data operations over
// bucketlists and their items. Every method takes the authenticated
// user's id and never returns or touches rows owned by anyone else; a
// list that does not exist and a list owned by another user are both
// reported as apperr.ErrNotOwned.
type BucketlistRepository interface {
	Create(ctx context.Context, userID int64, name string) (*models.Bucketlist, error)
	List(ctx context.Context, userID int64, query string, limit, offset int) ([]models.Bucketlist, int64, error)
	Get(ctx context.Context, userID, listID int64) (*models.Bucketlist, error)
	Rename(ctx context.Context, userID, listID int64, name string) (*models.Bucketlist, error)
	Delete(ctx context.Context, userID, listID int64) error
	CreateItem(ctx context.Context, userID, listID int64, name string) (*models.Item, error)
	UpdateItem(ctx context.Context, userID, listID, itemID int64, name *string, done *bool) (*models.Item, error)
	DeleteItem(ctx context.Context, userID, listID, itemID int64) error
}

type sqliteBucketlistRepository struct {
	db *sqlx.DB
}

// NewBucketlistRepository creates a new SQLite-based BucketlistRepository.
func NewBucketlistRepository(db *sqlx.DB) BucketlistRepository {
	return &sqliteBucketlistRepository{db: db}
}

// Create inserts a new bucketlist owned by userID. The duplicate-name
// pre-check runs in the same transaction as the insert; the UNIQUE
// constraint on (created_by, name) remains the actual enforcement if
// two creates race.
func (r *sqliteBucketlistRepository) Create(ctx context.Context, userID int64, name string) (*models.Bucketlist, error) {
	ctx, span := tracer.Start(ctx, "BucketlistRepository.Create")
	defer span.End()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	taken, err := nameTaken(ctx, tx, userID, name, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.ErrDuplicateName
	}

	now := time.Now().UTC()
	res, err := tx.ExecContext(ctx,
		`INSERT INTO bucketlists (name, created_by, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		name, userID, now, now)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.ErrDuplicateName
		}
		return nil, fmt.Errorf("failed to create bucketlist: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read new bucketlist id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}

	return &models.Bucketlist{
		ID:        id,
		Name:      name,
		CreatedBy: userID,
		CreatedAt: now,
		UpdatedAt: now,
		Items:     []models.Item{},
	}, nil
}

// List returns one page of the user's bucketlists, newest last, with
// their items eager-loaded, plus the total count matching the filter.
// An empty query matches everything; otherwise the match is a
// case-insensitive substring match on the list name.
func (r *sqliteBucketlistRepository) List(ctx context.Context, userID int64, query string, limit, offset int) ([]models.Bucketlist, int64, error) {
	ctx, span := tracer.Start(ctx, "BucketlistRepository.List")
	defer span.End()

	where := `WHERE created_by = ?`
	args := []any{userID}
	if query != "" {
		where += ` AND name LIKE '%' || ? || '%' COLLATE NOCASE`
		args = append(args, query)
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM bucketlists `+where, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count bucketlists: %w", err)
	}

	lists := []models.Bucketlist{}
	q := `SELECT id, name, created_by, created_at, updated_at FROM bucketlists ` + where + ` ORDER BY id LIMIT ? OFFSET ?`
	if err := r.db.SelectContext(ctx, &lists, q, append(args, limit, offset)...); err != nil {
		return nil, 0, fmt.Errorf("failed to list bucketlists: %w", err)
	}

	if err := r.attachItems(ctx, lists); err != nil {
		return nil, 0, err
	}
	return lists, total, nil
}

// Get fetches a single bucketlist by id with its items, enforcing
// ownership.
func (r *sqliteBucketlistRepository) Get(ctx context.Context, userID, listID int64) (*models.Bucketlist, error) {
	ctx, span := tracer.Start(ctx, "BucketlistRepository.Get")
	defer span.End()

	list, err := ownedList(ctx, r.db, userID, listID)
	if err != nil {
		return nil, err
	}

	lists := []models.Bucketlist{*list}
	if err := r.attachItems(ctx, lists); err != nil {
		return nil, err
	}
	return &lists[0], nil
}

// Rename changes a bucketlist's name, enforcing ownership and per-owner
// name uniqueness, and touches updated_at.
func (r *sqliteBucketlistRepository) Rename(ctx context.Context, userID, listID int64, name string) (*models.Bucketlist, error) {
	ctx, span := tracer.Start(ctx, "BucketlistRepository.Rename")
	defer span.End()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	list, err := ownedList(ctx, tx, userID, listID)
	if err != nil {
		return nil, err
	}

	taken, err := nameTaken(ctx, tx, userID, name, listID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.ErrDuplicateName
	}

	now := time.Now().UTC()
	if _, err := tx.ExecContext(ctx,
		`UPDATE bucketlists SET name = ?, updated_at = ? WHERE id = ?`, name, now, listID); err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.ErrDuplicateName
		}
		return nil, fmt.Errorf("failed to rename bucketlist: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}

	list.Name = name
	list.UpdatedAt = now

	lists := []models.Bucketlist{*list}
	if err := r.attachItems(ctx, lists); err != nil {
		return nil, err
	}
	return &lists[0], nil
}

// Delete removes a bucketlist, enforcing ownership. Items go with it
// through the ON DELETE CASCADE on items.bucketlist_id.
func (r *sqliteBucketlistRepository) Delete(ctx context.Context, userID, listID int64) error {
	ctx, span := tracer.Start(ctx, "BucketlistRepository.Delete")
	defer span.End()

	res, err := r.db.ExecContext(ctx,
		`DELETE FROM bucketlists WHERE id = ? AND created_by = ?`, listID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete bucketlist: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return apperr.ErrNotOwned
	}
	return nil
}

// CreateItem inserts a new item into one of the user's bucketlists.
// Ownership of the parent list is checked first, then name uniqueness
// within the list, all inside one transaction.
func (r *sqliteBucketlistRepository) CreateItem(ctx context.Context, userID, listID int64, name string) (*models.Item, error) {
	ctx, span := tracer.Start(ctx, "BucketlistRepository.CreateItem")
	defer span.End()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := ownedList(ctx, tx, userID, listID); err != nil {
		return nil, err
	}

	taken, err := itemNameTaken(ctx, tx, listID, name, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.ErrDuplicateName
	}

	now := time.Now().UTC()
	res, err := tx.ExecContext(ctx,
		`INSERT INTO items (name, bucketlist_id, done, created_at, updated_at) VALUES (?, ?, 0, ?, ?)`,
		name, listID, now, now)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.ErrDuplicateName
		}
		return nil, fmt.Errorf("failed to create item: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read new item id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}

	return &models.Item{
		ID:           id,
		Name:         name,
		BucketlistID: listID,
		Done:         false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// UpdateItem applies a partial update to an item. A nil name or done
// leaves the stored value untouched; an explicit false for done is
// honored. Ownership of the parent list is enforced before the item is
// even looked up.
func (r *sqliteBucketlistRepository) UpdateItem(ctx context.Context, userID, listID, itemID int64, name *string, done *bool) (*models.Item, error) {
	ctx, span := tracer.Start(ctx, "BucketlistRepository.UpdateItem")
	defer span.End()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := ownedList(ctx, tx, userID, listID); err != nil {
		return nil, err
	}

	var item models.Item
	err = sqlx.GetContext(ctx, tx, &item,
		`SELECT id, name, bucketlist_id, done, created_at, updated_at FROM items WHERE id = ? AND bucketlist_id = ?`,
		itemID, listID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	if name != nil {
		taken, err := itemNameTaken(ctx, tx, listID, *name, itemID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperr.ErrDuplicateName
		}
		item.Name = *name
	}
	if done != nil {
		item.Done = *done
	}
	item.UpdatedAt = time.Now().UTC()

	if _, err := tx.ExecContext(ctx,
		`UPDATE items SET name = ?, done = ?, updated_at = ? WHERE id = ?`,
		item.Name, item.Done, item.UpdatedAt, item.ID); err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.ErrDuplicateName
		}
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}
	return &item, nil
}

// DeleteItem removes an item from one of the user's bucketlists.
func (r *sqliteBucketlistRepository) DeleteItem(ctx context.Context, userID, listID, itemID int64) error {
	ctx, span := tracer.Start(ctx, "BucketlistRepository.DeleteItem")
	defer span.End()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := ownedList(ctx, tx, userID, listID); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM items WHERE id = ? AND bucketlist_id = ?`, itemID, listID)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return apperr.ErrItemNotFound
	}

	return tx.Commit()
}

// attachItems eager-loads the items of every list in lists with a
// single query.
func (r *sqliteBucketlistRepository) attachItems(ctx context.Context, lists []models.Bucketlist) error {
	if len(lists) == 0 {
		return nil
	}

	ids := make([]int64, len(lists))
	byID := make(map[int64]*models.Bucketlist, len(lists))
	for i := range lists {
		ids[i] = lists[i].ID
		lists[i].Items = []models.Item{}
		byID[lists[i].ID] = &lists[i]
	}

	query, args, err := sqlx.In(
		`SELECT id, name, bucketlist_id, done, created_at, updated_at FROM items WHERE bucketlist_id IN (?) ORDER BY id`, ids)
	if err != nil {
		return fmt.Errorf("failed to build items query: %w", err)
	}

	var items []models.Item
	if err := r.db.SelectContext(ctx, &items, r.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("failed to load items: %w", err)
	}

	for _, item := range items {
		list := byID[item.BucketlistID]
		list.Items = append(list.Items, item)
	}
	return nil
}

// ownedList fetches a bucketlist scoped by owner. A missing list and a
// list owned by someone else are indistinguishable to the caller.
func ownedList(ctx context.Context, q sqlx.QueryerContext, userID, listID int64) (*models.Bucketlist, error) {
	var list models.Bucketlist
	err := sqlx.GetContext(ctx, q, &list,
		`SELECT id, name, created_by, created_at, updated_at FROM bucketlists WHERE id = ? AND created_by = ?`,
		listID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotOwned
		}
		return nil, fmt.Errorf("failed to get bucketlist: %w", err)
	}
	return &list, nil
}

// nameTaken reports whether the user already has another bucketlist
// with this name. excludeID skips the list being renamed.
func nameTaken(ctx context.Context, q sqlx.QueryerContext, userID int64, name string, excludeID int64) (bool, error) {
	var n int
	err := sqlx.GetContext(ctx, q, &n,
		`SELECT COUNT(*) FROM bucketlists WHERE created_by = ? AND name = ? AND id != ?`,
		userID, name, excludeID)
	if err != nil {
		return false, fmt.Errorf("failed to check bucketlist name: %w", err)
	}
	return n > 0, nil
}

// itemNameTaken reports whether the list already has another item with
// this name. excludeID skips the item being updated.
func itemNameTaken(ctx context.Context, q sqlx.QueryerContext, listID int64, name string, excludeID int64) (bool, error) {
	var n int
	err := sqlx.GetContext(ctx, q, &n,
		`SELECT COUNT(*) FROM items WHERE bucketlist_id = ? AND name = ? AND id != ?`,
		listID, name, excludeID)
	if err != nil {
		return false, fmt.Errorf("failed to check item name: %w", err)
	}
	return n > 0, nil
}
