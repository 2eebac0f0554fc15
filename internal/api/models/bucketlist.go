package models

import "time"

// Bucketlist is a named, user-owned collection of items. Items are
// always loaded together with their list.
type Bucketlist struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedBy int64     `db:"created_by" json:"created_by"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
	Items     []Item    `json:"items"`
}

// Item is a completable unit belonging to exactly one bucketlist.
// Ownership is derived from the parent list, not stored on the item.
type Item struct {
	ID           int64     `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	BucketlistID int64     `db:"bucketlist_id" json:"bucketlist_id"`
	Done         bool      `db:"done" json:"done"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// CreateBucketlistRequest names a new bucketlist.
type CreateBucketlistRequest struct {
	Name string `json:"name" binding:"required,notblank"`
}

// UpdateBucketlistRequest renames an existing bucketlist.
type UpdateBucketlistRequest struct {
	Name string `json:"name" binding:"required,notblank"`
}

// CreateItemRequest names a new item inside a bucketlist.
type CreateItemRequest struct {
	Name string `json:"name" binding:"required,notblank"`
}

// UpdateItemRequest carries a partial item update. Both fields are
// pointers: an omitted field preserves the stored value, while an
// explicit false for done is honored.
type UpdateItemRequest struct {
	Name *string `json:"name" binding:"omitempty,notblank"`
	Done *bool   `json:"done"`
}

// ListQuery captures the query string of GET /bucketlists/.
type ListQuery struct {
	Q     string `form:"q"`
	Limit int    `form:"limit"`
	Page  int    `form:"page"`
}

// Pagination describes the page of results returned by a list query.
// NextPage is nil on the last page.
type Pagination struct {
	Page     int   `json:"page"`
	Limit    int   `json:"limit"`
	Total    int64 `json:"total"`
	NextPage *int  `json:"next_page"`
}
