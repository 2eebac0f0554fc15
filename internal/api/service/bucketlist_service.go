package service

import (
	"context"
	"ctchen222/bucketlist/internal/api/apperr"
	"ctchen222/bucketlist/internal/api/models"
	"ctchen222/bucketlist/internal/api/repository"
	"strings"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// ListResult is one page of a user's bucketlists.
type ListResult struct {
	Bucketlists []models.Bucketlist
	Pagination  models.Pagination
}

// BucketlistService holds the business rules above the repository:
// name trimming and validation, limit capping and page arithmetic.
// Ownership itself is enforced one layer down.
type BucketlistService interface {
	Create(ctx context.Context, userID int64, name string) (*models.Bucketlist, error)
	List(ctx context.Context, userID int64, q models.ListQuery) (*ListResult, error)
	Get(ctx context.Context, userID, listID int64) (*models.Bucketlist, error)
	Rename(ctx context.Context, userID, listID int64, name string) (*models.Bucketlist, error)
	Delete(ctx context.Context, userID, listID int64) error
	CreateItem(ctx context.Context, userID, listID int64, name string) (*models.Item, error)
	UpdateItem(ctx context.Context, userID, listID, itemID int64, req *models.UpdateItemRequest) (*models.Item, error)
	DeleteItem(ctx context.Context, userID, listID, itemID int64) error
}

type bucketlistService struct {
	repo repository.BucketlistRepository
}

// NewBucketlistService creates a new BucketlistService.
func NewBucketlistService(repo repository.BucketlistRepository) BucketlistService {
	return &bucketlistService{repo: repo}
}

func (s *bucketlistService) Create(ctx context.Context, userID int64, name string) (*models.Bucketlist, error) {
	name, err := cleanName(name)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, userID, name)
}

func (s *bucketlistService) List(ctx context.Context, userID int64, q models.ListQuery) (*ListResult, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	page := q.Page
	if page <= 0 {
		page = 1
	}

	lists, total, err := s.repo.List(ctx, userID, strings.TrimSpace(q.Q), limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	pagination := models.Pagination{
		Page:  page,
		Limit: limit,
		Total: total,
	}
	if int64(page*limit) < total {
		next := page + 1
		pagination.NextPage = &next
	}

	return &ListResult{Bucketlists: lists, Pagination: pagination}, nil
}

func (s *bucketlistService) Get(ctx context.Context, userID, listID int64) (*models.Bucketlist, error) {
	return s.repo.Get(ctx, userID, listID)
}

func (s *bucketlistService) Rename(ctx context.Context, userID, listID int64, name string) (*models.Bucketlist, error) {
	name, err := cleanName(name)
	if err != nil {
		return nil, err
	}
	return s.repo.Rename(ctx, userID, listID, name)
}

func (s *bucketlistService) Delete(ctx context.Context, userID, listID int64) error {
	return s.repo.Delete(ctx, userID, listID)
}

func (s *bucketlistService) CreateItem(ctx context.Context, userID, listID int64, name string) (*models.Item, error) {
	name, err := cleanName(name)
	if err != nil {
		return nil, err
	}
	return s.repo.CreateItem(ctx, userID, listID, name)
}

func (s *bucketlistService) UpdateItem(ctx context.Context, userID, listID, itemID int64, req *models.UpdateItemRequest) (*models.Item, error) {
	name := req.Name
	if name != nil {
		cleaned, err := cleanName(*name)
		if err != nil {
			return nil, err
		}
		name = &cleaned
	}
	return s.repo.UpdateItem(ctx, userID, listID, itemID, name, req.Done)
}

func (s *bucketlistService) DeleteItem(ctx context.Context, userID, listID, itemID int64) error {
	return s.repo.DeleteItem(ctx, userID, listID, itemID)
}

// cleanName trims the name and rejects it if nothing remains.
func cleanName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperr.ErrEmptyName
	}
	return name, nil
}
