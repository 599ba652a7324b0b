package item

import (
	"context"
	"errors"
	"strings"

	"lendify/internal/member"
)

// Common errors
var (
	ErrItemNotFound  = errors.New("item not found")
	ErrOwnerNotFound = errors.New("owning member not found")
	ErrTitleRequired = errors.New("item title is required")
	ErrInvalidType   = errors.New("invalid item type")
)

// Store is the persistence surface the service depends on
type Store interface {
	Create(ctx context.Context, req *CreateItemRequest) (*Item, error)
	GetByID(ctx context.Context, id int64) (*Item, error)
	List(ctx context.Context, filter ListFilter) ([]*Item, error)
	Update(ctx context.Context, id int64, req *UpdateItemRequest) (*Item, error)
}

// MemberLookup resolves owning members
type MemberLookup interface {
	GetByID(ctx context.Context, id int64) (*member.Member, error)
}

// Service handles item business logic
type Service struct {
	repo    Store
	members MemberLookup
}

// NewService creates a new item service with dependencies injected
func NewService(repo Store, members MemberLookup) *Service {
	return &Service{repo: repo, members: members}
}

// Create adds a new item to the catalog
func (s *Service) Create(ctx context.Context, req *CreateItemRequest) (*Item, error) {
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return nil, ErrTitleRequired
	}
	if !ItemType(req.Type).Valid() {
		return nil, ErrInvalidType
	}

	owner, err := s.members.GetByID(ctx, req.OwnerID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, ErrOwnerNotFound
	}

	item, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	item.OwnerName = owner.Name
	item.OwnerEmail = owner.Email
	return item, nil
}

// GetByID retrieves an item by its ID
func (s *Service) GetByID(ctx context.Context, id int64) (*Item, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}
	return item, nil
}

// List retrieves items, optionally filtered by type and availability
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Item, error) {
	if filter.Type != "" && !filter.Type.Valid() {
		return nil, ErrInvalidType
	}
	return s.repo.List(ctx, filter)
}

// Update modifies an existing item's descriptive fields
func (s *Service) Update(ctx context.Context, id int64, req *UpdateItemRequest) (*Item, error) {
	if req.Type != nil && !ItemType(*req.Type).Valid() {
		return nil, ErrInvalidType
	}

	item, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}
	return item, nil
}
