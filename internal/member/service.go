package member

import (
	"context"
	"errors"
	"strings"
)

// Common errors
var (
	ErrMemberNotFound    = errors.New("member not found")
	ErrEmailAlreadyInUse = errors.New("email already in use")
	ErrNameRequired      = errors.New("member name is required")
	ErrEmailRequired     = errors.New("member email is required")
)

// Store is the persistence surface the service depends on
type Store interface {
	Create(ctx context.Context, req *CreateMemberRequest) (*Member, error)
	GetByID(ctx context.Context, id int64) (*Member, error)
	GetByEmail(ctx context.Context, email string) (*Member, error)
	List(ctx context.Context) ([]*Member, error)
}

// Service handles member business logic
type Service struct {
	repo Store
}

// NewService creates a new member service with repository dependency injected
func NewService(repo Store) *Service {
	return &Service{repo: repo}
}

// Create registers a new member
func (s *Service) Create(ctx context.Context, req *CreateMemberRequest) (*Member, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)

	if req.Name == "" {
		return nil, ErrNameRequired
	}
	if req.Email == "" {
		return nil, ErrEmailRequired
	}

	existing, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyInUse
	}

	return s.repo.Create(ctx, req)
}

// GetByID retrieves a member by their ID
func (s *Service) GetByID(ctx context.Context, id int64) (*Member, error) {
	member, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrMemberNotFound
	}
	return member, nil
}

// List retrieves all members
func (s *Service) List(ctx context.Context) ([]*Member, error) {
	return s.repo.List(ctx)
}
