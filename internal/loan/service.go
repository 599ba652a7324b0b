package loan

import (
	"context"
	"errors"
	"time"

	"lendify/internal/item"
	"lendify/internal/member"
)

// Common errors
var (
	ErrLoanNotFound     = errors.New("loan not found")
	ErrItemNotFound     = errors.New("item not found")
	ErrMemberNotFound   = errors.New("member not found")
	ErrItemUnavailable  = errors.New("item is currently borrowed")
	ErrAlreadyReturned  = errors.New("loan has already been returned")
	ErrInvalidDueDate   = errors.New("due date must be in the future")
	ErrInvalidStatus    = errors.New("invalid status filter")
	ErrInvalidDateRange = errors.New("end date must not be before start date")
)

// Store is the loan persistence surface the service depends on
type Store interface {
	Insert(ctx context.Context, itemID, borrowerID int64, dueDate time.Time) (*Loan, error)
	GetByID(ctx context.Context, id int64) (*Loan, error)
	MarkReturned(ctx context.Context, id int64, returnedAt time.Time) (*Loan, error)
	Query(ctx context.Context, filter Filter) ([]*Loan, error)
}

// ItemRegistry resolves catalog items
type ItemRegistry interface {
	GetByID(ctx context.Context, id int64) (*item.Item, error)
	List(ctx context.Context, filter item.ListFilter) ([]*item.Item, error)
}

// MemberRegistry resolves members
type MemberRegistry interface {
	GetByID(ctx context.Context, id int64) (*member.Member, error)
}

// ListQuery narrows a loan listing. Unlike Filter it also accepts the
// derived status "overdue".
type ListQuery struct {
	Status   string
	MemberID int64
	From     *time.Time
	To       *time.Time
}

// Service enforces the loan lifecycle: borrow/return legality, the
// single-active-loan-per-item rule and due date validity
type Service struct {
	repo    Store
	items   ItemRegistry
	members MemberRegistry
	now     func() time.Time
}

// NewService creates a new loan service with dependencies injected
func NewService(repo Store, items ItemRegistry, members MemberRegistry) *Service {
	return &Service{
		repo:    repo,
		items:   items,
		members: members,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Borrow creates an active loan for an available item. The availability
// pre-check gives a friendly error, but correctness rests on the insert
// itself: the store rejects a second active loan for the same item, so a
// concurrent borrow race has exactly one winner.
func (s *Service) Borrow(ctx context.Context, itemID, borrowerID int64, dueDate time.Time) (*Loan, error) {
	now := s.now()

	if !dueDate.After(now) {
		return nil, ErrInvalidDueDate
	}

	it, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, ErrItemNotFound
	}

	borrower, err := s.members.GetByID(ctx, borrowerID)
	if err != nil {
		return nil, err
	}
	if borrower == nil {
		return nil, ErrMemberNotFound
	}

	if !it.Available {
		return nil, ErrItemUnavailable
	}

	return s.repo.Insert(ctx, itemID, borrowerID, dueDate)
}

// Return closes an active loan. Returning an already-returned loan is an
// explicit error rather than a no-op so caller misuse surfaces.
func (s *Service) Return(ctx context.Context, loanID int64) (*Loan, error) {
	existing, err := s.repo.GetByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrLoanNotFound
	}
	if existing.Status == StatusReturned {
		return nil, ErrAlreadyReturned
	}

	updated, err := s.repo.MarkReturned(ctx, loanID, s.now())
	if err != nil {
		return nil, err
	}
	if updated == nil {
		// Lost a race against another return.
		return nil, ErrAlreadyReturned
	}

	return updated, nil
}

// GetByID retrieves a single loan with item and borrower details
func (s *Service) GetByID(ctx context.Context, id int64) (*Loan, error) {
	loan, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if loan == nil {
		return nil, ErrLoanNotFound
	}
	return loan, nil
}

// List retrieves loans matching the query. All filters combine
// conjunctively; the overdue status selects the subset of active loans
// whose due date has passed.
func (s *Service) List(ctx context.Context, q ListQuery) ([]*Loan, time.Time, error) {
	now := s.now()

	filter, overdueOnly, err := resolveQuery(q)
	if err != nil {
		return nil, now, err
	}

	loans, err := s.repo.Query(ctx, filter)
	if err != nil {
		return nil, now, err
	}

	if overdueOnly {
		loans = filterOverdue(loans, now)
	}

	return loans, now, nil
}

// AvailableItems returns all items with no active loan, with owner details
func (s *Service) AvailableItems(ctx context.Context) ([]*item.Item, error) {
	available := true
	return s.items.List(ctx, item.ListFilter{Available: &available})
}

// BorrowedByMember returns the active loans held by one member
func (s *Service) BorrowedByMember(ctx context.Context, memberID int64) ([]*Loan, time.Time, error) {
	now := s.now()

	borrower, err := s.members.GetByID(ctx, memberID)
	if err != nil {
		return nil, now, err
	}
	if borrower == nil {
		return nil, now, ErrMemberNotFound
	}

	loans, err := s.repo.Query(ctx, Filter{Status: StatusActive, BorrowerID: memberID})
	if err != nil {
		return nil, now, err
	}

	return loans, now, nil
}

// Now reports the service clock, so handlers classify responses against
// the same instant the service used.
func (s *Service) Now() time.Time {
	return s.now()
}

// resolveQuery validates a ListQuery and translates it to a stored-status
// filter, reporting whether a derived overdue pass is still needed.
func resolveQuery(q ListQuery) (Filter, bool, error) {
	filter := Filter{
		BorrowerID: q.MemberID,
		From:       q.From,
		To:         q.To,
	}

	if q.From != nil && q.To != nil && q.To.Before(*q.From) {
		return Filter{}, false, ErrInvalidDateRange
	}

	switch LoanStatus(q.Status) {
	case "":
	case StatusActive, StatusReturned:
		filter.Status = LoanStatus(q.Status)
	case StatusOverdue:
		filter.Status = StatusActive
		return filter, true, nil
	default:
		return Filter{}, false, ErrInvalidStatus
	}

	return filter, false, nil
}

func filterOverdue(loans []*Loan, now time.Time) []*Loan {
	overdue := make([]*Loan, 0, len(loans))
	for _, l := range loans {
		if Classify(l, now) == StatusOverdue {
			overdue = append(overdue, l)
		}
	}
	return overdue
}
