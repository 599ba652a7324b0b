package dashboard

import (
	"context"
	"sort"
	"time"

	"lendify/internal/item"
	"lendify/internal/loan"
	"lendify/internal/member"
)

// rankingLimit caps the dashboard rankings
const rankingLimit = 5

// unknownLabel substitutes for loan references that no longer resolve; a
// dangling reference degrades one row instead of failing the whole report.
const unknownLabel = "Unknown"

// LoanSource reads loans
type LoanSource interface {
	Query(ctx context.Context, filter loan.Filter) ([]*loan.Loan, error)
}

// ItemSource reads catalog items
type ItemSource interface {
	List(ctx context.Context, filter item.ListFilter) ([]*item.Item, error)
}

// MemberSource reads members
type MemberSource interface {
	List(ctx context.Context) ([]*member.Member, error)
}

// Service computes dashboard statistics, rankings and filtered history
// views. It is strictly read-only: nothing here mutates any store. Every
// operation captures a single instant and classifies the whole result set
// against it.
type Service struct {
	loans   LoanSource
	items   ItemSource
	members MemberSource
	now     func() time.Time
}

// NewService creates a new dashboard service with dependencies injected
func NewService(loans LoanSource, items ItemSource, members MemberSource) *Service {
	return &Service{
		loans:   loans,
		items:   items,
		members: members,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Overdue returns all currently overdue loans, most recently borrowed first
func (s *Service) Overdue(ctx context.Context) ([]*loan.LoanResponse, error) {
	now := s.now()

	active, err := s.loans.Query(ctx, loan.Filter{Status: loan.StatusActive})
	if err != nil {
		return nil, err
	}

	overdue := make([]*loan.LoanResponse, 0, len(active))
	for _, l := range active {
		if loan.Classify(l, now) == loan.StatusOverdue {
			overdue = append(overdue, l.ToResponse(now))
		}
	}
	return overdue, nil
}

// Notifications returns the overdue loans together with a flag clients use
// to raise an alert
func (s *Service) Notifications(ctx context.Context) (*NotificationsResponse, error) {
	overdue, err := s.Overdue(ctx)
	if err != nil {
		return nil, err
	}
	return &NotificationsResponse{
		Items:      overdue,
		HasOverdue: len(overdue) > 0,
	}, nil
}

// Stats computes the full dashboard statistics from one snapshot of the
// loan, item and member sets. Loans are joined to items and members in
// memory via lookup maps; rankings are ordered by count descending with
// identifier ascending as tie-break so equal data always yields equal
// output.
func (s *Service) Stats(ctx context.Context) (*StatsResponse, error) {
	now := s.now()

	loans, err := s.loans.Query(ctx, loan.Filter{})
	if err != nil {
		return nil, err
	}
	items, err := s.items.List(ctx, item.ListFilter{})
	if err != nil {
		return nil, err
	}
	members, err := s.members.List(ctx)
	if err != nil {
		return nil, err
	}

	itemsByID := make(map[int64]*item.Item, len(items))
	for _, it := range items {
		itemsByID[it.ID] = it
	}
	membersByID := make(map[int64]*member.Member, len(members))
	for _, m := range members {
		membersByID[m.ID] = m
	}

	return &StatsResponse{
		Overall:              overallStats(loans, len(items), len(members), now),
		MostBorrowedItems:    rankItems(loans, itemsByID),
		BorrowCountsByMember: rankMembers(loans, membersByID),
		LoansByType:          countByType(loans, itemsByID),
	}, nil
}

// CurrentBorrows returns active loans, optionally restricted to those
// borrowed within the given range
func (s *Service) CurrentBorrows(ctx context.Context, from, to *time.Time) ([]*loan.LoanResponse, error) {
	now := s.now()

	if from != nil && to != nil && to.Before(*from) {
		return nil, loan.ErrInvalidDateRange
	}

	active, err := s.loans.Query(ctx, loan.Filter{Status: loan.StatusActive, From: from, To: to})
	if err != nil {
		return nil, err
	}

	responses := make([]*loan.LoanResponse, len(active))
	for i, l := range active {
		responses[i] = l.ToResponse(now)
	}
	return responses, nil
}

// History returns the full matching loan history, most recently borrowed
// first. Status accepts the stored values plus the derived "overdue".
func (s *Service) History(ctx context.Context, from, to *time.Time, status string) ([]*loan.LoanResponse, error) {
	now := s.now()

	if from != nil && to != nil && to.Before(*from) {
		return nil, loan.ErrInvalidDateRange
	}

	filter := loan.Filter{From: from, To: to}
	overdueOnly := false

	switch loan.LoanStatus(status) {
	case "":
	case loan.StatusActive, loan.StatusReturned:
		filter.Status = loan.LoanStatus(status)
	case loan.StatusOverdue:
		filter.Status = loan.StatusActive
		overdueOnly = true
	default:
		return nil, loan.ErrInvalidStatus
	}

	loans, err := s.loans.Query(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]*loan.LoanResponse, 0, len(loans))
	for _, l := range loans {
		if overdueOnly && loan.Classify(l, now) != loan.StatusOverdue {
			continue
		}
		responses = append(responses, l.ToResponse(now))
	}
	return responses, nil
}

func overallStats(loans []*loan.Loan, totalItems, totalMembers int, now time.Time) OverallStats {
	stats := OverallStats{
		TotalMembers: totalMembers,
		TotalItems:   totalItems,
		TotalLoans:   len(loans),
	}

	borrowedItems := make(map[int64]struct{})
	for _, l := range loans {
		switch loan.Classify(l, now) {
		case loan.StatusReturned:
			stats.ReturnedLoans++
		case loan.StatusOverdue:
			stats.ActiveLoans++
			stats.OverdueLoans++
			borrowedItems[l.ItemID] = struct{}{}
		default:
			stats.ActiveLoans++
			borrowedItems[l.ItemID] = struct{}{}
		}
	}

	stats.BorrowedItems = len(borrowedItems)
	stats.AvailableItems = stats.TotalItems - stats.BorrowedItems
	return stats
}

func rankItems(loans []*loan.Loan, itemsByID map[int64]*item.Item) []*ItemRanking {
	byItem := make(map[int64]*ItemRanking)
	for _, l := range loans {
		row, ok := byItem[l.ItemID]
		if !ok {
			row = &ItemRanking{ItemID: l.ItemID, Title: unknownLabel}
			if it, found := itemsByID[l.ItemID]; found {
				row.Title = it.Title
				row.Type = string(it.Type)
			}
			byItem[l.ItemID] = row
		}
		row.BorrowCount++
		if l.Status == loan.StatusActive {
			row.ActiveBorrows++
		}
	}

	rankings := make([]*ItemRanking, 0, len(byItem))
	for _, row := range byItem {
		rankings = append(rankings, row)
	}
	sort.Slice(rankings, func(i, j int) bool {
		if rankings[i].BorrowCount != rankings[j].BorrowCount {
			return rankings[i].BorrowCount > rankings[j].BorrowCount
		}
		return rankings[i].ItemID < rankings[j].ItemID
	})

	if len(rankings) > rankingLimit {
		rankings = rankings[:rankingLimit]
	}
	return rankings
}

func rankMembers(loans []*loan.Loan, membersByID map[int64]*member.Member) []*MemberRanking {
	byMember := make(map[int64]*MemberRanking)
	for _, l := range loans {
		row, ok := byMember[l.BorrowerID]
		if !ok {
			row = &MemberRanking{MemberID: l.BorrowerID, Name: unknownLabel}
			if m, found := membersByID[l.BorrowerID]; found {
				row.Name = m.Name
				row.Email = m.Email
			}
			byMember[l.BorrowerID] = row
		}
		row.BorrowCount++
		if l.Status == loan.StatusActive {
			row.ActiveBorrows++
		} else {
			row.ReturnedCount++
		}
	}

	rankings := make([]*MemberRanking, 0, len(byMember))
	for _, row := range byMember {
		rankings = append(rankings, row)
	}
	sort.Slice(rankings, func(i, j int) bool {
		if rankings[i].BorrowCount != rankings[j].BorrowCount {
			return rankings[i].BorrowCount > rankings[j].BorrowCount
		}
		return rankings[i].MemberID < rankings[j].MemberID
	})

	if len(rankings) > rankingLimit {
		rankings = rankings[:rankingLimit]
	}
	return rankings
}

func countByType(loans []*loan.Loan, itemsByID map[int64]*item.Item) []*TypeCount {
	counts := make(map[string]int)
	for _, l := range loans {
		itemType := "unknown"
		if it, found := itemsByID[l.ItemID]; found {
			itemType = string(it.Type)
		}
		counts[itemType]++
	}

	result := make([]*TypeCount, 0, len(counts))
	for itemType, count := range counts {
		result = append(result, &TypeCount{Type: itemType, Count: count})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Type < result[j].Type
	})
	return result
}
