package dashboard

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lendify/internal/item"
	"lendify/internal/loan"
	"lendify/internal/member"
)

type fakeLoans struct {
	loans []*loan.Loan
}

func (f *fakeLoans) Query(_ context.Context, filter loan.Filter) ([]*loan.Loan, error) {
	var matched []*loan.Loan
	for _, l := range f.loans {
		if filter.Status != "" && l.Status != filter.Status {
			continue
		}
		if filter.BorrowerID != 0 && l.BorrowerID != filter.BorrowerID {
			continue
		}
		if filter.From != nil && l.BorrowDate.Before(*filter.From) {
			continue
		}
		if filter.To != nil && l.BorrowDate.After(*filter.To) {
			continue
		}
		matched = append(matched, l)
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].BorrowDate.Equal(matched[j].BorrowDate) {
			return matched[i].BorrowDate.After(matched[j].BorrowDate)
		}
		return matched[i].ID > matched[j].ID
	})
	return matched, nil
}

type fakeItems struct {
	items []*item.Item
}

func (f *fakeItems) List(_ context.Context, _ item.ListFilter) ([]*item.Item, error) {
	return f.items, nil
}

type fakeMembers struct {
	members []*member.Member
}

func (f *fakeMembers) List(_ context.Context) ([]*member.Member, error) {
	return f.members, nil
}

var testNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func day(offset int) time.Time {
	return testNow.AddDate(0, 0, offset)
}

func activeLoan(id, itemID, borrowerID int64, borrowed, due time.Time) *loan.Loan {
	return &loan.Loan{
		ID:         id,
		ItemID:     itemID,
		BorrowerID: borrowerID,
		BorrowDate: borrowed,
		DueDate:    due,
		Status:     loan.StatusActive,
	}
}

func returnedLoan(id, itemID, borrowerID int64, borrowed, due time.Time) *loan.Loan {
	returnDate := due.Add(-time.Hour)
	l := activeLoan(id, itemID, borrowerID, borrowed, due)
	l.Status = loan.StatusReturned
	l.ReturnDate = &returnDate
	return l
}

// newFixture builds a service over three members, three items and six
// loans: item 1 has three loans (one active), item 2 has two (one active
// and overdue), item 3 has one active loan referencing a deleted member.
func newFixture(t *testing.T) *Service {
	t.Helper()

	loans := &fakeLoans{loans: []*loan.Loan{
		returnedLoan(1, 1, 1, day(-30), day(-20)),
		returnedLoan(2, 1, 2, day(-18), day(-10)),
		activeLoan(3, 1, 1, day(-5), day(10)),
		returnedLoan(4, 2, 1, day(-25), day(-15)),
		activeLoan(5, 2, 2, day(-9), day(-2)), // overdue
		activeLoan(6, 3, 99, day(-1), day(6)), // borrower no longer resolvable
	}}
	items := &fakeItems{items: []*item.Item{
		{ID: 1, Title: "Cordless Drill", Type: item.TypeTool, OwnerID: 1},
		{ID: 2, Title: "Camping Tent", Type: item.TypeOther, OwnerID: 2},
		{ID: 3, Title: "Projector", Type: item.TypeElectronics, OwnerID: 3},
	}}
	members := &fakeMembers{members: []*member.Member{
		{ID: 1, Name: "Alice", Email: "alice@example.com"},
		{ID: 2, Name: "Bob", Email: "bob@example.com"},
		{ID: 3, Name: "Carol", Email: "carol@example.com"},
	}}

	service := NewService(loans, items, members)
	service.now = func() time.Time { return testNow }
	return service
}

func Test_Stats_Overall(t *testing.T) {
	service := newFixture(t)

	stats, err := service.Stats(context.Background())
	require.NoError(t, err)

	overall := stats.Overall
	assert.Equal(t, 3, overall.TotalMembers)
	assert.Equal(t, 3, overall.TotalItems)
	assert.Equal(t, 6, overall.TotalLoans)
	assert.Equal(t, 3, overall.ActiveLoans)
	assert.Equal(t, 3, overall.ReturnedLoans)
	assert.Equal(t, 1, overall.OverdueLoans)
	assert.Equal(t, 0, overall.AvailableItems)
	assert.Equal(t, 3, overall.BorrowedItems)

	// Snapshot invariants.
	assert.Equal(t, overall.TotalItems, overall.AvailableItems+overall.BorrowedItems)
	assert.Equal(t, overall.TotalLoans, overall.ActiveLoans+overall.ReturnedLoans)
	assert.LessOrEqual(t, overall.OverdueLoans, overall.ActiveLoans)
}

func Test_Stats_MostBorrowedItems(t *testing.T) {
	service := newFixture(t)

	stats, err := service.Stats(context.Background())
	require.NoError(t, err)

	rankings := stats.MostBorrowedItems
	require.Len(t, rankings, 3)

	assert.Equal(t, int64(1), rankings[0].ItemID)
	assert.Equal(t, "Cordless Drill", rankings[0].Title)
	assert.Equal(t, 3, rankings[0].BorrowCount)
	assert.Equal(t, 1, rankings[0].ActiveBorrows)

	assert.Equal(t, int64(2), rankings[1].ItemID)
	assert.Equal(t, 2, rankings[1].BorrowCount)

	assert.Equal(t, int64(3), rankings[2].ItemID)
	assert.Equal(t, 1, rankings[2].BorrowCount)
}

func Test_Stats_TopBorrowers(t *testing.T) {
	service := newFixture(t)

	stats, err := service.Stats(context.Background())
	require.NoError(t, err)

	rankings := stats.BorrowCountsByMember
	require.Len(t, rankings, 3)

	assert.Equal(t, int64(1), rankings[0].MemberID)
	assert.Equal(t, "Alice", rankings[0].Name)
	assert.Equal(t, 3, rankings[0].BorrowCount)
	assert.Equal(t, 1, rankings[0].ActiveBorrows)
	assert.Equal(t, 2, rankings[0].ReturnedCount)

	assert.Equal(t, int64(2), rankings[1].MemberID)
	assert.Equal(t, 2, rankings[1].BorrowCount)

	// The dangling borrower still ranks, with a placeholder name.
	assert.Equal(t, int64(99), rankings[2].MemberID)
	assert.Equal(t, "Unknown", rankings[2].Name)
}

func Test_Stats_RankingTieBreak(t *testing.T) {
	loans := &fakeLoans{loans: []*loan.Loan{
		activeLoan(1, 7, 2, day(-3), day(5)),
		returnedLoan(2, 4, 1, day(-6), day(-1)),
	}}
	items := &fakeItems{items: []*item.Item{
		{ID: 4, Title: "B", Type: item.TypeBook, OwnerID: 1},
		{ID: 7, Title: "A", Type: item.TypeBook, OwnerID: 1},
	}}
	members := &fakeMembers{members: []*member.Member{
		{ID: 1, Name: "Alice"},
		{ID: 2, Name: "Bob"},
	}}

	service := NewService(loans, items, members)
	service.now = func() time.Time { return testNow }

	first, err := service.Stats(context.Background())
	require.NoError(t, err)

	// Equal counts break ties by identifier ascending.
	require.Len(t, first.MostBorrowedItems, 2)
	assert.Equal(t, int64(4), first.MostBorrowedItems[0].ItemID)
	assert.Equal(t, int64(7), first.MostBorrowedItems[1].ItemID)
	require.Len(t, first.BorrowCountsByMember, 2)
	assert.Equal(t, int64(1), first.BorrowCountsByMember[0].MemberID)

	// Repeated runs over unchanged data yield identical ordering.
	second, err := service.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first.MostBorrowedItems, second.MostBorrowedItems)
	assert.Equal(t, first.BorrowCountsByMember, second.BorrowCountsByMember)
}

func Test_Stats_RankingLimit(t *testing.T) {
	loans := &fakeLoans{}
	items := &fakeItems{}
	for i := int64(1); i <= 8; i++ {
		items.items = append(items.items, &item.Item{ID: i, Title: "Item", Type: item.TypeOther, OwnerID: 1})
		loans.loans = append(loans.loans, activeLoan(i, i, i, day(-2), day(5)))
	}
	members := &fakeMembers{}

	service := NewService(loans, items, members)
	service.now = func() time.Time { return testNow }

	stats, err := service.Stats(context.Background())
	require.NoError(t, err)

	assert.Len(t, stats.MostBorrowedItems, 5)
	assert.Len(t, stats.BorrowCountsByMember, 5)
}

func Test_Stats_LoansByType(t *testing.T) {
	service := newFixture(t)

	stats, err := service.Stats(context.Background())
	require.NoError(t, err)

	require.Len(t, stats.LoansByType, 3)
	assert.Equal(t, &TypeCount{Type: "electronics", Count: 1}, stats.LoansByType[0])
	assert.Equal(t, &TypeCount{Type: "other", Count: 2}, stats.LoansByType[1])
	assert.Equal(t, &TypeCount{Type: "tool", Count: 3}, stats.LoansByType[2])
}

func Test_Notifications(t *testing.T) {
	t.Run("reports overdue loans with day counts", func(t *testing.T) {
		service := newFixture(t)

		notifications, err := service.Notifications(context.Background())
		require.NoError(t, err)

		assert.True(t, notifications.HasOverdue)
		require.Len(t, notifications.Items, 1)
		assert.Equal(t, int64(5), notifications.Items[0].ID)
		assert.True(t, notifications.Items[0].Overdue)
		assert.Equal(t, 2, notifications.Items[0].DaysOverdue)
	})

	t.Run("no overdue loans yields an empty alert", func(t *testing.T) {
		service := NewService(&fakeLoans{}, &fakeItems{}, &fakeMembers{})
		service.now = func() time.Time { return testNow }

		notifications, err := service.Notifications(context.Background())
		require.NoError(t, err)

		assert.False(t, notifications.HasOverdue)
		assert.Empty(t, notifications.Items)
	})
}

func Test_CurrentBorrows(t *testing.T) {
	ctx := context.Background()

	t.Run("returns all active loans with overdue flags", func(t *testing.T) {
		service := newFixture(t)

		borrows, err := service.CurrentBorrows(ctx, nil, nil)
		require.NoError(t, err)
		require.Len(t, borrows, 3)

		overdueByID := map[int64]bool{}
		for _, b := range borrows {
			overdueByID[b.ID] = b.Overdue
		}
		assert.False(t, overdueByID[3])
		assert.True(t, overdueByID[5])
		assert.False(t, overdueByID[6])
	})

	t.Run("window restricts by borrow date", func(t *testing.T) {
		service := newFixture(t)
		from := day(-6)
		to := day(-1)

		borrows, err := service.CurrentBorrows(ctx, &from, &to)
		require.NoError(t, err)
		require.Len(t, borrows, 2)
		assert.Equal(t, int64(6), borrows[0].ID)
		assert.Equal(t, int64(3), borrows[1].ID)
	})

	t.Run("rejects inverted range", func(t *testing.T) {
		service := newFixture(t)
		from := day(0)
		to := day(-3)

		_, err := service.CurrentBorrows(ctx, &from, &to)
		assert.ErrorIs(t, err, loan.ErrInvalidDateRange)
	})
}

func Test_History(t *testing.T) {
	ctx := context.Background()

	t.Run("returns everything most recent first", func(t *testing.T) {
		service := newFixture(t)

		history, err := service.History(ctx, nil, nil, "")
		require.NoError(t, err)
		require.Len(t, history, 6)

		assert.Equal(t, int64(6), history[0].ID)
		assert.Equal(t, int64(1), history[5].ID)
	})

	t.Run("overdue filter selects late active loans only", func(t *testing.T) {
		service := newFixture(t)

		history, err := service.History(ctx, nil, nil, "overdue")
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Equal(t, int64(5), history[0].ID)
	})

	t.Run("returned filter with window combines conjunctively", func(t *testing.T) {
		service := newFixture(t)
		from := day(-26)
		to := day(-17)

		history, err := service.History(ctx, &from, &to, "returned")
		require.NoError(t, err)
		require.Len(t, history, 2)
		assert.Equal(t, int64(2), history[0].ID)
		assert.Equal(t, int64(4), history[1].ID)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		service := newFixture(t)

		_, err := service.History(ctx, nil, nil, "expired")
		assert.ErrorIs(t, err, loan.ErrInvalidStatus)
	})
}
