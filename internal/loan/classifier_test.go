package loan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_Classify(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	returnDate := now.Add(-time.Hour)

	testCases := []struct {
		name     string
		loan     *Loan
		expected LoanStatus
	}{
		{
			name:     "active loan due in the future",
			loan:     &Loan{Status: StatusActive, DueDate: now.Add(24 * time.Hour)},
			expected: StatusActive,
		},
		{
			name:     "active loan past due is overdue",
			loan:     &Loan{Status: StatusActive, DueDate: now.Add(-time.Second)},
			expected: StatusOverdue,
		},
		{
			name:     "due exactly now is not yet overdue",
			loan:     &Loan{Status: StatusActive, DueDate: now},
			expected: StatusActive,
		},
		{
			name:     "returned loan stays returned regardless of due date",
			loan:     &Loan{Status: StatusReturned, DueDate: now.Add(-48 * time.Hour), ReturnDate: &returnDate},
			expected: StatusReturned,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Classify(tc.loan, now))
		})
	}
}

func Test_DaysOverdue(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		name     string
		dueDate  time.Time
		expected int
	}{
		{"three full days late", now.Add(-72 * time.Hour), 3},
		{"partial day rounds down", now.Add(-36 * time.Hour), 1},
		{"under a day late", now.Add(-2 * time.Hour), 0},
		{"not yet due clamps to zero", now.Add(24 * time.Hour), 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l := &Loan{Status: StatusActive, DueDate: tc.dueDate}
			assert.Equal(t, tc.expected, DaysOverdue(l, now))
		})
	}
}
