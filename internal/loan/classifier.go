package loan

import "time"

// Classify returns the derived status of a loan at the given instant.
// A returned loan stays returned regardless of dates. An active loan is
// overdue once its due date lies strictly in the past; a loan due exactly
// at now is not yet overdue.
//
// Callers assembling a result set must pass the same now to every call so
// the whole set is labeled against a single instant.
func Classify(l *Loan, now time.Time) LoanStatus {
	if l.Status == StatusReturned {
		return StatusReturned
	}
	if l.DueDate.Before(now) {
		return StatusOverdue
	}
	return StatusActive
}

// DaysOverdue returns the number of whole days the loan is past due,
// clamped to zero. Only meaningful when Classify reports overdue.
func DaysOverdue(l *Loan, now time.Time) int {
	days := int(now.Sub(l.DueDate).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}
