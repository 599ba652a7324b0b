package loan

import "time"

// LoanStatus represents the status of a loan
type LoanStatus string

const (
	StatusActive   LoanStatus = "active"
	StatusReturned LoanStatus = "returned"

	// StatusOverdue is a derived label for active loans past their due
	// date. It is never stored; Classify computes it at read time.
	StatusOverdue LoanStatus = "overdue"
)

// Loan represents one item being held by one member for a bounded period.
// Status only ever transitions active -> returned; returned is terminal.
type Loan struct {
	ID         int64      `json:"id"`
	ItemID     int64      `json:"item_id"`
	BorrowerID int64      `json:"borrower_id"`
	BorrowDate time.Time  `json:"borrow_date"`
	DueDate    time.Time  `json:"due_date"`
	ReturnDate *time.Time `json:"return_date,omitempty"`
	Status     LoanStatus `json:"status"`

	// Populated via JOIN
	ItemTitle      string `json:"item_title,omitempty"`
	ItemType       string `json:"item_type,omitempty"`
	ItemOwnerID    int64  `json:"item_owner_id,omitempty"`
	ItemOwnerName  string `json:"item_owner_name,omitempty"`
	ItemOwnerEmail string `json:"item_owner_email,omitempty"`
	BorrowerName   string `json:"borrower_name,omitempty"`
	BorrowerEmail  string `json:"borrower_email,omitempty"`
}
