package loan

import "time"

// unknownLabel substitutes for references that cannot be resolved; a stale
// report beats no report.
const unknownLabel = "Unknown"

// BorrowRequest represents the request body for borrowing an item
type BorrowRequest struct {
	ItemID           int64  `json:"item_id"`
	BorrowerMemberID int64  `json:"borrower_member_id"`
	DueDate          string `json:"due_date"`
}

// ReturnRequest represents the request body for returning a borrowed item
type ReturnRequest struct {
	LoanID int64 `json:"loan_id"`
}

// ItemSummary is the borrowed item embedded in loan responses
type ItemSummary struct {
	ID    int64         `json:"id"`
	Title string        `json:"title"`
	Type  string        `json:"type,omitempty"`
	Owner *OwnerSummary `json:"owner,omitempty"`
}

// OwnerSummary is the item-owning member embedded in loan responses
type OwnerSummary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// BorrowerSummary is the borrowing member embedded in loan responses
type BorrowerSummary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// LoanResponse represents the response for a single loan, enriched with
// item and borrower details and the derived status
type LoanResponse struct {
	ID          int64            `json:"id"`
	Item        *ItemSummary     `json:"item"`
	Borrower    *BorrowerSummary `json:"borrower"`
	BorrowDate  string           `json:"borrow_date"`
	DueDate     string           `json:"due_date"`
	ReturnDate  *string          `json:"return_date,omitempty"`
	Status      LoanStatus       `json:"status"`
	Overdue     bool             `json:"overdue"`
	DaysOverdue int              `json:"days_overdue,omitempty"`
}

// ToResponse converts a Loan model to a LoanResponse DTO, classifying it
// against the given instant
func (l *Loan) ToResponse(now time.Time) *LoanResponse {
	derived := Classify(l, now)

	resp := &LoanResponse{
		ID:         l.ID,
		Item:       l.itemSummary(),
		Borrower:   l.borrowerSummary(),
		BorrowDate: l.BorrowDate.Format(time.RFC3339),
		DueDate:    l.DueDate.Format(time.RFC3339),
		Status:     l.Status,
		Overdue:    derived == StatusOverdue,
	}
	if l.ReturnDate != nil {
		formatted := l.ReturnDate.Format(time.RFC3339)
		resp.ReturnDate = &formatted
	}
	if resp.Overdue {
		resp.DaysOverdue = DaysOverdue(l, now)
	}
	return resp
}

func (l *Loan) itemSummary() *ItemSummary {
	summary := &ItemSummary{
		ID:    l.ItemID,
		Title: l.ItemTitle,
		Type:  l.ItemType,
	}
	if summary.Title == "" {
		summary.Title = unknownLabel
	}
	if l.ItemOwnerID != 0 {
		summary.Owner = &OwnerSummary{
			ID:    l.ItemOwnerID,
			Name:  l.ItemOwnerName,
			Email: l.ItemOwnerEmail,
		}
		if summary.Owner.Name == "" {
			summary.Owner.Name = unknownLabel
		}
	}
	return summary
}

func (l *Loan) borrowerSummary() *BorrowerSummary {
	summary := &BorrowerSummary{
		ID:    l.BorrowerID,
		Name:  l.BorrowerName,
		Email: l.BorrowerEmail,
	}
	if summary.Name == "" {
		summary.Name = unknownLabel
	}
	return summary
}
