package dashboard

import "lendify/internal/loan"

// NotificationsResponse is the overdue alert payload polled by clients
type NotificationsResponse struct {
	Items      []*loan.LoanResponse `json:"items"`
	HasOverdue bool                 `json:"has_overdue"`
}

// OverallStats are the headline counters of the dashboard.
// available_items + borrowed_items == total_items and
// active_loans + returned_loans == total_loans hold per snapshot.
type OverallStats struct {
	TotalMembers   int `json:"total_members"`
	TotalItems     int `json:"total_items"`
	AvailableItems int `json:"available_items"`
	BorrowedItems  int `json:"borrowed_items"`
	TotalLoans     int `json:"total_loans"`
	ActiveLoans    int `json:"active_loans"`
	OverdueLoans   int `json:"overdue_loans"`
	ReturnedLoans  int `json:"returned_loans"`
}

// ItemRanking is one row of the most-borrowed-items ranking
type ItemRanking struct {
	ItemID        int64  `json:"item_id"`
	Title         string `json:"title"`
	Type          string `json:"type,omitempty"`
	BorrowCount   int    `json:"borrow_count"`
	ActiveBorrows int    `json:"active_borrows"`
}

// MemberRanking is one row of the top-borrowers ranking
type MemberRanking struct {
	MemberID      int64  `json:"member_id"`
	Name          string `json:"name"`
	Email         string `json:"email,omitempty"`
	BorrowCount   int    `json:"borrow_count"`
	ActiveBorrows int    `json:"active_borrows"`
	ReturnedCount int    `json:"returned_count"`
}

// TypeCount is the number of loans recorded against one item type
type TypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// StatsResponse is the full dashboard statistics payload
type StatsResponse struct {
	Overall              OverallStats     `json:"overall"`
	MostBorrowedItems    []*ItemRanking   `json:"most_borrowed_items"`
	BorrowCountsByMember []*MemberRanking `json:"borrow_counts_by_member"`
	LoansByType          []*TypeCount     `json:"loans_by_type"`
}
