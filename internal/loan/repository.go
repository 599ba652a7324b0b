package loan

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// Filter narrows a loan query. Only stored statuses are understood here;
// the derived overdue filter is resolved by the service via the classifier.
type Filter struct {
	Status     LoanStatus
	BorrowerID int64
	From       *time.Time
	To         *time.Time
}

// Repository handles loan data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new loan repository with database dependency injected
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const selectColumns = `
	l.id, l.item_id, l.borrower_id, l.borrow_date, l.due_date, l.return_date, l.status,
	COALESCE(i.title, ''), COALESCE(i.type, ''), COALESCE(i.owner_id, 0),
	COALESCE(o.name, ''), COALESCE(o.email, ''),
	COALESCE(b.name, ''), COALESCE(b.email, '')
`

const joinClause = `
	FROM loans l
	LEFT JOIN items i ON l.item_id = i.id
	LEFT JOIN members o ON i.owner_id = o.id
	LEFT JOIN members b ON l.borrower_id = b.id
`

// Insert creates a new active loan. The partial unique index on
// loans(item_id) WHERE status = 'active' makes this the atomicity primitive
// for borrowing: when an active loan already exists for the item, the
// insert fails with a unique violation and ErrItemUnavailable is returned,
// so two concurrent borrows on the same item can never both succeed.
func (r *Repository) Insert(ctx context.Context, itemID, borrowerID int64, dueDate time.Time) (*Loan, error) {
	query := `
		INSERT INTO loans (item_id, borrower_id, due_date)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query, itemID, borrowerID, dueDate).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrItemUnavailable
		}
		return nil, fmt.Errorf("failed to insert loan: %w", err)
	}

	return r.GetByID(ctx, id)
}

// GetByID retrieves a loan by its ID, with item and borrower details joined
func (r *Repository) GetByID(ctx context.Context, id int64) (*Loan, error) {
	query := `SELECT ` + selectColumns + joinClause + ` WHERE l.id = $1`

	loan := &Loan{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&loan.ID,
		&loan.ItemID,
		&loan.BorrowerID,
		&loan.BorrowDate,
		&loan.DueDate,
		&loan.ReturnDate,
		&loan.Status,
		&loan.ItemTitle,
		&loan.ItemType,
		&loan.ItemOwnerID,
		&loan.ItemOwnerName,
		&loan.ItemOwnerEmail,
		&loan.BorrowerName,
		&loan.BorrowerEmail,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get loan: %w", err)
	}

	return loan, nil
}

// MarkReturned closes an active loan. The status guard in the WHERE clause
// means a loan can only be closed once; a second attempt affects no rows
// and returns (nil, nil).
func (r *Repository) MarkReturned(ctx context.Context, id int64, returnedAt time.Time) (*Loan, error) {
	query := `
		UPDATE loans
		SET status = 'returned', return_date = $2
		WHERE id = $1 AND status = 'active'
		RETURNING id
	`

	var updatedID int64
	err := r.db.QueryRowContext(ctx, query, id, returnedAt).Scan(&updatedID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to mark loan returned: %w", err)
	}

	return r.GetByID(ctx, updatedID)
}

// Query retrieves loans matching the filter, most recently borrowed first
func (r *Repository) Query(ctx context.Context, filter Filter) ([]*Loan, error) {
	query := `SELECT ` + selectColumns + joinClause + ` WHERE 1=1`

	var args []interface{}
	argPos := 1

	if filter.Status != "" {
		query += fmt.Sprintf(" AND l.status = $%d", argPos)
		args = append(args, filter.Status)
		argPos++
	}
	if filter.BorrowerID != 0 {
		query += fmt.Sprintf(" AND l.borrower_id = $%d", argPos)
		args = append(args, filter.BorrowerID)
		argPos++
	}
	if filter.From != nil {
		query += fmt.Sprintf(" AND l.borrow_date >= $%d", argPos)
		args = append(args, *filter.From)
		argPos++
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND l.borrow_date <= $%d", argPos)
		args = append(args, *filter.To)
		argPos++
	}

	query += " ORDER BY l.borrow_date DESC, l.id DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query loans: %w", err)
	}
	defer rows.Close()

	var loans []*Loan
	for rows.Next() {
		loan := &Loan{}
		if err := rows.Scan(
			&loan.ID,
			&loan.ItemID,
			&loan.BorrowerID,
			&loan.BorrowDate,
			&loan.DueDate,
			&loan.ReturnDate,
			&loan.Status,
			&loan.ItemTitle,
			&loan.ItemType,
			&loan.ItemOwnerID,
			&loan.ItemOwnerName,
			&loan.ItemOwnerEmail,
			&loan.BorrowerName,
			&loan.BorrowerEmail,
		); err != nil {
			return nil, fmt.Errorf("failed to scan loan: %w", err)
		}
		loans = append(loans, loan)
	}

	return loans, rows.Err()
}
