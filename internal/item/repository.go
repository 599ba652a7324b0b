package item

import (
	"context"
	"database/sql"
	"fmt"
)

// ListFilter narrows the item list query
type ListFilter struct {
	Type      ItemType
	Available *bool
}

// Repository handles item data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new item repository with database dependency injected
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// selectColumns is shared by every item query; availability is computed
// against the loans table on each read rather than stored.
const selectColumns = `
	i.id, i.title, i.type, i.description, i.owner_id, i.created_at,
	NOT EXISTS (
		SELECT 1 FROM loans l WHERE l.item_id = i.id AND l.status = 'active'
	) AS available,
	m.name AS owner_name, m.email AS owner_email
`

// Create inserts a new item into the database
func (r *Repository) Create(ctx context.Context, req *CreateItemRequest) (*Item, error) {
	query := `
		INSERT INTO items (title, type, description, owner_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	item := &Item{
		Title:       req.Title,
		Type:        ItemType(req.Type),
		Description: req.Description,
		OwnerID:     req.OwnerID,
		Available:   true,
	}
	err := r.db.QueryRowContext(ctx, query, req.Title, req.Type, req.Description, req.OwnerID).Scan(
		&item.ID,
		&item.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	return item, nil
}

// GetByID retrieves an item by its ID, with derived availability and owner details
func (r *Repository) GetByID(ctx context.Context, id int64) (*Item, error) {
	query := `
		SELECT ` + selectColumns + `
		FROM items i
		JOIN members m ON i.owner_id = m.id
		WHERE i.id = $1
	`

	item := &Item{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&item.ID,
		&item.Title,
		&item.Type,
		&item.Description,
		&item.OwnerID,
		&item.CreatedAt,
		&item.Available,
		&item.OwnerName,
		&item.OwnerEmail,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	return item, nil
}

// List retrieves items matching the filter, in insertion order
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]*Item, error) {
	query := `
		SELECT ` + selectColumns + `
		FROM items i
		JOIN members m ON i.owner_id = m.id
		WHERE 1=1
	`

	var args []interface{}
	argPos := 1

	if filter.Type != "" {
		query += fmt.Sprintf(" AND i.type = $%d", argPos)
		args = append(args, filter.Type)
		argPos++
	}
	if filter.Available != nil {
		if *filter.Available {
			query += " AND NOT EXISTS (SELECT 1 FROM loans l WHERE l.item_id = i.id AND l.status = 'active')"
		} else {
			query += " AND EXISTS (SELECT 1 FROM loans l WHERE l.item_id = i.id AND l.status = 'active')"
		}
	}

	query += " ORDER BY i.id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		item := &Item{}
		if err := rows.Scan(
			&item.ID,
			&item.Title,
			&item.Type,
			&item.Description,
			&item.OwnerID,
			&item.CreatedAt,
			&item.Available,
			&item.OwnerName,
			&item.OwnerEmail,
		); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

// Update modifies an existing item's descriptive fields
func (r *Repository) Update(ctx context.Context, id int64, req *UpdateItemRequest) (*Item, error) {
	query := `
		UPDATE items
		SET title = COALESCE($2, title),
		    type = COALESCE($3, type),
		    description = COALESCE($4, description)
		WHERE id = $1
		RETURNING id
	`

	var updatedID int64
	err := r.db.QueryRowContext(ctx, query, id, req.Title, req.Type, req.Description).Scan(&updatedID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	return r.GetByID(ctx, updatedID)
}
