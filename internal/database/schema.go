package database

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema.
//
// The partial unique index on loans(item_id) is what guarantees at most one
// active loan per item: concurrent borrow attempts race on the insert and
// the database rejects the loser with a unique violation.
const schema = `
CREATE TABLE IF NOT EXISTS members (
    id         BIGSERIAL PRIMARY KEY,
    name       TEXT NOT NULL,
    email      TEXT NOT NULL UNIQUE,
    phone      TEXT,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS items (
    id          BIGSERIAL PRIMARY KEY,
    title       TEXT NOT NULL,
    type        TEXT NOT NULL CHECK (type IN ('book', 'electronics', 'tool', 'furniture', 'other')),
    description TEXT,
    owner_id    BIGINT NOT NULL REFERENCES members(id),
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS loans (
    id          BIGSERIAL PRIMARY KEY,
    item_id     BIGINT NOT NULL REFERENCES items(id),
    borrower_id BIGINT NOT NULL REFERENCES members(id),
    borrow_date TIMESTAMPTZ NOT NULL DEFAULT now(),
    due_date    TIMESTAMPTZ NOT NULL,
    return_date TIMESTAMPTZ,
    status      TEXT NOT NULL DEFAULT 'active' CHECK (status IN ('active', 'returned')),
    CHECK (due_date > borrow_date),
    CHECK (return_date IS NULL OR return_date >= borrow_date)
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_loans_one_active_per_item
    ON loans(item_id) WHERE status = 'active';

CREATE INDEX IF NOT EXISTS idx_loans_borrower ON loans(borrower_id);
CREATE INDEX IF NOT EXISTS idx_loans_borrow_date ON loans(borrow_date);
`

// EnsureSchema creates all tables and indexes if they do not exist yet
func EnsureSchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
