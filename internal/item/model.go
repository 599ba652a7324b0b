package item

import "time"

// ItemType is the enumerated category of a lendable item
type ItemType string

const (
	TypeBook        ItemType = "book"
	TypeElectronics ItemType = "electronics"
	TypeTool        ItemType = "tool"
	TypeFurniture   ItemType = "furniture"
	TypeOther       ItemType = "other"
)

// Valid reports whether the type is one of the known categories
func (t ItemType) Valid() bool {
	switch t {
	case TypeBook, TypeElectronics, TypeTool, TypeFurniture, TypeOther:
		return true
	}
	return false
}

// Item represents a lendable item in the catalog.
// Available is derived at read time: an item is available iff it has no
// loan in status 'active'. It is never written directly.
type Item struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Type        ItemType  `json:"type"`
	Description *string   `json:"description,omitempty"`
	OwnerID     int64     `json:"owner_id"`
	Available   bool      `json:"available"`
	CreatedAt   time.Time `json:"created_at"`

	// Populated via JOIN
	OwnerName  string `json:"owner_name,omitempty"`
	OwnerEmail string `json:"owner_email,omitempty"`
}
