package item

// CreateItemRequest represents the request body for adding an item
type CreateItemRequest struct {
	Title       string  `json:"title"`
	Type        string  `json:"type"`
	Description *string `json:"description,omitempty"`
	OwnerID     int64   `json:"owner_id"`
}

// UpdateItemRequest represents the request body for updating an item
type UpdateItemRequest struct {
	Title       *string `json:"title,omitempty"`
	Type        *string `json:"type,omitempty"`
	Description *string `json:"description,omitempty"`
}

// OwnerSummary is the owning member embedded in item responses
type OwnerSummary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ItemResponse represents the response for a single item
type ItemResponse struct {
	ID          int64         `json:"id"`
	Title       string        `json:"title"`
	Type        ItemType      `json:"type"`
	Description *string       `json:"description,omitempty"`
	Available   bool          `json:"available"`
	Owner       *OwnerSummary `json:"owner,omitempty"`
	CreatedAt   string        `json:"created_at"`
}

// ToResponse converts an Item model to an ItemResponse DTO
func (i *Item) ToResponse() *ItemResponse {
	resp := &ItemResponse{
		ID:          i.ID,
		Title:       i.Title,
		Type:        i.Type,
		Description: i.Description,
		Available:   i.Available,
		CreatedAt:   i.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if i.OwnerName != "" {
		resp.Owner = &OwnerSummary{
			ID:    i.OwnerID,
			Name:  i.OwnerName,
			Email: i.OwnerEmail,
		}
	}
	return resp
}
