package activity

import "time"

// EntryResponse represents one feed item in API responses
type EntryResponse struct {
	Kind      string      `json:"kind"`
	CreatedAt string      `json:"created_at"`
	Data      interface{} `json:"data"`
}

// ToResponse converts an Entry to its API representation
func (e *Entry) ToResponse() *EntryResponse {
	return &EntryResponse{
		Kind:      e.Kind,
		CreatedAt: e.CreatedAt.UTC().Format(time.RFC3339),
		Data:      e.Data,
	}
}
