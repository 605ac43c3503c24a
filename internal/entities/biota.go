package entities

import "time"

// BiotaEntry is one catalog record describing a photographed aquatic
// organism. Photographer is a denormalized copy of the owner's username
// taken at creation time; UserID is the owning user and never changes.
type BiotaEntry struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Location     string    `json:"location"`
	Category     string    `json:"category"`
	Description  string    `json:"description"`
	Image        string    `json:"image"` // /uploads/... path or external URL
	Photographer string    `json:"photographer"`
	UserID       int64     `json:"user_id"`
	CreatedAt    time.Time `json:"created_at"`
}
