package domain

import (
	"time"

	"github.com/google/uuid"
)

// Link is a reference URL attached to a trip (booking confirmations,
// accommodation pages, and so on). Links have no lifecycle beyond
// create and list.
type Link struct {
	ID        uuid.UUID `json:"id"`
	TripID    uuid.UUID `json:"trip_id"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}
