package domain

import (
	"time"

	"github.com/google/uuid"
)

// Participant is a person attached to a trip, either the owner or an invited
// guest. Guests are created with only an email; name and confirmation are
// filled in when they follow their confirmation link. The owner is created
// already confirmed, with name and email set.
//
// Exactly one participant per trip has IsOwner = true.
type Participant struct {
	ID          uuid.UUID `json:"id"`
	TripID      uuid.UUID `json:"trip_id"`
	Name        string    `json:"name,omitempty"` // empty until the guest confirms
	Email       string    `json:"email"`
	IsOwner     bool      `json:"is_owner"`
	IsConfirmed bool      `json:"is_confirmed"`
	CreatedAt   time.Time `json:"created_at"`
}
