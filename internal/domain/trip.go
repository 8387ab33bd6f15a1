// Package domain contains the core data types for the planner application.
// This package has no dependencies beyond uuid and is imported by every other
// internal package (repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip represents a planned journey with a date range.
// A trip is the top-level aggregate; participants, activities, and links
// belong to a trip and are meaningless without it.
//
// IsConfirmed flips to true exactly once, via the confirmation link emailed
// to the trip owner. Confirming an already-confirmed trip is a no-op.
type Trip struct {
	ID          uuid.UUID `json:"id"`
	Destination string    `json:"destination"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	IsConfirmed bool      `json:"is_confirmed"`
	CreatedAt   time.Time `json:"created_at"`
}
