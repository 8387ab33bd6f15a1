package domain

import (
	"time"

	"github.com/google/uuid"
)

// Activity is a scheduled event within a trip. OccursAt must fall inside the
// trip's date range at creation time; it is not re-validated when the trip's
// dates are later updated.
type Activity struct {
	ID        uuid.UUID `json:"id"`
	TripID    uuid.UUID `json:"trip_id"`
	Title     string    `json:"title"`
	OccursAt  time.Time `json:"occurs_at"`
	CreatedAt time.Time `json:"created_at"`
}

// DaySchedule groups a trip's activities under a single calendar day.
// The activities endpoint returns one DaySchedule per day of the trip's
// range, including days with no activities.
type DaySchedule struct {
	Date       time.Time  `json:"date"`
	Activities []Activity `json:"activities"`
}
