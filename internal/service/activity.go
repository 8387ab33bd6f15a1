package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/plannerhq/planner/internal/domain"
	"github.com/plannerhq/planner/internal/repo"
)

// ActivityService implements business logic for Activity operations.
// It holds the trip repo as well because creating an activity requires the
// parent trip's date range.
type ActivityService struct {
	trips      repo.TripRepo
	activities repo.ActivityRepo
}

// NewActivityService constructs an ActivityService backed by the provided repos.
func NewActivityService(trips repo.TripRepo, activities repo.ActivityRepo) *ActivityService {
	return &ActivityService{trips: trips, activities: activities}
}

// Create validates the activity against the parent trip's date range and
// persists it. An occurs_at equal to the trip's start or end is accepted;
// strictly outside is rejected.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *ActivityService) Create(ctx context.Context, activity domain.Activity) (domain.Activity, error) {
	trip, err := s.trips.GetByID(ctx, activity.TripID)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Create: %w", err)
	}

	if tooShort(activity.Title, 4) {
		return domain.Activity{}, fmt.Errorf("%w: title must be at least 4 characters", domain.ErrValidation)
	}
	if activity.OccursAt.Before(trip.StartsAt) {
		return domain.Activity{}, fmt.Errorf("%w: occurs_at must not be before the trip start date", domain.ErrValidation)
	}
	if activity.OccursAt.After(trip.EndsAt) {
		return domain.Activity{}, fmt.Errorf("%w: occurs_at must not be after the trip end date", domain.ErrValidation)
	}

	created, err := s.activities.Create(ctx, activity)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Create: %w", err)
	}
	return created, nil
}

// ListByTrip returns the trip's activities grouped by calendar day: one
// group per day from trip start to trip end inclusive (days without
// activities get an empty group), with activities inside each group ordered
// by occurs_at ascending. Activities left outside the range by a later trip
// date update are omitted, matching the range-driven grouping.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *ActivityService) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.DaySchedule, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ActivityService.ListByTrip: %w", err)
	}

	activities, err := s.activities.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ActivityService.ListByTrip: %w", err)
	}

	// Repo order is occurs_at ASC, so each bucket is already time-sorted.
	byDay := make(map[string][]domain.Activity)
	for _, a := range activities {
		key := dayKey(a.OccursAt)
		byDay[key] = append(byDay[key], a)
	}

	var schedule []domain.DaySchedule
	last := startOfDay(trip.EndsAt)
	for day := startOfDay(trip.StartsAt); !day.After(last); day = day.AddDate(0, 0, 1) {
		group := byDay[dayKey(day)]
		if group == nil {
			group = []domain.Activity{}
		}
		schedule = append(schedule, domain.DaySchedule{Date: day, Activities: group})
	}

	return schedule, nil
}

// dayKey normalizes a timestamp to its UTC calendar day.
func dayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// startOfDay returns midnight UTC of the timestamp's calendar day.
func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
