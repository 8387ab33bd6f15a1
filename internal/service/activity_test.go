package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plannerhq/planner/internal/domain"
	"github.com/plannerhq/planner/internal/repo"
	"github.com/plannerhq/planner/internal/service"
)

type mockActivityRepo struct {
	create       func(ctx context.Context, a domain.Activity) (domain.Activity, error)
	listByTripID func(ctx context.Context, tripID uuid.UUID) ([]domain.Activity, error)
}

func (m *mockActivityRepo) Create(ctx context.Context, a domain.Activity) (domain.Activity, error) {
	return m.create(ctx, a)
}
func (m *mockActivityRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Activity, error) {
	return m.listByTripID(ctx, tripID)
}

var _ repo.ActivityRepo = (*mockActivityRepo)(nil)

// ---- helpers ---------------------------------------------------------------

// A three-day trip with off-midnight boundaries, to exercise the
// boundary-inclusive occurs_at checks.
var (
	tripStart = time.Date(2026, 7, 10, 9, 30, 0, 0, time.UTC)
	tripEnd   = time.Date(2026, 7, 12, 18, 0, 0, 0, time.UTC)
)

func weekendTrip() domain.Trip {
	return domain.Trip{ID: uuid.New(), Destination: "Kyoto, Japan", StartsAt: tripStart, EndsAt: tripEnd}
}

func echoActivityRepo() *mockActivityRepo {
	return &mockActivityRepo{
		create: func(_ context.Context, a domain.Activity) (domain.Activity, error) {
			a.ID = uuid.New()
			return a, nil
		},
	}
}

// ---- Create tests ----------------------------------------------------------

func TestActivityService_Create_Valid(t *testing.T) {
	trip := weekendTrip()
	svc := service.NewActivityService(existingTripRepo(trip), echoActivityRepo())

	got, err := svc.Create(context.Background(), domain.Activity{
		TripID:   trip.ID,
		Title:    "Temple walk",
		OccursAt: tripStart.Add(4 * time.Hour),
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID)
}

func TestActivityService_Create_OnTripBoundaries(t *testing.T) {
	trip := weekendTrip()
	svc := service.NewActivityService(existingTripRepo(trip), echoActivityRepo())

	// Exactly at start and exactly at end are both inside the trip.
	for _, at := range []time.Time{tripStart, tripEnd} {
		_, err := svc.Create(context.Background(), domain.Activity{
			TripID:   trip.ID,
			Title:    "Boundary event",
			OccursAt: at,
		})
		assert.NoError(t, err, "occurs_at %s", at)
	}
}

func TestActivityService_Create_BeforeTripStart(t *testing.T) {
	trip := weekendTrip()
	svc := service.NewActivityService(existingTripRepo(trip), echoActivityRepo())

	_, err := svc.Create(context.Background(), domain.Activity{
		TripID:   trip.ID,
		Title:    "Too early",
		OccursAt: tripStart.Add(-time.Minute),
	})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestActivityService_Create_AfterTripEnd(t *testing.T) {
	trip := weekendTrip()
	svc := service.NewActivityService(existingTripRepo(trip), echoActivityRepo())

	_, err := svc.Create(context.Background(), domain.Activity{
		TripID:   trip.ID,
		Title:    "Too late",
		OccursAt: tripEnd.Add(time.Minute),
	})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestActivityService_Create_TitleTooShort(t *testing.T) {
	trip := weekendTrip()
	svc := service.NewActivityService(existingTripRepo(trip), echoActivityRepo())

	_, err := svc.Create(context.Background(), domain.Activity{
		TripID:   trip.ID,
		Title:    "Zen",
		OccursAt: tripStart.Add(time.Hour),
	})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestActivityService_Create_TripNotFound(t *testing.T) {
	trips := &mockTripRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Trip, error) {
			return domain.Trip{}, domain.ErrNotFound
		},
	}
	svc := service.NewActivityService(trips, echoActivityRepo())

	_, err := svc.Create(context.Background(), domain.Activity{
		TripID:   uuid.New(),
		Title:    "Temple walk",
		OccursAt: tripStart,
	})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- ListByTrip tests -------------------------------------------------------

func TestActivityService_ListByTrip_GroupsByDayIncludingEmpty(t *testing.T) {
	trip := weekendTrip()
	activities := &mockActivityRepo{
		listByTripID: func(_ context.Context, _ uuid.UUID) ([]domain.Activity, error) {
			return []domain.Activity{
				{Title: "Arrival dinner", OccursAt: time.Date(2026, 7, 10, 19, 0, 0, 0, time.UTC)},
				{Title: "Farewell brunch", OccursAt: time.Date(2026, 7, 12, 11, 0, 0, 0, time.UTC)},
				{Title: "Farewell drinks", OccursAt: time.Date(2026, 7, 12, 17, 0, 0, 0, time.UTC)},
			}, nil
		},
	}
	svc := service.NewActivityService(existingTripRepo(trip), activities)

	got, err := svc.ListByTrip(context.Background(), trip.ID)

	require.NoError(t, err)
	require.Len(t, got, 3) // July 10, 11, 12 — one group per trip day

	assert.Equal(t, time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC), got[0].Date)
	require.Len(t, got[0].Activities, 1)
	assert.Equal(t, "Arrival dinner", got[0].Activities[0].Title)

	// The middle day has no activities but still appears, with an empty
	// (non-nil) group so it serializes as [] rather than null.
	assert.Equal(t, time.Date(2026, 7, 11, 0, 0, 0, 0, time.UTC), got[1].Date)
	assert.NotNil(t, got[1].Activities)
	assert.Empty(t, got[1].Activities)

	require.Len(t, got[2].Activities, 2)
	assert.Equal(t, "Farewell brunch", got[2].Activities[0].Title)
	assert.Equal(t, "Farewell drinks", got[2].Activities[1].Title)
}

func TestActivityService_ListByTrip_NoActivities(t *testing.T) {
	trip := weekendTrip()
	activities := &mockActivityRepo{
		listByTripID: func(_ context.Context, _ uuid.UUID) ([]domain.Activity, error) { return nil, nil },
	}
	svc := service.NewActivityService(existingTripRepo(trip), activities)

	got, err := svc.ListByTrip(context.Background(), trip.ID)

	require.NoError(t, err)
	require.Len(t, got, 3)
	for _, day := range got {
		assert.NotNil(t, day.Activities)
		assert.Empty(t, day.Activities)
	}
}

func TestActivityService_ListByTrip_OmitsOutOfRangeActivities(t *testing.T) {
	trip := weekendTrip()
	activities := &mockActivityRepo{
		listByTripID: func(_ context.Context, _ uuid.UUID) ([]domain.Activity, error) {
			// Left stranded by a trip date update that shrank the range.
			return []domain.Activity{
				{Title: "Stranded", OccursAt: time.Date(2026, 7, 20, 10, 0, 0, 0, time.UTC)},
			}, nil
		},
	}
	svc := service.NewActivityService(existingTripRepo(trip), activities)

	got, err := svc.ListByTrip(context.Background(), trip.ID)

	require.NoError(t, err)
	require.Len(t, got, 3)
	for _, day := range got {
		assert.Empty(t, day.Activities)
	}
}

func TestActivityService_ListByTrip_TripNotFound(t *testing.T) {
	trips := &mockTripRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Trip, error) {
			return domain.Trip{}, domain.ErrNotFound
		},
	}
	svc := service.NewActivityService(trips, &mockActivityRepo{})

	_, err := svc.ListByTrip(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
