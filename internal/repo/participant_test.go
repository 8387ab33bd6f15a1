package repo_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plannerhq/planner/internal/domain"
	"github.com/plannerhq/planner/internal/repo"
)

func TestParticipantRepo_Create(t *testing.T) {
	tx := newTestTx(t)
	trip := mustCreateTrip(t, repo.NewTripRepo(tx))
	r := repo.NewParticipantRepo(tx)
	ctx := context.Background()

	got, err := r.Create(ctx, domain.Participant{TripID: trip.ID, Email: "grace@example.com"})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.Equal(t, trip.ID, got.TripID)
	assert.Equal(t, "grace@example.com", got.Email)
	assert.Empty(t, got.Name, "invitees have no name until they confirm")
	assert.False(t, got.IsConfirmed)
	assert.False(t, got.IsOwner)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestParticipantRepo_Create_SameEmailTwice(t *testing.T) {
	tx := newTestTx(t)
	trip := mustCreateTrip(t, repo.NewTripRepo(tx))
	r := repo.NewParticipantRepo(tx)
	ctx := context.Background()

	first, err := r.Create(ctx, domain.Participant{TripID: trip.ID, Email: "grace@example.com"})
	require.NoError(t, err)
	second, err := r.Create(ctx, domain.Participant{TripID: trip.ID, Email: "grace@example.com"})
	require.NoError(t, err)

	// No uniqueness constraint on (trip_id, email): each invitation is its own row.
	assert.NotEqual(t, first.ID, second.ID)
}

func TestParticipantRepo_GetByID(t *testing.T) {
	tx := newTestTx(t)
	trip := mustCreateTrip(t, repo.NewTripRepo(tx))
	r := repo.NewParticipantRepo(tx)
	ctx := context.Background()

	created, err := r.Create(ctx, domain.Participant{TripID: trip.ID, Email: "grace@example.com"})
	require.NoError(t, err)

	got, err := r.GetByID(ctx, created.ID)

	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "grace@example.com", got.Email)
}

func TestParticipantRepo_GetByID_NotFound(t *testing.T) {
	tx := newTestTx(t)
	r := repo.NewParticipantRepo(tx)

	_, err := r.GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestParticipantRepo_ListByTripID_OwnerFirst(t *testing.T) {
	tx := newTestTx(t)
	tripRepo := repo.NewTripRepo(tx)
	ctx := context.Background()

	// Insert guests before the owner to prove ordering comes from is_owner,
	// not insertion order.
	trip, _, err := tripRepo.CreateWithParticipants(ctx, tripFixture(), []domain.Participant{
		{Email: "grace@example.com"},
		{Email: "alan@example.com"},
		ownerFixture(),
	})
	require.NoError(t, err)

	r := repo.NewParticipantRepo(tx)
	got, err := r.ListByTripID(ctx, trip.ID)

	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.True(t, got[0].IsOwner, "owner should sort first")
	assert.Equal(t, "grace@example.com", got[1].Email)
	assert.Equal(t, "alan@example.com", got[2].Email)
}

func TestParticipantRepo_ListByTripID_Empty(t *testing.T) {
	tx := newTestTx(t)
	r := repo.NewParticipantRepo(tx)

	got, err := r.ListByTripID(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestParticipantRepo_Confirm(t *testing.T) {
	tx := newTestTx(t)
	trip := mustCreateTrip(t, repo.NewTripRepo(tx))
	r := repo.NewParticipantRepo(tx)
	ctx := context.Background()

	created, err := r.Create(ctx, domain.Participant{TripID: trip.ID, Email: "grace@example.com"})
	require.NoError(t, err)

	got, err := r.Confirm(ctx, created.ID, "Grace Hopper", "grace.hopper@example.com")

	require.NoError(t, err)
	assert.True(t, got.IsConfirmed)
	assert.Equal(t, "Grace Hopper", got.Name)
	// Confirm overwrites the email with whatever the guest submitted.
	assert.Equal(t, "grace.hopper@example.com", got.Email)
}

func TestParticipantRepo_Confirm_NotFound(t *testing.T) {
	tx := newTestTx(t)
	r := repo.NewParticipantRepo(tx)

	_, err := r.Confirm(context.Background(), uuid.New(), "Grace Hopper", "grace@example.com")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
