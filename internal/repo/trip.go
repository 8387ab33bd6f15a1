// Package repo contains all database access logic for the planner API.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here — only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/plannerhq/planner/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup. Begin opens a nested
// transaction (a savepoint) when the underlying value is already a pgx.Tx.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// TripRepo defines the persistence operations for Trips.
// The service layer depends on this interface, not the concrete Postgres implementation,
// which allows the service to be unit-tested with a mock.
type TripRepo interface {
	// CreateWithParticipants inserts a new trip together with its initial
	// participants in a single transaction: either all rows appear or none do.
	// Returns the persisted trip and participants with DB-generated fields set.
	CreateWithParticipants(ctx context.Context, trip domain.Trip, participants []domain.Participant) (domain.Trip, []domain.Participant, error)

	// GetByID retrieves a single trip by its UUID primary key.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)

	// Update overwrites destination, starts_at, and ends_at of an existing trip
	// and returns the updated record. Returns domain.ErrNotFound if no trip
	// with that ID exists.
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// Confirm sets is_confirmed = true on the trip and returns the updated
	// record. Returns domain.ErrNotFound if no trip with that ID exists.
	Confirm(ctx context.Context, id uuid.UUID) (domain.Trip, error)
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

// CreateWithParticipants inserts the trip row and all initial participant rows
// inside one transaction.
func (r *pgTripRepo) CreateWithParticipants(ctx context.Context, trip domain.Trip, participants []domain.Participant) (domain.Trip, []domain.Participant, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return domain.Trip{}, nil, fmt.Errorf("repo.TripRepo.CreateWithParticipants: begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	const insertTrip = `
		INSERT INTO trips (destination, starts_at, ends_at)
		VALUES (@destination, @starts_at, @ends_at)
		RETURNING id, destination, starts_at, ends_at, is_confirmed, created_at`

	row := tx.QueryRow(ctx, insertTrip, pgx.NamedArgs{
		"destination": trip.Destination,
		"starts_at":   trip.StartsAt,
		"ends_at":     trip.EndsAt,
	})
	created, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, nil, fmt.Errorf("repo.TripRepo.CreateWithParticipants: insert trip: %w", err)
	}

	const insertParticipant = `
		INSERT INTO participants (trip_id, name, email, is_owner, is_confirmed)
		VALUES (@trip_id, @name, @email, @is_owner, @is_confirmed)
		RETURNING id, trip_id, name, email, is_owner, is_confirmed, created_at`

	inserted := make([]domain.Participant, 0, len(participants))
	for _, p := range participants {
		row := tx.QueryRow(ctx, insertParticipant, pgx.NamedArgs{
			"trip_id":      created.ID,
			"name":         p.Name,
			"email":        p.Email,
			"is_owner":     p.IsOwner,
			"is_confirmed": p.IsConfirmed,
		})
		stored, err := scanParticipant(row)
		if err != nil {
			return domain.Trip{}, nil, fmt.Errorf("repo.TripRepo.CreateWithParticipants: insert participant: %w", err)
		}
		inserted = append(inserted, stored)
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Trip{}, nil, fmt.Errorf("repo.TripRepo.CreateWithParticipants: commit: %w", err)
	}

	return created, inserted, nil
}

// GetByID retrieves a trip by primary key.
func (r *pgTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	const q = `
		SELECT id, destination, starts_at, ends_at, is_confirmed, created_at
		FROM trips
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

// Update overwrites the mutable fields of a trip and returns the updated record.
func (r *pgTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		UPDATE trips
		SET destination = @destination,
		    starts_at   = @starts_at,
		    ends_at     = @ends_at
		WHERE id = @id
		RETURNING id, destination, starts_at, ends_at, is_confirmed, created_at`

	args := pgx.NamedArgs{
		"id":          trip.ID,
		"destination": trip.Destination,
		"starts_at":   trip.StartsAt,
		"ends_at":     trip.EndsAt,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", err)
	}
	return result, nil
}

// Confirm flips is_confirmed to true and returns the updated record.
func (r *pgTripRepo) Confirm(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	const q = `
		UPDATE trips
		SET is_confirmed = true
		WHERE id = @id
		RETURNING id, destination, starts_at, ends_at, is_confirmed, created_at`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Confirm: %w", err)
	}
	return result, nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing the scan helpers
// to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanTrip maps a single database row into a domain.Trip.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t  domain.Trip
		id pgtype.UUID
	)

	err := s.Scan(&id, &t.Destination, &t.StartsAt, &t.EndsAt, &t.IsConfirmed, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	return t, nil
}
