package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/plannerhq/planner/internal/domain"
)

// ParticipantRepo defines the persistence operations for Participants.
type ParticipantRepo interface {
	// Create inserts a new participant and returns the persisted record.
	Create(ctx context.Context, p domain.Participant) (domain.Participant, error)

	// GetByID retrieves a single participant by its UUID primary key.
	// Returns domain.ErrNotFound if no participant with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Participant, error)

	// ListByTripID returns all participants of a trip, owner first, then
	// guests in insertion order.
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Participant, error)

	// Confirm sets name, email, and is_confirmed = true on the participant
	// and returns the updated record. Returns domain.ErrNotFound if no
	// participant with that ID exists.
	Confirm(ctx context.Context, id uuid.UUID, name, email string) (domain.Participant, error)
}

// pgParticipantRepo is the Postgres implementation of ParticipantRepo.
type pgParticipantRepo struct {
	db db
}

// NewParticipantRepo constructs a ParticipantRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewParticipantRepo(db db) ParticipantRepo {
	return &pgParticipantRepo{db: db}
}

func (r *pgParticipantRepo) Create(ctx context.Context, p domain.Participant) (domain.Participant, error) {
	const q = `
		INSERT INTO participants (trip_id, name, email, is_owner, is_confirmed)
		VALUES (@trip_id, @name, @email, @is_owner, @is_confirmed)
		RETURNING id, trip_id, name, email, is_owner, is_confirmed, created_at`

	args := pgx.NamedArgs{
		"trip_id":      p.TripID,
		"name":         p.Name,
		"email":        p.Email,
		"is_owner":     p.IsOwner,
		"is_confirmed": p.IsConfirmed,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanParticipant(row)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("repo.ParticipantRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgParticipantRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Participant, error) {
	const q = `
		SELECT id, trip_id, name, email, is_owner, is_confirmed, created_at
		FROM participants
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanParticipant(row)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("repo.ParticipantRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgParticipantRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Participant, error) {
	const q = `
		SELECT id, trip_id, name, email, is_owner, is_confirmed, created_at
		FROM participants
		WHERE trip_id = @trip_id
		ORDER BY is_owner DESC, created_at ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.ParticipantRepo.ListByTripID: %w", err)
	}
	defer rows.Close()

	var participants []domain.Participant
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ParticipantRepo.ListByTripID: scan: %w", err)
		}
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ParticipantRepo.ListByTripID: rows: %w", err)
	}

	return participants, nil
}

func (r *pgParticipantRepo) Confirm(ctx context.Context, id uuid.UUID, name, email string) (domain.Participant, error) {
	const q = `
		UPDATE participants
		SET name         = @name,
		    email        = @email,
		    is_confirmed = true
		WHERE id = @id
		RETURNING id, trip_id, name, email, is_owner, is_confirmed, created_at`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "name": name, "email": email})
	result, err := scanParticipant(row)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("repo.ParticipantRepo.Confirm: %w", err)
	}
	return result, nil
}

// scanParticipant maps a single database row into a domain.Participant.
func scanParticipant(s scanner) (domain.Participant, error) {
	var (
		p      domain.Participant
		id     pgtype.UUID
		tripID pgtype.UUID
	)

	err := s.Scan(&id, &tripID, &p.Name, &p.Email, &p.IsOwner, &p.IsConfirmed, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Participant{}, domain.ErrNotFound
		}
		return domain.Participant{}, err
	}

	p.ID = uuid.UUID(id.Bytes)
	p.TripID = uuid.UUID(tripID.Bytes)
	return p, nil
}
