package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/plannerhq/planner/internal/domain"
	"github.com/plannerhq/planner/internal/mailer"
	"github.com/plannerhq/planner/internal/repo"
)

// ParticipantService implements business logic for participant and
// invitation operations. It holds the trip repo as well because inviting
// requires verifying the parent trip exists.
type ParticipantService struct {
	trips        repo.TripRepo
	participants repo.ParticipantRepo
	mail         mailer.Mailer
	log          *slog.Logger
	apiBaseURL   string
}

// NewParticipantService constructs a ParticipantService backed by the provided repos.
func NewParticipantService(trips repo.TripRepo, participants repo.ParticipantRepo, mail mailer.Mailer, log *slog.Logger, apiBaseURL string) *ParticipantService {
	return &ParticipantService{
		trips:        trips,
		participants: participants,
		mail:         mail,
		log:          log,
		apiBaseURL:   apiBaseURL,
	}
}

// Invite creates an unconfirmed participant for the email under the trip and
// sends them an invitation email. No uniqueness is enforced — inviting the
// same email twice creates two participants, each with their own link.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *ParticipantService) Invite(ctx context.Context, tripID uuid.UUID, email string) (domain.Participant, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("service.ParticipantService.Invite: %w", err)
	}
	if !validEmail(email) {
		return domain.Participant{}, fmt.Errorf("%w: %q is not a valid email address", domain.ErrValidation, email)
	}

	participant, err := s.participants.Create(ctx, domain.Participant{
		TripID: tripID,
		Email:  email,
	})
	if err != nil {
		return domain.Participant{}, fmt.Errorf("service.ParticipantService.Invite: %w", err)
	}

	s.sendInvitation(ctx, trip, participant)

	return participant, nil
}

// Confirm records the participant's name and email and marks them confirmed.
// Re-confirming is safe from the caller's perspective; each call overwrites
// name and email with the supplied values.
// Returns domain.ErrValidation on missing name or malformed email,
// domain.ErrNotFound if the participant does not exist.
func (s *ParticipantService) Confirm(ctx context.Context, id uuid.UUID, name, email string) (domain.Participant, error) {
	if tooShort(name, 1) {
		return domain.Participant{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if !validEmail(email) {
		return domain.Participant{}, fmt.Errorf("%w: email is not a valid email address", domain.ErrValidation)
	}

	participant, err := s.participants.Confirm(ctx, id, name, email)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("service.ParticipantService.Confirm: %w", err)
	}
	return participant, nil
}

// GetByID returns a single participant by ID.
func (s *ParticipantService) GetByID(ctx context.Context, id uuid.UUID) (domain.Participant, error) {
	participant, err := s.participants.GetByID(ctx, id)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("service.ParticipantService.GetByID: %w", err)
	}
	return participant, nil
}

// ListByTrip returns all participants of a trip, owner first.
// Always returns a non-nil slice so callers can safely range over it.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *ParticipantService) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Participant, error) {
	if _, err := s.trips.GetByID(ctx, tripID); err != nil {
		return nil, fmt.Errorf("service.ParticipantService.ListByTrip: %w", err)
	}

	participants, err := s.participants.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ParticipantService.ListByTrip: %w", err)
	}
	if participants == nil {
		return []domain.Participant{}, nil
	}
	return participants, nil
}

// sendInvitation emails the participant their confirm-attendance link.
// Failures are logged, never returned — the invitation row already exists.
func (s *ParticipantService) sendInvitation(ctx context.Context, trip domain.Trip, p domain.Participant) {
	subject, body, err := mailer.RenderParticipantInvitation(mailer.TripMessage{
		Destination:      trip.Destination,
		StartsAt:         trip.StartsAt,
		EndsAt:           trip.EndsAt,
		ConfirmationLink: fmt.Sprintf("%s/participants/%s/confirm", s.apiBaseURL, p.ID),
	})
	if err != nil {
		s.log.Error("render invitation email", "participant_id", p.ID, "error", err)
		return
	}
	if err := s.mail.Send(ctx, p.Email, subject, body); err != nil {
		s.log.Error("send invitation email", "participant_id", p.ID, "to", p.Email, "error", err)
	}
}
