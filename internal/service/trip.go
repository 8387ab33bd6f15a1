// Package service contains the business logic for the planner API.
// Services validate inputs, enforce business rules, orchestrate repo calls,
// and trigger the email side effects of trip and invitation mutations.
// No SQL lives here — services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/plannerhq/planner/internal/domain"
	"github.com/plannerhq/planner/internal/mailer"
	"github.com/plannerhq/planner/internal/repo"
)

// CreateTripInput carries everything needed to create a trip with its
// initial participants.
type CreateTripInput struct {
	Destination    string
	StartsAt       time.Time
	EndsAt         time.Time
	OwnerName      string
	OwnerEmail     string
	EmailsToInvite []string
}

// TripService implements business logic for Trip operations.
type TripService struct {
	trips        repo.TripRepo
	participants repo.ParticipantRepo
	mail         mailer.Mailer
	log          *slog.Logger
	apiBaseURL   string
	webBaseURL   string
}

// NewTripService constructs a TripService. apiBaseURL is embedded in
// confirmation links sent by email; webBaseURL is where trip confirmation
// redirects land.
func NewTripService(trips repo.TripRepo, participants repo.ParticipantRepo, mail mailer.Mailer, log *slog.Logger, apiBaseURL, webBaseURL string) *TripService {
	return &TripService{
		trips:        trips,
		participants: participants,
		mail:         mail,
		log:          log,
		apiBaseURL:   apiBaseURL,
		webBaseURL:   webBaseURL,
	}
}

// Create validates the input, persists the trip together with the owner and
// one unconfirmed participant per invitee email (atomically), and emails the
// owner a confirmation link. A failed email send is logged but does not fail
// the creation — the trip already exists at that point.
func (s *TripService) Create(ctx context.Context, in CreateTripInput) (domain.Trip, error) {
	if err := validateTripFields(in.Destination, in.StartsAt, in.EndsAt); err != nil {
		return domain.Trip{}, err
	}
	if in.StartsAt.Before(time.Now()) {
		return domain.Trip{}, fmt.Errorf("%w: starts_at must not be in the past", domain.ErrValidation)
	}
	if tooShort(in.OwnerName, 1) {
		return domain.Trip{}, fmt.Errorf("%w: owner_name is required", domain.ErrValidation)
	}
	if !validEmail(in.OwnerEmail) {
		return domain.Trip{}, fmt.Errorf("%w: owner_email is not a valid email address", domain.ErrValidation)
	}
	for _, email := range in.EmailsToInvite {
		if !validEmail(email) {
			return domain.Trip{}, fmt.Errorf("%w: %q is not a valid email address", domain.ErrValidation, email)
		}
	}

	participants := make([]domain.Participant, 0, len(in.EmailsToInvite)+1)
	participants = append(participants, domain.Participant{
		Name:        in.OwnerName,
		Email:       in.OwnerEmail,
		IsOwner:     true,
		IsConfirmed: true,
	})
	for _, email := range in.EmailsToInvite {
		participants = append(participants, domain.Participant{Email: email})
	}

	trip, _, err := s.trips.CreateWithParticipants(ctx, domain.Trip{
		Destination: in.Destination,
		StartsAt:    in.StartsAt,
		EndsAt:      in.EndsAt,
	}, participants)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}

	s.sendConfirmation(ctx, trip, in.OwnerEmail)

	return trip, nil
}

// GetByID returns a single trip by ID.
func (s *TripService) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return trip, nil
}

// Confirm marks the trip as confirmed and emails every non-owner participant
// an invitation carrying their individual confirmation link. Returns the web
// URL the caller should redirect to.
//
// Confirming an already-confirmed trip is idempotent: no state change, no
// emails, just the redirect URL. The email fan-out is best-effort — a failed
// send is logged and does not roll back the confirmation or stop the
// remaining sends.
func (s *TripService) Confirm(ctx context.Context, id uuid.UUID) (string, error) {
	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return "", fmt.Errorf("service.TripService.Confirm: %w", err)
	}

	redirect := fmt.Sprintf("%s/trips/%s", s.webBaseURL, trip.ID)

	if trip.IsConfirmed {
		return redirect, nil
	}

	trip, err = s.trips.Confirm(ctx, id)
	if err != nil {
		return "", fmt.Errorf("service.TripService.Confirm: %w", err)
	}

	participants, err := s.participants.ListByTripID(ctx, id)
	if err != nil {
		return "", fmt.Errorf("service.TripService.Confirm: %w", err)
	}

	var wg sync.WaitGroup
	for _, p := range participants {
		if p.IsOwner {
			continue
		}
		wg.Add(1)
		go func(p domain.Participant) {
			defer wg.Done()
			s.sendInvitation(ctx, trip, p)
		}(p)
	}
	wg.Wait()

	return redirect, nil
}

// Update validates and overwrites destination, starts_at, and ends_at.
// Unlike Create, a start date in the past is allowed — a trip already
// underway must stay editable.
func (s *TripService) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if err := validateTripFields(trip.Destination, trip.StartsAt, trip.EndsAt); err != nil {
		return domain.Trip{}, err
	}

	updated, err := s.trips.Update(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return updated, nil
}

// sendConfirmation emails a trip confirmation link. Failures are logged, never returned.
func (s *TripService) sendConfirmation(ctx context.Context, trip domain.Trip, to string) {
	subject, body, err := mailer.RenderTripConfirmation(mailer.TripMessage{
		Destination:      trip.Destination,
		StartsAt:         trip.StartsAt,
		EndsAt:           trip.EndsAt,
		ConfirmationLink: fmt.Sprintf("%s/trips/%s/confirmation", s.apiBaseURL, trip.ID),
	})
	if err != nil {
		s.log.Error("render trip confirmation email", "trip_id", trip.ID, "error", err)
		return
	}
	if err := s.mail.Send(ctx, to, subject, body); err != nil {
		s.log.Error("send trip confirmation email", "trip_id", trip.ID, "to", to, "error", err)
	}
}

// sendInvitation emails one participant their confirm-attendance link.
// Failures are logged, never returned.
func (s *TripService) sendInvitation(ctx context.Context, trip domain.Trip, p domain.Participant) {
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

// validateTripFields enforces the rules common to both Create and Update.
//   - Destination must be at least 4 characters after trimming.
//   - EndsAt must not be before StartsAt.
func validateTripFields(destination string, startsAt, endsAt time.Time) error {
	if tooShort(destination, 4) {
		return fmt.Errorf("%w: destination must be at least 4 characters", domain.ErrValidation)
	}
	if endsAt.Before(startsAt) {
		return fmt.Errorf("%w: ends_at must not be before starts_at", domain.ErrValidation)
	}
	return nil
}
