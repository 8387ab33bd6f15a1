// Package handler implements the HTTP handlers for the planner API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (trip.go, participant.go, etc.) but all share the same Server struct
// so they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/plannerhq/planner/internal/domain"
	"github.com/plannerhq/planner/internal/service"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type TripServicer interface {
	Create(ctx context.Context, in service.CreateTripInput) (domain.Trip, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	Confirm(ctx context.Context, id uuid.UUID) (string, error)
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)
}

// ParticipantServicer defines the business operations the participant handlers depend on.
type ParticipantServicer interface {
	Invite(ctx context.Context, tripID uuid.UUID, email string) (domain.Participant, error)
	Confirm(ctx context.Context, id uuid.UUID, name, email string) (domain.Participant, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Participant, error)
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Participant, error)
}

// ActivityServicer defines the business operations the activity handlers depend on.
type ActivityServicer interface {
	Create(ctx context.Context, activity domain.Activity) (domain.Activity, error)
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.DaySchedule, error)
}

// LinkServicer defines the business operations the link handlers depend on.
type LinkServicer interface {
	Create(ctx context.Context, link domain.Link) (domain.Link, error)
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Link, error)
}

// Server holds the handlers for all API endpoints.
// Methods are in domain-specific files but all operate on this struct.
type Server struct {
	trips        TripServicer
	participants ParticipantServicer
	activities   ActivityServicer
	links        LinkServicer
	log          *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(trips TripServicer, participants ParticipantServicer, activities ActivityServicer, links LinkServicer, log *slog.Logger) *Server {
	return &Server{
		trips:        trips,
		participants: participants,
		activities:   activities,
		links:        links,
		log:          log,
	}
}

// Routes builds the chi route table for the full API surface.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.handleHealth)

	r.Route("/trips", func(r chi.Router) {
		r.Post("/", s.handleCreateTrip)
		r.Route("/{tripID}", func(r chi.Router) {
			r.Get("/", s.handleGetTrip)
			r.Put("/", s.handleUpdateTrip)
			r.Get("/confirmation", s.handleConfirmTrip)
			r.Post("/activities", s.handleCreateActivity)
			r.Get("/activities", s.handleListActivities)
			r.Post("/invites", s.handleCreateInvite)
			r.Get("/participants", s.handleListParticipants)
			r.Post("/links", s.handleCreateLink)
			r.Get("/links", s.handleListLinks)
		})
	})

	r.Route("/participants/{participantID}", func(r chi.Router) {
		r.Get("/", s.handleGetParticipant)
		r.Patch("/confirm", s.handleConfirmParticipant)
	})
	// Singular alias kept for clients built against the original surface.
	r.Get("/participant/{participantID}", s.handleGetParticipant)

	return r
}

// urlID parses the named chi URL parameter as a UUID. On failure it writes a
// 422 response and returns false; the caller should return immediately.
func (s *Server) urlID(w http.ResponseWriter, r *http.Request, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("invalid "+param))
		return uuid.Nil, false
	}
	return id, true
}
