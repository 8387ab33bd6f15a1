package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/plannerhq/planner/internal/domain"
	"github.com/plannerhq/planner/internal/service"
)

// createTripRequest is the body of POST /trips.
type createTripRequest struct {
	Destination    string    `json:"destination"`
	StartsAt       time.Time `json:"starts_at"`
	EndsAt         time.Time `json:"ends_at"`
	OwnerName      string    `json:"owner_name"`
	OwnerEmail     string    `json:"owner_email"`
	EmailsToInvite []string  `json:"emails_to_invite"`
}

// updateTripRequest is the body of PUT /trips/{tripID}.
type updateTripRequest struct {
	Destination string    `json:"destination"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
}

// handleCreateTrip handles POST /trips.
func (s *Server) handleCreateTrip(w http.ResponseWriter, r *http.Request) {
	var req createTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("invalid request body"))
		return
	}

	trip, err := s.trips.Create(r.Context(), service.CreateTripInput{
		Destination:    req.Destination,
		StartsAt:       req.StartsAt,
		EndsAt:         req.EndsAt,
		OwnerName:      req.OwnerName,
		OwnerEmail:     req.OwnerEmail,
		EmailsToInvite: req.EmailsToInvite,
	})
	if err != nil {
		s.writeServiceError(w, r, err, "trip not found")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"tripId": trip.ID.String()})
}

// handleGetTrip handles GET /trips/{tripID}.
func (s *Server) handleGetTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := s.urlID(w, r, "tripID")
	if !ok {
		return
	}

	trip, err := s.trips.GetByID(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err, "trip not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]domain.Trip{"trip": trip})
}

// handleUpdateTrip handles PUT /trips/{tripID}.
func (s *Server) handleUpdateTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := s.urlID(w, r, "tripID")
	if !ok {
		return
	}

	var req updateTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("invalid request body"))
		return
	}

	trip, err := s.trips.Update(r.Context(), domain.Trip{
		ID:          id,
		Destination: req.Destination,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
	})
	if err != nil {
		s.writeServiceError(w, r, err, "trip not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]domain.Trip{"trip": trip})
}

// handleConfirmTrip handles GET /trips/{tripID}/confirmation.
// On success the response is a redirect to the web trip view, not a JSON
// payload — the link arrives by email and is opened in a browser.
func (s *Server) handleConfirmTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := s.urlID(w, r, "tripID")
	if !ok {
		return
	}

	redirect, err := s.trips.Confirm(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err, "trip not found")
		return
	}

	http.Redirect(w, r, redirect, http.StatusFound)
}
