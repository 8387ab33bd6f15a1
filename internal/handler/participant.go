package handler

import (
	"encoding/json"
	"net/http"

	"github.com/plannerhq/planner/internal/domain"
)

// createInviteRequest is the body of POST /trips/{tripID}/invites.
type createInviteRequest struct {
	Email string `json:"email"`
}

// confirmParticipantRequest is the body of PATCH /participants/{participantID}/confirm.
type confirmParticipantRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// participantResponse is what GET /participants/{participantID} exposes.
// Trip linkage is deliberately absent: the participant id arrives via an
// emailed link and should not leak the rest of the trip.
type participantResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name,omitempty"`
	Email       string `json:"email"`
	IsConfirmed bool   `json:"is_confirmed"`
}

// handleCreateInvite handles POST /trips/{tripID}/invites.
func (s *Server) handleCreateInvite(w http.ResponseWriter, r *http.Request) {
	tripID, ok := s.urlID(w, r, "tripID")
	if !ok {
		return
	}

	var req createInviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("invalid request body"))
		return
	}

	participant, err := s.participants.Invite(r.Context(), tripID, req.Email)
	if err != nil {
		s.writeServiceError(w, r, err, "trip not found")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"participantId": participant.ID.String()})
}

// handleGetParticipant handles GET /participants/{participantID}.
func (s *Server) handleGetParticipant(w http.ResponseWriter, r *http.Request) {
	id, ok := s.urlID(w, r, "participantID")
	if !ok {
		return
	}

	participant, err := s.participants.GetByID(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err, "participant not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]participantResponse{
		"participant": {
			ID:          participant.ID.String(),
			Name:        participant.Name,
			Email:       participant.Email,
			IsConfirmed: participant.IsConfirmed,
		},
	})
}

// handleConfirmParticipant handles PATCH /participants/{participantID}/confirm.
// The mobile client re-invokes this safely; each call overwrites name and email.
func (s *Server) handleConfirmParticipant(w http.ResponseWriter, r *http.Request) {
	id, ok := s.urlID(w, r, "participantID")
	if !ok {
		return
	}

	var req confirmParticipantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("invalid request body"))
		return
	}

	if _, err := s.participants.Confirm(r.Context(), id, req.Name, req.Email); err != nil {
		s.writeServiceError(w, r, err, "participant not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleListParticipants handles GET /trips/{tripID}/participants.
func (s *Server) handleListParticipants(w http.ResponseWriter, r *http.Request) {
	tripID, ok := s.urlID(w, r, "tripID")
	if !ok {
		return
	}

	participants, err := s.participants.ListByTrip(r.Context(), tripID)
	if err != nil {
		s.writeServiceError(w, r, err, "trip not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string][]domain.Participant{"participants": participants})
}
