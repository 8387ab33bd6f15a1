package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/plannerhq/planner/internal/domain"
)

// createActivityRequest is the body of POST /trips/{tripID}/activities.
type createActivityRequest struct {
	Title    string    `json:"title"`
	OccursAt time.Time `json:"occurs_at"`
}

// handleCreateActivity handles POST /trips/{tripID}/activities.
func (s *Server) handleCreateActivity(w http.ResponseWriter, r *http.Request) {
	tripID, ok := s.urlID(w, r, "tripID")
	if !ok {
		return
	}

	var req createActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("invalid request body"))
		return
	}

	activity, err := s.activities.Create(r.Context(), domain.Activity{
		TripID:   tripID,
		Title:    req.Title,
		OccursAt: req.OccursAt,
	})
	if err != nil {
		s.writeServiceError(w, r, err, "trip not found")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"activityId": activity.ID.String()})
}

// handleListActivities handles GET /trips/{tripID}/activities.
// The response groups activities by calendar day across the trip's full
// range, so the client can render one section per day without regrouping.
func (s *Server) handleListActivities(w http.ResponseWriter, r *http.Request) {
	tripID, ok := s.urlID(w, r, "tripID")
	if !ok {
		return
	}

	schedule, err := s.activities.ListByTrip(r.Context(), tripID)
	if err != nil {
		s.writeServiceError(w, r, err, "trip not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string][]domain.DaySchedule{"activities": schedule})
}
