package handler

import (
	"encoding/json"
	"net/http"

	"github.com/plannerhq/planner/internal/domain"
)

// createLinkRequest is the body of POST /trips/{tripID}/links.
type createLinkRequest struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// handleCreateLink handles POST /trips/{tripID}/links.
func (s *Server) handleCreateLink(w http.ResponseWriter, r *http.Request) {
	tripID, ok := s.urlID(w, r, "tripID")
	if !ok {
		return
	}

	var req createLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("invalid request body"))
		return
	}

	link, err := s.links.Create(r.Context(), domain.Link{
		TripID: tripID,
		Title:  req.Title,
		URL:    req.URL,
	})
	if err != nil {
		s.writeServiceError(w, r, err, "trip not found")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"linkId": link.ID.String()})
}

// handleListLinks handles GET /trips/{tripID}/links.
func (s *Server) handleListLinks(w http.ResponseWriter, r *http.Request) {
	tripID, ok := s.urlID(w, r, "tripID")
	if !ok {
		return
	}

	links, err := s.links.ListByTrip(r.Context(), tripID)
	if err != nil {
		s.writeServiceError(w, r, err, "trip not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string][]domain.Link{"links": links})
}
