package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/plannerhq/planner/internal/domain"
)

// errorDetail is the machine-readable error payload.
type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorResponse is the body of every non-2xx JSON response.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

// notFoundBody returns an errorResponse for a missing resource.
// The caller supplies the human-readable message (e.g. "trip not found")
// because the handler is the layer that knows what was being looked up.
func notFoundBody(message string) errorResponse {
	return errorResponse{Error: errorDetail{Code: "not_found", Message: message}}
}

// validationBody returns an errorResponse for a domain validation failure.
// The message is extracted from the wrapped domain.ErrValidation error.
func validationBody(err error) errorResponse {
	return errorResponse{Error: errorDetail{Code: "validation_error", Message: unwrapMessage(err)}}
}

// requestBody returns an errorResponse for a bad request rejected before
// reaching the service layer (e.g. missing or malformed body).
func requestBody(message string) errorResponse {
	return errorResponse{Error: errorDetail{Code: "validation_error", Message: message}}
}

// internalBody returns the opaque errorResponse for unexpected failures.
// Details stay in the server log.
func internalBody() errorResponse {
	return errorResponse{Error: errorDetail{Code: "internal_error", Message: "internal server error"}}
}

// writeJSON serializes v with the given status. Encoding failures are
// swallowed — the status line has already been written at that point.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeServiceError maps a service-layer error to the appropriate HTTP
// response: 404 for ErrNotFound (with the supplied resource message), 422
// for ErrValidation, 500 with an opaque body for anything else.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, notFoundBody(notFoundMsg))
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusUnprocessableEntity, validationBody(err))
	default:
		s.log.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, internalBody())
	}
}

// unwrapMessage extracts the human-readable part from a wrapped sentinel error.
// e.g. "service.TripService.Create: validation error: destination must be at
// least 4 characters" → "destination must be at least 4 characters".
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for _, prefix := range []string{
		"service.TripService.Create: ",
		"service.TripService.Update: ",
		"service.ParticipantService.Invite: ",
		"service.ParticipantService.Confirm: ",
		"service.ActivityService.Create: ",
		"service.LinkService.Create: ",
	} {
		if len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
			msg = msg[len(prefix):]
			break
		}
	}
	const sentinel = "validation error: "
	if len(msg) > len(sentinel) && msg[:len(sentinel)] == sentinel {
		msg = msg[len(sentinel):]
	}
	return msg
}
