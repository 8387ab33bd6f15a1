// Package client is a Go client for the planner HTTP API. It is the
// counterpart of the mobile app's server modules: thin typed wrappers over
// the JSON endpoints, with API errors surfaced as *APIError values.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/plannerhq/planner/internal/domain"
)

// APIError is a non-2xx response decoded from the API's error body.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("planner api: %d %s: %s", e.Status, e.Code, e.Message)
}

// Client calls the planner API at a fixed base URL.
// The zero value is not usable; construct with New.
type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a Client for the API at baseURL. Pass nil to use a default
// http.Client with a 15-second timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// CreateTripRequest carries the POST /trips payload.
type CreateTripRequest struct {
	Destination    string    `json:"destination"`
	StartsAt       time.Time `json:"starts_at"`
	EndsAt         time.Time `json:"ends_at"`
	OwnerName      string    `json:"owner_name"`
	OwnerEmail     string    `json:"owner_email"`
	EmailsToInvite []string  `json:"emails_to_invite"`
}

// CreateTrip creates a trip and returns its id.
func (c *Client) CreateTrip(ctx context.Context, req CreateTripRequest) (string, error) {
	var out struct {
		TripID string `json:"tripId"`
	}
	if err := c.do(ctx, http.MethodPost, "/trips", req, &out); err != nil {
		return "", err
	}
	return out.TripID, nil
}

// GetTrip fetches a trip by id.
func (c *Client) GetTrip(ctx context.Context, tripID string) (domain.Trip, error) {
	var out struct {
		Trip domain.Trip `json:"trip"`
	}
	err := c.do(ctx, http.MethodGet, "/trips/"+tripID, nil, &out)
	return out.Trip, err
}

// ConfirmTrip follows the owner's confirmation link and returns the web URL
// the API redirects to. The redirect itself is not followed — the target is a
// browser page, not JSON.
func (c *Client) ConfirmTrip(ctx context.Context, tripID string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/trips/"+tripID+"/confirmation", nil)
	if err != nil {
		return "", fmt.Errorf("planner client: build request: %w", err)
	}

	// Shallow copy so only this call stops at the redirect.
	noFollow := *c.http
	noFollow.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}

	resp, err := noFollow.Do(req)
	if err != nil {
		return "", fmt.Errorf("planner client: confirm trip: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusFound {
		return "", decodeAPIError(resp)
	}
	return resp.Header.Get("Location"), nil
}

// UpdateTripRequest carries the PUT /trips/{id} payload.
type UpdateTripRequest struct {
	Destination string    `json:"destination"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
}

// UpdateTrip overwrites a trip's destination and date range.
func (c *Client) UpdateTrip(ctx context.Context, tripID string, req UpdateTripRequest) (domain.Trip, error) {
	var out struct {
		Trip domain.Trip `json:"trip"`
	}
	err := c.do(ctx, http.MethodPut, "/trips/"+tripID, req, &out)
	return out.Trip, err
}

// CreateActivity schedules an activity on the trip and returns its id.
func (c *Client) CreateActivity(ctx context.Context, tripID, title string, occursAt time.Time) (string, error) {
	body := map[string]any{"title": title, "occurs_at": occursAt}
	var out struct {
		ActivityID string `json:"activityId"`
	}
	if err := c.do(ctx, http.MethodPost, "/trips/"+tripID+"/activities", body, &out); err != nil {
		return "", err
	}
	return out.ActivityID, nil
}

// GetActivities returns the trip's activities grouped by calendar day.
func (c *Client) GetActivities(ctx context.Context, tripID string) ([]domain.DaySchedule, error) {
	var out struct {
		Activities []domain.DaySchedule `json:"activities"`
	}
	err := c.do(ctx, http.MethodGet, "/trips/"+tripID+"/activities", nil, &out)
	return out.Activities, err
}

// Invite adds an unconfirmed participant by email and returns the participant id.
func (c *Client) Invite(ctx context.Context, tripID, email string) (string, error) {
	var out struct {
		ParticipantID string `json:"participantId"`
	}
	if err := c.do(ctx, http.MethodPost, "/trips/"+tripID+"/invites", map[string]string{"email": email}, &out); err != nil {
		return "", err
	}
	return out.ParticipantID, nil
}

// GetParticipant fetches a participant by id.
func (c *Client) GetParticipant(ctx context.Context, participantID string) (domain.Participant, error) {
	var out struct {
		Participant domain.Participant `json:"participant"`
	}
	err := c.do(ctx, http.MethodGet, "/participants/"+participantID, nil, &out)
	return out.Participant, err
}

// ConfirmParticipant records the participant's name and email and marks them
// confirmed. Safe to call repeatedly.
func (c *Client) ConfirmParticipant(ctx context.Context, participantID, name, email string) error {
	body := map[string]string{"name": name, "email": email}
	return c.do(ctx, http.MethodPatch, "/participants/"+participantID+"/confirm", body, nil)
}

// GetParticipants lists all participants of the trip, owner first.
func (c *Client) GetParticipants(ctx context.Context, tripID string) ([]domain.Participant, error) {
	var out struct {
		Participants []domain.Participant `json:"participants"`
	}
	err := c.do(ctx, http.MethodGet, "/trips/"+tripID+"/participants", nil, &out)
	return out.Participants, err
}

// CreateLink attaches a reference link to the trip and returns the link id.
func (c *Client) CreateLink(ctx context.Context, tripID, title, url string) (string, error) {
	body := map[string]string{"title": title, "url": url}
	var out struct {
		LinkID string `json:"linkId"`
	}
	if err := c.do(ctx, http.MethodPost, "/trips/"+tripID+"/links", body, &out); err != nil {
		return "", err
	}
	return out.LinkID, nil
}

// GetLinks lists all links attached to the trip.
func (c *Client) GetLinks(ctx context.Context, tripID string) ([]domain.Link, error) {
	var out struct {
		Links []domain.Link `json:"links"`
	}
	err := c.do(ctx, http.MethodGet, "/trips/"+tripID+"/links", nil, &out)
	return out.Links, err
}

// do performs one JSON request/response round trip. A non-2xx status is
// decoded into an *APIError; out may be nil when no body is expected.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("planner client: marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("planner client: build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("planner client: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("planner client: decode response: %w", err)
	}
	return nil
}

// decodeAPIError builds an *APIError from a non-2xx response, falling back
// to the raw body when it is not the API's JSON error shape.
func decodeAPIError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var parsed struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &parsed); err == nil && parsed.Error.Code != "" {
		return &APIError{Status: resp.StatusCode, Code: parsed.Error.Code, Message: parsed.Error.Message}
	}
	return &APIError{Status: resp.StatusCode, Code: "unknown", Message: strings.TrimSpace(string(raw))}
}
