package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plannerhq/planner/client"
)

func TestCreateTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/trips", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Florianópolis, Brazil", body["destination"])
		assert.Equal(t, "Ada Lovelace", body["owner_name"])

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"tripId":"trip-123"}`))
	}))
	defer srv.Close()

	c := client.New(srv.URL, nil)
	id, err := c.CreateTrip(context.Background(), client.CreateTripRequest{
		Destination: "Florianópolis, Brazil",
		StartsAt:    time.Now().AddDate(0, 1, 0),
		EndsAt:      time.Now().AddDate(0, 1, 7),
		OwnerName:   "Ada Lovelace",
		OwnerEmail:  "ada@example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, "trip-123", id)
}

func TestCreateTrip_ValidationError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error":{"code":"validation_error","message":"destination must be at least 4 characters"}}`))
	}))
	defer srv.Close()

	c := client.New(srv.URL, nil)
	_, err := c.CreateTrip(context.Background(), client.CreateTripRequest{Destination: "Rio"})

	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	assert.Equal(t, "validation_error", apiErr.Code)
	assert.Equal(t, "destination must be at least 4 characters", apiErr.Message)
}

func TestConfirmTrip_StopsAtRedirect(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/trips/trip-123/confirmation", r.URL.Path)
		// The client must surface this Location instead of following it.
		http.Redirect(w, r, "http://web.test/trips/trip-123", http.StatusFound)
	}))
	defer srv.Close()

	c := client.New(srv.URL, nil)
	location, err := c.ConfirmTrip(context.Background(), "trip-123")

	require.NoError(t, err)
	assert.Equal(t, "http://web.test/trips/trip-123", location)
}

func TestConfirmTrip_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"code":"not_found","message":"trip not found"}}`))
	}))
	defer srv.Close()

	c := client.New(srv.URL, nil)
	_, err := c.ConfirmTrip(context.Background(), "ghost")

	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "not_found", apiErr.Code)
}

func TestGetActivities(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/trips/trip-123/activities", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"activities":[
			{"date":"2026-07-10T00:00:00Z","activities":[{"title":"Arrival dinner","occurs_at":"2026-07-10T19:00:00Z"}]},
			{"date":"2026-07-11T00:00:00Z","activities":[]}
		]}`))
	}))
	defer srv.Close()

	c := client.New(srv.URL, nil)
	schedule, err := c.GetActivities(context.Background(), "trip-123")

	require.NoError(t, err)
	require.Len(t, schedule, 2)
	assert.Equal(t, "Arrival dinner", schedule[0].Activities[0].Title)
	assert.Empty(t, schedule[1].Activities)
}

func TestConfirmParticipant_NoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/participants/p-1/confirm", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Grace Hopper", body["name"])

		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := client.New(srv.URL, nil)
	err := c.ConfirmParticipant(context.Background(), "p-1", "Grace Hopper", "grace@example.com")

	assert.NoError(t, err)
}

func TestDecodeAPIError_NonJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream hiccup"))
	}))
	defer srv.Close()

	c := client.New(srv.URL, nil)
	_, err := c.GetTrip(context.Background(), "trip-123")

	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "unknown", apiErr.Code)
	assert.Equal(t, "upstream hiccup", apiErr.Message)
}
