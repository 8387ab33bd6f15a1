package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plannerhq/planner/internal/domain"
	"github.com/plannerhq/planner/internal/handler"
)

type mockLinkServicer struct {
	create     func(ctx context.Context, link domain.Link) (domain.Link, error)
	listByTrip func(ctx context.Context, tripID uuid.UUID) ([]domain.Link, error)
}

func (m *mockLinkServicer) Create(ctx context.Context, link domain.Link) (domain.Link, error) {
	return m.create(ctx, link)
}
func (m *mockLinkServicer) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Link, error) {
	return m.listByTrip(ctx, tripID)
}

var _ handler.LinkServicer = (*mockLinkServicer)(nil)

// ---- POST /trips/{tripID}/links ---------------------------------------------

func TestCreateLink_201(t *testing.T) {
	tripID := uuid.New()
	linkID := uuid.New()
	svc := &mockLinkServicer{
		create: func(_ context.Context, link domain.Link) (domain.Link, error) {
			assert.Equal(t, tripID, link.TripID)
			assert.Equal(t, "Airbnb reservation", link.Title)
			assert.Equal(t, "https://airbnb.com/rooms/123", link.URL)
			link.ID = linkID
			return link, nil
		},
	}

	body := jsonBody(t, map[string]any{"title": "Airbnb reservation", "url": "https://airbnb.com/rooms/123"})
	rec := doRequest(t, newHTTPHandler(nil, nil, nil, svc),
		http.MethodPost, "/trips/"+tripID.String()+"/links", body)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		LinkID string `json:"linkId"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, linkID.String(), resp.LinkID)
}

func TestCreateLink_422_BadURL(t *testing.T) {
	svc := &mockLinkServicer{
		create: func(_ context.Context, _ domain.Link) (domain.Link, error) {
			return domain.Link{}, fmt.Errorf("%w: url must be a well-formed http(s) URL", domain.ErrValidation)
		},
	}

	body := jsonBody(t, map[string]any{"title": "Airbnb reservation", "url": "airbnb.com"})
	rec := doRequest(t, newHTTPHandler(nil, nil, nil, svc),
		http.MethodPost, "/trips/"+uuid.NewString()+"/links", body)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "validation_error", errorCode(t, rec))
}

func TestCreateLink_404_TripMissing(t *testing.T) {
	svc := &mockLinkServicer{
		create: func(_ context.Context, _ domain.Link) (domain.Link, error) {
			return domain.Link{}, domain.ErrNotFound
		},
	}

	body := jsonBody(t, map[string]any{"title": "Airbnb reservation", "url": "https://airbnb.com/rooms/123"})
	rec := doRequest(t, newHTTPHandler(nil, nil, nil, svc),
		http.MethodPost, "/trips/"+uuid.NewString()+"/links", body)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ---- GET /trips/{tripID}/links ----------------------------------------------

func TestListLinks_200(t *testing.T) {
	tripID := uuid.New()
	svc := &mockLinkServicer{
		listByTrip: func(_ context.Context, gotTripID uuid.UUID) ([]domain.Link, error) {
			assert.Equal(t, tripID, gotTripID)
			return []domain.Link{
				{ID: uuid.New(), Title: "Airbnb reservation", URL: "https://airbnb.com/rooms/123"},
			}, nil
		},
	}

	rec := doRequest(t, newHTTPHandler(nil, nil, nil, svc),
		http.MethodGet, "/trips/"+tripID.String()+"/links", nil)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Links []domain.Link `json:"links"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Links, 1)
	assert.Equal(t, "Airbnb reservation", resp.Links[0].Title)
}

func TestListLinks_200_Empty(t *testing.T) {
	svc := &mockLinkServicer{
		listByTrip: func(_ context.Context, _ uuid.UUID) ([]domain.Link, error) {
			return []domain.Link{}, nil
		},
	}

	rec := doRequest(t, newHTTPHandler(nil, nil, nil, svc),
		http.MethodGet, "/trips/"+uuid.NewString()+"/links", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"links":[]`)
}

func TestListLinks_404(t *testing.T) {
	svc := &mockLinkServicer{
		listByTrip: func(_ context.Context, _ uuid.UUID) ([]domain.Link, error) {
			return nil, domain.ErrNotFound
		},
	}

	rec := doRequest(t, newHTTPHandler(nil, nil, nil, svc),
		http.MethodGet, "/trips/"+uuid.NewString()+"/links", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
