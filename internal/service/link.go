package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/plannerhq/planner/internal/domain"
	"github.com/plannerhq/planner/internal/repo"
)

// LinkService implements business logic for Link operations.
type LinkService struct {
	trips repo.TripRepo
	links repo.LinkRepo
}

// NewLinkService constructs a LinkService backed by the provided repos.
func NewLinkService(trips repo.TripRepo, links repo.LinkRepo) *LinkService {
	return &LinkService{trips: trips, links: links}
}

// Create validates and persists a reference link under the trip.
// Returns domain.ErrNotFound if the trip does not exist,
// domain.ErrValidation on an empty title or a URL that is not absolute http(s).
func (s *LinkService) Create(ctx context.Context, link domain.Link) (domain.Link, error) {
	if _, err := s.trips.GetByID(ctx, link.TripID); err != nil {
		return domain.Link{}, fmt.Errorf("service.LinkService.Create: %w", err)
	}

	if tooShort(link.Title, 1) {
		return domain.Link{}, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if !validHTTPURL(link.URL) {
		return domain.Link{}, fmt.Errorf("%w: url must be a well-formed http(s) URL", domain.ErrValidation)
	}

	created, err := s.links.Create(ctx, link)
	if err != nil {
		return domain.Link{}, fmt.Errorf("service.LinkService.Create: %w", err)
	}
	return created, nil
}

// ListByTrip returns all links attached to the trip, oldest first.
// Always returns a non-nil slice so callers can safely range over it.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *LinkService) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Link, error) {
	if _, err := s.trips.GetByID(ctx, tripID); err != nil {
		return nil, fmt.Errorf("service.LinkService.ListByTrip: %w", err)
	}

	links, err := s.links.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.LinkService.ListByTrip: %w", err)
	}
	if links == nil {
		return []domain.Link{}, nil
	}
	return links, nil
}
