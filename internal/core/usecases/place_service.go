package usecases

import (
	"context"
	"fmt"

	"github.com/samirrijal/mashup/internal/core/domain"
	"github.com/samirrijal/mashup/internal/core/ports"
)

// MaxPlacesInView caps the markers returned for one map viewport.
const MaxPlacesInView = 10

// PlaceService handles place search and viewport queries.
type PlaceService struct {
	places ports.PlaceRepository
}

// NewPlaceService creates a new PlaceService.
func NewPlaceService(places ports.PlaceRepository) *PlaceService {
	return &PlaceService{places: places}
}

// Search returns places matching a city, state or postal code prefix.
func (s *PlaceService) Search(ctx context.Context, query string) ([]domain.Place, error) {
	if query == "" {
		return nil, fmt.Errorf("%w: search query must not be empty", domain.ErrInvalidArgument)
	}

	places, err := s.places.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search places: %w", err)
	}
	if places == nil {
		places = []domain.Place{}
	}
	return places, nil
}

// InView returns up to MaxPlacesInView distinct places inside the viewport,
// sampled at random when more are visible.
func (s *PlaceService) InView(ctx context.Context, b domain.Bounds) ([]domain.Place, error) {
	places, err := s.places.InBounds(ctx, b, MaxPlacesInView)
	if err != nil {
		return nil, fmt.Errorf("places in view: %w", err)
	}
	if len(places) > MaxPlacesInView {
		places = places[:MaxPlacesInView]
	}
	if places == nil {
		places = []domain.Place{}
	}
	return places, nil
}

// Ping checks that the places store is reachable.
func (s *PlaceService) Ping(ctx context.Context) error {
	return s.places.Ping(ctx)
}
