package geo

import (
	"context"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"googlemaps.github.io/maps"

	"github.com/eduardismund/tastetrails-web/internal/app/models"
)

// geocoder is the slice of the Google Maps client this service uses.
type geocoder interface {
	Geocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

// Service wraps the Google Maps platform for destination geocoding and city
// validation. Geocoding results are stable, so they are cached with a TTL;
// this mirrors nothing else in the app, where activity reads are always
// fresh.
type Service struct {
	client geocoder
	cache  *cache.Cache
	logger *zap.Logger
	titler cases.Caser
}

// CityLocation is a resolved destination.
type CityLocation struct {
	Name        string             `json:"name"`
	Coordinates models.Coordinates `json:"coordinates"`
	IsCity      bool               `json:"is_city"`
}

func NewService(apiKey string, cacheTTL time.Duration, logger *zap.Logger) (*Service, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, errors.Wrap(err, "create maps client")
	}
	return newService(client, cacheTTL, logger), nil
}

func newService(client geocoder, cacheTTL time.Duration, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		client: client,
		cache:  cache.New(cacheTTL, 2*cacheTTL),
		logger: logger,
		titler: cases.Title(language.English),
	}
}

// NormalizeDestination canonicalizes a destination for display and lookup
// ("  lisbon " -> "Lisbon").
func (s *Service) NormalizeDestination(destination string) string {
	return s.titler.String(strings.ToLower(strings.TrimSpace(destination)))
}

// ResolveCity geocodes a destination and reports whether it is a city.
// Results are cached per normalized name for the configured TTL.
func (s *Service) ResolveCity(ctx context.Context, destination string) (*CityLocation, error) {
	name := s.NormalizeDestination(destination)
	if name == "" {
		return nil, errors.Wrap(models.ErrValidation, "destination cannot be empty")
	}

	if cached, ok := s.cache.Get(name); ok {
		loc := cached.(CityLocation)
		return &loc, nil
	}

	results, err := s.client.Geocode(ctx, &maps.GeocodingRequest{Address: name})
	if err != nil {
		return nil, errors.Wrap(err, "geocode destination")
	}
	if len(results) == 0 {
		return nil, errors.Wrapf(models.ErrNotFound, "no location found for %q", name)
	}

	first := results[0]
	loc := CityLocation{
		Name: name,
		Coordinates: models.Coordinates{
			Lat: first.Geometry.Location.Lat,
			Lng: first.Geometry.Location.Lng,
		},
		IsCity: isCityResult(first.Types),
	}
	s.cache.Set(name, loc, cache.DefaultExpiration)

	s.logger.Debug("Resolved destination",
		zap.String("destination", name),
		zap.Bool("is_city", loc.IsCity),
		zap.Float64("lat", loc.Coordinates.Lat),
		zap.Float64("lng", loc.Coordinates.Lng))
	return &loc, nil
}

// isCityResult checks geocoder result types for a city-level match.
func isCityResult(types []string) bool {
	for _, t := range types {
		switch t {
		case "locality", "postal_town", "administrative_area_level_1", "administrative_area_level_2":
			return true
		}
	}
	return false
}
