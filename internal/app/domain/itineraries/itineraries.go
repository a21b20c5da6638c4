package itineraries

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/eduardismund/tastetrails-web/internal/app/domain/geo"
	"github.com/eduardismund/tastetrails-web/internal/app/middleware"
	"github.com/eduardismund/tastetrails-web/internal/app/models"
)

const dateLayout = "2006-01-02"

// itineraryClient is the slice of the core backend used by the manager.
type itineraryClient interface {
	ListItineraries(ctx context.Context, userID uuid.UUID) ([]models.Itinerary, error)
	GetItinerary(ctx context.Context, itineraryID uuid.UUID) (*models.Itinerary, error)
	CreateItinerary(ctx context.Context, userID uuid.UUID, req models.CreateItineraryRequest) (*models.Itinerary, error)
}

// cityValidator reports whether a destination is a real city. The AI
// service's validation endpoint is preferred; the Maps geocoder is the
// fallback when that service is down.
type cityValidator interface {
	ValidateCity(ctx context.Context, destination string) (bool, error)
}

type cityResolver interface {
	ResolveCity(ctx context.Context, destination string) (*geo.CityLocation, error)
	NormalizeDestination(destination string) string
}

// Service manages itineraries through the backend, validating destinations
// and date ranges before creation. Validation here is advisory UX; the
// backend applies its own rules at persist time.
type Service struct {
	backend   itineraryClient
	validator cityValidator
	geo       cityResolver
	logger    *zap.Logger
}

func NewService(backend itineraryClient, validator cityValidator, resolver cityResolver, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{backend: backend, validator: validator, geo: resolver, logger: logger}
}

// List returns all itineraries of a user.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]models.Itinerary, error) {
	return s.backend.ListItineraries(ctx, userID)
}

// Get returns a single itinerary with its activities.
func (s *Service) Get(ctx context.Context, itineraryID uuid.UUID) (*models.Itinerary, error) {
	return s.backend.GetItinerary(ctx, itineraryID)
}

// Create validates the destination and date range, then persists the
// itinerary through the backend.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, req models.CreateItineraryRequest) (*models.Itinerary, error) {
	req.Destination = s.geo.NormalizeDestination(req.Destination)
	if req.Destination == "" {
		return nil, errors.Wrap(models.ErrValidation, "destination is required")
	}

	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return nil, errors.Wrap(models.ErrValidation, "start date must be YYYY-MM-DD")
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return nil, errors.Wrap(models.ErrValidation, "end date must be YYYY-MM-DD")
	}
	if end.Before(start) {
		return nil, errors.Wrap(models.ErrValidation, "end date must not be before start date")
	}

	if err := s.checkDestination(ctx, req.Destination); err != nil {
		return nil, err
	}

	return s.backend.CreateItinerary(ctx, userID, req)
}

func (s *Service) checkDestination(ctx context.Context, destination string) error {
	isCity, err := s.validator.ValidateCity(ctx, destination)
	if err == nil {
		if !isCity {
			return errors.Wrapf(models.ErrNotACity, "%q", destination)
		}
		return nil
	}

	s.logger.Warn("City validation service unavailable, falling back to geocoder",
		zap.String("destination", destination), zap.Error(err))

	loc, err := s.geo.ResolveCity(ctx, destination)
	if err != nil {
		return errors.Wrapf(models.ErrNotACity, "%q could not be verified", destination)
	}
	if !loc.IsCity {
		return errors.Wrapf(models.ErrNotACity, "%q", destination)
	}
	return nil
}

// Handlers exposes the itinerary manager over HTTP.
type Handlers struct {
	service *Service
	logger  *zap.Logger
}

func NewHandlers(service *Service, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{service: service, logger: logger}
}

// List handles GET /api/itineraries.
func (h *Handlers) List(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	itineraries, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		h.handleItineraryError(c, err, "list")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": itineraries})
}

// Get handles GET /api/itineraries/:id.
func (h *Handlers) Get(c *gin.Context) {
	itineraryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid itinerary id"})
		return
	}

	itinerary, err := h.service.Get(c.Request.Context(), itineraryID)
	if err != nil {
		h.handleItineraryError(c, err, "fetch")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": itinerary})
}

// Create handles POST /api/itineraries.
func (h *Handlers) Create(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req models.CreateItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid itinerary payload"})
		return
	}

	itinerary, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.handleItineraryError(c, err, "create")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": itinerary})
}

func (h *Handlers) handleItineraryError(c *gin.Context, err error, operation string) {
	switch {
	case errors.Is(err, models.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrNotACity):
		c.JSON(http.StatusBadRequest, gin.H{"error": "destination must be a city"})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "itinerary not found"})
	default:
		h.logger.Error("Itinerary operation failed", zap.String("operation", operation), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "itinerary service unavailable, please try again"})
	}
}
