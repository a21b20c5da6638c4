package mapview

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/eduardismund/tastetrails-web/internal/app/domain/geo"
	"github.com/eduardismund/tastetrails-web/internal/app/models"
)

type activityClient interface {
	GetItinerary(ctx context.Context, itineraryID uuid.UUID) (*models.Itinerary, error)
}

type cityResolver interface {
	ResolveCity(ctx context.Context, destination string) (*geo.CityLocation, error)
}

// Handlers supplies the one-way payload consumed by the map/street-view
// widget: center, bounds and pins derived from committed activities. The
// widget itself renders on the client and sends nothing back.
type Handlers struct {
	backend activityClient
	geo     cityResolver
	apiKey  string
	logger  *zap.Logger
}

func NewHandlers(backend activityClient, resolver cityResolver, apiKey string, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{backend: backend, geo: resolver, apiKey: apiKey, logger: logger}
}

// pin is one activity marker on the map.
type pin struct {
	Title       string             `json:"title"`
	Theme       models.ThemeType   `json:"theme"`
	Coordinates models.Coordinates `json:"coordinates"`
	Heading     int                `json:"heading,omitempty"`
	Pitch       int                `json:"pitch,omitempty"`
}

type payload struct {
	Center models.Coordinates `json:"center"`
	Bounds *geo.Bounds        `json:"bounds,omitempty"`
	Pins   []pin              `json:"pins"`
	APIKey string             `json:"api_key"`
}

// ItineraryMap handles GET /api/itineraries/:id/map.
func (h *Handlers) ItineraryMap(c *gin.Context) {
	ctx := c.Request.Context()
	itineraryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid itinerary id"})
		return
	}

	itinerary, err := h.backend.GetItinerary(ctx, itineraryID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "itinerary not found"})
			return
		}
		h.logger.Error("Failed to fetch itinerary for map", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to load map data"})
		return
	}

	var points []models.Coordinates
	pins := make([]pin, 0, len(itinerary.Activities))
	for _, activity := range itinerary.Activities {
		coords, err := geo.ParseCoordinates(activity.Coordinates)
		if err != nil {
			continue
		}
		points = append(points, coords)
		pins = append(pins, pin{
			Title:       activity.Title,
			Theme:       activity.Theme,
			Coordinates: coords,
		})
	}

	// Destination centroid anchors the map when no activity has usable
	// coordinates yet.
	fallback := models.Coordinates{}
	if loc, err := h.geo.ResolveCity(ctx, itinerary.Destination); err == nil {
		fallback = loc.Coordinates
	}

	result := payload{
		Center: geo.CenterPoint(points, fallback),
		Pins:   pins,
		APIKey: h.apiKey,
	}
	if bounds, ok := geo.BoundingBox(points); ok {
		result.Bounds = &bounds
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
}

// streetViewRequest carries the camera parameters chosen by the AI for a
// candidate option.
type streetViewRequest struct {
	Coordinates models.Coordinates `json:"coordinates"`
	Heading     int                `json:"heading"`
	Pitch       int                `json:"pitch"`
	FOV         int                `json:"fov"`
}

// StreetView handles POST /api/mapview/street-view: it validates and echoes
// the camera payload with the API key attached, ready for the widget.
func (h *Handlers) StreetView(c *gin.Context) {
	var req streetViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid street view payload"})
		return
	}
	if !geo.ValidCoordinates(req.Coordinates) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "coordinates out of range"})
		return
	}
	if req.FOV == 0 {
		req.FOV = 90
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
		"coordinates": req.Coordinates,
		"heading":     req.Heading,
		"pitch":       req.Pitch,
		"fov":         req.FOV,
		"api_key":     h.apiKey,
	}})
}
