package dashboard

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/eduardismund/tastetrails-web/internal/app/clients/tasteai"
	"github.com/eduardismund/tastetrails-web/internal/app/middleware"
	"github.com/eduardismund/tastetrails-web/internal/app/models"
)

type backendClient interface {
	GetUser(ctx context.Context, userID uuid.UUID) (*models.User, error)
	GetTasteProfile(ctx context.Context, userID uuid.UUID) (*models.TasteProfile, error)
	ListItineraries(ctx context.Context, userID uuid.UUID) ([]models.Itinerary, error)
}

type suggestionClient interface {
	GenerateDailySuggestions(ctx context.Context, req tasteai.DailySuggestionsRequest) ([]models.ActivityOption, error)
}

// Handlers backs the dashboard page: the user summary plus same-day
// activity suggestions flavored by the taste profile and the cities the
// user is already planning to visit.
type Handlers struct {
	backend backendClient
	ai      suggestionClient
	logger  *zap.Logger
}

func NewHandlers(backend backendClient, ai suggestionClient, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{backend: backend, ai: ai, logger: logger}
}

// Summary handles GET /api/dashboard.
func (h *Handlers) Summary(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	user, err := h.backend.GetUser(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to fetch user summary", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to load dashboard"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": user})
}

// DailySuggestions handles GET /api/dashboard/suggestions.
func (h *Handlers) DailySuggestions(c *gin.Context) {
	ctx := c.Request.Context()
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	profile, err := h.backend.GetTasteProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusOK, gin.H{"success": true, "data": []models.ActivityOption{},
				"message": "build your taste profile to unlock suggestions"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch taste profile"})
		return
	}

	preferences := profile.NonEmptyPreferences()
	if preferences.IsEmpty() {
		c.JSON(http.StatusOK, gin.H{"success": true, "data": []models.ActivityOption{},
			"message": "build your taste profile to unlock suggestions"})
		return
	}

	itineraries, err := h.backend.ListItineraries(ctx, userID)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch itineraries"})
		return
	}

	options, err := h.ai.GenerateDailySuggestions(ctx, tasteai.DailySuggestionsRequest{
		UserPreferences: preferences,
		ItineraryCities: destinations(itineraries),
	})
	if err != nil {
		if errors.Is(err, models.ErrNoOptions) {
			c.JSON(http.StatusOK, gin.H{"success": true, "data": []models.ActivityOption{}})
			return
		}
		h.logger.Error("Daily suggestion generation failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to generate suggestions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": options})
}

func destinations(itineraries []models.Itinerary) []string {
	seen := make(map[string]bool, len(itineraries))
	cities := make([]string, 0, len(itineraries))
	for _, it := range itineraries {
		if it.Destination == "" || seen[it.Destination] {
			continue
		}
		seen[it.Destination] = true
		cities = append(cities, it.Destination)
	}
	return cities
}
