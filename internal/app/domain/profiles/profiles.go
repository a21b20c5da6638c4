package profiles

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/eduardismund/tastetrails-web/internal/app/middleware"
	"github.com/eduardismund/tastetrails-web/internal/app/models"
)

// profileClient is the slice of the core backend used by the editor.
type profileClient interface {
	GetTasteProfile(ctx context.Context, userID uuid.UUID) (*models.TasteProfile, error)
	UpsertTasteProfile(ctx context.Context, userID uuid.UUID, profile models.TasteProfile) (*models.TasteProfile, error)
}

// ProfilesHandler backs the taste profile editor: one list of free-text
// preferences per fixed cultural category.
type ProfilesHandler struct {
	backend profileClient
	logger  *zap.Logger
}

func NewProfilesHandler(backend profileClient, logger *zap.Logger) *ProfilesHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfilesHandler{backend: backend, logger: logger}
}

// GetProfile handles GET /api/taste-profile. A user without a saved profile
// gets an empty one rather than a 404, so the editor can start blank.
func (h *ProfilesHandler) GetProfile(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	profile, err := h.backend.GetTasteProfile(c.Request.Context(), userID)
	if errors.Is(err, models.ErrNotFound) {
		c.JSON(http.StatusOK, gin.H{"success": true, "data": models.TasteProfile{UserID: userID}})
		return
	}
	if err != nil {
		h.handleProfileError(c, err, "fetch")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": profile})
}

// UpdateProfile handles PUT /api/taste-profile. Entries are trimmed and
// blank ones dropped before the profile is stored.
func (h *ProfilesHandler) UpdateProfile(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var profile models.TasteProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid profile payload"})
		return
	}

	profile.UserID = userID
	normalizeProfile(&profile)

	saved, err := h.backend.UpsertTasteProfile(c.Request.Context(), userID, profile)
	if err != nil {
		h.handleProfileError(c, err, "save")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": saved})
}

func normalizeProfile(p *models.TasteProfile) {
	p.Artists = cleanEntries(p.Artists)
	p.Movies = cleanEntries(p.Movies)
	p.Books = cleanEntries(p.Books)
	p.Brands = cleanEntries(p.Brands)
	p.VideoGames = cleanEntries(p.VideoGames)
	p.TVShows = cleanEntries(p.TVShows)
	p.Podcasts = cleanEntries(p.Podcasts)
	p.Persons = cleanEntries(p.Persons)
}

func cleanEntries(entries []string) []string {
	cleaned := make([]string, 0, len(entries))
	for _, e := range entries {
		if trimmed := strings.TrimSpace(e); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return cleaned
}

func (h *ProfilesHandler) handleProfileError(c *gin.Context, err error, operation string) {
	h.logger.Error("Profile operation failed", zap.String("operation", operation), zap.Error(err))

	switch {
	case errors.Is(err, models.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": "profile service unavailable, please try again"})
	}
}
