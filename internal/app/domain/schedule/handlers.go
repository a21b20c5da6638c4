package schedule

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/eduardismund/tastetrails-web/internal/app/middleware"
	"github.com/eduardismund/tastetrails-web/internal/app/models"
)

// Handlers exposes the scheduling workflow over HTTP.
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

type generateRequest struct {
	Destination string          `json:"destination"`
	Slot        models.TimeSlot `json:"time_slot"`
	Theme       string          `json:"theme"`
}

// GenerateOptions handles POST /api/itineraries/:id/options.
func (h *Handlers) GenerateOptions(c *gin.Context) {
	itineraryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid itinerary id"})
		return
	}
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid generation payload"})
		return
	}
	if req.Slot.Date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date is required"})
		return
	}

	result, err := h.service.GenerateOptions(c.Request.Context(), GenerateParams{
		ItineraryID: itineraryID,
		UserID:      userID,
		Destination: req.Destination,
		Slot:        req.Slot,
		ThemeLabel:  req.Theme,
	})
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
}

type commitRequest struct {
	Option models.ActivityOption `json:"option"`
	Slot   models.TimeSlot       `json:"time_slot"`
	Theme  string                `json:"theme"`
}

// CommitActivity handles POST /api/itineraries/:id/activities.
func (h *Handlers) CommitActivity(c *gin.Context) {
	itineraryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid itinerary id"})
		return
	}

	var req commitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid commit payload"})
		return
	}

	activity, err := h.service.CommitActivity(c.Request.Context(), CommitParams{
		ItineraryID: itineraryID,
		Option:      req.Option,
		Slot:        req.Slot,
		ThemeLabel:  req.Theme,
	})
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": activity})
}

type conflictCheckRequest struct {
	Slot models.TimeSlot `json:"time_slot"`
}

// CheckConflict handles POST /api/itineraries/:id/conflict, the reactive
// check backing live form feedback.
func (h *Handlers) CheckConflict(c *gin.Context) {
	itineraryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid itinerary id"})
		return
	}

	var req conflictCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid conflict payload"})
		return
	}

	conflict, err := h.service.CheckSlot(c.Request.Context(), itineraryID, req.Slot)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "conflict": conflict})
}

func (h *Handlers) handleScheduleError(c *gin.Context, err error) {
	var conflict *Conflict
	switch {
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, gin.H{"error": conflict.Message, "conflict": conflict})
	case errors.Is(err, models.ErrMissingDate):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Date is required"})
	case errors.Is(err, models.ErrNoOptions):
		c.JSON(http.StatusBadGateway, gin.H{"error": "No options generated"})
	case errors.Is(err, models.ErrStaleGeneration):
		// Superseded by a newer attempt; the client should ignore this
		// response entirely.
		c.JSON(http.StatusConflict, gin.H{"error": "superseded by a newer request", "stale": true})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "itinerary not found"})
	case errors.Is(err, models.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.Error("Scheduling operation failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": userFacingMessage(err)})
	}
}

// userFacingMessage keeps the orchestrator's step-level wrap as the display
// message and hides transport detail below it.
func userFacingMessage(err error) string {
	msg := err.Error()
	for _, prefix := range []string{
		"failed to fetch existing activities",
		"failed to fetch taste profile",
		"failed to generate activity options",
	} {
		if len(msg) >= len(prefix) && msg[:len(prefix)] == prefix {
			return prefix
		}
	}
	return "something went wrong, please try again"
}
