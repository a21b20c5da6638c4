package auth

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/eduardismund/tastetrails-web/internal/app/models"
	"github.com/eduardismund/tastetrails-web/internal/app/observability/metrics"
)

// userClient is the slice of the core backend used for account operations.
type userClient interface {
	CreateUser(ctx context.Context, req models.CreateUserRequest) (*models.User, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.User, error)
}

// AuthHandlers proxies registration and login to the backend and manages
// the session cookie.
type AuthHandlers struct {
	backend userClient
	jwt     *JWTService
	logger  *zap.Logger
}

func NewAuthHandlers(backend userClient, jwt *JWTService, logger *zap.Logger) *AuthHandlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandlers{backend: backend, jwt: jwt, logger: logger}
}

const cookieMaxAge = 24 * 60 * 60

// Register creates the account in the backend and opens a session.
func (h *AuthHandlers) Register(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid registration payload"})
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, email and password are required"})
		return
	}

	if m := metrics.Get(); m != nil {
		m.AuthRequestsTotal.Add(c.Request.Context(), 1)
	}

	user, err := h.backend.CreateUser(c.Request.Context(), req)
	if err != nil {
		h.handleAuthError(c, err, "register")
		return
	}

	h.openSession(c, user)
	c.JSON(http.StatusCreated, gin.H{"user": user})
}

// Login verifies credentials with the backend and opens a session.
func (h *AuthHandlers) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid login payload"})
		return
	}

	if m := metrics.Get(); m != nil {
		m.AuthRequestsTotal.Add(c.Request.Context(), 1)
	}

	user, err := h.backend.Login(c.Request.Context(), req)
	if err != nil {
		h.handleAuthError(c, err, "login")
		return
	}

	h.openSession(c, user)
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Logout clears the session cookie.
func (h *AuthHandlers) Logout(c *gin.Context) {
	c.SetCookie("auth_token", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "signed out"})
}

func (h *AuthHandlers) openSession(c *gin.Context, user *models.User) {
	token, err := h.jwt.GenerateToken(user.ID.String(), user.Email, user.Name)
	if err != nil {
		h.logger.Error("Failed to sign session token", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to open session"})
		return
	}
	c.SetCookie("auth_token", token, cookieMaxAge, "/", "", false, true)
}

func (h *AuthHandlers) handleAuthError(c *gin.Context, err error, operation string) {
	h.logger.Warn("Auth operation failed", zap.String("operation", operation), zap.Error(err))

	switch {
	case errors.Is(err, models.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
	case errors.Is(err, models.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "an account with this email already exists"})
	case errors.Is(err, models.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": "account service unavailable, please try again"})
	}
}
