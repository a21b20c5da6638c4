package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/eduardismund/tastetrails-web/internal/app/clients/backendapi"
	"github.com/eduardismund/tastetrails-web/internal/app/clients/tasteai"
	"github.com/eduardismund/tastetrails-web/internal/app/domain/auth"
	"github.com/eduardismund/tastetrails-web/internal/app/domain/dashboard"
	"github.com/eduardismund/tastetrails-web/internal/app/domain/geo"
	"github.com/eduardismund/tastetrails-web/internal/app/domain/itineraries"
	"github.com/eduardismund/tastetrails-web/internal/app/domain/mapview"
	"github.com/eduardismund/tastetrails-web/internal/app/domain/profiles"
	"github.com/eduardismund/tastetrails-web/internal/app/domain/schedule"
	"github.com/eduardismund/tastetrails-web/internal/app/middleware"
	"github.com/eduardismund/tastetrails-web/internal/pkg/config"
)

// AppHandlers groups all route handlers.
type AppHandlers struct {
	Auth        *auth.AuthHandlers
	Profiles    *profiles.ProfilesHandler
	Itineraries *itineraries.Handlers
	Schedule    *schedule.Handlers
	Dashboard   *dashboard.Handlers
	MapView     *mapview.Handlers
}

// Setup wires every handler into the router.
func Setup(r *gin.Engine, backend *backendapi.Client, ai *tasteai.Client, geoService *geo.Service, cfg *config.Config, logger *zap.Logger) {
	jwtService := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiration)

	itineraryService := itineraries.NewService(backend, ai, geoService, logger)
	scheduleService := schedule.NewService(backend, ai, geoService, logger)

	handlers := &AppHandlers{
		Auth:        auth.NewAuthHandlers(backend, jwtService, logger),
		Profiles:    profiles.NewProfilesHandler(backend, logger),
		Itineraries: itineraries.NewHandlers(itineraryService, logger),
		Schedule:    schedule.NewHandlers(scheduleService, logger),
		Dashboard:   dashboard.NewHandlers(backend, ai, logger),
		MapView:     mapview.NewHandlers(backend, geoService, cfg.Maps.APIKey, logger),
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", handlers.Auth.Register)
		authGroup.POST("/login", handlers.Auth.Login)
		authGroup.POST("/logout", handlers.Auth.Logout)
	}

	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware(cfg))
	{
		api.GET("/dashboard", handlers.Dashboard.Summary)
		api.GET("/dashboard/suggestions", handlers.Dashboard.DailySuggestions)

		api.GET("/taste-profile", handlers.Profiles.GetProfile)
		api.PUT("/taste-profile", handlers.Profiles.UpdateProfile)

		api.GET("/itineraries", handlers.Itineraries.List)
		api.POST("/itineraries", handlers.Itineraries.Create)
		api.GET("/itineraries/:id", handlers.Itineraries.Get)

		api.POST("/itineraries/:id/options", handlers.Schedule.GenerateOptions)
		api.POST("/itineraries/:id/activities", handlers.Schedule.CommitActivity)
		api.POST("/itineraries/:id/conflict", handlers.Schedule.CheckConflict)

		api.GET("/itineraries/:id/map", handlers.MapView.ItineraryMap)
		api.POST("/mapview/street-view", handlers.MapView.StreetView)
	}
}
