package server

import (
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/eduardismund/tastetrails-web/internal/app/clients/backendapi"
	"github.com/eduardismund/tastetrails-web/internal/app/clients/tasteai"
	"github.com/eduardismund/tastetrails-web/internal/app/domain/geo"
	"github.com/eduardismund/tastetrails-web/internal/pkg/config"
)

// Server holds the external-service clients and the HTTP handler tree.
type Server struct {
	cfg     *config.Config
	logger  *zap.Logger
	backend *backendapi.Client
	tasteAI *tasteai.Client
	geo     *geo.Service
	router  http.Handler
}

// New creates a Server with clients for the three external collaborators:
// the core backend, the AI suggestion service and the Google Maps platform.
func New(cfg *config.Config, logger *zap.Logger) (*Server, error) {
	s := &Server{
		cfg:     cfg,
		logger:  logger,
		backend: backendapi.New(cfg.Services.BackendURL, cfg.Services.Timeout, logger),
		tasteAI: tasteai.New(cfg.Services.TasteAIURL, cfg.Services.Timeout, logger),
	}

	geoService, err := geo.NewService(cfg.Maps.APIKey, cfg.Maps.CacheTTL, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to setup maps client: %w", err)
	}
	s.geo = geoService

	logger.Info("External service clients ready",
		zap.String("backend", cfg.Services.BackendURL),
		zap.String("taste_ai", cfg.Services.TasteAIURL))

	return s, nil
}

// HTTPServer creates and configures the HTTP server.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         ":" + s.cfg.ServerPort,
		Handler:      s.router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// SetRouter sets the HTTP router/handler.
func (s *Server) SetRouter(router http.Handler) {
	s.router = router
}

// Backend returns the core backend client.
func (s *Server) Backend() *backendapi.Client { return s.backend }

// TasteAI returns the AI suggestion service client.
func (s *Server) TasteAI() *tasteai.Client { return s.tasteAI }

// Geo returns the maps service.
func (s *Server) Geo() *geo.Service { return s.geo }

// Config returns the configuration.
func (s *Server) Config() *config.Config { return s.cfg }
