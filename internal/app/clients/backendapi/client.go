package backendapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/eduardismund/tastetrails-web/internal/app/models"
	"github.com/eduardismund/tastetrails-web/internal/app/observability/metrics"
)

// Client is a typed HTTP client over the core backend service (users,
// itineraries, activities, taste profiles). The backend owns all persisted
// state; this client never caches what it reads.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

func New(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// do executes a request and decodes the backend's {success, message, data}
// envelope. Non-2xx responses surface the server-provided message when
// present, wrapped around the matching sentinel error.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "encode request body")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if m := metrics.Get(); m != nil {
		m.ExternalRequestDuration.Record(ctx, time.Since(start).Seconds())
	}
	if err != nil {
		return errors.Wrap(err, "backend request failed")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "read backend response")
	}

	var envelope models.APIResponse
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &envelope); err != nil && resp.StatusCode < 300 {
			return errors.Wrap(err, "decode backend envelope")
		}
	}

	if resp.StatusCode >= 300 {
		c.logger.Warn("Backend returned error status",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("message", envelope.Message))
		return backendError(resp.StatusCode, envelope.Message)
	}

	if out != nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return errors.Wrap(err, "decode backend data")
		}
	}
	return nil
}

func backendError(status int, message string) error {
	var sentinel error
	switch status {
	case http.StatusNotFound:
		sentinel = models.ErrNotFound
	case http.StatusConflict:
		sentinel = models.ErrConflict
	case http.StatusUnauthorized, http.StatusForbidden:
		sentinel = models.ErrUnauthenticated
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		sentinel = models.ErrValidation
	default:
		sentinel = models.ErrBadRequest
	}
	if message == "" {
		return sentinel
	}
	return errors.Wrap(sentinel, message)
}

// CreateUser registers a new user.
func (c *Client) CreateUser(ctx context.Context, req models.CreateUserRequest) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodPost, "/users", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login checks credentials against the backend and returns the user record.
func (c *Client) Login(ctx context.Context, req models.LoginRequest) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodPost, "/users/login", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUser fetches a user by id.
func (c *Client) GetUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/users/"+userID.String(), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListItineraries returns all itineraries for a user, activities included.
func (c *Client) ListItineraries(ctx context.Context, userID uuid.UUID) ([]models.Itinerary, error) {
	var itineraries []models.Itinerary
	err := c.do(ctx, http.MethodGet, "/itineraries/users/"+userID.String(), nil, &itineraries)
	if errors.Is(err, models.ErrNotFound) {
		return []models.Itinerary{}, nil
	}
	if err != nil {
		return nil, err
	}
	return itineraries, nil
}

// GetItinerary fetches a single itinerary by id.
func (c *Client) GetItinerary(ctx context.Context, itineraryID uuid.UUID) (*models.Itinerary, error) {
	var itinerary models.Itinerary
	if err := c.do(ctx, http.MethodGet, "/itineraries/"+itineraryID.String(), nil, &itinerary); err != nil {
		return nil, err
	}
	return &itinerary, nil
}

// CreateItinerary creates a trip plan for the given user.
func (c *Client) CreateItinerary(ctx context.Context, userID uuid.UUID, req models.CreateItineraryRequest) (*models.Itinerary, error) {
	var itinerary models.Itinerary
	path := fmt.Sprintf("/itineraries/users/%s", userID)
	if err := c.do(ctx, http.MethodPost, path, req, &itinerary); err != nil {
		return nil, err
	}
	return &itinerary, nil
}

// GetActivities returns the activities already scheduled for an itinerary.
// Always a fresh read; callers must not hold this snapshot across attempts.
func (c *Client) GetActivities(ctx context.Context, itineraryID uuid.UUID) ([]models.Activity, error) {
	var activities []models.Activity
	path := fmt.Sprintf("/itineraries/%s/activities", itineraryID)
	if err := c.do(ctx, http.MethodGet, path, nil, &activities); err != nil {
		return nil, err
	}
	return activities, nil
}

// CreateActivity persists a committed activity on an itinerary.
func (c *Client) CreateActivity(ctx context.Context, itineraryID uuid.UUID, req models.CreateActivityRequest) (*models.Activity, error) {
	var activity models.Activity
	path := fmt.Sprintf("/itineraries/%s/activities", itineraryID)
	if err := c.do(ctx, http.MethodPost, path, req, &activity); err != nil {
		return nil, err
	}
	return &activity, nil
}

// GetTasteProfile returns the user's stored preferences.
func (c *Client) GetTasteProfile(ctx context.Context, userID uuid.UUID) (*models.TasteProfile, error) {
	var profile models.TasteProfile
	if err := c.do(ctx, http.MethodGet, "/taste-profiles/users/"+userID.String(), nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpsertTasteProfile creates or replaces the user's preferences.
func (c *Client) UpsertTasteProfile(ctx context.Context, userID uuid.UUID, profile models.TasteProfile) (*models.TasteProfile, error) {
	var saved models.TasteProfile
	if err := c.do(ctx, http.MethodPut, "/taste-profiles/users/"+userID.String(), profile, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}
