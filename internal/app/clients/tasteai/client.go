package tasteai

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/eduardismund/tastetrails-web/internal/app/models"
	"github.com/eduardismund/tastetrails-web/internal/app/observability/metrics"
)

// Client talks to the AI suggestion service. The service composes cultural
// recommendations, nearby venues, weather and air quality into its prompts;
// from this side it is a plain request/response collaborator with a
// {success, options} envelope.
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

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return errors.Wrap(err, "encode request body")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if m := metrics.Get(); m != nil {
		m.ExternalRequestDuration.Record(ctx, time.Since(start).Seconds())
	}
	if err != nil {
		return errors.Wrap(err, "suggestion service request failed")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "read suggestion service response")
	}

	if resp.StatusCode >= 300 {
		c.logger.Warn("Suggestion service returned error status",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode))
		return errors.Wrapf(models.ErrBadRequest, "suggestion service status %d", resp.StatusCode)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return errors.Wrap(err, "decode suggestion service response")
	}
	return nil
}

// GenerateOptions asks for time-boxed activity candidates for a slot.
// A success=false envelope or an empty options list is an error: the
// caller must never display a partial result.
func (c *Client) GenerateOptions(ctx context.Context, req models.GenerationRequest) ([]models.ActivityOption, error) {
	var resp models.GenerateOptionsResponse
	if err := c.post(ctx, "/claude/generate-options", req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success || len(resp.Options) == 0 {
		if resp.Error != "" {
			return nil, errors.Wrap(models.ErrNoOptions, resp.Error)
		}
		return nil, models.ErrNoOptions
	}
	return resp.Options, nil
}

// DailySuggestionsRequest asks for same-day activity ideas across the
// user's itinerary cities.
type DailySuggestionsRequest struct {
	UserPreferences models.PreferenceSet `json:"user_preferences"`
	ItineraryCities []string             `json:"itinerary_cities"`
}

// GenerateDailySuggestions returns activity ideas happening today, biased
// toward the cities the user is already planning to visit.
func (c *Client) GenerateDailySuggestions(ctx context.Context, req DailySuggestionsRequest) ([]models.ActivityOption, error) {
	var resp models.GenerateOptionsResponse
	if err := c.post(ctx, "/claude/generate-options-today", req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success || len(resp.Options) == 0 {
		return nil, models.ErrNoOptions
	}
	return resp.Options, nil
}

type cityCheckRequest struct {
	Address string `json:"address"`
}

type cityCheckResponse struct {
	Success bool   `json:"success"`
	IsCity  bool   `json:"is_city"`
	Error   string `json:"error,omitempty"`
}

// ValidateCity reports whether the given destination resolves to a city.
func (c *Client) ValidateCity(ctx context.Context, destination string) (bool, error) {
	var resp cityCheckResponse
	if err := c.post(ctx, "/google-maps/is-city", cityCheckRequest{Address: destination}, &resp); err != nil {
		return false, err
	}
	if !resp.Success {
		return false, errors.Wrap(models.ErrBadRequest, resp.Error)
	}
	return resp.IsCity, nil
}
