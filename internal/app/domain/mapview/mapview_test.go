package mapview

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduardismund/tastetrails-web/internal/app/domain/geo"
	"github.com/eduardismund/tastetrails-web/internal/app/models"
)

type fakeActivityClient struct {
	itinerary *models.Itinerary
	err       error
}

func (f *fakeActivityClient) GetItinerary(_ context.Context, _ uuid.UUID) (*models.Itinerary, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.itinerary, nil
}

type fakeResolver struct {
	loc *geo.CityLocation
	err error
}

func (f *fakeResolver) ResolveCity(_ context.Context, _ string) (*geo.CityLocation, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.loc, nil
}

func newTestRouter(backend *fakeActivityClient, resolver *fakeResolver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	handlers := NewHandlers(backend, resolver, "maps-key", nil)
	router.GET("/api/itineraries/:id/map", handlers.ItineraryMap)
	router.POST("/api/mapview/street-view", handlers.StreetView)
	return router
}

func TestItineraryMap(t *testing.T) {
	backend := &fakeActivityClient{itinerary: &models.Itinerary{
		ID:          uuid.New(),
		Destination: "Lisbon",
		Activities: []models.Activity{
			{Title: "Tile Museum", Theme: models.ThemeCultural, Coordinates: "38.725000,-9.113000"},
			{Title: "Fado Night", Theme: models.ThemeSocial, Coordinates: "38.713000,-9.133000"},
			{Title: "No Coords Yet", Coordinates: ""},
		},
	}}
	router := newTestRouter(backend, &fakeResolver{err: errors.New("unused")})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/itineraries/"+uuid.NewString()+"/map", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data payload `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	require.Len(t, resp.Data.Pins, 2, "activities without coordinates get no pin")
	assert.Equal(t, "Tile Museum", resp.Data.Pins[0].Title)
	assert.InDelta(t, 38.719, resp.Data.Center.Lat, 1e-6)
	require.NotNil(t, resp.Data.Bounds)
	assert.InDelta(t, -9.133, resp.Data.Bounds.MinLng, 1e-6)
	assert.Equal(t, "maps-key", resp.Data.APIKey)
}

func TestItineraryMapFallsBackToDestinationCenter(t *testing.T) {
	backend := &fakeActivityClient{itinerary: &models.Itinerary{
		Destination: "Lisbon",
		Activities:  []models.Activity{{Title: "No Coords Yet"}},
	}}
	resolver := &fakeResolver{loc: &geo.CityLocation{
		Name:        "Lisbon",
		Coordinates: models.Coordinates{Lat: 38.7223, Lng: -9.1393},
	}}
	router := newTestRouter(backend, resolver)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/itineraries/"+uuid.NewString()+"/map", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data payload `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.InDelta(t, 38.7223, resp.Data.Center.Lat, 1e-6)
	assert.Nil(t, resp.Data.Bounds)
	assert.Empty(t, resp.Data.Pins)
}

func TestItineraryMapNotFound(t *testing.T) {
	router := newTestRouter(&fakeActivityClient{err: models.ErrNotFound}, &fakeResolver{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/itineraries/"+uuid.NewString()+"/map", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStreetView(t *testing.T) {
	router := newTestRouter(&fakeActivityClient{}, &fakeResolver{})

	body, err := json.Marshal(streetViewRequest{
		Coordinates: models.Coordinates{Lat: 38.7131, Lng: -9.1336},
		Heading:     120,
		Pitch:       10,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/mapview/street-view", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Heading int    `json:"heading"`
			FOV     int    `json:"fov"`
			APIKey  string `json:"api_key"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 120, resp.Data.Heading)
	assert.Equal(t, 90, resp.Data.FOV, "fov defaults when unset")
	assert.Equal(t, "maps-key", resp.Data.APIKey)
}

func TestStreetViewRejectsInvalidCoordinates(t *testing.T) {
	router := newTestRouter(&fakeActivityClient{}, &fakeResolver{})

	body, err := json.Marshal(streetViewRequest{
		Coordinates: models.Coordinates{Lat: 95, Lng: 10},
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/mapview/street-view", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
