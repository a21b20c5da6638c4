package backendapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduardismund/tastetrails-web/internal/app/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, 2*time.Second, nil)
}

func envelope(t *testing.T, w http.ResponseWriter, status int, message string, data any) {
	t.Helper()
	resp := models.APIResponse{Success: status < 300, Message: message}
	if data != nil {
		raw, err := json.Marshal(data)
		require.NoError(t, err)
		resp.Data = raw
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(resp))
}

func TestLoginDecodesEnvelope(t *testing.T) {
	userID := uuid.New()
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/users/login", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req models.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "ana@example.com", req.Email)

		envelope(t, w, http.StatusOK, "ok", models.User{
			ID: userID, Name: "Ana", Email: req.Email,
		})
	})

	user, err := client.Login(context.Background(), models.LoginRequest{
		Email:    "ana@example.com",
		Password: "secret",
	})
	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
	assert.Equal(t, "Ana", user.Name)
}

func TestLoginUnauthorizedKeepsServerMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		envelope(t, w, http.StatusUnauthorized, "Invalid email or password", nil)
	})

	_, err := client.Login(context.Background(), models.LoginRequest{Email: "a@b.c", Password: "nope"})
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrUnauthenticated)
	assert.Contains(t, err.Error(), "Invalid email or password")
}

func TestGetItineraryNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		envelope(t, w, http.StatusNotFound, "Itinerary not found", nil)
	})

	_, err := client.GetItinerary(context.Background(), uuid.New())
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestListItinerariesNotFoundMeansEmpty(t *testing.T) {
	// The backend 404s a user with no itineraries; the dashboard treats that
	// as an empty list.
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		envelope(t, w, http.StatusNotFound, "No itineraries", nil)
	})

	itineraries, err := client.ListItineraries(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, itineraries)
}

func TestListItineraries(t *testing.T) {
	userID := uuid.New()
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/itineraries/users/"+userID.String(), r.URL.Path)
		envelope(t, w, http.StatusOK, "", []models.Itinerary{
			{ID: uuid.New(), Destination: "Lisbon"},
			{ID: uuid.New(), Destination: "Porto"},
		})
	})

	itineraries, err := client.ListItineraries(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, itineraries, 2)
	assert.Equal(t, "Lisbon", itineraries[0].Destination)
}

func TestCreateActivityConflict(t *testing.T) {
	itineraryID := uuid.New()
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/itineraries/"+itineraryID.String()+"/activities", r.URL.Path)
		envelope(t, w, http.StatusConflict, "Activity overlaps an existing one", nil)
	})

	_, err := client.CreateActivity(context.Background(), itineraryID, models.CreateActivityRequest{
		Title: "Fado Night",
	})
	assert.ErrorIs(t, err, models.ErrConflict)
}

func TestGetActivities(t *testing.T) {
	itineraryID := uuid.New()
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		envelope(t, w, http.StatusOK, "", []models.Activity{
			{Title: "Museum Visit", ActivityDate: "2025-06-10"},
		})
	})

	activities, err := client.GetActivities(context.Background(), itineraryID)
	require.NoError(t, err)
	require.Len(t, activities, 1)
	assert.Equal(t, "Museum Visit", activities[0].Title)
}

func TestUpsertTasteProfile(t *testing.T) {
	userID := uuid.New()
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/taste-profiles/users/"+userID.String(), r.URL.Path)

		var profile models.TasteProfile
		require.NoError(t, json.NewDecoder(r.Body).Decode(&profile))
		envelope(t, w, http.StatusOK, "", profile)
	})

	saved, err := client.UpsertTasteProfile(context.Background(), userID, models.TasteProfile{
		Books: []string{"Baltasar and Blimunda"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Baltasar and Blimunda"}, saved.Books)
}

func TestErrorStatusWithUndecodableBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream exploded"))
	})

	_, err := client.GetUser(context.Background(), uuid.New())
	assert.ErrorIs(t, err, models.ErrBadRequest)
}

func TestValidationStatusMapsToValidationError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		envelope(t, w, http.StatusBadRequest, "endDate must not be before startDate", nil)
	})

	_, err := client.CreateItinerary(context.Background(), uuid.New(), models.CreateItineraryRequest{
		Destination: "Lisbon",
		StartDate:   "2025-06-12",
		EndDate:     "2025-06-10",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrValidation)
	assert.Contains(t, err.Error(), "endDate")
}
