package models

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
)

// ThemeType classifies a stored activity. The backend persists the enum name.
type ThemeType string

const (
	ThemeCultural ThemeType = "CULTURAL_ACTIVITY"
	ThemeSocial   ThemeType = "SOCIAL_ACTIVITY"
	ThemeCulinary ThemeType = "CULINARY_ACTIVITY"
)

// themeLabels maps the human-readable labels shown in the generator form to
// the stored enum. Unknown labels deliberately fall back to ThemeCultural.
var themeLabels = map[string]ThemeType{
	"Cultural Discovery": ThemeCultural,
	"Social Experience":  ThemeSocial,
	"Eating Experience":  ThemeCulinary,
}

// ThemeFromLabel resolves a display label to its stored theme.
func ThemeFromLabel(label string) ThemeType {
	if t, ok := themeLabels[label]; ok {
		return t
	}
	return ThemeCultural
}

// User mirrors the backend user record.
type User struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	HasTasteProfile bool      `json:"hasTasteProfile"`
	ItineraryCount  int       `json:"itineraryCount"`
	CreatedAt       string    `json:"createdAt,omitempty"`
	UpdatedAt       string    `json:"updatedAt,omitempty"`
}

// Itinerary is a user's trip plan for a destination. Dates use YYYY-MM-DD.
type Itinerary struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"userId"`
	Destination string     `json:"destination"`
	StartDate   string     `json:"startDate"`
	EndDate     string     `json:"endDate"`
	Activities  []Activity `json:"activities"`
	CreatedAt   string     `json:"createdAt,omitempty"`
}

// Activity is a committed, time-boxed event within an itinerary.
// StartTime/EndTime are naive local timestamps ("2006-01-02T15:04:05"),
// ActivityDate is the calendar date component.
type Activity struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Coordinates  string    `json:"coordinates"`
	Theme        ThemeType `json:"theme"`
	StartTime    string    `json:"startTime"`
	EndTime      string    `json:"endTime"`
	ActivityDate string    `json:"activityDate"`
	Address      string    `json:"address"`
	Reasoning    string    `json:"reasoning,omitempty"`
	CreatedAt    string    `json:"createdAt,omitempty"`
}

// StartClock returns the "HH:MM" portion of StartTime.
func (a Activity) StartClock() string { return clockPart(a.StartTime) }

// EndClock returns the "HH:MM" portion of EndTime.
func (a Activity) EndClock() string { return clockPart(a.EndTime) }

func clockPart(ts string) string {
	if i := strings.IndexByte(ts, 'T'); i >= 0 && len(ts) >= i+6 {
		return ts[i+1 : i+6]
	}
	return ts
}

// TasteProfile is the user's stored preferences across the fixed cultural
// categories. The category set is closed: one field per category rather than
// a string-keyed map, so an unknown key cannot slip through silently.
type TasteProfile struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"userId"`
	Artists    []string  `json:"artists"`
	Movies     []string  `json:"movies"`
	Books      []string  `json:"books"`
	Brands     []string  `json:"brands"`
	VideoGames []string  `json:"videoGames"`
	TVShows    []string  `json:"tvShows"`
	Podcasts   []string  `json:"podcasts"`
	Persons    []string  `json:"persons"`
	UpdatedAt  string    `json:"updatedAt,omitempty"`
}

// NonEmptyPreferences projects the profile into the generation request shape,
// keeping only populated categories. Empty categories are absent from the
// JSON entirely, not present as empty arrays.
func (p TasteProfile) NonEmptyPreferences() PreferenceSet {
	keep := func(v []string) []string {
		if len(v) == 0 {
			return nil
		}
		return v
	}
	return PreferenceSet{
		Artists:    keep(p.Artists),
		Movies:     keep(p.Movies),
		Books:      keep(p.Books),
		Brands:     keep(p.Brands),
		VideoGames: keep(p.VideoGames),
		TVShows:    keep(p.TVShows),
		Podcasts:   keep(p.Podcasts),
		Persons:    keep(p.Persons),
	}
}

// PreferenceSet is the per-category preference mapping sent to the AI
// service. Nil slices are omitted from the wire format.
type PreferenceSet struct {
	Artists    []string `json:"artists,omitempty"`
	Movies     []string `json:"movies,omitempty"`
	Books      []string `json:"books,omitempty"`
	Brands     []string `json:"brands,omitempty"`
	VideoGames []string `json:"video_games,omitempty"`
	TVShows    []string `json:"tv_shows,omitempty"`
	Podcasts   []string `json:"podcasts,omitempty"`
	Persons    []string `json:"persons,omitempty"`
}

// IsEmpty reports whether no category holds any preference.
func (s PreferenceSet) IsEmpty() bool {
	return len(s.Artists) == 0 && len(s.Movies) == 0 && len(s.Books) == 0 &&
		len(s.Brands) == 0 && len(s.VideoGames) == 0 && len(s.TVShows) == 0 &&
		len(s.Podcasts) == 0 && len(s.Persons) == 0
}

// TimeSlot holds the generator form's date and clock values as entered.
// Times are "HH:MM", the date is "YYYY-MM-DD".
type TimeSlot struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// Complete reports whether every field needed for a conflict check is set.
func (s TimeSlot) Complete() bool {
	return s.Date != "" && s.StartTime != "" && s.EndTime != ""
}

// Coordinates is a WGS84 point.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// ActivitySummary is the lightweight projection of an existing activity
// forwarded to the AI service so it can avoid overlapping or redundant
// suggestions.
type ActivitySummary struct {
	Title     string `json:"title"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// GenerationRequest is the payload for the AI option-generation endpoint.
// Built fresh per attempt, never persisted.
type GenerationRequest struct {
	UserPreferences    PreferenceSet     `json:"user_preferences"`
	City               string            `json:"city"`
	Coordinates        *Coordinates      `json:"coordinates,omitempty"`
	Date               string            `json:"date"`
	StartTime          string            `json:"start_time"`
	EndTime            string            `json:"end_time"`
	Theme              string            `json:"theme"`
	ExistingActivities []ActivitySummary `json:"existing_activities"`
}

// ActivityOption is a candidate suggestion returned by the AI service.
// Held in transient state until committed or discarded.
type ActivityOption struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Activity      string       `json:"activity"`
	Location      string       `json:"location"`
	Coordinates   *Coordinates `json:"coordinates,omitempty"`
	CulturalScore int          `json:"cultural_score"`
	Reasoning     string       `json:"reasoning,omitempty"`
	FOV           int          `json:"fov,omitempty"`
	Heading       int          `json:"heading,omitempty"`
	Pitch         int          `json:"pitch,omitempty"`
}

// GenerateOptionsResponse is the AI service's envelope for option generation.
type GenerateOptionsResponse struct {
	Success bool             `json:"success"`
	City    string           `json:"city,omitempty"`
	Options []ActivityOption `json:"options"`
	Error   string           `json:"error,omitempty"`
}

// CreateActivityRequest is the payload persisting a chosen option.
type CreateActivityRequest struct {
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Coordinates  string    `json:"coordinates"`
	Theme        ThemeType `json:"theme"`
	StartTime    string    `json:"startTime"`
	EndTime      string    `json:"endTime"`
	ActivityDate string    `json:"activityDate"`
	Address      string    `json:"address"`
	Reasoning    string    `json:"reasoning"`
}

// CreateItineraryRequest creates a trip plan for a user.
type CreateItineraryRequest struct {
	Destination string `json:"destination"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
}

// CreateUserRequest registers a new user with the backend.
type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest authenticates against the backend.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// APIResponse is the backend's uniform envelope.
type APIResponse struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp string          `json:"timestamp,omitempty"`
}
