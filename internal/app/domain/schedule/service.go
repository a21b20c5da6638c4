package schedule

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/eduardismund/tastetrails-web/internal/app/domain/geo"
	"github.com/eduardismund/tastetrails-web/internal/app/models"
	"github.com/eduardismund/tastetrails-web/internal/app/observability/metrics"
)

// backendClient is the slice of the core backend this service needs.
type backendClient interface {
	GetActivities(ctx context.Context, itineraryID uuid.UUID) ([]models.Activity, error)
	GetTasteProfile(ctx context.Context, userID uuid.UUID) (*models.TasteProfile, error)
	CreateActivity(ctx context.Context, itineraryID uuid.UUID, req models.CreateActivityRequest) (*models.Activity, error)
}

// optionsGenerator is the AI suggestion endpoint.
type optionsGenerator interface {
	GenerateOptions(ctx context.Context, req models.GenerationRequest) ([]models.ActivityOption, error)
}

// cityResolver turns a destination into coordinates.
type cityResolver interface {
	ResolveCity(ctx context.Context, destination string) (*geo.CityLocation, error)
}

// Service orchestrates activity option generation and commit. Generation is
// read-only: the backend is touched only to fetch fresh state, and the AI
// call is never issued when the requested slot conflicts with that state.
type Service struct {
	backend backendClient
	ai      optionsGenerator
	geo     cityResolver
	logger  *zap.Logger

	// generation counters per itinerary; responses from superseded
	// generations are discarded instead of being surfaced.
	mu          sync.Mutex
	generations map[uuid.UUID]uint64

	// commits are single-flight per itinerary+slot+option so a double
	// click cannot create the activity twice.
	commits singleflight.Group
}

func NewService(backend backendClient, ai optionsGenerator, resolver cityResolver, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		backend:     backend,
		ai:          ai,
		geo:         resolver,
		logger:      logger,
		generations: make(map[uuid.UUID]uint64),
	}
}

// GenerateParams identifies one generation attempt.
type GenerateParams struct {
	ItineraryID uuid.UUID
	UserID      uuid.UUID
	Destination string
	Slot        models.TimeSlot
	ThemeLabel  string
}

// GenerationResult carries the candidate options of a completed attempt.
type GenerationResult struct {
	Generation uint64                  `json:"generation"`
	City       string                  `json:"city"`
	Options    []models.ActivityOption `json:"options"`
}

// beginGeneration bumps the itinerary's generation counter and returns the
// new value.
func (s *Service) beginGeneration(itineraryID uuid.UUID) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generations[itineraryID]++
	return s.generations[itineraryID]
}

// currentGeneration returns the latest generation started for an itinerary.
func (s *Service) currentGeneration(itineraryID uuid.UUID) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generations[itineraryID]
}

// GenerateOptions runs the full generation workflow, strictly sequential:
// fetch existing activities, check the slot against them, fetch the taste
// profile, resolve the destination, then ask the AI service for candidates.
// Any persisted-state read happens fresh inside this call; nothing is
// mutated.
func (s *Service) GenerateOptions(ctx context.Context, p GenerateParams) (*GenerationResult, error) {
	generation := s.beginGeneration(p.ItineraryID)
	if m := metrics.Get(); m != nil {
		m.GenerationAttemptsTotal.Add(ctx, 1)
	}

	existing, err := s.backend.GetActivities(ctx, p.ItineraryID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch existing activities")
	}

	// Authoritative check against the freshly fetched list. On conflict the
	// AI service is never called.
	if conflict := CheckConflict(p.Slot, existing); conflict != nil {
		if m := metrics.Get(); m != nil {
			m.ConflictsDetectedTotal.Add(ctx, 1)
		}
		s.logger.Info("Slot rejected before generation",
			zap.String("itinerary_id", p.ItineraryID.String()),
			zap.String("reason", string(conflict.Reason)))
		return nil, conflict
	}

	profile, err := s.backend.GetTasteProfile(ctx, p.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch taste profile")
	}

	request := models.GenerationRequest{
		UserPreferences:    profile.NonEmptyPreferences(),
		City:               p.Destination,
		Date:               p.Slot.Date,
		StartTime:          p.Slot.StartTime,
		EndTime:            p.Slot.EndTime,
		Theme:              p.ThemeLabel,
		ExistingActivities: summarize(existing),
	}

	// Coordinates sharpen the AI's venue picks but their absence is not
	// fatal; the request falls back to the city name alone.
	if loc, err := s.geo.ResolveCity(ctx, p.Destination); err != nil {
		s.logger.Warn("Destination could not be resolved, generating city-only",
			zap.String("destination", p.Destination), zap.Error(err))
	} else {
		request.City = loc.Name
		request.Coordinates = &loc.Coordinates
	}

	options, err := s.ai.GenerateOptions(ctx, request)
	if err != nil {
		if errors.Is(err, models.ErrNoOptions) {
			return nil, err
		}
		return nil, errors.Wrap(err, "failed to generate activity options")
	}

	// A user who re-submitted while this attempt was in flight expects the
	// newer result; this one must not reach the UI.
	if generation != s.currentGeneration(p.ItineraryID) {
		s.logger.Debug("Discarding stale generation result",
			zap.String("itinerary_id", p.ItineraryID.String()),
			zap.Uint64("generation", generation))
		return nil, models.ErrStaleGeneration
	}

	return &GenerationResult{
		Generation: generation,
		City:       request.City,
		Options:    options,
	}, nil
}

func summarize(activities []models.Activity) []models.ActivitySummary {
	summaries := make([]models.ActivitySummary, 0, len(activities))
	for _, a := range activities {
		summaries = append(summaries, models.ActivitySummary{
			Title:     a.Title,
			Date:      a.ActivityDate,
			StartTime: a.StartClock(),
			EndTime:   a.EndClock(),
		})
	}
	return summaries
}

// CommitParams maps a chosen option onto a slot.
type CommitParams struct {
	ItineraryID uuid.UUID
	Option      models.ActivityOption
	Slot        models.TimeSlot
	ThemeLabel  string
}

// CommitActivity persists a chosen option. The theme label maps through the
// fixed lookup (unknown labels default to CULTURAL_ACTIVITY), and the slot's
// date and clock values combine into naive local timestamps. Duplicate
// in-flight commits for the same itinerary, slot and option are collapsed
// into one backend call.
func (s *Service) CommitActivity(ctx context.Context, p CommitParams) (*models.Activity, error) {
	if p.Slot.Date == "" {
		return nil, models.ErrMissingDate
	}

	key := fmt.Sprintf("%s|%s|%s|%s|%s",
		p.ItineraryID, p.Slot.Date, p.Slot.StartTime, p.Slot.EndTime, p.Option.ID)

	result, err, _ := s.commits.Do(key, func() (any, error) {
		request := models.CreateActivityRequest{
			Title:        p.Option.Name,
			Description:  p.Option.Activity,
			Theme:        models.ThemeFromLabel(p.ThemeLabel),
			StartTime:    p.Slot.Date + "T" + p.Slot.StartTime + ":00",
			EndTime:      p.Slot.Date + "T" + p.Slot.EndTime + ":00",
			ActivityDate: p.Slot.Date,
			Address:      p.Option.Location,
			Reasoning:    p.Option.Reasoning,
		}
		if p.Option.Coordinates != nil {
			request.Coordinates = geo.FormatCoordinates(*p.Option.Coordinates)
		}

		activity, err := s.backend.CreateActivity(ctx, p.ItineraryID, request)
		if err != nil {
			return nil, err
		}
		if m := metrics.Get(); m != nil {
			m.ActivitiesCommittedTotal.Add(ctx, 1)
		}
		s.logger.Info("Activity committed",
			zap.String("itinerary_id", p.ItineraryID.String()),
			zap.String("title", activity.Title),
			zap.String("date", activity.ActivityDate))
		return activity, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*models.Activity), nil
}

// CheckSlot runs the advisory conflict check against a fresh activity
// snapshot, for live form feedback.
func (s *Service) CheckSlot(ctx context.Context, itineraryID uuid.UUID, slot models.TimeSlot) (*Conflict, error) {
	existing, err := s.backend.GetActivities(ctx, itineraryID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch existing activities")
	}
	return CheckConflict(slot, existing), nil
}
