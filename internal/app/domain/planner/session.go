package planner

import (
	"context"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-tripplanner/internal/app/models"
	"github.com/FACorreiaa/go-tripplanner/internal/app/observability/metrics"
	"github.com/FACorreiaa/go-tripplanner/internal/pkg/config"
)

// PlannerState is the accumulated planning context of one chat session. All
// mutation happens under mu, inside the post-turn effect window.
type PlannerState struct {
	mu sync.Mutex

	ID              string
	Preferences     *models.TripPreferences
	Activities      map[string]models.Activity
	DayDistribution []models.DayPlan
	Stats           *models.ItineraryStats
	CreatedAt       time.Time
}

func newPlannerState(id string) *PlannerState {
	return &PlannerState{
		ID:         id,
		Activities: make(map[string]models.Activity),
		CreatedAt:  time.Now(),
	}
}

// Lock acquires the state for an effect-application window.
func (s *PlannerState) Lock()   { s.mu.Lock() }
func (s *PlannerState) Unlock() { s.mu.Unlock() }

// UpsertActivities merges fetched activities into the session map by id,
// newest record winning. Records without identity are skipped.
func (s *PlannerState) UpsertActivities(activities []models.Activity) int {
	admitted := 0
	for _, a := range activities {
		if !a.HasIdentity() {
			continue
		}
		s.Activities[a.ID] = a
		admitted++
	}
	return admitted
}

// reset clears everything except the session identity. Used when the user
// starts a new trip in an existing session.
func (s *PlannerState) reset() {
	s.Preferences = nil
	s.Activities = make(map[string]models.Activity)
	s.DayDistribution = nil
	s.Stats = nil
}

// SessionStore keeps planner sessions alive between turns, evicting sessions
// idle past the configured TTL.
type SessionStore struct {
	sessions *cache.Cache
	logger   *zap.Logger
}

func NewSessionStore(cfg config.SessionConfig, logger *zap.Logger) *SessionStore {
	return &SessionStore{
		sessions: cache.New(cfg.IdleTTL, cfg.CleanupInterval),
		logger:   logger,
	}
}

// GetOrCreate returns the session for id, creating it on first sight. Every
// access refreshes the idle TTL.
func (st *SessionStore) GetOrCreate(ctx context.Context, id string) *PlannerState {
	if cached, found := st.sessions.Get(id); found {
		state := cached.(*PlannerState)
		st.sessions.SetDefault(id, state)
		return state
	}

	state := newPlannerState(id)
	if err := st.sessions.Add(id, state, cache.DefaultExpiration); err != nil {
		// Lost a create race; the winner's state is authoritative.
		if cached, found := st.sessions.Get(id); found {
			return cached.(*PlannerState)
		}
		st.sessions.SetDefault(id, state)
	}

	st.logger.Info("Created planner session", zap.String("session_id", id))
	metrics.Get().ActiveSessionsGauge.Record(ctx, int64(st.sessions.ItemCount()))
	return state
}

// Reset wipes the planning context of a session while keeping it resident.
func (st *SessionStore) Reset(id string) {
	if cached, found := st.sessions.Get(id); found {
		state := cached.(*PlannerState)
		state.reset()
	}
}

// Len reports the number of resident sessions.
func (st *SessionStore) Len() int { return st.sessions.ItemCount() }
