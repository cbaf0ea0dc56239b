package planner

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-tripplanner/internal/app/models"
	"github.com/FACorreiaa/go-tripplanner/internal/pkg/config"
)

func newTestStore(ttl time.Duration) *SessionStore {
	return NewSessionStore(config.SessionConfig{
		IdleTTL:         ttl,
		CleanupInterval: time.Minute,
	}, zap.NewNop())
}

func TestGetOrCreateReturnsSameSession(t *testing.T) {
	store := newTestStore(time.Hour)
	ctx := context.Background()

	first := store.GetOrCreate(ctx, "session-1")
	second := store.GetOrCreate(ctx, "session-1")

	assert.Same(t, first, second)
	assert.Equal(t, 1, store.Len())

	other := store.GetOrCreate(ctx, "session-2")
	assert.NotSame(t, first, other)
	assert.Equal(t, 2, store.Len())
}

func TestUpsertActivitiesLastWriteWins(t *testing.T) {
	state := newPlannerState("s")

	state.UpsertActivities([]models.Activity{
		{ID: "a1", Name: "Old Name"},
		{ID: "a2", Name: "Museum"},
	})
	state.UpsertActivities([]models.Activity{
		{ID: "a1", Name: "New Name"},
	})

	require.Len(t, state.Activities, 2)
	assert.Equal(t, "New Name", state.Activities["a1"].Name)
	assert.Equal(t, "Museum", state.Activities["a2"].Name)
}

func TestUpsertActivitiesSkipsRecordsWithoutIdentity(t *testing.T) {
	state := newPlannerState("s")

	admitted := state.UpsertActivities([]models.Activity{
		{ID: "", Name: "No Identity"},
		{ID: "a1", Name: "Keeper"},
	})

	assert.Equal(t, 1, admitted)
	assert.Len(t, state.Activities, 1)
	assert.Contains(t, state.Activities, "a1")
}

func TestSessionReset(t *testing.T) {
	store := newTestStore(time.Hour)
	ctx := context.Background()

	state := store.GetOrCreate(ctx, "session-1")
	state.Preferences = &models.TripPreferences{Destination: "Dubai"}
	state.UpsertActivities([]models.Activity{{ID: "a1"}})
	state.DayDistribution = []models.DayPlan{{Day: 1}}
	state.Stats = &models.ItineraryStats{TotalDays: 1}

	store.Reset("session-1")

	assert.Nil(t, state.Preferences)
	assert.Empty(t, state.Activities)
	assert.Nil(t, state.DayDistribution)
	assert.Nil(t, state.Stats)
	assert.Equal(t, "session-1", state.ID)
}

func TestSessionExpiresAfterIdleTTL(t *testing.T) {
	store := newTestStore(20 * time.Millisecond)
	ctx := context.Background()

	first := store.GetOrCreate(ctx, "session-1")
	first.Preferences = &models.TripPreferences{Destination: "Dubai"}

	time.Sleep(40 * time.Millisecond)

	second := store.GetOrCreate(ctx, "session-1")
	assert.NotSame(t, first, second)
	assert.Nil(t, second.Preferences)
}
