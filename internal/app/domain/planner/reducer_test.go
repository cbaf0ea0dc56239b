package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-tripplanner/internal/app/models"
)

func testActivities() map[string]models.Activity {
	return map[string]models.Activity{
		"a1": {
			ID:   "a1",
			Name: "Desert Safari",
			Type: "Safari",
			Location: models.GeoPoint{
				Lat: 25.2, Lng: 55.3, Address: "Dubai, United Arab Emirates",
			},
			Cost:            150,
			Rating:          4.8,
			DurationMinutes: 240,
			Currency:        "AED",
		},
		"a2": {ID: "a2", Name: "Dubai Museum", Type: "Museum", Cost: 35, DurationMinutes: 120},
		"a3": {ID: "a3", Name: "Marina Cruise", Type: "Cruise", Cost: 90, DurationMinutes: 90},
	}
}

func testDistribution() []models.DayPlan {
	return []models.DayPlan{
		{
			Day:         1,
			Title:       "Adventure Day",
			ActivityIDs: []string{"a1", "a2"},
			TimeSlots:   []models.TimeSlot{models.SlotMorning, models.SlotAfternoon},
		},
		{
			Day:         2,
			Title:       "On The Water",
			ActivityIDs: []string{"a3"},
			TimeSlots:   []models.TimeSlot{models.SlotEvening},
		},
	}
}

func TestReduceHydratesItinerary(t *testing.T) {
	itinerary := Reduce(testActivities(), testDistribution())

	require.Len(t, itinerary, 3)

	first := itinerary[0]
	assert.Equal(t, "1-1", first.ID)
	assert.Equal(t, 1, first.Day)
	assert.Equal(t, "Adventure Day", first.DayTitle)
	assert.Equal(t, 1, first.Sequence)
	assert.Equal(t, "Desert Safari", first.Title)
	assert.Equal(t, "activity", first.Type)
	assert.Equal(t, models.SlotMorning, first.TimeOfDay)
	assert.Equal(t, "09:00", first.StartTime)
	assert.Equal(t, "a1", first.ActivityID)
	assert.Equal(t, 240, first.DurationMinutes)
	assert.Equal(t, 150.0, first.Cost)

	second := itinerary[1]
	assert.Equal(t, "1-2", second.ID)
	assert.Equal(t, "13:00", second.StartTime)

	third := itinerary[2]
	assert.Equal(t, "2-1", third.ID)
	assert.Equal(t, 2, third.Day)
	assert.Equal(t, "17:00", third.StartTime)
}

func TestReduceIsDeterministic(t *testing.T) {
	activities := testActivities()
	distribution := testDistribution()

	first := Reduce(activities, distribution)
	second := Reduce(activities, distribution)

	assert.Equal(t, first, second)
}

func TestReduceSkipsUnknownIdsKeepingSequence(t *testing.T) {
	distribution := []models.DayPlan{
		{
			Day:         1,
			Title:       "Gap Day",
			ActivityIDs: []string{"missing", "a2"},
			TimeSlots:   []models.TimeSlot{models.SlotMorning, models.SlotAfternoon},
		},
	}

	itinerary := Reduce(testActivities(), distribution)

	require.Len(t, itinerary, 1)
	assert.Equal(t, "1-2", itinerary[0].ID, "sequence stays positional past the skipped id")
	assert.Equal(t, 2, itinerary[0].Sequence)
	assert.Equal(t, "Dubai Museum", itinerary[0].Title)
}

func TestReduceMissingTimeSlotFallsBackToEvening(t *testing.T) {
	distribution := []models.DayPlan{
		{Day: 1, ActivityIDs: []string{"a2"}},
	}

	itinerary := Reduce(testActivities(), distribution)

	require.Len(t, itinerary, 1)
	assert.Equal(t, models.TimeSlot(""), itinerary[0].TimeOfDay)
	assert.Equal(t, "17:00", itinerary[0].StartTime)
}

func TestReduceEmptyInputs(t *testing.T) {
	assert.Empty(t, Reduce(nil, testDistribution()))
	assert.Empty(t, Reduce(testActivities(), nil))
}
