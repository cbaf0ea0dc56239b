package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-tripplanner/internal/app/models"
)

func TestAssembleBuildsStats(t *testing.T) {
	tool := NewAssemblyTool(zap.NewNop())

	result := tool.Assemble(AssemblyParams{
		SelectedActivityIDs: []string{"a", "b", "c"},
		DayDistribution: []models.DayPlan{
			{Day: 1, Title: "Landmarks", ActivityIDs: []string{"a", "b"}, TimeSlots: []models.TimeSlot{models.SlotMorning, models.SlotAfternoon}},
			{Day: 2, Title: "Culture", ActivityIDs: []string{"c"}, TimeSlots: []models.TimeSlot{models.SlotMorning}},
		},
		Reasoning: "grouped by area",
	})

	require.True(t, result.Success)
	require.NotNil(t, result.Stats)
	assert.Equal(t, 2, result.Stats.TotalDays)
	assert.Equal(t, 3, result.Stats.TotalActivities)
	assert.Equal(t, "1.5", result.Stats.AvgActivitiesPerDay)
	assert.Equal(t, "Created 2-day itinerary with 3 activities (avg 1.5 per day)", result.Summary)
	assert.Empty(t, result.MissingActivityIDs)
	assert.Equal(t, "grouped by area", result.Reasoning)
}

func TestAssembleRejectsDuplicatesAcrossDays(t *testing.T) {
	tool := NewAssemblyTool(zap.NewNop())

	result := tool.Assemble(AssemblyParams{
		SelectedActivityIDs: []string{"a", "b", "c"},
		DayDistribution: []models.DayPlan{
			{Day: 1, ActivityIDs: []string{"a", "b"}},
			{Day: 2, ActivityIDs: []string{"b", "c"}},
		},
	})

	assert.False(t, result.Success)
	assert.Equal(t, "duplicate activities found across days: b", result.Error)
	assert.Nil(t, result.Stats)
}

func TestAssembleNamesEveryDuplicate(t *testing.T) {
	tool := NewAssemblyTool(zap.NewNop())

	result := tool.Assemble(AssemblyParams{
		DayDistribution: []models.DayPlan{
			{Day: 1, ActivityIDs: []string{"a", "b"}},
			{Day: 2, ActivityIDs: []string{"a", "b"}},
		},
	})

	assert.False(t, result.Success)
	assert.Equal(t, "duplicate activities found across days: a, b", result.Error)
}

func TestAssembleReportsMissingSelections(t *testing.T) {
	tool := NewAssemblyTool(zap.NewNop())

	result := tool.Assemble(AssemblyParams{
		SelectedActivityIDs: []string{"a", "b", "ghost"},
		DayDistribution: []models.DayPlan{
			{Day: 1, ActivityIDs: []string{"a", "b"}},
		},
	})

	require.True(t, result.Success, "missing selections are informational, not fatal")
	assert.Equal(t, []string{"ghost"}, result.MissingActivityIDs)
}

func TestAssembleEmptyDistribution(t *testing.T) {
	tool := NewAssemblyTool(zap.NewNop())

	result := tool.Assemble(AssemblyParams{SelectedActivityIDs: []string{"a"}})

	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Error)
}
