package planner

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/FACorreiaa/go-tripplanner/internal/app/models"
)

// AssemblyParams is the itinerary tool's argument payload. TimeSlots pair
// positionally with ActivityIDs inside each day.
type AssemblyParams struct {
	SelectedActivityIDs []string         `json:"selectedActivityIds"`
	DayDistribution     []models.DayPlan `json:"dayDistribution"`
	Reasoning           string           `json:"reasoning,omitempty"`
}

// ItineraryAssemblyResult is the itinerary tool's payload. A duplicate
// activity across days is a hard failure; selected ids absent from the
// distribution are only reported.
type ItineraryAssemblyResult struct {
	Success            bool                   `json:"success"`
	DayDistribution    []models.DayPlan       `json:"dayDistribution,omitempty"`
	Reasoning          string                 `json:"reasoning,omitempty"`
	Stats              *models.ItineraryStats `json:"stats,omitempty"`
	Summary            string                 `json:"summary,omitempty"`
	MissingActivityIDs []string               `json:"missingActivityIds,omitempty"`
	Error              string                 `json:"error,omitempty"`
}

// AssemblyTool validates the model's proposed day distribution and computes
// itinerary statistics. It performs no I/O.
type AssemblyTool struct {
	logger *zap.Logger
}

func NewAssemblyTool(logger *zap.Logger) *AssemblyTool {
	return &AssemblyTool{logger: logger}
}

// Assemble checks the distribution and returns it with stats attached.
func (t *AssemblyTool) Assemble(p AssemblyParams) ItineraryAssemblyResult {
	if len(p.DayDistribution) == 0 {
		return ItineraryAssemblyResult{
			Success: false,
			Error:   "day distribution is empty",
		}
	}

	distributed := map[string]int{}
	order := []string{}
	for _, day := range p.DayDistribution {
		for _, id := range day.ActivityIDs {
			if distributed[id] == 0 {
				order = append(order, id)
			}
			distributed[id]++
		}
	}

	duplicates := []string{}
	for _, id := range order {
		if distributed[id] > 1 {
			duplicates = append(duplicates, id)
		}
	}
	if len(duplicates) > 0 {
		err := &models.DuplicateActivitiesError{IDs: duplicates}
		t.logger.Warn("Rejected day distribution with duplicates", zap.Strings("activity_ids", duplicates))
		return ItineraryAssemblyResult{
			Success: false,
			Error:   err.Error(),
		}
	}

	missing := []string{}
	for _, id := range p.SelectedActivityIDs {
		if distributed[id] == 0 {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		t.logger.Warn("Selected activities not present in distribution", zap.Strings("activity_ids", missing))
	}

	totalDays := len(p.DayDistribution)
	totalActivities := len(order)
	stats := &models.ItineraryStats{
		TotalDays:           totalDays,
		TotalActivities:     totalActivities,
		AvgActivitiesPerDay: fmt.Sprintf("%.1f", float64(totalActivities)/float64(totalDays)),
	}

	return ItineraryAssemblyResult{
		Success:            true,
		DayDistribution:    p.DayDistribution,
		Reasoning:          p.Reasoning,
		Stats:              stats,
		MissingActivityIDs: missing,
		Summary: fmt.Sprintf("Created %d-day itinerary with %d activities (avg %s per day)",
			totalDays, totalActivities, stats.AvgActivitiesPerDay),
	}
}
