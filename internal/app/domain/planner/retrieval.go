package planner

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-tripplanner/internal/app/domain/activities"
	"github.com/FACorreiaa/go-tripplanner/internal/app/models"
)

// activitiesPerDay and fetchMultiplier size the over-fetch: three activities
// a day, doubled so the model has alternatives to choose from.
const (
	activitiesPerDay = 3
	fetchMultiplier  = 2
)

const budgetFallbackWarning = "No activities found within specified budget. Showing alternatives at different price points."

// RetrievalParams is the fetch tool's argument payload.
type RetrievalParams struct {
	Destination  string             `json:"destination"`
	NumberOfDays int                `json:"numberOfDays"`
	StartDate    string             `json:"startDate,omitempty"`
	EndDate      string             `json:"endDate,omitempty"`
	Budget       models.BudgetTier  `json:"budget,omitempty"`
	PriceRange   *models.PriceRange `json:"priceRange,omitempty"`
	Interests    []string           `json:"interests,omitempty"`
	Sort         string             `json:"sort,omitempty"`
}

// ActivityFetchResult is the fetch tool's payload. Failures are encoded in
// the payload so a broken upstream degrades the turn instead of aborting it.
type ActivityFetchResult struct {
	Success            bool              `json:"success"`
	Activities         []models.Activity `json:"activities"`
	Count              int               `json:"count"`
	Summary            string            `json:"summary,omitempty"`
	Warning            string            `json:"warning,omitempty"`
	BudgetAlternatives bool              `json:"budgetAlternatives,omitempty"`
	Error              string            `json:"error,omitempty"`
}

// RetrievalTool fetches candidate activities for the trip, over-fetching and
// falling back to an unconstrained search when the budget filter empties the
// result set.
type RetrievalTool struct {
	searcher activities.Searcher
	logger   *zap.Logger
}

func NewRetrievalTool(searcher activities.Searcher, logger *zap.Logger) *RetrievalTool {
	return &RetrievalTool{searcher: searcher, logger: logger}
}

// Fetch runs the search. It never returns a Go error; every outcome is an
// ActivityFetchResult.
func (t *RetrievalTool) Fetch(ctx context.Context, p RetrievalParams) ActivityFetchResult {
	ctx, span := otel.Tracer("TripPlanner").Start(ctx, "FetchActivities")
	defer span.End()

	if p.NumberOfDays <= 0 {
		return ActivityFetchResult{
			Success:    false,
			Activities: []models.Activity{},
			Error:      "numberOfDays must be positive",
		}
	}

	needed := p.NumberOfDays * activitiesPerDay * fetchMultiplier
	span.SetAttributes(
		attribute.String("destination", p.Destination),
		attribute.Int("activities.needed", needed),
	)

	query := activities.SearchQuery{
		Destination: p.Destination,
		Budget:      p.Budget,
		PriceRange:  p.PriceRange,
		Interests:   p.Interests,
		Sort:        activities.SortFromString(p.Sort),
		Limit:       needed,
		Page:        1,
	}
	// Availability filtering needs both bounds; a single bound is ignored.
	if p.StartDate != "" && p.EndDate != "" {
		if from, err := models.ParseDate(p.StartDate); err == nil {
			query.DateFrom = &from
		}
		if to, err := models.ParseDate(p.EndDate); err == nil {
			query.DateTo = &to
		}
	}

	found, err := t.searcher.Search(ctx, query)
	if err != nil {
		t.logger.Error("Activity fetch failed", zap.String("destination", p.Destination), zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Activity fetch failed")
		return ActivityFetchResult{
			Success:    false,
			Activities: []models.Activity{},
			Error:      err.Error(),
		}
	}
	found = filterByInterests(p.Interests, found)

	if len(found) == 0 && query.HasBudgetConstraint() {
		t.logger.Info("No activities within budget, retrying without budget filter",
			zap.String("destination", p.Destination),
		)
		alternatives, err := t.searcher.Search(ctx, query.WithoutBudget())
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "Budget fallback fetch failed")
			return ActivityFetchResult{
				Success:    false,
				Activities: []models.Activity{},
				Error:      err.Error(),
			}
		}
		alternatives = filterByInterests(p.Interests, alternatives)
		span.SetAttributes(attribute.Int("activities.count", len(alternatives)))
		span.SetStatus(codes.Ok, "Fetched budget alternatives")
		return ActivityFetchResult{
			Success:            true,
			Activities:         alternatives,
			Count:              len(alternatives),
			Warning:            budgetFallbackWarning,
			BudgetAlternatives: true,
		}
	}

	summary := fmt.Sprintf("Found %d activities in %s", len(found), p.Destination)
	if p.Budget != "" && p.Budget != models.BudgetAll {
		summary += fmt.Sprintf(" within %s budget", p.Budget)
	}

	span.SetAttributes(attribute.Int("activities.count", len(found)))
	span.SetStatus(codes.Ok, "Activities fetched")
	return ActivityFetchResult{
		Success:    true,
		Activities: found,
		Count:      len(found),
		Summary:    summary,
	}
}

// filterByInterests keeps only activities whose type or tags mention one of
// the requested interests. The upstream type filter casts a wide net; this
// drops the results that slipped through it.
func filterByInterests(interests []string, found []models.Activity) []models.Activity {
	if len(interests) == 0 || len(found) == 0 {
		return found
	}
	matcher := activities.NewInterestMatcher(interests)
	kept := make([]models.Activity, 0, len(found))
	for _, a := range found {
		if matcher.Matches(a) {
			kept = append(kept, a)
		}
	}
	return kept
}
