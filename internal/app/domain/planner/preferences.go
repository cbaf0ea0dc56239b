package planner

import (
	"fmt"
	"strings"

	"github.com/FACorreiaa/go-tripplanner/internal/app/models"
)

// PreferenceUpdate is the structured extraction from one user message, before
// date reconciliation.
type PreferenceUpdate struct {
	Destination  string             `json:"destination"`
	StartDate    string             `json:"startDate,omitempty"`
	EndDate      string             `json:"endDate,omitempty"`
	NumberOfDays int                `json:"numberOfDays,omitempty"`
	Budget       models.BudgetTier  `json:"budget,omitempty"`
	PriceRange   *models.PriceRange `json:"priceRange,omitempty"`
	TripType     models.TripType    `json:"tripType,omitempty"`
	Interests    []string           `json:"interests,omitempty"`
	Travelers    int                `json:"travelers,omitempty"`
	UserIntent   models.Intent      `json:"userIntent"`
}

// PreferenceAnalysisResult is what the analysis tool hands back to the model
// and to the effect-application pass. UserIntent stays outside Preferences;
// it is consumed once and never stored.
type PreferenceAnalysisResult struct {
	Success     bool                    `json:"success"`
	Preferences *models.TripPreferences `json:"preferences,omitempty"`
	UserIntent  models.Intent           `json:"userIntent,omitempty"`
	Summary     string                  `json:"summary,omitempty"`
	Error       string                  `json:"error,omitempty"`
}

// ResolvePreferences reconciles the update's date fields into a complete
// range plus day count. Any two of start date, end date, and day count
// determine the third; with both dates present the explicit day count is
// ignored and recomputed. Fewer than two is an error.
func ResolvePreferences(u PreferenceUpdate) (*models.TripPreferences, error) {
	var from, to *models.Date
	if u.StartDate != "" {
		parsed, err := models.ParseDate(u.StartDate)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", models.ErrValidation, err)
		}
		from = &parsed
	}
	if u.EndDate != "" {
		parsed, err := models.ParseDate(u.EndDate)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", models.ErrValidation, err)
		}
		to = &parsed
	}

	days := u.NumberOfDays
	switch {
	case from != nil && to != nil:
		if to.Before(from.Time) {
			return nil, fmt.Errorf("%w: end date precedes start date", models.ErrValidation)
		}
		days = models.DaysInclusive(*from, *to)
	case from != nil && days > 0:
		end := from.AddDays(days - 1)
		to = &end
	case to != nil && days > 0:
		start := to.AddDays(-(days - 1))
		from = &start
	}

	if from == nil || to == nil || days <= 0 {
		return nil, models.ErrInsufficientDateInfo
	}

	// Fields the update does not mention stay zero here. Defaults are
	// filled after the merge, so absence never overwrites a stored value.
	return &models.TripPreferences{
		Destination:  u.Destination,
		Dates:        models.DateRange{From: from, To: to},
		NumberOfDays: days,
		Budget:       u.Budget,
		PriceRange:   u.PriceRange,
		TripType:     u.TripType,
		Interests:    u.Interests,
		Travelers:    u.Travelers,
	}, nil
}

func applyDefaults(p *models.TripPreferences) {
	if p.Budget == "" {
		p.Budget = models.BudgetAll
	}
	if p.TripType == "" {
		p.TripType = models.TripSolo
	}
	if p.Travelers <= 0 {
		p.Travelers = 1
	}
	if p.Interests == nil {
		p.Interests = []string{}
	}
}

func analysisSummary(p *models.TripPreferences) string {
	interests := "various activities"
	if len(p.Interests) > 0 {
		interests = strings.Join(p.Interests, ", ")
	}
	return fmt.Sprintf("Analyzed preferences: %s trip for %d days, %s travel, interested in %s",
		p.Destination, p.NumberOfDays, p.TripType, interests)
}

// MergePreferences overlays the newly resolved preferences onto the session's
// existing ones, field by field; only fields the overlay actually sets
// overwrite. The day count is re-derived from the merged date range and
// cleared outright when the range is incomplete; a derived count never
// outlives the dates it came from. Defaults fill whatever is still unset.
func MergePreferences(base, overlay *models.TripPreferences) *models.TripPreferences {
	merged := models.TripPreferences{}
	if base != nil {
		merged = *base
	}
	if overlay != nil {
		if overlay.Destination != "" {
			merged.Destination = overlay.Destination
		}
		if overlay.Dates.From != nil {
			merged.Dates.From = overlay.Dates.From
		}
		if overlay.Dates.To != nil {
			merged.Dates.To = overlay.Dates.To
		}
		if overlay.Budget != "" {
			merged.Budget = overlay.Budget
		}
		if overlay.PriceRange != nil {
			merged.PriceRange = overlay.PriceRange
		}
		if overlay.TripType != "" {
			merged.TripType = overlay.TripType
		}
		if overlay.Interests != nil {
			merged.Interests = overlay.Interests
		}
		if overlay.Travelers > 0 {
			merged.Travelers = overlay.Travelers
		}
	}

	if merged.Dates.Complete() {
		merged.NumberOfDays = models.DaysInclusive(*merged.Dates.From, *merged.Dates.To)
	} else {
		merged.NumberOfDays = 0
	}
	applyDefaults(&merged)
	return &merged
}
