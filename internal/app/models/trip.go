package models

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// BudgetTier buckets activity prices into the ranges the upstream API understands.
type BudgetTier string

const (
	BudgetAll    BudgetTier = "all"
	BudgetLow    BudgetTier = "low"
	BudgetMedium BudgetTier = "medium"
	BudgetHigh   BudgetTier = "high"
	BudgetLuxury BudgetTier = "luxury"
)

func (b BudgetTier) Valid() bool {
	switch b {
	case BudgetAll, BudgetLow, BudgetMedium, BudgetHigh, BudgetLuxury:
		return true
	}
	return false
}

type TripType string

const (
	TripFamily    TripType = "family"
	TripSolo      TripType = "solo"
	TripRomantic  TripType = "romantic"
	TripAdventure TripType = "adventure"
	TripBusiness  TripType = "business"
)

// Intent classifies what the user wants from the current message. It is a
// one-shot signal consumed by the preference merge, never stored.
type Intent string

const (
	IntentNewTrip           Intent = "new_trip"
	IntentModifyExisting    Intent = "modify_existing"
	IntentAskQuestion       Intent = "ask_question"
	IntentRefinePreferences Intent = "refine_preferences"
)

// TimeSlot is one of the three fixed day segments an activity can be scheduled in.
type TimeSlot string

const (
	SlotMorning   TimeSlot = "Morning"
	SlotAfternoon TimeSlot = "Afternoon"
	SlotEvening   TimeSlot = "Evening"
)

// StartClock maps a time slot to its fixed start time. Unknown slots fall
// through to the evening start, matching how missing slots are scheduled.
func (s TimeSlot) StartClock() string {
	switch s {
	case SlotMorning:
		return "09:00"
	case SlotAfternoon:
		return "13:00"
	default:
		return "17:00"
	}
}

const dateLayout = "2006-01-02"

// Date is a calendar day. It marshals as YYYY-MM-DD and accepts either that
// layout or RFC3339 on the way in, since clients send both.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func ParseDate(s string) (Date, error) {
	t, err := time.ParseInLocation(dateLayout, s, time.UTC)
	if err != nil {
		t, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
		}
	}
	return Date{t.UTC().Truncate(24 * time.Hour)}, nil
}

func (d Date) String() string { return d.Format(dateLayout) }

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// AddDays returns the date n calendar days later (negative n goes back).
func (d Date) AddDays(n int) Date {
	return Date{d.AddDate(0, 0, n)}
}

// DaysInclusive counts the days between two dates including both endpoints,
// so Jan 1 through Jan 3 is 3 days.
func DaysInclusive(from, to Date) int {
	return int(math.Round(to.Sub(from.Time).Hours()/24)) + 1
}

type DateRange struct {
	From *Date `json:"from,omitempty"`
	To   *Date `json:"to,omitempty"`
}

// Complete reports whether both bounds are present.
func (r DateRange) Complete() bool { return r.From != nil && r.To != nil }

type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// TripPreferences is the canonical preference record accumulated per session.
// NumberOfDays is derived from the date range and must be cleared whenever the
// range loses a bound; it is never allowed to outlive the dates it came from.
type TripPreferences struct {
	Destination  string      `json:"destination"`
	Dates        DateRange   `json:"dates"`
	NumberOfDays int         `json:"numberOfDays,omitempty"`
	Budget       BudgetTier  `json:"budget,omitempty"`
	PriceRange   *PriceRange `json:"priceRange,omitempty"`
	TripType     TripType    `json:"tripType,omitempty"`
	Interests    []string    `json:"interests,omitempty"`
	Travelers    int         `json:"travelers,omitempty"`
}

// DayPlan assigns activities to one trip day. TimeSlots[i] pairs positionally
// with ActivityIDs[i].
type DayPlan struct {
	Day         int        `json:"day"`
	Title       string     `json:"title"`
	ActivityIDs []string   `json:"activityIds"`
	TimeSlots   []TimeSlot `json:"timeSlots"`
}

type ItineraryStats struct {
	TotalDays           int    `json:"totalDays"`
	TotalActivities     int    `json:"totalActivities"`
	AvgActivitiesPerDay string `json:"avgActivitiesPerDay"`
}

// ItineraryItem is one fully hydrated entry of the final itinerary. It is
// recomputed from session state every turn and never stored.
type ItineraryItem struct {
	ID        string   `json:"id"`
	Day       int      `json:"day"`
	DayTitle  string   `json:"dayTitle,omitempty"`
	Sequence  int      `json:"sequence"`
	Title     string   `json:"title"`
	Type      string   `json:"type"`
	TimeOfDay TimeSlot `json:"timeOfDay,omitempty"`
	StartTime string   `json:"startTime,omitempty"`

	Location        GeoPoint `json:"location"`
	DurationMinutes int      `json:"duration,omitempty"`
	Cost            float64  `json:"cost,omitempty"`
	Rating          float64  `json:"rating,omitempty"`
	Description     string   `json:"description,omitempty"`
	Image           string   `json:"image,omitempty"`

	ActivityID       string        `json:"activityId,omitempty"`
	ActivityType     string        `json:"activityType,omitempty"`
	Label            string        `json:"label,omitempty"`
	ReviewCount      int           `json:"reviews,omitempty"`
	BackgroundImages []string      `json:"backgroundImages,omitempty"`
	Tags             []ActivityTag `json:"tags,omitempty"`
	Currency         string        `json:"currency,omitempty"`
	StartingPrice    float64       `json:"startingPrice,omitempty"`
	Availability     string        `json:"availability,omitempty"`
	CountryName      string        `json:"countryName,omitempty"`
	CityName         string        `json:"cityName,omitempty"`
	IsDiscounted     bool          `json:"isDiscount,omitempty"`
}
