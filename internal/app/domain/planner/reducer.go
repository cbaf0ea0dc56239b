package planner

import (
	"fmt"

	"github.com/FACorreiaa/go-tripplanner/internal/app/models"
)

// Reduce deterministically flattens the session's day distribution into the
// final itinerary, hydrating each scheduled id from the activity map. Ids
// with no stored activity are skipped; the sequence stays positional, so a
// skip leaves a visible gap rather than renumbering the day.
func Reduce(activities map[string]models.Activity, distribution []models.DayPlan) []models.ItineraryItem {
	itinerary := []models.ItineraryItem{}

	for _, day := range distribution {
		for index, activityID := range day.ActivityIDs {
			activity, found := activities[activityID]
			if !found {
				continue
			}

			var slot models.TimeSlot
			if index < len(day.TimeSlots) {
				slot = day.TimeSlots[index]
			}

			sequence := index + 1
			itinerary = append(itinerary, models.ItineraryItem{
				ID:        fmt.Sprintf("%d-%d", day.Day, sequence),
				Day:       day.Day,
				DayTitle:  day.Title,
				Sequence:  sequence,
				Title:     activity.Name,
				Type:      "activity",
				TimeOfDay: slot,
				StartTime: slot.StartClock(),

				Location:        activity.Location,
				DurationMinutes: activity.DurationMinutes,
				Cost:            activity.Cost,
				Rating:          activity.Rating,
				Description:     activity.Description,
				Image:           activity.Image,

				ActivityID:       activity.ID,
				ActivityType:     activity.Type,
				Label:            activity.Label,
				ReviewCount:      activity.ReviewCount,
				BackgroundImages: activity.BackgroundImages,
				Tags:             activity.Tags,
				Currency:         activity.Currency,
				StartingPrice:    activity.StartingPrice,
				Availability:     activity.Availability,
				CountryName:      activity.CountryName,
				CityName:         activity.CityName,
				IsDiscounted:     activity.IsDiscounted,
			})
		}
	}

	return itinerary
}
