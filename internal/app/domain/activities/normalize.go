package activities

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/FACorreiaa/go-tripplanner/internal/app/models"
)

// defaultDurationMinutes is assumed when the upstream duration text cannot be
// parsed.
const defaultDurationMinutes = 120

var durationPattern = regexp.MustCompile(`(?i)(\d+)\s*(hour|minute|min|hr)`)

// ParseDurationMinutes converts free-text durations like "2 hour" or
// "45 min" into minutes. The second return reports whether the text matched.
func ParseDurationMinutes(showOffTime string) (int, bool) {
	match := durationPattern.FindStringSubmatch(showOffTime)
	if match == nil {
		return 0, false
	}

	value, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, false
	}

	unit := strings.ToLower(match[2])
	if strings.HasPrefix(unit, "hour") || unit == "hr" {
		return value * 60, true
	}
	return value, true
}

// synthesizeAddress builds a display address from city and country when the
// upstream record carries no structured address.
func synthesizeAddress(city, country string) string {
	parts := make([]string, 0, 2)
	if city = strings.TrimSpace(city); city != "" {
		parts = append(parts, city)
	}
	if country = strings.TrimSpace(country); country != "" {
		parts = append(parts, country)
	}
	return strings.Join(parts, ", ")
}

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// StripHTMLTags flattens upstream HTML descriptions to plain text.
func StripHTMLTags(html string) string {
	if html == "" {
		return ""
	}
	text := htmlTagPattern.ReplaceAllString(html, "")
	replacer := strings.NewReplacer(
		"&nbsp;", " ",
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
	)
	return strings.TrimSpace(replacer.Replace(text))
}

// LowestChoicePrice returns the lowest positive price across all choices, or
// 0 when no choice has a usable price.
func LowestChoicePrice(choices []apiChoice) float64 {
	lowest := 0.0
	for _, choice := range choices {
		for _, price := range []float64{choice.AdultPrice, choice.ChildPrice, choice.SeniorPrice} {
			if price > 0 && (lowest == 0 || price < lowest) {
				lowest = price
			}
		}
	}
	return lowest
}

// HighestChoicePrice returns the highest price across all choices.
func HighestChoicePrice(choices []apiChoice) float64 {
	highest := 0.0
	for _, choice := range choices {
		for _, price := range []float64{choice.AdultPrice, choice.ChildPrice, choice.SeniorPrice} {
			if price > highest {
				highest = price
			}
		}
	}
	return highest
}

// normalizeActivity translates one upstream record into the canonical shape.
// Malformed fields degrade to defaults; a bad record never aborts a batch.
func normalizeActivity(a apiActivity) models.Activity {
	cost := a.Price
	if cost == 0 {
		cost = a.StartingPrice
	}

	duration := defaultDurationMinutes
	if len(a.Choice) > 0 {
		if minutes, ok := ParseDurationMinutes(a.Choice[0].ShowOffTime); ok {
			duration = minutes
		}
	}

	currency := a.Currency
	if currency == "" {
		currency = "AED"
	}

	tags := make([]models.ActivityTag, 0, len(a.Tags))
	for _, t := range a.Tags {
		tags = append(tags, models.ActivityTag{Name: t.Name, Image: t.Image})
	}

	return models.Activity{
		ID:          a.ID,
		Name:        a.Name,
		Description: StripHTMLTags(a.Description),
		Location: models.GeoPoint{
			Lat:     a.Latitude,
			Lng:     a.Longitude,
			Address: synthesizeAddress(a.CityName, a.CountryName),
		},
		CityName:         a.CityName,
		CountryName:      a.CountryName,
		Cost:             cost,
		StartingPrice:    a.StartingPrice,
		Currency:         currency,
		IsDiscounted:     a.IsDiscount,
		Rating:           a.Rating,
		ReviewCount:      a.Reviews,
		Label:            a.Label,
		Type:             a.Type,
		DurationMinutes:  duration,
		Availability:     a.Availability,
		Tags:             tags,
		Image:            a.Image,
		BackgroundImages: a.BackgroundImage,
	}
}

// NormalizeAll maps a batch of upstream records to canonical activities.
func NormalizeAll(raw []apiActivity) []models.Activity {
	out := make([]models.Activity, 0, len(raw))
	for _, a := range raw {
		out = append(out, normalizeActivity(a))
	}
	return out
}
