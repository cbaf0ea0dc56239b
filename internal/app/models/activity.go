package models

type GeoPoint struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address"`
}

type ActivityTag struct {
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

// Activity is the canonical internal representation of a bookable activity,
// independent of the upstream source schema. Identity is the ID; an activity
// without one is never admitted into session state.
type Activity struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	Location    GeoPoint `json:"location"`
	CityName    string   `json:"cityName,omitempty"`
	CountryName string   `json:"countryName,omitempty"`

	Cost          float64 `json:"cost"`
	StartingPrice float64 `json:"startingPrice,omitempty"`
	Currency      string  `json:"currency,omitempty"`
	IsDiscounted  bool    `json:"isDiscount,omitempty"`

	Rating      float64 `json:"rating,omitempty"`
	ReviewCount int     `json:"reviews,omitempty"`
	Label       string  `json:"label,omitempty"`

	Type            string `json:"type,omitempty"`
	DurationMinutes int    `json:"duration,omitempty"`
	Availability    string `json:"availability,omitempty"`

	Tags             []ActivityTag `json:"tags,omitempty"`
	Image            string        `json:"image,omitempty"`
	BackgroundImages []string      `json:"backgroundImages,omitempty"`
}

// HasIdentity reports whether the activity can be keyed into the session map.
func (a Activity) HasIdentity() bool { return a.ID != "" }
