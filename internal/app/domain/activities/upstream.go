package activities

// Wire schema of the upstream listActivities API. The shapes here are owned
// by the external service; nothing outside this package sees them.

type apiPriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type apiFilterEntry struct {
	Name string `json:"name"`
	Type bool   `json:"type"`
}

type apiFilterGroup struct {
	Title   string           `json:"title"`
	Type    int              `json:"type"`
	Filters []apiFilterEntry `json:"filters"`
}

type apiRequest struct {
	Destination     string           `json:"destination"`
	PriceRange      apiPriceRange    `json:"priceRange"`
	Sort            int              `json:"sort"`
	Filter          []apiFilterGroup `json:"filter,omitempty"`
	ActivityID      string           `json:"activityId,omitempty"`
	Limit           int              `json:"limit,omitempty"`
	Page            int              `json:"page,omitempty"`
	StartDateFilter string           `json:"startDateFilter,omitempty"`
	EndDateFilter   string           `json:"endDateFilter,omitempty"`
}

type apiChoice struct {
	ID               string   `json:"_id"`
	Name             string   `json:"name"`
	ShortDescription string   `json:"shortDescription"`
	AdultPrice       float64  `json:"adultPrice"`
	ChildPrice       float64  `json:"childPrice"`
	SeniorPrice      float64  `json:"seniorPrice"`
	Image            []string `json:"image"`
	ShowOffTime      string   `json:"showOffTime"`
}

type apiTag struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

type apiActivity struct {
	ID                    string      `json:"_id"`
	Name                  string      `json:"name"`
	Image                 string      `json:"image"`
	BackgroundImage       []string    `json:"backgroundImage"`
	MobileBackgroundImage []string    `json:"mobileBackgroundImage"`
	Description           string      `json:"description"`
	Label                 string      `json:"label"`
	Type                  string      `json:"type"`
	Status                int         `json:"status"`
	Rating                float64     `json:"rating"`
	Reviews               int         `json:"reviews"`
	CountryCode           string      `json:"countryCode"`
	Tags                  []apiTag    `json:"tags"`
	Latitude              float64     `json:"latitude"`
	Longitude             float64     `json:"longitude"`
	StartDate             string      `json:"startDate"`
	EndDate               string      `json:"endDate"`
	Choice                []apiChoice `json:"choice"`
	CreatedDate           string      `json:"createdDate"`
	IsDiscount            bool        `json:"isDiscount"`
	IsShow                bool        `json:"isShow"`
	IsAvailable           bool        `json:"isAvailable"`
	CityName              string      `json:"cityName"`
	CountryName           string      `json:"countryName"`
	Price                 float64     `json:"price"`
	Currency              string      `json:"currency"`
	StartingPrice         float64     `json:"startingPrice"`
	Availability          string      `json:"availability"`
}

type apiResponse struct {
	Status       int           `json:"status"`
	Message      string        `json:"message"`
	ResponseData []apiActivity `json:"responseData"`
	CurrentPage  int           `json:"currentPage,omitempty"`
	TotalPages   int           `json:"totalPages,omitempty"`
}
