package activities

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/FACorreiaa/go-tripplanner/internal/app/models"
)

// Searcher is the upstream search surface consumed by handlers and the
// planner tools.
type Searcher interface {
	Search(ctx context.Context, q SearchQuery) ([]models.Activity, error)
	ActivityDetails(ctx context.Context, activityID string) (*models.Activity, error)
}

// SortFromString maps the public sort names onto upstream sort codes.
// Unknown names fall back to the upstream default ordering.
func SortFromString(name string) int {
	switch name {
	case "price_low_to_high":
		return SortPriceLowToHigh
	case "price_high_to_low":
		return SortPriceHighToLow
	default:
		return SortDefault
	}
}

type ActivitiesHandlers struct {
	searcher Searcher
	logger   *zap.Logger
}

func NewActivitiesHandlers(searcher Searcher, logger *zap.Logger) *ActivitiesHandlers {
	return &ActivitiesHandlers{
		searcher: searcher,
		logger:   logger,
	}
}

type searchActivitiesRequest struct {
	Destination string             `json:"destination" binding:"required"`
	Budget      models.BudgetTier  `json:"budget"`
	PriceRange  *models.PriceRange `json:"priceRange"`
	Interests   []string           `json:"interests"`
	Sort        string             `json:"sort"`
	Limit       int                `json:"limit"`
	Page        int                `json:"page"`
	DateFrom    *models.Date       `json:"dateFrom"`
	DateTo      *models.Date       `json:"dateTo"`
}

var titleCaser = cases.Title(language.English)

// SearchActivities handles POST /api/activities, running a one-shot filtered
// search outside any chat session.
func (h *ActivitiesHandlers) SearchActivities(c *gin.Context) {
	var req searchActivitiesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "destination is required"})
		return
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 20
	}
	page := req.Page
	if page <= 0 {
		page = 1
	}

	query := SearchQuery{
		Destination: titleCaser.String(req.Destination),
		Budget:      req.Budget,
		PriceRange:  req.PriceRange,
		Interests:   req.Interests,
		Sort:        SortFromString(req.Sort),
		Limit:       limit,
		Page:        page,
		DateFrom:    req.DateFrom,
		DateTo:      req.DateTo,
	}

	results, err := h.searcher.Search(c.Request.Context(), query)
	if err != nil {
		h.logger.Error("Activity search failed",
			zap.String("destination", query.Destination),
			zap.Error(err),
		)
		c.JSON(http.StatusBadGateway, gin.H{"error": "activity search unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"destination": query.Destination,
		"count":       len(results),
		"activities":  results,
	})
}

// GetActivityDetails handles GET /api/activities/:id.
func (h *ActivitiesHandlers) GetActivityDetails(c *gin.Context) {
	activityID := c.Param("id")
	if activityID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "activity id is required"})
		return
	}

	activity, err := h.searcher.ActivityDetails(c.Request.Context(), activityID)
	if err != nil {
		h.logger.Error("Activity details fetch failed",
			zap.String("activity_id", activityID),
			zap.Error(err),
		)
		c.JSON(http.StatusBadGateway, gin.H{"error": "activity lookup unavailable"})
		return
	}
	if activity == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "activity not found"})
		return
	}

	c.JSON(http.StatusOK, activity)
}
