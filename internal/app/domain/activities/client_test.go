package activities

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-tripplanner/internal/app/models"
	"github.com/FACorreiaa/go-tripplanner/internal/pkg/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(config.ActivityAPIConfig{
		BaseURL:   server.URL,
		AuthToken: "test-token",
		Timeout:   5 * time.Second,
	}, zap.NewNop())
	return client, server
}

func successBody(activities ...apiActivity) apiResponse {
	return apiResponse{Status: 1, ResponseData: activities}
}

func TestSearchSendsFiltersAndAuth(t *testing.T) {
	var captured apiRequest
	var authHeader string

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/listActivities", r.URL.Path)
		authHeader = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		json.NewEncoder(w).Encode(successBody(apiActivity{ID: "a1", Name: "Safari"}))
	})

	from := models.NewDate(2025, 12, 25)
	to := models.NewDate(2025, 12, 27)
	results, err := client.Search(context.Background(), SearchQuery{
		Destination: "Dubai",
		Budget:      models.BudgetMedium,
		Interests:   []string{"Culture"},
		Sort:        SortPriceLowToHigh,
		Limit:       18,
		Page:        1,
		DateFrom:    &from,
		DateTo:      &to,
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-token", authHeader)
	assert.Equal(t, "Dubai", captured.Destination)
	assert.Equal(t, apiPriceRange{Min: 0, Max: 200}, captured.PriceRange)
	assert.Equal(t, SortPriceLowToHigh, captured.Sort)
	assert.Equal(t, "2025-12-25", captured.StartDateFilter)
	assert.Equal(t, "2025-12-27", captured.EndDateFilter)

	require.Len(t, captured.Filter, 1)
	assert.Equal(t, "Activity Type", captured.Filter[0].Title)
	assert.Equal(t, []apiFilterEntry{
		{Name: "Museum", Type: true},
		{Name: "Cultural Tour", Type: true},
		{Name: "Historical Site", Type: true},
	}, captured.Filter[0].Filters)

	require.Len(t, results, 1)
	assert.Equal(t, "a1", results[0].ID)
}

func TestSearchBudgetRanges(t *testing.T) {
	tests := []struct {
		budget models.BudgetTier
		want   apiPriceRange
	}{
		{budget: models.BudgetAll, want: apiPriceRange{Min: 0, Max: 0}},
		{budget: models.BudgetLow, want: apiPriceRange{Min: 0, Max: 100}},
		{budget: models.BudgetMedium, want: apiPriceRange{Min: 0, Max: 200}},
		{budget: models.BudgetHigh, want: apiPriceRange{Min: 0, Max: 300}},
		{budget: models.BudgetLuxury, want: apiPriceRange{Min: 0, Max: 5000}},
	}

	for _, tt := range tests {
		t.Run(string(tt.budget), func(t *testing.T) {
			var captured apiRequest
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				json.NewDecoder(r.Body).Decode(&captured)
				json.NewEncoder(w).Encode(successBody())
			})

			_, err := client.Search(context.Background(), SearchQuery{
				Destination: "Dubai",
				Budget:      tt.budget,
				Limit:       10,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, captured.PriceRange)
		})
	}
}

func TestSearchExplicitPriceRangeOverridesBudget(t *testing.T) {
	var captured apiRequest
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&captured)
		json.NewEncoder(w).Encode(successBody())
	})

	_, err := client.Search(context.Background(), SearchQuery{
		Destination: "Dubai",
		Budget:      models.BudgetLow,
		PriceRange:  &models.PriceRange{Min: 50, Max: 75},
		Limit:       10,
	})
	require.NoError(t, err)
	assert.Equal(t, apiPriceRange{Min: 50, Max: 75}, captured.PriceRange)
}

func TestSearchFansOutAcrossPages(t *testing.T) {
	var mu sync.Mutex
	pagesSeen := []int{}

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req apiRequest
		json.NewDecoder(r.Body).Decode(&req)

		mu.Lock()
		pagesSeen = append(pagesSeen, req.Page)
		mu.Unlock()

		batch := make([]apiActivity, 0, req.Limit)
		for i := 0; i < req.Limit; i++ {
			batch = append(batch, apiActivity{ID: fmt.Sprintf("p%d-%d", req.Page, i)})
		}
		json.NewEncoder(w).Encode(successBody(batch...))
	})

	results, err := client.Search(context.Background(), SearchQuery{
		Destination: "Dubai",
		Limit:       120,
	})
	require.NoError(t, err)

	assert.Len(t, results, 120)
	assert.ElementsMatch(t, []int{1, 2, 3}, pagesSeen)
	// Merged output keeps page order regardless of arrival order.
	assert.Equal(t, "p1-0", results[0].ID)
	assert.Equal(t, "p3-0", results[100].ID)
}

func TestSearchUpstreamErrorStatus(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.Search(context.Background(), SearchQuery{Destination: "Dubai", Limit: 10})
	assert.ErrorIs(t, err, models.ErrUpstreamFetch)
}

func TestSearchNonSuccessPayloadStatus(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(apiResponse{Status: 0, Message: "no results"})
	})

	results, err := client.Search(context.Background(), SearchQuery{Destination: "Dubai", Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestActivityDetails(t *testing.T) {
	var captured apiRequest
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&captured)
		json.NewEncoder(w).Encode(successBody(apiActivity{ID: "abc", Name: "Safari"}))
	})

	activity, err := client.ActivityDetails(context.Background(), "abc")
	require.NoError(t, err)

	assert.Equal(t, "abc", captured.ActivityID)
	require.NotNil(t, activity)
	assert.Equal(t, "Safari", activity.Name)
}

func TestActivityDetailsNotFound(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(successBody())
	})

	activity, err := client.ActivityDetails(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Nil(t, activity)
}
