package planner

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-tripplanner/internal/app/domain/activities"
	"github.com/FACorreiaa/go-tripplanner/internal/app/models"
)

type mockSearcher struct {
	mock.Mock
}

func (m *mockSearcher) Search(ctx context.Context, q activities.SearchQuery) ([]models.Activity, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Activity), args.Error(1)
}

func (m *mockSearcher) ActivityDetails(ctx context.Context, activityID string) (*models.Activity, error) {
	args := m.Called(ctx, activityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Activity), args.Error(1)
}

func TestFetchOverRequestsForFlexibility(t *testing.T) {
	searcher := new(mockSearcher)
	tool := NewRetrievalTool(searcher, zap.NewNop())

	found := []models.Activity{{ID: "a1", Name: "Safari"}}
	searcher.On("Search", mock.Anything, mock.MatchedBy(func(q activities.SearchQuery) bool {
		return q.Limit == 18 && q.Destination == "Dubai"
	})).Return(found, nil).Once()

	result := tool.Fetch(context.Background(), RetrievalParams{
		Destination:  "Dubai",
		NumberOfDays: 3,
	})

	require.True(t, result.Success)
	assert.Equal(t, 1, result.Count)
	assert.Equal(t, found, result.Activities)
	assert.Equal(t, "Found 1 activities in Dubai", result.Summary)
	searcher.AssertExpectations(t)
}

func TestFetchSummaryMentionsBudget(t *testing.T) {
	searcher := new(mockSearcher)
	tool := NewRetrievalTool(searcher, zap.NewNop())

	searcher.On("Search", mock.Anything, mock.Anything).
		Return([]models.Activity{{ID: "a1"}, {ID: "a2"}}, nil).Once()

	result := tool.Fetch(context.Background(), RetrievalParams{
		Destination:  "Dubai",
		NumberOfDays: 2,
		Budget:       models.BudgetMedium,
	})

	require.True(t, result.Success)
	assert.Equal(t, "Found 2 activities in Dubai within medium budget", result.Summary)
}

func TestFetchFallsBackWhenBudgetEmptiesResults(t *testing.T) {
	searcher := new(mockSearcher)
	tool := NewRetrievalTool(searcher, zap.NewNop())

	searcher.On("Search", mock.Anything, mock.MatchedBy(func(q activities.SearchQuery) bool {
		return q.Budget == models.BudgetLow
	})).Return([]models.Activity{}, nil).Once()

	alternatives := []models.Activity{{ID: "a1", Name: "Luxury Cruise"}}
	searcher.On("Search", mock.Anything, mock.MatchedBy(func(q activities.SearchQuery) bool {
		return q.Budget == "" && q.PriceRange == nil
	})).Return(alternatives, nil).Once()

	result := tool.Fetch(context.Background(), RetrievalParams{
		Destination:  "Dubai",
		NumberOfDays: 1,
		Budget:       models.BudgetLow,
	})

	require.True(t, result.Success)
	assert.True(t, result.BudgetAlternatives)
	assert.Equal(t, "No activities found within specified budget. Showing alternatives at different price points.", result.Warning)
	assert.Equal(t, alternatives, result.Activities)
	searcher.AssertExpectations(t)
}

func TestFetchNoFallbackWithoutBudgetConstraint(t *testing.T) {
	searcher := new(mockSearcher)
	tool := NewRetrievalTool(searcher, zap.NewNop())

	searcher.On("Search", mock.Anything, mock.Anything).
		Return([]models.Activity{}, nil).Once()

	result := tool.Fetch(context.Background(), RetrievalParams{
		Destination:  "Dubai",
		NumberOfDays: 1,
	})

	require.True(t, result.Success)
	assert.Zero(t, result.Count)
	assert.False(t, result.BudgetAlternatives)
	searcher.AssertNumberOfCalls(t, "Search", 1)
}

func TestFetchDegradesOnUpstreamFailure(t *testing.T) {
	searcher := new(mockSearcher)
	tool := NewRetrievalTool(searcher, zap.NewNop())

	searcher.On("Search", mock.Anything, mock.Anything).
		Return(nil, errors.New("connection refused")).Once()

	result := tool.Fetch(context.Background(), RetrievalParams{
		Destination:  "Dubai",
		NumberOfDays: 2,
	})

	assert.False(t, result.Success)
	assert.NotNil(t, result.Activities)
	assert.Empty(t, result.Activities)
	assert.Contains(t, result.Error, "connection refused")
}

func TestFetchRejectsNonPositiveDayCount(t *testing.T) {
	searcher := new(mockSearcher)
	tool := NewRetrievalTool(searcher, zap.NewNop())

	result := tool.Fetch(context.Background(), RetrievalParams{Destination: "Dubai"})

	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Error)
	searcher.AssertNotCalled(t, "Search")
}

func TestFetchPostFiltersByInterests(t *testing.T) {
	searcher := new(mockSearcher)
	tool := NewRetrievalTool(searcher, zap.NewNop())

	searcher.On("Search", mock.Anything, mock.Anything).Return([]models.Activity{
		{ID: "a1", Name: "Desert Safari", Type: "Safari"},
		{ID: "a2", Name: "Expo Pass", Type: "Conference"},
		{ID: "a3", Name: "Dune Tour", Type: "Tour", Tags: []models.ActivityTag{{Name: "Adventure"}}},
	}, nil).Once()

	result := tool.Fetch(context.Background(), RetrievalParams{
		Destination:  "Dubai",
		NumberOfDays: 1,
		Interests:    []string{"Adventure"},
	})

	require.True(t, result.Success)
	require.Len(t, result.Activities, 2)
	assert.Equal(t, "a1", result.Activities[0].ID)
	assert.Equal(t, "a3", result.Activities[1].ID)
	assert.Equal(t, 2, result.Count)
}

func TestFetchPassesDateWindow(t *testing.T) {
	searcher := new(mockSearcher)
	tool := NewRetrievalTool(searcher, zap.NewNop())

	searcher.On("Search", mock.Anything, mock.MatchedBy(func(q activities.SearchQuery) bool {
		return q.DateFrom != nil && q.DateTo != nil &&
			q.DateFrom.String() == "2025-12-25" && q.DateTo.String() == "2025-12-27"
	})).Return([]models.Activity{}, nil).Once()

	tool.Fetch(context.Background(), RetrievalParams{
		Destination:  "Dubai",
		NumberOfDays: 3,
		StartDate:    "2025-12-25",
		EndDate:      "2025-12-27",
	})

	searcher.AssertExpectations(t)
}
