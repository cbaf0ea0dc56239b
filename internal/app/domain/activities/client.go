package activities

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/FACorreiaa/go-tripplanner/internal/app/models"
	"github.com/FACorreiaa/go-tripplanner/internal/app/observability/metrics"
	"github.com/FACorreiaa/go-tripplanner/internal/pkg/config"
)

// maxPageSize is the largest batch the upstream API returns per request;
// larger limits are fanned out across pages.
const maxPageSize = 50

// SortOrder values understood by the upstream API.
const (
	SortDefault        = 0
	SortPriceLowToHigh = 3
	SortPriceHighToLow = 7
)

var budgetRanges = map[models.BudgetTier]apiPriceRange{
	models.BudgetAll:    {Min: 0, Max: 0},
	models.BudgetLow:    {Min: 0, Max: 100},
	models.BudgetMedium: {Min: 0, Max: 200},
	models.BudgetHigh:   {Min: 0, Max: 300},
	models.BudgetLuxury: {Min: 0, Max: 5000},
}

// SearchQuery carries the caller-side filters for an activity search.
type SearchQuery struct {
	Destination string
	Budget      models.BudgetTier
	PriceRange  *models.PriceRange
	Interests   []string
	Sort        int
	Limit       int
	Page        int
	DateFrom    *models.Date
	DateTo      *models.Date
}

// HasBudgetConstraint reports whether the query narrows results by price.
func (q SearchQuery) HasBudgetConstraint() bool {
	return q.PriceRange != nil || (q.Budget != "" && q.Budget != models.BudgetAll)
}

// WithoutBudget returns a copy of the query with all price constraints
// removed, for the budget-fallback retry.
func (q SearchQuery) WithoutBudget() SearchQuery {
	q.Budget = ""
	q.PriceRange = nil
	return q
}

// Client talks to the upstream activity search API and returns canonical
// activities.
type Client struct {
	httpClient *http.Client
	baseURL    string
	authToken  string
	logger     *zap.Logger
}

func NewClient(cfg config.ActivityAPIConfig, logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		authToken:  cfg.AuthToken,
		logger:     logger,
	}
}

// Search runs the filtered query, fanning out across pages when the limit
// exceeds a single upstream batch.
func (c *Client) Search(ctx context.Context, q SearchQuery) ([]models.Activity, error) {
	ctx, span := otel.Tracer("ActivitySearch").Start(ctx, "Search", trace.WithAttributes(
		attribute.String("destination", q.Destination),
		attribute.Int("limit", q.Limit),
	))
	defer span.End()

	start := time.Now()
	defer func() {
		metrics.Get().UpstreamFetchDuration.Record(ctx, time.Since(start).Seconds())
	}()

	if q.Limit <= maxPageSize {
		raw, err := c.fetchPage(ctx, q)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "Upstream fetch failed")
			return nil, err
		}
		span.SetAttributes(attribute.Int("results.count", len(raw)))
		span.SetStatus(codes.Ok, "Search completed")
		return NormalizeAll(raw), nil
	}

	pages := (q.Limit + maxPageSize - 1) / maxPageSize
	span.SetAttributes(attribute.Int("pages", pages))

	type pageResult struct {
		page int
		raw  []apiActivity
	}
	results := make([]pageResult, 0, pages)
	resultCh := make(chan pageResult, pages)

	g, gctx := errgroup.WithContext(ctx)
	for page := 1; page <= pages; page++ {
		pageQuery := q
		pageQuery.Page = page
		pageQuery.Limit = maxPageSize
		g.Go(func() error {
			raw, err := c.fetchPage(gctx, pageQuery)
			if err != nil {
				return err
			}
			resultCh <- pageResult{page: pageQuery.Page, raw: raw}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Upstream fetch failed")
		return nil, err
	}
	close(resultCh)

	for r := range resultCh {
		results = append(results, r)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].page < results[j].page })

	merged := make([]apiActivity, 0, q.Limit)
	for _, r := range results {
		merged = append(merged, r.raw...)
	}
	if len(merged) > q.Limit {
		merged = merged[:q.Limit]
	}

	span.SetAttributes(attribute.Int("results.count", len(merged)))
	span.SetStatus(codes.Ok, "Search completed")
	return NormalizeAll(merged), nil
}

// ActivityDetails fetches a single activity by its upstream id.
func (c *Client) ActivityDetails(ctx context.Context, activityID string) (*models.Activity, error) {
	ctx, span := otel.Tracer("ActivitySearch").Start(ctx, "ActivityDetails", trace.WithAttributes(
		attribute.String("activity.id", activityID),
	))
	defer span.End()

	raw, err := c.post(ctx, apiRequest{
		Destination: "All",
		PriceRange:  apiPriceRange{},
		Sort:        SortDefault,
		ActivityID:  activityID,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Upstream fetch failed")
		return nil, err
	}
	if len(raw) == 0 {
		span.SetStatus(codes.Ok, "Activity not found")
		return nil, nil
	}

	activity := normalizeActivity(raw[0])
	span.SetStatus(codes.Ok, "Activity fetched")
	return &activity, nil
}

func (c *Client) fetchPage(ctx context.Context, q SearchQuery) ([]apiActivity, error) {
	return c.post(ctx, c.buildRequest(q))
}

func (c *Client) buildRequest(q SearchQuery) apiRequest {
	priceRange := budgetRanges[models.BudgetAll]
	if q.Budget != "" {
		if r, ok := budgetRanges[q.Budget]; ok {
			priceRange = r
		}
	}
	if q.PriceRange != nil {
		priceRange = apiPriceRange{Min: q.PriceRange.Min, Max: q.PriceRange.Max}
	}

	destination := q.Destination
	if destination == "" {
		destination = "All"
	}

	req := apiRequest{
		Destination: destination,
		PriceRange:  priceRange,
		Sort:        q.Sort,
		Limit:       q.Limit,
		Page:        q.Page,
	}

	if types := ActivityTypesFor(q.Interests); len(types) > 0 {
		entries := make([]apiFilterEntry, 0, len(types))
		for _, t := range types {
			entries = append(entries, apiFilterEntry{Name: t, Type: true})
		}
		req.Filter = []apiFilterGroup{{Title: "Activity Type", Type: 0, Filters: entries}}
	}

	if q.DateFrom != nil {
		req.StartDateFilter = q.DateFrom.String()
	}
	if q.DateTo != nil {
		req.EndDateFilter = q.DateTo.String()
	}

	return req
}

func (c *Client) post(ctx context.Context, body apiRequest) ([]apiActivity, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("%w: encode request: %w", models.ErrUpstreamFetch, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/listActivities", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", models.ErrUpstreamFetch, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrUpstreamFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %s", models.ErrUpstreamFetch, resp.Status)
	}

	var decoded apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", models.ErrUpstreamFetch, err)
	}

	if decoded.Status != 1 {
		c.logger.Warn("Upstream returned non-success status",
			zap.Int("status", decoded.Status),
			zap.String("message", decoded.Message),
		)
		return nil, nil
	}

	return decoded.ResponseData, nil
}
