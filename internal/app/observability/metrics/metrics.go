package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	ChatTurnsTotal        metric.Int64Counter
	ChatTurnDuration      metric.Float64Histogram
	ToolInvocationsTotal  metric.Int64Counter
	UpstreamFetchDuration metric.Float64Histogram
	ActiveSessionsGauge   metric.Int64Gauge
	ItineraryItemsBuilt   metric.Int64Counter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics initializes the global metric instruments only once, using
// the globally configured MeterProvider.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("go-tripplanner")
		var err error
		m := &AppMetrics{}

		m.ChatTurnsTotal, err = meter.Int64Counter(
			"chat_turns_total",
			metric.WithDescription("Total number of chat turns processed"),
			metric.WithUnit("{turn}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create chat_turns_total: %v", err)
		}

		m.ChatTurnDuration, err = meter.Float64Histogram(
			"chat_turn_duration_seconds",
			metric.WithDescription("Duration of a full chat turn including all tool calls"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create chat_turn_duration_seconds: %v", err)
		}

		m.ToolInvocationsTotal, err = meter.Int64Counter(
			"tool_invocations_total",
			metric.WithDescription("Total number of planner tool invocations by tool and outcome"),
			metric.WithUnit("{invocation}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create tool_invocations_total: %v", err)
		}

		m.UpstreamFetchDuration, err = meter.Float64Histogram(
			"upstream_fetch_duration_seconds",
			metric.WithDescription("Duration of upstream activity search requests"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create upstream_fetch_duration_seconds: %v", err)
		}

		m.ActiveSessionsGauge, err = meter.Int64Gauge(
			"planner_sessions_active",
			metric.WithDescription("Number of live planner sessions in the store"),
			metric.WithUnit("{session}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create planner_sessions_active: %v", err)
		}

		m.ItineraryItemsBuilt, err = meter.Int64Counter(
			"itinerary_items_built_total",
			metric.WithDescription("Total itinerary entries produced by the reducer"),
			metric.WithUnit("{item}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create itinerary_items_built_total: %v", err)
		}

		appMetrics = m
	})
}

// Get returns the global metrics instance, initializing it on first use. With
// no meter provider configured the instruments are no-ops, which keeps tests
// free of setup.
func Get() *AppMetrics {
	InitAppMetrics()
	return appMetrics
}
