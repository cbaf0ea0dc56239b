package planner

import (
	"context"
	"encoding/json"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/FACorreiaa/go-tripplanner/internal/app/observability/metrics"
)

// Tool names as the model sees them.
const (
	ToolAnalyzePreferences = "analyzePreferences"
	ToolFetchActivities    = "fetchActivities"
	ToolGenerateItinerary  = "generateItinerary"
)

// ToolCatalog wires the three planning tools behind the runner's executor
// interface.
type ToolCatalog struct {
	retrieval *RetrievalTool
	assembly  *AssemblyTool
	logger    *zap.Logger
}

func NewToolCatalog(retrieval *RetrievalTool, assembly *AssemblyTool, logger *zap.Logger) *ToolCatalog {
	return &ToolCatalog{
		retrieval: retrieval,
		assembly:  assembly,
		logger:    logger,
	}
}

func (c *ToolCatalog) Declarations() []*genai.FunctionDeclaration {
	return []*genai.FunctionDeclaration{
		analyzePreferencesDeclaration(),
		fetchActivitiesDeclaration(),
		generateItineraryDeclaration(),
	}
}

// Execute dispatches one model-issued call to its tool. Tool-level failures
// come back inside the typed result; only an unknown tool name or undecodable
// arguments are a dispatch error.
func (c *ToolCatalog) Execute(ctx context.Context, name string, args map[string]any) (any, error) {
	result, err := c.dispatch(ctx, name, args)

	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	metrics.Get().ToolInvocationsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("tool", name),
		attribute.String("outcome", outcome),
	))

	return result, err
}

func (c *ToolCatalog) dispatch(ctx context.Context, name string, args map[string]any) (any, error) {
	switch name {
	case ToolAnalyzePreferences:
		var update PreferenceUpdate
		if err := decodeArgs(args, &update); err != nil {
			return nil, err
		}
		resolved, err := ResolvePreferences(update)
		if err != nil {
			c.logger.Warn("Preference analysis failed", zap.Error(err))
			return PreferenceAnalysisResult{Success: false, Error: err.Error()}, nil
		}
		return PreferenceAnalysisResult{
			Success:     true,
			Preferences: resolved,
			UserIntent:  update.UserIntent,
			Summary:     analysisSummary(MergePreferences(nil, resolved)),
		}, nil

	case ToolFetchActivities:
		var params RetrievalParams
		if err := decodeArgs(args, &params); err != nil {
			return nil, err
		}
		return c.retrieval.Fetch(ctx, params), nil

	case ToolGenerateItinerary:
		var params AssemblyParams
		if err := decodeArgs(args, &params); err != nil {
			return nil, err
		}
		return c.assembly.Assemble(params), nil

	default:
		return nil, fmt.Errorf("unknown tool %q", name)
	}
}

// decodeArgs converts the model's loosely typed argument map into the tool's
// parameter struct.
func decodeArgs(args map[string]any, target any) error {
	raw, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("encode tool args: %w", err)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode tool args: %w", err)
	}
	return nil
}

func priceRangeSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"min": {Type: genai.TypeNumber},
			"max": {Type: genai.TypeNumber},
		},
		Description: "Specific price range if the user mentions exact amounts",
	}
}

func analyzePreferencesDeclaration() *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name: ToolAnalyzePreferences,
		Description: "Analyze the user's travel message and extract structured trip preferences. " +
			"Use this first, to understand destination, dates, budget, interests, and trip type.",
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"destination": {
					Type:        genai.TypeString,
					Description: "The destination city or country the user wants to visit",
				},
				"startDate": {
					Type:        genai.TypeString,
					Description: "Start date in YYYY-MM-DD format if mentioned",
				},
				"endDate": {
					Type:        genai.TypeString,
					Description: "End date in YYYY-MM-DD format if mentioned",
				},
				"numberOfDays": {
					Type:        genai.TypeInteger,
					Description: "Number of days for the trip if mentioned explicitly",
				},
				"budget": {
					Type:        genai.TypeString,
					Enum:        []string{"all", "low", "medium", "high", "luxury"},
					Description: "Budget level: low (<$100/activity), medium ($100-200), high ($200-300), luxury (>$300)",
				},
				"priceRange": priceRangeSchema(),
				"tripType": {
					Type:        genai.TypeString,
					Enum:        []string{"family", "solo", "romantic", "adventure", "business"},
					Description: "Type of trip based on context",
				},
				"interests": {
					Type:        genai.TypeArray,
					Items:       &genai.Schema{Type: genai.TypeString},
					Description: "User's interests: Culture, Food, Adventure, Nature, Shopping, Nightlife, History, Art, Beach, Sports",
				},
				"travelers": {
					Type:        genai.TypeInteger,
					Description: "Number of travelers if mentioned",
				},
				"userIntent": {
					Type:        genai.TypeString,
					Enum:        []string{"new_trip", "modify_existing", "ask_question", "refine_preferences"},
					Description: "What the user wants to do: create new trip, modify existing one, ask question, or refine preferences",
				},
			},
			Required: []string{"destination", "userIntent"},
		},
	}
}

func fetchActivitiesDeclaration() *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name: ToolFetchActivities,
		Description: "Fetch bookable activities for the trip based on the analyzed preferences. " +
			"Use this after analyzing preferences; it filters by destination, budget, interests, and availability.",
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"destination": {
					Type:        genai.TypeString,
					Description: "Destination to search activities for",
				},
				"numberOfDays": {
					Type:        genai.TypeInteger,
					Description: "Number of days for the trip, used to size the fetch",
				},
				"startDate": {
					Type:        genai.TypeString,
					Description: "Start date for availability filtering (YYYY-MM-DD)",
				},
				"endDate": {
					Type:        genai.TypeString,
					Description: "End date for availability filtering (YYYY-MM-DD)",
				},
				"budget": {
					Type:        genai.TypeString,
					Enum:        []string{"all", "low", "medium", "high", "luxury"},
					Description: "Budget level for filtering",
				},
				"priceRange": priceRangeSchema(),
				"interests": {
					Type:        genai.TypeArray,
					Items:       &genai.Schema{Type: genai.TypeString},
					Description: "User interests for activity type filtering",
				},
				"sort": {
					Type:        genai.TypeString,
					Enum:        []string{"price_low_to_high", "price_high_to_low", "rating", "popularity"},
					Description: "Sort order for activities",
				},
			},
			Required: []string{"destination", "numberOfDays"},
		},
	}
}

func generateItineraryDeclaration() *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name: ToolGenerateItinerary,
		Description: "Organize selected activities into a day-by-day itinerary with time slots. " +
			"Schedule 2-4 activities per day depending on their duration, vary activity types within a day, " +
			"use Morning (9 AM - 12 PM), Afternoon (12 PM - 5 PM) and Evening (5 PM - 9 PM) slots, " +
			"give each day a descriptive title, and never schedule the same activity on two days.",
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"selectedActivityIds": {
					Type:        genai.TypeArray,
					Items:       &genai.Schema{Type: genai.TypeString},
					Description: "Activity ids selected for the itinerary, from the fetched activities",
				},
				"dayDistribution": {
					Type:        genai.TypeArray,
					Description: "How activities are distributed across days",
					Items: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"day": {
								Type:        genai.TypeInteger,
								Description: "Day number (1, 2, 3, ...)",
							},
							"title": {
								Type:        genai.TypeString,
								Description: "Descriptive title for the day, e.g. 'Explore Iconic Landmarks'",
							},
							"activityIds": {
								Type:        genai.TypeArray,
								Items:       &genai.Schema{Type: genai.TypeString},
								Description: "Activity ids for this day",
							},
							"timeSlots": {
								Type: genai.TypeArray,
								Items: &genai.Schema{
									Type: genai.TypeString,
									Enum: []string{"Morning", "Afternoon", "Evening"},
								},
								Description: "Time slot for each activity, in the same order as activityIds",
							},
						},
						Required: []string{"day", "title", "activityIds", "timeSlots"},
					},
				},
				"reasoning": {
					Type:        genai.TypeString,
					Description: "Brief explanation of the organization (geography, timing, variety)",
				},
			},
			Required: []string{"selectedActivityIds", "dayDistribution"},
		},
	}
}
