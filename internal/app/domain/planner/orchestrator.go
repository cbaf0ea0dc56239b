package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/FACorreiaa/go-tripplanner/internal/app/ai"
	"github.com/FACorreiaa/go-tripplanner/internal/app/models"
	"github.com/FACorreiaa/go-tripplanner/internal/app/observability/metrics"
	"github.com/FACorreiaa/go-tripplanner/internal/pkg/config"
)

// TurnOutcome is everything one completed chat turn produced: the assistant
// text plus the metadata envelope the client renders from.
type TurnOutcome struct {
	Text     string
	Metadata models.ChatMetadata
}

// Orchestrator runs one chat turn end to end: hydrate session state, drive
// the model through its tools, then apply every tool effect to the session
// and reduce the final itinerary. State mutation is finished before the
// caller starts streaming anything.
type Orchestrator struct {
	runner      *ai.Runner
	store       *SessionStore
	catalog     *ToolCatalog
	turnTimeout time.Duration
	now         func() time.Time
	logger      *zap.Logger
}

func NewOrchestrator(runner *ai.Runner, store *SessionStore, catalog *ToolCatalog, cfg config.PlannerConfig, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		runner:      runner,
		store:       store,
		catalog:     catalog,
		turnTimeout: cfg.TurnTimeout,
		now:         time.Now,
		logger:      logger,
	}
}

// ProcessTurn executes the turn. The request id doubles as the planner
// session id.
func (o *Orchestrator) ProcessTurn(ctx context.Context, req *models.TurnRequest) (*TurnOutcome, error) {
	ctx, cancel := context.WithTimeout(ctx, o.turnTimeout)
	defer cancel()

	ctx, span := otel.Tracer("TripPlanner").Start(ctx, "ProcessTurn", trace.WithAttributes(
		attribute.String("session_id", req.ID),
		attribute.Int("messages.count", len(req.Messages)),
	))
	defer span.End()

	start := o.now()
	defer func() {
		metrics.Get().ChatTurnDuration.Record(ctx, time.Since(start).Seconds())
	}()
	metrics.Get().ChatTurnsTotal.Add(ctx, 1)

	state := o.store.GetOrCreate(ctx, req.ID)

	// Rehydrate activities surfaced by earlier turns. The session map may
	// have been evicted, but the client still carries the tool results.
	hydrated := hydrateActivities(req.Messages)
	if len(hydrated) > 0 {
		state.Lock()
		admitted := state.UpsertActivities(hydrated)
		state.Unlock()
		o.logger.Info("Hydrated activities from message history",
			zap.String("session_id", req.ID),
			zap.Int("count", admitted),
		)
	}

	conversation := toModelConversation(req.Messages)

	result, err := o.runner.Complete(ctx, SystemPrompt(o.now()), conversation, o.catalog)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Turn failed")
		return nil, err
	}

	metadata := o.applyEffects(ctx, state, req, result)

	span.SetAttributes(attribute.Int("tool_calls", len(result.Invocations)))
	span.SetStatus(codes.Ok, "Turn completed")
	return &TurnOutcome{Text: result.Text, Metadata: metadata}, nil
}

// applyEffects walks the turn's tool invocations in order and folds each one
// into the session, then reduces the itinerary. It is the only writer of
// session state for the turn.
func (o *Orchestrator) applyEffects(ctx context.Context, state *PlannerState, req *models.TurnRequest, result *ai.TurnResult) models.ChatMetadata {
	state.Lock()
	defer state.Unlock()

	steps := make([]models.ThinkingStep, 0, len(result.Invocations))
	for _, inv := range result.Invocations {
		steps = append(steps, o.applyInvocation(state, req, inv))
	}

	metadata := models.ChatMetadata{
		ChatModel:     req.ChatModel,
		ToolChoice:    "auto",
		ToolCount:     len(result.Invocations),
		ThinkingSteps: steps,
	}
	if result.TotalTokens > 0 {
		metadata.Usage = &models.TokenUsage{
			InputTokens:  result.InputTokens,
			OutputTokens: result.OutputTokens,
			TotalTokens:  result.TotalTokens,
		}
	}

	if len(state.DayDistribution) > 0 && len(state.Activities) > 0 {
		itinerary := Reduce(state.Activities, state.DayDistribution)
		metadata.Itinerary = itinerary
		metadata.ItineraryStats = state.Stats
		metadata.PlannerID = state.ID
		metadata.ThreadID = req.ID
		metrics.Get().ItineraryItemsBuilt.Add(ctx, int64(len(itinerary)))
		o.logger.Info("Final itinerary built",
			zap.String("session_id", state.ID),
			zap.Int("items", len(itinerary)),
		)
	}
	metadata.AnalyzedPreferences = state.Preferences

	return metadata
}

func (o *Orchestrator) applyInvocation(state *PlannerState, req *models.TurnRequest, inv ai.Invocation) models.ThinkingStep {
	step := models.ThinkingStep{
		ID:        uuid.New().String(),
		Step:      stepKindFor(inv.Name),
		Title:     stepTitleFor(inv.Name),
		Status:    models.StepCompleted,
		Result:    inv.Result,
		Timestamp: o.now(),
	}

	switch res := inv.Result.(type) {
	case PreferenceAnalysisResult:
		if !res.Success {
			step.Status = models.StepFailed
			step.Error = res.Error
			return step
		}
		step.Description = res.Summary

		if res.UserIntent == models.IntentNewTrip {
			// A new trip starts from this turn's analysis alone; nothing
			// from the abandoned trip carries over.
			o.logger.Info("Resetting planner state for new trip", zap.String("session_id", state.ID))
			state.reset()
			state.Preferences = MergePreferences(nil, res.Preferences)
		} else {
			base := state.Preferences
			if base == nil {
				base = req.Preferences
			}
			state.Preferences = MergePreferences(base, res.Preferences)
		}

	case ActivityFetchResult:
		if !res.Success {
			step.Status = models.StepFailed
			step.Error = res.Error
			return step
		}
		state.UpsertActivities(res.Activities)

		count := res.Count
		if count == 0 {
			count = len(res.Activities)
		}
		step.Description = describeFetch(count, res.BudgetAlternatives)

	case ItineraryAssemblyResult:
		if !res.Success {
			step.Status = models.StepFailed
			step.Error = res.Error
			return step
		}
		step.Description = res.Summary
		state.DayDistribution = res.DayDistribution
		state.Stats = res.Stats
		if len(res.MissingActivityIDs) > 0 {
			o.logger.Warn("Itinerary omits selected activities",
				zap.String("session_id", state.ID),
				zap.Strings("activity_ids", res.MissingActivityIDs),
			)
		}
	}

	return step
}

func describeFetch(count int, budgetAlternatives bool) string {
	description := fmt.Sprintf("Selected %d recommended attractions", count)
	if budgetAlternatives {
		description += " (showing alternatives at different price points)"
	}
	return description
}

func stepKindFor(tool string) models.StepKind {
	switch tool {
	case ToolAnalyzePreferences:
		return models.StepAnalyzePreferences
	case ToolFetchActivities:
		return models.StepFetchActivities
	default:
		return models.StepGenerateItinerary
	}
}

func stepTitleFor(tool string) string {
	switch tool {
	case ToolAnalyzePreferences:
		return "Analyze User Preferences"
	case ToolFetchActivities:
		return "Retrieve Resources"
	default:
		return "Generate Itinerary"
	}
}

// hydrateActivities pulls previously fetched activities out of assistant
// tool-invocation records, deduplicated by id.
func hydrateActivities(messages []models.Message) []models.Activity {
	seen := map[string]struct{}{}
	hydrated := []models.Activity{}

	for _, msg := range messages {
		if msg.Role != models.RoleAssistant {
			continue
		}
		for _, inv := range msg.ToolInvocations {
			if inv.ToolName != ToolFetchActivities || inv.State != models.ToolStateResult || len(inv.Result) == 0 {
				continue
			}
			var res ActivityFetchResult
			if err := json.Unmarshal(inv.Result, &res); err != nil {
				continue
			}
			for _, a := range res.Activities {
				if !a.HasIdentity() {
					continue
				}
				if _, dup := seen[a.ID]; dup {
					continue
				}
				seen[a.ID] = struct{}{}
				hydrated = append(hydrated, a)
			}
		}
	}
	return hydrated
}

// toModelConversation converts client messages into model contents, dropping
// records with no text.
func toModelConversation(messages []models.Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(messages))
	for _, msg := range messages {
		if msg.Content == "" {
			continue
		}
		var role genai.Role = genai.RoleUser
		if msg.Role == models.RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(msg.Content, role))
	}
	return contents
}
