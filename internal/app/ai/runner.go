package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

// ToolExecutor exposes a catalog of named, schema-declared functions to the
// model and executes them on request. Execute returns the tool's typed result
// payload; tool-level failures are encoded inside that payload, an error is
// only returned for calls the catalog cannot dispatch at all.
type ToolExecutor interface {
	Declarations() []*genai.FunctionDeclaration
	Execute(ctx context.Context, name string, args map[string]any) (any, error)
}

// Invocation is one completed tool call, in the order the model issued it.
type Invocation struct {
	ID     string
	Name   string
	Args   map[string]any
	Result any
}

// TurnResult is everything the model produced for one turn: the final text
// plus every tool invocation across all rounds, already executed.
type TurnResult struct {
	Text         string
	Invocations  []Invocation
	InputTokens  int32
	OutputTokens int32
	TotalTokens  int32
}

// Runner drives the model through bounded function-calling rounds until it
// stops requesting tools. Tool calls within a round are executed sequentially
// in the order the model reported them.
type Runner struct {
	model     ModelClient
	maxRounds int
	logger    *zap.Logger
}

func NewRunner(model ModelClient, maxRounds int, logger *zap.Logger) *Runner {
	if maxRounds <= 0 {
		maxRounds = 8
	}
	return &Runner{model: model, maxRounds: maxRounds, logger: logger}
}

// Complete runs the full model-plus-tools exchange for one turn and returns
// only once text and all tool invocations are final.
func (r *Runner) Complete(ctx context.Context, systemPrompt string, conversation []*genai.Content, tools ToolExecutor) (*TurnResult, error) {
	ctx, span := otel.Tracer("AgentRunner").Start(ctx, "Complete", trace.WithAttributes(
		attribute.String("model", r.model.ModelName()),
		attribute.Int("conversation.length", len(conversation)),
	))
	defer span.End()

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		Temperature:       genai.Ptr[float32](0.2),
		Tools: []*genai.Tool{
			{FunctionDeclarations: tools.Declarations()},
		},
	}

	contents := make([]*genai.Content, len(conversation))
	copy(contents, conversation)

	result := &TurnResult{}

	for round := 0; round < r.maxRounds; round++ {
		resp, err := r.model.GenerateContent(ctx, contents, config)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "Model invocation failed")
			return nil, fmt.Errorf("model invocation failed: %w", err)
		}
		r.accumulateUsage(result, resp)

		calls := resp.FunctionCalls()
		if len(calls) == 0 {
			result.Text = resp.Text()
			span.SetAttributes(
				attribute.Int("tool_calls.total", len(result.Invocations)),
				attribute.Int("rounds", round+1),
			)
			span.SetStatus(codes.Ok, "Turn completed")
			return result, nil
		}

		// Feed the model's own content back before the function responses,
		// otherwise the next round loses the call context.
		if len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
			contents = append(contents, resp.Candidates[0].Content)
		}

		responseParts := make([]*genai.Part, 0, len(calls))
		for _, call := range calls {
			r.logger.Info("Executing tool call",
				zap.String("tool", call.Name),
				zap.Int("round", round),
			)

			toolResult, err := tools.Execute(ctx, call.Name, call.Args)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, "Tool dispatch failed")
				return nil, fmt.Errorf("tool %q dispatch failed: %w", call.Name, err)
			}

			result.Invocations = append(result.Invocations, Invocation{
				ID:     call.ID,
				Name:   call.Name,
				Args:   call.Args,
				Result: toolResult,
			})
			responseParts = append(responseParts, genai.NewPartFromFunctionResponse(call.Name, toResponseMap(toolResult)))
		}

		contents = append(contents, genai.NewContentFromParts(responseParts, genai.RoleUser))
	}

	// Round budget exhausted; hand back whatever was accumulated so the turn
	// can still surface partial progress.
	r.logger.Warn("Tool round budget exhausted",
		zap.Int("maxRounds", r.maxRounds),
		zap.Int("invocations", len(result.Invocations)),
	)
	span.SetStatus(codes.Ok, "Round budget exhausted")
	return result, nil
}

func (r *Runner) accumulateUsage(result *TurnResult, resp *genai.GenerateContentResponse) {
	if resp.UsageMetadata == nil {
		return
	}
	result.InputTokens += resp.UsageMetadata.PromptTokenCount
	result.OutputTokens += resp.UsageMetadata.CandidatesTokenCount
	result.TotalTokens += resp.UsageMetadata.TotalTokenCount
}

// toResponseMap converts a typed tool result into the map shape the genai
// function-response part requires.
func toResponseMap(result any) map[string]any {
	raw, err := json.Marshal(result)
	if err != nil {
		return map[string]any{"error": "unserializable tool result"}
	}
	out := map[string]any{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return map[string]any{"error": "unserializable tool result"}
	}
	return out
}
