package models

import (
	"encoding/json"
	"time"
)

type ChatModel struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
}

// ToolInvocationRecord is the client-side record of a past tool call carried
// inside assistant messages. Only completed retrieval results are read back
// from it, to rehydrate the activity map after a cold start.
type ToolInvocationRecord struct {
	ToolName string          `json:"toolName"`
	State    string          `json:"state"`
	Result   json.RawMessage `json:"result,omitempty"`
}

const ToolStateResult = "result"

type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

type Message struct {
	ID              string                 `json:"id,omitempty"`
	Role            MessageRole            `json:"role"`
	Content         string                 `json:"content"`
	ToolInvocations []ToolInvocationRecord `json:"toolInvocations,omitempty"`
}

// TurnRequest is the chat endpoint request body. ID doubles as the planner
// session id.
type TurnRequest struct {
	ID          string           `json:"id" binding:"required"`
	Messages    []Message        `json:"messages" binding:"required"`
	ChatModel   *ChatModel       `json:"chatModel,omitempty"`
	Preferences *TripPreferences `json:"preferences,omitempty"`
}

type StepKind string

const (
	StepAnalyzePreferences StepKind = "analyze_preferences"
	StepFetchActivities    StepKind = "fetch_activities"
	StepGenerateItinerary  StepKind = "generate_itinerary"
)

type StepStatus string

const (
	StepCompleted StepStatus = "completed"
	StepFailed    StepStatus = "failed"
)

// ThinkingStep narrates one tool invocation's effect back to the user.
type ThinkingStep struct {
	ID          string     `json:"id"`
	Step        StepKind   `json:"step"`
	Title       string     `json:"title"`
	Status      StepStatus `json:"status"`
	Description string     `json:"description,omitempty"`
	Result      any        `json:"result,omitempty"`
	Error       string     `json:"error,omitempty"`
	Timestamp   time.Time  `json:"timestamp"`
}

type TokenUsage struct {
	InputTokens  int32 `json:"inputTokens"`
	OutputTokens int32 `json:"outputTokens"`
	TotalTokens  int32 `json:"totalTokens"`
}

// ChatMetadata is the envelope attached to the terminal stream event.
type ChatMetadata struct {
	Usage               *TokenUsage      `json:"usage,omitempty"`
	ChatModel           *ChatModel       `json:"chatModel,omitempty"`
	ToolChoice          string           `json:"toolChoice"`
	ToolCount           int              `json:"toolCount"`
	ThinkingSteps       []ThinkingStep   `json:"thinkingSteps"`
	Itinerary           []ItineraryItem  `json:"itinerary,omitempty"`
	ItineraryStats      *ItineraryStats  `json:"itineraryStats,omitempty"`
	AnalyzedPreferences *TripPreferences `json:"analyzedPreferences,omitempty"`
	PlannerID           string           `json:"plannerId,omitempty"`
	ThreadID            string           `json:"threadId,omitempty"`
}

type StreamEventType string

const (
	EventTypeStart    StreamEventType = "start"
	EventTypeChunk    StreamEventType = "chunk"
	EventTypeComplete StreamEventType = "complete"
	EventTypeError    StreamEventType = "error"
)

// StreamEvent is one SSE frame of the chat response stream.
type StreamEvent struct {
	Type      StreamEventType `json:"type"`
	Delta     string          `json:"delta,omitempty"`
	Message   string          `json:"message,omitempty"`
	Metadata  *ChatMetadata   `json:"metadata,omitempty"`
	Error     string          `json:"error,omitempty"`
	EventID   string          `json:"event_id"`
	Timestamp time.Time       `json:"timestamp"`
}
