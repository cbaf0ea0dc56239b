package planner

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-tripplanner/internal/app/models"
)

type ChatHandlers struct {
	orchestrator *Orchestrator
	logger       *zap.Logger
}

func NewChatHandlers(orchestrator *Orchestrator, logger *zap.Logger) *ChatHandlers {
	return &ChatHandlers{
		orchestrator: orchestrator,
		logger:       logger,
	}
}

// ChatTurn handles POST /api/chat. The turn is processed to completion first,
// so session state is final and validation errors still get plain JSON
// statuses; only then does the response switch to SSE.
func (h *ChatHandlers) ChatTurn(c *gin.Context) {
	var req models.TurnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id and messages are required"})
		return
	}

	outcome, err := h.orchestrator.ProcessTurn(c.Request.Context(), &req)
	if err != nil {
		h.logger.Error("Chat turn failed",
			zap.String("session_id", req.ID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process chat turn"})
		return
	}

	// Set SSE headers
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("Access-Control-Allow-Origin", "*")
	c.Header("Access-Control-Allow-Headers", "Cache-Control")
	c.Header("X-Accel-Buffering", "no") // Disable nginx buffering

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		h.logger.Error("Response writer does not support flushing")
		c.JSON(http.StatusOK, gin.H{
			"message":  outcome.Text,
			"metadata": outcome.Metadata,
		})
		return
	}

	h.writeEvent(c, flusher, models.StreamEvent{
		Type:      models.EventTypeStart,
		EventID:   uuid.New().String(),
		Timestamp: time.Now(),
	})

	// Word-level chunking keeps the client's typing effect smooth without
	// holding the turn open upstream.
	for _, chunk := range strings.SplitAfter(outcome.Text, " ") {
		if chunk == "" {
			continue
		}
		h.writeEvent(c, flusher, models.StreamEvent{
			Type:      models.EventTypeChunk,
			Delta:     chunk,
			EventID:   uuid.New().String(),
			Timestamp: time.Now(),
		})
	}

	metadata := outcome.Metadata
	h.writeEvent(c, flusher, models.StreamEvent{
		Type:      models.EventTypeComplete,
		Metadata:  &metadata,
		EventID:   uuid.New().String(),
		Timestamp: time.Now(),
	})

	// Terminal sentinel so EventSource-style clients can stop reading.
	fmt.Fprint(c.Writer, "data: [DONE]\n\n")
	flusher.Flush()
}

func (h *ChatHandlers) writeEvent(c *gin.Context, flusher http.Flusher, event models.StreamEvent) {
	eventData, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("Failed to marshal stream event", zap.Error(err))
		return
	}
	fmt.Fprintf(c.Writer, "data: %s\n\n", eventData)
	flusher.Flush()
}
