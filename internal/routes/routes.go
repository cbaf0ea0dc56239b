package routes

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-tripplanner/internal/app/ai"
	"github.com/FACorreiaa/go-tripplanner/internal/app/domain/activities"
	"github.com/FACorreiaa/go-tripplanner/internal/app/domain/planner"
	"github.com/FACorreiaa/go-tripplanner/internal/pkg/config"
)

// Setup wires the domain services and registers all HTTP routes.
func Setup(ctx context.Context, r *gin.Engine, cfg *config.Config, logger *zap.Logger) error {
	model, err := ai.NewGeminiClient(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		return err
	}

	searchClient := activities.NewClient(cfg.ActivityAPI, logger)
	store := planner.NewSessionStore(cfg.Session, logger)

	catalog := planner.NewToolCatalog(
		planner.NewRetrievalTool(searchClient, logger),
		planner.NewAssemblyTool(logger),
		logger,
	)
	runner := ai.NewRunner(model, cfg.Planner.MaxToolRounds, logger)
	orchestrator := planner.NewOrchestrator(runner, store, catalog, cfg.Planner, logger)

	chatHandlers := planner.NewChatHandlers(orchestrator, logger)
	activitiesHandlers := activities.NewActivitiesHandlers(searchClient, logger)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":   "ok",
			"sessions": store.Len(),
		})
	})

	api := r.Group("/api")
	{
		api.POST("/chat", chatHandlers.ChatTurn)
		api.POST("/activities", activitiesHandlers.SearchActivities)
		api.GET("/activities/:id", activitiesHandlers.GetActivityDetails)
	}

	return nil
}
