package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/quadworks/flowdeck/internal/infrastructure/http/middleware"
	"github.com/quadworks/flowdeck/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg            *config.Config
	auth           *middleware.AuthMiddleware
	meetingHandler *Meeting
	flowHandler    *Flow
	webhookHandler *MinutesWebhook
}

// NewRouter creates a new router with all handlers
func NewRouter(
	cfg *config.Config,
	auth *middleware.AuthMiddleware,
	meetingHandler *Meeting,
	flowHandler *Flow,
	webhookHandler *MinutesWebhook,
) *Router {
	return &Router{
		cfg:            cfg,
		auth:           auth,
		meetingHandler: meetingHandler,
		flowHandler:    flowHandler,
		webhookHandler: webhookHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// Swagger UI
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// API v1 group
	v1 := e.Group("/v1")

	rt.setupWebhookRoutes(v1)
	rt.setupMeetingRoutes(v1)
	rt.setupFlowRoutes(v1)
}

// setupWebhookRoutes configures webhook routes. Webhooks are
// authenticated by payload signature, not by bearer token.
func (rt *Router) setupWebhookRoutes(g *echo.Group) {
	webhookGroup := g.Group("/webhooks")
	webhookGroup.POST("/minutes", rt.webhookHandler.HandleMinutes)
}

// setupMeetingRoutes configures meeting review routes
func (rt *Router) setupMeetingRoutes(g *echo.Group) {
	meetingGroup := g.Group("/meetings", rt.auth.Authenticate)

	meetingGroup.GET("/:id/review", rt.meetingHandler.GetReview)
	meetingGroup.POST("/:id/review", rt.meetingHandler.ApplyReview)
	meetingGroup.POST("/:id/followups", rt.meetingHandler.GenerateFollowUps)
	meetingGroup.GET("/:id/minutes", rt.meetingHandler.GetMinutesURL)
}

// setupFlowRoutes configures flow lifecycle routes
func (rt *Router) setupFlowRoutes(g *echo.Group) {
	flowGroup := g.Group("/flows", rt.auth.Authenticate)

	flowGroup.POST("", rt.flowHandler.CreateFlow)
	flowGroup.GET("", rt.flowHandler.ListFlows)
	flowGroup.GET("/:id", rt.flowHandler.GetFlow)
	flowGroup.PATCH("/:id", rt.flowHandler.UpdateFlow)
	flowGroup.GET("/:id/history", rt.flowHandler.GetHistory)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	env := "development"
	if rt.cfg != nil {
		env = rt.cfg.Server.Environment
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": env,
	})
}
