package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"soustackgw/internal/handler"
	"soustackgw/internal/middleware"
	"soustackgw/internal/service"
)

// Setup configures the Gin engine with all routes and middleware. A nil
// tokens service leaves the tool API unauthenticated.
func Setup(
	toolH *handler.ToolHandler,
	healthH *handler.HealthHandler,
	tokens service.TokenService,
	allowedOrigins []string,
	logger *zap.Logger,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(allowedOrigins))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))

	// Health checks
	r.GET("/healthz", healthH.Liveness)

	v1 := r.Group("/api/v1")
	if tokens != nil {
		v1.Use(middleware.AuthMiddleware(tokens))
	}

	tools := v1.Group("/tools")
	tools.GET("", toolH.List)
	tools.POST("/:tool", middleware.RequireToolScope(), toolH.Call)

	return r
}
