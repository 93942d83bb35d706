package routes

import (
	"github.com/gin-gonic/gin"

	distributionhandlers "github.com/aidlink/aidlink/internal/interfaces/http/handlers/distribution"
	"github.com/aidlink/aidlink/internal/interfaces/http/middleware"
)

type DistributionRouteConfig struct {
	Handler     *distributionhandlers.Handler
	ActorHeader string
	// RateLimiter is optional.
	RateLimiter *middleware.RateLimiter
}

func SetupDistributionRoutes(api *gin.RouterGroup, config *DistributionRouteConfig) {
	calculate := config.limited("calculate", config.Handler.Calculate)
	// writes require the gateway-supplied actor
	execute := append([]gin.HandlerFunc{middleware.RequireActor(config.ActorHeader)},
		config.limited("execute", config.Handler.Execute)...)

	distribution := api.Group("/distribution")
	{
		distribution.POST("/calculate", calculate...)
		distribution.POST("/validate", config.Handler.Validate)
		distribution.POST("/execute", execute...)
		distribution.GET("/history", config.Handler.History)
	}
}

func (config *DistributionRouteConfig) limited(scope string, h gin.HandlerFunc) []gin.HandlerFunc {
	if config.RateLimiter == nil {
		return []gin.HandlerFunc{h}
	}
	return []gin.HandlerFunc{config.RateLimiter.Limit(scope), h}
}
