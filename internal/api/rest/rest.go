package rest

import (
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler) {
	// Health check endpoint (no version prefix)
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		contracts := v1.Group("/contracts/:address")
		contracts.GET("", handler.GetContract)
		contracts.GET("/discovery", handler.DiscoverTokens)
		contracts.GET("/tokens/:token_id", handler.GetToken)
		contracts.GET("/tokens/:token_id/metadata", handler.GetTokenMetadata)

		v1.GET("/metadata", handler.ResolveMetadata)
	}
}
