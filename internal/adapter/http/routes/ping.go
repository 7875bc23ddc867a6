package routes

import (
	"quote_calculator/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

func addPingRoutes(rg gin.IRoutes, health *handlers.HealthHandler) {
	rg.GET("/health", health.Health)
}
