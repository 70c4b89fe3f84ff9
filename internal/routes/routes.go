package routes

import (
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yamagishi2448dev-lab/inventory-main-sub001/internal/core/container"
	"github.com/yamagishi2448dev-lab/inventory-main-sub001/internal/middleware"
	"github.com/yamagishi2448dev-lab/inventory-main-sub001/pkg/security"
)

// RegisterPublicRoutes mounts routes reachable without a token.
func RegisterPublicRoutes(router *gin.Engine, c *container.Container) {
	public := router.Group("/api")
	security.RegisterAuthRoutes(public, c.Repository)
}

// RegisterProtectedRoutes mounts everything behind the JWT middleware.
func RegisterProtectedRoutes(router *gin.Engine, c *container.Container) {
	protected := router.Group("/api")
	protected.Use(security.JWTMiddleware())

	c.ItemHandler.RegisterRoutes(protected)
	c.LegacyHandler.RegisterRoutes(protected)
	c.CatalogHandler.RegisterRoutes(protected)
	c.ChangeLogHandler.RegisterRoutes(protected)
	c.UserHandler.RegisterRoutes(protected)
}

// RegisterUtilityRoutes mounts the health endpoint and, when the bundled
// documentation exists on disk, the OpenAPI page.
func RegisterUtilityRoutes(router *gin.Engine, logger *zap.Logger) {
	router.GET("/health", middleware.HealthCheckMiddleware())

	openapiFilePath := "./docs/index.html"
	if _, err := os.Stat(openapiFilePath); err == nil {
		router.GET("/openapi.html", func(c *gin.Context) {
			c.File(openapiFilePath)
		})
		logger.Info("Route /openapi.html registered")
	} else {
		logger.Warn("docs/index.html not found, skipping /openapi.html route")
	}
}
