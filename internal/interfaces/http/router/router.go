package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shop_api/internal/config"
	"shop_api/internal/interfaces/http/handler"
	"shop_api/internal/interfaces/http/middleware"
)

// RegisterRoutes wires the API endpoints under /api. Paths are registered
// with a trailing slash; gin's default trailing-slash redirect covers the
// bare forms. Catalog mutation endpoints are stubs.
func RegisterRoutes(
	r *gin.Engine,
	apiCfg config.APIConfig,
	orderHandler *handler.OrderHandler,
	catalogHandler *handler.CatalogHandler,
) {
	api := r.Group("/api")
	api.Use(middleware.APIKey(apiCfg.Key))
	if apiCfg.CallDelay > 0 {
		api.Use(middleware.Delay(apiCfg.CallDelay))
	}
	{
		api.GET("/categories/", catalogHandler.ListCategories)
		api.POST("/categories/", notImplemented)

		api.GET("/categories/:id/", catalogHandler.ListProducts)
		api.POST("/categories/:id/", notImplemented)

		api.POST("/orders/", orderHandler.PlaceOrder)
		api.GET("/orders/:id/", orderHandler.GetOrder)
	}
}

func notImplemented(c *gin.Context) {
	c.JSON(http.StatusNotImplemented, gin.H{"error": "this functionality is envisioned but not implemented yet"})
}
