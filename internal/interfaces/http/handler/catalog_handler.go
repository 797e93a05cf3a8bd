package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	app "shop_api/internal/application/catalog"
	domain "shop_api/internal/domain/catalog"
	"shop_api/pkg/logger"
)

type CatalogHandler struct {
	svc *app.Service
	log logger.Logger
}

func NewCatalogHandler(svc *app.Service, log logger.Logger) *CatalogHandler {
	return &CatalogHandler{svc: svc, log: log}
}

type categoryView struct {
	Title       string `json:"title"`
	ProductsURL string `json:"productsURL"`
}

type productView struct {
	Title       string      `json:"title"`
	Price       json.Number `json:"price"`
	Description string      `json:"description"`
	Stock       int         `json:"stock"`
	Supplier    string      `json:"supplier"`
}

func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.svc.ListCategories(c.Request.Context())
	if err != nil {
		h.log.Error("database error", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}

	views := make([]categoryView, 0, len(categories))
	for _, cat := range categories {
		views = append(views, categoryView{
			Title:       cat.Name,
			ProductsURL: "/api/categories/" + cat.ID + "/",
		})
	}

	c.JSON(http.StatusOK, gin.H{"categories": views})
}

// ListProducts returns the products of one category keyed by product id.
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	categoryID := c.Param("id")

	name, products, err := h.svc.ListProducts(c.Request.Context(), categoryID)
	if err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no such category: " + categoryID})
			return
		}
		h.log.Error("database error", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}

	views := make(map[string]productView, len(products))
	for _, p := range products {
		views[p.ID] = productView{
			Title:       p.Name,
			Price:       json.Number(p.Price.StringFixed(2)),
			Description: p.Description,
			Stock:       p.Stock,
			Supplier:    p.Supplier,
		}
	}

	c.JSON(http.StatusOK, gin.H{"category": name, "products": views})
}
