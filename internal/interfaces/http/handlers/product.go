// internal/interfaces/http/handlers/product.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/your-org/store-pilot/internal/domain/session"
	"github.com/your-org/store-pilot/internal/domain/store"
)

// ProductHandler handles product endpoints
type ProductHandler struct {
	sessions *session.Manager
}

// NewProductHandler creates a new product handler
func NewProductHandler(sessions *session.Manager) *ProductHandler {
	return &ProductHandler{sessions: sessions}
}

type searchRequest struct {
	Query string `json:"query"`
}

type filterRequest struct {
	Category string `json:"category"`
}

type sortRequest struct {
	Order string `json:"order"`
}

// GetProducts handles GET /products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	sess, ok := currentSession(c, h.sessions)
	if !ok {
		return
	}

	snapshot := sess.Store.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"message": "Products retrieved successfully",
		"data": store.ProductsResult{
			Outcome:   store.Outcome{Success: true},
			Query:     snapshot.ActiveQuery,
			Category:  snapshot.ActiveCategory,
			SortOrder: snapshot.SortOrder,
			Count:     len(snapshot.VisibleProducts),
			Products:  snapshot.VisibleProducts,
		},
	})
}

// GetProduct handles GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := productIDParam(c)
	if !ok {
		return
	}

	product, found := h.sessions.Catalog().Get(id)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Product not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product retrieved successfully",
		"data":    product,
	})
}

// GetCategories handles GET /products/categories
func (h *ProductHandler) GetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Categories retrieved successfully",
		"data":    h.sessions.Catalog().Categories(),
	})
}

// LookupProduct handles GET /products/lookup?name=
func (h *ProductHandler) LookupProduct(c *gin.Context) {
	sess, ok := currentSession(c, h.sessions)
	if !ok {
		return
	}

	result := sess.Store.LookupProduct(c.Query("name"))
	respond(c, result.Outcome, result)
}

// SearchProducts handles POST /products/search
func (h *ProductHandler) SearchProducts(c *gin.Context) {
	var req searchRequest
	if !bindJSON(c, &req) {
		return
	}
	sess, ok := currentSession(c, h.sessions)
	if !ok {
		return
	}

	result := sess.Store.SearchProducts(req.Query)
	respond(c, result.Outcome, result)
}

// FilterCategory handles POST /products/filter
func (h *ProductHandler) FilterCategory(c *gin.Context) {
	var req filterRequest
	if !bindJSON(c, &req) {
		return
	}
	sess, ok := currentSession(c, h.sessions)
	if !ok {
		return
	}

	result := sess.Store.FilterCategory(req.Category)
	respond(c, result.Outcome, result)
}

// SortProducts handles POST /products/sort
func (h *ProductHandler) SortProducts(c *gin.Context) {
	var req sortRequest
	if !bindJSON(c, &req) {
		return
	}
	sess, ok := currentSession(c, h.sessions)
	if !ok {
		return
	}

	result := sess.Store.SortProducts(req.Order)
	respond(c, result.Outcome, result)
}

// ResetFilters handles POST /products/reset
func (h *ProductHandler) ResetFilters(c *gin.Context) {
	sess, ok := currentSession(c, h.sessions)
	if !ok {
		return
	}

	result := sess.Store.ResetFilters()
	respond(c, result.Outcome, result)
}
