// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/your-org/store-pilot/internal/domain/session"
)

// CartHandler handles cart endpoints
type CartHandler struct {
	sessions *session.Manager
}

// NewCartHandler creates a new cart handler
func NewCartHandler(sessions *session.Manager) *CartHandler {
	return &CartHandler{sessions: sessions}
}

type addToCartRequest struct {
	ProductID int `json:"productId"`
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

type applyCouponRequest struct {
	Code            string `json:"code"`
	DiscountPercent int    `json:"discountPercent"`
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	sess, ok := currentSession(c, h.sessions)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart retrieved successfully",
		"data": gin.H{
			"cartItems": sess.Store.Cart(),
			"totals":    sess.Store.Totals(),
		},
	})
}

// AddToCart handles POST /cart/items
func (h *CartHandler) AddToCart(c *gin.Context) {
	var req addToCartRequest
	if !bindJSON(c, &req) {
		return
	}
	sess, ok := currentSession(c, h.sessions)
	if !ok {
		return
	}

	result := sess.Store.AddToCart(req.ProductID)
	respond(c, result.Outcome, result)
}

// UpdateCartItem handles PUT /cart/items/:id
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	productID, ok := productIDParam(c)
	if !ok {
		return
	}
	var req updateCartItemRequest
	if !bindJSON(c, &req) {
		return
	}
	sess, ok := currentSession(c, h.sessions)
	if !ok {
		return
	}

	result := sess.Store.SetQuantity(productID, req.Quantity)
	respond(c, result.Outcome, result)
}

// RemoveFromCart handles DELETE /cart/items/:id
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	productID, ok := productIDParam(c)
	if !ok {
		return
	}
	sess, ok := currentSession(c, h.sessions)
	if !ok {
		return
	}

	result := sess.Store.RemoveFromCart(productID)
	respond(c, result.Outcome, result)
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	sess, ok := currentSession(c, h.sessions)
	if !ok {
		return
	}

	result := sess.Store.ClearCart()
	respond(c, result.Outcome, result)
}

// ApplyCoupon handles POST /cart/coupon
func (h *CartHandler) ApplyCoupon(c *gin.Context) {
	var req applyCouponRequest
	if !bindJSON(c, &req) {
		return
	}
	sess, ok := currentSession(c, h.sessions)
	if !ok {
		return
	}

	result := sess.Store.ApplyCoupon(req.Code, req.DiscountPercent)
	respond(c, result.Outcome, result)
}

// RemoveCoupon handles DELETE /cart/coupon
func (h *CartHandler) RemoveCoupon(c *gin.Context) {
	sess, ok := currentSession(c, h.sessions)
	if !ok {
		return
	}

	result := sess.Store.RemoveCoupon()
	respond(c, result.Outcome, result)
}
