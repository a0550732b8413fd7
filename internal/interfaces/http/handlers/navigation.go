// internal/interfaces/http/handlers/navigation.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/your-org/store-pilot/internal/domain/session"
)

// NavigationHandler handles page navigation and recommendations
type NavigationHandler struct {
	sessions *session.Manager
}

// NewNavigationHandler creates a new navigation handler
func NewNavigationHandler(sessions *session.Manager) *NavigationHandler {
	return &NavigationHandler{sessions: sessions}
}

type navigateRequest struct {
	Page      string `json:"page"`
	ProductID *int   `json:"productId"`
}

// Navigate handles POST /navigation
func (h *NavigationHandler) Navigate(c *gin.Context) {
	var req navigateRequest
	if !bindJSON(c, &req) {
		return
	}
	sess, ok := currentSession(c, h.sessions)
	if !ok {
		return
	}

	result := sess.Store.NavigateTo(req.Page, req.ProductID)
	respond(c, result.Outcome, result)
}

// GetNavigation handles GET /navigation
func (h *NavigationHandler) GetNavigation(c *gin.Context) {
	sess, ok := currentSession(c, h.sessions)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Navigation retrieved successfully",
		"data":    sess.Store.Navigation(),
	})
}

// GetRecommendations handles GET /recommendations
func (h *NavigationHandler) GetRecommendations(c *gin.Context) {
	sess, ok := currentSession(c, h.sessions)
	if !ok {
		return
	}

	result := sess.Store.RecommendProducts()
	respond(c, result.Outcome, result)
}
