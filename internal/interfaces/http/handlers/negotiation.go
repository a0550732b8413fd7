// internal/interfaces/http/handlers/negotiation.go
package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/your-org/store-pilot/internal/domain/negotiation"
	"github.com/your-org/store-pilot/internal/domain/session"
)

// AuditLister reads the persisted negotiation trail of a session
type AuditLister interface {
	ListBySession(ctx context.Context, sessionID string, limit int) ([]negotiation.Record, error)
}

// NegotiationHandler handles haggling endpoints
type NegotiationHandler struct {
	sessions *session.Manager
	audit    AuditLister
	logger   logrus.FieldLogger
}

// NewNegotiationHandler creates a new negotiation handler. audit may be nil
// when no database is configured.
func NewNegotiationHandler(sessions *session.Manager, audit AuditLister, logger logrus.FieldLogger) *NegotiationHandler {
	return &NegotiationHandler{
		sessions: sessions,
		audit:    audit,
		logger:   logger,
	}
}

type negotiateRequest struct {
	Request   string `json:"request"`
	ProductID *int   `json:"productId"`
}

// Negotiate handles POST /negotiations
func (h *NegotiationHandler) Negotiate(c *gin.Context) {
	var req negotiateRequest
	if !bindJSON(c, &req) {
		return
	}
	sess, ok := currentSession(c, h.sessions)
	if !ok {
		return
	}

	result := sess.Store.NegotiateDiscount(req.Request, req.ProductID)
	respond(c, result.Outcome, result)
}

// GetHistory handles GET /negotiations
func (h *NegotiationHandler) GetHistory(c *gin.Context) {
	sess, ok := currentSession(c, h.sessions)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Negotiation history retrieved successfully",
		"data": gin.H{
			"negotiationHistory": sess.Store.History(),
			"generatedCoupons":   sess.Store.GeneratedCoupons(),
		},
	})
}

// GetAuditTrail handles GET /negotiations/audit
func (h *NegotiationHandler) GetAuditTrail(c *gin.Context) {
	if h.audit == nil {
		c.JSON(http.StatusNotImplemented, gin.H{
			"error": "Negotiation audit is not enabled",
		})
		return
	}
	sess, ok := currentSession(c, h.sessions)
	if !ok {
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit < 1 || limit > 500 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid limit",
		})
		return
	}

	records, err := h.audit.ListBySession(c.Request.Context(), sess.ID, limit)
	if err != nil {
		h.logger.WithError(err).WithField("session_id", sess.ID).Error("Failed to list negotiation audit")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve negotiation audit",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Negotiation audit retrieved successfully",
		"data":    records,
	})
}
