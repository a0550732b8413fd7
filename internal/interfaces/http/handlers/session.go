// internal/interfaces/http/handlers/session.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/your-org/store-pilot/internal/domain/session"
	"github.com/your-org/store-pilot/internal/interfaces/http/middleware"
	"github.com/your-org/store-pilot/internal/pkg/auth"
)

// SessionHandler issues session tokens and exposes the store state
type SessionHandler struct {
	sessions   *session.Manager
	jwtManager *auth.JWTManager
	logger     logrus.FieldLogger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessions *session.Manager, jwtManager *auth.JWTManager, logger logrus.FieldLogger) *SessionHandler {
	return &SessionHandler{
		sessions:   sessions,
		jwtManager: jwtManager,
		logger:     logger,
	}
}

// CreateSession handles POST /sessions. The token carries the current
// session id so API clients without cookies keep the same store.
func (h *SessionHandler) CreateSession(c *gin.Context) {
	sessionID, ok := middleware.GetSessionID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Session not resolved",
		})
		return
	}

	token, expiresAt, err := h.jwtManager.GenerateSessionToken(sessionID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to generate session token")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create session",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Session created successfully",
		"data": gin.H{
			"sessionId": sessionID,
			"token":     token,
			"expiresAt": expiresAt,
		},
	})
}

// GetStore handles GET /store
func (h *SessionHandler) GetStore(c *gin.Context) {
	sess, ok := currentSession(c, h.sessions)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Store state retrieved successfully",
		"data":    sess.Store.Snapshot(),
	})
}
