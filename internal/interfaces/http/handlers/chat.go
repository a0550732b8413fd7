// internal/interfaces/http/handlers/chat.go
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/your-org/store-pilot/internal/domain/assistant"
	"github.com/your-org/store-pilot/internal/domain/session"
	"github.com/your-org/store-pilot/internal/domain/store"
)

// Assistant runs one chat turn against a store
type Assistant interface {
	Chat(ctx context.Context, st *store.Store, message string, history []assistant.Message) (assistant.Reply, error)
}

// ChatHandler handles the shopkeeper chat endpoint
type ChatHandler struct {
	assistant Assistant
	sessions  *session.Manager
	logger    logrus.FieldLogger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(a Assistant, sessions *session.Manager, logger logrus.FieldLogger) *ChatHandler {
	return &ChatHandler{
		assistant: a,
		sessions:  sessions,
		logger:    logger,
	}
}

type chatRequest struct {
	Message             string              `json:"message"`
	ConversationHistory []assistant.Message `json:"conversationHistory"`
}

// Chat handles POST /chat
func (h *ChatHandler) Chat(c *gin.Context) {
	var req chatRequest
	if !bindJSON(c, &req) {
		return
	}
	sess, ok := currentSession(c, h.sessions)
	if !ok {
		return
	}

	if err := sess.Acquire(); err != nil {
		c.JSON(http.StatusConflict, gin.H{
			"error": "Session busy, please wait for the previous reply",
		})
		return
	}
	defer sess.Release()

	reply, err := h.assistant.Chat(c.Request.Context(), sess.Store, req.Message, req.ConversationHistory)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Message is required",
			})
		case errors.Is(err, assistant.ErrExternalService), errors.Is(err, context.DeadlineExceeded):
			h.logger.WithError(err).WithField("session_id", sess.ID).Error("Chat turn failed")
			c.JSON(http.StatusBadGateway, assistant.Reply{Message: assistant.ApologyMessage})
		default:
			h.logger.WithError(err).WithField("session_id", sess.ID).Error("Chat turn failed")
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to process chat message",
			})
		}
		return
	}

	c.JSON(http.StatusOK, reply)
}
