// internal/interfaces/http/handlers/command.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/your-org/store-pilot/internal/domain/command"
	"github.com/your-org/store-pilot/internal/domain/session"
)

// CommandHandler replays executed-function chains sent back by the client
type CommandHandler struct {
	sessions *session.Manager
	executor *command.Executor
}

// NewCommandHandler creates a new command handler
func NewCommandHandler(sessions *session.Manager, executor *command.Executor) *CommandHandler {
	return &CommandHandler{
		sessions: sessions,
		executor: executor,
	}
}

type replayRequest struct {
	ExecutedFunction *command.ExecutedFunction `json:"executedFunction" binding:"required"`
}

// Replay handles POST /commands. Calls run oldest first and stop at the
// first failure.
func (h *CommandHandler) Replay(c *gin.Context) {
	var req replayRequest
	if !bindJSON(c, &req) {
		return
	}
	sess, ok := currentSession(c, h.sessions)
	if !ok {
		return
	}

	results, err := h.executor.Replay(sess.Store, req.ExecutedFunction)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid function chain",
			"details": err.Error(),
		})
		return
	}

	if n := len(results); n > 0 && !results[n-1].Success {
		last := results[n-1]
		c.JSON(statusFor(last.Err()), gin.H{
			"error": last.Error,
			"data":  results,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Functions replayed successfully",
		"data": gin.H{
			"results":      results,
			"updatedState": sess.Store.Snapshot(),
		},
	})
}
