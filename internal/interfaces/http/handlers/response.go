// internal/interfaces/http/handlers/response.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/your-org/store-pilot/internal/domain/command"
	"github.com/your-org/store-pilot/internal/domain/session"
	"github.com/your-org/store-pilot/internal/domain/store"
	"github.com/your-org/store-pilot/internal/interfaces/http/middleware"
)

// statusFor maps domain errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrValidation), errors.Is(err, command.ErrUnknownFunction):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, session.ErrBusy):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respond writes a store result. Failed results become an error body.
func respond(c *gin.Context, outcome store.Outcome, data any) {
	if err := outcome.Err(); err != nil {
		c.JSON(statusFor(err), gin.H{
			"error": outcome.Error,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": outcome.Message,
		"data":    data,
	})
}

// bindJSON binds the request body and answers 400 on failure
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return false
	}
	return true
}

// productIDParam parses the :id path parameter
func productIDParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return 0, false
	}
	return id, true
}

// currentSession returns the shopper's session resolved by the session
// middleware
func currentSession(c *gin.Context, sessions *session.Manager) (*session.Session, bool) {
	id, ok := middleware.GetSessionID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Session not resolved",
		})
		return nil, false
	}
	return sessions.Get(c.Request.Context(), id), true
}
