// internal/interfaces/http/middleware/session.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/your-org/store-pilot/internal/config"
	"github.com/your-org/store-pilot/internal/domain/session"
	"github.com/your-org/store-pilot/internal/pkg/auth"
)

// SessionIDKey is the gin context key of the shopper's session id
const SessionIDKey = "session_id"

// Session resolves the shopper's session from a bearer token or the session
// cookie. Requests without either get a new session and cookie.
func Session(cfg *config.Config, jwtManager *auth.JWTManager) gin.HandlerFunc {
	maxAge := int(cfg.JWT.SessionExpiry.Seconds())

	return func(c *gin.Context) {
		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			tokenString := auth.ExtractTokenFromHeader(authHeader)
			if tokenString == "" {
				c.JSON(http.StatusUnauthorized, gin.H{
					"error": "Invalid authorization header format",
				})
				c.Abort()
				return
			}

			claims, err := jwtManager.ValidateSessionToken(tokenString)
			if err != nil {
				c.JSON(http.StatusUnauthorized, gin.H{
					"error": "Invalid or expired session token",
				})
				c.Abort()
				return
			}

			c.Set(SessionIDKey, claims.SessionID)
			c.Next()
			return
		}

		sessionID, err := c.Cookie(cfg.Session.CookieName)
		if err != nil || !session.ValidID(sessionID) {
			sessionID = session.NewID()
			c.SetCookie(cfg.Session.CookieName, sessionID, maxAge, "/", "", cfg.IsProduction(), true)
		}

		c.Set(SessionIDKey, sessionID)
		c.Next()
	}
}

// GetSessionID extracts the session id from gin context
func GetSessionID(c *gin.Context) (string, bool) {
	id, exists := c.Get(SessionIDKey)
	if !exists {
		return "", false
	}
	s, ok := id.(string)
	return s, ok && s != ""
}
