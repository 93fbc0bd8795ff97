// internal/interfaces/http/middleware/session.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/pkg/auth"
)

// SessionIDKey is the gin context key holding the browsing session id
const SessionIDKey = "session_id"

// Session ensures every request carries a browsing session. A missing or
// invalid session cookie starts a new session and sets a fresh cookie.
func Session(cfg *config.Config, sessions *auth.SessionManager, log logrus.FieldLogger) gin.HandlerFunc {
	maxAge := int(sessions.TTL().Seconds())

	return func(c *gin.Context) {
		if token, err := c.Cookie(cfg.Session.CookieName); err == nil && token != "" {
			if sessionID, err := sessions.ValidateSession(token); err == nil {
				c.Set(SessionIDKey, sessionID)
				c.Next()
				return
			}
		}

		sessionID, token, err := sessions.NewSession()
		if err != nil {
			log.WithError(err).Error("failed to start session")
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to start session",
			})
			c.Abort()
			return
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(cfg.Session.CookieName, token, maxAge, "/", "", cfg.Session.SecureCookie, true)
		c.Set(SessionIDKey, sessionID)

		c.Next()
	}
}

// GetSessionID extracts the browsing session id from gin context
func GetSessionID(c *gin.Context) (string, bool) {
	sessionID := c.GetString(SessionIDKey)
	return sessionID, sessionID != ""
}
