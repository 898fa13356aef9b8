package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"audio2text/internal/app/session"
)

// SessionCookieName is the cookie that ties a browser to its transcript store.
const SessionCookieName = "a2t_session"

const sessionContextKey = "session_id"

// Session assigns each client a session ID cookie so transcription results
// stay scoped to the browser that uploaded them.
func Session(maxAge int) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(SessionCookieName)
		if err != nil || id == "" {
			id = session.NewSessionID()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(SessionCookieName, id, maxAge, "/", "", false, true)
		}

		c.Set(sessionContextKey, id)
		c.Next()
	}
}

// SessionID returns the session ID assigned by the Session middleware.
func SessionID(c *gin.Context) string {
	return c.GetString(sessionContextKey)
}
