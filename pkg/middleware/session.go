package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"trial-screening/pkg/services"
	"trial-screening/pkg/wizard"
)

const (
	sessionIDKey  = "sessionID"
	controllerKey = "wizard"
)

// Session loads the caller's wizard from the cookie, starting a new one
// when the cookie is missing or the session has expired.
func Session(store *services.SessionStore, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id, err := c.Cookie(cookieName); err == nil && id != "" {
			if ctrl, err := store.Get(id); err == nil {
				c.Set(sessionIDKey, id)
				c.Set(controllerKey, ctrl)
				c.Next()
				return
			}
		}

		id, ctrl := store.Create()
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(cookieName, id, 0, "/", "", c.Request.TLS != nil, true)
		c.Set(sessionIDKey, id)
		c.Set(controllerKey, ctrl)
		c.Next()
	}
}

// Controller returns the wizard attached by Session
func Controller(c *gin.Context) *wizard.Controller {
	return c.MustGet(controllerKey).(*wizard.Controller)
}

// SessionID returns the id attached by Session
func SessionID(c *gin.Context) string {
	return c.GetString(sessionIDKey)
}
