package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"campulse/internal/model"
	"campulse/internal/session"
)

const userKey = "campulse.user"

// Cookie lifetime. Sessions persist across browser restarts until logout or
// a backend rejection, so the cookie is long-lived rather than per-browser.
const cookieMaxAge = 365 * 24 * 60 * 60

// SessionCookie assigns each browser a session id and threads it through the
// request context for the session store and token source.
func SessionCookie(secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(session.CookieName)
		if err != nil || sid == "" {
			sid = uuid.NewString()
			c.SetCookie(session.CookieName, sid, cookieMaxAge, "/", "", secure, true)
		}
		ctx := session.WithID(c.Request.Context(), sid)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireAuth renders nothing itself: it either lets the page handler run
// with the resolved user attached, or redirects to the login page.
func RequireAuth(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := svc.Current(c.Request.Context())
		if !ok {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}
		c.Set(userKey, user)
		c.Next()
	}
}

// RequireAnon is the mirror guard for the login and signup pages.
func RequireAnon(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if svc.Authenticated(c.Request.Context()) {
			c.Redirect(http.StatusSeeOther, "/dashboard")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the profile attached by RequireAuth.
func CurrentUser(c *gin.Context) (model.User, bool) {
	val, ok := c.Get(userKey)
	if !ok {
		return model.User{}, false
	}
	user, ok := val.(model.User)
	return user, ok
}
