package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"stylehive/session"
)

// UserAuth attaches the store-backed session to the request and rejects it
// when no logged-in shopper session exists.
func UserAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := session.FromRequest(c, session.Default)
		if err == session.ErrNotFound || err == session.ErrBadCookie {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Please log in"})
			c.Abort()
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Session store unavailable"})
			c.Abort()
			return
		}
		if !sess.IsLoggedIn {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Please log in"})
			c.Abort()
			return
		}

		c.Set("session", sess)
		c.Set("user_id", sess.UserID)
		c.Next()
	}
}

// AdminAuth is the back-office counterpart of UserAuth.
func AdminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := session.FromRequest(c, session.Default)
		if err == session.ErrNotFound || err == session.ErrBadCookie {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Admin login required"})
			c.Abort()
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Session store unavailable"})
			c.Abort()
			return
		}
		if !sess.AdminLoggedIn {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Admin login required"})
			c.Abort()
			return
		}

		c.Set("session", sess)
		c.Set("admin_id", sess.AdminID)
		c.Next()
	}
}

// CurrentSession returns the session attached by UserAuth or AdminAuth.
func CurrentSession(c *gin.Context) *session.Session {
	value, ok := c.Get("session")
	if !ok {
		return nil
	}
	sess, _ := value.(*session.Session)
	return sess
}

var sensitivePrefixes = []string{
	"/login",
	"/register",
	"/logout",
	"/password",
	"/profile",
	"/cart",
	"/checkout",
	"/orders",
	"/wallet",
	"/wishlist",
	"/addresses",
	"/referrals",
	"/admin",
}

// CacheControl sends no-store on authentication-sensitive paths and for
// requests that carry a session cookie; everything else may be cached
// briefly.
func CacheControl() gin.HandlerFunc {
	return func(c *gin.Context) {
		noStore := false
		for _, prefix := range sensitivePrefixes {
			if strings.HasPrefix(c.Request.URL.Path, prefix) {
				noStore = true
				break
			}
		}
		if !noStore {
			if _, err := c.Cookie(session.CookieName); err == nil {
				noStore = true
			}
		}

		if noStore {
			c.Header("Cache-Control", "no-store")
		} else {
			c.Header("Cache-Control", "public, max-age=300")
		}
		c.Next()
	}
}
