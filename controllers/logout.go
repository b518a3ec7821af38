package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stylehive/session"
)

// Logout destroys the store-backed session and clears the cookie. A store
// failure is user-visible: the cookie stays so the user can retry.
func Logout(c *gin.Context) {
	sess, err := session.FromRequest(c, session.Default)
	if err == session.ErrNotFound || err == session.ErrBadCookie {
		session.ClearCookie(c, session.Default.Options())
		ok(c, "Logged out", nil)
		return
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, "Logout failed, try again")
		return
	}

	if err := session.Default.Destroy(c.Request.Context(), sess.ID); err != nil {
		fail(c, http.StatusInternalServerError, "Logout failed, try again")
		return
	}

	session.ClearCookie(c, session.Default.Options())
	ok(c, "Logged out", nil)
}
