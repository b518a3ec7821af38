package session

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// WriteCookie sets the signed session cookie with a MaxAge matching the
// session expiry.
func WriteCookie(c *gin.Context, opts Options, sess *Session) {
	maxAge := int(time.Until(sess.ExpiresAt).Seconds())
	if maxAge < 0 {
		maxAge = 0
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     opts.Name,
		Value:    opts.Sign(sess.ID),
		Path:     opts.Path,
		MaxAge:   maxAge,
		Secure:   opts.Secure,
		HttpOnly: opts.HTTPOnly,
		SameSite: opts.SameSite,
	})
}

// ClearCookie expires the session cookie on the client.
func ClearCookie(c *gin.Context, opts Options) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     opts.Name,
		Value:    "",
		Path:     opts.Path,
		MaxAge:   -1,
		Secure:   opts.Secure,
		HttpOnly: opts.HTTPOnly,
		SameSite: opts.SameSite,
	})
}

// FromRequest verifies the session cookie and loads the session from the
// store. A missing, tampered or expired cookie returns ErrNotFound-class
// errors; store I/O errors pass through.
func FromRequest(c *gin.Context, store *Store) (*Session, error) {
	cookie, err := c.Cookie(store.Options().Name)
	if err != nil {
		return nil, ErrNotFound
	}
	id, err := store.Options().Verify(cookie)
	if err != nil {
		return nil, err
	}
	return store.Get(c.Request.Context(), id)
}
