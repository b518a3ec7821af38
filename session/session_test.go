package session

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOptions() Options {
	return Options{
		Name:     CookieName,
		Secret:   "unit-test-secret",
		Path:     "/",
		HTTPOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

func TestSignVerifyRoundTrip(t *testing.T) {
	opts := testOptions()
	id := newSessionID()

	value := opts.Sign(id)
	got, err := opts.Verify(value)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestVerifyRejectsTamperedCookie(t *testing.T) {
	opts := testOptions()
	value := opts.Sign(newSessionID())

	cases := map[string]string{
		"flipped id byte": "x" + value[1:],
		"truncated tag":   value[:len(value)-2],
		"no separator":    strings.ReplaceAll(value, ".", ""),
		"empty":           "",
		"wrong secret":    Options{Secret: "other"}.Sign("abc"),
	}
	for name, cookie := range cases {
		_, err := opts.Verify(cookie)
		assert.ErrorIs(t, err, ErrBadCookie, name)
	}
}

func TestNewSessionIDIsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := newSessionID()
		assert.Len(t, id, 64)
		assert.False(t, seen[id], "duplicate session id")
		seen[id] = true
	}
}

func TestInitUserSessionExpiry(t *testing.T) {
	sess := &Session{ID: newSessionID(), CreatedAt: time.Now()}
	InitUserSession(sess, "user123", "a@b.com", "Asha", "cart456", "user")

	assert.True(t, sess.IsLoggedIn)
	assert.False(t, sess.AdminLoggedIn)
	assert.Equal(t, "user123", sess.UserID)
	assert.Equal(t, "cart456", sess.CartID)
	assert.WithinDuration(t, time.Now().Add(UserTTL), sess.ExpiresAt, 2*time.Second)
}

func TestInitAdminSessionExpiry(t *testing.T) {
	sess := &Session{ID: newSessionID(), CreatedAt: time.Now()}
	InitAdminSession(sess, "admin1", "ops@stylehive.in", "Ops")

	assert.True(t, sess.AdminLoggedIn)
	assert.False(t, sess.IsLoggedIn)
	assert.WithinDuration(t, time.Now().Add(AdminTTL), sess.ExpiresAt, 2*time.Second)
	assert.True(t, sess.ExpiresAt.Before(time.Now().Add(UserTTL)), "admin sessions are shorter than user sessions")
}

func TestWriteCookieAttributes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	opts := testOptions()
	sess := &Session{ID: newSessionID(), ExpiresAt: time.Now().Add(UserTTL)}
	WriteCookie(c, opts, sess)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, CookieName, cookie.Name)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.InDelta(t, int(UserTTL.Seconds()), cookie.MaxAge, 2)

	id, err := opts.Verify(cookie.Value)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, id)
}

func TestClearCookieExpiresImmediately(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	ClearCookie(c, testOptions())

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
	assert.Empty(t, cookies[0].Value)
}
