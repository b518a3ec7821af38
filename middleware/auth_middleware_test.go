package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"stylehive/session"
)

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	session.Default = session.NewStore(nil, session.Options{
		Name:   session.CookieName,
		Secret: "test-secret",
		Path:   "/",
	})

	r := gin.New()
	r.Use(CacheControl())
	r.GET("/products", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/cart", UserAuth(), func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/admin/orders", AdminAuth(), func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestUserAuthWithoutCookie(t *testing.T) {
	r := testRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Please log in")
}

func TestUserAuthWithTamperedCookie(t *testing.T) {
	r := testRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "forged-id.deadbeef"})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminAuthWithoutCookie(t *testing.T) {
	r := testRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Admin login required")
}

func TestCacheControlSensitivePath(t *testing.T) {
	r := testRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}

func TestCacheControlPublicPath(t *testing.T) {
	r := testRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, "public, max-age=300", w.Header().Get("Cache-Control"))
}

func TestCacheControlSessionCookieForcesNoStore(t *testing.T) {
	r := testRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "anything"})
	r.ServeHTTP(w, req)

	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}
