package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"carenest/config"
	"carenest/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw)
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"subject": c.GetString("subjectID"),
			"role":    c.GetString("role"),
		})
	})
	return r
}

func doGet(r *gin.Engine, header, value string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	if header != "" {
		req.Header.Set(header, value)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthMiddlewareAcceptsValidToken(t *testing.T) {
	token, err := utils.GenerateToken("client-1", "client", time.Hour)
	require.NoError(t, err)

	r := newRouter(JWTAuthMiddleware("client"))
	w := doGet(r, "Authorization", "Bearer "+token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "client-1")
}

func TestJWTAuthMiddlewareRejectsWrongRole(t *testing.T) {
	token, err := utils.GenerateToken("nanny-1", "nanny", time.Hour)
	require.NoError(t, err)

	r := newRouter(JWTAuthMiddleware("client"))
	w := doGet(r, "Authorization", "Bearer "+token)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestJWTAuthMiddlewareRejectsMissingHeader(t *testing.T) {
	r := newRouter(JWTAuthMiddleware("client"))
	w := doGet(r, "", "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthMiddlewareRejectsExpiredToken(t *testing.T) {
	token, err := utils.GenerateToken("client-1", "client", -time.Minute)
	require.NoError(t, err)

	r := newRouter(JWTAuthMiddleware("client"))
	w := doGet(r, "Authorization", "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminAuthMiddlewareChecksConfiguredToken(t *testing.T) {
	config.AppConfig.AdminAPIToken = "ops-token"
	r := newRouter(AdminAuthMiddleware())

	w := doGet(r, "Authorization", "Bearer ops-token")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doGet(r, "Authorization", "Bearer wrong-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminAuthMiddlewareRejectsWhenUnconfigured(t *testing.T) {
	config.AppConfig.AdminAPIToken = ""
	r := newRouter(AdminAuthMiddleware())

	w := doGet(r, "Authorization", "Bearer ")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRateLimitMiddlewareHonorsConfiguredCeiling(t *testing.T) {
	config.AppConfig.MaxRequestsPerMin = 3
	r := newRouter(RateLimitMiddleware())

	// Distinct IP so other tests' limiters do not interfere.
	for i := 0; i < 3; i++ {
		w := doGet(r, "X-Real-IP", "10.9.9.9")
		assert.Equal(t, http.StatusOK, w.Code)
	}
	w := doGet(r, "X-Real-IP", "10.9.9.9")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}
