package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/postfolio/postfolio-backend/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthRouter(m *jwt.Manager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", JWTAuth(m), func(c *gin.Context) {
		c.JSON(200, gin.H{
			"user_id":    GetUserID(c),
			"profile_id": GetProfileID(c),
			"role":       GetRole(c),
		})
	})
	r.GET("/admin", JWTAuth(m), RequireRole("ADMIN"), func(c *gin.Context) {
		c.Status(200)
	})
	return r
}

func TestJWTAuth_ValidToken(t *testing.T) {
	m := jwt.NewManager("test-secret", time.Hour)
	router := newAuthRouter(m)

	token, err := m.GenerateToken(1, 7, "asha@example.com", "USER")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":1`)
	assert.Contains(t, w.Body.String(), `"profile_id":7`)
}

func TestJWTAuth_MissingHeader(t *testing.T) {
	router := newAuthRouter(jwt.NewManager("test-secret", time.Hour))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

	assert.Equal(t, 401, w.Code)
	assert.Contains(t, w.Body.String(), "Missing authorization header")
}

func TestJWTAuth_BadFormat(t *testing.T) {
	router := newAuthRouter(jwt.NewManager("test-secret", time.Hour))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Basic abc123")
	router.ServeHTTP(w, req)

	assert.Equal(t, 401, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid authorization header format")
}

func TestJWTAuth_ExpiredToken(t *testing.T) {
	m := jwt.NewManager("test-secret", -time.Minute)
	router := newAuthRouter(m)

	token, err := m.GenerateToken(1, 7, "asha@example.com", "USER")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, 401, w.Code)
	assert.Contains(t, w.Body.String(), "Token expired")
}

func TestRequireRole(t *testing.T) {
	m := jwt.NewManager("test-secret", time.Hour)
	router := newAuthRouter(m)

	userToken, err := m.GenerateToken(1, 7, "asha@example.com", "USER")
	require.NoError(t, err)
	adminToken, err := m.GenerateToken(2, 8, "admin@example.com", "ADMIN")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	router.ServeHTTP(w, req)
	assert.Equal(t, 403, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	router.ServeHTTP(w, req)
	assert.Equal(t, 200, w.Code)
}
