package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-jwt-secret"

func protectedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthMiddleware(testSecret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetUint("user_id")})
	})
	r.GET("/admin", AuthMiddleware(testSecret), RequireRole("admin"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func issueToken(t *testing.T, role string, ttl time.Duration) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": float64(42),
		"email":   "diner@example.com",
		"role":    role,
		"exp":     time.Now().Add(ttl).Unix(),
	})
	s, err := tok.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func get(r *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	r := protectedRouter()
	w := get(r, "/protected", "Bearer "+issueToken(t, "user", time.Hour))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "42")
}

func TestAuthMiddlewareRejectsMissingHeader(t *testing.T) {
	r := protectedRouter()
	assert.Equal(t, http.StatusUnauthorized, get(r, "/protected", "").Code)
}

func TestAuthMiddlewareRejectsMalformedHeader(t *testing.T) {
	r := protectedRouter()
	assert.Equal(t, http.StatusUnauthorized, get(r, "/protected", issueToken(t, "user", time.Hour)).Code)
}

func TestAuthMiddlewareRejectsExpiredToken(t *testing.T) {
	r := protectedRouter()
	assert.Equal(t, http.StatusUnauthorized, get(r, "/protected", "Bearer "+issueToken(t, "user", -time.Hour)).Code)
}

func TestRequireRoleBlocksNonAdmins(t *testing.T) {
	r := protectedRouter()
	assert.Equal(t, http.StatusForbidden, get(r, "/admin", "Bearer "+issueToken(t, "user", time.Hour)).Code)
	assert.Equal(t, http.StatusOK, get(r, "/admin", "Bearer "+issueToken(t, "admin", time.Hour)).Code)
}
