package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chiesa14/pvms-ne/internal/service"
)

const testSecret = "test-secret"

func signTestToken(t *testing.T, userID int, role string, ttl time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":   fmt.Sprintf("%d", userID),
		"exp":   time.Now().Add(ttl).Unix(),
		"iat":   time.Now().Unix(),
		"role":  role,
		"email": "user@example.com",
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func newTestRouter() (*gin.Engine, *AuthMiddleware) {
	gin.SetMode(gin.TestMode)
	authService := service.NewAuthService(nil, testSecret, time.Hour)
	mw := NewAuthMiddleware(authService)
	r := gin.New()
	return r, mw
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	r, mw := newTestRouter()
	r.GET("/secret", mw.Authenticate(), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secret", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticate_BadFormat(t *testing.T) {
	r, mw := newTestRouter()
	r.GET("/secret", mw.Authenticate(), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secret", nil)
	req.Header.Set("Authorization", "Token abc")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticate_ExpiredToken(t *testing.T) {
	r, mw := newTestRouter()
	r.GET("/secret", mw.Authenticate(), func(c *gin.Context) { c.Status(http.StatusOK) })

	token := signTestToken(t, 7, "user", -time.Hour)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secret", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticate_ValidTokenSetsContext(t *testing.T) {
	r, mw := newTestRouter()
	r.GET("/secret", mw.Authenticate(), func(c *gin.Context) {
		userID, ok := CurrentUserID(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"userID": userID, "role": c.GetString(UserRoleKey)})
	})

	token := signTestToken(t, 7, "user", time.Hour)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secret", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"userID": 7, "role": "user"}`, w.Body.String())
}

func TestAuthorizeRole_RejectsUserOnAdminRoute(t *testing.T) {
	r, mw := newTestRouter()
	r.GET("/admin", mw.Authenticate(), mw.AuthorizeRole("admin"), func(c *gin.Context) { c.Status(http.StatusOK) })

	token := signTestToken(t, 7, "user", time.Hour)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAuthorizeRole_AllowsAdmin(t *testing.T) {
	r, mw := newTestRouter()
	r.GET("/admin", mw.Authenticate(), mw.AuthorizeRole("admin"), func(c *gin.Context) { c.Status(http.StatusOK) })

	token := signTestToken(t, 1, "admin", time.Hour)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
