package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/educonnect/educonnect-backend/internal/config"
	"github.com/educonnect/educonnect-backend/internal/model"
	"github.com/educonnect/educonnect-backend/internal/response"
	"github.com/educonnect/educonnect-backend/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuth(expiry time.Duration) *service.AuthService {
	return service.NewAuthService(&config.Config{JWTSecret: "mw-secret", JWTExpiry: expiry}, nil)
}

func tokenFor(t *testing.T, auth *service.AuthService, role model.Role) string {
	t.Helper()
	token, err := auth.Login(&model.User{ID: uuid.New(), Email: "x@school.test", Role: role, FirstName: "X"})
	require.NoError(t, err)
	return token
}

func errCode(t *testing.T, w *httptest.ResponseRecorder) response.ErrCode {
	t.Helper()
	var body response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotNil(t, body.Error)
	return body.Error.Code
}

func protectedEngine(auth TokenValidator, roles ...model.Role) *gin.Engine {
	r := gin.New()
	chain := []gin.HandlerFunc{RequireAuth(auth)}
	if len(roles) > 0 {
		chain = append(chain, RequireRoles(roles...))
	}
	chain = append(chain, func(c *gin.Context) {
		p, ok := GetPrincipal(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, string(p.Role))
	})
	r.GET("/protected", chain...)
	return r
}

func TestRequireAuth(t *testing.T) {
	auth := newAuth(time.Hour)
	expired := newAuth(-time.Minute)

	tests := []struct {
		name   string
		header string
		status int
		code   response.ErrCode
	}{
		{"missing header", "", http.StatusUnauthorized, response.ErrTokenRequired},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, response.ErrTokenRequired},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized, response.ErrTokenInvalid},
		{"expired token", "Bearer " + tokenFor(t, expired, model.RoleAdmin), http.StatusUnauthorized, response.ErrTokenExpired},
		{"valid token", "bearer " + tokenFor(t, auth, model.RoleTeacher), http.StatusOK, ""},
	}

	r := protectedEngine(auth)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.code != "" {
				assert.Equal(t, tt.code, errCode(t, w))
			} else {
				assert.Equal(t, "teacher", w.Body.String())
			}
		})
	}
}

func TestRequireWSAuth_QueryToken(t *testing.T) {
	auth := newAuth(time.Hour)
	r := gin.New()
	r.GET("/ws", RequireWSAuth(auth), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ws?token="+tokenFor(t, auth, model.RoleParent), nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ws", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRoles(t *testing.T) {
	auth := newAuth(time.Hour)
	r := protectedEngine(auth, FinanceStaff...)

	for role, want := range map[model.Role]int{
		model.RoleAdmin:      http.StatusOK,
		model.RoleAccountant: http.StatusOK,
		model.RoleTeacher:    http.StatusForbidden,
		model.RoleStudent:    http.StatusForbidden,
	} {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+tokenFor(t, auth, role))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, want, w.Code, role)
		if want == http.StatusForbidden {
			assert.Equal(t, response.ErrForbidden, errCode(t, w))
		}
	}
}

func TestRequireRoles_WithoutAuth(t *testing.T) {
	r := gin.New()
	r.GET("/x", RequireRoles(model.RoleAdmin), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRateLimiter_RefillsOverInterval(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rl := NewRateLimiter(ctx, 3, time.Minute)
	now := time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow("10.0.0.1"), "attempt %d", i+1)
	}
	assert.False(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.2"), "buckets are per key")

	now = now.Add(30 * time.Second)
	assert.True(t, rl.Allow("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"))

	now = now.Add(10 * time.Minute)
	rl.cleanup()
	rl.mu.Lock()
	assert.Empty(t, rl.visitors)
	rl.mu.Unlock()
}

func TestRateLimiter_Middleware(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rl := NewRateLimiter(ctx, 1, time.Minute)
	r := gin.New()
	r.POST("/login", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, response.ErrRateLimitExceeded, errCode(t, w))
}

func TestNoStore(t *testing.T) {
	r := gin.New()
	r.GET("/h", NoStore(), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/h", nil))
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
	assert.Equal(t, "no-cache", w.Header().Get("Pragma"))
}
