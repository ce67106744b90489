package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/carwash-scheduler/internal/domain/access"
	"github.com/BruksfildServices01/carwash-scheduler/internal/httperr"
	"github.com/BruksfildServices01/carwash-scheduler/internal/models"
	"github.com/BruksfildServices01/carwash-scheduler/internal/session"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type store struct {
	mu      sync.Mutex
	revoked map[string]bool
}

func (s *store) SaveRefresh(context.Context, string, string, time.Duration) error { return nil }
func (s *store) TakeRefresh(context.Context, string) (string, error) {
	return "", session.ErrNotFound
}
func (s *store) DeleteRefresh(context.Context, string) error { return nil }
func (s *store) Revoke(_ context.Context, jti string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[jti] = true
	return nil
}
func (s *store) IsRevoked(_ context.Context, jti string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revoked[jti], nil
}

type profiles map[string]string

func (p profiles) Get(_ context.Context, id string) (*models.Profile, error) {
	role, ok := p[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &models.Profile{ID: id, Role: role}, nil
}

func newRouter(m *session.Manager, roles profiles) *gin.Engine {
	r := gin.New()
	authed := r.Group("/", Auth(m), LoadRole(roles))
	authed.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": UserID(c), "role": Role(c)})
	})
	authed.GET("/staff", RequireRole(access.RoleAdmin, access.RoleIT), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func get(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	var body httperr.HTTPError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Code
}

func TestAuthAndRoleFromStore(t *testing.T) {
	ctx := context.Background()
	m := session.NewManager("secret", &store{revoked: map[string]bool{}})
	roles := profiles{"client-1": "cliente", "it-1": "it"}
	r := newRouter(m, roles)

	w := get(r, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "missing_authorization_header", errorCode(t, w))

	w = get(r, "/me", "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid_session", errorCode(t, w))

	client, err := m.Initialize(ctx, "client-1")
	require.NoError(t, err)

	w = get(r, "/me", client.AccessToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"client-1","role":"cliente"}`, w.Body.String())

	w = get(r, "/staff", client.AccessToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	staff, err := m.Initialize(ctx, "it-1")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, get(r, "/staff", staff.AccessToken).Code)

	// A promotion in the store takes effect on the next request.
	roles["client-1"] = "admin"
	assert.Equal(t, http.StatusNoContent, get(r, "/staff", client.AccessToken).Code)
}

func TestAuthRejectsRevokedAndDeleted(t *testing.T) {
	ctx := context.Background()
	m := session.NewManager("secret", &store{revoked: map[string]bool{}})
	r := newRouter(m, profiles{"u1": "cliente"})

	tokens, err := m.Initialize(ctx, "u1")
	require.NoError(t, err)
	claims, err := m.Verify(ctx, tokens.AccessToken)
	require.NoError(t, err)
	require.NoError(t, m.Teardown(ctx, "", claims))

	w := get(r, "/me", tokens.AccessToken)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	ghost, err := m.Initialize(ctx, "ghost")
	require.NoError(t, err)
	w = get(r, "/me", ghost.AccessToken)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid_session", errorCode(t, w))
}

func TestRateLimitPassesWithoutRedis(t *testing.T) {
	r := gin.New()
	r.GET("/ping", RateLimit(nil, 1), func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, get(r, "/ping", "").Code)
	}

	// Unreachable Redis fails open.
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond, MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })

	r = gin.New()
	r.GET("/ping", RateLimit(rdb, 1), func(c *gin.Context) { c.Status(http.StatusOK) })
	assert.Equal(t, http.StatusOK, get(r, "/ping", "").Code)
}

func TestCORSAllowsConfiguredOrigin(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"http://app.test"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "http://app.test")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://app.test", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "http://evil.test")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
