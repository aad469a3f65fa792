package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tshenolo1994/fe-dev-test-tshenolo/config"
	"github.com/Tshenolo1994/fe-dev-test-tshenolo/models"
	"github.com/Tshenolo1994/fe-dev-test-tshenolo/store"
)

func setupRouter(t *testing.T, mutate func(*config.AppConfig)) http.Handler {
	t.Helper()
	cfg := config.AppConfig{
		AppPort:            "0",
		GinMode:            "test",
		GinPath:            filepath.Join(t.TempDir(), "gin.log"),
		AllowedOrigins:     []string{"*"},
		RateLimitPerMinute: 600,
		StoreDriver:        config.DriverMemory,
		StoreSeed:          true,
		LogLevel:           "info",
	}
	if mutate != nil {
		mutate(&cfg)
	}
	config.Set(cfg)

	s, err := store.Open(cfg)
	require.NoError(t, err)
	return SetupRouter(s)
}

func do(h http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	h.ServeHTTP(w, req)
	return w
}

func TestRouter_CreateThenList(t *testing.T) {
	r := setupRouter(t, nil)

	w := do(r, http.MethodPost, "/api/posts", `{"title":"X","body":"Y"}`, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var created models.Post
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, models.Post{ID: 4, Title: "X", Body: "Y"}, created)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = do(r, http.MethodGet, "/api/posts", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var posts []models.Post
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &posts))
	require.Len(t, posts, 4)
	assert.Equal(t, created, posts[3])
}

func TestRouter_Health(t *testing.T) {
	r := setupRouter(t, nil)
	w := do(r, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"code":0,"message":"success","data":{"status":"ok"}}`, w.Body.String())
}

func TestRouter_NotFoundAndMethod(t *testing.T) {
	r := setupRouter(t, nil)

	w := do(r, http.MethodGet, "/api/posts/1", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"code":40400,"message":"api route not found"}`, w.Body.String())

	w = do(r, http.MethodDelete, "/api/posts", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestRouter_CORS(t *testing.T) {
	r := setupRouter(t, func(c *config.AppConfig) {
		c.AllowedOrigins = []string{"http://localhost:3001"}
	})

	w := do(r, http.MethodGet, "/api/posts", "", map[string]string{"Origin": "http://localhost:3001"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://localhost:3001", w.Header().Get("Access-Control-Allow-Origin"))

	w = do(r, http.MethodGet, "/api/posts", "", map[string]string{"Origin": "http://evil.test"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRouter_RateLimitsCreate(t *testing.T) {
	r := setupRouter(t, func(c *config.AppConfig) { c.RateLimitPerMinute = 2 })

	assert.Equal(t, http.StatusCreated, do(r, http.MethodPost, "/api/posts", `{"title":"a","body":"b"}`, nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, do(r, http.MethodPost, "/api/posts", `{"title":"a","body":"b"}`, nil).Code)
	// Reads are not limited
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/api/posts", "", nil).Code)
}

func TestRouter_Metrics(t *testing.T) {
	r := setupRouter(t, nil)
	do(r, http.MethodPost, "/api/posts", `{"title":"a","body":"b"}`, nil)

	w := do(r, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "posts_created_total 1")
	assert.Contains(t, w.Body.String(), `posts_http_requests_total{method="POST",route="/api/posts",status="201"} 1`)
}
