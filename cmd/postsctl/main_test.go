package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tshenolo1994/fe-dev-test-tshenolo/client"
	"github.com/Tshenolo1994/fe-dev-test-tshenolo/config"
	"github.com/Tshenolo1994/fe-dev-test-tshenolo/models"
	"github.com/Tshenolo1994/fe-dev-test-tshenolo/routes"
	"github.com/Tshenolo1994/fe-dev-test-tshenolo/store"
)

func newService(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := config.AppConfig{
		GinMode:            "test",
		AllowedOrigins:     []string{"*"},
		RateLimitPerMinute: 600,
		StoreDriver:        config.DriverMemory,
		StoreSeed:          true,
	}
	config.Set(cfg)
	s, err := store.Open(cfg)
	require.NoError(t, err)
	srv := httptest.NewServer(routes.SetupRouter(s))
	t.Cleanup(srv.Close)
	return srv
}

func run(t *testing.T, favPath string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--favorites", favPath}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestListSearchAndFavorite(t *testing.T) {
	srv := newService(t)
	fav := filepath.Join(t.TempDir(), "favorites.db")

	out, err := run(t, fav, "--api", srv.URL, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "My First Post")
	assert.Contains(t, out, "My Third Post")
	assert.NotContains(t, out, "*")

	out, err = run(t, fav, "favorite", "2")
	require.NoError(t, err)
	assert.Equal(t, "post 2 favorite=true\n", out)

	out, err = run(t, fav, "--api", srv.URL, "search", "second")
	require.NoError(t, err)
	assert.Contains(t, out, "My Second Post")
	assert.NotContains(t, out, "My First Post")
	assert.Contains(t, out, "*")

	out, err = run(t, fav, "--api", srv.URL, "search", "nothing-matches")
	require.NoError(t, err)
	assert.Equal(t, "no posts\n", out)
}

func TestCreate(t *testing.T) {
	srv := newService(t)
	out, err := run(t, filepath.Join(t.TempDir(), "f.db"), "--api", srv.URL, "create", "--title", "X", "--body", "Y")
	require.NoError(t, err)

	var post models.Post
	require.NoError(t, json.Unmarshal([]byte(out), &post))
	assert.Equal(t, models.Post{ID: 4, Title: "X", Body: "Y"}, post)
}

func TestShow(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/posts/2", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(models.Post{ID: 2, Title: "My Second Post", Body: "body"})
	})
	mux.HandleFunc("/api/posts/2/comments", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]models.Comment{{Text: "nice", Author: "ann"}, {Text: "ok"}})
	})
	api := httptest.NewServer(mux)
	defer api.Close()
	fav := filepath.Join(t.TempDir(), "favorites.db")

	out, err := run(t, fav, "--api", api.URL, "show", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "#2 My Second Post\n")
	assert.Contains(t, out, "- nice (ann)\n")
	assert.Contains(t, out, "- ok\n")

	_, err = run(t, fav, "--api", api.URL, "show", "9")
	assert.ErrorIs(t, err, client.ErrNotFound)
}

func TestInvalidID(t *testing.T) {
	_, err := run(t, filepath.Join(t.TempDir(), "f.db"), "favorite", "abc")
	assert.ErrorContains(t, err, "invalid post id")

	_, err = run(t, filepath.Join(t.TempDir(), "f.db"), "show", "0")
	assert.ErrorContains(t, err, "invalid post id")
}
