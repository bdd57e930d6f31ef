package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/expomadeinworld/directory-service/internal/config"
)

func newTestRouter(store Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		API: config.APIConfig{Versions: []string{"v1", "v2"}, Current: "v2"},
	}
	return NewRouter(cfg, store)
}

type header struct {
	name  string
	value string
}

func doRequest(router *gin.Engine, method, path, body string, headers ...header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, h := range headers {
		req.Header.Set(h.name, h.value)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoints(t *testing.T) {
	store := newFakeStore()
	router := newTestRouter(store)

	w := doRequest(router, http.MethodGet, "/live", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(router, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"healthy"`)

	store.healthErr = assert.AnError
	w = doRequest(router, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRootBanner(t *testing.T) {
	router := newTestRouter(newFakeStore())

	w := doRequest(router, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"directory-service"`)
	assert.Contains(t, w.Body.String(), `"v2"`)
}

func TestUnknownRouteIsJSON(t *testing.T) {
	router := newTestRouter(newFakeStore())

	w := doRequest(router, http.MethodGet, "/v1/airports", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
}
