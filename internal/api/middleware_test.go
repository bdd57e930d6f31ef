package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireJSONAccept(t *testing.T) {
	router := newTestRouter(newFakeStore())

	w := doRequest(router, http.MethodGet, "/v1/organisations", "",
		header{"Accept", "text/html"})
	assert.Equal(t, http.StatusNotAcceptable, w.Code)
	assert.Contains(t, w.Body.String(), "responses encoded as JSON")

	for _, accept := range []string{"", "*/*", "application/json", "application/json; q=0.9, text/plain"} {
		w = doRequest(router, http.MethodGet, "/v1/organisations", "",
			header{"Accept", accept})
		assert.Equal(t, http.StatusOK, w.Code, "Accept: %q", accept)
	}
}

func TestRequireJSONContentType(t *testing.T) {
	router := newTestRouter(newFakeStore())

	w := doRequest(router, http.MethodPost, "/v1/organisations", "")
	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)

	w = doRequest(router, http.MethodPost, "/v1/organisations", `{"name": "Acme"}`,
		header{"Content-Type", "text/plain"})
	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
	assert.Contains(t, w.Body.String(), "requests encoded as JSON")
}

func TestVersionCheck(t *testing.T) {
	router := newTestRouter(newFakeStore())

	w := doRequest(router, http.MethodGet, "/v9/organisations", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid API version: v9")

	for _, version := range []string{"v1", "v2"} {
		w = doRequest(router, http.MethodGet, "/"+version+"/organisations", "")
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRequireNumericID(t *testing.T) {
	router := newTestRouter(newFakeStore())

	for _, id := range []string{"abc", "12x", "1.5", "-1"} {
		w := doRequest(router, http.MethodGet, "/v1/organisations/"+id, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, "id %q", id)
		assert.Contains(t, w.Body.String(), "Invalid object ID")
	}
}

func TestTransactionCommitOnSuccess(t *testing.T) {
	store := newFakeStore()
	router := newTestRouter(store)

	w := doRequest(router, http.MethodGet, "/v1/organisations", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, store.lastSession)
	assert.True(t, store.lastSession.committed)
	assert.False(t, store.lastSession.rolledBack)
}

func TestTransactionRollbackOnError(t *testing.T) {
	store := newFakeStore()
	router := newTestRouter(store)

	w := doRequest(router, http.MethodGet, "/v1/organisations/999", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.NotNil(t, store.lastSession)
	assert.False(t, store.lastSession.committed)
	assert.True(t, store.lastSession.rolledBack)
}

func TestTransactionBeginFailure(t *testing.T) {
	store := newFakeStore()
	store.beginErr = assert.AnError
	router := newTestRouter(store)

	w := doRequest(router, http.MethodGet, "/v1/organisations", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
