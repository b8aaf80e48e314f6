package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"admin-datagrid/internal/fixture/repository/memory"
	"admin-datagrid/internal/fixture/usecase"
	"admin-datagrid/internal/model"
	"admin-datagrid/pkg/log"
)

func newServer(t *testing.T, env string, ratePerMin int) *HTTPServer {
	t.Helper()
	l := log.NewNop()
	uc, err := usecase.New(l, memory.New(l), model.Descriptors())
	require.NoError(t, err)
	require.NoError(t, uc.Seed(context.Background(), 3))

	srv, err := New(l, Config{
		Logger:          l,
		Port:            8080,
		Mode:            gin.TestMode,
		Environment:     env,
		RateLimitPerMin: ratePerMin,
		FixtureUseCase:  uc,
		Descriptors:     model.Descriptors(),
	})
	require.NoError(t, err)
	return srv
}

func serve(srv *HTTPServer, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestNewValidation(t *testing.T) {
	_, err := New(log.NewNop(), Config{Mode: gin.TestMode, Port: 8080})
	assert.Error(t, err, "missing use case")

	_, err = New(log.NewNop(), Config{Mode: gin.TestMode})
	assert.Error(t, err, "missing port")
}

func TestSystemRoutes(t *testing.T) {
	srv := newServer(t, string(model.EnvironmentDevelopment), 0)

	for path, status := range map[string]string{"/health": "healthy", "/ready": "ready", "/live": "alive"} {
		w := serve(srv, path)
		require.Equal(t, http.StatusOK, w.Code, path)

		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, status, body["status"], path)
		assert.Equal(t, ServiceName, body["service"], path)
	}

	assert.NotEqual(t, http.StatusNotFound, serve(srv, "/swagger/index.html").Code)
}

func TestReadyListsCollections(t *testing.T) {
	srv := newServer(t, string(model.EnvironmentDevelopment), 0)

	w := serve(srv, "/ready")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Status      string             `json:"status"`
		Environment string             `json:"environment"`
		Collections []collectionStatus `json:"collections"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ready", body.Status)
	assert.Equal(t, string(model.EnvironmentDevelopment), body.Environment)
	require.Len(t, body.Collections, len(model.Descriptors()))

	for i, d := range model.Descriptors() {
		assert.Equal(t, d.Name, body.Collections[i].Name)
		assert.Equal(t, "/api/v1"+d.Route, body.Collections[i].Route)
		assert.Equal(t, d.ReadOnly, body.Collections[i].ReadOnly)
	}
}

func TestReadyWithoutCollections(t *testing.T) {
	l := log.NewNop()
	uc, err := usecase.New(l, memory.New(l), model.Descriptors())
	require.NoError(t, err)
	srv, err := New(l, Config{
		Logger:         l,
		Port:           8080,
		Mode:           gin.TestMode,
		Environment:    string(model.EnvironmentDevelopment),
		FixtureUseCase: uc,
	})
	require.NoError(t, err)

	w := serve(srv, "/ready")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "not_ready", body["status"])
}

func TestProductionHidesSwagger(t *testing.T) {
	srv := newServer(t, string(model.EnvironmentProduction), 0)
	assert.Equal(t, http.StatusNotFound, serve(srv, "/swagger/index.html").Code)
}

func TestCollectionsMounted(t *testing.T) {
	srv := newServer(t, string(model.EnvironmentDevelopment), 0)

	for _, d := range model.Descriptors() {
		w := serve(srv, "/api/v1"+d.Route)
		require.Equal(t, http.StatusOK, w.Code, d.Route)
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Len(t, body[d.ItemsField], 3, d.Route)
	}
}

func TestRateLimitOnlyGuardsAPI(t *testing.T) {
	srv := newServer(t, string(model.EnvironmentDevelopment), 10)

	assert.Equal(t, http.StatusOK, serve(srv, "/api/v1/products").Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(srv, "/api/v1/products").Code)
	assert.Equal(t, http.StatusOK, serve(srv, "/health").Code)
}
