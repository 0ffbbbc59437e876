package internal

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/2beens/blueprintfitness/internal/config"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, mcpEnabled bool) *Server {
	t.Helper()
	s, err := NewServer(NewServerParams{
		Config: &config.Config{
			AllowedOrigins: []string{"http://localhost:8080"},
			MCPEnabled:     mcpEnabled,
		},
		VersionInfo: "test-version",
	})
	require.NoError(t, err)
	return s
}

func TestNewServer_MissingConfig(t *testing.T) {
	_, err := NewServer(NewServerParams{})
	assert.Error(t, err)
}

func TestServer_Health(t *testing.T) {
	s := newTestServer(t, false)
	router := s.routerSetup()

	req := httptest.NewRequest("GET", "/health", nil)
	req.Header.Set("User-Agent", "test-agent")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","version":"test-version"}`, rec.Body.String())
	assert.Equal(t, 1.0, testutil.ToFloat64(s.metricsManager.CounterRequests.WithLabelValues("GET", "200")))
}

func TestServer_Version(t *testing.T) {
	s := newTestServer(t, false)
	router := s.routerSetup()

	req := httptest.NewRequest("GET", "/version", nil)
	req.Header.Set("User-Agent", "test-agent")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "test-version", rec.Body.String())
}

func TestServer_UnknownPath(t *testing.T) {
	s := newTestServer(t, false)
	router := s.routerSetup()

	req := httptest.NewRequest("GET", "/nowhere", nil)
	req.Header.Set("User-Agent", "test-agent")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"not found"}`, rec.Body.String())
	assert.Equal(t, 1.0, testutil.ToFloat64(s.metricsManager.CounterRequests.WithLabelValues("GET", "404")))
}

func TestServer_PreviewThroughRouter(t *testing.T) {
	s := newTestServer(t, false)
	router := s.routerSetup()

	body := `{"configuration":{"type":"drop","startCounts":{"min":10},"drops":{"min":2}},"profileId":"p1"}`
	req := httptest.NewRequest("POST", "/configurations/preview", bytes.NewBufferString(body))
	req.Header.Set("Origin", "http://localhost:8080")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "http://localhost:8080", rec.Header().Get("Access-Control-Allow-Origin"))

	var preview map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &preview))
	assert.Equal(t, "drop", preview["type"])
	assert.Equal(t, float64(3), preview["totalSets"])
}

func TestServer_CorsRejected(t *testing.T) {
	s := newTestServer(t, false)
	router := s.routerSetup()

	req := httptest.NewRequest("POST", "/configurations/preview", bytes.NewBufferString(`{}`))
	req.Header.Set("Origin", "https://evil.example")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestServer_MCPMountedOnlyWhenEnabled(t *testing.T) {
	for _, enabled := range []bool{false, true} {
		s := newTestServer(t, enabled)
		router := s.routerSetup()

		req := httptest.NewRequest("GET", "/mcp", nil)
		req.Header.Set("User-Agent", "test-agent")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if enabled {
			assert.NotEqual(t, http.StatusNotFound, rec.Code)
		} else {
			assert.Equal(t, http.StatusNotFound, rec.Code)
		}
	}
}

func TestServer_GracefulShutdownWithoutServe(t *testing.T) {
	s := newTestServer(t, false)
	assert.NotPanics(t, s.GracefulShutdown)
	assert.Equal(t, 0.0, testutil.ToFloat64(s.metricsManager.GaugeLifeSignal))
}
