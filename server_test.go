package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter() http.Handler {
	return newRouter(NewDefaultConfig(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func doRequest(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeConversion(t *testing.T, rec *httptest.ResponseRecorder) conversionResponse {
	t.Helper()
	var resp conversionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestHealthLive(t *testing.T) {
	rec := doRequest(t, newTestRouter(), http.MethodGet, "/health/live", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestParseEndpoint(t *testing.T) {
	rec := doRequest(t, newTestRouter(), http.MethodPost, "/api/parse", sampleProgram)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	resp := decodeConversion(t, rec)
	require.Len(t, resp.Path, 3)
	assert.Equal(t, -55.0, resp.Path[0].X)
	assert.Contains(t, resp.Code, "chassis.moveToPoint(48.2, -72, 1000, { .forwards = false, .maxSpeed = 90 });")

	shared, _, err := DecodeShareURL(resp.Share, defaultShareParam)
	require.NoError(t, err)
	assert.Equal(t, resp.Path, shared)
}

func TestParseEndpointRejectsBadAttributes(t *testing.T) {
	rec := doRequest(t, newTestRouter(), http.MethodPost, "/api/parse", "chassis.moveToPoint(1, 2, 3, { speed = 1 });")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "line 1")
}

func TestGenerateEndpoint(t *testing.T) {
	h := newTestRouter()

	rec := doRequest(t, h, http.MethodPost, "/api/generate", `{"path":[{"x":-55,"y":16.5,"radians":0},{"x":1,"y":2,"timeout":500}]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeConversion(t, rec)
	assert.Equal(t, "chassis.setPose(16.5, -55, 0);\nchassis.moveToPoint(2, 1, 500);\n", resp.Code)

	rec = doRequest(t, h, http.MethodPost, "/api/generate", `{"path":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, h, http.MethodPost, "/api/generate", `{"path":[{"x":1,"timeout":-5}]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestShareEndpoint(t *testing.T) {
	h := newTestRouter()
	payload, err := EncodeShare([]Waypoint{{X: 3, Y: 4}, {X: 5, Y: 6, Timeout: 1000}})
	require.NoError(t, err)

	rec := doRequest(t, h, http.MethodGet, "/api/share?tab=code&path="+url.QueryEscape(payload), "")
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeConversion(t, rec)
	assert.Len(t, resp.Path, 2)
	assert.Equal(t, "/api/share?tab=code", resp.URL)
	assert.Equal(t, "chassis.setPose(4, 3, 0);\nchassis.moveToPoint(6, 5, 1000);\n", resp.Code)

	rec = doRequest(t, h, http.MethodGet, "/api/share", "")
	require.Equal(t, http.StatusOK, rec.Code)
	resp = decodeConversion(t, rec)
	assert.Empty(t, resp.Path)
	assert.Empty(t, resp.Code)

	rec = doRequest(t, h, http.MethodGet, "/api/share?path=%21%21", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
