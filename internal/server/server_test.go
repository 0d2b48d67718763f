package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/boardtree/pkg/design"
	bterrors "github.com/matzehuels/boardtree/pkg/errors"
	"github.com/matzehuels/boardtree/pkg/observability"
	"github.com/matzehuels/boardtree/pkg/pipeline"
)

const boardJSON = `{
  "name": "demo",
  "nodes": [
    {"key": "board", "absolute": {"x": 10, "y": 10, "layer": "TOP"}},
    {"key": "reg", "parent": "board", "component": "ldo", "relative": {"x": 5, "y": 0}}
  ]
}`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := log.New(io.Discard)
	srv := httptest.NewServer(New(pipeline.NewRunner(nil, nil, logger), logger).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, url, contentType, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, contentType, strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeError(t *testing.T, resp *http.Response) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, body["version"])
	assert.Contains(t, body, "commit")
	assert.NotEmpty(t, resp.Header.Get("Content-Type"))
}

func TestPlace(t *testing.T) {
	srv := newTestServer(t)
	resp := post(t, srv.URL+"/v1/place", "application/json", boardJSON)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "MISS", resp.Header.Get("X-Cache"))

	var rep design.Report
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rep))
	assert.Equal(t, "demo", rep.Design)
	require.Len(t, rep.Placements, 2)
	reg, ok := rep.Placement("reg")
	require.True(t, ok)
	assert.Equal(t, 15.0, reg.X)
	assert.Equal(t, 10.0, reg.Y)
	assert.Equal(t, "TOP", reg.Layer)
}

func TestPlaceTOML(t *testing.T) {
	srv := newTestServer(t)
	body := `
[[nodes]]
key = "board"
[nodes.absolute]
x = 1.0
y = 2.0
layer = "BOTTOM"
`
	resp := post(t, srv.URL+"/v1/place", "application/toml", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var rep design.Report
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rep))
	require.Len(t, rep.Placements, 1)
	assert.Equal(t, "BOTTOM", rep.Placements[0].Layer)
}

func TestPlaceErrors(t *testing.T) {
	srv := newTestServer(t)
	tests := []struct {
		name       string
		query      string
		body       string
		wantStatus int
		wantCode   bterrors.Code
	}{
		{
			name:       "Malformed",
			body:       `{"nodes":`,
			wantStatus: http.StatusBadRequest,
			wantCode:   bterrors.ErrCodeInvalidFormat,
		},
		{
			name:       "Cycle",
			body:       `{"nodes":[{"key":"a","parent":"b"},{"key":"b","parent":"a"}]}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   bterrors.ErrCodeCycle,
		},
		{
			name:       "UnknownParent",
			body:       `{"nodes":[{"key":"a","parent":"ghost"}]}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   bterrors.ErrCodeNodeNotFound,
		},
		{
			name:       "StrictUnresolved",
			query:      "?strict=true",
			body:       `{"nodes":[{"key":"root"},{"key":"c1","parent":"root","designator":"C"}]}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   bterrors.ErrCodeUnresolvedPosition,
		},
		{
			name:       "StrictNoParent",
			query:      "?strict=1",
			body:       `{"nodes":[{"key":"loose","relative":{"x":1,"y":1}}]}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   bterrors.ErrCodeNoParent,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, srv.URL+"/v1/place"+tt.query, "application/json", tt.body)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			body := decodeError(t, resp)
			assert.Equal(t, tt.wantCode, body.Code)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestPlaceBodyTooLarge(t *testing.T) {
	logger := log.New(io.Discard)
	h := New(pipeline.NewRunner(nil, nil, logger), logger).Handler()

	big := `{"name":"` + strings.Repeat("x", MaxBodyBytes) + `","nodes":[{"key":"a"}]}`
	req := httptest.NewRequest(http.MethodPost, "/v1/place", strings.NewReader(big))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body errorBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, bterrors.ErrCodeInvalidInput, body.Code)
}

func TestRenderDOT(t *testing.T) {
	srv := newTestServer(t)
	resp := post(t, srv.URL+"/v1/render?detailed=true", "application/json", boardJSON)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "graphviz")

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"board" -> "reg";`)
	assert.Contains(t, string(data), "(15, 10, 0°, TOP)")
}

func TestRenderBadFormat(t *testing.T) {
	srv := newTestServer(t)
	resp := post(t, srv.URL+"/v1/render?format=png", "application/json", boardJSON)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, bterrors.ErrCodeInvalidFormat, decodeError(t, resp).Code)
}

func TestStats(t *testing.T) {
	counters := observability.NewCounters()
	observability.SetPlacementHooks(counters)
	t.Cleanup(observability.Reset)

	logger := log.New(io.Discard)
	srv := httptest.NewServer(New(pipeline.NewRunner(nil, nil, logger), logger).WithStats(counters).Handler())
	t.Cleanup(srv.Close)

	resp := post(t, srv.URL+"/v1/place", "application/json", boardJSON)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	stats, err := http.Get(srv.URL + "/v1/stats")
	require.NoError(t, err)
	defer stats.Body.Close()
	require.Equal(t, http.StatusOK, stats.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(stats.Body).Decode(&body))
	assert.EqualValues(t, 1, body["resolves"])
	assert.EqualValues(t, 2, body["placed"])
	assert.Contains(t, body, "cache_hit_ratio")
}

func TestStatsDisabled(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/v1/stats")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/v1/place")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestStatusFor(t *testing.T) {
	tests := map[bterrors.Code]int{
		bterrors.ErrCodeInvalidInput:       http.StatusBadRequest,
		bterrors.ErrCodeInvalidDesign:      http.StatusUnprocessableEntity,
		bterrors.ErrCodeUnresolvedPosition: http.StatusUnprocessableEntity,
		bterrors.ErrCodeFileNotFound:       http.StatusNotFound,
		bterrors.ErrCodeUnsupported:        http.StatusNotImplemented,
		bterrors.ErrCodeInternal:           http.StatusInternalServerError,
	}
	for code, want := range tests {
		assert.Equal(t, want, statusFor(code), "code %s", code)
	}
}
