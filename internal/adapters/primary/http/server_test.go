package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fredcamaral/mdpptx/internal/adapters/secondary/monitoring"
	"github.com/fredcamaral/mdpptx/internal/adapters/secondary/parser"
	"github.com/fredcamaral/mdpptx/internal/adapters/secondary/pptx"
	"github.com/fredcamaral/mdpptx/internal/adapters/secondary/theme"
	"github.com/fredcamaral/mdpptx/internal/domain/entities"
	"github.com/fredcamaral/mdpptx/internal/domain/services"
)

func newPipelineServer(opts ...Option) *Server {
	themes := theme.NewResolver()
	converter := services.NewConversionService(
		parser.NewGoldmarkExtractor(),
		services.NewSegmenter(),
		themes,
		pptx.NewAssembler(),
	)
	config := getTestServerConfig()
	config.MaxBodyBytes = 1 << 20
	return NewServer(converter, themes, config, opts...)
}

func TestConvertRoundTrip(t *testing.T) {
	ts := httptest.NewServer(newPipelineServer().Handler())
	defer ts.Close()

	payload, err := json.Marshal(ConvertRequest{
		Template: "professional",
		Output:   "roadmap",
		Documents: []DocumentRequest{
			{Name: "a.md", Content: "---\ntitle: Roadmap\nauthor: Ada\n---\n# Goals\n\n- ship\n- measure\n"},
			{Name: "b.md", Content: "# Risks\n\n| Risk | Owner |\n|---|---|\n| scope | Ada |\n"},
		},
	})
	require.NoError(t, err)

	resp, err := http.Post(ts.URL+"/api/convert", "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, PPTXContentType, resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "roadmap.pptx")

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	report, err := pptx.NewInspector().Inspect(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	assert.Equal(t, "Roadmap", report.Title)
	assert.Equal(t, "Ada", report.Author)
	require.Len(t, report.Slides, 2)
	assert.Equal(t, "Goals", report.Slides[0].Title)
	assert.Equal(t, "Risks", report.Slides[1].Title)
}

func TestConvertInvalidUTF8Body(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/convert", strings.NewReader("# T\n\nbad \xff\xfe byte"))
	req.Header.Set("Content-Type", "text/markdown")
	newPipelineServer().Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	data := rec.Body.Bytes()
	report, err := pptx.NewInspector().Inspect(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.Len(t, report.Slides, 1)
	assert.Equal(t, "T", report.Slides[0].Title)
	assert.Contains(t, report.Slides[0].Text, "bad \uFFFD byte")
}

func TestStatsEndpoint(t *testing.T) {
	t.Run("absent without a monitor", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newPipelineServer().Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/stats", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("counts conversions and requests", func(t *testing.T) {
		handler := newPipelineServer(WithMonitor(monitoring.NewMonitor())).Handler()

		for _, body := range []string{"# One\n\n<!-- notes: hi -->", ""} {
			req := httptest.NewRequest(http.MethodPost, "/api/convert", strings.NewReader(body))
			req.Header.Set("Content-Type", "text/markdown")
			handler.ServeHTTP(httptest.NewRecorder(), req)
		}

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/stats", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var stats entities.RuntimeStats
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&stats))
		assert.Equal(t, int64(2), stats.Conversions)
		assert.Equal(t, int64(1), stats.Failures)
		assert.Equal(t, int64(1), stats.FailuresBy[string(entities.ErrorEmptyInput)])
		assert.Equal(t, int64(1), stats.Artifacts)
		assert.Positive(t, stats.BytesWritten)
		assert.Equal(t, int64(3), stats.HTTPRequests)
	})
}

func TestConvertUnknownTemplateOverHTTP(t *testing.T) {
	ts := httptest.NewServer(newPipelineServer().Handler())
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/api/convert?template=neon", "text/markdown", strings.NewReader("# Hi"))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, entities.ErrorUnknownTemplate, body.Kind)
}

func TestCORS(t *testing.T) {
	ts := httptest.NewServer(newPipelineServer().Handler())
	defer ts.Close()

	preflight := func(origin string) *http.Response {
		req, err := http.NewRequest(http.MethodOptions, ts.URL+"/api/convert", nil)
		require.NoError(t, err)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		_ = resp.Body.Close()
		return resp
	}

	assert.Equal(t, "http://localhost:3000", preflight("http://localhost:3000").Header.Get("Access-Control-Allow-Origin"))
	assert.Empty(t, preflight("http://evil.example").Header.Get("Access-Control-Allow-Origin"))
}

func TestServerLifecycle(t *testing.T) {
	server := newPipelineServer()
	ctx := context.Background()

	assert.False(t, server.IsRunning())
	assert.Error(t, server.Stop(ctx))

	require.NoError(t, server.Start(ctx, 0, "127.0.0.1"))
	assert.True(t, server.IsRunning())
	assert.Error(t, server.Start(ctx, 0, "127.0.0.1"), "second start fails")

	resp, err := http.Get("http://" + server.Addr() + "/health")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, server.Stop(ctx))
	assert.False(t, server.IsRunning())
	assert.Empty(t, server.Addr())
}

func TestServeStopsOnCancel(t *testing.T) {
	server := newPipelineServer()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- server.Serve(ctx, "127.0.0.1", 0) }()

	require.Eventually(t, server.IsRunning, 2*time.Second, 10*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancellation")
	}
	assert.False(t, server.IsRunning())
}

func TestServeBindFailure(t *testing.T) {
	blocker := newPipelineServer()
	require.NoError(t, blocker.Start(context.Background(), 0, "127.0.0.1"))
	defer func() { _ = blocker.Stop(context.Background()) }()

	addr := blocker.Addr()
	port := addr[strings.LastIndex(addr, ":")+1:]

	p, err := strconv.Atoi(port)
	require.NoError(t, err)

	err = newPipelineServer().Serve(context.Background(), "127.0.0.1", p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listening on")
}
