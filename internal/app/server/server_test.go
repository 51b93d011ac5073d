package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leavedesk/internal/platform/config"
)

func testConfig() config.Config {
	return config.Config{
		Addr:               "127.0.0.1:0",
		Environment:        "test",
		RunSeed:            true,
		MaxBodyBytes:       4096,
		RateLimitPerMinute: 600,
		RequestIDPrefix:    "LR",
		RequestIDSeed:      1000,
		MetricsEnabled:     true,
		ShutdownTimeout:    time.Second,
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewSeedsSampleData(t *testing.T) {
	app, err := New(testConfig(), quietLogger())
	require.NoError(t, err)

	assert.Len(t, app.Registry.Employees(), 4)
	assert.Len(t, app.Registry.Requests(), 3)
	_, ok := app.Registry.Request("LR1001")
	assert.True(t, ok)
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Environment = "production"
	_, err := New(cfg, quietLogger())
	require.Error(t, err)
}

func TestRouterEndToEnd(t *testing.T) {
	app, err := New(testConfig(), quietLogger())
	require.NoError(t, err)
	ts := httptest.NewServer(app.Router)
	defer ts.Close()

	resp, err := ts.Client().Get(ts.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))

	resp, err = ts.Client().Post(ts.URL+"/api/v1/leave/requests/LR1001/approve", "application/json", strings.NewReader(`{"comment":"Approved"}`))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-RateLimit-Limit"))

	emp, ok := app.Registry.Employee("EMP001")
	require.True(t, ok)
	assert.Equal(t, 20, emp.Balances["ANNUAL"])

	resp, err = ts.Client().Get(ts.URL + "/api/v1/nowhere")
	require.NoError(t, err)
	var env struct {
		Success bool `json:"success"`
		Error   struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "not_found", env.Error.Code)

	resp, err = ts.Client().Get(ts.URL + "/metrics")
	require.NoError(t, err)
	var metricsEnv struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&metricsEnv))
	resp.Body.Close()
	assert.GreaterOrEqual(t, metricsEnv.Data["requestsTotal"].(float64), float64(3))
	assert.GreaterOrEqual(t, metricsEnv.Data["clientErrorTotal"].(float64), float64(1))
}

func TestMetricsDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.MetricsEnabled = false
	app, err := New(cfg, quietLogger())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBodyLimitRejectsLargePayload(t *testing.T) {
	app, err := New(testConfig(), quietLogger())
	require.NoError(t, err)

	body := bytes.Repeat([]byte("x"), 8192)
	payload := `{"employeeId":"EMP001","category":"ANNUAL","startDate":"2025-03-01","endDate":"2025-03-01","reason":"` + string(body) + `"}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/leave/requests", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	app.Router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestServeShutsDownOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	cfg := testConfig()
	cfg.Addr = addr
	app, err := New(cfg, quietLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Serve(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/healthz")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not shut down")
	}
}
