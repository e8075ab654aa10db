package httpserver_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakalivres/notifymail/pkg/httpserver"
	"github.com/stakalivres/notifymail/pkg/requestid"
)

func get(t *testing.T, h http.Handler, path string) (int, string) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	body, err := io.ReadAll(rec.Result().Body)
	require.NoError(t, err)
	return rec.Code, string(body)
}

func TestOpsRouter_Probes(t *testing.T) {
	t.Parallel()

	ready := true
	h := httpserver.NewOpsRouter(
		httpserver.WithReadinessCheck("postgres", func(context.Context) error {
			if !ready {
				return errors.New("connection refused")
			}
			return nil
		}),
	)

	code, body := get(t, h, "/healthz")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ALIVE", body)

	code, body = get(t, h, "/readyz")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "READY", body)

	ready = false
	code, body = get(t, h, "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "NOT_READY", body)

	code, _ = get(t, h, "/metrics")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestOpsRouter_MetricsAndStatus(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "email_test_total", Help: "test"})
	reg.MustRegister(counter)
	counter.Add(3)

	h := httpserver.NewOpsRouter(
		httpserver.WithMetrics(reg),
		httpserver.WithStatus(func() any { return map[string]int{"queue_length": 2} }),
	)

	code, body := get(t, h, "/metrics")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "email_test_total 3")

	code, body = get(t, h, "/status")
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"queue_length":2}`, body)
}

func TestHealthCheckHandler_NilLogger(t *testing.T) {
	t.Parallel()

	h := httpserver.HealthCheckHandler(nil, httpserver.Check{
		Name: "broken",
		Fn:   func(context.Context) error { return errors.New("down") },
	})
	code, _ := get(t, h, "/")
	assert.Equal(t, http.StatusServiceUnavailable, code)
}

func TestOpsRouter_Mount(t *testing.T) {
	t.Parallel()

	h := httpserver.NewOpsRouter(
		httpserver.WithMount("/notifications", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("mounted " + r.URL.Path))
		})),
	)

	code, body := get(t, h, "/notifications/u1")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "mounted /notifications/u1", body)
}

func TestOpsRouter_RequestID(t *testing.T) {
	t.Parallel()

	var seen string
	h := httpserver.NewOpsRouter(
		httpserver.WithMount("/notifications", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = requestid.FromContext(r.Context())
		})),
	)

	req := httptest.NewRequest(http.MethodGet, "/notifications/u1", nil)
	req.Header.Set(requestid.Header, "req-42")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "req-42", seen)
	assert.Equal(t, "req-42", rec.Header().Get(requestid.Header))
}
