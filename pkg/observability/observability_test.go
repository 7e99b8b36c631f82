package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorageFallbackCounterCarriesReason(t *testing.T) {
	m := NewMetrics()
	m.StorageFallbacksTotal.WithLabelValues("scholarship", "list", "connection refused").Inc()

	got := testutil.ToFloat64(m.StorageFallbacksTotal.WithLabelValues("scholarship", "list", "connection refused"))
	assert.Equal(t, 1.0, got)
	other := testutil.ToFloat64(m.StorageFallbacksTotal.WithLabelValues("scholarship", "list", "timeout"))
	assert.Zero(t, other)
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, DebugLevel, ParseLogLevel("debug"))
	assert.Equal(t, WarnLevel, ParseLogLevel("WARNING"))
	assert.Equal(t, ErrorLevel, ParseLogLevel("error"))
	assert.Equal(t, InfoLevel, ParseLogLevel(""))
	assert.Equal(t, InfoLevel, ParseLogLevel("verbose"))
}

func TestLoggerEmitsJSONWithFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(InfoLevel, &buf)

	logger.WithField("kind", "scholarship").WithError(errors.New("boom")).Warn("fallback engaged")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "fallback engaged", entry["msg"])
	assert.Equal(t, "scholarship", entry["kind"])
	assert.Equal(t, "boom", entry["error"])
}

func TestLoggerLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(WarnLevel, &buf)
	logger.Info("suppressed")
	assert.Zero(t, buf.Len())
	logger.Warn("emitted")
	assert.NotZero(t, buf.Len())
}

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-42")
	assert.Equal(t, "req-42", GetRequestID(ctx))
	assert.Empty(t, GetRequestID(context.Background()))
}

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func probe(t *testing.T, handler http.HandlerFunc) HealthStatus {
	t.Helper()
	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var status HealthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	return status
}

func TestLivenessAlwaysHealthy(t *testing.T) {
	h := NewHealthChecker(nil)
	assert.Equal(t, StatusHealthy, probe(t, h.Liveness).Status)
}

func TestReadinessReflectsDurableStore(t *testing.T) {
	healthy := NewHealthChecker(pingFunc(func(ctx context.Context) error { return nil }))
	status := probe(t, healthy.Readiness)
	assert.Equal(t, StatusHealthy, status.Status)
	assert.Equal(t, StatusHealthy, status.Dependencies["postgres"])

	down := NewHealthChecker(pingFunc(func(ctx context.Context) error { return errors.New("refused") }))
	status = probe(t, down.Readiness)
	assert.Equal(t, StatusDegraded, status.Status, "degraded still answers 200, the ephemeral store serves")
	assert.Equal(t, "refused", status.Dependencies["postgres"])

	unconfigured := NewHealthChecker(nil)
	status = probe(t, unconfigured.Readiness)
	assert.Equal(t, StatusDegraded, status.Status)
}
