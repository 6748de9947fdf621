package service

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/uni-timetable-api/internal/models"
)

func TestMetricsServiceObserveRun(t *testing.T) {
	m := NewMetricsService()

	m.ObserveRun(models.SchedulingRun{Outcome: models.SchedulingRunSucceeded, TotalComponents: 4, ScheduledComponents: 3, WarningCount: 2, OptimizerMoves: 5, DurationMs: 20})
	m.ObserveRun(models.SchedulingRun{Outcome: models.SchedulingRunRejected, CacheHit: true})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.runTotal.WithLabelValues("SUCCEEDED", "false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.runTotal.WithLabelValues("REJECTED", "true")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.runWarnings))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.optimizerMoves))
}

func TestMetricsServiceCacheRatio(t *testing.T) {
	m := NewMetricsService()

	m.RecordCacheOperation(true, time.Millisecond)
	m.RecordCacheOperation(false, time.Millisecond)
	m.RecordCacheOperation(false, time.Millisecond)
	m.RecordCacheOperation(true, time.Millisecond)

	assert.Equal(t, 0.5, testutil.ToFloat64(m.cacheHitRatio))
}

func TestMetricsServiceHandler(t *testing.T) {
	m := NewMetricsService()
	m.ObserveHTTPRequest(http.MethodPost, "/api/schedule", http.StatusOK, 10*time.Millisecond)
	m.ObserveRun(models.SchedulingRun{Outcome: models.SchedulingRunSucceeded, TotalComponents: 1, ScheduledComponents: 1})

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `http_requests_total{method="POST",path="/api/schedule",status="200"} 1`)
	assert.Contains(t, w.Body.String(), `timetable_runs_total{cached="false",outcome="SUCCEEDED"} 1`)
}

func TestMetricsServiceNilSafe(t *testing.T) {
	var m *MetricsService

	m.ObserveRun(models.SchedulingRun{})
	m.RecordCacheOperation(true, 0)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
