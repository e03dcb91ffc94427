package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordRequest(t *testing.T) {
	m := New()

	m.RecordRequest(OutcomeOK)
	m.RecordRequest(OutcomeOK)
	m.RecordRequest(OutcomeServiceFailure)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues(OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues(OutcomeServiceFailure)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues(OutcomeInvalidRequest)))
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New()
	m.RecordRequest(OutcomeInvalidRequest)
	m.ObserveCompletion(150 * time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `process_text_requests_total{outcome="invalid_request"} 1`)
	assert.Contains(t, string(body), "process_text_completion_duration_seconds_count 1")
}
