package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordActivityWrite(t *testing.T) {
	before := testutil.ToFloat64(activityWrites.WithLabelValues("delete"))

	RecordActivityWrite("delete", 3)
	RecordActivityWrite("delete", 0)

	assert.Equal(t, before+3, testutil.ToFloat64(activityWrites.WithLabelValues("delete")))
}

func TestRecordCanonicalization(t *testing.T) {
	merged := testutil.ToFloat64(canonicalizations.WithLabelValues(OutcomeMerged))
	unchanged := testutil.ToFloat64(canonicalizations.WithLabelValues(OutcomeUnchanged))

	RecordCanonicalization(true)
	RecordCanonicalization(false)
	RecordCanonicalization(false)

	assert.Equal(t, merged+1, testutil.ToFloat64(canonicalizations.WithLabelValues(OutcomeMerged)))
	assert.Equal(t, unchanged+2, testutil.ToFloat64(canonicalizations.WithLabelValues(OutcomeUnchanged)))
}

func TestObserveAnalytics(t *testing.T) {
	ObserveAnalytics("dashboard", time.Now().Add(-10*time.Millisecond))

	m := &dto.Metric{}
	h, ok := analyticsDuration.WithLabelValues("dashboard").(interface{ Write(*dto.Metric) error })
	require.True(t, ok)
	require.NoError(t, h.Write(m))
	assert.GreaterOrEqual(t, m.GetHistogram().GetSampleCount(), uint64(1))
	assert.Greater(t, m.GetHistogram().GetSampleSum(), 0.0)
}

func TestObserveHTTPRequestUnmatchedRoute(t *testing.T) {
	before := testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "unmatched", "404"))

	ObserveHTTPRequest(http.MethodGet, "", http.StatusNotFound, time.Millisecond)

	assert.Equal(t, before+1, testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "unmatched", "404")))
}

func TestHandlerExposesCollectors(t *testing.T) {
	RecordPublishFailure("activity.logged")

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), `energy_events_publish_failures_total{type="activity.logged"}`))
}
