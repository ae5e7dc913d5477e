package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordOutcome(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordOutcome("login", OutcomeSuccess)
	c.RecordOutcome("login", OutcomeSuccess)
	c.RecordOutcome("login", OutcomeRejected)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.outcomes.WithLabelValues("login", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.outcomes.WithLabelValues("login", OutcomeRejected)))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.outcomes.WithLabelValues("register", OutcomeError)))
}

func TestHandler_ServesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordOutcome("register", OutcomeError)
	c.RecordLatency("register", 20*time.Millisecond)

	w := httptest.NewRecorder()
	Handler(reg).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	resp := w.Result()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `bbs_account_requests_total{flow="register",outcome="error"} 1`)
	assert.Contains(t, string(body), "bbs_account_request_duration_seconds")
}
