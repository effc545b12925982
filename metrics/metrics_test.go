package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Counters(t *testing.T) {
	r := NewRegistry()

	r.OrdersParsed.Add(3)
	r.RecordOutcome("approved")
	r.RecordOutcome("approved")
	r.RecordOutcome("ignored")
	r.RecordResolution("")

	assert.Equal(t, 3.0, testutil.ToFloat64(r.OrdersParsed))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.ReviewOutcomes.WithLabelValues("approved")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.ReviewOutcomes.WithLabelValues("ignored")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.CustomerResolved.WithLabelValues("created")))
}

func TestRegistry_Handler(t *testing.T) {
	r := NewRegistry()
	r.OrdersStaged.Inc()

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "crescer_import_orders_staged_total 1")
}
