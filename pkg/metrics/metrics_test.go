package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitMetrics_Idempotent(t *testing.T) {
	InitMetrics()
	InitMetrics()

	require.NotNil(t, HTTPRequestsTotal)
	require.NotNil(t, SalesTotal)
	require.NotNil(t, CircuitBreakerState)
	require.NotNil(t, MessagesPublishedTotal)
}

func TestCounter(t *testing.T) {
	InitMetrics()

	before := testutil.ToFloat64(SalesTotal)
	IncCounter(SalesTotal)
	IncCounter(SalesTotal)
	assert.Equal(t, before+2, testutil.ToFloat64(SalesTotal))

	before = testutil.ToFloat64(UnitsRestockedTotal)
	AddCounter(UnitsRestockedTotal, 10)
	assert.Equal(t, before+10, testutil.ToFloat64(UnitsRestockedTotal))
}

func TestCounterVec(t *testing.T) {
	InitMetrics()

	labels := map[string]string{"method": "POST", "path": "/api/productos/:id/vender", "status": "200"}
	before := testutil.ToFloat64(HTTPRequestsTotal.With(labels))

	IncCounterVec(HTTPRequestsTotal, labels)
	IncCounterVec(HTTPRequestsTotal, map[string]string{"method": "GET", "path": "/api/productos", "status": "200"})
	IncCounterVec(HTTPRequestsTotal, labels)

	assert.Equal(t, before+2, testutil.ToFloat64(HTTPRequestsTotal.With(labels)))
}

func TestGauge(t *testing.T) {
	InitMetrics()

	before := testutil.ToFloat64(HTTPRequestsInProgress)
	IncGauge(HTTPRequestsInProgress)
	IncGauge(HTTPRequestsInProgress)
	DecGauge(HTTPRequestsInProgress)
	assert.Equal(t, before+1, testutil.ToFloat64(HTTPRequestsInProgress))
	DecGauge(HTTPRequestsInProgress)

	SetGaugeVec(CircuitBreakerState, map[string]string{"name": "events"}, 2)
	assert.Equal(t, 2.0, testutil.ToFloat64(CircuitBreakerState.WithLabelValues("events")))
}

func TestHistogram(t *testing.T) {
	InitMetrics()

	before := testutil.CollectAndCount(HTTPRequestDuration)
	ObserveHistogramVec(HTTPRequestDuration, map[string]string{"method": "GET", "path": "/api/ganancias"}, 0.02)
	assert.GreaterOrEqual(t, testutil.CollectAndCount(HTTPRequestDuration), before)

	ObserveHistogram(SaleAmount, 30)
	assert.Equal(t, 1, testutil.CollectAndCount(SaleAmount))
}
