package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_BusinessCounters(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry(), "test")

	m.ObserveBookingCreated("recurring", 3)
	m.ObserveBookingCreated("single", 1)
	m.ObserveBookingCreated("single", 0)
	m.ObserveBookingConflict()
	m.ObserveLeaveProcessed("approve")

	assert.Equal(t, 3.0, testutil.ToFloat64(m.BookingsCreated.WithLabelValues("recurring")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BookingsCreated.WithLabelValues("single")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BookingConflicts))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LeavesProcessed.WithLabelValues("approve")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveBookingCreated("single", 1)
		m.ObserveBookingConflict()
		m.ObserveLeaveProcessed("reject")
	})
}
