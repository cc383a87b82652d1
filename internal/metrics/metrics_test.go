package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilMetricsAreSafe(t *testing.T) {
	var m *SimMetrics
	assert.NotPanics(t, func() {
		m.ObserveTick(10, 20)
		m.IncWatchdogReset("editing")
		m.IncGatewayFallback("details")
		m.IncRejected("busy")
		m.IncPublished()
		m.SetCareer(1, 2, 3)
	})
}

func TestSimRecords(t *testing.T) {
	m := Sim()
	require.Same(t, m, Sim())

	ticks := testutil.ToFloat64(m.ticks)
	views := testutil.ToFloat64(m.views)
	m.ObserveTick(12, 0)
	m.ObserveTick(0, 0)
	assert.Equal(t, ticks+2, testutil.ToFloat64(m.ticks))
	assert.Equal(t, views+12, testutil.ToFloat64(m.views))

	resets := testutil.ToFloat64(m.watchdogResets.WithLabelValues("unknown"))
	m.IncWatchdogReset("")
	assert.Equal(t, resets+1, testutil.ToFloat64(m.watchdogResets.WithLabelValues("unknown")))

	m.SetCareer(1234, 7, 3)
	assert.Equal(t, 1234.0, testutil.ToFloat64(m.subscribers))
	assert.Equal(t, 7.0, testutil.ToFloat64(m.day))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.level))
}
