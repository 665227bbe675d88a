package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	m := New()

	m.CandlesGenerated.WithLabelValues("1m").Add(50)
	m.Ticks.WithLabelValues("AAPL", "1m").Inc()
	m.Fills.WithLabelValues("BUY").Inc()
	m.Subscribers.Inc()

	assert.Equal(t, 50.0, testutil.ToFloat64(m.CandlesGenerated.WithLabelValues("1m")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Ticks.WithLabelValues("AAPL", "1m")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Subscribers))

	families, err := m.Registry.Gather()
	require.NoError(t, err)
	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["marketsim_generator_candles_total"])
	assert.True(t, names["marketsim_blotter_fills_total"])
}

func TestIndependentRegistries(t *testing.T) {
	a, b := New(), New()
	a.GenerateErrors.Inc()
	assert.Equal(t, 0.0, testutil.ToFloat64(b.GenerateErrors))
}
