package metrics_test

import (
	"testing"
	"time"

	"github.com/AndrewDonelson/persistent/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoop_AllMethods(t *testing.T) {
	n := metrics.Noop{}
	n.RecordLoad("keybindings", metrics.SourceStorage)
	n.RecordPersist("keybindings", 42)
	n.RecordLatency("keybindings", "persist", 100*time.Millisecond)
	n.RecordError("keybindings", "load")
}

func TestPrometheus_Records(t *testing.T) {
	reg := prometheus.NewRegistry()
	p, err := metrics.NewPrometheus("persistent", reg)
	require.NoError(t, err)

	p.RecordLoad("keybindings", metrics.SourceDefault)
	p.RecordLoad("keybindings", metrics.SourceStorage)
	p.RecordLoad("keybindings", metrics.SourceStorage)
	p.RecordPersist("keybindings", 30)
	p.RecordPersist("keybindings", 36)
	p.RecordLatency("keybindings", "persist", 2*time.Millisecond)
	p.RecordError("keybindings", "reload")

	assert.Equal(t, 2, mustCount(t, reg, "persistent_loads_total"))
	assert.Equal(t, 1, mustCount(t, reg, "persistent_operation_latency_milliseconds"))

	mfs, err := reg.Gather()
	require.NoError(t, err)
	values := map[string]float64{}
	for _, mf := range mfs {
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				values[mf.GetName()] += m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				values[mf.GetName()] = m.GetGauge().GetValue()
			}
		}
	}
	assert.Equal(t, 3.0, values["persistent_loads_total"])
	assert.Equal(t, 2.0, values["persistent_persists_total"])
	assert.Equal(t, 36.0, values["persistent_persisted_bytes"])
	assert.Equal(t, 1.0, values["persistent_errors_total"])
}

func TestPrometheus_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := metrics.NewPrometheus("persistent", reg)
	require.NoError(t, err)
	_, err = metrics.NewPrometheus("persistent", reg)
	assert.Error(t, err)
}

func mustCount(t *testing.T, reg *prometheus.Registry, name string) int {
	t.Helper()
	n, err := testutil.GatherAndCount(reg, name)
	require.NoError(t, err)
	return n
}
