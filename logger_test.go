package persistent_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/AndrewDonelson/persistent"
	"github.com/AndrewDonelson/persistent/internal/clock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLogger_LifecycleEvents(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	be := persistent.NewMemoryBackend()

	keys, err := persistent.New[KeyBindings]().
		Name("keys").Format(persistent.JSON).Path("keys.json").Default(defaultKeys).
		Backend(be).
		Logger(persistent.NewZapLogger(zap.New(core))).
		Build()
	require.NoError(t, err)
	require.NoError(t, keys.Update(func(k *KeyBindings) { k.Jump = "W" }))
	require.NoError(t, keys.Unload())

	require.NoError(t, be.Write(context.Background(), "keys.json", []byte("{")))
	require.Error(t, keys.Reload())

	var msgs []string
	for _, e := range logs.All() {
		msgs = append(msgs, e.Message)
	}
	assert.Equal(t, []string{
		"saved default",
		"saved",
		"saved",
		"unloaded",
		"failed to deserialize",
		"failed to reload due to a deserialization error",
	}, msgs)

	first := logs.All()[0]
	assert.Equal(t, zapcore.InfoLevel, first.Level)
	assert.Equal(t, "keys", first.ContextMap()["name"])
	assert.Equal(t, "backend:keys.json", first.ContextMap()["location"])

	warn := logs.FilterMessage("failed to deserialize").All()
	require.Len(t, warn, 1)
	assert.Equal(t, zapcore.WarnLevel, warn[0].Level)
	assert.Equal(t, "json", warn[0].ContextMap()["format"])
}

func TestZapLogger_Levels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := persistent.NewZapLogger(zap.New(core))
	l.Debug("d", "k", 1)
	l.Info("i")
	l.Warn("w")
	l.Error("e")
	require.NoError(t, l.Sync())

	levels := []zapcore.Level{}
	for _, e := range logs.All() {
		levels = append(levels, e.Level)
	}
	assert.Equal(t, []zapcore.Level{zapcore.DebugLevel, zapcore.InfoLevel, zapcore.WarnLevel, zapcore.ErrorLevel}, levels)
	assert.EqualValues(t, 1, logs.All()[0].ContextMap()["k"])

	assert.NotNil(t, persistent.NewZapLogger(nil))
}

func TestMetrics_Prometheus(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := persistent.NewPrometheusMetrics("persistent", reg)
	require.NoError(t, err)

	clk := clock.NewMock(time.Time{})
	clk.Step = 2 * time.Millisecond

	be := newFaulty()
	keys, err := persistent.New[KeyBindings]().
		Name("keys").Format(persistent.JSON).Path("keys.json").Default(defaultKeys).
		Backend(be).Metrics(m).Clock(clk).
		Build()
	require.NoError(t, err)
	require.NoError(t, keys.Persist())
	require.NoError(t, keys.Reload())

	be.failWrite = true
	require.Error(t, keys.Persist())

	expected := `
# HELP persistent_loads_total Successful loads by object and source (storage or default)
# TYPE persistent_loads_total counter
persistent_loads_total{name="keys",source="default"} 1
persistent_loads_total{name="keys",source="storage"} 1
# HELP persistent_persists_total Successful writes to storage by object
# TYPE persistent_persists_total counter
persistent_persists_total{name="keys"} 1
# HELP persistent_persisted_bytes Size of the last successful write by object
# TYPE persistent_persisted_bytes gauge
persistent_persisted_bytes{name="keys"} 29
# HELP persistent_errors_total Failed operations by object and operation
# TYPE persistent_errors_total counter
persistent_errors_total{name="keys",op="persist"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"persistent_loads_total", "persistent_persists_total", "persistent_persisted_bytes", "persistent_errors_total"))

	n, err := testutil.GatherAndCount(reg, "persistent_operation_latency_milliseconds")
	require.NoError(t, err)
	assert.Equal(t, 3, n, "load, persist, reload series")
}
