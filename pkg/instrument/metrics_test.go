package instrument

import (
	"bytes"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func value(t *testing.T, c prometheus.Metric) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	if m.Counter != nil {
		return m.Counter.GetValue()
	}
	return m.Gauge.GetValue()
}

func TestMetrics_ObserveRecovery(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := New(reg)
	require.NoError(t, err)

	m.SetEncodedBits(768)
	m.ObserveRecovery(0, 0, 0, true)
	m.ObserveRecovery(5, 5, 4, true)
	m.ObserveRecovery(25, 23, 19, false)
	m.ObserveRecovery(-3, 0, 0, true)

	assert.Equal(t, 768.0, value(t, m.EncodedBits))
	assert.Equal(t, 30.0, value(t, m.BitsFlipped))
	assert.Equal(t, 28.0, value(t, m.EffectiveFlips))
	assert.Equal(t, 23.0, value(t, m.CodewordsCorrected))
	assert.Equal(t, 3.0, value(t, m.Recoveries.WithLabelValues("true")))
	assert.Equal(t, 1.0, value(t, m.Recoveries.WithLabelValues("false")))
}

func TestMetrics_DoubleRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := New(reg)
	require.NoError(t, err)

	_, err = New(reg)
	assert.Error(t, err)
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	m.ObserveRecovery(1, 1, 1, true)
	m.SetEncodedBits(10)

	unregistered, err := New(nil)
	require.NoError(t, err)
	unregistered.ObserveRecovery(1, 1, 0, false)
	assert.Equal(t, 1.0, value(t, unregistered.BitsFlipped))
}

func TestWriteText(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := New(reg)
	require.NoError(t, err)
	m.ObserveRecovery(3, 3, 3, true)

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, reg))
	out := buf.String()
	assert.Contains(t, out, "tolerance_pipeline_bits_flipped_total 3")
	assert.Contains(t, out, `tolerance_pipeline_recoveries_total{exact="true"} 1`)
}
