// Package instrument agrupa las métricas Prometheus del pipeline. No se
// exponen por HTTP: el comando las vuelca en formato texto al terminar.
package instrument

import (
	"fmt"
	"io"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

const (
	namespace = "tolerance"
	subsystem = "pipeline"
)

// Metrics contiene los colectores de una corrida.
type Metrics struct {
	BitsFlipped        prometheus.Counter
	EffectiveFlips     prometheus.Counter
	CodewordsCorrected prometheus.Counter
	Recoveries         *prometheus.CounterVec
	EncodedBits        prometheus.Gauge
}

// New crea los colectores y los registra en reg. Con reg nil se crean sin
// registrar.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		BitsFlipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "bits_flipped_total",
			Help:      "Number of bit flips requested from the noise layer",
		}),
		EffectiveFlips: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "effective_bit_flips_total",
			Help:      "Number of bits left inverted after noise",
		}),
		CodewordsCorrected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "codewords_corrected_total",
			Help:      "Number of codewords with a nonzero syndrome",
		}),
		Recoveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "recoveries_total",
			Help:      "Number of recovered plaintexts by exactness",
		}, []string{"exact"}),
		EncodedBits: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "encoded_bits",
			Help:      "Bit length of the pristine encoded stream",
		}),
	}

	if reg == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{m.BitsFlipped, m.EffectiveFlips, m.CodewordsCorrected, m.Recoveries, m.EncodedBits} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("instrument: error registrando colector: %w", err)
		}
	}
	return m, nil
}

// ObserveRecovery registra el resultado de un nivel de corrupción.
func (m *Metrics) ObserveRecovery(requested, effective, corrected int, exact bool) {
	if m == nil {
		return
	}
	if requested > 0 {
		m.BitsFlipped.Add(float64(requested))
	}
	m.EffectiveFlips.Add(float64(effective))
	m.CodewordsCorrected.Add(float64(corrected))
	m.Recoveries.WithLabelValues(strconv.FormatBool(exact)).Inc()
}

// SetEncodedBits fija el tamaño del stream codificado.
func (m *Metrics) SetEncodedBits(n int) {
	if m == nil {
		return
	}
	m.EncodedBits.Set(float64(n))
}

// WriteText vuelca todas las métricas de g en formato de exposición texto.
func WriteText(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("instrument: error recolectando métricas: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
