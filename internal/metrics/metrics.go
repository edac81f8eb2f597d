// Package metrics exposes read counters and the last published readings.
package metrics

import (
	"time"

	"github.com/nalxnet/openWB/internal/fault"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "openwb"

// Collector is nil-safe: every method on a nil *Collector is a no-op.
type Collector struct {
	reads    *prometheus.CounterVec
	faults   *prometheus.CounterVec
	duration *prometheus.HistogramVec
	values   *prometheus.GaugeVec
}

func New(reg prometheus.Registerer) *Collector {
	c := &Collector{
		reads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "modbus",
			Name:      "reads_total",
			Help:      "Register reads attempted per link and data kind.",
		}, []string{"link", "kind"}),
		faults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "modbus",
			Name:      "faults_total",
			Help:      "Failed register reads per link and fault kind.",
		}, []string{"link", "kind"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "modbus",
			Name:      "read_duration_seconds",
			Help:      "Round trip time of register reads.",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}, []string{"link"}),
		values: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "component_value",
			Help:      "Last value published per component and quantity.",
		}, []string{"component", "quantity"}),
	}
	reg.MustRegister(c.reads, c.faults, c.duration, c.values)
	return c
}

func (c *Collector) Read(link, kind string, d time.Duration) {
	if c == nil {
		return
	}
	c.reads.WithLabelValues(link, kind).Inc()
	c.duration.WithLabelValues(link).Observe(d.Seconds())
}

func (c *Collector) Fault(link string, kind fault.Kind) {
	if c == nil {
		return
	}
	c.faults.WithLabelValues(link, kind.String()).Inc()
}

func (c *Collector) Value(component, quantity string, v float64) {
	if c == nil {
		return
	}
	c.values.WithLabelValues(component, quantity).Set(v)
}
