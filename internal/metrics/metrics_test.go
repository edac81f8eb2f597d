package metrics

import (
	"testing"
	"time"

	"github.com/nalxnet/openWB/internal/fault"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollectorCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(reg)

	c.Read("inverter", "int32", 10*time.Millisecond)
	c.Read("inverter", "int32", 12*time.Millisecond)
	c.Fault("inverter", fault.ProtocolFailure)
	c.Value("pv-1", "power", -1500)

	if got := testutil.ToFloat64(c.reads.WithLabelValues("inverter", "int32")); got != 2 {
		t.Fatalf("reads = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.faults.WithLabelValues("inverter", "protocol_failure")); got != 1 {
		t.Fatalf("faults = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.values.WithLabelValues("pv-1", "power")); got != -1500 {
		t.Fatalf("value = %v, want -1500", got)
	}
}

func TestNilCollector(t *testing.T) {
	var c *Collector
	c.Read("x", "int32", time.Millisecond)
	c.Fault("x", fault.ConnectionFailure)
	c.Value("x", "power", 1)
}
