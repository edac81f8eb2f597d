// Package simcount derives energy counters from power samples for devices
// that do not report energy themselves.
package simcount

import (
	"time"
)

// Counter integrates power (W) over time into imported and exported energy
// (Wh). Positive power is import, negative power is export. Not safe for
// concurrent use.
type Counter struct {
	Imported float64
	Exported float64

	now       func() time.Time
	last      time.Time
	lastPower float64
	primed    bool
}

func New(imported, exported float64) *Counter {
	return &Counter{Imported: imported, Exported: exported, now: time.Now}
}

// Count adds the energy since the previous sample and returns the totals.
// The first call only records the sample.
func (c *Counter) Count(power float64) (imported, exported float64) {
	now := c.now()
	if c.primed {
		hours := now.Sub(c.last).Hours()
		if hours > 0 {
			imp, exp := integrate(c.lastPower, power, hours)
			c.Imported += imp
			c.Exported += exp
		}
	}
	c.last = now
	c.lastPower = power
	c.primed = true
	return c.Imported, c.Exported
}

// integrate applies the trapezoid rule between p0 and p1 over hours, splitting
// at the zero crossing when the sign changes.
func integrate(p0, p1, hours float64) (imported, exported float64) {
	if (p0 >= 0) == (p1 >= 0) {
		e := (p0 + p1) / 2 * hours
		if e >= 0 {
			return e, 0
		}
		return 0, -e
	}

	t0 := p0 / (p0 - p1) * hours
	first := p0 / 2 * t0
	second := p1 / 2 * (hours - t0)
	if p0 >= 0 {
		return first, -second
	}
	return second, -first
}
