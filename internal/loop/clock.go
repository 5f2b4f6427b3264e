// Package loop is the shared game loop driver. Every module runs on a
// fixed-timestep Clock; tick games layer an Interval on top of it for
// movement or gravity periods.
package loop

import "time"

// Clock converts wall-clock frame deltas into whole simulation ticks.
// Leftover time is carried to the next frame so the tick rate stays exact.
type Clock struct {
	step       time.Duration
	maxCatchUp int
	acc        time.Duration
	ticks      uint64
	stopped    bool
}

// NewClock creates a clock running tickRate ticks per second.
// After a stall it runs at most maxCatchUp ticks per Advance and drops the rest.
func NewClock(tickRate, maxCatchUp int) *Clock {
	if tickRate <= 0 {
		tickRate = 60
	}
	if maxCatchUp <= 0 {
		maxCatchUp = 1
	}
	return &Clock{
		step:       time.Second / time.Duration(tickRate),
		maxCatchUp: maxCatchUp,
	}
}

// Step returns the duration of one tick.
func (c *Clock) Step() time.Duration {
	return c.step
}

// Ticks returns the number of ticks produced since the last Reset.
func (c *Clock) Ticks() uint64 {
	return c.ticks
}

// Advance adds elapsed time and returns how many ticks are due.
// A stopped clock never yields ticks. Negative deltas are ignored.
func (c *Clock) Advance(elapsed time.Duration) int {
	if c.stopped || elapsed <= 0 {
		return 0
	}

	c.acc += elapsed
	n := int(c.acc / c.step)
	if n > c.maxCatchUp {
		n = c.maxCatchUp
		c.acc = 0
	} else {
		c.acc -= time.Duration(n) * c.step
	}
	c.ticks += uint64(n)
	return n
}

// Reset clears accumulated time and the tick count, and restarts a stopped clock.
func (c *Clock) Reset() {
	c.acc = 0
	c.ticks = 0
	c.stopped = false
}

// Stop halts the clock until the next Reset.
func (c *Clock) Stop() {
	c.stopped = true
	c.acc = 0
}

// Stopped reports whether the clock is halted.
func (c *Clock) Stopped() bool {
	return c.stopped
}

// Elapsed returns the simulated time covered by the ticks so far.
func (c *Clock) Elapsed() time.Duration {
	return time.Duration(c.ticks) * c.step
}
