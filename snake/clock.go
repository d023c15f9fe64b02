package snake

import "time"

// DefaultTicksPerSecond is the game speed.
const DefaultTicksPerSecond = 10

// Clock converts variable frame times into fixed game ticks.
type Clock struct {
	interval    time.Duration
	accumulator time.Duration
}

// maxCatchUp bounds the ticks returned by one Advance after a stall.
const maxCatchUp = 5

// NewClock returns a clock firing ticksPerSecond times a second. Values
// below one are treated as one.
func NewClock(ticksPerSecond int) *Clock {
	return &Clock{interval: TickInterval(ticksPerSecond)}
}

// TickInterval is the time between ticks at the given rate.
func TickInterval(ticksPerSecond int) time.Duration {
	return time.Second / time.Duration(max(ticksPerSecond, 1))
}

// Advance adds dt to the clock and returns the number of ticks now due.
func (c *Clock) Advance(dt time.Duration) int {
	if dt <= 0 {
		return 0
	}

	c.accumulator += dt
	due := int(c.accumulator / c.interval)
	c.accumulator -= time.Duration(due) * c.interval

	if due > maxCatchUp {
		c.accumulator = 0
		due = maxCatchUp
	}
	return due
}

// Interval is the time between ticks.
func (c *Clock) Interval() time.Duration {
	return c.interval
}
