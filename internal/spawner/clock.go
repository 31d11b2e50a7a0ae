package spawner

import "sync/atomic"

// Clock is a monotonic logical clock that stamps each wave's Seq.
//
// Safe for concurrent reads; the spawner is the only writer.
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a clock starting at 0. The first wave gets Seq 1.
func NewClock() *Clock {
	return &Clock{}
}

// NewClockAt creates a clock resuming after start, typically the latest
// seq found in wave history.
func NewClockAt(start int64) *Clock {
	c := &Clock{}
	c.seq.Store(start)
	return c
}

// Next increments the clock and returns the new value.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the last value handed out.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}
