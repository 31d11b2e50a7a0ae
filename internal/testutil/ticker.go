package testutil

import (
	"sync/atomic"
	"time"
)

// ManualTicker delivers ticks only when Tick is called.
// It satisfies spawner.Ticker.
type ManualTicker struct {
	ch      chan time.Time
	stopped atomic.Bool
}

// NewManualTicker creates a ticker with room for buffer pending ticks.
func NewManualTicker(buffer int) *ManualTicker {
	return &ManualTicker{ch: make(chan time.Time, buffer)}
}

// C returns the tick channel.
func (t *ManualTicker) C() <-chan time.Time {
	return t.ch
}

// Tick sends one tick stamped at now. Blocks if the buffer is full.
func (t *ManualTicker) Tick(now time.Time) {
	t.ch <- now
}

// Stop marks the ticker stopped. Pending ticks stay readable.
func (t *ManualTicker) Stop() {
	t.stopped.Store(true)
}

// Stopped reports whether Stop was called.
func (t *ManualTicker) Stopped() bool {
	return t.stopped.Load()
}
