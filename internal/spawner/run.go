package spawner

import (
	"context"
	"log/slog"
	"time"

	"github.com/roach88/wavespawn/internal/store"
)

// Ticker delivers the times at which Run advances the spawner.
// *time.Ticker is adapted by NewTicker.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// Recorder persists produced waves. *store.Store implements it.
type Recorder interface {
	WriteWave(ctx context.Context, w store.Wave) error
}

// Observer receives spawner measurements. Implementations must not block.
type Observer interface {
	ObserveSolve(d time.Duration)
	ObserveWave(totalValue int)
	ObserveSpawn(enemy string)
	SetPoolIdle(enemy string, idle int)
}

type nopObserver struct{}

func (nopObserver) ObserveSolve(time.Duration) {}
func (nopObserver) ObserveWave(int) {}
func (nopObserver) ObserveSpawn(string) {}
func (nopObserver) SetPoolIdle(string, int) {}

// WithRecorder persists every wave produced by Run.
func WithRecorder(r Recorder) Option {
	return func(s *Spawner) {
		s.recorder = r
	}
}

// WithMaxCycles stops Run after n waves. Zero means no limit.
func WithMaxCycles(n int) Option {
	return func(s *Spawner) {
		s.cycles = n
	}
}

type timeTicker struct {
	t *time.Ticker
}

// NewTicker returns a Ticker backed by time.NewTicker.
func NewTicker(d time.Duration) Ticker {
	return timeTicker{t: time.NewTicker(d)}
}

func (t timeTicker) C() <-chan time.Time { return t.t.C }
func (t timeTicker) Stop() { t.t.Stop() }

// Run advances the spawner on every tick, using the time between ticks as
// the frame delta. The first tick has a zero delta and spawns immediately.
//
// Run returns nil after WithMaxCycles waves, ctx.Err() on cancellation, and
// a SpawnError if a solve or record fails. The ticker is stopped on return.
//
// CRITICAL: Run owns the spawner. Do not call other methods concurrently.
func (s *Spawner) Run(ctx context.Context, ticker Ticker) error {
	defer ticker.Stop()
	slog.Info("spawner starting",
		"capacity", s.config.Capacity,
		"interval", s.config.Interval,
		"enemies", len(s.enemies))

	var last time.Time
	waves := 0
	for {
		select {
		case <-ctx.Done():
			slog.Info("spawner stopping: context cancelled", "waves", waves)
			return ctx.Err()

		case now := <-ticker.C():
			var dt time.Duration
			if !last.IsZero() {
				dt = now.Sub(last)
			}
			last = now

			w, err := s.Update(dt)
			if err != nil {
				return err
			}
			if w == nil {
				continue
			}

			if s.recorder != nil {
				if err := s.recorder.WriteWave(ctx, w.Record()); err != nil {
					return newRecordError(w.ID, err)
				}
			}
			slog.Info("wave spawned",
				"wave", w.ID,
				"seq", w.Seq,
				"spawns", len(w.Spawns),
				"value", w.TotalValue,
				"weight", w.TotalWeight)

			waves++
			if s.cycles > 0 && waves >= s.cycles {
				slog.Info("spawner stopping: cycle limit reached", "waves", waves)
				return nil
			}
		}
	}
}
