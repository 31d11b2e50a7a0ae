// Package observability provides Prometheus metrics for the spawner.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// SolveBuckets covers solver latencies from 1µs to 10ms. A full solve at
// the maximum bounds is well under a millisecond.
var SolveBuckets = []float64{1e-6, 5e-6, 1e-5, 5e-5, 1e-4, 5e-4, 1e-3, 5e-3, 1e-2}

// ValueBuckets covers wave values up to the largest value a maximal wave
// of typical enemies reaches.
var ValueBuckets = []float64{1, 2, 4, 8, 16, 32, 64, 128, 256, 512}

var (
	// WavesTotal counts placed waves.
	WavesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "wavespawn_waves_total",
			Help: "Waves spawned",
		},
	)

	// SpawnsTotal counts spawned instances by enemy name.
	SpawnsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wavespawn_spawns_total",
			Help: "Enemies spawned",
		},
		[]string{"enemy"},
	)

	// SolveDuration records the time to re-offer the catalog and solve.
	SolveDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "wavespawn_solve_duration_seconds",
			Help:    "Solve duration",
			Buckets: SolveBuckets,
		},
	)

	// WaveValue records the total value of each placed wave.
	WaveValue = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "wavespawn_wave_value",
			Help:    "Total value per wave",
			Buckets: ValueBuckets,
		},
	)

	// PoolIdle tracks pooled, inactive instances by enemy name.
	PoolIdle = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "wavespawn_pool_idle",
			Help: "Idle pooled instances",
		},
		[]string{"enemy"},
	)
)

func init() {
	prometheus.MustRegister(
		WavesTotal,
		SpawnsTotal,
		SolveDuration,
		WaveValue,
		PoolIdle,
	)
}

// SpawnerMetrics records spawner measurements into the package collectors.
// It satisfies spawner.Observer.
type SpawnerMetrics struct{}

func (SpawnerMetrics) ObserveSolve(d time.Duration) {
	SolveDuration.Observe(d.Seconds())
}

func (SpawnerMetrics) ObserveWave(totalValue int) {
	WavesTotal.Inc()
	WaveValue.Observe(float64(totalValue))
}

func (SpawnerMetrics) ObserveSpawn(enemy string) {
	SpawnsTotal.WithLabelValues(enemy).Inc()
}

func (SpawnerMetrics) SetPoolIdle(enemy string, idle int) {
	PoolIdle.WithLabelValues(enemy).Set(float64(idle))
}
