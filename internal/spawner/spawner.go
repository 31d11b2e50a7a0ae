package spawner

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"time"

	"github.com/roach88/wavespawn/internal/catalog"
	"github.com/roach88/wavespawn/internal/knapsack"
)

// MinInterval is the shortest time between waves, whatever the config says.
const MinInterval = time.Second

// DefaultSeed seeds the placement RNG when no WithSeed option is given.
const DefaultSeed uint64 = 1

// Spawner produces waves of enemies from a catalog.
type Spawner struct {
	solver  *knapsack.Solver[*catalog.Enemy]
	enemies []catalog.Enemy // declaration order, at most catalog.MaxItems
	config  catalog.SpawnerConfig
	hash    string

	clock    *Clock
	ids      IDGenerator
	rng      *rand.Rand
	origin   Vec3
	jitter   bool
	observer Observer
	recorder Recorder
	cycles   int

	timer        time.Duration
	pools        map[string][]*Instance
	nextInstance int
}

// Option configures a Spawner.
type Option func(*Spawner)

// WithSeed seeds the RNG used for placement and capacity jitter.
func WithSeed(seed uint64) Option {
	return func(s *Spawner) {
		s.rng = newRand(seed)
	}
}

// WithClock sets the logical clock used to stamp wave Seq. Use
// NewClockAt to resume after recorded history.
func WithClock(c *Clock) Option {
	return func(s *Spawner) {
		s.clock = c
	}
}

// WithIDGenerator sets the wave ID source. Default: UUIDv7Generator.
func WithIDGenerator(g IDGenerator) Option {
	return func(s *Spawner) {
		s.ids = g
	}
}

// WithOrigin sets the center of the spawn circle. Default: the world origin.
func WithOrigin(origin Vec3) Option {
	return func(s *Spawner) {
		s.origin = origin
	}
}

// WithCapacityJitter makes each solve use a random capacity in
// [max(capacity, 2)/2, capacity] instead of the configured capacity.
func WithCapacityJitter() Option {
	return func(s *Spawner) {
		s.jitter = true
	}
}

// WithObserver receives solve timings, wave totals and pool sizes.
func WithObserver(o Observer) Option {
	return func(s *Spawner) {
		s.observer = o
	}
}

// New creates a spawner for the catalog's enemies and spawner settings.
//
// The first call to Update produces a wave immediately.
func New(cat *catalog.Catalog, opts ...Option) (*Spawner, error) {
	if cat.Spawner.Capacity < 1 || cat.Spawner.Capacity > catalog.MaxCapacity {
		return nil, newSolveError(
			fmt.Sprintf("capacity %d outside [1, %d]", cat.Spawner.Capacity, catalog.MaxCapacity), nil)
	}

	solver, err := knapsack.New[*catalog.Enemy](catalog.MaxCapacity, catalog.MaxItems)
	if err != nil {
		return nil, newSolveError("allocating solver", err)
	}

	s := &Spawner{
		solver:   solver,
		config:   cat.Spawner,
		clock:    NewClock(),
		ids:      UUIDv7Generator{},
		rng:      newRand(DefaultSeed),
		observer: nopObserver{},
		pools:    make(map[string][]*Instance),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.SetEnemies(cat.Enemies); err != nil {
		return nil, err
	}
	return s, nil
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// SetEnemies replaces the enemy list. Entries past catalog.MaxItems are
// dropped with a warning. Pools of existing instances are kept. On error the
// spawner keeps its previous enemies and hash.
func (s *Spawner) SetEnemies(enemies []catalog.Enemy) error {
	if len(enemies) > catalog.MaxItems {
		slog.Warn("more enemies than the spawner supports, truncating",
			"declared", len(enemies),
			"limit", catalog.MaxItems)
		enemies = enemies[:catalog.MaxItems]
	}
	// Fresh backing array: live instances keep pointing at the old entries.
	next := append([]catalog.Enemy(nil), enemies...)

	hash, err := (&catalog.Catalog{Enemies: next, Spawner: s.config}).Hash()
	if err != nil {
		return fmt.Errorf("hashing enemies: %w", err)
	}
	s.enemies, s.hash = next, hash
	return nil
}

// Enemies returns the enemies offered to the solver, including invalid
// ones that Solve skips.
func (s *Spawner) Enemies() []catalog.Enemy {
	return s.enemies
}

// Config returns the spawner settings.
func (s *Spawner) Config() catalog.SpawnerConfig {
	return s.config
}

// CatalogHash returns the hash of the current enemies and settings.
func (s *Spawner) CatalogHash() string {
	return s.hash
}

// Solver exposes the last solve's result. Do not call Solve or Add on it
// directly; use Spawner.Solve so the enemy list is re-offered.
func (s *Spawner) Solver() *knapsack.Solver[*catalog.Enemy] {
	return s.solver
}

// Solve re-offers every valid enemy to the solver and solves for the
// configured capacity. The returned wave has no placement; Update places it.
//
// Each call stamps a new Seq and ID.
func (s *Spawner) Solve() (*Wave, error) {
	start := time.Now()

	s.solver.Clear()
	for i := range s.enemies {
		e := &s.enemies[i]
		if !e.IsValid() {
			slog.Debug("skipping invalid enemy",
				"enemy", e.Name,
				"weight", e.Weight,
				"value", e.Value)
			continue
		}
		if err := s.solver.Add(e.Weight, e.Value, e); err != nil {
			return nil, newSolveError(fmt.Sprintf("adding enemy %s", e.Name), err)
		}
	}

	capacity := s.capacity()
	if err := s.solver.Solve(capacity); err != nil {
		return nil, newSolveError(fmt.Sprintf("solving capacity %d", capacity), err)
	}
	s.observer.ObserveSolve(time.Since(start))

	w := &Wave{
		ID:          s.ids.Generate(),
		Seq:         s.clock.Next(),
		Capacity:    capacity,
		TotalWeight: s.solver.TotalWeight(),
		TotalValue:  s.solver.TotalValue(),
		CatalogHash: s.hash,
		Spawns:      make([]Spawn, 0, s.solver.Len()),
	}
	for _, e := range s.solver.All() {
		w.Spawns = append(w.Spawns, Spawn{Enemy: e})
	}
	return w, nil
}

func (s *Spawner) capacity() int {
	c := s.config.Capacity
	if !s.jitter {
		return c
	}
	lo := max(c, 2) / 2
	return lo + s.rng.IntN(c-lo+1)
}

// Update advances the wave timer by dt. When the timer runs out it is reset
// to max(interval, MinInterval) and a placed wave is returned; otherwise the
// wave is nil.
func (s *Spawner) Update(dt time.Duration) (*Wave, error) {
	s.timer -= dt
	if s.timer > 0 {
		return nil, nil
	}
	s.timer = max(s.config.Interval, MinInterval)

	w, err := s.Solve()
	if err != nil {
		return nil, err
	}
	for i := range w.Spawns {
		sp := &w.Spawns[i]
		sp.Position = s.placement()
		sp.Instance = s.acquire(sp.Enemy)
		sp.Instance.Position = sp.Position
		sp.Instance.Active = true
	}

	s.observer.ObserveWave(w.TotalValue)
	for _, sp := range w.Spawns {
		s.observer.ObserveSpawn(sp.Enemy.Name)
	}
	s.reportPools()
	return w, nil
}

// Remaining returns the time until the next wave.
func (s *Spawner) Remaining() time.Duration {
	return max(s.timer, 0)
}

// placement returns a point on the spawn circle at a random angle.
func (s *Spawner) placement() Vec3 {
	angle := s.rng.Float64() * 2 * math.Pi
	return Vec3{
		X: s.origin.X + math.Sin(angle)*s.config.Radius,
		Y: s.origin.Y,
		Z: s.origin.Z + math.Cos(angle)*s.config.Radius,
	}
}
