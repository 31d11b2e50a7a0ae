package spawner

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/wavespawn/internal/catalog"
	"github.com/roach88/wavespawn/internal/testutil"
)

func concreteCatalog() *catalog.Catalog {
	c := catalog.New(
		catalog.Enemy{Name: "a", Weight: 2, Value: 3, Prefab: "cubie/a"},
		catalog.Enemy{Name: "b", Weight: 3, Value: 4, Prefab: "cubie/b"},
		catalog.Enemy{Name: "c", Weight: 1, Value: 1, Prefab: "cubie/c"},
	)
	c.Spawner.Capacity = 5
	c.Spawner.Interval = 4 * time.Second
	c.Spawner.Radius = 10
	return c
}

func newTestSpawner(t *testing.T, cat *catalog.Catalog, opts ...Option) *Spawner {
	t.Helper()
	opts = append([]Option{WithIDGenerator(testutil.NewSequentialIDs("wave"))}, opts...)
	s, err := New(cat, opts...)
	require.NoError(t, err)
	return s
}

func names(w *Wave) []string {
	out := make([]string, len(w.Spawns))
	for i, s := range w.Spawns {
		out[i] = s.Enemy.Name
	}
	return out
}

func TestSolve_ConcreteCatalog(t *testing.T) {
	s := newTestSpawner(t, concreteCatalog())

	w, err := s.Solve()
	require.NoError(t, err)

	assert.Equal(t, "wave-0001", w.ID)
	assert.Equal(t, int64(1), w.Seq)
	assert.Equal(t, 5, w.Capacity)
	assert.Equal(t, 7, w.TotalValue)
	assert.Equal(t, 5, w.TotalWeight)
	assert.Equal(t, []string{"b", "a"}, names(w))
	assert.Equal(t, s.CatalogHash(), w.CatalogHash)
	assert.NotEmpty(t, w.CatalogHash)

	// Solve does not place or pool anything.
	for _, sp := range w.Spawns {
		assert.Nil(t, sp.Instance)
	}
	assert.Equal(t, 0, s.Instances())
}

func TestSolve_PayloadsPointAtSpawnerEnemies(t *testing.T) {
	s := newTestSpawner(t, concreteCatalog())
	w, err := s.Solve()
	require.NoError(t, err)

	assert.Same(t, &s.Enemies()[1], w.Spawns[0].Enemy)
	assert.Same(t, &s.Enemies()[0], w.Spawns[1].Enemy)
}

func TestSolve_StampsIncreasingSeq(t *testing.T) {
	s := newTestSpawner(t, concreteCatalog(), WithClock(NewClockAt(41)))

	w1, err := s.Solve()
	require.NoError(t, err)
	w2, err := s.Solve()
	require.NoError(t, err)

	assert.Equal(t, int64(42), w1.Seq)
	assert.Equal(t, int64(43), w2.Seq)
	assert.NotEqual(t, w1.ID, w2.ID)
}

func TestSolve_SkipsInvalidEnemies(t *testing.T) {
	cat := concreteCatalog()
	cat.Enemies = append([]catalog.Enemy{
		{Name: "free", Weight: 0, Value: 100, Prefab: "cubie/free"},
		{Name: "noprefab", Weight: 1, Value: 100},
		{Name: "overflow", Weight: 1, Value: catalog.MaxValue + 1, Prefab: "cubie/overflow"},
	}, cat.Enemies...)
	s := newTestSpawner(t, cat)

	w, err := s.Solve()
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, names(w))
	assert.Equal(t, 7, w.TotalValue)
	assert.Equal(t, 3, s.Solver().Count())
}

func TestSolve_AcceptsValueAtLimit(t *testing.T) {
	cat := catalog.New(catalog.Enemy{Name: "boss", Weight: 1, Value: catalog.MaxValue, Prefab: "cubie/boss"})
	cat.Spawner.Capacity = catalog.MaxCapacity
	s := newTestSpawner(t, cat)

	w, err := s.Solve()
	require.NoError(t, err)
	assert.Len(t, w.Spawns, catalog.MaxCapacity)
	assert.Equal(t, catalog.MaxCapacity*catalog.MaxValue, w.TotalValue)
	assert.Positive(t, w.TotalValue)
}

func TestSolve_NoValidEnemiesGivesEmptyWave(t *testing.T) {
	cat := catalog.New(catalog.Enemy{Name: "broken", Weight: -1, Value: 1, Prefab: "p"})
	s := newTestSpawner(t, cat)

	w, err := s.Solve()
	require.NoError(t, err)
	assert.Empty(t, w.Spawns)
	assert.Equal(t, 0, w.TotalValue)
}

func TestSolve_RepeatsCheapestBestValue(t *testing.T) {
	cat := catalog.New(
		catalog.Enemy{Name: "grunt", Weight: 1, Value: 2, Prefab: "g"},
		catalog.Enemy{Name: "brute", Weight: 3, Value: 5, Prefab: "b"},
	)
	cat.Spawner.Capacity = 4
	s := newTestSpawner(t, cat)

	w, err := s.Solve()
	require.NoError(t, err)
	assert.Equal(t, 8, w.TotalValue)
	assert.Equal(t, map[string]int{"grunt": 4}, w.Counts())
}

func TestNew_RejectsCapacityOutOfRange(t *testing.T) {
	for _, capacity := range []int{0, -3, catalog.MaxCapacity + 1} {
		t.Run(fmt.Sprint(capacity), func(t *testing.T) {
			cat := concreteCatalog()
			cat.Spawner.Capacity = capacity
			_, err := New(cat)
			require.Error(t, err)
			assert.True(t, IsSolveError(err))
		})
	}
}

func TestNew_AcceptsMaxCapacity(t *testing.T) {
	cat := concreteCatalog()
	cat.Spawner.Capacity = catalog.MaxCapacity
	s := newTestSpawner(t, cat)

	w, err := s.Solve()
	require.NoError(t, err)
	assert.Equal(t, catalog.MaxCapacity, w.TotalWeight)
}

func TestSetEnemies_TruncatesToMaxItems(t *testing.T) {
	s := newTestSpawner(t, concreteCatalog())

	enemies := make([]catalog.Enemy, catalog.MaxItems+5)
	for i := range enemies {
		enemies[i] = catalog.Enemy{Name: fmt.Sprintf("e%03d", i), Weight: 1, Value: 1, Prefab: "p"}
	}
	require.NoError(t, s.SetEnemies(enemies))

	assert.Len(t, s.Enemies(), catalog.MaxItems)
	assert.Equal(t, "e127", s.Enemies()[catalog.MaxItems-1].Name)

	_, err := s.Solve()
	require.NoError(t, err)
	assert.Equal(t, catalog.MaxItems, s.Solver().Count())
}

func TestSetEnemies_ChangesHash(t *testing.T) {
	s := newTestSpawner(t, concreteCatalog())
	before := s.CatalogHash()

	require.NoError(t, s.SetEnemies(s.Enemies()[:2]))
	assert.NotEqual(t, before, s.CatalogHash())
}

func TestSetEnemies_HashMatchesEnemies(t *testing.T) {
	s := newTestSpawner(t, concreteCatalog())
	next := []catalog.Enemy{{Name: "z", Weight: 4, Value: 9, Prefab: "cubie/z"}}
	require.NoError(t, s.SetEnemies(next))

	want, err := (&catalog.Catalog{Enemies: next, Spawner: s.Config()}).Hash()
	require.NoError(t, err)
	assert.Equal(t, next, s.Enemies())
	assert.Equal(t, want, s.CatalogHash())
}

func TestSetEnemies_DoesNotAliasCaller(t *testing.T) {
	enemies := []catalog.Enemy{{Name: "a", Weight: 1, Value: 1, Prefab: "p"}}
	s := newTestSpawner(t, catalog.New(enemies...))
	require.NoError(t, s.SetEnemies(enemies))

	enemies[0].Name = "mutated"
	assert.Equal(t, "a", s.Enemies()[0].Name)
}

func TestUpdate_Timer(t *testing.T) {
	s := newTestSpawner(t, concreteCatalog())

	w, err := s.Update(0)
	require.NoError(t, err)
	require.NotNil(t, w, "first update spawns immediately")
	assert.Equal(t, 4*time.Second, s.Remaining())

	w, err = s.Update(3 * time.Second)
	require.NoError(t, err)
	assert.Nil(t, w)
	assert.Equal(t, time.Second, s.Remaining())

	w, err = s.Update(time.Second)
	require.NoError(t, err)
	require.NotNil(t, w)
	assert.Equal(t, int64(2), w.Seq)
}

func TestUpdate_IntervalHasFloor(t *testing.T) {
	cat := concreteCatalog()
	cat.Spawner.Interval = 100 * time.Millisecond
	s := newTestSpawner(t, cat)

	_, err := s.Update(0)
	require.NoError(t, err)
	assert.Equal(t, MinInterval, s.Remaining())

	w, err := s.Update(500 * time.Millisecond)
	require.NoError(t, err)
	assert.Nil(t, w)

	w, err = s.Update(500 * time.Millisecond)
	require.NoError(t, err)
	assert.NotNil(t, w)
}

func TestUpdate_LargeDeltaSpawnsOnce(t *testing.T) {
	s := newTestSpawner(t, concreteCatalog())
	_, err := s.Update(0)
	require.NoError(t, err)

	w, err := s.Update(time.Minute)
	require.NoError(t, err)
	require.NotNil(t, w)
	assert.Equal(t, 4*time.Second, s.Remaining(), "timer resets rather than catching up")
}

func TestUpdate_PlacesOnCircle(t *testing.T) {
	cat := concreteCatalog()
	cat.Spawner.Radius = 7.5
	origin := Vec3{X: 3, Y: 2, Z: -4}
	s := newTestSpawner(t, cat, WithOrigin(origin), WithSeed(7))

	w, err := s.Update(0)
	require.NoError(t, err)
	require.Len(t, w.Spawns, 2)

	for _, sp := range w.Spawns {
		dx, dz := sp.Position.X-origin.X, sp.Position.Z-origin.Z
		assert.InDelta(t, 7.5, math.Hypot(dx, dz), 1e-9)
		assert.Equal(t, origin.Y, sp.Position.Y)
		require.NotNil(t, sp.Instance)
		assert.True(t, sp.Instance.Active)
		assert.Equal(t, sp.Position, sp.Instance.Position)
		assert.Same(t, sp.Enemy, sp.Instance.Enemy)
	}
}

func TestUpdate_ZeroRadiusPlacesAtOrigin(t *testing.T) {
	cat := concreteCatalog()
	cat.Spawner.Radius = 0
	s := newTestSpawner(t, cat)

	w, err := s.Update(0)
	require.NoError(t, err)
	for _, sp := range w.Spawns {
		assert.Equal(t, Vec3{}, sp.Position)
	}
}

func TestUpdate_SeedIsDeterministic(t *testing.T) {
	positions := func(seed uint64) []Vec3 {
		s := newTestSpawner(t, concreteCatalog(), WithSeed(seed))
		w, err := s.Update(0)
		require.NoError(t, err)
		out := make([]Vec3, len(w.Spawns))
		for i, sp := range w.Spawns {
			out[i] = sp.Position
		}
		return out
	}

	assert.Equal(t, positions(99), positions(99))
	assert.NotEqual(t, positions(99), positions(100))
}

func TestCapacityJitter(t *testing.T) {
	cat := concreteCatalog()
	cat.Spawner.Capacity = 20
	s := newTestSpawner(t, cat, WithCapacityJitter(), WithSeed(3))

	seen := make(map[int]bool)
	for range 200 {
		w, err := s.Solve()
		require.NoError(t, err)
		assert.GreaterOrEqual(t, w.Capacity, 10)
		assert.LessOrEqual(t, w.Capacity, 20)
		assert.LessOrEqual(t, w.TotalWeight, w.Capacity)
		seen[w.Capacity] = true
	}
	assert.Greater(t, len(seen), 1, "jitter should vary the capacity")
}

func TestCapacityJitter_CapacityOne(t *testing.T) {
	cat := concreteCatalog()
	cat.Spawner.Capacity = 1
	s := newTestSpawner(t, cat, WithCapacityJitter())

	w, err := s.Solve()
	require.NoError(t, err)
	assert.Equal(t, 1, w.Capacity)
	assert.Equal(t, []string{"c"}, names(w))
}

func TestWave_Record(t *testing.T) {
	s := newTestSpawner(t, concreteCatalog(), WithOrigin(Vec3{X: 1, Y: 2.5, Z: -1}))
	w, err := s.Update(0)
	require.NoError(t, err)

	rec := w.Record()
	assert.Equal(t, w.ID, rec.ID)
	assert.Equal(t, w.Seq, rec.Seq)
	assert.Equal(t, 7, rec.TotalValue)
	assert.Equal(t, w.CatalogHash, rec.CatalogHash)
	require.Len(t, rec.Spawns, 2)
	assert.Equal(t, 0, rec.Spawns[0].Index)
	assert.Equal(t, "b", rec.Spawns[0].Enemy)
	assert.Equal(t, "cubie/b", rec.Spawns[0].Prefab)
	assert.Equal(t, w.Spawns[1].Position.X, rec.Spawns[1].X)
	assert.Equal(t, 2.5, rec.Spawns[1].Y)
	assert.Equal(t, w.Spawns[1].Position.Z, rec.Spawns[1].Z)
}
