package spawner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/wavespawn/internal/catalog"
)

func TestPool_ReusesReleasedInstances(t *testing.T) {
	s := newTestSpawner(t, concreteCatalog())

	w1, err := s.Update(0)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Instances())

	for _, sp := range w1.Spawns {
		assert.True(t, s.Release(sp.Instance))
	}
	assert.Equal(t, 1, s.Idle("a"))
	assert.Equal(t, 1, s.Idle("b"))

	w2, err := s.Update(s.Remaining())
	require.NoError(t, err)
	require.NotNil(t, w2)

	assert.Equal(t, 2, s.Instances(), "no new instances while the pools have idle ones")
	assert.Same(t, w1.Spawns[0].Instance, w2.Spawns[0].Instance)
	assert.Same(t, w1.Spawns[1].Instance, w2.Spawns[1].Instance)
	assert.Equal(t, 0, s.Idle("a"))
}

func TestPool_GrowsWhenInstancesStayActive(t *testing.T) {
	s := newTestSpawner(t, concreteCatalog())

	_, err := s.Update(0)
	require.NoError(t, err)
	_, err = s.Update(s.Remaining())
	require.NoError(t, err)

	assert.Equal(t, 4, s.Instances())
}

func TestPool_LastInFirstOut(t *testing.T) {
	s := newTestSpawner(t, concreteCatalog())
	e := &s.Enemies()[0]

	first := s.acquire(e)
	second := s.acquire(e)
	first.Active, second.Active = true, true
	assert.Equal(t, 1, first.ID)
	assert.Equal(t, 2, second.ID)

	s.Release(first)
	s.Release(second)

	assert.Same(t, second, s.acquire(e))
	assert.Same(t, first, s.acquire(e))
}

func TestRelease_InactiveIsNoop(t *testing.T) {
	s := newTestSpawner(t, concreteCatalog())
	w, err := s.Update(0)
	require.NoError(t, err)

	inst := w.Spawns[0].Instance
	require.True(t, s.Release(inst))
	assert.False(t, inst.Active)
	assert.False(t, s.Release(inst), "double release must not pool twice")
	assert.Equal(t, 1, s.Idle(inst.Enemy.Name))

	assert.False(t, s.Release(nil))
}

func TestPool_SurvivesSetEnemies(t *testing.T) {
	s := newTestSpawner(t, concreteCatalog())
	w, err := s.Update(0)
	require.NoError(t, err)

	require.NoError(t, s.SetEnemies([]catalog.Enemy{
		{Name: "b", Weight: 3, Value: 4, Prefab: "cubie/b2"},
	}))

	inst := w.Spawns[0].Instance
	require.True(t, s.Release(inst))
	assert.Equal(t, 1, s.Idle("b"))

	w2, err := s.Update(s.Remaining())
	require.NoError(t, err)
	require.NotEmpty(t, w2.Spawns)
	assert.Same(t, inst, w2.Spawns[0].Instance)
	assert.Equal(t, "cubie/b2", w2.Spawns[0].Instance.Enemy.Prefab, "reused instance takes the new definition")
}
