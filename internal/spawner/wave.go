package spawner

import (
	"github.com/roach88/wavespawn/internal/catalog"
	"github.com/roach88/wavespawn/internal/store"
)

// Vec3 is a world position.
type Vec3 struct {
	X, Y, Z float64
}

// Instance is one pooled enemy in the world.
type Instance struct {
	// ID is unique per spawner, in creation order starting at 1.
	ID int

	// Enemy is the definition the instance was created from.
	Enemy *catalog.Enemy

	Position Vec3
	Active   bool
}

// Spawn is one entry of a wave. Instance and Position are set only when
// the wave was produced by Update.
type Spawn struct {
	Enemy    *catalog.Enemy
	Instance *Instance
	Position Vec3
}

// Wave is one solved selection of enemies.
type Wave struct {
	ID          string
	Seq         int64
	Capacity    int
	TotalWeight int
	TotalValue  int
	CatalogHash string
	Spawns      []Spawn
}

// Counts returns how many of each enemy the wave holds, keyed by name.
func (w *Wave) Counts() map[string]int {
	counts := make(map[string]int)
	for _, s := range w.Spawns {
		counts[s.Enemy.Name]++
	}
	return counts
}

// Record converts the wave into its persisted form.
func (w *Wave) Record() store.Wave {
	rec := store.Wave{
		ID:          w.ID,
		Seq:         w.Seq,
		Capacity:    w.Capacity,
		TotalWeight: w.TotalWeight,
		TotalValue:  w.TotalValue,
		CatalogHash: w.CatalogHash,
		Spawns:      make([]store.Spawn, len(w.Spawns)),
	}
	for i, s := range w.Spawns {
		rec.Spawns[i] = store.Spawn{
			Index:  i,
			Enemy:  s.Enemy.Name,
			Weight: s.Enemy.Weight,
			Value:  s.Enemy.Value,
			Prefab: s.Enemy.Prefab,
			X:      s.Position.X,
			Y:      s.Position.Y,
			Z:      s.Position.Z,
		}
	}
	return rec
}
