package spawner

import (
	"log/slog"

	"github.com/roach88/wavespawn/internal/catalog"
)

// acquire pops the most recently released instance of e, or creates one.
func (s *Spawner) acquire(e *catalog.Enemy) *Instance {
	pool := s.pools[e.Name]
	if n := len(pool); n > 0 {
		inst := pool[n-1]
		pool[n-1] = nil
		s.pools[e.Name] = pool[:n-1]
		inst.Enemy = e
		return inst
	}

	s.nextInstance++
	slog.Debug("creating instance", "enemy", e.Name, "instance", s.nextInstance, "prefab", e.Prefab)
	return &Instance{ID: s.nextInstance, Enemy: e}
}

// Release deactivates inst and returns it to its enemy's pool. Releasing an
// inactive instance is a no-op and returns false.
func (s *Spawner) Release(inst *Instance) bool {
	if inst == nil || !inst.Active {
		return false
	}
	inst.Active = false
	name := inst.Enemy.Name
	s.pools[name] = append(s.pools[name], inst)
	s.observer.SetPoolIdle(name, len(s.pools[name]))
	return true
}

// Idle returns the number of pooled instances waiting for the named enemy.
func (s *Spawner) Idle(enemy string) int {
	return len(s.pools[enemy])
}

// Instances returns how many instances have been created in total.
func (s *Spawner) Instances() int {
	return s.nextInstance
}

func (s *Spawner) reportPools() {
	for name, pool := range s.pools {
		s.observer.SetPoolIdle(name, len(pool))
	}
}
