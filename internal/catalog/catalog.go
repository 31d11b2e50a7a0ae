package catalog

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/roach88/wavespawn/internal/canon"
)

// Global bounds shared by the catalog and the spawner's solver. They are
// fixed for the life of the process.
const (
	MaxCapacity = 128
	MaxItems    = 128

	// MaxValue is the largest enemy value the spawner's solver accepts.
	MaxValue = math.MaxInt / MaxCapacity
)

// Spawner defaults, used when a catalog has no spawner block.
const (
	DefaultCapacity = 32
	DefaultInterval = 16 * time.Second
	DefaultRadius   = 10.0
)

// Enemy is one spawnable enemy type.
type Enemy struct {
	Name   string `json:"name" yaml:"name"`
	Weight int    `json:"weight" yaml:"weight"`
	Value  int    `json:"value" yaml:"value"`
	Prefab string `json:"prefab" yaml:"prefab"`
}

// IsValid reports whether the enemy can be offered to the solver.
func (e Enemy) IsValid() bool {
	return e.Weight > 0 && e.Value > 0 && e.Value <= MaxValue && e.Prefab != ""
}

// String returns the enemy name.
func (e Enemy) String() string {
	return e.Name
}

// SpawnerConfig holds the wave settings.
type SpawnerConfig struct {
	Capacity int           `json:"capacity"`
	Interval time.Duration `json:"interval"`
	Radius   float64       `json:"radius"`
}

// DefaultSpawnerConfig returns the settings used when none are declared.
func DefaultSpawnerConfig() SpawnerConfig {
	return SpawnerConfig{
		Capacity: DefaultCapacity,
		Interval: DefaultInterval,
		Radius:   DefaultRadius,
	}
}

// Catalog is a loaded set of enemies plus spawner settings.
type Catalog struct {
	Enemies []Enemy
	Spawner SpawnerConfig
}

// New builds a catalog from enemies in order, with default spawner settings.
func New(enemies ...Enemy) *Catalog {
	return &Catalog{
		Enemies: append([]Enemy(nil), enemies...),
		Spawner: DefaultSpawnerConfig(),
	}
}

// Issue describes a definition that loads but cannot be used as is.
type Issue struct {
	Enemy   string `json:"enemy,omitempty"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	if i.Enemy != "" {
		return fmt.Sprintf("enemy %s: %s: %s", i.Enemy, i.Field, i.Message)
	}
	return fmt.Sprintf("%s: %s", i.Field, i.Message)
}

// Validate reports enemies the spawner will skip and enemies beyond
// MaxItems, which the spawner drops.
func (c *Catalog) Validate() []Issue {
	var issues []Issue
	for _, e := range c.Enemies {
		if e.Weight <= 0 {
			issues = append(issues, Issue{Enemy: e.Name, Field: "weight", Message: fmt.Sprintf("must be positive, got %d", e.Weight)})
		}
		if e.Value <= 0 {
			issues = append(issues, Issue{Enemy: e.Name, Field: "value", Message: fmt.Sprintf("must be positive, got %d", e.Value)})
		}
		if e.Value > MaxValue {
			issues = append(issues, Issue{Enemy: e.Name, Field: "value", Message: fmt.Sprintf("must be at most %d, got %d", MaxValue, e.Value)})
		}
		if e.Prefab == "" {
			issues = append(issues, Issue{Enemy: e.Name, Field: "prefab", Message: "is empty"})
		}
	}
	if len(c.Enemies) > MaxItems {
		issues = append(issues, Issue{
			Field:   "enemy",
			Message: fmt.Sprintf("%d enemies declared, only the first %d are used", len(c.Enemies), MaxItems),
		})
	}
	return issues
}

// Valid returns the enemies that pass IsValid, in declaration order.
func (c *Catalog) Valid() []Enemy {
	out := make([]Enemy, 0, len(c.Enemies))
	for _, e := range c.Enemies {
		if e.IsValid() {
			out = append(out, e)
		}
	}
	return out
}

// Lookup returns the enemy with the given name.
func (c *Catalog) Lookup(name string) (Enemy, bool) {
	for _, e := range c.Enemies {
		if e.Name == name {
			return e, true
		}
	}
	return Enemy{}, false
}

// Hash returns a content hash of the catalog. Two catalogs with the same
// enemies in the same order and the same spawner settings hash equal.
func (c *Catalog) Hash() (string, error) {
	enemies := make([]any, len(c.Enemies))
	for i, e := range c.Enemies {
		enemies[i] = map[string]any{
			"name":   e.Name,
			"weight": e.Weight,
			"value":  e.Value,
			"prefab": e.Prefab,
		}
	}
	return canon.Hash(canon.DomainCatalog, map[string]any{
		"enemies": enemies,
		"spawner": map[string]any{
			"capacity":    c.Spawner.Capacity,
			"interval_ms": c.Spawner.Interval.Milliseconds(),
			// Floats are not canonical; the shortest round-trip text is.
			"radius": strconv.FormatFloat(c.Spawner.Radius, 'g', -1, 64),
		},
	})
}
