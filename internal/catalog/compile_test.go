package catalog

import (
	"testing"
	"time"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compile(t *testing.T, src string) cue.Value {
	t.Helper()
	v := cuecontext.New().CompileString(src)
	require.NoError(t, v.Err())
	return v
}

func TestCompileEnemyBasic(t *testing.T) {
	v := compile(t, `
		enemy: grunt: {
			weight: 2
			value:  3
			prefab: "cubie/grunt"
		}
	`)

	e, err := CompileEnemy(v.LookupPath(cue.ParsePath("enemy.grunt")))
	require.NoError(t, err)
	assert.Equal(t, Enemy{Name: "grunt", Weight: 2, Value: 3, Prefab: "cubie/grunt"}, *e)
}

func TestCompileEnemyQuotedLabel(t *testing.T) {
	v := compile(t, `
		enemy: "big-brute": { weight: 4, value: 6, prefab: "cubie/brute" }
	`)

	e, err := CompileEnemy(v.LookupPath(cue.MakePath(cue.Str("enemy"), cue.Str("big-brute"))))
	require.NoError(t, err)
	assert.Equal(t, "big-brute", e.Name)
}

func TestCompileEnemyNonPositiveCompiles(t *testing.T) {
	// Out-of-range numbers are a Validate concern, not a compile error.
	v := compile(t, `enemy: ghost: { weight: 0, value: -1, prefab: "" }`)

	e, err := CompileEnemy(v.LookupPath(cue.ParsePath("enemy.ghost")))
	require.NoError(t, err)
	assert.False(t, e.IsValid())
}

func TestCompileEnemyErrors(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		field string
		msg   string
	}{
		{"missing weight", `enemy: x: { value: 1, prefab: "p" }`, "weight", "weight is required"},
		{"missing value", `enemy: x: { weight: 1, prefab: "p" }`, "value", "value is required"},
		{"missing prefab", `enemy: x: { weight: 1, value: 1 }`, "prefab", "prefab is required"},
		{"float weight", `enemy: x: { weight: 1.5, value: 1, prefab: "p" }`, "weight", "must be an integer"},
		{"numeric prefab", `enemy: x: { weight: 1, value: 1, prefab: 7 }`, "prefab", "must be a string"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := compile(t, tt.src)
			_, err := CompileEnemy(v.LookupPath(cue.ParsePath("enemy.x")))
			require.Error(t, err)

			var ce *CompileError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tt.field, ce.Field)
			assert.Contains(t, ce.Message, tt.msg)
		})
	}
}

func TestCompileSpawnerDefaults(t *testing.T) {
	v := compile(t, `spawner: {}`)
	cfg, err := CompileSpawner(v.LookupPath(cue.ParsePath("spawner")))
	require.NoError(t, err)
	assert.Equal(t, DefaultSpawnerConfig(), cfg)
}

func TestCompileSpawnerFields(t *testing.T) {
	v := compile(t, `spawner: { capacity: 64, interval: "1500ms", radius: 12.5 }`)
	cfg, err := CompileSpawner(v.LookupPath(cue.ParsePath("spawner")))
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.Capacity)
	assert.Equal(t, 1500*time.Millisecond, cfg.Interval)
	assert.Equal(t, 12.5, cfg.Radius)
}

func TestCompileSpawnerIntervalSeconds(t *testing.T) {
	v := compile(t, `spawner: { interval: 4, radius: 8 }`)
	cfg, err := CompileSpawner(v.LookupPath(cue.ParsePath("spawner")))
	require.NoError(t, err)
	assert.Equal(t, 4*time.Second, cfg.Interval)
	assert.Equal(t, 8.0, cfg.Radius)
}

func TestCompileSpawnerErrors(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		field string
	}{
		{"capacity zero", `spawner: { capacity: 0 }`, "capacity"},
		{"capacity too large", `spawner: { capacity: 129 }`, "capacity"},
		{"bad duration", `spawner: { interval: "soon" }`, "interval"},
		{"negative duration", `spawner: { interval: "-2s" }`, "interval"},
		{"bool interval", `spawner: { interval: true }`, "interval"},
		{"negative radius", `spawner: { radius: -1 }`, "radius"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := compile(t, tt.src)
			_, err := CompileSpawner(v.LookupPath(cue.ParsePath("spawner")))
			require.Error(t, err)

			var ce *CompileError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tt.field, ce.Field)
		})
	}
}

func TestCompileErrorFormatting(t *testing.T) {
	err := &CompileError{Field: "weight", Message: "weight is required"}
	assert.Equal(t, "weight: weight is required", err.Error())
}
