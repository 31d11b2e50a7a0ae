package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadScenario_ConcreteMix(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/concrete_mix.yaml")
	require.NoError(t, err)

	assert.Equal(t, "concrete_mix", s.Name)
	require.Len(t, s.Candidates, 3)
	assert.Equal(t, Candidate{Name: "b", Weight: 3, Value: 4}, s.Candidates[1])
	require.Len(t, s.Solves, 2)
	assert.Equal(t, 5, s.Solves[0].Capacity)
	require.NotNil(t, s.Solves[0].Expect)
	assert.Equal(t, 7, *s.Solves[0].Expect.Value)
	assert.Equal(t, []string{"b", "a"}, s.Solves[0].Expect.Payloads)
	assert.Nil(t, s.Solves[1].Expect.Payloads)

	maxCapacity, maxItems := s.bounds()
	assert.Equal(t, DefaultBound, maxCapacity)
	assert.Equal(t, DefaultBound, maxItems)
}

func TestLoadScenario_ExplicitBounds(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/solver_errors.yaml")
	require.NoError(t, err)

	maxCapacity, maxItems := s.bounds()
	assert.Equal(t, 10, maxCapacity)
	assert.Equal(t, 2, maxItems)
	assert.Equal(t, "OUT_OF_CAPACITY", s.Candidates[3].Error)
}

func TestLoadScenario_FileNotFound(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenario_FromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: disk
description: "written by the test"
solves:
  - capacity: 3
`), 0644))

	s, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Empty(t, s.Candidates)
	assert.Nil(t, s.Solves[0].Expect)
}

func TestParseScenario_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		msg  string
	}{
		{
			name: "unknown field",
			yaml: "name: x\ndescription: d\nsolve:\n  - capacity: 1\n",
			msg:  "field solve not found",
		},
		{
			name: "malformed",
			yaml: "name: [unclosed",
			msg:  "failed to parse YAML",
		},
		{
			name: "missing name",
			yaml: "description: d\nsolves:\n  - capacity: 1\n",
			msg:  "name is required",
		},
		{
			name: "missing description",
			yaml: "name: x\nsolves:\n  - capacity: 1\n",
			msg:  "description is required",
		},
		{
			name: "no solves",
			yaml: "name: x\ndescription: d\n",
			msg:  "solves list is required",
		},
		{
			name: "negative bound",
			yaml: "name: x\ndescription: d\nmax_items: -1\nsolves:\n  - capacity: 1\n",
			msg:  "max_items must be non-negative",
		},
		{
			name: "unnamed candidate",
			yaml: "name: x\ndescription: d\ncandidates:\n  - {weight: 1, value: 1}\nsolves:\n  - capacity: 1\n",
			msg:  "candidates[0]: name is required",
		},
		{
			name: "duplicate candidate",
			yaml: "name: x\ndescription: d\ncandidates:\n  - {name: a, weight: 1, value: 1}\n  - {name: a, weight: 2, value: 2}\nsolves:\n  - capacity: 1\n",
			msg:  `duplicate name "a"`,
		},
		{
			name: "unknown payload",
			yaml: "name: x\ndescription: d\ncandidates:\n  - {name: a, weight: 1, value: 1}\nsolves:\n  - capacity: 1\n    expect: {payloads: [z]}\n",
			msg:  `unknown payload "z"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}
