package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunWithGolden_ConcreteMix(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/concrete_mix.yaml")
	require.NoError(t, err)

	result, err := RunWithGolden(t, s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestRunWithGolden_SolverErrors(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/solver_errors.yaml")
	require.NoError(t, err)

	result, err := RunWithGolden(t, s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestSnapshot_Deterministic(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/repetition.yaml")
	require.NoError(t, err)

	r1, err := Run(s)
	require.NoError(t, err)
	r2, err := Run(s)
	require.NoError(t, err)

	a, err := Snapshot(s.Name, r1.Trace)
	require.NoError(t, err)
	b, err := Snapshot(s.Name, r2.Trace)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestSnapshot_Format(t *testing.T) {
	trace := []TraceEvent{
		{Type: EventAdd, Seq: 1, Name: "a", Weight: 2, Value: 3},
		{Type: EventSolve, Seq: 2, Capacity: 9, Error: "CAPACITY_OUT_OF_RANGE"},
		{Type: EventSolve, Seq: 3, Capacity: 0},
	}

	data, err := Snapshot("fmt", trace)
	require.NoError(t, err)
	assert.Equal(t,
		`{"scenario_name":"fmt","trace":[`+
			`{"name":"a","seq":1,"type":"add","value":3,"weight":2},`+
			`{"capacity":9,"error":"CAPACITY_OUT_OF_RANGE","seq":2,"type":"solve"},`+
			`{"capacity":0,"payloads":[],"seq":3,"total_value":0,"total_weight":0,"type":"solve"}]}`,
		string(data))
}
