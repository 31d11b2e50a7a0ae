package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/wavespawn/internal/canon"
)

// Snapshot serializes a scenario trace to canonical JSON. Equal traces
// always produce identical bytes.
func Snapshot(scenarioName string, trace []TraceEvent) ([]byte, error) {
	events := make([]any, len(trace))
	for i, ev := range trace {
		m := map[string]any{
			"type": ev.Type,
			"seq":  ev.Seq,
		}
		switch ev.Type {
		case EventAdd:
			m["name"] = ev.Name
			m["weight"] = ev.Weight
			m["value"] = ev.Value
		case EventSolve:
			m["capacity"] = ev.Capacity
			if ev.Error == "" {
				m["payloads"] = append([]string{}, ev.Payloads...)
				m["total_value"] = ev.TotalValue
				m["total_weight"] = ev.TotalWeight
			}
		}
		if ev.Error != "" {
			m["error"] = ev.Error
		}
		events[i] = m
	}

	return canon.MarshalCanonical(map[string]any{
		"scenario_name": scenarioName,
		"trace":         events,
	})
}

// RunWithGolden executes a scenario and compares the trace against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns an error if the scenario cannot run. Trace mismatches fail t via
// goldie; failed checks are left to the caller through the returned result.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}

	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result's trace against its golden file.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	data, err := Snapshot(scenarioName, result.Trace)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, data)
	return nil
}
