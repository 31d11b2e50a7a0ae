// Package harness runs solver scenarios as executable contract tests.
//
// A scenario offers a list of candidates to a real knapsack.Solver[string]
// and solves one or more capacities, checking each result against the
// scenario's expectations and against an exhaustive reference search.
//
// # Scenario Format
//
//	name: concrete_mix
//	description: "Ties resolve toward the higher-value candidate"
//	max_capacity: 128   # optional, default 128
//	max_items: 128      # optional, default 128
//	candidates:
//	  - {name: a, weight: 2, value: 3}
//	  - {name: bad, weight: 0, value: 1, error: INVALID_CANDIDATE}
//	solves:
//	  - capacity: 5
//	    expect: {value: 7, weight: 5, length: 2, payloads: [b, a]}
//	  - capacity: 500
//	    expect: {error: CAPACITY_OUT_OF_RANGE}
//
// Candidate names must be unique; they are the solver payloads. An error
// field names the solver error code the call must return.
//
// # Checks
//
// Every successful solve is checked for feasibility (recomputed weight
// within capacity, totals consistent with the payloads). Small instances
// are also checked for optimality against an exhaustive enumeration that
// shares no code with the solver.
//
// # Golden Files
//
// The trace of add and solve events serializes to canonical JSON, so
// golden files are byte-stable:
//
//	go test ./internal/harness -update
package harness
