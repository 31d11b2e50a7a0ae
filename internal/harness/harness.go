package harness

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/wavespawn/internal/knapsack"
)

// Harness executes one scenario against a fresh solver.
type Harness struct {
	solver   *knapsack.Solver[string]
	accepted []Candidate
	seq      int64
}

// AssertionError is a failed check with enough context to debug it.
type AssertionError struct {
	Step     string // e.g. "solves[0].value"
	Expected string
	Actual   string
}

func (e *AssertionError) Error() string {
	return fmt.Sprintf("%s: expected %s, got %s", e.Step, e.Expected, e.Actual)
}

// Run executes a scenario and returns the result.
//
// Execution flow:
// 1. Create a solver with the scenario's bounds
// 2. Add every candidate, checking expected add errors
// 3. Solve every step, checking expectations and reference results
//
// Run returns an error only if the solver cannot be created; failed checks
// are reported in the result.
func Run(scenario *Scenario) (*Result, error) {
	maxCapacity, maxItems := scenario.bounds()
	solver, err := knapsack.New[string](maxCapacity, maxItems)
	if err != nil {
		return nil, fmt.Errorf("failed to create solver: %w", err)
	}

	h := &Harness{solver: solver}
	result := NewResult()

	for i, c := range scenario.Candidates {
		h.add(i, c, result)
	}
	for i, step := range scenario.Solves {
		h.solve(i, step, result)
	}

	return result, nil
}

func (h *Harness) nextSeq() int64 {
	h.seq++
	return h.seq
}

func (h *Harness) add(i int, c Candidate, result *Result) {
	err := h.solver.Add(c.Weight, c.Value, c.Name)
	code := errorCode(err)
	result.AddTrace(TraceEvent{
		Type:   EventAdd,
		Seq:    h.nextSeq(),
		Name:   c.Name,
		Weight: c.Weight,
		Value:  c.Value,
		Error:  code,
	})

	if code != c.Error {
		result.AddError((&AssertionError{
			Step:     fmt.Sprintf("candidates[%d].error", i),
			Expected: describeCode(c.Error),
			Actual:   describeCode(code),
		}).Error())
	}
	if err == nil {
		h.accepted = append(h.accepted, c)
	}
}

func (h *Harness) solve(i int, step SolveStep, result *Result) {
	err := h.solver.Solve(step.Capacity)
	ev := TraceEvent{
		Type:     EventSolve,
		Seq:      h.nextSeq(),
		Capacity: step.Capacity,
		Error:    errorCode(err),
	}
	if err == nil {
		ev.Payloads = make([]string, 0, h.solver.Len())
		for _, p := range h.solver.All() {
			ev.Payloads = append(ev.Payloads, p)
		}
		ev.TotalValue = h.solver.TotalValue()
		ev.TotalWeight = h.solver.TotalWeight()
	}
	result.AddTrace(ev)

	prefix := fmt.Sprintf("solves[%d]", i)
	var wantErr string
	if step.Expect != nil {
		wantErr = step.Expect.Error
	}
	if ev.Error != wantErr {
		result.AddError((&AssertionError{
			Step:     prefix + ".error",
			Expected: describeCode(wantErr),
			Actual:   describeCode(ev.Error),
		}).Error())
		return
	}
	if err != nil {
		return
	}

	if step.Expect != nil {
		for _, msg := range checkExpect(prefix, step.Expect, ev) {
			result.AddError(msg)
		}
	}
	for _, msg := range checkReference(prefix, h.accepted, ev) {
		result.AddError(msg)
	}
}

// checkExpect compares a successful solve against the scenario's expectation.
func checkExpect(prefix string, want *Expect, ev TraceEvent) []string {
	var errs []string
	check := func(field string, expected *int, actual int) {
		if expected != nil && *expected != actual {
			errs = append(errs, (&AssertionError{
				Step:     prefix + "." + field,
				Expected: fmt.Sprint(*expected),
				Actual:   fmt.Sprint(actual),
			}).Error())
		}
	}
	check("value", want.Value, ev.TotalValue)
	check("weight", want.Weight, ev.TotalWeight)
	check("length", want.Length, len(ev.Payloads))

	if want.Payloads != nil && !slices.Equal(want.Payloads, ev.Payloads) {
		errs = append(errs, (&AssertionError{
			Step:     prefix + ".payloads",
			Expected: "[" + strings.Join(want.Payloads, " ") + "]",
			Actual:   "[" + strings.Join(ev.Payloads, " ") + "]",
		}).Error())
	}
	return errs
}

// errorCode returns the solver error code of err, or "" for nil.
func errorCode(err error) string {
	if err == nil {
		return ""
	}
	var ke *knapsack.Error
	if errors.As(err, &ke) {
		return string(ke.Code)
	}
	return "UNKNOWN"
}

func describeCode(code string) string {
	if code == "" {
		return "no error"
	}
	return code
}
