package harness

import "fmt"

// Reference bounds: exhaustive enumeration is exponential, so larger
// instances only get the feasibility check.
const (
	ReferenceMaxCapacity   = 32
	ReferenceMaxCandidates = 6
)

// checkReference verifies a successful solve against the accepted
// candidates. Feasibility is always checked; optimality only within the
// reference bounds.
func checkReference(prefix string, accepted []Candidate, ev TraceEvent) []string {
	var errs []string
	fail := func(field, expected, actual string) {
		errs = append(errs, (&AssertionError{
			Step:     prefix + "." + field,
			Expected: expected,
			Actual:   actual,
		}).Error())
	}

	byName := make(map[string]Candidate, len(accepted))
	for _, c := range accepted {
		byName[c.Name] = c
	}

	weight, value := 0, 0
	for _, p := range ev.Payloads {
		c, ok := byName[p]
		if !ok {
			fail("payloads", "only accepted candidates", fmt.Sprintf("%q", p))
			return errs
		}
		weight += c.Weight
		value += c.Value
	}
	if weight > ev.Capacity {
		fail("feasibility", fmt.Sprintf("weight <= %d", ev.Capacity), fmt.Sprint(weight))
	}
	if weight != ev.TotalWeight {
		fail("total_weight", fmt.Sprint(weight), fmt.Sprint(ev.TotalWeight))
	}
	if value != ev.TotalValue {
		fail("total_value", fmt.Sprint(value), fmt.Sprint(ev.TotalValue))
	}

	if ev.Capacity <= ReferenceMaxCapacity && len(accepted) <= ReferenceMaxCandidates {
		if best := exhaustiveBest(accepted, ev.Capacity); best != ev.TotalValue {
			fail("optimality", fmt.Sprint(best), fmt.Sprint(ev.TotalValue))
		}
	}
	return errs
}

// exhaustiveBest enumerates every multiset of candidates that fits in
// capacity and returns the highest total value.
func exhaustiveBest(cands []Candidate, capacity int) int {
	var walk func(i, remaining int) int
	walk = func(i, remaining int) int {
		if i == len(cands) {
			return 0
		}
		best := 0
		c := cands[i]
		for n := 0; n*c.Weight <= remaining; n++ {
			if v := n*c.Value + walk(i+1, remaining-n*c.Weight); v > best {
				best = v
			}
		}
		return best
	}
	return walk(0, capacity)
}
