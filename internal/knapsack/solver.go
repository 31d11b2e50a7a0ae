package knapsack

import (
	"iter"
	"math"
)

// none marks a weight class that no candidate fits.
const none = -1

type candidate[T any] struct {
	weight  int
	value   int
	payload T
}

// Solver is a bounded, reusable unbounded-knapsack workspace.
//
// INVARIANTS:
//   - len(items) <= maxItems, and items only changes through Add and Clear
//   - best and choice have length maxCapacity+1 and are never reallocated
//   - result holds candidate indices; its total weight never exceeds capacity
//
// Not safe for concurrent use. See the package documentation.
type Solver[T any] struct {
	maxCapacity int
	maxItems    int

	items  []candidate[T]
	best   []int
	choice []int
	result []int

	solved      bool
	capacity    int
	totalValue  int
	totalWeight int
}

// New creates a Solver with fixed bounds and preallocates all of its storage.
//
// maxCapacity caps the capacity accepted by Solve; maxItems caps the number of
// candidates accepted by Add. Both must be at least 1 and never change for the
// lifetime of the solver.
func New[T any](maxCapacity, maxItems int) (*Solver[T], error) {
	if maxCapacity < 1 || maxItems < 1 {
		return nil, &Error{
			Code:    CodeInvalidBounds,
			Message: "maxCapacity and maxItems must be at least 1",
			Got:     min(maxCapacity, maxItems),
			Limit:   1,
		}
	}

	return &Solver[T]{
		maxCapacity: maxCapacity,
		maxItems:    maxItems,
		items:       make([]candidate[T], 0, maxItems),
		best:        make([]int, maxCapacity+1),
		choice:      make([]int, maxCapacity+1),
		// Every weight is >= 1, so a result never holds more than capacity entries.
		result: make([]int, 0, maxCapacity),
	}, nil
}

// MustNew is like New but panics on invalid bounds.
// Intended for package-level construction with constant bounds.
func MustNew[T any](maxCapacity, maxItems int) *Solver[T] {
	s, err := New[T](maxCapacity, maxItems)
	if err != nil {
		panic(err)
	}
	return s
}

// Clear drops all candidates and the current result. Idempotent.
//
// Callers must Clear before a fresh round of Add calls; otherwise Add appends
// to the previous cycle's candidates.
func (s *Solver[T]) Clear() {
	var zero candidate[T]
	for i := range s.items {
		s.items[i] = zero // release payload references
	}
	s.items = s.items[:0]
	s.resetResult()
	s.solved = false
}

// Add appends a candidate.
//
// Returns an OUT_OF_CAPACITY error when maxItems candidates are already held,
// and an INVALID_CANDIDATE error when weight or value is not positive or value
// exceeds MaxValue. A rejected candidate is not added.
func (s *Solver[T]) Add(weight, value int, payload T) error {
	if len(s.items) == s.maxItems {
		return newOutOfCapacityError(s.maxItems)
	}
	if weight <= 0 || value <= 0 {
		return newInvalidCandidateError(weight, value)
	}
	if value > s.MaxValue() {
		return newValueTooLargeError(value, s.MaxValue())
	}
	s.items = append(s.items, candidate[T]{weight: weight, value: value, payload: payload})
	return nil
}

// Solve computes the best-value selection whose total weight is at most
// capacity and stores it as the current result.
//
// Returns a CAPACITY_OUT_OF_RANGE error, leaving the previous result intact,
// when capacity is negative or above maxCapacity. The candidate set is never
// modified. Runs in O(capacity × candidates) time without allocating.
func (s *Solver[T]) Solve(capacity int) error {
	if capacity < 0 || capacity > s.maxCapacity {
		return newCapacityOutOfRangeError(capacity, s.maxCapacity)
	}

	best := s.best[:capacity+1]
	choice := s.choice[:capacity+1]
	best[0], choice[0] = 0, none

	for w := 1; w <= capacity; w++ {
		bestValue, pick := 0, none
		for i := range s.items {
			c := &s.items[i]
			if c.weight > w {
				continue
			}
			v := best[w-c.weight] + c.value
			// Equal totals go to the more valuable candidate; equal values keep
			// the earlier one.
			if v > bestValue || (v == bestValue && c.value > s.items[pick].value) {
				bestValue, pick = v, i
			}
		}
		best[w], choice[w] = bestValue, pick
	}

	s.resetResult()
	for rem := capacity; choice[rem] != none; {
		i := choice[rem]
		s.result = append(s.result, i)
		s.totalWeight += s.items[i].weight
		s.totalValue += s.items[i].value
		rem -= s.items[i].weight
	}
	s.capacity = capacity
	s.solved = true
	return nil
}

// Len returns the number of entries in the current result.
func (s *Solver[T]) Len() int {
	return len(s.result)
}

// At returns the payload at position i of the current result.
// Returns an INDEX_OUT_OF_RANGE error unless 0 <= i < Len().
func (s *Solver[T]) At(i int) (T, error) {
	if i < 0 || i >= len(s.result) {
		var zero T
		return zero, newIndexOutOfRangeError(i, len(s.result))
	}
	return s.items[s.result[i]].payload, nil
}

// All iterates the current result in order.
func (s *Solver[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, idx := range s.result {
			if !yield(i, s.items[idx].payload) {
				return
			}
		}
	}
}

// TotalValue returns the summed value of the current result.
func (s *Solver[T]) TotalValue() int {
	return s.totalValue
}

// TotalWeight returns the summed weight of the current result.
func (s *Solver[T]) TotalWeight() int {
	return s.totalWeight
}

// Capacity returns the capacity of the last successful Solve since Clear,
// or -1 if there was none.
func (s *Solver[T]) Capacity() int {
	if !s.solved {
		return -1
	}
	return s.capacity
}

// Count returns the number of candidates currently held.
func (s *Solver[T]) Count() int {
	return len(s.items)
}

// MaxCapacity returns the construction-time capacity bound.
func (s *Solver[T]) MaxCapacity() int {
	return s.maxCapacity
}

// MaxValue returns the largest value Add accepts. A result holds at most
// maxCapacity entries, so totals up to maxCapacity*MaxValue cannot overflow.
func (s *Solver[T]) MaxValue() int {
	return math.MaxInt / s.maxCapacity
}

// MaxItems returns the construction-time candidate bound.
func (s *Solver[T]) MaxItems() int {
	return s.maxItems
}

func (s *Solver[T]) resetResult() {
	s.result = s.result[:0]
	s.totalValue = 0
	s.totalWeight = 0
}
