package knapsack

import (
	"fmt"
	"strings"
)

// String renders the current result for diagnostics. The format is not
// stable and must not be parsed.
//
//	knapsack: capacity=5 weight=5 value=7 count=2 [b a]
func (s *Solver[T]) String() string {
	var buf strings.Builder
	if !s.solved {
		fmt.Fprintf(&buf, "knapsack: unsolved candidates=%d", len(s.items))
		return buf.String()
	}

	fmt.Fprintf(&buf, "knapsack: capacity=%d weight=%d value=%d count=%d [",
		s.capacity, s.totalWeight, s.totalValue, len(s.result))
	for i, idx := range s.result {
		if i > 0 {
			buf.WriteByte(' ')
		}
		fmt.Fprintf(&buf, "%v", s.items[idx].payload)
	}
	buf.WriteByte(']')
	return buf.String()
}
