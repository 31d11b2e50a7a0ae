package testutil

import (
	"fmt"
	"sync"
)

// SequentialIDs generates predictable, unique wave IDs: "<prefix>-0001",
// "<prefix>-0002", ...
//
// Golden traces and store assertions need IDs that are identical on every
// run, which UUIDv7 cannot give.
type SequentialIDs struct {
	mu     sync.Mutex
	prefix string
	n      int
}

// NewSequentialIDs creates a generator. An empty prefix defaults to "wave".
func NewSequentialIDs(prefix string) *SequentialIDs {
	if prefix == "" {
		prefix = "wave"
	}
	return &SequentialIDs{prefix: prefix}
}

// Generate returns the next ID.
func (g *SequentialIDs) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s-%04d", g.prefix, g.n)
}
