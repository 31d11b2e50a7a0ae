// Package spawner turns a catalog of enemies into periodic waves.
//
// Each wave is the solution of an unbounded knapsack problem: enemy weight is
// the cost, enemy value is the difficulty it contributes, and the spawner's
// capacity is the difficulty ceiling. The spawner re-offers the catalog to a
// preallocated [knapsack.Solver] on every solve, so enemy definitions may
// change between waves.
//
// LIFECYCLE:
//
//	sp, err := spawner.New(cat, spawner.WithSeed(42))
//	...
//	wave, err := sp.Update(dt) // nil wave until the interval elapses
//	for _, s := range wave.Spawns {
//	    // s.Instance is active and positioned
//	}
//	sp.Release(inst)           // instance returns to its enemy's pool
//
// Spawned instances are placed on a flat circle (Y = 0) of the configured
// radius around the origin, at a uniformly random angle. Instances are
// pooled per enemy name and reused last-in first-out.
//
// CONCURRENCY:
//
// A Spawner is not safe for concurrent use. [Spawner.Run] drives it from a
// single goroutine; callers that need waves elsewhere should consume the
// Recorder or Observer hooks instead of calling Update concurrently.
package spawner
