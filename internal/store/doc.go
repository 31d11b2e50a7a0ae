// Package store provides SQLite-backed wave history.
//
// Every wave the spawner produces is appended with its spawns, so a run can
// be audited or summarized after the fact. Solver state is never persisted;
// it is rebuilt from the catalog on every solve.
//
// # Tables
//
//   - waves: one row per wave, keyed by wave ID, unique by seq
//   - wave_spawns: one row per spawned enemy, unique by (wave_id, idx)
//
// # Ordering
//
// Queries order by seq ASC, id ASC COLLATE BINARY so results are identical
// across runs. Spawns keep the solver's reconstruction order via idx.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
