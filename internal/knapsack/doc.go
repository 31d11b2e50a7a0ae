// Package knapsack implements the bounded, reusable weighted-selection solver
// behind wave spawning.
//
// A Solver picks a multiset of candidates (weight, value, payload) that
// maximizes total value without the total weight exceeding a capacity. Each
// candidate may be picked any number of times (unbounded knapsack).
//
// LIFECYCLE:
//
// One solve cycle is:
//  1. Clear() resets the candidate set and the result
//  2. Add() appends candidates in a caller-chosen order
//  3. Solve(capacity) fills the result buffer
//  4. Len()/At()/All() read the result
//
// All storage (candidate buffer, DP table, result buffer) is allocated once by
// New. Clear, Add, Solve and the result readers never allocate.
//
// DETERMINISM:
//
// For every weight class the DP keeps the candidate that reaches the best
// value. Ties prefer the candidate with the higher intrinsic value, then the
// one added first. Reconstruction walks the same choices, so identical
// candidate sets (order included) and capacities always produce identical
// result sequences.
//
// CONCURRENCY:
//
// A Solver is owned by a single control loop. It holds no locks; calling any
// method concurrently with Add, Clear or Solve is a precondition violation and
// the behavior is undefined.
package knapsack
