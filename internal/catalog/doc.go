// Package catalog loads spawnable enemy definitions and spawner settings
// from CUE files.
//
// # File Format
//
// Every .cue file in a catalog directory belongs to one CUE package:
//
//	package waves
//
//	enemy: grunt: {
//		weight: 1          // space the enemy takes in a wave
//		value:  1          // difficulty it contributes
//		prefab: "cubie/grunt"
//	}
//
//	enemy: brute: {
//		weight: 4
//		value:  6
//		prefab: "cubie/brute"
//	}
//
//	spawner: {
//		capacity: 24       // per-wave weight ceiling, 1..MaxCapacity
//		interval: "8s"     // time between waves
//		radius:   10       // spawn circle radius around the origin
//	}
//
// Enemies keep their declaration order, which is the order they are offered
// to the solver and therefore part of tie-breaking.
//
// Structural problems (missing fields, wrong types) fail compilation with a
// positioned CompileError. Enemies with a non-positive weight or value, or no
// prefab, compile but are reported by Validate and skipped when solving.
package catalog
