// Package city solves the placement of a repository tree as a 3D city.
//
// # Overview
//
// Skyline renders a file/folder hierarchy as a city skyline: files become
// buildings whose height follows their line count, folders become flat
// districts, and the whole city is spread across the ground plane so that
// no two footprints overlap. This package is the layout solver - it turns
// an input tree into a flat list of positioned, sized blocks and knows
// nothing about rendering, fetching, or parsing.
//
// # Pipeline
//
// A single [Build] call runs four stages over records it exclusively owns:
//
//  1. Flatten: depth-first walk of the tree into a capped, ordered list of
//     simulation bodies with parent/child linkage
//  2. Simulate: fixed-step force integration (pairwise repulsion,
//     hierarchical attraction toward the parent, velocity damping)
//  3. Collide: symmetric positional overlap correction, nested inside each
//     simulation iteration
//  4. Export: map final body state into [layout.Block] records
//
// # Basic Usage
//
//	blocks := city.Layout(root)
//
// or, when the run metadata matters:
//
//	l := city.Build(root, city.WithIterations(80), city.WithSeed(7))
//
// # Determinism
//
// Traversal order is fixed by the input tree. The two random effects -
// initial jitter placement and the tie-break for near-coincident bodies -
// draw from an injected PCG source seeded with [DefaultSeed], so identical
// input yields identical positions. Use [WithSeed] or [WithRand] to vary
// runs deliberately. Block timestamps are synthesized from the wall clock
// and are the one non-reproducible output field.
//
// # Cost
//
// Repulsion and collision are all-pairs passes, so one call costs
// O(iterations x n^2) with n capped at [MaxNodes]. The call is synchronous
// and CPU-bound; interactive callers should run it on a background
// goroutine and watch progress via [WithProgress].
package city
