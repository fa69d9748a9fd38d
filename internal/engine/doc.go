// Package engine implements the gravitational sandbox core: point bodies
// confined to a bounded viewport, O(n²) pairwise force accumulation with a
// softening clamp, semi-implicit Euler integration, and damped wall
// rebound. The engine is driven synchronously by a single frame loop and
// hands out read-only snapshots for rendering.
package engine
