// Package collections implements the per-domain item lists (countdowns,
// budgets, packing lists, planner days) on top of the write-through cache.
//
// Each [Collection] owns the named list for one content domain under the
// domain's stable storage key. Lists persist as a wrapper object
// {"items": [...]} rather than a bare array; an older bare-array shape is
// detected and transparently upgraded on first read.
//
// Creation and deletion fire synchronous hooks that the composition root
// wires to the auto-link reconciler and the widget reference cleanup.
package collections
