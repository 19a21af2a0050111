// Package engine implements the fitted coalescer.
//
// A Fitted pairs a selection with a Fill policy. Coalescing folds a list of
// fitted selections over a single result buffer that starts out unset (NaN):
//
//	for each fitted f in sorted order:
//	    matched = f.selection matches x  AND  result is unset
//	    result[matched] = f.fill (or x itself for pass-through)
//
// The unset guard makes resolution first-match-wins: once a slot holds a
// value, no later (lower-priority) selection can overwrite it.
//
// CONCURRENCY:
//
// Predicate evaluation reads only immutable selections and the input buffer,
// so CoalesceContext may evaluate the masks of all selections concurrently.
// The merge is a strictly sequential fold in sort order and is never run in
// parallel: each step's guard depends on every step before it.
//
// FILL STATE:
//
// Fill is an explicit tri-state (unset, pass-through, constant). NaN is
// reserved for "missing data" and "unresolved slot"; it never doubles as a
// "not yet fitted" marker.
package engine
