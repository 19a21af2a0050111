// Package selection implements the predicate algebra over numeric columns.
//
// A Selection classifies each element of a []float64 buffer. The variant set
// is closed and sealed:
//
//   - Interval: value lies within [low, high] per the inclusivity flags
//   - Override: value equals a constant exactly
//   - Missing:  value is NaN
//   - Identity: always matches (the catch-all)
//
// NaN is the missing-value marker. It never matches an Interval or an
// Override, and always matches Missing.
//
// # Ordering
//
// When several selections could claim the same element they are evaluated in
// a fixed order given by the key (priority, order, representative):
//
//	Interval  priority 0    representative = low bound
//	Override  priority 1    representative = -Inf
//	Missing   priority 2    representative = -Inf
//	Identity  priority 100  representative = -Inf
//
// Sort is stable, so selections with identical keys keep their input order.
//
// All values are immutable once constructed. Validation happens in the
// constructors; there are no setters.
package selection
