package selection

import (
	"cmp"
	"math"
	"slices"
)

// priorities holds the fixed evaluation priority of each variant.
// Lower values are evaluated first.
var priorities = map[Kind]int{
	KindInterval: 0,
	KindOverride: 1,
	KindMissing:  2,
	KindIdentity: 100,
}

// Priority returns the evaluation priority of kind k.
// Unknown kinds sort after everything else.
func Priority(k Kind) int {
	p, ok := priorities[k]
	if !ok {
		return math.MaxInt
	}
	return p
}

// SortKey is the derived ordering key of a selection.
type SortKey struct {
	Priority       int
	Order          int
	Representative float64
}

// Key derives the ordering key of s. The representative is the low bound
// for an Interval and -Inf for every other variant.
func Key(s Selection) SortKey {
	rep := math.Inf(-1)
	if iv, ok := Deref(s).(Interval); ok {
		rep = iv.low
	}
	return SortKey{
		Priority:       Priority(s.Kind()),
		Order:          s.Order(),
		Representative: rep,
	}
}

// Compare orders two keys by priority, then order, then representative.
func (k SortKey) Compare(other SortKey) int {
	if c := cmp.Compare(k.Priority, other.Priority); c != 0 {
		return c
	}
	if c := cmp.Compare(k.Order, other.Order); c != 0 {
		return c
	}
	return cmp.Compare(k.Representative, other.Representative)
}

// Compare orders two selections by their keys.
func Compare(a, b Selection) int {
	return Key(a).Compare(Key(b))
}

// Sort sorts ss in place into evaluation order. The sort is stable.
func Sort(ss []Selection) {
	slices.SortStableFunc(ss, Compare)
}
