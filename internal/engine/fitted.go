package engine

import (
	"slices"

	"github.com/roach88/boostcard/internal/selection"
)

// Fitted pairs a selection with its fill policy.
type Fitted struct {
	Selection selection.Selection
	Fill      Fill
}

// NewFitted creates a Fitted.
func NewFitted(sel selection.Selection, fill Fill) Fitted {
	return Fitted{Selection: sel, Fill: fill}
}

// Fitted reports whether an explicit constant fill has been configured.
// Pass-through and unset fills report false.
func (f Fitted) Fitted() bool {
	return f.Fill.kind == FillConstant
}

// Key returns the ordering key of the underlying selection.
func (f Fitted) Key() selection.SortKey {
	return selection.Key(f.Selection)
}

func (f Fitted) String() string {
	return f.Selection.String() + " -> " + f.Fill.String()
}

// Transform applies f to xs on top of result and returns a new buffer.
// Slots that f matches and that are still unset in result take the fill;
// every other slot keeps its value from result. result itself is not modified.
func (f Fitted) Transform(xs, result []float64) ([]float64, error) {
	if len(xs) != len(result) {
		return nil, newLengthError(len(xs), len(result))
	}
	if f.Fill.kind == FillUnset {
		return nil, newNotFittedError(-1, f.Selection)
	}

	out := slices.Clone(result)
	mask := selection.InSelection(f.Selection, xs)
	mergeInto(out, nil, -1, f.Fill, xs, mask)
	return out, nil
}

// mergeInto writes fill into every matched, unset slot of out and records
// step in claimed (when non-nil). Returns the number of slots resolved.
func mergeInto(out []float64, claimed []int, step int, fill Fill, xs []float64, mask []bool) int {
	n := 0
	for i, hit := range mask {
		if !hit || !IsUnset(out[i]) {
			continue
		}
		v := fill.apply(xs[i])
		out[i] = v
		if IsUnset(v) {
			// A NaN pass-through or NaN constant leaves the slot open.
			continue
		}
		if claimed != nil {
			claimed[i] = step
		}
		n++
	}
	return n
}

// Sort sorts fs in place into evaluation order. The sort is stable.
func Sort(fs []Fitted) {
	slices.SortStableFunc(fs, func(a, b Fitted) int {
		return a.Key().Compare(b.Key())
	})
}
