package selection

import (
	"fmt"
	"math"
)

// comparator tests x against one interval bound.
type comparator func(x, bound float64) bool

func gt(x, b float64) bool { return x > b }
func ge(x, b float64) bool { return x >= b }
func lt(x, b float64) bool { return x < b }
func le(x, b float64) bool { return x <= b }

// comparators pairs the low and high test for each boundary combination.
var comparators = map[Bounds][2]comparator{
	Open:      {gt, lt},
	LeftOpen:  {gt, le},
	RightOpen: {ge, lt},
	Closed:    {ge, le},
}

// Deref returns the value form of s. Pointers to the variants satisfy
// Selection too; every type switch in this module works on values.
func Deref(s Selection) Selection {
	switch p := s.(type) {
	case *Identity:
		return *p
	case *Interval:
		return *p
	case *Override:
		return *p
	case *Missing:
		return *p
	}
	return s
}

// Contains reports whether x is matched by s.
func Contains(s Selection, x float64) bool {
	switch sel := Deref(s).(type) {
	case Identity:
		return true
	case Interval:
		if math.IsNaN(x) {
			return false
		}
		cmp := comparators[sel.bounds]
		return cmp[0](x, sel.low) && cmp[1](x, sel.high)
	case Override:
		return !math.IsNaN(x) && x == sel.value
	case Missing:
		return math.IsNaN(x)
	default:
		panic(fmt.Sprintf("selection: unknown variant %T", s))
	}
}

// InSelection evaluates s over xs and returns a mask of the same length.
func InSelection(s Selection, xs []float64) []bool {
	return InSelectionInto(s, xs, make([]bool, len(xs)))
}

// InSelectionInto is InSelection writing into dst, which must be at least
// len(xs) long. It returns dst[:len(xs)].
func InSelectionInto(s Selection, xs []float64, dst []bool) []bool {
	dst = dst[:len(xs)]

	switch sel := Deref(s).(type) {
	case Identity:
		for i := range dst {
			dst[i] = true
		}
	case Interval:
		cmp := comparators[sel.bounds]
		lo, hi := cmp[0], cmp[1]
		for i, x := range xs {
			// NaN fails every comparison already; the explicit test keeps
			// the masked-invalid rule independent of the comparator table.
			dst[i] = !math.IsNaN(x) && lo(x, sel.low) && hi(x, sel.high)
		}
	case Override:
		for i, x := range xs {
			dst[i] = !math.IsNaN(x) && x == sel.value
		}
	case Missing:
		for i, x := range xs {
			dst[i] = math.IsNaN(x)
		}
	default:
		panic(fmt.Sprintf("selection: unknown variant %T", s))
	}

	return dst
}
