package engine

import (
	"math"

	"github.com/roach88/boostcard/internal/selection"
)

// FillKind is the state of a Fill.
type FillKind uint8

const (
	// FillUnset means no fill policy has been configured.
	FillUnset FillKind = iota
	// FillPassThrough copies the matched input value into the result.
	FillPassThrough
	// FillConstant writes a fixed value into the result.
	FillConstant
)

// Fill is the replacement policy of a fitted selection.
// The zero value is unset.
type Fill struct {
	kind  FillKind
	value float64
}

// PassThrough returns a fill that keeps the original input value.
func PassThrough() Fill {
	return Fill{kind: FillPassThrough}
}

// Constant returns a fill that replaces matched values with v.
func Constant(v float64) Fill {
	return Fill{kind: FillConstant, value: v}
}

// Kind returns the fill state.
func (f Fill) Kind() FillKind { return f.kind }

// Value returns the constant and true for a constant fill.
func (f Fill) Value() (float64, bool) {
	return f.value, f.kind == FillConstant
}

func (f Fill) String() string {
	switch f.kind {
	case FillPassThrough:
		return "passthrough"
	case FillConstant:
		return selection.FormatValue(f.value)
	default:
		return "unset"
	}
}

// apply returns the value written for input x.
func (f Fill) apply(x float64) float64 {
	if f.kind == FillConstant {
		return f.value
	}
	return x
}

// NewResult returns a result buffer of length n with every slot unset.
func NewResult(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

// IsUnset reports whether a result slot is still unclaimed.
func IsUnset(v float64) bool {
	return math.IsNaN(v)
}
