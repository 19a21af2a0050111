package selection

import (
	"fmt"
	"math"
	"strconv"
)

// Kind is the discriminator of a selection variant. The string form is the
// "type" field of the record that describes it.
type Kind string

const (
	KindIdentity Kind = "identity"
	KindInterval Kind = "interval"
	KindOverride Kind = "override"
	KindMissing  Kind = "missing"
)

// Selection is a sealed interface.
// Only Identity, Interval, Override and Missing implement it.
type Selection interface {
	Kind() Kind
	Order() int
	String() string
	selection() // Sealed - only these types implement it
}

// Identity matches every element. It is the last-resort fallback.
type Identity struct {
	order int
}

// NewIdentity creates an Identity selection.
func NewIdentity(order int) Identity {
	return Identity{order: order}
}

func (Identity) selection() {}
func (Identity) Kind() Kind { return KindIdentity }
func (s Identity) Order() int { return s.order }
func (Identity) String() string { return "Identity" }

// Interval matches values between two bounds.
type Interval struct {
	low, high float64
	bounds    Bounds
	order     int
	mono      Monotonicity
}

// NewInterval creates an Interval over the two values a and b, in either
// order; they are stored ascending. Fails if either value is NaN or mono is
// not one of the three allowed values.
func NewInterval(a, b float64, bounds Bounds, order int, mono Monotonicity) (Interval, error) {
	if math.IsNaN(a) || math.IsNaN(b) {
		return Interval{}, fmt.Errorf("%w: interval bound is NaN", ErrInvalidValue)
	}
	if !mono.Valid() {
		return Interval{}, fmt.Errorf("%w: %d (want -1, 0 or 1)", ErrInvalidMonotonicity, mono)
	}
	if a > b {
		a, b = b, a
	}
	return Interval{low: a, high: b, bounds: bounds, order: order, mono: mono}, nil
}

func (Interval) selection() {}
func (Interval) Kind() Kind { return KindInterval }
func (s Interval) Order() int { return s.order }
func (s Interval) Low() float64 { return s.low }
func (s Interval) High() float64 { return s.high }
func (s Interval) Bounds() Bounds { return s.bounds }
func (s Interval) Monotonicity() Monotonicity { return s.mono }

// String renders the interval in bracket notation, e.g. "[10, 20)".
func (s Interval) String() string {
	return s.bounds.open() + FormatValue(s.low) + ", " + FormatValue(s.high) + s.bounds.close()
}

// Override matches one exact value.
type Override struct {
	value float64
	order int
}

// NewOverride creates an Override for value. NaN is rejected since it could
// never compare equal.
func NewOverride(value float64, order int) (Override, error) {
	if math.IsNaN(value) {
		return Override{}, fmt.Errorf("%w: override value is NaN", ErrInvalidValue)
	}
	return Override{value: value, order: order}, nil
}

func (Override) selection() {}
func (Override) Kind() Kind { return KindOverride }
func (s Override) Order() int { return s.order }
func (s Override) Value() float64 { return s.value }
func (s Override) String() string { return FormatValue(s.value) }

// Missing matches NaN.
type Missing struct {
	order int
}

// NewMissing creates a Missing selection.
func NewMissing(order int) Missing {
	return Missing{order: order}
}

func (Missing) selection() {}
func (Missing) Kind() Kind { return KindMissing }
func (s Missing) Order() int { return s.order }
func (Missing) String() string { return "Missing" }

// FormatValue renders a float in its shortest round-tripping form, with
// "inf", "-inf" and "nan" for the non-finite values.
func FormatValue(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
