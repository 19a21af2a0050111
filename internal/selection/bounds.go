package selection

import "fmt"

// Bounds holds the closed flags of an interval's two ends.
type Bounds struct {
	Left  bool // closed at low
	Right bool // closed at high
}

// The four boundary combinations.
var (
	Closed    = Bounds{Left: true, Right: true}
	Open      = Bounds{Left: false, Right: false}
	LeftOpen  = Bounds{Left: false, Right: true}
	RightOpen = Bounds{Left: true, Right: false}
)

// boundTokens maps each boundary token to its flags.
var boundTokens = map[string]Bounds{
	"[]": Closed,
	"(]": LeftOpen,
	"[)": RightOpen,
	"()": Open,
}

// ParseBounds converts a boundary token into Bounds.
func ParseBounds(token string) (Bounds, error) {
	b, ok := boundTokens[token]
	if !ok {
		return Bounds{}, fmt.Errorf("%w: %q (want one of \"[]\", \"(]\", \"[)\", \"()\")", ErrInvalidBounds, token)
	}
	return b, nil
}

// String returns the boundary token for b.
func (b Bounds) String() string {
	return b.open() + b.close()
}

func (b Bounds) open() string {
	if b.Left {
		return "["
	}
	return "("
}

func (b Bounds) close() string {
	if b.Right {
		return "]"
	}
	return ")"
}

// Monotonicity is the trend constraint an upstream fitter placed on an
// interval's fill values.
type Monotonicity int8

const (
	Decreasing    Monotonicity = -1
	Unconstrained Monotonicity = 0
	Increasing    Monotonicity = 1
)

// ParseMonotonicity validates m and converts it.
func ParseMonotonicity(m int) (Monotonicity, error) {
	switch m {
	case -1, 0, 1:
		return Monotonicity(m), nil
	default:
		return 0, fmt.Errorf("%w: %d (want -1, 0 or 1)", ErrInvalidMonotonicity, m)
	}
}

// Valid reports whether m is one of the three allowed values.
func (m Monotonicity) Valid() bool {
	return m >= Decreasing && m <= Increasing
}
