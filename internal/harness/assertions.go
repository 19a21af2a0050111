package harness

import (
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/boostcard/internal/engine"
)

// AssertionError is returned when an assertion fails.
// It includes the resolved buffer to help debug the failure.
type AssertionError struct {
	Type     string   // Assertion type for categorization
	Expected string   // Human-readable expected outcome
	Actual   string   // Human-readable actual outcome
	Values   []string // Resolved buffer for context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)
	fmt.Fprintf(&buf, "  Values: [%s]", strings.Join(e.Values, ", "))

	return buf.String()
}

// evaluateAssertion dispatches on the assertion type. xs is the input
// buffer res was resolved from.
func evaluateAssertion(xs []float64, res *engine.Resolution, a Assertion) error {
	switch a.Type {
	case AssertClaimedBy:
		return assertClaimedBy(res, a)
	case AssertOrder:
		return assertOrder(res, a)
	case AssertUnresolved:
		return assertUnresolved(res, a)
	case AssertIdempotent:
		return assertIdempotent(xs, res)
	}
	return fmt.Errorf("unknown assertion type %q", a.Type)
}

func assertClaimedBy(res *engine.Resolution, a Assertion) error {
	if slices.Equal(res.ClaimedBy, a.Claims) {
		return nil
	}
	return &AssertionError{
		Type:     AssertClaimedBy,
		Expected: fmt.Sprint(a.Claims),
		Actual:   fmt.Sprint(res.ClaimedBy),
		Values:   formatBuffer(res.Values),
	}
}

func assertOrder(res *engine.Resolution, a Assertion) error {
	got := make([]string, len(res.Order))
	for i, f := range res.Order {
		got[i] = f.Selection.String()
	}
	if slices.Equal(got, a.Order) {
		return nil
	}
	return &AssertionError{
		Type:     AssertOrder,
		Expected: strings.Join(a.Order, ", "),
		Actual:   strings.Join(got, ", "),
		Values:   formatBuffer(res.Values),
	}
}

func assertUnresolved(res *engine.Resolution, a Assertion) error {
	if n := res.Unresolved(); n != *a.Count {
		return &AssertionError{
			Type:     AssertUnresolved,
			Expected: fmt.Sprintf("%d unresolved slots", *a.Count),
			Actual:   fmt.Sprintf("%d unresolved slots", n),
			Values:   formatBuffer(res.Values),
		}
	}
	return nil
}

// assertIdempotent folds every selection, in order, over xs a second time
// starting from the resolved buffer. Every slot must come out unchanged,
// unresolved ones included.
func assertIdempotent(xs []float64, res *engine.Resolution) error {
	again := res.Values
	for _, f := range res.Order {
		next, err := f.Transform(xs, again)
		if err != nil {
			return fmt.Errorf("idempotent: %w", err)
		}
		again = next
	}

	for i := range res.Values {
		if !sameSlot(res.Values[i], again[i]) {
			return &AssertionError{
				Type:     AssertIdempotent,
				Expected: "every slot unchanged",
				Actual:   fmt.Sprintf("slot %d changed from %s to %s", i, formatSlot(res.Values[i]), formatSlot(again[i])),
				Values:   formatBuffer(res.Values),
			}
		}
	}
	return nil
}

// sameSlot reports whether two buffer slots hold the same value. Unset
// slots compare equal.
func sameSlot(a, b float64) bool {
	return a == b || (engine.IsUnset(a) && engine.IsUnset(b))
}
