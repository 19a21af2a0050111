// Package testutil provides helpers shared by tests across packages.
package testutil

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Floats parses a comma-separated list such as "1, 3, nan, -inf" into a
// buffer. Panics on malformed input; use only with literal test fixtures.
func Floats(s string) []float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return []float64{}
	}
	parts := strings.Split(s, ",")
	out := make([]float64, len(parts))
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			panic(fmt.Sprintf("testutil.Floats: element %d: %v", i, err))
		}
		out[i] = f
	}
	return out
}

// AssertBuffersEqual compares two buffers element by element, treating NaN
// as equal to NaN.
func AssertBuffersEqual(t testing.TB, want, got []float64, msgAndArgs ...any) bool {
	t.Helper()
	if !assert.Len(t, got, len(want), msgAndArgs...) {
		return false
	}
	ok := true
	for i := range want {
		if math.IsNaN(want[i]) {
			ok = assert.True(t, math.IsNaN(got[i]), "index %d: want NaN, got %v", i, got[i]) && ok
			continue
		}
		ok = assert.Equal(t, want[i], got[i], "index %d", i) && ok
	}
	return ok
}
