package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/boostcard/internal/ir"
)

// Snapshot captures the resolution of a scenario for golden comparison.
// Values are rendered as strings so unset slots and infinities survive
// canonical JSON.
type Snapshot struct {
	ScenarioName string
	Values       []string
	ClaimedBy    []int
	Order        []string
}

// NewSnapshot builds the snapshot of a scenario result.
func NewSnapshot(name string, result *Result) Snapshot {
	return Snapshot{
		ScenarioName: name,
		Values:       formatBuffer(result.Values),
		ClaimedBy:    result.ClaimedBy,
		Order:        result.Order,
	}
}

// toIR converts a Snapshot to an ir.Object for canonical JSON serialization.
func (s Snapshot) toIR() ir.Object {
	values := make(ir.Array, len(s.Values))
	for i, v := range s.Values {
		values[i] = ir.String(v)
	}
	claimed := make(ir.Array, len(s.ClaimedBy))
	for i, c := range s.ClaimedBy {
		claimed[i] = ir.Number(c)
	}
	order := make(ir.Array, len(s.Order))
	for i, o := range s.Order {
		order[i] = ir.String(o)
	}
	return ir.Object{
		"scenario_name": ir.String(s.ScenarioName),
		"values":        values,
		"claimed_by":    claimed,
		"order":         order,
	}
}

// MarshalCanonical renders the snapshot as canonical JSON.
func (s Snapshot) MarshalCanonical() ([]byte, error) {
	return ir.MarshalCanonical(s.toIR())
}

// RunWithGolden executes a scenario and compares its resolution against a
// golden file stored in testdata/golden/{scenario.Name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if the snapshot doesn't match.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}

	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result against a golden file without
// re-running the scenario.
func AssertGolden(t *testing.T, name string, result *Result) error {
	t.Helper()

	data, err := NewSnapshot(name, result).MarshalCanonical()
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)

	return nil
}
