package harness

import (
	"context"
	"fmt"

	"github.com/roach88/boostcard/internal/compiler"
	"github.com/roach88/boostcard/internal/engine"
	"github.com/roach88/boostcard/internal/ir"
	"github.com/roach88/boostcard/internal/selection"
)

// Run executes a test scenario and returns the result.
//
// Execution flow:
// 1. Compile the selection records (and fallback) into fitted selections
// 2. Coalesce the input values
// 3. Compare the resolved buffer with expect
// 4. Evaluate assertions
//
// An error is returned only when the scenario cannot be executed (bad
// records, unfitted selections). Expectation failures are reported through
// Result.Pass and Result.Errors.
func Run(scenario *Scenario) (*Result, error) {
	return RunContext(context.Background(), scenario)
}

// RunContext is Run with a caller-supplied context.
func RunContext(ctx context.Context, scenario *Scenario) (*Result, error) {
	fs, err := Fitted(scenario)
	if err != nil {
		return nil, err
	}

	res, err := engine.CoalesceContext(ctx, scenario.Values, fs, engine.Options{Workers: scenario.Workers})
	if err != nil {
		return nil, fmt.Errorf("coalesce: %w", err)
	}

	result := NewResult()
	result.Values = res.Values
	result.ClaimedBy = res.ClaimedBy
	result.Order = make([]string, len(res.Order))
	for i, f := range res.Order {
		result.Order[i] = f.Selection.String()
	}

	for i, want := range scenario.Expect {
		got := res.Values[i]
		if !sameSlot(want, got) {
			result.Mismatches = append(result.Mismatches, Mismatch{
				Index: i,
				Input: scenario.Values[i],
				Want:  want,
				Got:   got,
			})
		}
	}
	for _, m := range result.Mismatches {
		result.AddError(fmt.Sprintf("slot %d (input %s): expected %s, got %s",
			m.Index,
			selection.FormatValue(m.Input),
			formatSlot(m.Want),
			formatSlot(m.Got),
		))
	}

	for _, assertion := range scenario.Assertions {
		if err := evaluateAssertion(scenario.Values, res, assertion); err != nil {
			result.AddError(err.Error())
		}
	}

	return result, nil
}

// Fitted compiles the scenario's selection records and appends the
// fallback, if any. The result is in record order.
func Fitted(scenario *Scenario) ([]engine.Fitted, error) {
	var fs []engine.Fitted
	if len(scenario.Selections) > 0 {
		records := make(ir.Array, len(scenario.Selections))
		for i, rec := range scenario.Selections {
			v, err := ir.FromAny(rec)
			if err != nil {
				return nil, fmt.Errorf("selections[%d]: %w", i, err)
			}
			records[i] = v
		}
		var err error
		fs, err = compiler.Collect(records)
		if err != nil {
			return nil, fmt.Errorf("compile selections: %w", err)
		}
	}

	if scenario.Fallback != nil {
		fs = append(fs, engine.NewFitted(selection.NewIdentity(len(fs)), scenario.Fallback.Fill))
	}
	return fs, nil
}

// formatBuffer renders values for messages and snapshots.
func formatBuffer(xs []float64) []string {
	out := make([]string, len(xs))
	for i, x := range xs {
		out[i] = formatSlot(x)
	}
	return out
}

func formatSlot(x float64) string {
	if engine.IsUnset(x) {
		return "unset"
	}
	return selection.FormatValue(x)
}
