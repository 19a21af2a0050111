package cli

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/boostcard/internal/engine"
	"github.com/roach88/boostcard/internal/ir"
	"github.com/roach88/boostcard/internal/selection"
)

// ApplyOptions holds flags for the apply command.
type ApplyOptions struct {
	*RootOptions
	Values   string // comma-separated input values
	Input    string // JSON file holding the input array
	Fallback string // "", "passthrough" or a number
	Workers  int
}

// ApplyResult is the JSON payload of apply. Numbers are rendered as
// strings so NaN and infinities survive JSON; unresolved slots are
// "unset".
type ApplyResult struct {
	Input      []string `json:"input"`
	Values     []string `json:"values"`
	ClaimedBy  []int    `json:"claimed_by"`
	Selections []string `json:"selections"`
	Unresolved int      `json:"unresolved"`
}

// NewApplyCommand creates the apply command.
func NewApplyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ApplyOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "apply <document>",
		Short: "Resolve values through a selection set",
		Long: `Coalesce input values through the fitted selections of a document.

Selections are tried in resolution order (intervals, then overrides, then
missing, then the fallback); the first one matching a value resolves it.

Input values come from --values (comma-separated, "nan" for missing) or
--input (a JSON array; null and the strings "nan", "inf", "-inf" are
accepted).

Examples:
  boostcard apply bins.json --values 1,3,10,nan,7
  boostcard apply bins.yaml --input values.json --fallback passthrough
  boostcard apply bins.cue --values 1,2,3 --fallback -1 --workers 4`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Values, "values", "", "comma-separated input values")
	cmd.Flags().StringVar(&opts.Input, "input", "", "JSON file with an array of input values")
	cmd.Flags().StringVar(&opts.Fallback, "fallback", "", `catch-all fill for unresolved values ("passthrough" or a number)`)
	cmd.Flags().IntVar(&opts.Workers, "workers", 1, "concurrent predicate evaluations")
	cmd.MarkFlagsMutuallyExclusive("values", "input")
	cmd.MarkFlagsOneRequired("values", "input")

	return cmd
}

func runApply(opts *ApplyOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(cmd, opts.RootOptions)

	xs, err := readInput(opts)
	if err != nil {
		formatter.Error(ErrCodeLoadFailed, err.Error(), nil)
		return WrapExitError(ExitCommandError, "invalid input", err)
	}

	fs, err := LoadSelections(path)
	if err != nil {
		return reportError(formatter, "apply failed", err)
	}

	if opts.Fallback != "" {
		fill, err := ParseFill(opts.Fallback)
		if err != nil {
			formatter.Error(ErrCodeGeneric, err.Error(), nil)
			return WrapExitError(ExitCommandError, "invalid fallback", err)
		}
		fs = append(fs, engine.NewFitted(selection.NewIdentity(len(fs)), fill))
	}

	res, err := engine.CoalesceContext(cmd.Context(), xs, fs, engine.Options{Workers: opts.Workers})
	if err != nil {
		return reportError(formatter, "apply failed", err)
	}

	out := ApplyResult{
		Input:      formatValues(xs, selection.FormatValue),
		Values:     formatValues(res.Values, formatResolved),
		ClaimedBy:  res.ClaimedBy,
		Selections: make([]string, len(res.Order)),
		Unresolved: res.Unresolved(),
	}
	for i, f := range res.Order {
		out.Selections[i] = f.Selection.String()
	}

	if opts.Format == "json" {
		return formatter.Success(out)
	}

	w := cmd.OutOrStdout()
	for i := range xs {
		by := "-"
		if c := res.ClaimedBy[i]; c >= 0 {
			by = out.Selections[c]
		}
		fmt.Fprintf(w, "%-12s -> %-12s %s\n", out.Input[i], out.Values[i], by)
	}
	fmt.Fprintf(w, "\n%d values, %d unresolved\n", len(xs), out.Unresolved)
	return nil
}

// ParseFill parses a fallback fill: "passthrough" or a number.
func ParseFill(s string) (engine.Fill, error) {
	if strings.EqualFold(s, "passthrough") {
		return engine.PassThrough(), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) {
		return engine.Fill{}, fmt.Errorf("fallback must be \"passthrough\" or a number, got %q", s)
	}
	return engine.Constant(v), nil
}

// ParseValues parses a comma-separated list of floats. "nan", "inf" and
// "-inf" are accepted; empty elements are NaN.
func ParseValues(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	out := make([]float64, len(parts))
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			out[i] = math.NaN()
			continue
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("value %d: %q is not a number", i, p)
		}
		out[i] = v
	}
	return out, nil
}

func readInput(opts *ApplyOptions) ([]float64, error) {
	if opts.Input == "" {
		return ParseValues(opts.Values)
	}

	data, err := os.ReadFile(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	doc, err := ir.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	arr, ok := doc.(ir.Array)
	if !ok {
		return nil, fmt.Errorf("input must be a JSON array, got %s", ir.TypeName(doc))
	}

	out := make([]float64, len(arr))
	for i, v := range arr {
		switch val := v.(type) {
		case ir.Number:
			out[i] = float64(val)
		case ir.Null:
			out[i] = math.NaN()
		case ir.String:
			f, err := strconv.ParseFloat(string(val), 64)
			if err != nil {
				return nil, fmt.Errorf("input[%d]: %q is not a number", i, string(val))
			}
			out[i] = f
		default:
			return nil, fmt.Errorf("input[%d]: want a number, got %s", i, ir.TypeName(v))
		}
	}
	return out, nil
}

func formatValues(xs []float64, format func(float64) string) []string {
	out := make([]string, len(xs))
	for i, x := range xs {
		out[i] = format(x)
	}
	return out
}

func formatResolved(x float64) string {
	if engine.IsUnset(x) {
		return "unset"
	}
	return selection.FormatValue(x)
}
