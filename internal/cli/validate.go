package cli

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/boostcard/internal/compiler"
	"github.com/roach88/boostcard/internal/engine"
	"github.com/roach88/boostcard/internal/ir"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
}

// ValidateResult is the JSON payload of a successful validate.
type ValidateResult struct {
	File       string          `json:"file"`
	Count      int             `json:"count"`
	Hash       string          `json:"hash"`
	Selections json.RawMessage `json:"selections"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate <document>",
		Short: "Validate a selection document",
		Long: `Parse a selection document and print its selections in resolution order.

Documents may be JSON, YAML or CUE (chosen by extension), or a directory
holding a CUE package. Every object with a "type" field is a selection
record; unknown types and malformed records are rejected.

Exit codes:
  0 - Document is valid
  1 - Document contains an invalid record or no records
  2 - Command error (file not found, unsupported extension)

Examples:
  boostcard validate bins.json
  boostcard validate bins.yaml --format json
  boostcard validate ./bins/`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *ValidateOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(cmd, opts.RootOptions)

	fs, err := LoadSelections(path)
	if err != nil {
		return reportError(formatter, "validation failed", err)
	}
	formatter.VerboseLog("Loaded %d selections from %s", len(fs), path)

	doc, err := compiler.EncodeSet(fs)
	if err != nil {
		return reportError(formatter, "validation failed", err)
	}
	hash, err := ir.SetHash(doc)
	if err != nil {
		return reportError(formatter, "validation failed", err)
	}

	if opts.Format == "json" {
		data, err := ir.MarshalCanonical(doc)
		if err != nil {
			return reportError(formatter, "validation failed", err)
		}
		return formatter.Success(ValidateResult{
			File:       path,
			Count:      len(fs),
			Hash:       hash,
			Selections: data,
		})
	}

	sorted := slices.Clone(fs)
	engine.Sort(sorted)

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "✓ %s: %d selections (hash %s)\n\n", path, len(fs), shortHash(hash))
	fmt.Fprintln(w, opts.Widths.Table(sorted))
	return nil
}

// shortHash abbreviates a content hash for text output.
func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
