package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/boostcard/internal/compiler"
	"github.com/roach88/boostcard/internal/ir"
	"github.com/roach88/boostcard/internal/store"
)

// CatalogOptions holds flags for the catalog commands.
type CatalogOptions struct {
	*RootOptions
	Database string
}

// PutResult is the JSON payload of catalog put.
type PutResult struct {
	Column  string `json:"column"`
	Hash    string `json:"hash"`
	Changed bool   `json:"changed"`
	Count   int    `json:"count"`
}

// GetResult is the JSON payload of catalog get.
type GetResult struct {
	Column     string          `json:"column"`
	Hash       string          `json:"hash"`
	Revision   int64           `json:"revision"`
	Selections json.RawMessage `json:"selections"`
}

// NewCatalogCommand creates the catalog command and its subcommands.
func NewCatalogCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CatalogOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage stored selection sets",
		Long: `Store, fetch, list and delete named selection sets in a SQLite catalog.

Each column name holds one selection set. Storing identical content again
is a no-op; changed content replaces the set and bumps its revision.

Examples:
  boostcard catalog put age bins.yaml --db ./catalog.db
  boostcard catalog get age --db ./catalog.db
  boostcard catalog list --db ./catalog.db --format json
  boostcard catalog delete age --db ./catalog.db`,
	}

	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkPersistentFlagRequired("db")

	cmd.AddCommand(newCatalogPutCommand(opts))
	cmd.AddCommand(newCatalogGetCommand(opts))
	cmd.AddCommand(newCatalogListCommand(opts))
	cmd.AddCommand(newCatalogDeleteCommand(opts))

	return cmd
}

func newCatalogPutCommand(opts *CatalogOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "put <column> <document>",
		Short:         "Store a selection document under a column name",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(cmd, opts.RootOptions)

			fs, err := LoadSelections(args[1])
			if err != nil {
				return reportError(formatter, "catalog put failed", err)
			}

			st, err := openCatalog(opts, formatter)
			if err != nil {
				return err
			}
			defer st.Close()

			hash, changed, err := st.Put(cmd.Context(), args[0], fs)
			if err != nil {
				return reportError(formatter, "catalog put failed", err)
			}

			if opts.Format == "json" {
				return formatter.Success(PutResult{Column: args[0], Hash: hash, Changed: changed, Count: len(fs)})
			}
			state := "stored"
			if !changed {
				state = "unchanged"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %d selections (hash %s)\n", state, args[0], len(fs), shortHash(hash))
			return nil
		},
	}
}

func newCatalogGetCommand(opts *CatalogOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "get <column>",
		Short:         "Show the selection set stored for a column",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(cmd, opts.RootOptions)

			st, err := openCatalog(opts, formatter)
			if err != nil {
				return err
			}
			defer st.Close()

			entry, err := st.Get(cmd.Context(), args[0])
			if err != nil {
				return catalogError(formatter, "catalog get failed", err)
			}

			if opts.Format == "json" {
				doc, err := compiler.EncodeSet(entry.Selections)
				if err != nil {
					return reportError(formatter, "catalog get failed", err)
				}
				data, err := ir.MarshalCanonical(doc)
				if err != nil {
					return reportError(formatter, "catalog get failed", err)
				}
				return formatter.Success(GetResult{
					Column:     entry.Column,
					Hash:       entry.Hash,
					Revision:   entry.Revision,
					Selections: data,
				})
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s (revision %d, hash %s)\n\n", entry.Column, entry.Revision, shortHash(entry.Hash))
			fmt.Fprintln(w, opts.Widths.Table(entry.Selections))
			return nil
		},
	}
}

func newCatalogListCommand(opts *CatalogOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List stored selection sets",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(cmd, opts.RootOptions)

			st, err := openCatalog(opts, formatter)
			if err != nil {
				return err
			}
			defer st.Close()

			list, err := st.List(cmd.Context())
			if err != nil {
				return reportError(formatter, "catalog list failed", err)
			}

			if opts.Format == "json" {
				if list == nil {
					list = []store.Summary{}
				}
				return formatter.Success(list)
			}

			if len(list) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No selection sets stored.")
				return nil
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "COLUMN\tREVISION\tCOUNT\tHASH")
			for _, s := range list {
				fmt.Fprintf(tw, "%s\t%d\t%d\t%s\n", s.Column, s.Revision, s.Count, shortHash(s.Hash))
			}
			return tw.Flush()
		},
	}
}

func newCatalogDeleteCommand(opts *CatalogOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "delete <column>",
		Short:         "Delete the selection set stored for a column",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(cmd, opts.RootOptions)

			st, err := openCatalog(opts, formatter)
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.Delete(cmd.Context(), args[0]); err != nil {
				return catalogError(formatter, "catalog delete failed", err)
			}

			if opts.Format == "json" {
				return formatter.Success(map[string]string{"column": args[0]})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}
}

func openCatalog(opts *CatalogOptions, formatter *OutputFormatter) (*store.Store, error) {
	st, err := store.Open(opts.Database)
	if err != nil {
		formatter.Error(ErrCodeLoadFailed, err.Error(), map[string]string{"db": opts.Database})
		return nil, WrapExitError(ExitCommandError, "failed to open catalog", err)
	}
	return st, nil
}

// catalogError reports a missing column as E005 with a failure exit code.
func catalogError(formatter *OutputFormatter, message string, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		formatter.Error(ErrCodeNotFound, err.Error(), nil)
		return WrapExitError(ExitFailure, message, err)
	}
	return reportError(formatter, message, err)
}
