package engine

import (
	"context"
	"log/slog"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/roach88/boostcard/internal/selection"
)

// Options controls CoalesceContext.
type Options struct {
	// Workers bounds the number of predicate masks evaluated concurrently.
	// Values <= 1 evaluate each mask inline just before it is merged.
	Workers int
}

// Resolution is the outcome of a coalesce.
type Resolution struct {
	// Values holds the resolved buffer. Unclaimed slots are unset (NaN).
	Values []float64

	// ClaimedBy[i] is the index into Order of the selection that resolved
	// slot i, or -1 if no selection did.
	ClaimedBy []int

	// Order is the fitted list in the order it was folded.
	Order []Fitted
}

// Unresolved returns the number of slots no selection claimed.
func (r *Resolution) Unresolved() int {
	n := 0
	for _, c := range r.ClaimedBy {
		if c < 0 {
			n++
		}
	}
	return n
}

// Coalesce sorts a copy of fs and folds it sequentially over an unset
// result buffer. fs itself is not reordered.
func Coalesce(xs []float64, fs []Fitted) (*Resolution, error) {
	return CoalesceContext(context.Background(), xs, fs, Options{})
}

// CoalesceContext is Coalesce with optional concurrent predicate evaluation.
// The merge is always sequential in sort order, so the result is identical
// for every worker count.
func CoalesceContext(ctx context.Context, xs []float64, fs []Fitted, opts Options) (*Resolution, error) {
	sorted := slices.Clone(fs)
	Sort(sorted)

	// Fail before doing any work if a fill was never configured.
	for i, f := range sorted {
		if f.Fill.kind == FillUnset {
			return nil, newNotFittedError(i, f.Selection)
		}
	}

	res := &Resolution{
		Values:    NewResult(len(xs)),
		ClaimedBy: make([]int, len(xs)),
		Order:     sorted,
	}
	for i := range res.ClaimedBy {
		res.ClaimedBy[i] = -1
	}

	if opts.Workers <= 1 {
		mask := make([]bool, len(xs))
		for i, f := range sorted {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			mask = selection.InSelectionInto(f.Selection, xs, mask)
			res.merge(i, xs, mask)
		}
		return res, nil
	}

	masks, err := evaluateMasks(ctx, xs, sorted, opts.Workers)
	if err != nil {
		return nil, err
	}
	for i := range sorted {
		res.merge(i, xs, masks[i])
	}
	return res, nil
}

// merge folds step i into the resolution.
func (r *Resolution) merge(step int, xs []float64, mask []bool) {
	f := r.Order[step]
	n := mergeInto(r.Values, r.ClaimedBy, step, f.Fill, xs, mask)
	slog.Debug("fold step",
		"step", step,
		"selection", f.Selection.String(),
		"kind", f.Selection.Kind(),
		"fill", f.Fill.String(),
		"claimed", n,
	)
}

// evaluateMasks computes the predicate mask of every selection using at
// most workers goroutines. masks[i] belongs to sorted[i].
func evaluateMasks(ctx context.Context, xs []float64, sorted []Fitted, workers int) ([][]bool, error) {
	masks := make([][]bool, len(sorted))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, f := range sorted {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			masks[i] = selection.InSelection(f.Selection, xs)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return masks, nil
}
