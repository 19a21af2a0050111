package engine

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/roach88/boostcard/internal/selection"
	"github.com/roach88/boostcard/internal/testutil"
)

var nan = math.NaN()

// scenarioFitted builds the three fitted selections of the reference
// scenario: pass-through interval [0,5), override 10 -> -1, missing -> 0.
func scenarioFitted(t *testing.T) []Fitted {
	t.Helper()
	iv, err := selection.NewInterval(0, 5, selection.RightOpen, 0, selection.Unconstrained)
	require.NoError(t, err)
	ov, err := selection.NewOverride(10, 1)
	require.NoError(t, err)

	return []Fitted{
		NewFitted(selection.NewMissing(2), Constant(0)),
		NewFitted(ov, Constant(-1)),
		NewFitted(iv, PassThrough()),
	}
}

func TestCoalesceEndToEnd(t *testing.T) {
	xs := testutil.Floats("1, 3, 10, nan, 7")

	res, err := Coalesce(xs, scenarioFitted(t))
	require.NoError(t, err)

	testutil.AssertBuffersEqual(t, testutil.Floats("1, 3, -1, 0, nan"), res.Values)
	assert.Equal(t, []int{0, 0, 1, 2, -1}, res.ClaimedBy)
	assert.Equal(t, 1, res.Unresolved())

	kinds := make([]selection.Kind, len(res.Order))
	for i, f := range res.Order {
		kinds[i] = f.Selection.Kind()
	}
	assert.Equal(t, []selection.Kind{selection.KindInterval, selection.KindOverride, selection.KindMissing}, kinds)
}

func TestCoalesceDoesNotReorderInput(t *testing.T) {
	fs := scenarioFitted(t)
	_, err := Coalesce(testutil.Floats("1"), fs)
	require.NoError(t, err)
	assert.Equal(t, selection.KindMissing, fs[0].Selection.Kind())
}

func TestCoalesceFirstMatchWins(t *testing.T) {
	wide, err := selection.NewInterval(0, 100, selection.Closed, 1, selection.Unconstrained)
	require.NoError(t, err)
	narrow, err := selection.NewInterval(0, 10, selection.Closed, 0, selection.Unconstrained)
	require.NoError(t, err)
	ov, err := selection.NewOverride(5, 0)
	require.NoError(t, err)

	res, err := Coalesce(testutil.Floats("5, 50, 500"), []Fitted{
		NewFitted(ov, Constant(-5)),
		NewFitted(wide, Constant(2)),
		NewFitted(narrow, Constant(1)),
		NewFitted(selection.NewIdentity(0), Constant(99)),
	})
	require.NoError(t, err)

	// The interval with the lower order claims 5 before the override is
	// reached; the identity only picks up what nothing else matched.
	testutil.AssertBuffersEqual(t, testutil.Floats("1, 2, 99"), res.Values)
}

func TestCoalesceMissingNotShadowedByIdentity(t *testing.T) {
	res, err := Coalesce(testutil.Floats("nan, 1"), []Fitted{
		NewFitted(selection.NewIdentity(0), Constant(7)),
		NewFitted(selection.NewMissing(5), Constant(-9)),
	})
	require.NoError(t, err)
	testutil.AssertBuffersEqual(t, testutil.Floats("-9, 7"), res.Values)
}

func TestCoalesceNaNPassThroughLeavesSlotOpen(t *testing.T) {
	res, err := Coalesce(testutil.Floats("nan"), []Fitted{
		NewFitted(selection.NewMissing(0), PassThrough()),
		NewFitted(selection.NewIdentity(0), Constant(3)),
	})
	require.NoError(t, err)
	testutil.AssertBuffersEqual(t, testutil.Floats("3"), res.Values)
	assert.Equal(t, []int{1}, res.ClaimedBy)
}

func TestCoalesceEmpty(t *testing.T) {
	res, err := Coalesce(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, res.Values)
	assert.Equal(t, 0, res.Unresolved())

	res, err = Coalesce(testutil.Floats("1, 2"), nil)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Unresolved())
}

func TestCoalesceRejectsUnsetFill(t *testing.T) {
	fs := append(scenarioFitted(t), Fitted{Selection: selection.NewIdentity(0)})

	_, err := Coalesce(testutil.Floats("1"), fs)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFitted))

	var re *RuntimeError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, ErrCodeNotFitted, re.Code)
	assert.Equal(t, 3, re.Step)
	assert.Equal(t, "Identity", re.Selection)
}

func TestCoalesceContextParallelMatchesSequential(t *testing.T) {
	defer goleak.VerifyNone(t)

	xs := testutil.Floats("1, 3, 10, nan, 7, 4.999, 5, -0, 10, nan")

	fs := scenarioFitted(t)
	for i := 0; i < 20; i++ {
		iv, err := selection.NewInterval(float64(i), float64(i+1), selection.RightOpen, 1, selection.Increasing)
		require.NoError(t, err)
		fs = append(fs, NewFitted(iv, Constant(float64(100+i))))
	}

	seq, err := Coalesce(xs, fs)
	require.NoError(t, err)

	for _, workers := range []int{2, 4, 64} {
		par, err := CoalesceContext(context.Background(), xs, fs, Options{Workers: workers})
		require.NoError(t, err)
		testutil.AssertBuffersEqual(t, seq.Values, par.Values, "workers=%d", workers)
		assert.Equal(t, seq.ClaimedBy, par.ClaimedBy, "workers=%d", workers)
	}
}

func TestCoalesceContextCancelled(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, workers := range []int{0, 4} {
		_, err := CoalesceContext(ctx, testutil.Floats("1"), scenarioFitted(t), Options{Workers: workers})
		assert.ErrorIs(t, err, context.Canceled, "workers=%d", workers)
	}
}

func TestTransform(t *testing.T) {
	xs := testutil.Floats("1, 3, 10, nan, 7")
	result := NewResult(len(xs))
	for _, f := range scenarioFitted(t) {
		next, err := f.Transform(xs, result)
		require.NoError(t, err)
		result = next
	}
	// No two selections overlap here, so input order gives the same answer
	// as the sorted fold.
	testutil.AssertBuffersEqual(t, testutil.Floats("1, 3, -1, 0, nan"), result)
}

func TestTransformDoesNotModifyResult(t *testing.T) {
	xs := testutil.Floats("1, 2")
	result := NewResult(2)

	out, err := NewFitted(selection.NewIdentity(0), Constant(4)).Transform(xs, result)
	require.NoError(t, err)

	testutil.AssertBuffersEqual(t, testutil.Floats("4, 4"), out)
	testutil.AssertBuffersEqual(t, testutil.Floats("nan, nan"), result)
}

func TestTransformIdempotent(t *testing.T) {
	xs := testutil.Floats("1, 3, 10, nan, 7")
	f := NewFitted(selection.NewIdentity(0), PassThrough())
	seed := testutil.Floats("8, nan, 8, nan, nan")

	once, err := f.Transform(xs, seed)
	require.NoError(t, err)
	twice, err := f.Transform(xs, once)
	require.NoError(t, err)

	testutil.AssertBuffersEqual(t, testutil.Floats("8, 3, 8, nan, 7"), once)
	testutil.AssertBuffersEqual(t, once, twice)
}

func TestTransformErrors(t *testing.T) {
	_, err := NewFitted(selection.NewMissing(0), Constant(1)).Transform(testutil.Floats("1, 2"), NewResult(3))
	assert.ErrorIs(t, err, ErrLengthMismatch)

	_, err = Fitted{Selection: selection.NewMissing(0)}.Transform(testutil.Floats("1"), NewResult(1))
	assert.ErrorIs(t, err, ErrNotFitted)
	assert.NotErrorIs(t, err, ErrLengthMismatch)
}

func TestFill(t *testing.T) {
	var unset Fill
	assert.Equal(t, FillUnset, unset.Kind())
	assert.Equal(t, "unset", unset.String())

	assert.Equal(t, "passthrough", PassThrough().String())
	v, ok := PassThrough().Value()
	assert.False(t, ok)
	assert.Zero(t, v)

	v, ok = Constant(-1.5).Value()
	assert.True(t, ok)
	assert.Equal(t, -1.5, v)
	assert.Equal(t, "-1.5", Constant(-1.5).String())
}

func TestFittedReportsOnlyConstantFills(t *testing.T) {
	sel := selection.NewMissing(0)
	assert.False(t, Fitted{Selection: sel}.Fitted())
	assert.False(t, NewFitted(sel, PassThrough()).Fitted())
	assert.True(t, NewFitted(sel, Constant(0)).Fitted())
	assert.True(t, NewFitted(sel, Constant(nan)).Fitted())
}

func TestSortFitted(t *testing.T) {
	fs := scenarioFitted(t)
	Sort(fs)
	assert.Equal(t, "[0, 5) -> passthrough", fs[0].String())
	assert.Equal(t, "10 -> -1", fs[1].String())
	assert.Equal(t, "Missing -> 0", fs[2].String())
}

func TestNewResult(t *testing.T) {
	r := NewResult(3)
	assert.Len(t, r, 3)
	for _, v := range r {
		assert.True(t, IsUnset(v))
	}
	assert.False(t, IsUnset(0))
}
