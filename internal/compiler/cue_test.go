package compiler

import (
	"errors"
	"testing"

	"cuelang.org/go/cue/cuecontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/boostcard/internal/engine"
	"github.com/roach88/boostcard/internal/selection"
	"github.com/roach88/boostcard/internal/testutil"
)

func TestParseCUE(t *testing.T) {
	src := `
age: {
	bins: [
		{type: "interval", values: [0, 18], bounds: "[)", order: 0, mono: 1},
		{type: "override", override: -1, order: 1, fill: -1},
		{type: "missing", order: 2, fill: 0},
	]
}
`
	fs, err := ParseCUE([]byte(src), "age.cue")
	require.NoError(t, err)
	require.Len(t, fs, 3)

	iv, ok := fs[0].Selection.(selection.Interval)
	require.True(t, ok)
	assert.Equal(t, "[0, 18)", iv.String())
	assert.Equal(t, selection.Increasing, iv.Monotonicity())
	assert.Equal(t, engine.FillPassThrough, fs[0].Fill.Kind())

	res, err := engine.Coalesce(testutil.Floats("5, -1, nan, 40"), fs)
	require.NoError(t, err)
	testutil.AssertBuffersEqual(t, testutil.Floats("5, -1, 0, nan"), res.Values)
}

func TestParseCUEDeclarationOrder(t *testing.T) {
	src := `
z: {type: "missing", order: 0}
a: {type: "override", override: 1, order: 0}
`
	fs, err := ParseCUE([]byte(src), "order.cue")
	require.NoError(t, err)
	require.Len(t, fs, 2)
	assert.Equal(t, selection.KindMissing, fs[0].Selection.Kind())
	assert.Equal(t, selection.KindOverride, fs[1].Selection.Kind())
}

func TestCompileCUEValue(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`
#Missing: {type: "missing", order: int | *0, fill?: number}
bins: [#Missing & {fill: 0}]
`)
	require.NoError(t, v.Err())

	fs, err := CompileCUE(v)
	require.NoError(t, err)
	require.Len(t, fs, 1)
	assert.Equal(t, selection.NewMissing(0), fs[0].Selection)
}

func TestParseCUESyntaxError(t *testing.T) {
	_, err := ParseCUE([]byte("bins: [\n"), "broken.cue")
	require.Error(t, err)

	var ce *CompileError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, ErrCodeSyntax, ce.Code)
	assert.True(t, ce.Pos.IsValid())
	assert.Contains(t, err.Error(), "broken.cue")
}

func TestParseCUEValidationErrorHasPosition(t *testing.T) {
	src := `bins: [
	{type: "interval", values: [0, 1], bounds: "<>", order: 0, mono: 0},
]
`
	_, err := ParseCUE([]byte(src), "bins.cue")
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.ErrorIs(t, err, selection.ErrInvalidBounds)

	var ce *CompileError
	require.True(t, errors.As(err, &ce))
	assert.True(t, ce.Pos.IsValid())
	assert.Equal(t, 2, ce.Pos.Line())
}

func TestParseCUEEmpty(t *testing.T) {
	_, err := ParseCUE([]byte(`column: "age"`), "empty.cue")
	assert.ErrorIs(t, err, ErrEmptyDocument)
}

func TestParseCUEUnknownType(t *testing.T) {
	_, err := ParseCUE([]byte(`x: {type: "bucket", order: 0}`), "x.cue")
	assert.ErrorIs(t, err, ErrUnknownType)
}
