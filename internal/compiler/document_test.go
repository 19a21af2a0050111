package compiler

import (
	"errors"
	"io"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/boostcard/internal/engine"
	"github.com/roach88/boostcard/internal/ir"
	"github.com/roach88/boostcard/internal/selection"
	"github.com/roach88/boostcard/internal/testutil"
)

func TestParseFlatList(t *testing.T) {
	sels, err := Parse([]byte(`[
		{"type": "missing", "order": 2},
		{"type": "interval", "values": [0, 5], "bounds": "[)", "order": 0, "mono": 1},
		{"type": "override", "override": 10, "order": 1}
	]`))
	require.NoError(t, err)
	require.Len(t, sels, 3)

	assert.Equal(t, selection.KindMissing, sels[0].Kind())
	assert.Equal(t, selection.KindInterval, sels[1].Kind())
	assert.Equal(t, selection.KindOverride, sels[2].Kind())
}

func TestParseNestedDocument(t *testing.T) {
	sels, err := Parse([]byte(`{
		"column": "age",
		"bins": {
			"b_missing": {"type": "missing", "order": 1},
			"a_ranges": [
				{"type": "interval", "values": [18, 0], "bounds": "[)", "order": 0, "mono": 0},
				{"type": "interval", "values": [18, 65], "bounds": "[)", "order": 0, "mono": 0}
			]
		},
		"version": 3
	}`))
	require.NoError(t, err)
	require.Len(t, sels, 3)

	// Object members are walked in key order: a_ranges before b_missing.
	assert.Equal(t, "[0, 18)", sels[0].String())
	assert.Equal(t, "[18, 65)", sels[1].String())
	assert.Equal(t, "Missing", sels[2].String())
}

func TestParseSingleRecord(t *testing.T) {
	sels, err := Parse([]byte(`{"type":"interval","values":[20,10],"bounds":"[]","order":0,"mono":0}`))
	require.NoError(t, err)
	require.Len(t, sels, 1)
	assert.Equal(t, "[10, 20]", sels[0].String())
}

func TestParseEmptyDocument(t *testing.T) {
	for _, src := range []string{"", "  ", "null", "[]", "{}", `{"column":"age"}`, "42"} {
		t.Run(src, func(t *testing.T) {
			_, err := Parse([]byte(src))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrEmptyDocument))
			assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
			assert.False(t, IsValidation(err))
		})
	}
}

func TestParseSyntaxError(t *testing.T) {
	_, err := Parse([]byte(`[{"type":`))
	require.Error(t, err)

	var ce *CompileError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, ErrCodeSyntax, ce.Code)
	assert.False(t, IsValidation(err))
}

func TestParseReportsRecordPath(t *testing.T) {
	_, err := Parse([]byte(`{"bins":[{"type":"missing","order":0},{"type":"interval","values":[0,1],"bounds":"<>","order":0,"mono":0}]}`))
	require.Error(t, err)

	var ce *CompileError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "$.bins[1].bounds", ce.Field)
	assert.Equal(t, ErrCodeInvalidBounds, ce.Code)
}

func TestParseFailsClosedOnUnknownType(t *testing.T) {
	sels, err := Parse([]byte(`[{"type":"missing","order":0},{"type":"bogus"}]`))
	require.Error(t, err)
	assert.Nil(t, sels)
	assert.ErrorIs(t, err, ErrUnknownType)
}

func TestParseFittedKeepsFills(t *testing.T) {
	fs, err := ParseFitted([]byte(`[
		{"type":"interval","values":[0,5],"bounds":"[)","order":0,"mono":0},
		{"type":"override","override":10,"order":1,"fill":-1},
		{"type":"missing","order":2,"fill":0}
	]`))
	require.NoError(t, err)

	res, err := engine.Coalesce(testutil.Floats("1, 3, 10, nan, 7"), fs)
	require.NoError(t, err)
	testutil.AssertBuffersEqual(t, testutil.Floats("1, 3, -1, 0, nan"), res.Values)
}

func TestParseYAML(t *testing.T) {
	fs, err := ParseYAML([]byte(`
column: income
bins:
  - {type: interval, values: [-.inf, 0], bounds: "()", order: 0, mono: 0, fill: -1}
  - {type: interval, values: [0, .inf], bounds: "[)", order: 0, mono: 1}
  - type: missing
    order: 1
    fill: .nan
`))
	require.NoError(t, err)
	require.Len(t, fs, 3)

	iv := fs[0].Selection.(selection.Interval)
	assert.True(t, math.IsInf(iv.Low(), -1))
	assert.Equal(t, "(-inf, 0)", iv.String())
	assert.Equal(t, engine.FillPassThrough, fs[1].Fill.Kind())

	v, ok := fs[2].Fill.Value()
	assert.True(t, ok)
	assert.True(t, math.IsNaN(v))
}

func TestParseYAMLEmpty(t *testing.T) {
	_, err := ParseYAML([]byte(""))
	assert.ErrorIs(t, err, ErrEmptyDocument)
}

func TestParseYAMLSyntaxError(t *testing.T) {
	_, err := ParseYAML([]byte("bins: [\n"))
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrEmptyDocument))
}

func TestCollectSkipsScalars(t *testing.T) {
	fs, err := Collect(ir.Array{
		ir.String("note"),
		ir.Number(1),
		ir.Object{"type": ir.String("missing"), "order": ir.Number(0)},
	})
	require.NoError(t, err)
	assert.Len(t, fs, 1)
}

func TestSelections(t *testing.T) {
	fs := []engine.Fitted{engine.NewFitted(selection.NewMissing(0), engine.Constant(1))}
	assert.Equal(t, []selection.Selection{selection.NewMissing(0)}, Selections(fs))
}
