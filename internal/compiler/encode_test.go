package compiler

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/boostcard/internal/engine"
	"github.com/roach88/boostcard/internal/ir"
	"github.com/roach88/boostcard/internal/selection"
)

func mustInterval(t *testing.T, a, b float64, bounds selection.Bounds, order int, mono selection.Monotonicity) selection.Interval {
	t.Helper()
	iv, err := selection.NewInterval(a, b, bounds, order, mono)
	require.NoError(t, err)
	return iv
}

func TestEncodeRoundTrip(t *testing.T) {
	ov, err := selection.NewOverride(10, 1)
	require.NoError(t, err)

	sels := []selection.Selection{
		mustInterval(t, 20, 10, selection.Closed, 0, selection.Unconstrained),
		mustInterval(t, math.Inf(-1), 0, selection.RightOpen, 4, selection.Decreasing),
		ov,
		selection.NewMissing(2),
	}

	for _, sel := range sels {
		t.Run(sel.String(), func(t *testing.T) {
			obj, err := Encode(sel)
			require.NoError(t, err)

			got, err := CompileRecord(obj)
			require.NoError(t, err)
			assert.Equal(t, sel, got)
		})
	}
}

func TestEncodeInterval(t *testing.T) {
	obj, err := Encode(mustInterval(t, 20, 10, selection.Closed, 0, selection.Unconstrained))
	require.NoError(t, err)

	data, err := ir.MarshalCanonical(obj)
	require.NoError(t, err)
	assert.Equal(t, `{"bounds":"[]","mono":0,"order":0,"type":"interval","values":[10,20]}`, string(data))
}

func TestEncodeNonFinite(t *testing.T) {
	obj, err := Encode(mustInterval(t, math.Inf(-1), math.Inf(1), selection.Open, 0, selection.Unconstrained))
	require.NoError(t, err)
	assert.Equal(t, ir.Array{ir.String("-inf"), ir.String("inf")}, obj["values"])
}

func TestEncodePointerVariant(t *testing.T) {
	ov, err := selection.NewOverride(10, 1)
	require.NoError(t, err)

	want, err := Encode(ov)
	require.NoError(t, err)
	got, err := Encode(&ov)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestEncodeIdentity(t *testing.T) {
	_, err := Encode(selection.NewIdentity(0))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownType)
}

func TestEncodeFitted(t *testing.T) {
	obj, err := EncodeFitted(engine.NewFitted(selection.NewMissing(0), engine.Constant(-1)))
	require.NoError(t, err)
	assert.Equal(t, ir.Number(-1), obj["fill"])

	obj, err = EncodeFitted(engine.NewFitted(selection.NewMissing(0), engine.PassThrough()))
	require.NoError(t, err)
	_, ok := obj["fill"]
	assert.False(t, ok)

	_, err = EncodeFitted(engine.NewFitted(selection.NewMissing(0), engine.Fill{}))
	assert.ErrorIs(t, err, engine.ErrNotFitted)
}

func TestEncodeSetRoundTrip(t *testing.T) {
	ov, err := selection.NewOverride(10, 1)
	require.NoError(t, err)
	fs := []engine.Fitted{
		engine.NewFitted(mustInterval(t, 0, 5, selection.RightOpen, 0, selection.Increasing), engine.PassThrough()),
		engine.NewFitted(ov, engine.Constant(-1)),
		engine.NewFitted(selection.NewMissing(2), engine.Constant(0)),
	}

	doc, err := EncodeSet(fs)
	require.NoError(t, err)
	data, err := ir.MarshalCanonical(doc)
	require.NoError(t, err)

	got, err := ParseFitted(data)
	require.NoError(t, err)
	assert.Equal(t, fs, got)
}
