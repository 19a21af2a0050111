package ir

import (
	"errors"
	"io"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueSealed(t *testing.T) {
	var _ Value = Null{}
	var _ Value = String("test")
	var _ Value = Number(4.5)
	var _ Value = Bool(true)
	var _ Value = Array{String("a"), Number(1)}
	var _ Value = Object{"key": String("value")}
}

func TestDecodeNestedDocument(t *testing.T) {
	v, err := Decode([]byte(`{"type":"interval","values":[20,10.5],"ok":true,"fill":null}`))
	require.NoError(t, err)

	obj, ok := v.(Object)
	require.True(t, ok)
	assert.Equal(t, String("interval"), obj["type"])
	assert.Equal(t, Array{Number(20), Number(10.5)}, obj["values"])
	assert.Equal(t, Bool(true), obj["ok"])
	assert.Equal(t, Null{}, obj["fill"])
}

func TestDecodeEmptyDocument(t *testing.T) {
	for _, in := range []string{"", "   \n\t"} {
		_, err := Decode([]byte(in))
		require.Error(t, err)
		assert.True(t, errors.Is(err, io.EOF), "input %q: %v", in, err)
	}
}

func TestDecodeRejectsTrailingData(t *testing.T) {
	_, err := Decode([]byte(`{"a":1} {"b":2}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected data")
}

func TestDecodeSyntaxError(t *testing.T) {
	_, err := Decode([]byte(`{"a":`))
	require.Error(t, err)
	assert.False(t, errors.Is(err, io.EOF))
}

func TestFromAnyYAMLShapes(t *testing.T) {
	v, err := FromAny(map[string]any{
		"order":  3,
		"values": []any{1.5, int64(2)},
		"nested": map[any]any{"k": "v"},
	})
	require.NoError(t, err)

	obj := v.(Object)
	assert.Equal(t, Number(3), obj["order"])
	assert.Equal(t, Array{Number(1.5), Number(2)}, obj["values"])
	assert.Equal(t, Object{"k": String("v")}, obj["nested"])
}

func TestFromAnyRejectsNonStringKeys(t *testing.T) {
	_, err := FromAny(map[any]any{1: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "keys must be strings")
}

func TestNumberInt(t *testing.T) {
	tests := []struct {
		name string
		in   Number
		want int
		ok   bool
	}{
		{"integral", 7, 7, true},
		{"negative", -1, -1, true},
		{"fractional", 1.5, 0, false},
		{"nan", Number(math.NaN()), 0, false},
		{"inf", Number(math.Inf(1)), 0, false},
		{"too large", Number(1 << 60), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.in.Int()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestObjectSortedKeys(t *testing.T) {
	obj := Object{"zebra": Null{}, "apple": Null{}, "Banana": Null{}}
	assert.Equal(t, []string{"Banana", "apple", "zebra"}, obj.SortedKeys())
}

func TestTypeName(t *testing.T) {
	assert.Equal(t, "number", TypeName(Number(1)))
	assert.Equal(t, "array", TypeName(Array{}))
	assert.Equal(t, "null", TypeName(Null{}))
}
