package compiler

import (
	"fmt"
	"math"

	"github.com/roach88/boostcard/internal/engine"
	"github.com/roach88/boostcard/internal/ir"
	"github.com/roach88/boostcard/internal/selection"
)

// Encode returns the record describing sel. It is the inverse of
// CompileRecord. Identity selections have no record form.
func Encode(sel selection.Selection) (ir.Object, error) {
	switch s := selection.Deref(sel).(type) {
	case selection.Interval:
		return ir.Object{
			"type":   ir.String(selection.KindInterval),
			"values": ir.Array{encodeNumber(s.Low()), encodeNumber(s.High())},
			"bounds": ir.String(s.Bounds().String()),
			"order":  ir.Number(s.Order()),
			"mono":   ir.Number(s.Monotonicity()),
		}, nil
	case selection.Override:
		return ir.Object{
			"type":     ir.String(selection.KindOverride),
			"override": encodeNumber(s.Value()),
			"order":    ir.Number(s.Order()),
		}, nil
	case selection.Missing:
		return ir.Object{
			"type":  ir.String(selection.KindMissing),
			"order": ir.Number(s.Order()),
		}, nil
	default:
		return nil, &CompileError{
			Code:    ErrCodeUnknownType,
			Field:   "type",
			Message: fmt.Sprintf("%s selections have no record form", sel.Kind()),
			Err:     ErrUnknownType,
		}
	}
}

// EncodeFitted returns the record for f including its fill. Pass-through
// fills are written by omitting the field.
func EncodeFitted(f engine.Fitted) (ir.Object, error) {
	obj, err := Encode(f.Selection)
	if err != nil {
		return nil, err
	}
	switch f.Fill.Kind() {
	case engine.FillConstant:
		v, _ := f.Fill.Value()
		obj[fillKey] = encodeNumber(v)
	case engine.FillUnset:
		return nil, fmt.Errorf("encode %s: %w", f.Selection, engine.ErrNotFitted)
	}
	return obj, nil
}

// EncodeSet returns the document for a list of fitted selections, in the
// given order.
func EncodeSet(fs []engine.Fitted) (ir.Array, error) {
	arr := make(ir.Array, len(fs))
	for i, f := range fs {
		obj, err := EncodeFitted(f)
		if err != nil {
			return nil, fmt.Errorf("selection[%d]: %w", i, err)
		}
		arr[i] = obj
	}
	return arr, nil
}

// encodeNumber writes non-finite values in their string spelling so the
// record stays valid JSON.
func encodeNumber(f float64) ir.Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return ir.String(selection.FormatValue(f))
	}
	return ir.Number(f)
}
