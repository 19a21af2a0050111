package compiler

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/roach88/boostcard/internal/engine"
	"github.com/roach88/boostcard/internal/ir"
	"github.com/roach88/boostcard/internal/selection"
)

// fillKey carries the fill policy of a fitted record.
const fillKey = "fill"

// passThroughFill is the string spelling of a pass-through fill.
const passThroughFill = "passthrough"

// recordFields lists the fields each record type accepts.
var recordFields = map[selection.Kind][]string{
	selection.KindInterval: {"type", "values", "bounds", "order", "mono", fillKey},
	selection.KindOverride: {"type", "override", "order", fillKey},
	selection.KindMissing:  {"type", "order", fillKey},
}

// CompileRecord builds the selection described by a record.
//
// The record's "type" field selects the variant:
//
//	{"type": "interval", "values": [a, b], "bounds": "[)", "order": 0, "mono": 0}
//	{"type": "override", "override": 10, "order": 1}
//	{"type": "missing", "order": 2}
//
// Any other type, a missing or extra field, or a field of the wrong type
// fails with a *CompileError. A "fill" field is accepted and ignored; see
// CompileFitted.
func CompileRecord(obj ir.Object) (selection.Selection, error) {
	kind, err := readKind(obj)
	if err != nil {
		return nil, err
	}
	if err := checkFields(obj, kind); err != nil {
		return nil, err
	}

	order, err := readInt(obj, "order")
	if err != nil {
		return nil, err
	}

	switch kind {
	case selection.KindInterval:
		return compileInterval(obj, order)

	case selection.KindOverride:
		value, err := readNumber(obj, "override")
		if err != nil {
			return nil, err
		}
		ov, err := selection.NewOverride(value, order)
		if err != nil {
			return nil, selectionError("override", err)
		}
		return ov, nil

	case selection.KindMissing:
		return selection.NewMissing(order), nil
	}

	// readKind only admits the kinds handled above.
	panic(fmt.Sprintf("compiler: unhandled kind %q", kind))
}

// CompileFitted builds a fitted selection from a record with an optional
// "fill" field. Absent, null or the string "passthrough" (any case) means
// pass-through; a number is a constant.
func CompileFitted(obj ir.Object) (engine.Fitted, error) {
	sel, err := CompileRecord(obj)
	if err != nil {
		return engine.Fitted{}, err
	}

	raw, ok := obj[fillKey]
	if !ok {
		return engine.NewFitted(sel, engine.PassThrough()), nil
	}
	switch r := raw.(type) {
	case ir.Null:
		return engine.NewFitted(sel, engine.PassThrough()), nil
	case ir.String:
		if strings.EqualFold(string(r), passThroughFill) {
			return engine.NewFitted(sel, engine.PassThrough()), nil
		}
	}
	v, err := asNumber(fillKey, raw)
	if err != nil {
		return engine.Fitted{}, typeError(fillKey, `a number or "passthrough"`, raw)
	}
	return engine.NewFitted(sel, engine.Constant(v)), nil
}

// BoundsFromString converts a boundary token into selection bounds.
func BoundsFromString(token string) (selection.Bounds, error) {
	b, err := selection.ParseBounds(token)
	if err != nil {
		return selection.Bounds{}, selectionError("bounds", err)
	}
	return b, nil
}

func compileInterval(obj ir.Object, order int) (selection.Selection, error) {
	raw, err := lookupField(obj, "values")
	if err != nil {
		return nil, err
	}
	pair, ok := raw.(ir.Array)
	if !ok || len(pair) != 2 {
		return nil, &CompileError{
			Code:    ErrCodeFieldType,
			Field:   "values",
			Message: fmt.Sprintf("must be a two-element list of numbers, got %s", describe(raw)),
			Err:     ErrFieldType,
		}
	}
	a, err := asNumber("values[0]", pair[0])
	if err != nil {
		return nil, err
	}
	b, err := asNumber("values[1]", pair[1])
	if err != nil {
		return nil, err
	}

	token, err := readString(obj, "bounds")
	if err != nil {
		return nil, err
	}
	bounds, err := BoundsFromString(token)
	if err != nil {
		return nil, err
	}

	m, err := readInt(obj, "mono")
	if err != nil {
		return nil, err
	}
	mono, err := selection.ParseMonotonicity(m)
	if err != nil {
		return nil, selectionError("mono", err)
	}

	iv, err := selection.NewInterval(a, b, bounds, order, mono)
	if err != nil {
		return nil, selectionError("values", err)
	}
	return iv, nil
}

func readKind(obj ir.Object) (selection.Kind, error) {
	s, err := readString(obj, "type")
	if err != nil {
		return "", err
	}
	kind := selection.Kind(s)
	if _, ok := recordFields[kind]; !ok {
		return "", &CompileError{
			Code:    ErrCodeUnknownType,
			Field:   "type",
			Message: fmt.Sprintf("unrecognized selection type %q (want interval, override or missing)", s),
			Err:     ErrUnknownType,
		}
	}
	return kind, nil
}

// checkFields rejects fields the record type does not define.
func checkFields(obj ir.Object, kind selection.Kind) error {
	allowed := recordFields[kind]
	for _, k := range obj.SortedKeys() {
		if !slices.Contains(allowed, k) {
			return &CompileError{
				Code:    ErrCodeUnknownField,
				Field:   k,
				Message: fmt.Sprintf("field not allowed for %s selections", kind),
				Err:     ErrUnknownField,
			}
		}
	}
	return nil
}

func lookupField(obj ir.Object, key string) (ir.Value, error) {
	v, ok := obj[key]
	if !ok {
		return nil, &CompileError{
			Code:    ErrCodeMissingField,
			Field:   key,
			Message: key + " is required",
			Err:     ErrMissingField,
		}
	}
	return v, nil
}

func readString(obj ir.Object, key string) (string, error) {
	v, err := lookupField(obj, key)
	if err != nil {
		return "", err
	}
	s, ok := v.(ir.String)
	if !ok {
		return "", typeError(key, "a string", v)
	}
	return string(s), nil
}

func readInt(obj ir.Object, key string) (int, error) {
	v, err := lookupField(obj, key)
	if err != nil {
		return 0, err
	}
	n, ok := v.(ir.Number)
	if !ok {
		return 0, typeError(key, "an integer", v)
	}
	i, ok := n.Int()
	if !ok {
		return 0, typeError(key, "an integer", v)
	}
	return i, nil
}

func readNumber(obj ir.Object, key string) (float64, error) {
	v, err := lookupField(obj, key)
	if err != nil {
		return 0, err
	}
	return asNumber(key, v)
}

// asNumber accepts a numeric literal or one of the strings "inf", "+inf",
// "-inf" and "nan" (any case), since JSON cannot spell non-finite floats.
func asNumber(field string, v ir.Value) (float64, error) {
	switch n := v.(type) {
	case ir.Number:
		return float64(n), nil
	case ir.String:
		switch strings.ToLower(string(n)) {
		case "inf", "+inf", "infinity", "+infinity":
			return math.Inf(1), nil
		case "-inf", "-infinity":
			return math.Inf(-1), nil
		case "nan":
			return math.NaN(), nil
		}
	}
	return 0, typeError(field, "a number", v)
}

func typeError(field, want string, got ir.Value) *CompileError {
	return &CompileError{
		Code:    ErrCodeFieldType,
		Field:   field,
		Message: fmt.Sprintf("must be %s, got %s", want, describe(got)),
		Err:     ErrFieldType,
	}
}

func describe(v ir.Value) string {
	switch val := v.(type) {
	case ir.String:
		return fmt.Sprintf("string %q", string(val))
	case ir.Number:
		return "number " + selection.FormatValue(float64(val))
	case ir.Array:
		return fmt.Sprintf("array of %d", len(val))
	default:
		return ir.TypeName(v)
	}
}

// selectionError wraps a constructor error from package selection.
func selectionError(field string, err error) *CompileError {
	code := ErrCodeInvalidValue
	switch {
	case errors.Is(err, selection.ErrInvalidBounds):
		code = ErrCodeInvalidBounds
	case errors.Is(err, selection.ErrInvalidMonotonicity):
		code = ErrCodeInvalidMonotonicity
	}
	return &CompileError{
		Code:    code,
		Field:   field,
		Message: err.Error(),
		Err:     err,
	}
}
