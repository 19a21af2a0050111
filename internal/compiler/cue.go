package compiler

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"

	"github.com/roach88/boostcard/internal/engine"
	"github.com/roach88/boostcard/internal/ir"
)

// ParseCUE compiles CUE source and collects the selection records in it.
// filename is used only in error positions.
//
//	column: {
//		bins: [
//			{type: "interval", values: [0, 5], bounds: "[)", order: 0, mono: 1},
//			{type: "missing", order: 1, fill: 0},
//		]
//	}
func ParseCUE(text []byte, filename string) ([]engine.Fitted, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(text, cue.Filename(filename))
	return CompileCUE(v)
}

// CompileCUE collects the selection records in a CUE value. Any struct with
// a "type" field is a record; other structs and lists are descended into in
// declaration order. Compile errors carry the CUE source position.
func CompileCUE(v cue.Value) ([]engine.Fitted, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	var out []engine.Fitted
	if err := collectCUE(v, &out); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, ErrEmptyDocument
	}
	return out, nil
}

func collectCUE(v cue.Value, out *[]engine.Fitted) error {
	switch v.IncompleteKind() {
	case cue.StructKind:
		if v.LookupPath(cue.ParsePath("type")).Exists() {
			raw, err := fromCUE(v)
			if err != nil {
				return err
			}
			f, err := CompileFitted(raw.(ir.Object))
			if err != nil {
				return withCUEPos(err, v)
			}
			*out = append(*out, f)
			return nil
		}

		iter, err := v.Fields()
		if err != nil {
			return formatCUEError(err)
		}
		for iter.Next() {
			if err := collectCUE(iter.Value(), out); err != nil {
				return err
			}
		}

	case cue.ListKind:
		iter, err := v.List()
		if err != nil {
			return formatCUEError(err)
		}
		for iter.Next() {
			if err := collectCUE(iter.Value(), out); err != nil {
				return err
			}
		}
	}
	return nil
}

// fromCUE converts a concrete CUE value into an ir.Value.
func fromCUE(v cue.Value) (ir.Value, error) {
	if d, ok := v.Default(); ok {
		v = d
	}
	switch v.Kind() {
	case cue.NullKind:
		return ir.Null{}, nil

	case cue.BoolKind:
		b, err := v.Bool()
		if err != nil {
			return nil, formatCUEError(err)
		}
		return ir.Bool(b), nil

	case cue.IntKind:
		n, err := v.Int64()
		if err != nil {
			return nil, formatCUEError(err)
		}
		return ir.Number(n), nil

	case cue.FloatKind:
		f, err := v.Float64()
		if err != nil {
			return nil, formatCUEError(err)
		}
		return ir.Number(f), nil

	case cue.StringKind:
		s, err := v.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		return ir.String(s), nil

	case cue.ListKind:
		iter, err := v.List()
		if err != nil {
			return nil, formatCUEError(err)
		}
		var arr ir.Array
		for iter.Next() {
			elem, err := fromCUE(iter.Value())
			if err != nil {
				return nil, err
			}
			arr = append(arr, elem)
		}
		return arr, nil

	case cue.StructKind:
		iter, err := v.Fields()
		if err != nil {
			return nil, formatCUEError(err)
		}
		obj := make(ir.Object)
		for iter.Next() {
			elem, err := fromCUE(iter.Value())
			if err != nil {
				return nil, err
			}
			obj[iter.Label()] = elem
		}
		return obj, nil

	default:
		return nil, &CompileError{
			Code:    ErrCodeFieldType,
			Field:   v.Path().String(),
			Message: fmt.Sprintf("value must be concrete, got %v", v.IncompleteKind()),
			Pos:     v.Pos(),
			Err:     ErrFieldType,
		}
	}
}

// withCUEPos attaches the position of the offending field (or of the record
// itself) to a CompileError that has none.
func withCUEPos(err error, record cue.Value) error {
	ce, ok := err.(*CompileError)
	if !ok || ce.Pos.IsValid() {
		return err
	}
	ce.Pos = record.Pos()
	if field := record.LookupPath(cue.ParsePath(ce.Field)); field.Exists() {
		ce.Pos = field.Pos()
	}
	if path := record.Path().String(); path != "" {
		ce.Field = path + "." + ce.Field
	}
	return ce
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	first := errs[0]
	ce := &CompileError{
		Code:    ErrCodeSyntax,
		Field:   "cue",
		Message: first.Error(),
		Err:     err,
	}
	if positions := errors.Positions(first); len(positions) > 0 {
		ce.Pos = positions[0]
	}
	return ce
}
