package compiler

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"gopkg.in/yaml.v3"

	"github.com/roach88/boostcard/internal/engine"
	"github.com/roach88/boostcard/internal/ir"
	"github.com/roach88/boostcard/internal/selection"
)

// Parse is the top-level entry point for JSON selection documents.
// Every object in the document that carries a "type" field is compiled into
// a selection; other objects and arrays are descended into. Selections are
// returned in document order.
//
// Fails with ErrEmptyDocument when the document is empty, null, or contains
// no selection records.
func Parse(text []byte) ([]selection.Selection, error) {
	fs, err := ParseFitted(text)
	if err != nil {
		return nil, err
	}
	return Selections(fs), nil
}

// ParseFitted is Parse keeping each record's fill policy.
func ParseFitted(text []byte) ([]engine.Fitted, error) {
	doc, err := ir.Decode(text)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyDocument
		}
		return nil, &CompileError{Code: ErrCodeSyntax, Field: "$", Message: err.Error(), Err: err}
	}
	return Collect(doc)
}

// ParseYAML parses a YAML selection document. The record format is the same
// as for JSON; YAML's .inf and .nan literals may be used for numbers.
func ParseYAML(text []byte) ([]engine.Fitted, error) {
	var raw any
	if err := yaml.Unmarshal(text, &raw); err != nil {
		return nil, &CompileError{Code: ErrCodeSyntax, Field: "$", Message: err.Error(), Err: err}
	}
	doc, err := ir.FromAny(raw)
	if err != nil {
		return nil, &CompileError{Code: ErrCodeSyntax, Field: "$", Message: err.Error(), Err: err}
	}
	return Collect(doc)
}

// Collect walks a decoded document and compiles every selection record in
// it. Object members are visited in canonical key order.
func Collect(doc ir.Value) ([]engine.Fitted, error) {
	var out []engine.Fitted
	if err := collect(doc, "$", &out); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, ErrEmptyDocument
	}
	slog.Debug("collected selections", "count", len(out))
	return out, nil
}

func collect(v ir.Value, path string, out *[]engine.Fitted) error {
	switch val := v.(type) {
	case ir.Object:
		if _, ok := val["type"]; ok {
			f, err := CompileFitted(val)
			if err != nil {
				return atPath(err, path)
			}
			*out = append(*out, f)
			return nil
		}
		for _, k := range val.SortedKeys() {
			if err := collect(val[k], path+"."+k, out); err != nil {
				return err
			}
		}
	case ir.Array:
		for i, elem := range val {
			if err := collect(elem, fmt.Sprintf("%s[%d]", path, i), out); err != nil {
				return err
			}
		}
	}
	// Scalars are neither records nor containers.
	return nil
}

// Selections strips the fill policies from fs.
func Selections(fs []engine.Fitted) []selection.Selection {
	out := make([]selection.Selection, len(fs))
	for i, f := range fs {
		out[i] = f.Selection
	}
	return out
}
