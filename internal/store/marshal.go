package store

import (
	"fmt"

	"github.com/roach88/boostcard/internal/compiler"
	"github.com/roach88/boostcard/internal/engine"
	"github.com/roach88/boostcard/internal/ir"
)

// marshalSet converts fitted selections to canonical JSON TEXT and its
// content hash.
func marshalSet(fs []engine.Fitted) (doc, hash string, err error) {
	arr, err := compiler.EncodeSet(fs)
	if err != nil {
		return "", "", fmt.Errorf("marshal set: %w", err)
	}
	data, err := ir.MarshalCanonical(arr)
	if err != nil {
		return "", "", fmt.Errorf("marshal set: %w", err)
	}
	hash, err = ir.SetHash(arr)
	if err != nil {
		return "", "", fmt.Errorf("marshal set: %w", err)
	}
	return string(data), hash, nil
}

// unmarshalSet recompiles a stored document.
func unmarshalSet(doc string) ([]engine.Fitted, error) {
	fs, err := compiler.ParseFitted([]byte(doc))
	if err != nil {
		return nil, fmt.Errorf("unmarshal set: %w", err)
	}
	return fs, nil
}
