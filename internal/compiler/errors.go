package compiler

import (
	"errors"
	"fmt"
	"io"

	"cuelang.org/go/cue/token"
)

// Compile error codes (E100-E199).
const (
	ErrCodeSyntax              = "E100" // document is not well-formed
	ErrCodeUnknownType         = "E101" // unrecognized "type" discriminator
	ErrCodeMissingField        = "E102" // required field absent
	ErrCodeFieldType           = "E103" // field has the wrong JSON type
	ErrCodeUnknownField        = "E104" // field not allowed for this type
	ErrCodeInvalidBounds       = "E105" // bounds token not one of [] (] [) ()
	ErrCodeInvalidMonotonicity = "E106" // mono outside {-1, 0, 1}
	ErrCodeInvalidValue        = "E107" // NaN bound or override constant
	ErrCodeEmptyDocument       = "E110" // document yields no selections
)

// Sentinel errors. CompileError values unwrap to one of these, or to a
// sentinel from package selection.
var (
	ErrUnknownType  = errors.New("compiler: unrecognized selection type")
	ErrMissingField = errors.New("compiler: missing field")
	ErrFieldType    = errors.New("compiler: wrong field type")
	ErrUnknownField = errors.New("compiler: unknown field")

	// ErrEmptyDocument is returned when parsing yields no selections.
	// It wraps io.ErrUnexpectedEOF: the failure is one of input, not of
	// any individual record.
	ErrEmptyDocument = fmt.Errorf("compiler: document contains no selections: %w", io.ErrUnexpectedEOF)
)

// CompileError represents a record that could not be turned into a selection.
type CompileError struct {
	Code    string
	Field   string
	Message string
	Pos     token.Pos // CUE position if available
	Err     error
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: [%s] %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Code, e.Field, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is a validation failure of caller-supplied
// data: a bad record, token, discriminator or monotonicity.
func IsValidation(err error) bool {
	var ce *CompileError
	return errors.As(err, &ce) && ce.Code != ErrCodeSyntax && ce.Code != ErrCodeEmptyDocument
}

// atPath prefixes the field of a CompileError with the document path of
// the record it came from.
func atPath(err error, path string) error {
	var ce *CompileError
	if !errors.As(err, &ce) || path == "" {
		return err
	}
	if ce.Field == "" {
		ce.Field = path
	} else {
		ce.Field = path + "." + ce.Field
	}
	return ce
}
