package selection

import "errors"

// Validation errors returned by the constructors and parsers in this package.
var (
	// ErrInvalidMonotonicity indicates a monotonicity outside {-1, 0, 1}.
	ErrInvalidMonotonicity = errors.New("selection: invalid monotonicity")

	// ErrInvalidBounds indicates a boundary token other than "[]", "(]", "[)", "()".
	ErrInvalidBounds = errors.New("selection: invalid bounds token")

	// ErrInvalidValue indicates a NaN bound or override constant.
	// Such a selection could never match anything.
	ErrInvalidValue = errors.New("selection: invalid value")
)
