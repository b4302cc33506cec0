package units

import "errors"

var (
	// ErrDimensionMismatch is returned when an operation combines quantities
	// whose dimensions are incompatible for it.
	ErrDimensionMismatch = errors.New("dimension mismatch")
	// ErrDivisionByZero is returned when dividing by a zero-magnitude quantity.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrUnknownUnit is returned for unit symbols missing from the registry.
	ErrUnknownUnit = errors.New("unknown unit")
	// ErrSyntax is returned for malformed unit or quantity expressions.
	ErrSyntax = errors.New("invalid unit expression")
)
