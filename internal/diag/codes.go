package diag

// Error codes for the backend.
//
// Code ranges:
// B0001-B0049: IR construction errors
// B0050-B0099: literal evaluation errors
// B0100-B0199: textual-IR front end errors
const (
	// B0001: a jump references a label that is never declared
	ErrDanglingLabel = "B0001"

	// B0002: a name is bound twice where the caller forbids rebinding
	ErrDuplicateBinding = "B0002"

	// B0050: integer division or modulo by a zero constant
	ErrDivisionByZero = "B0050"

	// B0051: literal operands of incompatible types
	ErrTypeMismatch = "B0051"

	// B0100: source text does not parse
	ErrSyntax = "B0100"

	// B0101: reference to a function that is never defined
	ErrUndefinedFunction = "B0101"
)
