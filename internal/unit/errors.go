package unit

import "errors"

var (
	ErrNotNone = errors.New("unit: not a none")
	ErrNotBool = errors.New("unit: not a bool")
	ErrNotByte = errors.New("unit: not a byte")
	ErrNotInt  = errors.New("unit: not an int")
	ErrNotDec  = errors.New("unit: not a dec")
	ErrNotStr  = errors.New("unit: not a str")
	ErrNotRef  = errors.New("unit: not a ref")
	ErrNotPair = errors.New("unit: not a pair")
	ErrNotList = errors.New("unit: not a list")
	ErrNotMap  = errors.New("unit: not a map")
	ErrNotUnit = errors.New("unit: not a unit")

	ErrUnclosedBrackets = errors.New("unit: unclosed brackets")
	ErrUnclosedQuotes   = errors.New("unit: unclosed quotes")
	ErrMissingSeparator = errors.New("unit: missing separator")
	ErrMissingDot       = errors.New("unit: missing dot")
	ErrMissingDotPart   = errors.New("unit: missing part after dot")
	ErrRefNotString     = errors.New("unit: ref path is not a string")
	ErrRefInvalidPath   = errors.New("unit: invalid ref path segment")
	ErrUnexpectedEnd    = errors.New("unit: unexpected end of input")
)
