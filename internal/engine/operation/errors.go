package operation

import "errors"

// Errors returned by the operation applier. Both indicate a caller bug:
// malformed arguments are surfaced, never swallowed or repaired.
var (
	// ErrInvalidPath indicates an operation path does not resolve, or an
	// insertion index exceeds the parent's child count.
	ErrInvalidPath = errors.New("invalid operation path")

	// ErrOutOfRange indicates a text offset or length falls outside the
	// addressed leaf's current content.
	ErrOutOfRange = errors.New("text offset out of range")
)
