package engine

import "errors"

// Errors returned by engine operations.
var (
	// ErrReadOnly indicates a mutating call on a read-only editor.
	ErrReadOnly = errors.New("editor is read-only")

	// ErrWindowPending indicates a mutating call while a native edit
	// window is armed. The host owns the text state until the window is
	// reconciled or cancelled.
	ErrWindowPending = errors.New("native edit window pending")

	// ErrSuspendTwice indicates Suspend was called while already
	// suspended.
	ErrSuspendTwice = errors.New("editor already suspended")
)
