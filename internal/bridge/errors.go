package bridge

import "errors"

// Errors returned by the reconciliation protocol.
var (
	// ErrAlreadyPending indicates Arm was called while a window was
	// pending. This is a programmer error: arming is the mutual
	// exclusion mechanism for native edits.
	ErrAlreadyPending = errors.New("native edit window already pending")

	// ErrNotArmed indicates Reconcile was called with no pending window.
	ErrNotArmed = errors.New("no native edit window pending")

	// ErrSpanMismatch indicates the live host selection left the armed
	// container during the window. The window is abandoned and the
	// triggering signal should be handled as fresh input.
	ErrSpanMismatch = errors.New("host selection left the armed container")

	// ErrNoArmTarget indicates Arm ran without a selection resolving to
	// a text leaf container.
	ErrNoArmTarget = errors.New("no container to arm over")

	// ErrInvariant indicates the armed container vanished from the live
	// view after its content was reconciled. The replacement collapsed
	// the very node the caret must land in; selection integrity can no
	// longer be guaranteed, so this is fatal and never retried.
	ErrInvariant = errors.New("host container detached after reconciliation")
)
