// Package bridge implements the native-edit reconciliation protocol.
//
// Some edits must happen directly on the host's editable surface before
// the model hears about them: an IME composition or platform autocorrect
// owns transient state that is destroyed the instant model-owned content
// is touched. The bridge is the two-phase answer. Arm records a pending
// window (the current selection plus the container enclosing one text
// leaf) and suspends the editor; the host then mutates freely. Reconcile
// reads the container back, collapses filler placeholders, replaces the
// whole leaf's content with what the host produced, and maps the host
// caret into model coordinates.
//
// Only one window may be pending at a time; arming is itself the mutual
// exclusion. A window is closed only by Reconcile or Cancel — there is
// no timeout.
package bridge
