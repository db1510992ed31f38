// Package host declares the narrow interfaces through which the engine
// consumes the view layer. The view is a render target everywhere except
// the reconciliation bridge, which reads host state as an input (and, in
// exactly one step, writes it: collapsing filler placeholders).
//
// A Container is the host-side box that fully encloses one text leaf's
// rendered representation. Filler runs are zero-width placeholders kept
// so that empty leaves remain host-selectable; they are stripped before
// any content enters the model.
package host
