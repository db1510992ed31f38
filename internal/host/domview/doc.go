// Package domview is a reference host view backed by an HTML node tree.
// It renders a document into nested div/span elements (one span per text
// leaf, keyed by a data-key attribute, with zero-width filler text for
// empty leaves) and implements the host.View query surface over that
// tree.
//
// The package doubles as the engine's stand-in for a browser
// contenteditable surface: tests and the CLI mutate it directly to
// simulate IME composition, autocorrect, and focus movement, then let
// the reconciliation bridge fold the result back into the model.
package domview
