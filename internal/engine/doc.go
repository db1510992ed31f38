// Package engine provides the document transform engine for Inkstorm:
// an immutable tree-shaped document model, atomic operations over it,
// and a selection anchored to document positions.
//
// The engine is built on several sub-packages:
//
//   - position: Path/Point/Range value types addressing tree locations
//   - node: the immutable Document/Element/Text tree with structural
//     sharing between snapshots
//   - operation: the nine atomic, invertible edit operations
//   - command: high-level edits composed from operations
//   - normalize: the post-batch pass restoring structural invariants
//
// # State model
//
// An Editor owns a (document, selection) pair. Every command batch
// produces a new pair; previous pairs stay valid and immutable, so they
// are safe to retain. Operations are the only unit of mutation.
//
// # Basic usage
//
//	ed := engine.New(engine.WithDocument(doc))
//	_, err := ed.Do(func(b *command.Builder) error {
//	    if err := b.Select(r); err != nil {
//	        return err
//	    }
//	    return b.InsertText("hello")
//	})
//
// A batch is atomic: every emitted operation is validated by applying it
// to a scratch state, and the editor commits only when the whole batch
// and the normalization pass that follows succeed. A failing batch
// leaves the editor exactly as it was.
//
// # Native edit windows
//
// While the reconciliation bridge has a pending native edit window the
// editor is suspended: Do returns ErrWindowPending so in-flight host
// compositions are never clobbered. See the bridge package.
package engine
