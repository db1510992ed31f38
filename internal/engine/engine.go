package engine

import (
	"sync"

	"github.com/dshills/inkstorm/internal/engine/command"
	"github.com/dshills/inkstorm/internal/engine/node"
	"github.com/dshills/inkstorm/internal/engine/normalize"
	"github.com/dshills/inkstorm/internal/engine/operation"
	"github.com/dshills/inkstorm/internal/engine/position"
	"github.com/dshills/inkstorm/internal/schema"
)

// Re-export commonly used types for convenience.
type (
	// Path locates a node by child indices from the root.
	Path = position.Path

	// Point addresses a position inside a text leaf.
	Point = position.Point

	// Range is an anchor/focus selection.
	Range = position.Range

	// Key is the stable identity of a text leaf.
	Key = position.Key

	// Document is the immutable root node.
	Document = node.Document

	// Element is a typed interior node.
	Element = node.Element

	// Text is a leaf node.
	Text = node.Text

	// Op is an atomic edit operation.
	Op = operation.Op

	// Builder accumulates a command batch.
	Builder = command.Builder
)

// Editor owns a (document, selection) pair and applies command batches
// to it. All methods are safe for concurrent use, although the editing
// protocol itself is single-writer: one logical thread reacts to
// discrete input signals.
type Editor struct {
	mu        sync.Mutex
	doc       *node.Document
	sel       *position.Range
	rules     []schema.Rule
	readOnly  bool
	suspended bool
}

// New creates an editor. Without WithDocument it starts from a single
// empty paragraph.
func New(opts ...Option) *Editor {
	e := &Editor{
		doc: node.NewDocument(node.NewElement("paragraph", node.NewText("", nil))),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Document returns the current document snapshot. The snapshot is
// immutable and remains valid across later edits.
func (e *Editor) Document() *node.Document {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.doc
}

// Selection returns a copy of the current selection, or nil when the
// editor is blurred.
func (e *Editor) Selection() *position.Range {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.sel == nil {
		return nil
	}
	c := e.sel.Clone()
	return &c
}

// Do runs one command batch. The batch function emits operations
// through the builder; if it returns an error, or any operation fails to
// apply, or normalization fails, the editor state is untouched. On
// success the batch plus the normalization ops are committed atomically
// and returned in application order.
func (e *Editor) Do(batch func(b *command.Builder) error) ([]operation.Op, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.readOnly {
		return nil, ErrReadOnly
	}
	if e.suspended {
		return nil, ErrWindowPending
	}
	return e.commit(batch)
}

// DoSuspended runs a batch while a native edit window is pending. Only
// the reconciliation bridge uses this: reconciliation is the one writer
// allowed to touch the model during its own window.
func (e *Editor) DoSuspended(batch func(b *command.Builder) error) ([]operation.Op, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.readOnly {
		return nil, ErrReadOnly
	}
	return e.commit(batch)
}

func (e *Editor) commit(batch func(b *command.Builder) error) ([]operation.Op, error) {
	b := command.NewBuilder(e.doc, e.sel)
	if err := batch(b); err != nil {
		return nil, err
	}
	if err := normalize.Pass(b, e.rules); err != nil {
		return nil, err
	}
	e.doc = b.Document()
	e.sel = b.Selection()
	return b.Ops(), nil
}

// Apply validates and commits a raw operation batch, then normalizes.
// Returns the full op list including normalization fixes.
func (e *Editor) Apply(ops ...operation.Op) ([]operation.Op, error) {
	return e.Do(func(b *command.Builder) error {
		for _, op := range ops {
			if err := b.Emit(op); err != nil {
				return err
			}
		}
		return nil
	})
}

// Suspend marks the editor as owned by a pending native edit window.
// Subsequent Do calls return ErrWindowPending until Resume.
func (e *Editor) Suspend() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.suspended {
		return ErrSuspendTwice
	}
	e.suspended = true
	return nil
}

// Resume lifts a suspension. Safe to call when not suspended.
func (e *Editor) Resume() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.suspended = false
}

// Suspended reports whether a native edit window is pending.
func (e *Editor) Suspended() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.suspended
}
