package command

import (
	"fmt"

	"github.com/dshills/inkstorm/internal/engine/node"
	"github.com/dshills/inkstorm/internal/engine/operation"
	"github.com/dshills/inkstorm/internal/engine/position"
)

// Builder accumulates the operations of one command batch while keeping
// a scratch copy of the state those operations produce. Emitted
// operations are validated by actually applying them, which is what lets
// the editor commit batches all-or-nothing without rollback.
type Builder struct {
	doc *node.Document
	sel *position.Range
	ops []operation.Op
}

// NewBuilder starts a batch from the given state. The inputs are treated
// as immutable; the builder works on structurally shared copies.
func NewBuilder(doc *node.Document, sel *position.Range) *Builder {
	var s *position.Range
	if sel != nil {
		c := sel.Clone()
		s = &c
	}
	return &Builder{doc: doc, sel: s}
}

// Document returns the scratch document including every emitted op.
func (b *Builder) Document() *node.Document { return b.doc }

// Selection returns the scratch selection, nil when blurred.
func (b *Builder) Selection() *position.Range { return b.sel }

// Ops returns the operations emitted so far, in order.
func (b *Builder) Ops() []operation.Op { return b.ops }

// Emit validates op by applying it to the scratch state and records it.
// The op's paths and offsets must be expressed against the scratch state
// as it exists right now, not against the batch's original state.
func (b *Builder) Emit(op operation.Op) error {
	doc, sel, err := operation.Apply(b.doc, b.sel, op)
	if err != nil {
		return err
	}
	b.doc = doc
	b.sel = sel
	b.ops = append(b.ops, op)
	return nil
}

// SetSelection emits a set_selection op replacing the scratch selection.
func (b *Builder) SetSelection(r *position.Range) error {
	var next *position.Range
	if r != nil {
		c := r.Clone()
		next = &c
	}
	return b.Emit(operation.SetSelection{Selection: next, Prev: b.sel})
}

// collapseAt emits a set_selection collapsing to the given point.
func (b *Builder) collapseAt(p position.Point) error {
	r := position.NewCollapsed(p)
	return b.SetSelection(&r)
}

// resolvedSelection returns the current selection with both endpoints
// re-resolved against the scratch document. Cached point paths are never
// trusted across operation boundaries.
func (b *Builder) resolvedSelection() (position.Range, error) {
	if b.sel == nil {
		return position.Range{}, ErrNoSelection
	}
	r, err := node.ResolveRange(b.doc, *b.sel)
	if err != nil {
		return position.Range{}, fmt.Errorf("selection lost: %w", err)
	}
	return r, nil
}

// removeNode emits a remove_node for the node at path, capturing the
// removed subtree for inversion.
func (b *Builder) removeNode(path position.Path) error {
	n, err := node.NodeAt(b.doc, path)
	if err != nil {
		return err
	}
	return b.Emit(operation.RemoveNode{Path: path.Clone(), Node: n})
}

// removeTextRun emits a remove_text for code units [from, to) of the
// leaf at path.
func (b *Builder) removeTextRun(path position.Path, from, to int) error {
	if from == to {
		return nil
	}
	t, err := node.TextAt(b.doc, path)
	if err != nil {
		return err
	}
	run := node.UTF16Slice(t.Content, from, to)
	return b.Emit(operation.RemoveText{Path: path.Clone(), Offset: from, Text: run})
}

// mergeInto emits a merge_node folding the node at path into its
// previous sibling, recording the payload inversion needs.
func (b *Builder) mergeInto(path position.Path) error {
	prev, err := node.NodeAt(b.doc, path.Previous())
	if err != nil {
		return err
	}
	op := operation.MergeNode{Path: path.Clone()}
	switch p := prev.(type) {
	case *node.Text:
		op.Position = p.Length()
		if cur, err := node.TextAt(b.doc, path); err == nil {
			op.DiscardedKey = cur.Key
		}
	case *node.Element:
		op.Position = len(p.Children)
	}
	return b.Emit(op)
}
