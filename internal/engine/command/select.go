package command

import (
	"github.com/dshills/inkstorm/internal/engine/node"
	"github.com/dshills/inkstorm/internal/engine/position"
)

// CollapseEdge names which end of a selection Collapse keeps.
type CollapseEdge int

const (
	// CollapseToStart keeps the earlier point in document order.
	CollapseToStart CollapseEdge = iota

	// CollapseToEnd keeps the later point.
	CollapseToEnd

	// CollapseToAnchor keeps the anchor.
	CollapseToAnchor

	// CollapseToFocus keeps the focus.
	CollapseToFocus
)

// Select replaces the selection with r, re-resolving both endpoints.
func (b *Builder) Select(r position.Range) error {
	resolved, err := node.ResolveRange(b.doc, r)
	if err != nil {
		return err
	}
	return b.SetSelection(&resolved)
}

// Collapse collapses the selection to one of its edges.
func (b *Builder) Collapse(edge CollapseEdge) error {
	sel, err := b.resolvedSelection()
	if err != nil {
		return err
	}
	var p position.Point
	switch edge {
	case CollapseToStart:
		p = sel.Start()
	case CollapseToEnd:
		p = sel.End()
	case CollapseToAnchor:
		p = sel.Anchor
	default:
		p = sel.Focus
	}
	return b.collapseAt(p)
}

// Blur clears the selection.
func (b *Builder) Blur() error {
	return b.SetSelection(nil)
}
