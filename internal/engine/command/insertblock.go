package command

import (
	"fmt"

	"github.com/dshills/inkstorm/internal/engine/node"
	"github.com/dshills/inkstorm/internal/engine/operation"
	"github.com/dshills/inkstorm/internal/engine/position"
)

// InsertBlock inserts el as a new top-level block at the selection. At
// the end of the current block (which includes an empty block) the new
// block goes after it; at the start it goes before; anywhere else the
// current block is split and the new block lands between the halves. The
// caret moves to the start of the inserted block.
func (b *Builder) InsertBlock(el *node.Element) error {
	sel, err := b.resolvedSelection()
	if err != nil {
		return err
	}
	if !sel.IsCollapsed() {
		if err := b.Delete(); err != nil {
			return err
		}
		if sel, err = b.resolvedSelection(); err != nil {
			return err
		}
	}
	point := sel.Focus
	blockPath := position.Path{point.Path[0]}

	atStart, atEnd, err := blockEdges(b.doc, blockPath, point)
	if err != nil {
		return err
	}

	var slot position.Path
	switch {
	case atEnd:
		slot = blockPath.Next()
	case atStart:
		slot = blockPath
	default:
		if err := b.SplitNodes(SplitOptions{Height: HeightBlock}); err != nil {
			return err
		}
		slot = blockPath.Next()
	}

	if err := b.Emit(operation.InsertNode{Path: slot, Node: el}); err != nil {
		return err
	}

	leaf := firstTextLeaf(el)
	if leaf == nil {
		return fmt.Errorf("insert block %q: %w", el.Type, ErrNoTextLeaf)
	}
	leafPath, err := node.ResolvePath(b.doc, leaf.Key)
	if err != nil {
		return err
	}
	return b.collapseAt(position.Point{Key: leaf.Key, Path: leafPath, Offset: 0})
}

// blockEdges reports whether the point sits at the very start and/or
// very end of the block's text.
func blockEdges(doc *node.Document, blockPath position.Path, point position.Point) (atStart, atEnd bool, err error) {
	entries, err := node.Texts(doc, blockPath)
	if err != nil {
		return false, false, err
	}
	if len(entries) == 0 {
		return true, true, nil
	}
	first, last := entries[0], entries[len(entries)-1]
	atStart = point.Key == first.Text.Key && point.Offset == 0
	atEnd = point.Key == last.Text.Key && point.Offset == last.Text.Length()
	return atStart, atEnd, nil
}

// firstTextLeaf returns the first text leaf under n in document order.
func firstTextLeaf(n node.Node) *node.Text {
	if t, ok := n.(*node.Text); ok {
		return t
	}
	for _, c := range node.ChildrenOf(n) {
		if t := firstTextLeaf(c); t != nil {
			return t
		}
	}
	return nil
}
