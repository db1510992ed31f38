package command

import (
	"sort"

	"github.com/dshills/inkstorm/internal/engine/node"
	"github.com/dshills/inkstorm/internal/engine/position"
)

// Delete removes the content spanned by the selection, merging boundary
// blocks when the span crosses a block edge, then collapses the
// selection to the start of the removed range. A collapsed selection is
// a no-op.
func (b *Builder) Delete() error {
	sel, err := b.resolvedSelection()
	if err != nil {
		return err
	}
	if sel.IsCollapsed() {
		return nil
	}
	cov := sel.Covering()
	start, end := cov.Anchor, cov.Focus

	// Simple case: the span lives inside one leaf.
	if start.Key == end.Key {
		if err := b.removeTextRun(start.Path, start.Offset, end.Offset); err != nil {
			return err
		}
		return b.collapseAt(position.Point{Key: start.Key, Path: start.Path, Offset: start.Offset})
	}

	entries, err := node.Texts(b.doc, nil)
	if err != nil {
		return err
	}
	startIdx, endIdx := -1, -1
	for i, e := range entries {
		if e.Text.Key == start.Key {
			startIdx = i
		}
		if e.Text.Key == end.Key {
			endIdx = i
		}
	}
	if startIdx < 0 || endIdx < 0 || startIdx > endIdx {
		return ErrNoSelection
	}

	startBlock := start.Path[0]
	endBlock := end.Path[0]

	// Collect structural removals: whole blocks strictly between the
	// boundary blocks, and within the boundary blocks the largest fully
	// covered subtrees that exclude both boundary leaves.
	removals := map[string]position.Path{}
	for blk := startBlock + 1; blk < endBlock; blk++ {
		p := position.Path{blk}
		removals[p.String()] = p
	}
	for i := startIdx + 1; i < endIdx; i++ {
		leaf := entries[i]
		if leaf.Path[0] != startBlock && leaf.Path[0] != endBlock {
			continue // covered by a whole-block removal
		}
		p := coveredAncestor(leaf.Path, start.Path, end.Path)
		removals[p.String()] = p
	}

	// Trim the end leaf's head before structure shifts, then apply the
	// structural removals in reverse document order so earlier paths
	// stay valid, then trim the start leaf's tail.
	if err := b.removeTextRun(end.Path, 0, end.Offset); err != nil {
		return err
	}
	paths := make([]position.Path, 0, len(removals))
	for _, p := range removals {
		paths = append(paths, p)
	}
	sort.Slice(paths, func(i, j int) bool { return paths[i].Compare(paths[j]) > 0 })
	for _, p := range paths {
		if err := b.removeNode(p); err != nil {
			return err
		}
	}
	startPath, err := node.ResolvePath(b.doc, start.Key)
	if err != nil {
		return err
	}
	startLeaf, err := node.TextAt(b.doc, startPath)
	if err != nil {
		return err
	}
	if err := b.removeTextRun(startPath, start.Offset, startLeaf.Length()); err != nil {
		return err
	}

	// The span crossed a block boundary: everything between is gone, so
	// the end block now follows the start block directly and merges into
	// it.
	if startBlock != endBlock {
		if err := b.mergeInto(position.Path{startBlock + 1}); err != nil {
			return err
		}
	}

	newStart, err := node.ResolvePath(b.doc, start.Key)
	if err != nil {
		return err
	}
	return b.collapseAt(position.Point{Key: start.Key, Path: newStart, Offset: start.Offset})
}

// DeleteBackward deletes distance code units before a collapsed
// selection, walking across leaf boundaries. With a non-collapsed
// selection it behaves like Delete.
func (b *Builder) DeleteBackward(distance int) error {
	sel, err := b.resolvedSelection()
	if err != nil {
		return err
	}
	if !sel.IsCollapsed() {
		return b.Delete()
	}
	if err := b.MoveFocus(MoveOptions{Reverse: true, Distance: distance}); err != nil {
		return err
	}
	return b.Delete()
}

// coveredAncestor climbs from a fully covered leaf to the largest
// element subtree that is still fully covered, i.e. one that contains
// neither boundary leaf and is not a top-level block.
func coveredAncestor(leaf, startPath, endPath position.Path) position.Path {
	p := leaf.Clone()
	for len(p) > 2 {
		parent := p.Parent()
		if parent.IsAncestorOf(startPath) || parent.IsAncestorOf(endPath) {
			break
		}
		p = parent
	}
	return p
}
