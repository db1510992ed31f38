package command

import (
	"github.com/dshills/inkstorm/internal/engine/node"
	"github.com/dshills/inkstorm/internal/engine/operation"
	"github.com/dshills/inkstorm/internal/engine/position"
)

// Height selects how far up the ancestor chain SplitNodes cuts.
type Height int

const (
	// HeightBlock splits through inline ancestors and the nearest
	// enclosing block.
	HeightBlock Height = iota

	// HeightInline splits only up to the nearest inline/text ancestor,
	// leaving enclosing blocks intact.
	HeightInline
)

// SplitOptions configures SplitNodes.
type SplitOptions struct {
	Height Height
}

// SplitNodes splits the tree at the selection focus. The text leaf is
// split at the caret offset, then each ancestor is split at the child
// boundary, climbing until the requested height is reached. The caret
// lands at the start of the right half.
func (b *Builder) SplitNodes(opts SplitOptions) error {
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

	split := operation.Split(point.Path, point.Offset, nil)
	rightKey := split.NewKey
	if err := b.Emit(split); err != nil {
		return err
	}

	childPath := point.Path.Clone()
	for len(childPath) > 1 {
		parentPath := childPath.Parent()
		parent, err := node.NodeAt(b.doc, parentPath)
		if err != nil {
			return err
		}
		el, ok := parent.(*node.Element)
		if !ok {
			break // reached the document root
		}
		if opts.Height == HeightInline && !el.Inline {
			break
		}
		if err := b.Emit(operation.Split(parentPath, childPath.Index()+1, nil)); err != nil {
			return err
		}
		childPath = parentPath
		if opts.Height == HeightBlock && !el.Inline {
			break // the enclosing block was just split
		}
	}

	rightPath, err := node.ResolvePath(b.doc, rightKey)
	if err != nil {
		return err
	}
	return b.collapseAt(position.Point{Key: rightKey, Path: rightPath, Offset: 0})
}
