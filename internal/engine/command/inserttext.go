package command

import (
	"github.com/dshills/inkstorm/internal/engine/node"
	"github.com/dshills/inkstorm/internal/engine/operation"
	"github.com/dshills/inkstorm/internal/engine/position"
)

// InsertText inserts text at the selection. A non-collapsed selection is
// deleted first; the caret ends up after the inserted run.
func (b *Builder) InsertText(text string) error {
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
	if text == "" {
		return nil
	}

	point := sel.Focus
	if node.IsVoidAt(b.doc, point.Path) {
		// Void content is host-rendered; typing into it is dropped.
		return nil
	}
	if err := b.Emit(operation.InsertText{Path: point.Path.Clone(), Offset: point.Offset, Text: text}); err != nil {
		return err
	}
	return b.collapseAt(position.Point{
		Key:    point.Key,
		Path:   point.Path,
		Offset: point.Offset + node.UTF16Len(text),
	})
}
