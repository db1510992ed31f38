package command

import (
	"fmt"

	"github.com/dshills/inkstorm/internal/engine/node"
	"github.com/dshills/inkstorm/internal/engine/position"
)

// MoveOptions configures MoveFocus.
type MoveOptions struct {
	// Reverse walks toward the document start instead of the end.
	Reverse bool

	// Distance is the number of UTF-16 code units to move.
	Distance int
}

// MoveFocus moves the selection focus by a textual distance, walking
// text leaves in document order and consuming code units across leaf
// boundaries. Leaves inside void elements are skipped. The walk stops at
// the requested distance or at the document boundary, whichever comes
// first. The anchor never moves.
func (b *Builder) MoveFocus(opts MoveOptions) error {
	sel, err := b.resolvedSelection()
	if err != nil {
		return err
	}

	all, err := node.Texts(b.doc, nil)
	if err != nil {
		return err
	}
	entries := all[:0:0]
	for _, e := range all {
		if node.IsVoidAt(b.doc, e.Path) {
			continue
		}
		entries = append(entries, e)
	}

	cur := -1
	for i, e := range entries {
		if e.Text.Key == sel.Focus.Key {
			cur = i
			break
		}
	}
	if cur < 0 {
		return fmt.Errorf("focus leaf %q: %w", sel.Focus.Key, node.ErrNotFound)
	}

	offset := sel.Focus.Offset
	remaining := opts.Distance
	if opts.Reverse {
		for remaining > 0 {
			if remaining <= offset {
				offset -= remaining
				remaining = 0
				break
			}
			remaining -= offset
			if cur == 0 {
				offset = 0
				break
			}
			cur--
			offset = entries[cur].Text.Length()
		}
	} else {
		for remaining > 0 {
			avail := entries[cur].Text.Length() - offset
			if remaining <= avail {
				offset += remaining
				remaining = 0
				break
			}
			remaining -= avail
			if cur == len(entries)-1 {
				offset = entries[cur].Text.Length()
				break
			}
			cur++
			offset = 0
		}
	}

	focus := position.Point{Key: entries[cur].Text.Key, Path: entries[cur].Path, Offset: offset}
	next := position.Range{Anchor: sel.Anchor, Focus: focus}
	return b.SetSelection(&next)
}
