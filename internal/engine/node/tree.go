package node

import (
	"fmt"

	"github.com/dshills/inkstorm/internal/engine/position"
)

// NodeAt returns the node addressed by path, or ErrNotFound if any index
// fails to resolve. The empty path addresses the document itself.
func NodeAt(doc *Document, path position.Path) (Node, error) {
	var cur Node = doc
	for depth, idx := range path {
		children := ChildrenOf(cur)
		if idx < 0 || idx >= len(children) {
			return nil, fmt.Errorf("resolve %s at depth %d: %w", path, depth, ErrNotFound)
		}
		cur = children[idx]
	}
	return cur, nil
}

// ParentOf returns the parent of the node at path together with the
// child index of the node within it.
func ParentOf(doc *Document, path position.Path) (Node, int, error) {
	if len(path) == 0 {
		return nil, 0, fmt.Errorf("document root has no parent: %w", ErrNotFound)
	}
	parent, err := NodeAt(doc, path.Parent())
	if err != nil {
		return nil, 0, err
	}
	return parent, path.Index(), nil
}

// TextAt returns the Text leaf at path, or ErrNotText if the path
// resolves to an interior node.
func TextAt(doc *Document, path position.Path) (*Text, error) {
	n, err := NodeAt(doc, path)
	if err != nil {
		return nil, err
	}
	t, ok := n.(*Text)
	if !ok {
		return nil, fmt.Errorf("node at %s: %w", path, ErrNotText)
	}
	return t, nil
}

// NextSibling returns the sibling after the node at path.
func NextSibling(doc *Document, path position.Path) (Node, error) {
	parent, idx, err := ParentOf(doc, path)
	if err != nil {
		return nil, err
	}
	children := ChildrenOf(parent)
	if idx+1 >= len(children) {
		return nil, fmt.Errorf("no sibling after %s: %w", path, ErrNotFound)
	}
	return children[idx+1], nil
}

// PreviousSibling returns the sibling before the node at path.
func PreviousSibling(doc *Document, path position.Path) (Node, error) {
	parent, idx, err := ParentOf(doc, path)
	if err != nil {
		return nil, err
	}
	if idx == 0 {
		return nil, fmt.Errorf("no sibling before %s: %w", path, ErrNotFound)
	}
	return ChildrenOf(parent)[idx-1], nil
}

// TextEntry pairs a Text leaf with its current path.
type TextEntry struct {
	Path position.Path
	Text *Text
}

// Texts returns every Text leaf under the node at root (the whole
// document for the empty path) in document order. The returned slice is
// a snapshot: iterating it twice yields the same sequence.
func Texts(doc *Document, root position.Path) ([]TextEntry, error) {
	start, err := NodeAt(doc, root)
	if err != nil {
		return nil, err
	}
	var out []TextEntry
	var walk func(n Node, p position.Path)
	walk = func(n Node, p position.Path) {
		if t, ok := n.(*Text); ok {
			out = append(out, TextEntry{Path: p.Clone(), Text: t})
			return
		}
		for i, c := range ChildrenOf(n) {
			walk(c, p.Child(i))
		}
	}
	walk(start, root.Clone())
	return out, nil
}

// ResolvePath locates the Text leaf with the given key and returns its
// current path. Returns ErrNotFound once the leaf has been removed.
func ResolvePath(doc *Document, key position.Key) (position.Path, error) {
	var found position.Path
	var walk func(n Node, p position.Path) bool
	walk = func(n Node, p position.Path) bool {
		if t, ok := n.(*Text); ok {
			if t.Key == key {
				found = p.Clone()
				return true
			}
			return false
		}
		for i, c := range ChildrenOf(n) {
			if walk(c, p.Child(i)) {
				return true
			}
		}
		return false
	}
	if !walk(doc, nil) {
		return nil, fmt.Errorf("resolve key %q: %w", key, ErrNotFound)
	}
	return found, nil
}

// ResolvePoint re-resolves a point's cached path from its key and clamps
// nothing: an offset beyond the current content length is an error for
// the caller to handle. Returns ErrNotFound if the key no longer
// resolves, which callers treat as "selection lost".
func ResolvePoint(doc *Document, p position.Point) (position.Point, error) {
	path, err := ResolvePath(doc, p.Key)
	if err != nil {
		return position.Point{}, err
	}
	return position.Point{Key: p.Key, Path: path, Offset: p.Offset}, nil
}

// ResolveRange re-resolves both endpoints of a range.
func ResolveRange(doc *Document, r position.Range) (position.Range, error) {
	anchor, err := ResolvePoint(doc, r.Anchor)
	if err != nil {
		return position.Range{}, err
	}
	focus, err := ResolvePoint(doc, r.Focus)
	if err != nil {
		return position.Range{}, err
	}
	return position.Range{Anchor: anchor, Focus: focus}, nil
}

// IsVoidAt reports whether any element on the path (including the node at
// path itself) is void.
func IsVoidAt(doc *Document, path position.Path) bool {
	var cur Node = doc
	for _, idx := range path {
		children := ChildrenOf(cur)
		if idx < 0 || idx >= len(children) {
			return false
		}
		cur = children[idx]
		if e, ok := cur.(*Element); ok && e.Void {
			return true
		}
	}
	return false
}

// PlainText concatenates the content of every text leaf under the node
// at root in document order.
func PlainText(doc *Document, root position.Path) (string, error) {
	entries, err := Texts(doc, root)
	if err != nil {
		return "", err
	}
	var out string
	for _, e := range entries {
		out += e.Text.Content
	}
	return out, nil
}
