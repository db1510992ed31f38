package node

import (
	"fmt"

	"github.com/dshills/inkstorm/internal/engine/position"
)

// Rewrite returns a new document in which the node at path has been
// replaced by fn(node). Only the spine from the root to the edited node
// is copied; every sibling subtree is shared with the input document.
// fn returning nil removes the node from its parent.
//
// Rewrite is the only mutation primitive in the package and is intended
// for the operation applier; it performs no semantic validation beyond
// path resolution.
func Rewrite(doc *Document, path position.Path, fn func(Node) (Node, error)) (*Document, error) {
	if len(path) == 0 {
		n, err := fn(doc)
		if err != nil {
			return nil, err
		}
		d, ok := n.(*Document)
		if !ok {
			return nil, fmt.Errorf("rewrite of root must yield a document: %w", ErrNotFound)
		}
		return d, nil
	}

	var rewrite func(n Node, depth int) (Node, error)
	rewrite = func(n Node, depth int) (Node, error) {
		idx := path[depth]
		children := ChildrenOf(n)
		if idx < 0 || idx >= len(children) {
			return nil, fmt.Errorf("rewrite %s at depth %d: %w", path, depth, ErrNotFound)
		}

		var replaced Node
		var err error
		if depth == len(path)-1 {
			replaced, err = fn(children[idx])
		} else {
			replaced, err = rewrite(children[idx], depth+1)
		}
		if err != nil {
			return nil, err
		}

		switch v := n.(type) {
		case *Document:
			out := v.Clone()
			out.Children = spliceChild(out.Children, idx, replaced)
			return out, nil
		case *Element:
			out := v.Clone()
			out.Children = spliceChild(out.Children, idx, replaced)
			return out, nil
		default:
			return nil, fmt.Errorf("rewrite through a text leaf at %s: %w", path, ErrNotFound)
		}
	}

	n, err := rewrite(doc, 0)
	if err != nil {
		return nil, err
	}
	return n.(*Document), nil
}

// InsertChild returns a new document with child inserted at path (the
// path names the slot the new node will occupy). The insertion index may
// equal the current child count, meaning "append".
func InsertChild(doc *Document, path position.Path, child Node) (*Document, error) {
	if len(path) == 0 {
		return nil, fmt.Errorf("cannot insert at the root slot: %w", ErrNotFound)
	}
	idx := path.Index()
	return Rewrite(doc, path.Parent(), func(parent Node) (Node, error) {
		if parentIsText(parent) {
			return nil, fmt.Errorf("insert under text leaf at %s: %w", path, ErrNotText)
		}
		children := ChildrenOf(parent)
		if idx < 0 || idx > len(children) {
			return nil, fmt.Errorf("insert index %d of %d at %s: %w", idx, len(children), path, ErrNotFound)
		}
		return withChildren(parent, insertAt(children, idx, child))
	})
}

// RemoveChild returns a new document with the node at path removed,
// along with the removed node.
func RemoveChild(doc *Document, path position.Path) (*Document, Node, error) {
	if len(path) == 0 {
		return nil, nil, fmt.Errorf("cannot remove the document root: %w", ErrNotFound)
	}
	removed, err := NodeAt(doc, path)
	if err != nil {
		return nil, nil, err
	}
	idx := path.Index()
	out, err := Rewrite(doc, path.Parent(), func(parent Node) (Node, error) {
		children := ChildrenOf(parent)
		if idx < 0 || idx >= len(children) {
			return nil, fmt.Errorf("remove index %d of %d at %s: %w", idx, len(children), path, ErrNotFound)
		}
		return withChildren(parent, removeAt(children, idx))
	})
	if err != nil {
		return nil, nil, err
	}
	return out, removed, nil
}

func parentIsText(n Node) bool {
	_, ok := n.(*Text)
	return ok
}

// withChildren returns a copy of an interior node with a new child slice.
func withChildren(n Node, children []Node) (Node, error) {
	switch v := n.(type) {
	case *Document:
		out := *v
		out.Children = children
		return &out, nil
	case *Element:
		out := *v
		out.Children = children
		return &out, nil
	default:
		return nil, ErrNotText
	}
}

func spliceChild(children []Node, idx int, replacement Node) []Node {
	if replacement == nil {
		return removeAt(children, idx)
	}
	out := make([]Node, len(children))
	copy(out, children)
	out[idx] = replacement
	return out
}

func insertAt(children []Node, idx int, child Node) []Node {
	out := make([]Node, 0, len(children)+1)
	out = append(out, children[:idx]...)
	out = append(out, child)
	out = append(out, children[idx:]...)
	return out
}

func removeAt(children []Node, idx int) []Node {
	out := make([]Node, 0, len(children)-1)
	out = append(out, children[:idx]...)
	out = append(out, children[idx+1:]...)
	return out
}
