package operation

import (
	"fmt"

	"github.com/dshills/inkstorm/internal/engine/node"
	"github.com/dshills/inkstorm/internal/engine/position"
)

// Apply executes a single operation against (doc, sel) and returns the
// new pair. The input state is never mutated. Only SetSelection touches
// the selection; every structural op carries it through unchanged and
// relies on the issuing command to fix it up.
func Apply(doc *node.Document, sel *position.Range, op Op) (*node.Document, *position.Range, error) {
	switch o := op.(type) {
	case InsertNode:
		out, err := applyInsertNode(doc, o)
		return out, sel, err
	case RemoveNode:
		out, err := applyRemoveNode(doc, o)
		return out, sel, err
	case SplitNode:
		out, err := applySplitNode(doc, o)
		return out, sel, err
	case MergeNode:
		out, err := applyMergeNode(doc, o)
		return out, sel, err
	case MoveNode:
		out, err := applyMoveNode(doc, o)
		return out, sel, err
	case SetNode:
		out, err := applySetNode(doc, o)
		return out, sel, err
	case InsertText:
		out, err := applyInsertText(doc, o)
		return out, sel, err
	case RemoveText:
		out, err := applyRemoveText(doc, o)
		return out, sel, err
	case SetSelection:
		if o.Selection == nil {
			return doc, nil, nil
		}
		next := o.Selection.Clone()
		return doc, &next, nil
	default:
		return nil, nil, fmt.Errorf("unknown operation %T: %w", op, ErrInvalidPath)
	}
}

// ApplyAll executes a batch in emission order against the progressively
// updated state. A failing op aborts and returns the error; callers
// wanting atomicity run ApplyAll on a scratch state and commit only on
// success.
func ApplyAll(doc *node.Document, sel *position.Range, ops []Op) (*node.Document, *position.Range, error) {
	var err error
	for _, op := range ops {
		doc, sel, err = Apply(doc, sel, op)
		if err != nil {
			return nil, nil, fmt.Errorf("apply %s: %w", op, err)
		}
	}
	return doc, sel, nil
}

func applyInsertNode(doc *node.Document, o InsertNode) (*node.Document, error) {
	if len(o.Path) == 0 || o.Node == nil {
		return nil, fmt.Errorf("insert_node%s: %w", o.Path, ErrInvalidPath)
	}
	out, err := node.InsertChild(doc, o.Path, o.Node)
	if err != nil {
		return nil, fmt.Errorf("insert_node%s: %w", o.Path, ErrInvalidPath)
	}
	return out, nil
}

func applyRemoveNode(doc *node.Document, o RemoveNode) (*node.Document, error) {
	out, _, err := node.RemoveChild(doc, o.Path)
	if err != nil {
		return nil, fmt.Errorf("remove_node%s: %w", o.Path, ErrInvalidPath)
	}
	return out, nil
}

func applySplitNode(doc *node.Document, o SplitNode) (*node.Document, error) {
	target, err := node.NodeAt(doc, o.Path)
	if err != nil || len(o.Path) == 0 {
		return nil, fmt.Errorf("split_node%s: %w", o.Path, ErrInvalidPath)
	}

	var left, right node.Node
	switch v := target.(type) {
	case *node.Text:
		if o.Position < 0 || o.Position > v.Length() {
			return nil, fmt.Errorf("split_node%s at %d of %d: %w", o.Path, o.Position, v.Length(), ErrOutOfRange)
		}
		l := v.Clone()
		l.Content = node.UTF16Slice(v.Content, 0, o.Position)
		key := o.NewKey
		if key.IsZero() {
			key = position.NewKey()
		}
		right = &node.Text{Key: key, Content: node.UTF16Slice(v.Content, o.Position, v.Length()), Props: mergeProps(v.Props, o.Props)}
		left = l
	case *node.Element:
		if o.Position < 0 || o.Position > len(v.Children) {
			return nil, fmt.Errorf("split_node%s at child %d of %d: %w", o.Path, o.Position, len(v.Children), ErrOutOfRange)
		}
		l := v.Clone()
		l.Children = l.Children[:o.Position:o.Position]
		r := v.Clone()
		r.Children = r.Children[o.Position:]
		r.Props = mergeProps(v.Props, o.Props)
		left, right = l, r
	default:
		return nil, fmt.Errorf("split_node%s on document root: %w", o.Path, ErrInvalidPath)
	}

	out, err := node.Rewrite(doc, o.Path, func(node.Node) (node.Node, error) { return left, nil })
	if err != nil {
		return nil, fmt.Errorf("split_node%s: %w", o.Path, ErrInvalidPath)
	}
	out, err = node.InsertChild(out, o.Path.Next(), right)
	if err != nil {
		return nil, fmt.Errorf("split_node%s: %w", o.Path, ErrInvalidPath)
	}
	return out, nil
}

func applyMergeNode(doc *node.Document, o MergeNode) (*node.Document, error) {
	if len(o.Path) == 0 || o.Path.Index() == 0 {
		return nil, fmt.Errorf("merge_node%s has no previous sibling: %w", o.Path, ErrInvalidPath)
	}
	cur, err := node.NodeAt(doc, o.Path)
	if err != nil {
		return nil, fmt.Errorf("merge_node%s: %w", o.Path, ErrInvalidPath)
	}
	prev, err := node.NodeAt(doc, o.Path.Previous())
	if err != nil {
		return nil, fmt.Errorf("merge_node%s: %w", o.Path, ErrInvalidPath)
	}

	var merged node.Node
	switch p := prev.(type) {
	case *node.Text:
		c, ok := cur.(*node.Text)
		if !ok {
			return nil, fmt.Errorf("merge_node%s kind mismatch: %w", o.Path, ErrInvalidPath)
		}
		m := p.Clone()
		m.Content = p.Content + c.Content
		merged = m
	case *node.Element:
		c, ok := cur.(*node.Element)
		if !ok {
			return nil, fmt.Errorf("merge_node%s kind mismatch: %w", o.Path, ErrInvalidPath)
		}
		m := p.Clone()
		m.Children = append(m.Children, c.Children...)
		merged = m
	default:
		return nil, fmt.Errorf("merge_node%s into document root: %w", o.Path, ErrInvalidPath)
	}

	out, err := node.Rewrite(doc, o.Path.Previous(), func(node.Node) (node.Node, error) { return merged, nil })
	if err != nil {
		return nil, fmt.Errorf("merge_node%s: %w", o.Path, ErrInvalidPath)
	}
	out, _, err = node.RemoveChild(out, o.Path)
	if err != nil {
		return nil, fmt.Errorf("merge_node%s: %w", o.Path, ErrInvalidPath)
	}
	return out, nil
}

func applyMoveNode(doc *node.Document, o MoveNode) (*node.Document, error) {
	if len(o.NewPath) == 0 || o.Path.Equal(o.NewPath) || o.Path.IsAncestorOf(o.NewPath) {
		return nil, fmt.Errorf("move_node%s->%s: %w", o.Path, o.NewPath, ErrInvalidPath)
	}
	out, moved, err := node.RemoveChild(doc, o.Path)
	if err != nil {
		return nil, fmt.Errorf("move_node%s: %w", o.Path, ErrInvalidPath)
	}
	// NewPath is, by convention, already expressed against the
	// post-removal tree.
	out, err = node.InsertChild(out, o.NewPath, moved)
	if err != nil {
		return nil, fmt.Errorf("move_node%s->%s: %w", o.Path, o.NewPath, ErrInvalidPath)
	}
	return out, nil
}

func applySetNode(doc *node.Document, o SetNode) (*node.Document, error) {
	if len(o.Path) == 0 {
		return nil, fmt.Errorf("set_node on document root: %w", ErrInvalidPath)
	}
	out, err := node.Rewrite(doc, o.Path, func(n node.Node) (node.Node, error) {
		switch v := n.(type) {
		case *node.Text:
			c := v.Clone()
			c.Props = mergeProps(v.Props, o.Props)
			return c, nil
		case *node.Element:
			c := v.Clone()
			c.Props = mergeProps(v.Props, o.Props)
			return c, nil
		default:
			return nil, node.ErrNotFound
		}
	})
	if err != nil {
		return nil, fmt.Errorf("set_node%s: %w", o.Path, ErrInvalidPath)
	}
	return out, nil
}

func applyInsertText(doc *node.Document, o InsertText) (*node.Document, error) {
	t, err := node.TextAt(doc, o.Path)
	if err != nil {
		return nil, fmt.Errorf("insert_text%s: %w", o.Path, ErrInvalidPath)
	}
	if o.Offset < 0 || o.Offset > t.Length() {
		return nil, fmt.Errorf("insert_text%s at %d of %d: %w", o.Path, o.Offset, t.Length(), ErrOutOfRange)
	}
	out, err := node.Rewrite(doc, o.Path, func(n node.Node) (node.Node, error) {
		c := n.(*node.Text).Clone()
		c.Content = node.UTF16Splice(c.Content, o.Offset, 0, o.Text)
		return c, nil
	})
	if err != nil {
		return nil, fmt.Errorf("insert_text%s: %w", o.Path, ErrInvalidPath)
	}
	return out, nil
}

func applyRemoveText(doc *node.Document, o RemoveText) (*node.Document, error) {
	t, err := node.TextAt(doc, o.Path)
	if err != nil {
		return nil, fmt.Errorf("remove_text%s: %w", o.Path, ErrInvalidPath)
	}
	length := node.UTF16Len(o.Text)
	if o.Offset < 0 || o.Offset+length > t.Length() {
		return nil, fmt.Errorf("remove_text%s at %d+%d of %d: %w", o.Path, o.Offset, length, t.Length(), ErrOutOfRange)
	}
	if got := node.UTF16Slice(t.Content, o.Offset, o.Offset+length); got != o.Text {
		return nil, fmt.Errorf("remove_text%s expected %q found %q: %w", o.Path, o.Text, got, ErrOutOfRange)
	}
	out, err := node.Rewrite(doc, o.Path, func(n node.Node) (node.Node, error) {
		c := n.(*node.Text).Clone()
		c.Content = node.UTF16Splice(c.Content, o.Offset, length, "")
		return c, nil
	})
	if err != nil {
		return nil, fmt.Errorf("remove_text%s: %w", o.Path, ErrInvalidPath)
	}
	return out, nil
}

// mergeProps shallow-merges patch onto base, returning a new map. A nil
// patch value deletes the property. The inputs are never mutated.
func mergeProps(base, patch map[string]any) map[string]any {
	if len(patch) == 0 {
		if len(base) == 0 {
			return nil
		}
		out := make(map[string]any, len(base))
		for k, v := range base {
			out[k] = v
		}
		return out
	}
	out := make(map[string]any, len(base)+len(patch))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range patch {
		if v == nil {
			delete(out, k)
			continue
		}
		out[k] = v
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
