package normalize

import (
	"errors"
	"fmt"

	"github.com/dshills/inkstorm/internal/engine/command"
	"github.com/dshills/inkstorm/internal/engine/node"
	"github.com/dshills/inkstorm/internal/engine/operation"
	"github.com/dshills/inkstorm/internal/engine/position"
	"github.com/dshills/inkstorm/internal/schema"
)

// ErrNoFixpoint indicates normalization kept finding violations past its
// iteration cap, which means a rule's fix reintroduces what another rule
// removes.
var ErrNoFixpoint = errors.New("normalization did not reach a fixpoint")

// maxIterations bounds the fixpoint loop. Each iteration fixes exactly
// one violation, so the cap scales with document size.
const maxIterations = 10000

// Pass normalizes the builder's scratch document, emitting one fix
// operation per violation until none remain, then applies schema rule
// repairs the same way.
func Pass(b *command.Builder, rules []schema.Rule) error {
	// Schema repairs may reintroduce structural violations (removing a
	// block's only child, say), so the structural fixpoint reruns after
	// every repair.
	for i := 0; i < maxIterations; i++ {
		if err := structuralFixpoint(b); err != nil {
			return err
		}
		fixed, err := fixFirstSchema(b, rules)
		if err != nil {
			return err
		}
		if !fixed {
			return nil
		}
	}
	return ErrNoFixpoint
}

func structuralFixpoint(b *command.Builder) error {
	for i := 0; i < maxIterations; i++ {
		fixed, err := fixFirstStructural(b)
		if err != nil {
			return err
		}
		if !fixed {
			return nil
		}
	}
	return ErrNoFixpoint
}

// fixFirstStructural finds the first structural violation in document
// order and emits its fix. Returns true if a fix was emitted.
func fixFirstStructural(b *command.Builder) (bool, error) {
	var fix func() error
	var walk func(n node.Node, p position.Path) bool

	walk = func(n node.Node, p position.Path) bool {
		el, isElement := n.(*node.Element)

		if isElement && el.Void {
			if f := voidFix(b, el, p); f != nil {
				fix = f
				return true
			}
			return false // void subtrees have no further rules
		}

		children := node.ChildrenOf(n)
		if isElement && len(children) == 0 {
			fix = func() error {
				return b.Emit(operation.InsertNode{Path: p.Child(0), Node: node.NewText("", nil)})
			}
			return true
		}

		if isElement || isDocument(n) {
			if f := childListFix(b, n, p); f != nil {
				fix = f
				return true
			}
		}

		for i, c := range children {
			if walk(c, p.Child(i)) {
				return true
			}
		}
		return false
	}

	if !walk(b.Document(), nil) {
		return false, nil
	}
	return true, fix()
}

// voidFix corrects a void element toward exactly one empty text leaf.
func voidFix(b *command.Builder, el *node.Element, p position.Path) func() error {
	if len(el.Children) == 0 {
		return func() error {
			return b.Emit(operation.InsertNode{Path: p.Child(0), Node: node.NewText("", nil)})
		}
	}
	if len(el.Children) > 1 {
		last := p.Child(len(el.Children) - 1)
		return func() error { return removeNodeAt(b, last) }
	}
	t, ok := el.Children[0].(*node.Text)
	if !ok {
		child := p.Child(0)
		return func() error { return removeNodeAt(b, child) }
	}
	if t.Content != "" {
		child := p.Child(0)
		content := t.Content
		return func() error {
			return b.Emit(operation.RemoveText{Path: child, Offset: 0, Text: content})
		}
	}
	return nil
}

// childListFix checks sibling-level invariants: adjacent mergeable
// texts, and inline elements missing a text sibling beside them.
func childListFix(b *command.Builder, parent node.Node, p position.Path) func() error {
	_, parentIsElement := parent.(*node.Element)
	children := node.ChildrenOf(parent)

	for i, c := range children {
		if t, ok := c.(*node.Text); ok && i+1 < len(children) {
			if next, ok := children[i+1].(*node.Text); ok && t.SameProps(next) {
				left, right := t, next
				mergePath := p.Child(i + 1)
				return func() error { return mergeTexts(b, mergePath, left, right) }
			}
		}

		el, ok := c.(*node.Element)
		if !ok || !el.Inline || !parentIsElement {
			continue
		}
		// An inline needs a text sibling on both sides.
		if i == 0 {
			slot := p.Child(0)
			return func() error {
				return b.Emit(operation.InsertNode{Path: slot, Node: node.NewText("", nil)})
			}
		}
		if _, ok := children[i-1].(*node.Text); !ok {
			slot := p.Child(i)
			return func() error {
				return b.Emit(operation.InsertNode{Path: slot, Node: node.NewText("", nil)})
			}
		}
		if i == len(children)-1 {
			slot := p.Child(i + 1)
			return func() error {
				return b.Emit(operation.InsertNode{Path: slot, Node: node.NewText("", nil)})
			}
		}
	}
	return nil
}

// mergeTexts folds the right text into the left one and remaps any
// selection endpoint that lived in the discarded leaf.
func mergeTexts(b *command.Builder, rightPath position.Path, left, right *node.Text) error {
	leftLen := left.Length()
	err := b.Emit(operation.MergeNode{Path: rightPath, Position: leftLen, DiscardedKey: right.Key})
	if err != nil {
		return err
	}

	sel := b.Selection()
	if sel == nil {
		return nil
	}
	remap := func(pt position.Point) (position.Point, bool) {
		if pt.Key != right.Key {
			return pt, false
		}
		path, err := node.ResolvePath(b.Document(), left.Key)
		if err != nil {
			return pt, false
		}
		return position.Point{Key: left.Key, Path: path, Offset: leftLen + pt.Offset}, true
	}
	anchor, movedA := remap(sel.Anchor)
	focus, movedF := remap(sel.Focus)
	if !movedA && !movedF {
		return nil
	}
	next := position.Range{Anchor: anchor, Focus: focus}
	return b.SetSelection(&next)
}

// fixFirstSchema runs the pluggable rules over every element and applies
// the first requested repair.
func fixFirstSchema(b *command.Builder, rules []schema.Rule) (bool, error) {
	if len(rules) == 0 {
		return false, nil
	}
	var fix func() error
	var walk func(n node.Node, p position.Path) bool
	walk = func(n node.Node, p position.Path) bool {
		if _, ok := n.(*node.Element); ok {
			for _, rule := range rules {
				res := rule.Validate(n)
				if res.OK {
					continue
				}
				switch res.Repair {
				case schema.RepairRemove:
					path := p.Clone()
					fix = func() error { return removeNodeAt(b, path) }
					return true
				case schema.RepairSetProps:
					path := p.Clone()
					props := res.Props
					prev := prevProps(n, props)
					fix = func() error {
						return b.Emit(operation.SetNode{Path: path, Props: props, PrevProps: prev})
					}
					return true
				default:
					// Violation without a repair: surfaced as an error so
					// it is not silently ignored.
					fix = func() error {
						return fmt.Errorf("schema rule rejected node at %s with no repair", p)
					}
					return true
				}
			}
		}
		for i, c := range node.ChildrenOf(n) {
			if walk(c, p.Child(i)) {
				return true
			}
		}
		return false
	}
	if !walk(b.Document(), nil) {
		return false, nil
	}
	return true, fix()
}

// prevProps captures the prior values of every property a patch touches.
func prevProps(n node.Node, patch map[string]any) map[string]any {
	var base map[string]any
	switch v := n.(type) {
	case *node.Element:
		base = v.Props
	case *node.Text:
		base = v.Props
	}
	out := make(map[string]any, len(patch))
	for k := range patch {
		if v, ok := base[k]; ok {
			out[k] = v
		} else {
			out[k] = nil
		}
	}
	return out
}

func removeNodeAt(b *command.Builder, path position.Path) error {
	n, err := node.NodeAt(b.Document(), path)
	if err != nil {
		return err
	}
	return b.Emit(operation.RemoveNode{Path: path.Clone(), Node: n})
}

func isDocument(n node.Node) bool {
	_, ok := n.(*node.Document)
	return ok
}
