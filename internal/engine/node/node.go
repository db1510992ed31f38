package node

import (
	"github.com/dshills/inkstorm/internal/engine/position"
)

// Node is the closed variant of document tree nodes. The only
// implementations are *Document, *Element, and *Text; a type switch over
// those three is exhaustive.
type Node interface {
	isNode()
}

// Text is a leaf node holding a string and a bag of formatting
// properties (marks such as "bold" or decoration data). Text nodes are
// the only nodes addressable by point offsets, and every Text carries a
// globally unique Key.
type Text struct {
	Key     position.Key
	Content string
	Props   map[string]any
}

func (*Text) isNode() {}

// NewText returns a Text leaf with a fresh key.
func NewText(content string, props map[string]any) *Text {
	return &Text{Key: position.NewKey(), Content: content, Props: props}
}

// Length returns the content length in UTF-16 code units.
func (t *Text) Length() int {
	return UTF16Len(t.Content)
}

// Clone returns a shallow copy sharing the props map. The copy keeps the
// same key: a clone is the same logical node, not a new one.
func (t *Text) Clone() *Text {
	out := *t
	return &out
}

// SameProps returns true if both texts carry equal formatting.
func (t *Text) SameProps(other *Text) bool {
	return propsEqual(t.Props, other.Props)
}

// Element is an interior node with a type tag, a property bag, and
// children. Void elements never contain editable text: they hold exactly
// one empty Text leaf so selection endpoints can still resolve inside
// them. Inline elements do not force block-level layout.
type Element struct {
	Type     string
	Props    map[string]any
	Void     bool
	Inline   bool
	Children []Node
}

func (*Element) isNode() {}

// NewElement returns an Element of the given type with the given children.
func NewElement(typ string, children ...Node) *Element {
	return &Element{Type: typ, Children: children}
}

// NewVoid returns a void Element holding its mandatory empty text leaf.
func NewVoid(typ string, props map[string]any) *Element {
	return &Element{Type: typ, Props: props, Void: true, Children: []Node{NewText("", nil)}}
}

// NewInline returns an inline Element with the given children.
func NewInline(typ string, children ...Node) *Element {
	return &Element{Type: typ, Inline: true, Children: children}
}

// Clone returns a copy of the element with a copied children slice. The
// children themselves are shared, which is what structural sharing wants.
func (e *Element) Clone() *Element {
	out := *e
	out.Children = make([]Node, len(e.Children))
	copy(out.Children, e.Children)
	return &out
}

// Document is the immutable root. Structurally it is an element with no
// type or properties; it is never removable and never void or inline.
type Document struct {
	Children []Node
}

func (*Document) isNode() {}

// NewDocument returns a document with the given top-level children.
func NewDocument(children ...Node) *Document {
	return &Document{Children: children}
}

// Clone returns a copy of the document with a copied children slice.
func (d *Document) Clone() *Document {
	out := &Document{Children: make([]Node, len(d.Children))}
	copy(out.Children, d.Children)
	return out
}

// ChildrenOf returns the child slice of an interior node, or nil for a
// Text leaf.
func ChildrenOf(n Node) []Node {
	switch v := n.(type) {
	case *Document:
		return v.Children
	case *Element:
		return v.Children
	default:
		return nil
	}
}

// propsEqual compares two property bags by shallow equality. Values are
// compared with ==; non-comparable values never compare equal, which is
// the conservative answer for "can these texts merge".
func propsEqual(a, b map[string]any) bool {
	if len(a) != len(b) {
		return false
	}
	for k, av := range a {
		bv, ok := b[k]
		if !ok || !comparableEqual(av, bv) {
			return false
		}
	}
	return true
}

func comparableEqual(a, b any) (eq bool) {
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return a == b
}
