package domview

import (
	"errors"
	"fmt"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/dshills/inkstorm/internal/engine/node"
	"github.com/dshills/inkstorm/internal/engine/position"
	"github.com/dshills/inkstorm/internal/host"
)

// Errors returned by the view.
var (
	// ErrNoContainer indicates no container renders the requested leaf.
	ErrNoContainer = errors.New("no container for key")

	// ErrNoHostSelection indicates the host has no caret.
	ErrNoHostSelection = errors.New("host has no selection")
)

// View renders a document into an HTML tree and answers host queries
// against it.
type View struct {
	doc   *node.Document
	root  *html.Node
	spans map[position.Key]*html.Node

	caretKey    position.Key
	caretOffset int
	hasCaret    bool
}

// New returns a view rendering doc.
func New(doc *node.Document) *View {
	v := &View{}
	v.Render(doc)
	return v
}

// Render rebuilds the HTML tree from doc. Containers handed out before
// a render refer to the old tree and report Attached() == false.
func (v *View) Render(doc *node.Document) {
	v.doc = doc
	v.spans = make(map[position.Key]*html.Node)
	v.root = &html.Node{Type: html.ElementNode, DataAtom: atom.Div, Data: "div"}
	v.root.Attr = []html.Attribute{{Key: "data-document", Val: "1"}}
	for _, c := range doc.Children {
		v.root.AppendChild(v.renderNode(c))
	}
}

// Root exposes the rendered tree, mainly for serialization in tests and
// the CLI.
func (v *View) Root() *html.Node { return v.root }

func (v *View) renderNode(n node.Node) *html.Node {
	switch x := n.(type) {
	case *node.Text:
		span := &html.Node{Type: html.ElementNode, DataAtom: atom.Span, Data: "span"}
		span.Attr = []html.Attribute{{Key: "data-key", Val: string(x.Key)}}
		text := x.Content
		if text == "" {
			text = host.FillerString
			span.Attr = append(span.Attr, html.Attribute{Key: "data-filler", Val: "1"})
		}
		span.AppendChild(&html.Node{Type: html.TextNode, Data: text})
		v.spans[x.Key] = span
		return span
	case *node.Element:
		el := &html.Node{Type: html.ElementNode, DataAtom: atom.Div, Data: "div"}
		if x.Inline {
			el.DataAtom = atom.Span
			el.Data = "span"
			el.Attr = append(el.Attr, html.Attribute{Key: "data-inline", Val: "1"})
		}
		el.Attr = append(el.Attr, html.Attribute{Key: "data-type", Val: x.Type})
		if x.Void {
			el.Attr = append(el.Attr, html.Attribute{Key: "contenteditable", Val: "false"})
		}
		for _, c := range x.Children {
			el.AppendChild(v.renderNode(c))
		}
		return el
	default:
		return &html.Node{Type: html.CommentNode, Data: "unrenderable"}
	}
}

// LocateContainer implements host.View.
func (v *View) LocateContainer(key position.Key) (host.Container, error) {
	span, ok := v.spans[key]
	if !ok {
		return nil, fmt.Errorf("locate %q: %w", key, ErrNoContainer)
	}
	return &container{view: v, key: key, span: span}, nil
}

// LocatePoint implements host.View: it maps a host caret inside a
// container to model coordinates by discounting filler characters
// before the offset.
func (v *View) LocatePoint(c host.Container, offset int) (position.Point, error) {
	path, err := node.ResolvePath(v.doc, c.Key())
	if err != nil {
		return position.Point{}, err
	}
	raw := rawText(c.Runs())
	if offset > node.UTF16Len(raw) {
		offset = node.UTF16Len(raw)
	}
	if offset < 0 {
		offset = 0
	}
	prefix := node.UTF16Slice(raw, 0, offset)
	return position.Point{
		Key:    c.Key(),
		Path:   path,
		Offset: node.UTF16Len(host.StripFiller(prefix)),
	}, nil
}

// IsVoid implements host.View.
func (v *View) IsVoid(n node.Node) bool {
	e, ok := n.(*node.Element)
	return ok && e.Void
}

// HostSelection implements host.View.
func (v *View) HostSelection() (host.Selection, error) {
	if !v.hasCaret {
		return host.Selection{}, ErrNoHostSelection
	}
	c, err := v.LocateContainer(v.caretKey)
	if err != nil {
		return host.Selection{}, err
	}
	return host.Selection{Container: c, Offset: v.caretOffset}, nil
}

// SetCaret places the host caret, as a click or composition would.
func (v *View) SetCaret(key position.Key, offset int) error {
	if _, ok := v.spans[key]; !ok {
		return fmt.Errorf("set caret at %q: %w", key, ErrNoContainer)
	}
	v.caretKey = key
	v.caretOffset = offset
	v.hasCaret = true
	return nil
}

// Type simulates the host inserting text at the caret, the way an IME
// or autocorrect writes straight into the editable surface.
func (v *View) Type(text string) error {
	if !v.hasCaret {
		return ErrNoHostSelection
	}
	span, ok := v.spans[v.caretKey]
	if !ok {
		return fmt.Errorf("type at %q: %w", v.caretKey, ErrNoContainer)
	}
	raw := spanText(span)
	at := v.caretOffset
	if at > node.UTF16Len(raw) {
		at = node.UTF16Len(raw)
	}
	setSpanText(span, node.UTF16Splice(raw, at, 0, text))
	v.caretOffset = at + node.UTF16Len(text)
	return nil
}

// ReplaceRaw overwrites a container's raw text wholesale, simulating a
// host-side rewrite such as spell correction.
func (v *View) ReplaceRaw(key position.Key, text string, caret int) error {
	span, ok := v.spans[key]
	if !ok {
		return fmt.Errorf("replace %q: %w", key, ErrNoContainer)
	}
	setSpanText(span, text)
	v.caretKey = key
	v.caretOffset = caret
	v.hasCaret = true
	return nil
}

// Detach removes a container from the live tree. Used to exercise the
// bridge's invariant check.
func (v *View) Detach(key position.Key) {
	span, ok := v.spans[key]
	if !ok {
		return
	}
	if span.Parent != nil {
		span.Parent.RemoveChild(span)
	}
	delete(v.spans, key)
}

// container implements host.Container over one rendered span.
type container struct {
	view *View
	key  position.Key
	span *html.Node
}

func (c *container) Key() position.Key { return c.key }

func (c *container) Runs() []host.Run {
	var runs []host.Run
	filler := hasAttr(c.span, "data-filler")
	for t := c.span.FirstChild; t != nil; t = t.NextSibling {
		if t.Type != html.TextNode {
			continue
		}
		runs = append(runs, host.Run{
			Text:   t.Data,
			Filler: filler && host.StripFiller(t.Data) == "",
		})
	}
	return runs
}

func (c *container) SetRuns(runs []host.Run) error {
	for c.span.FirstChild != nil {
		c.span.RemoveChild(c.span.FirstChild)
	}
	filler := false
	for _, r := range runs {
		c.span.AppendChild(&html.Node{Type: html.TextNode, Data: r.Text})
		filler = filler || r.Filler
	}
	setAttr(c.span, "data-filler", filler)
	return nil
}

func (c *container) Attached() bool {
	for n := c.span; n != nil; n = n.Parent {
		if n == c.view.root {
			return true
		}
	}
	return false
}

func rawText(runs []host.Run) string {
	var out string
	for _, r := range runs {
		out += r.Text
	}
	return out
}

func spanText(span *html.Node) string {
	var out string
	for t := span.FirstChild; t != nil; t = t.NextSibling {
		if t.Type == html.TextNode {
			out += t.Data
		}
	}
	return out
}

func setSpanText(span *html.Node, text string) {
	for span.FirstChild != nil {
		span.RemoveChild(span.FirstChild)
	}
	span.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}

func setAttr(n *html.Node, key string, on bool) {
	for i, a := range n.Attr {
		if a.Key == key {
			if !on {
				n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			}
			return
		}
	}
	if on {
		n.Attr = append(n.Attr, html.Attribute{Key: key, Val: "1"})
	}
}
