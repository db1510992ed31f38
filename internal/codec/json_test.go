package codec

import (
	"errors"
	"testing"

	"github.com/tidwall/gjson"

	"github.com/dshills/inkstorm/internal/engine/node"
)

func TestEncodeJSONShape(t *testing.T) {
	h := node.NewElement("heading", node.NewText("Title", nil))
	h.Props = map[string]any{"level": 1}
	doc := node.NewDocument(
		h,
		node.NewElement("paragraph",
			node.NewText("plain ", nil),
			node.NewText("bold", map[string]any{"bold": true}),
			node.NewInline("link", node.NewText("here", nil)),
		),
		node.NewVoid("divider", nil),
	)

	data, err := EncodeJSON(doc)
	if err != nil {
		t.Fatalf("EncodeJSON: %v", err)
	}
	root := gjson.ParseBytes(data)

	if n := len(root.Get("children").Array()); n != 3 {
		t.Fatalf("got %d blocks, want 3", n)
	}
	if got := root.Get("children.0.type").String(); got != "heading" {
		t.Errorf("block 0 type = %q, want heading", got)
	}
	if got := root.Get("children.0.props.level").Int(); got != 1 {
		t.Errorf("heading level = %d, want 1", got)
	}
	if got := root.Get("children.1.children.1.props.bold").Bool(); !got {
		t.Error("bold prop lost")
	}
	if got := root.Get("children.1.children.2.inline").Bool(); !got {
		t.Error("inline flag lost")
	}
	if got := root.Get("children.2.void").Bool(); !got {
		t.Error("void flag lost")
	}
	// Keys are runtime identities and must not leak into the wire form.
	if root.Get("children.0.children.0.key").Exists() {
		t.Error("leaf key serialized")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	h := node.NewElement("heading", node.NewText("T", nil))
	h.Props = map[string]any{"level": 2}
	doc := node.NewDocument(
		h,
		node.NewElement("paragraph",
			node.NewText("a", nil),
			node.NewInline("link", node.NewText("b", map[string]any{"code": true})),
			node.NewText("c", nil),
		),
		node.NewVoid("divider", nil),
	)

	data, err := EncodeJSON(doc)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	back, err := DecodeJSON(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	origText, _ := node.PlainText(doc, nil)
	backText, _ := node.PlainText(back, nil)
	if origText != backText {
		t.Errorf("text = %q, want %q", backText, origText)
	}

	para := back.Children[1].(*node.Element)
	link := para.Children[1].(*node.Element)
	if !link.Inline || link.Type != "link" {
		t.Errorf("inline element = %+v, want link inline", link)
	}
	leaf := link.Children[0].(*node.Text)
	if leaf.Props["code"] != true {
		t.Errorf("leaf props = %v, want code", leaf.Props)
	}
	if leaf.Key.IsZero() {
		t.Error("decoded leaf must receive a fresh key")
	}
	div := back.Children[2].(*node.Element)
	if !div.Void {
		t.Error("void flag lost in round trip")
	}
}

func TestDecodeJSONRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"not an object", `[1,2,3]`},
		{"unknown kind", `{"children":[{"kind":"mystery"}]}`},
		{"missing kind", `{"children":[{"text":"x"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeJSON([]byte(tt.in)); !errors.Is(err, ErrBadDocument) {
				t.Errorf("err = %v, want ErrBadDocument", err)
			}
		})
	}
}

func TestDecodeJSONEmptyDocument(t *testing.T) {
	doc, err := DecodeJSON([]byte(`{"children":[]}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(doc.Children) != 0 {
		t.Errorf("got %d children, want 0", len(doc.Children))
	}
}
