package codec

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/inkstorm/internal/engine/node"
)

// ErrBadDocument indicates JSON input that does not describe a document
// tree.
var ErrBadDocument = errors.New("malformed document JSON")

// EncodeJSON serializes a document tree.
func EncodeJSON(doc *node.Document) ([]byte, error) {
	out := []byte(`{"children":[]}`)
	for _, c := range doc.Children {
		child, err := encodeNode(c)
		if err != nil {
			return nil, err
		}
		out, err = sjson.SetRawBytes(out, "children.-1", child)
		if err != nil {
			return nil, fmt.Errorf("encode document: %w", err)
		}
	}
	return out, nil
}

func encodeNode(n node.Node) ([]byte, error) {
	switch v := n.(type) {
	case *node.Text:
		out := []byte(`{"kind":"text"}`)
		out, err := sjson.SetBytes(out, "text", v.Content)
		if err != nil {
			return nil, err
		}
		return setProps(out, v.Props)
	case *node.Element:
		out := []byte(`{"kind":"element","children":[]}`)
		out, err := sjson.SetBytes(out, "type", v.Type)
		if err != nil {
			return nil, err
		}
		if v.Void {
			if out, err = sjson.SetBytes(out, "void", true); err != nil {
				return nil, err
			}
		}
		if v.Inline {
			if out, err = sjson.SetBytes(out, "inline", true); err != nil {
				return nil, err
			}
		}
		if out, err = setProps(out, v.Props); err != nil {
			return nil, err
		}
		for _, c := range v.Children {
			child, err := encodeNode(c)
			if err != nil {
				return nil, err
			}
			if out, err = sjson.SetRawBytes(out, "children.-1", child); err != nil {
				return nil, err
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("encode %T: %w", n, ErrBadDocument)
	}
}

func setProps(out []byte, props map[string]any) ([]byte, error) {
	var err error
	for k, v := range props {
		if out, err = sjson.SetBytes(out, "props."+k, v); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// DecodeJSON parses a document tree. Unknown fields are ignored; text
// leaves receive fresh keys.
func DecodeJSON(data []byte) (*node.Document, error) {
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("decode document: %w", ErrBadDocument)
	}
	var children []node.Node
	for _, c := range root.Get("children").Array() {
		n, err := decodeNode(c)
		if err != nil {
			return nil, err
		}
		children = append(children, n)
	}
	return node.NewDocument(children...), nil
}

func decodeNode(r gjson.Result) (node.Node, error) {
	switch r.Get("kind").String() {
	case "text":
		return node.NewText(r.Get("text").String(), decodeProps(r.Get("props"))), nil
	case "element":
		el := &node.Element{
			Type:   r.Get("type").String(),
			Void:   r.Get("void").Bool(),
			Inline: r.Get("inline").Bool(),
			Props:  decodeProps(r.Get("props")),
		}
		for _, c := range r.Get("children").Array() {
			child, err := decodeNode(c)
			if err != nil {
				return nil, err
			}
			el.Children = append(el.Children, child)
		}
		return el, nil
	default:
		return nil, fmt.Errorf("decode node kind %q: %w", r.Get("kind").String(), ErrBadDocument)
	}
}

func decodeProps(r gjson.Result) map[string]any {
	if !r.IsObject() {
		return nil
	}
	out := make(map[string]any)
	r.ForEach(func(k, v gjson.Result) bool {
		out[k.String()] = v.Value()
		return true
	})
	if len(out) == 0 {
		return nil
	}
	return out
}
