package codec

import (
	"fmt"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/dshills/inkstorm/internal/engine/node"
)

// ImportMarkdown parses markdown into a document tree. Headings and
// paragraphs become blocks; emphasis becomes text formatting props;
// links become inline elements.
func ImportMarkdown(r io.Reader) (*node.Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read markdown: %w", err)
	}

	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(src))

	var blocks []node.Node
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		switch v := n.(type) {
		case *ast.Heading:
			el := node.NewElement("heading", inlineNodes(v, src, nil)...)
			el.Props = map[string]any{"level": v.Level}
			blocks = append(blocks, el)
		case *ast.Paragraph, *ast.TextBlock:
			blocks = append(blocks, node.NewElement("paragraph", inlineNodes(n, src, nil)...))
		case *ast.ThematicBreak:
			blocks = append(blocks, node.NewVoid("divider", nil))
		default:
			// Lists, quotes, and code blocks flatten to paragraphs; the
			// engine's schema does not model them yet.
			children := inlineNodes(n, src, nil)
			if len(children) > 0 {
				blocks = append(blocks, node.NewElement("paragraph", children...))
			}
		}
	}
	if len(blocks) == 0 {
		blocks = []node.Node{node.NewElement("paragraph", node.NewText("", nil))}
	}
	return node.NewDocument(blocks...), nil
}

// inlineNodes converts a block's inline children into text leaves and
// inline elements, carrying emphasis down as formatting props.
func inlineNodes(block ast.Node, src []byte, props map[string]any) []node.Node {
	var out []node.Node
	for c := block.FirstChild(); c != nil; c = c.NextSibling() {
		switch v := c.(type) {
		case *ast.Text:
			content := string(v.Value(src))
			if v.SoftLineBreak() || v.HardLineBreak() {
				content += " "
			}
			out = append(out, node.NewText(content, cloneProps(props)))
		case *ast.Emphasis:
			p := cloneProps(props)
			if p == nil {
				p = map[string]any{}
			}
			if v.Level >= 2 {
				p["bold"] = true
			} else {
				p["italic"] = true
			}
			out = append(out, inlineNodes(v, src, p)...)
		case *ast.CodeSpan:
			p := cloneProps(props)
			if p == nil {
				p = map[string]any{}
			}
			p["code"] = true
			out = append(out, node.NewText(string(v.Text(src)), p))
		case *ast.Link:
			link := node.NewInline("link", inlineNodes(v, src, props)...)
			link.Props = map[string]any{"url": string(v.Destination)}
			out = append(out, link)
		default:
			out = append(out, inlineNodes(v, src, props)...)
		}
	}
	return out
}

func cloneProps(props map[string]any) map[string]any {
	if props == nil {
		return nil
	}
	out := make(map[string]any, len(props))
	for k, v := range props {
		out[k] = v
	}
	return out
}
