package codec

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fumiama/go-docx"

	"github.com/dshills/inkstorm/internal/engine/node"
)

// ImportDOCX parses a .docx stream into a document tree. Paragraphs
// with heading styles become heading blocks; run formatting is not
// carried over.
func ImportDOCX(r io.Reader) (*node.Document, error) {
	// go-docx needs a ReadSeeker plus a size, so spool to a temp file.
	tmp, err := os.CreateTemp("", "inkstorm-docx-*.docx")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	size, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("seek temp file: %w", err)
	}

	parsed, err := docx.Parse(tmp, size)
	tmp.Close()
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	var blocks []node.Node
	for _, item := range parsed.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		content := paragraphText(para)
		if level := headingLevel(para); level > 0 {
			el := node.NewElement("heading", node.NewText(content, nil))
			el.Props = map[string]any{"level": level}
			blocks = append(blocks, el)
			continue
		}
		blocks = append(blocks, node.NewElement("paragraph", node.NewText(content, nil)))
	}
	if len(blocks) == 0 {
		blocks = []node.Node{node.NewElement("paragraph", node.NewText("", nil))}
	}
	return node.NewDocument(blocks...), nil
}

func headingLevel(para *docx.Paragraph) int {
	if para.Properties == nil || para.Properties.Style == nil {
		return 0
	}
	style := strings.ToLower(strings.ReplaceAll(para.Properties.Style.Val, " ", ""))
	for level := 1; level <= 6; level++ {
		if style == fmt.Sprintf("heading%d", level) {
			return level
		}
	}
	return 0
}

func paragraphText(para *docx.Paragraph) string {
	var sb strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				sb.WriteString(t.Text)
			}
		}
	}
	return sb.String()
}
