package bridge

import (
	"github.com/rivo/uniseg"

	"github.com/dshills/inkstorm/internal/engine/node"
	"github.com/dshills/inkstorm/internal/host"
)

// collapseFiller normalizes a container's raw runs. Filler characters
// that became adjacent to literal typed content are removed along with
// the runs' filler marking; a container holding nothing but filler
// stays a single empty-text filler run so it remains host-selectable.
// Returns the normalized runs and the resulting plain text.
func collapseFiller(runs []host.Run) ([]host.Run, string) {
	text := host.PlainText(runs)
	if text == "" {
		return []host.Run{{Text: host.FillerString, Filler: true}}, ""
	}
	return []host.Run{{Text: text}}, text
}

// literalOffset converts a caret offset into the raw (filler-bearing)
// text of runs to an offset into the filler-stripped text.
func literalOffset(runs []host.Run, rawOffset int) int {
	var raw string
	for _, r := range runs {
		raw += r.Text
	}
	n := node.UTF16Len(raw)
	if rawOffset > n {
		rawOffset = n
	}
	if rawOffset < 0 {
		rawOffset = 0
	}
	prefix := node.UTF16Slice(raw, 0, rawOffset)
	return node.UTF16Len(host.StripFiller(prefix))
}

// snapToCluster clamps a UTF-16 offset into s to the nearest grapheme
// cluster boundary at or before it, so a reconciled caret can never
// land inside a composed character.
func snapToCluster(s string, off int) int {
	total := node.UTF16Len(s)
	if off >= total {
		return total
	}
	if off <= 0 {
		return 0
	}
	gr := uniseg.NewGraphemes(s)
	pos := 0
	for gr.Next() {
		w := node.UTF16Len(gr.Str())
		if pos+w > off {
			return pos
		}
		pos += w
		if pos == off {
			return off
		}
	}
	return pos
}
