package host

import (
	"strings"

	"github.com/dshills/inkstorm/internal/engine/node"
	"github.com/dshills/inkstorm/internal/engine/position"
)

// Filler is the zero-width placeholder character kept in the host view
// so empty text leaves stay selectable. It never enters the model.
const Filler = '\u200b'

// FillerString is Filler as a string.
const FillerString = string(Filler)

// Run is one contiguous piece of a container's raw text. Filler marks a
// run that is purely placeholder.
type Run struct {
	Text   string
	Filler bool
}

// Container is an opaque reference to the host-side box rendering one
// text leaf.
type Container interface {
	// Key returns the text leaf the container renders.
	Key() position.Key

	// Runs returns the container's current raw text runs.
	Runs() []Run

	// SetRuns rewrites the container's runs. Only the reconciliation
	// bridge may call this.
	SetRuns(runs []Run) error

	// Attached reports whether the container is still part of the live
	// view.
	Attached() bool
}

// Selection is the host's current caret: a container plus a UTF-16
// offset into its raw text (filler characters included).
type Selection struct {
	Container Container
	Offset    int
}

// View is the read-only query surface of the view layer.
type View interface {
	// LocatePoint maps a host position into model coordinates.
	LocatePoint(c Container, offset int) (position.Point, error)

	// LocateContainer finds the container rendering the given leaf.
	LocateContainer(key position.Key) (Container, error)

	// IsVoid reports whether the view renders n as a void island.
	IsVoid(n node.Node) bool

	// HostSelection returns the host's current caret.
	HostSelection() (Selection, error)
}

// StripFiller removes every filler character from s.
func StripFiller(s string) string {
	return strings.ReplaceAll(s, FillerString, "")
}

// PlainText concatenates the literal content of runs, fillers stripped.
func PlainText(runs []Run) string {
	var sb strings.Builder
	for _, r := range runs {
		sb.WriteString(StripFiller(r.Text))
	}
	return sb.String()
}
