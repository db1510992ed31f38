package position

import (
	"fmt"
	"strings"
)

// Path is an ordered sequence of child indices locating a node from the
// document root. An empty Path addresses the root itself.
type Path []int

// String returns a human-readable representation of the path.
func (p Path) String() string {
	parts := make([]string, len(p))
	for i, idx := range p {
		parts[i] = fmt.Sprintf("%d", idx)
	}
	return "[" + strings.Join(parts, ".") + "]"
}

// Clone returns an independent copy of the path.
func (p Path) Clone() Path {
	if p == nil {
		return nil
	}
	out := make(Path, len(p))
	copy(out, p)
	return out
}

// Equal returns true if both paths have identical indices.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// Compare returns -1 if p sorts before other in document order, 0 if the
// paths are equal, and 1 if p sorts after other. A path compares equal to
// its own prefix only when both are identical; an ancestor sorts before
// its descendants.
func (p Path) Compare(other Path) int {
	n := len(p)
	if len(other) < n {
		n = len(other)
	}
	for i := 0; i < n; i++ {
		if p[i] < other[i] {
			return -1
		}
		if p[i] > other[i] {
			return 1
		}
	}
	switch {
	case len(p) < len(other):
		return -1
	case len(p) > len(other):
		return 1
	default:
		return 0
	}
}

// IsAncestorOf returns true if p is a strict ancestor of other.
func (p Path) IsAncestorOf(other Path) bool {
	if len(p) >= len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// Parent returns the path of the containing node. Calling Parent on the
// root path returns nil.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return nil
	}
	return p[:len(p)-1].Clone()
}

// Index returns the final child index, or -1 for the root path.
func (p Path) Index() int {
	if len(p) == 0 {
		return -1
	}
	return p[len(p)-1]
}

// Next returns the path of the following sibling.
func (p Path) Next() Path {
	out := p.Clone()
	out[len(out)-1]++
	return out
}

// Previous returns the path of the preceding sibling. The caller must
// ensure Index() > 0.
func (p Path) Previous() Path {
	out := p.Clone()
	out[len(out)-1]--
	return out
}

// Child returns the path extended by one child index.
func (p Path) Child(index int) Path {
	out := make(Path, len(p)+1)
	copy(out, p)
	out[len(p)] = index
	return out
}
