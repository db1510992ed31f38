package position

import "fmt"

// Point addresses a position inside a text leaf. Key is the durable
// identity of the leaf; Path is a cached resolution of Key at the moment
// the point was created and must be treated as stale after any structural
// edit; Offset counts UTF-16 code units into the leaf's content.
type Point struct {
	Key    Key
	Path   Path
	Offset int
}

// String returns a human-readable representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("%s%s:%d", p.Key, p.Path, p.Offset)
}

// Compare returns -1 if p comes before other in document order, 0 if the
// points are equal, and 1 if p comes after. Ordering is path-wise first,
// then by offset. The cached paths are trusted here; callers comparing
// points that survived a structural edit must re-resolve them first.
func (p Point) Compare(other Point) int {
	if c := p.Path.Compare(other.Path); c != 0 {
		return c
	}
	switch {
	case p.Offset < other.Offset:
		return -1
	case p.Offset > other.Offset:
		return 1
	default:
		return 0
	}
}

// Before returns true if p comes before other.
func (p Point) Before(other Point) bool {
	return p.Compare(other) < 0
}

// After returns true if p comes after other.
func (p Point) After(other Point) bool {
	return p.Compare(other) > 0
}

// Equal returns true if both points address the same location.
func (p Point) Equal(other Point) bool {
	return p.Key == other.Key && p.Offset == other.Offset
}

// Clone returns an independent copy of the point.
func (p Point) Clone() Point {
	return Point{Key: p.Key, Path: p.Path.Clone(), Offset: p.Offset}
}
