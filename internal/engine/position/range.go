package position

import "fmt"

// Range is a selection: an ordered pair of Points. Anchor is where the
// selection started, Focus where it currently ends. Direction matters for
// extend/collapse commands; structural edits normalize with Covering.
type Range struct {
	Anchor Point
	Focus  Point
}

// NewCollapsed returns a collapsed range with anchor and focus at p.
func NewCollapsed(p Point) Range {
	return Range{Anchor: p.Clone(), Focus: p.Clone()}
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	if r.IsCollapsed() {
		return fmt.Sprintf("{%s}", r.Focus)
	}
	return fmt.Sprintf("{%s -> %s}", r.Anchor, r.Focus)
}

// IsCollapsed returns true if anchor and focus address the same location.
func (r Range) IsCollapsed() bool {
	return r.Anchor.Equal(r.Focus)
}

// IsBackward returns true if the focus comes before the anchor in
// document order.
func (r Range) IsBackward() bool {
	return r.Focus.Before(r.Anchor)
}

// Covering returns the range normalized so that anchor <= focus in
// document order. Collapsed and forward ranges are returned unchanged.
func (r Range) Covering() Range {
	if r.IsBackward() {
		return Range{Anchor: r.Focus.Clone(), Focus: r.Anchor.Clone()}
	}
	return r.Clone()
}

// Start returns the earlier of the two points in document order.
func (r Range) Start() Point {
	return r.Covering().Anchor
}

// End returns the later of the two points in document order.
func (r Range) End() Point {
	return r.Covering().Focus
}

// Clone returns an independent copy of the range.
func (r Range) Clone() Range {
	return Range{Anchor: r.Anchor.Clone(), Focus: r.Focus.Clone()}
}
