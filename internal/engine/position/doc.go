// Package position provides the pure value types that address locations
// in a document tree: Path (child indices from the root), Point (a spot
// inside a text leaf), and Range (an anchor/focus pair of Points).
//
// All types are immutable values. A Path is a coordinate, not an owning
// reference: it is valid only against the tree it was computed from and
// goes stale as soon as the tree mutates. A Point additionally carries the
// stable Key of its text leaf so it can be re-resolved after structural
// edits; the cached Path on a Point is a non-authoritative hint.
//
// Offsets are measured in UTF-16 code units, matching the coordinate
// space of editable host views.
package position
