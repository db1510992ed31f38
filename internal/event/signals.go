package event

import "github.com/dshills/inkstorm/internal/engine/position"

// Signal is the closed set of view-layer notifications.
type Signal interface {
	isSignal()
}

// Focus is sent when the editable surface gains focus.
type Focus struct{}

func (Focus) isSignal() {}

// Blur is sent when the editable surface loses focus.
type Blur struct{}

func (Blur) isSignal() {}

// BeforeEdit is sent just before the host applies an uncontrolled edit
// (autocorrect, spell correction) to the surface.
type BeforeEdit struct{}

func (BeforeEdit) isSignal() {}

// EditCommitted is sent when an uncontrolled host edit finished. Data
// carries the committed text for the fallback path where reconciliation
// was abandoned.
type EditCommitted struct {
	Data string
}

func (EditCommitted) isSignal() {}

// CompositionStart is sent when an input method opens a composition.
type CompositionStart struct{}

func (CompositionStart) isSignal() {}

// CompositionEnd is sent when the input method closed its composition.
// Data carries the composed text.
type CompositionEnd struct {
	Data string
}

func (CompositionEnd) isSignal() {}

// SelectionChanged is sent when the host caret moved, e.g. by a click.
type SelectionChanged struct{}

func (SelectionChanged) isSignal() {}

// DragStart is sent when a drag leaves the surface.
type DragStart struct{}

func (DragStart) isSignal() {}

// DragOver is sent while a drag hovers the surface.
type DragOver struct{}

func (DragOver) isSignal() {}

// Drop is sent when a drag lands. Text carries the plain-text payload;
// At, when non-nil, is the model position the host resolved the drop to.
type Drop struct {
	Text string
	At   *position.Point
}

func (Drop) isSignal() {}
