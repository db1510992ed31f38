package event

import (
	"context"
	"errors"
	"fmt"

	"github.com/dshills/inkstorm/internal/bridge"
	"github.com/dshills/inkstorm/internal/engine"
	"github.com/dshills/inkstorm/internal/engine/command"
	"github.com/dshills/inkstorm/internal/engine/position"
	"github.com/dshills/inkstorm/internal/host"
)

// Session routes view signals for one editor/view pair. It owns the
// per-session flags the handlers consult and implements Handler.
type Session struct {
	ed   *engine.Editor
	br   *bridge.Bridge
	view host.View

	composing bool
	dragging  bool
	focused   bool
}

// NewSession wires a session over an editor, its bridge, and the view.
func NewSession(ed *engine.Editor, br *bridge.Bridge, view host.View) *Session {
	return &Session{ed: ed, br: br, view: view}
}

// Composing reports whether an input method owns the surface right now.
func (s *Session) Composing() bool { return s.composing }

// Focused reports whether the surface has focus.
func (s *Session) Focused() bool { return s.focused }

// Dragging reports whether a drag originating here is in flight.
func (s *Session) Dragging() bool { return s.dragging }

// Handle implements Handler. Signals that would mutate the model while
// a native edit window is pending are suppressed, not failed: the
// editor's ErrWindowPending is absorbed here because suppression is the
// designed behavior for this state.
func (s *Session) Handle(ctx context.Context, sig Signal) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	switch v := sig.(type) {
	case Focus:
		s.focused = true
		return nil

	case Blur:
		s.focused = false
		if s.composing {
			return nil
		}
		return suppress(s.do(func(b *command.Builder) error { return b.Blur() }))

	case CompositionStart:
		// A new composition while a window is armed abandons the old
		// window; the host's own undo covers the partial edit.
		s.br.Cancel()
		s.composing = true
		if err := s.br.Arm(s.view); err != nil {
			if errors.Is(err, bridge.ErrNoArmTarget) {
				return nil // blurred or selection lost; nothing to guard
			}
			return err
		}
		return nil

	case CompositionEnd:
		s.composing = false
		return s.reconcileOrInsert(v.Data)

	case BeforeEdit:
		if s.br.Pending() {
			return nil
		}
		if err := s.br.Arm(s.view); err != nil && !errors.Is(err, bridge.ErrNoArmTarget) {
			return err
		}
		return nil

	case EditCommitted:
		return s.reconcileOrInsert(v.Data)

	case SelectionChanged:
		// A click or caret move during a window abandons it.
		s.br.Cancel()
		return s.syncSelection()

	case DragStart:
		s.dragging = true
		return nil

	case DragOver:
		return nil

	case Drop:
		s.dragging = false
		return suppress(s.do(func(b *command.Builder) error {
			if v.At != nil {
				r := position.NewCollapsed(*v.At)
				if err := b.Select(r); err != nil {
					return err
				}
			}
			return b.InsertText(v.Text)
		}))

	default:
		return fmt.Errorf("unhandled signal %T", sig)
	}
}

// reconcileOrInsert closes a pending window; when reconciliation is
// abandoned because the host moved on, the committed data is replayed
// as a fresh insert instead.
func (s *Session) reconcileOrInsert(data string) error {
	if !s.br.Pending() {
		if data == "" {
			return nil
		}
		return suppress(s.do(func(b *command.Builder) error { return b.InsertText(data) }))
	}
	err := s.br.Reconcile(s.view)
	if errors.Is(err, bridge.ErrSpanMismatch) {
		if data == "" {
			return nil
		}
		return suppress(s.do(func(b *command.Builder) error { return b.InsertText(data) }))
	}
	return err
}

// syncSelection adopts the host caret as the model selection.
func (s *Session) syncSelection() error {
	hostSel, err := s.view.HostSelection()
	if err != nil {
		return nil // no caret to adopt
	}
	point, err := s.view.LocatePoint(hostSel.Container, hostSel.Offset)
	if err != nil {
		return nil
	}
	return suppress(s.do(func(b *command.Builder) error {
		r := position.NewCollapsed(point)
		return b.Select(r)
	}))
}

func (s *Session) do(batch func(b *command.Builder) error) error {
	_, err := s.ed.Do(batch)
	return err
}

// suppress absorbs the window-pending error: during a native edit
// window, model-mutating signals are dropped by design.
func suppress(err error) error {
	if errors.Is(err, engine.ErrWindowPending) {
		return nil
	}
	return err
}
