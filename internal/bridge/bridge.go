package bridge

import (
	"fmt"

	"github.com/dshills/inkstorm/internal/engine"
	"github.com/dshills/inkstorm/internal/engine/command"
	"github.com/dshills/inkstorm/internal/engine/node"
	"github.com/dshills/inkstorm/internal/engine/operation"
	"github.com/dshills/inkstorm/internal/engine/position"
	"github.com/dshills/inkstorm/internal/host"
)

// window is the pending native edit token: the selection at arm time
// and the container enclosing the leaf the host is about to edit.
type window struct {
	sel       position.Range
	key       position.Key
	container host.Container
}

// Bridge owns the native-edit window protocol for one editor.
type Bridge struct {
	ed      *engine.Editor
	pending *window
}

// New returns a bridge for the given editor.
func New(ed *engine.Editor) *Bridge {
	return &Bridge{ed: ed}
}

// Pending reports whether a window is armed.
func (b *Bridge) Pending() bool {
	return b.pending != nil
}

// Arm records a pending native edit window over the container rendering
// the selection's focus leaf and suspends the editor. Exactly one
// window may be pending; arming twice is a programmer error.
func (b *Bridge) Arm(view host.View) error {
	if b.pending != nil {
		return ErrAlreadyPending
	}
	sel := b.ed.Selection()
	if sel == nil {
		return ErrNoArmTarget
	}
	container, err := view.LocateContainer(sel.Focus.Key)
	if err != nil {
		return fmt.Errorf("arm over %q: %w", sel.Focus.Key, ErrNoArmTarget)
	}
	if err := b.ed.Suspend(); err != nil {
		return err
	}
	b.pending = &window{sel: *sel, key: sel.Focus.Key, container: container}
	return nil
}

// Cancel discards the pending window without reconciling. The partial
// native edit is abandoned; the host's own undo covers that case. Safe
// to call with no window pending.
func (b *Bridge) Cancel() {
	if b.pending == nil {
		return
	}
	b.pending = nil
	b.ed.Resume()
}

// Reconcile closes the pending window: it reads the armed container
// back from the host, collapses filler placeholders (the engine's only
// write to host-owned state), replaces the model leaf's full content
// with the host's result, and maps the host caret back into model
// coordinates. The diff granularity is deliberately the whole leaf —
// simplicity and correctness under arbitrary host mutation beat edit
// minimality.
//
// A host selection that left the armed container abandons the window
// with ErrSpanMismatch; the caller forwards the signal to the command
// layer as fresh input. A container detached after the rewrite is
// ErrInvariant and fatal.
func (b *Bridge) Reconcile(view host.View) error {
	w := b.pending
	if w == nil {
		return ErrNotArmed
	}

	hostSel, err := view.HostSelection()
	if err != nil || hostSel.Container.Key() != w.key {
		b.Cancel()
		return fmt.Errorf("reconcile %q: %w", w.key, ErrSpanMismatch)
	}

	// Window is consumed from here on, success or failure.
	b.pending = nil
	defer b.ed.Resume()

	rawRuns := w.container.Runs()
	newRuns, text := collapseFiller(rawRuns)
	if err := w.container.SetRuns(newRuns); err != nil {
		return fmt.Errorf("collapse filler in %q: %w", w.key, err)
	}

	caret := snapToCluster(text, literalOffset(rawRuns, hostSel.Offset))

	doc := b.ed.Document()
	path, err := node.ResolvePath(doc, w.key)
	if err != nil {
		return fmt.Errorf("reconcile %q: leaf gone: %w", w.key, err)
	}
	leaf, err := node.TextAt(doc, path)
	if err != nil {
		return err
	}
	old := leaf.Content

	_, err = b.ed.DoSuspended(func(cb *command.Builder) error {
		if old != "" {
			if err := cb.Emit(operation.RemoveText{Path: path.Clone(), Offset: 0, Text: old}); err != nil {
				return err
			}
		}
		if text != "" {
			if err := cb.Emit(operation.InsertText{Path: path.Clone(), Offset: 0, Text: text}); err != nil {
				return err
			}
		}
		caretPath, err := node.ResolvePath(cb.Document(), w.key)
		if err != nil {
			return err
		}
		r := position.NewCollapsed(position.Point{Key: w.key, Path: caretPath, Offset: caret})
		return cb.SetSelection(&r)
	})
	if err != nil {
		return fmt.Errorf("reconcile %q: %w", w.key, err)
	}

	if !w.container.Attached() {
		return fmt.Errorf("reconcile %q: %w", w.key, ErrInvariant)
	}
	return nil
}
