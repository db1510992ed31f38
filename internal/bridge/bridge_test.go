package bridge

import (
	"errors"
	"testing"

	"github.com/dshills/inkstorm/internal/engine"
	"github.com/dshills/inkstorm/internal/engine/command"
	"github.com/dshills/inkstorm/internal/engine/node"
	"github.com/dshills/inkstorm/internal/engine/position"
	"github.com/dshills/inkstorm/internal/host"
	"github.com/dshills/inkstorm/internal/host/domview"
)

// setup builds an editor holding one paragraph with the given content,
// places the caret at the end of its leaf, and renders a host view.
func setup(t *testing.T, content string) (*engine.Editor, *domview.View, position.Key) {
	t.Helper()
	leaf := node.NewText(content, nil)
	ed := engine.New(engine.WithDocument(node.NewDocument(node.NewElement("paragraph", leaf))))
	_, err := ed.Do(func(b *command.Builder) error {
		r := position.NewCollapsed(position.Point{
			Key: leaf.Key, Path: position.Path{0, 0}, Offset: leaf.Length(),
		})
		return b.Select(r)
	})
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	return ed, domview.New(ed.Document()), leaf.Key
}

func TestReconcileTypedAroundFiller(t *testing.T) {
	ed, view, key := setup(t, "")
	br := New(ed)

	if err := br.Arm(view); err != nil {
		t.Fatalf("Arm: %v", err)
	}
	if !br.Pending() {
		t.Fatal("window should be pending after Arm")
	}

	// The empty leaf renders as a lone filler character. The host types
	// "fo" before it and "o" after, leaving the caret at the end.
	if err := view.ReplaceRaw(key, "fo"+host.FillerString+"o", 4); err != nil {
		t.Fatalf("host edit: %v", err)
	}

	if err := br.Reconcile(view); err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if br.Pending() {
		t.Error("window should be consumed")
	}

	// Filler never reaches the model.
	got, err := node.PlainText(ed.Document(), nil)
	if err != nil || got != "foo" {
		t.Errorf("model text = %q, %v, want foo", got, err)
	}
	sel := ed.Selection()
	if sel == nil || !sel.IsCollapsed() || sel.Focus.Key != key || sel.Focus.Offset != 3 {
		t.Errorf("selection = %v, want collapsed at %s:3", sel, key)
	}

	// The collapse is the bridge's only host-state write: the container
	// now holds one literal run without filler.
	c, err := view.LocateContainer(key)
	if err != nil {
		t.Fatalf("container: %v", err)
	}
	runs := c.Runs()
	if len(runs) != 1 || runs[0].Text != "foo" || runs[0].Filler {
		t.Errorf("runs = %+v, want one literal foo run", runs)
	}
}

func TestReconcilePlainInsertion(t *testing.T) {
	ed, view, key := setup(t, "hello")
	br := New(ed)

	if err := br.Arm(view); err != nil {
		t.Fatalf("Arm: %v", err)
	}
	if err := view.SetCaret(key, 5); err != nil {
		t.Fatalf("caret: %v", err)
	}
	if err := view.Type(" world"); err != nil {
		t.Fatalf("type: %v", err)
	}
	if err := br.Reconcile(view); err != nil {
		t.Fatalf("Reconcile: %v", err)
	}

	got, _ := node.PlainText(ed.Document(), nil)
	if got != "hello world" {
		t.Errorf("model text = %q, want %q", got, "hello world")
	}
	if sel := ed.Selection(); sel == nil || sel.Focus.Offset != 11 {
		t.Errorf("selection = %v, want caret at 11", sel)
	}
}

func TestReconcileSnapsCaretToClusterBoundary(t *testing.T) {
	ed, view, key := setup(t, "")
	br := New(ed)

	if err := br.Arm(view); err != nil {
		t.Fatalf("Arm: %v", err)
	}
	// Host leaves the caret between the surrogate halves of the emoji.
	if err := view.ReplaceRaw(key, "a\U0001F600", 2); err != nil {
		t.Fatalf("host edit: %v", err)
	}
	if err := br.Reconcile(view); err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if sel := ed.Selection(); sel == nil || sel.Focus.Offset != 1 {
		t.Errorf("selection = %v, want caret snapped back to 1", sel)
	}
}

func TestArmWithoutSelection(t *testing.T) {
	ed := engine.New()
	view := domview.New(ed.Document())
	br := New(ed)
	if err := br.Arm(view); !errors.Is(err, ErrNoArmTarget) {
		t.Errorf("err = %v, want ErrNoArmTarget", err)
	}
	if ed.Suspended() {
		t.Error("failed Arm must not leave the editor suspended")
	}
}

func TestArmTwice(t *testing.T) {
	ed, view, _ := setup(t, "x")
	br := New(ed)
	if err := br.Arm(view); err != nil {
		t.Fatalf("Arm: %v", err)
	}
	if err := br.Arm(view); !errors.Is(err, ErrAlreadyPending) {
		t.Errorf("second Arm: err = %v, want ErrAlreadyPending", err)
	}
}

func TestReconcileWithoutWindow(t *testing.T) {
	ed, view, _ := setup(t, "x")
	br := New(ed)
	if err := br.Reconcile(view); !errors.Is(err, ErrNotArmed) {
		t.Errorf("err = %v, want ErrNotArmed", err)
	}
}

func TestEditorSuspendedDuringWindow(t *testing.T) {
	ed, view, _ := setup(t, "x")
	br := New(ed)
	if err := br.Arm(view); err != nil {
		t.Fatalf("Arm: %v", err)
	}

	_, err := ed.Do(func(b *command.Builder) error { return b.InsertText("y") })
	if !errors.Is(err, engine.ErrWindowPending) {
		t.Errorf("Do during window: err = %v, want ErrWindowPending", err)
	}

	br.Cancel()
	if _, err := ed.Do(func(b *command.Builder) error { return b.InsertText("y") }); err != nil {
		t.Errorf("Do after cancel: %v", err)
	}
}

func TestCancelAbandonsWindow(t *testing.T) {
	ed, view, key := setup(t, "abc")
	br := New(ed)
	if err := br.Arm(view); err != nil {
		t.Fatalf("Arm: %v", err)
	}

	// Host edits happen, then the window is abandoned: the partial edit
	// never reaches the model and no error is raised.
	if err := view.ReplaceRaw(key, "abcX", 4); err != nil {
		t.Fatalf("host edit: %v", err)
	}
	br.Cancel()

	if br.Pending() {
		t.Error("window should be gone")
	}
	got, _ := node.PlainText(ed.Document(), nil)
	if got != "abc" {
		t.Errorf("model text = %q, want abc (host edit discarded)", got)
	}
	// Cancel with nothing pending is a no-op.
	br.Cancel()
}

func TestReconcileSpanMismatch(t *testing.T) {
	leafA := node.NewText("aaa", nil)
	leafB := node.NewText("bbb", nil)
	ed := engine.New(engine.WithDocument(node.NewDocument(
		node.NewElement("paragraph", leafA),
		node.NewElement("paragraph", leafB),
	)))
	if _, err := ed.Do(func(b *command.Builder) error {
		r := position.NewCollapsed(position.Point{Key: leafA.Key, Path: position.Path{0, 0}, Offset: 3})
		return b.Select(r)
	}); err != nil {
		t.Fatalf("select: %v", err)
	}
	view := domview.New(ed.Document())
	br := New(ed)

	if err := br.Arm(view); err != nil {
		t.Fatalf("Arm: %v", err)
	}
	// The host caret wanders into the other leaf's container.
	if err := view.SetCaret(leafB.Key, 1); err != nil {
		t.Fatalf("caret: %v", err)
	}

	if err := br.Reconcile(view); !errors.Is(err, ErrSpanMismatch) {
		t.Fatalf("err = %v, want ErrSpanMismatch", err)
	}
	if br.Pending() {
		t.Error("mismatch must abandon the window")
	}
	if ed.Suspended() {
		t.Error("mismatch must resume the editor")
	}
	got, _ := node.PlainText(ed.Document(), nil)
	if got != "aaabbb" {
		t.Errorf("model text = %q, want untouched aaabbb", got)
	}
}

func TestReconcileNoHostSelection(t *testing.T) {
	ed, view, _ := setup(t, "x")
	br := New(ed)
	if err := br.Arm(view); err != nil {
		t.Fatalf("Arm: %v", err)
	}
	// No caret was ever placed in the view.
	if err := br.Reconcile(view); !errors.Is(err, ErrSpanMismatch) {
		t.Errorf("err = %v, want ErrSpanMismatch", err)
	}
}

func TestReconcileDetachedContainerIsInvariantViolation(t *testing.T) {
	ed, view, key := setup(t, "abc")
	br := New(ed)
	if err := br.Arm(view); err != nil {
		t.Fatalf("Arm: %v", err)
	}
	if err := view.ReplaceRaw(key, "abcd", 4); err != nil {
		t.Fatalf("host edit: %v", err)
	}

	// Rip the block out from under the armed span. The span itself stays
	// locatable, so the host selection still resolves, but the container
	// is no longer part of the live tree.
	root := view.Root()
	root.RemoveChild(root.FirstChild)

	err := br.Reconcile(view)
	if !errors.Is(err, ErrInvariant) {
		t.Fatalf("err = %v, want ErrInvariant", err)
	}
	if br.Pending() {
		t.Error("window must be consumed even on invariant failure")
	}
	if ed.Suspended() {
		t.Error("editor must resume even on invariant failure")
	}
}
