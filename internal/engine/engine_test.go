package engine

import (
	"errors"
	"testing"

	"github.com/dshills/inkstorm/internal/engine/command"
	"github.com/dshills/inkstorm/internal/engine/node"
	"github.com/dshills/inkstorm/internal/engine/operation"
	"github.com/dshills/inkstorm/internal/engine/position"
	"github.com/dshills/inkstorm/internal/schema"
)

func seeded(t *testing.T, content string, opts ...Option) (*Editor, position.Key) {
	t.Helper()
	leaf := node.NewText(content, nil)
	opts = append([]Option{WithDocument(node.NewDocument(node.NewElement("paragraph", leaf)))}, opts...)
	ed := New(opts...)
	if _, err := ed.Do(func(b *command.Builder) error {
		r := position.NewCollapsed(position.Point{Key: leaf.Key, Path: position.Path{0, 0}, Offset: 0})
		return b.Select(r)
	}); err != nil {
		t.Fatalf("seed selection: %v", err)
	}
	return ed, leaf.Key
}

func TestNewDefaultsToEmptyParagraph(t *testing.T) {
	ed := New()
	doc := ed.Document()
	if len(doc.Children) != 1 {
		t.Fatalf("got %d blocks, want 1", len(doc.Children))
	}
	para, ok := doc.Children[0].(*Element)
	if !ok || para.Type != "paragraph" {
		t.Fatalf("block = %#v, want a paragraph", doc.Children[0])
	}
	if ed.Selection() != nil {
		t.Error("fresh editor should be blurred")
	}
}

func TestDoCommitsBatch(t *testing.T) {
	ed, key := seeded(t, "")
	ops, err := ed.Do(func(b *command.Builder) error {
		return b.InsertText("hi")
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if len(ops) == 0 {
		t.Fatal("committed batch returned no ops")
	}
	got, _ := node.PlainText(ed.Document(), nil)
	if got != "hi" {
		t.Errorf("text = %q, want hi", got)
	}
	sel := ed.Selection()
	if sel == nil || sel.Focus.Key != key || sel.Focus.Offset != 2 {
		t.Errorf("selection = %v, want %s:2", sel, key)
	}
}

func TestDoIsAtomicOnBatchError(t *testing.T) {
	ed, _ := seeded(t, "keep")
	before := ed.Document()

	_, err := ed.Do(func(b *command.Builder) error {
		if err := b.InsertText("junk"); err != nil {
			return err
		}
		return errors.New("change of heart")
	})
	if err == nil {
		t.Fatal("expected the batch error")
	}
	if ed.Document() != before {
		t.Error("failed batch must leave the document untouched")
	}
	got, _ := node.PlainText(ed.Document(), nil)
	if got != "keep" {
		t.Errorf("text = %q, want keep", got)
	}
}

func TestDoIsAtomicOnBadOp(t *testing.T) {
	ed, _ := seeded(t, "keep")
	before := ed.Document()

	_, err := ed.Do(func(b *command.Builder) error {
		if err := b.InsertText("junk"); err != nil {
			return err
		}
		// An op against a path that does not exist fails validation.
		return b.Emit(operation.InsertText{Path: position.Path{9, 9}, Offset: 0, Text: "x"})
	})
	if !errors.Is(err, operation.ErrInvalidPath) {
		t.Fatalf("err = %v, want ErrInvalidPath", err)
	}
	if ed.Document() != before {
		t.Error("failed batch must leave the document untouched")
	}
}

func TestDoRunsNormalization(t *testing.T) {
	// Inserting a node that leaves two mergeable texts side by side gets
	// cleaned up in the same commit.
	leaf := node.NewText("ab", nil)
	ed := New(WithDocument(node.NewDocument(node.NewElement("paragraph", leaf))))

	ops, err := ed.Do(func(b *command.Builder) error {
		return b.Emit(operation.InsertNode{Path: position.Path{0, 1}, Node: node.NewText("cd", nil)})
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	para := ed.Document().Children[0].(*Element)
	if len(para.Children) != 1 {
		t.Fatalf("paragraph has %d leaves, want 1 after merge", len(para.Children))
	}
	if got := para.Children[0].(*Text).Content; got != "abcd" {
		t.Errorf("merged = %q, want abcd", got)
	}
	// The returned batch includes the normalization fix.
	var sawMerge bool
	for _, op := range ops {
		if _, ok := op.(operation.MergeNode); ok {
			sawMerge = true
		}
	}
	if !sawMerge {
		t.Error("committed ops should include the merge fix")
	}
}

func TestApplyRawOps(t *testing.T) {
	ed, _ := seeded(t, "abc")
	_, err := ed.Apply(operation.RemoveText{Path: position.Path{0, 0}, Offset: 1, Text: "b"})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	got, _ := node.PlainText(ed.Document(), nil)
	if got != "ac" {
		t.Errorf("text = %q, want ac", got)
	}
}

func TestReadOnlyEditor(t *testing.T) {
	leaf := node.NewText("x", nil)
	ed := New(
		WithDocument(node.NewDocument(node.NewElement("paragraph", leaf))),
		WithReadOnly(),
	)
	_, err := ed.Do(func(b *command.Builder) error { return b.InsertText("y") })
	if !errors.Is(err, ErrReadOnly) {
		t.Errorf("Do: err = %v, want ErrReadOnly", err)
	}
	_, err = ed.DoSuspended(func(b *command.Builder) error { return b.InsertText("y") })
	if !errors.Is(err, ErrReadOnly) {
		t.Errorf("DoSuspended: err = %v, want ErrReadOnly", err)
	}
}

func TestSuspendResume(t *testing.T) {
	ed, _ := seeded(t, "abc")
	if err := ed.Suspend(); err != nil {
		t.Fatalf("Suspend: %v", err)
	}
	if !ed.Suspended() {
		t.Error("suspended flag not set")
	}
	if err := ed.Suspend(); !errors.Is(err, ErrSuspendTwice) {
		t.Errorf("double suspend: err = %v, want ErrSuspendTwice", err)
	}

	if _, err := ed.Do(func(b *command.Builder) error { return b.InsertText("x") }); !errors.Is(err, ErrWindowPending) {
		t.Errorf("Do while suspended: err = %v, want ErrWindowPending", err)
	}
	// The bridge's write path works while suspended.
	if _, err := ed.DoSuspended(func(b *command.Builder) error { return b.InsertText("x") }); err != nil {
		t.Errorf("DoSuspended: %v", err)
	}

	ed.Resume()
	if ed.Suspended() {
		t.Error("suspended flag not cleared")
	}
	if _, err := ed.Do(func(b *command.Builder) error { return b.InsertText("y") }); err != nil {
		t.Errorf("Do after resume: %v", err)
	}
	// Resume when not suspended is harmless.
	ed.Resume()
}

func TestWithSchemaRulesApplyOnCommit(t *testing.T) {
	rule := schema.RuleFunc(func(n node.Node) schema.Result {
		if el, ok := n.(*node.Element); ok && el.Type == "banned" {
			return schema.Result{Repair: schema.RepairRemove}
		}
		return schema.Pass
	})
	ed, _ := seeded(t, "ok", WithSchema(rule))

	_, err := ed.Do(func(b *command.Builder) error {
		return b.Emit(operation.InsertNode{
			Path: position.Path{1},
			Node: node.NewElement("banned", node.NewText("nope", nil)),
		})
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if len(ed.Document().Children) != 1 {
		t.Errorf("got %d blocks, want the banned one removed", len(ed.Document().Children))
	}
	got, _ := node.PlainText(ed.Document(), nil)
	if got != "ok" {
		t.Errorf("text = %q, want ok", got)
	}
}

func TestWithSelectionOption(t *testing.T) {
	leaf := node.NewText("abc", nil)
	r := position.NewCollapsed(position.Point{Key: leaf.Key, Path: position.Path{0, 0}, Offset: 2})
	ed := New(
		WithDocument(node.NewDocument(node.NewElement("paragraph", leaf))),
		WithSelection(r),
	)
	sel := ed.Selection()
	if sel == nil || sel.Focus.Offset != 2 {
		t.Errorf("selection = %v, want caret at 2", sel)
	}
	// The returned selection is a copy.
	sel.Focus.Offset = 99
	if ed.Selection().Focus.Offset != 2 {
		t.Error("Selection must return a defensive copy")
	}
}

func TestDocumentSnapshotStableAcrossEdits(t *testing.T) {
	ed, _ := seeded(t, "abc")
	snap := ed.Document()

	if _, err := ed.Do(func(b *command.Builder) error { return b.InsertText("x") }); err != nil {
		t.Fatalf("Do: %v", err)
	}
	got, _ := node.PlainText(snap, nil)
	if got != "abc" {
		t.Errorf("old snapshot = %q, want abc", got)
	}
}
