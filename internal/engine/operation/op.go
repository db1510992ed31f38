package operation

import (
	"fmt"

	"github.com/dshills/inkstorm/internal/engine/node"
	"github.com/dshills/inkstorm/internal/engine/position"
)

// Op is the closed variant of edit operations. The implementations are
// the nine structs below; a type switch over them is exhaustive.
type Op interface {
	isOp()
	String() string
}

// InsertNode inserts Node as a new child occupying the slot named by
// Path. The insertion index may equal the parent's child count.
type InsertNode struct {
	Path position.Path
	Node node.Node
}

func (InsertNode) isOp() {}

func (o InsertNode) String() string { return fmt.Sprintf("insert_node%s", o.Path) }

// RemoveNode removes the subtree at Path. Node holds the removed subtree
// so the operation can be inverted; producers fill it from the state the
// operation is emitted against. Any point whose key lives inside the
// subtree stops resolving; the selection is deliberately carried through
// unchanged and must be fixed up by the issuing command.
type RemoveNode struct {
	Path position.Path
	Node node.Node
}

func (RemoveNode) isOp() {}

func (o RemoveNode) String() string { return fmt.Sprintf("remove_node%s", o.Path) }

// SplitNode splits the node at Path into two siblings. For a Text leaf,
// Position is a UTF-16 offset and the right half receives NewKey; for an
// Element, Position is a child index. Props are shallow-merged onto the
// right half.
type SplitNode struct {
	Path     position.Path
	Position int
	Props    map[string]any
	NewKey   position.Key
}

func (SplitNode) isOp() {}

func (o SplitNode) String() string { return fmt.Sprintf("split_node%s@%d", o.Path, o.Position) }

// MergeNode merges the node at Path into its previous sibling: Text
// content concatenates, Element children concatenate. The merged result
// keeps the previous sibling's key; DiscardedKey records the key of the
// node at Path and Position the previous sibling's length (or child
// count) before the merge, so the inverse split can restore identity.
type MergeNode struct {
	Path         position.Path
	Position     int
	DiscardedKey position.Key
}

func (MergeNode) isOp() {}

func (o MergeNode) String() string { return fmt.Sprintf("merge_node%s", o.Path) }

// MoveNode relocates the subtree at Path to NewPath. NewPath is
// interpreted against the tree after the subtree has been removed from
// its old location; preserving that convention exactly is what keeps
// sibling moves free of off-by-one defects.
type MoveNode struct {
	Path    position.Path
	NewPath position.Path
}

func (MoveNode) isOp() {}

func (o MoveNode) String() string { return fmt.Sprintf("move_node%s->%s", o.Path, o.NewPath) }

// SetNode shallow-merges Props onto the Element or Text at Path. A nil
// value removes the property. Node kind and children never change.
// PrevProps records each touched property's prior value for inversion.
type SetNode struct {
	Path      position.Path
	Props     map[string]any
	PrevProps map[string]any
}

func (SetNode) isOp() {}

func (o SetNode) String() string { return fmt.Sprintf("set_node%s", o.Path) }

// InsertText inserts Text into the leaf at Path at the given UTF-16
// offset.
type InsertText struct {
	Path   position.Path
	Offset int
	Text   string
}

func (InsertText) isOp() {}

func (o InsertText) String() string { return fmt.Sprintf("insert_text%s@%d(%q)", o.Path, o.Offset, o.Text) }

// RemoveText removes Text from the leaf at Path starting at the given
// UTF-16 offset. The op carries the removed run itself rather than a
// length so it can be reinserted on inversion; the applier verifies the
// leaf actually contains that run at that offset.
type RemoveText struct {
	Path   position.Path
	Offset int
	Text   string
}

func (RemoveText) isOp() {}

func (o RemoveText) String() string { return fmt.Sprintf("remove_text%s@%d(%q)", o.Path, o.Offset, o.Text) }

// SetSelection replaces the selection half of the editor state. A nil
// Selection means "blurred". Prev records the selection being replaced.
type SetSelection struct {
	Selection *position.Range
	Prev      *position.Range
}

func (SetSelection) isOp() {}

func (o SetSelection) String() string {
	if o.Selection == nil {
		return "set_selection(nil)"
	}
	return fmt.Sprintf("set_selection%s", *o.Selection)
}

// Split constructs a SplitNode with a fresh key for the right half.
func Split(path position.Path, pos int, props map[string]any) SplitNode {
	return SplitNode{Path: path.Clone(), Position: pos, Props: props, NewKey: position.NewKey()}
}
