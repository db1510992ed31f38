package operation

// Invert returns the operation that undoes op. Inversion relies on the
// payloads producers fill at emission time: RemoveNode.Node,
// RemoveText.Text, MergeNode.Position/DiscardedKey, SetNode.PrevProps,
// and SetSelection.Prev. Inverting a MergeNode restores the discarded
// node's key, so a split/merge pair round-trips identity exactly.
func Invert(op Op) Op {
	switch o := op.(type) {
	case InsertNode:
		return RemoveNode{Path: o.Path.Clone(), Node: o.Node}
	case RemoveNode:
		return InsertNode{Path: o.Path.Clone(), Node: o.Node}
	case SplitNode:
		return MergeNode{Path: o.Path.Next(), Position: o.Position, DiscardedKey: o.NewKey}
	case MergeNode:
		return SplitNode{Path: o.Path.Previous(), Position: o.Position, NewKey: o.DiscardedKey}
	case MoveNode:
		// Mirrors the forward convention: the inverse removes from the
		// landing path and reinserts at the origin, which is already a
		// post-removal coordinate for that tree.
		return MoveNode{Path: o.NewPath.Clone(), NewPath: o.Path.Clone()}
	case SetNode:
		return SetNode{Path: o.Path.Clone(), Props: o.PrevProps, PrevProps: o.Props}
	case InsertText:
		return RemoveText{Path: o.Path.Clone(), Offset: o.Offset, Text: o.Text}
	case RemoveText:
		return InsertText{Path: o.Path.Clone(), Offset: o.Offset, Text: o.Text}
	case SetSelection:
		return SetSelection{Selection: o.Prev, Prev: o.Selection}
	default:
		return op
	}
}

// InvertAll returns the batch that undoes ops, in reverse order.
func InvertAll(ops []Op) []Op {
	out := make([]Op, 0, len(ops))
	for i := len(ops) - 1; i >= 0; i-- {
		out = append(out, Invert(ops[i]))
	}
	return out
}
