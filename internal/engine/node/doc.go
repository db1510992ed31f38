// Package node defines the immutable document tree: a closed tagged
// variant of Document (the root), Element (typed containers that may be
// void or inline), and Text (the only leaves addressable by offsets).
//
// Nodes are never mutated in place. The Rewrite primitive produces a new
// tree that shares every subtree not on the path from the root to the
// edited node, which keeps repeated edits on large documents cheap and
// lets previous snapshots stay valid indefinitely.
//
// The package is read-only apart from Rewrite; all semantic edits go
// through the operation package.
package node
