package node

import "errors"

// Errors returned by tree lookup and resolution.
var (
	// ErrNotFound indicates a path or key no longer resolves to a node.
	// Callers holding a selection treat this as "selection lost", not as
	// a fatal condition.
	ErrNotFound = errors.New("node not found")

	// ErrNotText indicates a text-only operation addressed a non-text node.
	ErrNotText = errors.New("node is not a text leaf")
)
