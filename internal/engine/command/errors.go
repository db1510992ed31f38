package command

import "errors"

// Errors returned by commands.
var (
	// ErrNoSelection indicates a command that needs a selection ran while
	// the editor was blurred.
	ErrNoSelection = errors.New("no selection")

	// ErrNoTextLeaf indicates an inserted element contains no text leaf to
	// place the caret in.
	ErrNoTextLeaf = errors.New("element has no text leaf")
)
