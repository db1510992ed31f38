// Package command implements the high-level edits of the engine:
// inserting text and blocks, splitting, deleting ranges, and moving the
// selection. A command reads the current (document, selection) pair and
// emits one or more operations through a Builder.
//
// The Builder applies each operation to a scratch state the moment it is
// emitted, so later operations in the same command are computed against
// the progressively updated tree. A command that fails part-way leaves
// the Builder in an undefined state but the editor untouched: callers
// commit the Builder's result only when the whole command succeeded.
package command
