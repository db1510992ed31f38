// Package normalize restores structural invariants after a command
// batch: every non-void element keeps at least one text leaf, void
// elements hold exactly one empty text leaf, adjacent text leaves with
// identical formatting merge, and inline elements always have text
// siblings around them. After the structural rules, pluggable schema
// rules run and their repairs are applied the same way.
//
// The pass emits ordinary operations through a command.Builder and
// iterates to a fixpoint, so running it twice in a row is a no-op.
package normalize
