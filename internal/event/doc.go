// Package event defines the discrete signals the view layer feeds the
// engine and the per-session dispatcher that routes them.
//
// All bookkeeping that is global in a typical view integration (active
// composition, drag state, focus) lives on the Session as explicit
// state passed into each handler, never as hidden package variables.
// Dispatch recovers from handler panics so one bad signal cannot take
// the host down. Dispatch is strictly synchronous and ordered: each
// signal is handled exactly once, and a later command must observe the
// fully normalized result of the one before it.
package event
