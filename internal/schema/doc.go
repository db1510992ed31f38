// Package schema defines the pluggable validation predicates the
// normalization pass consults after its structural rules. A Rule judges
// a single node and may request a repair; the engine applies repairs
// through ordinary operations, so schema rules can never bypass the
// operation log.
//
// Rules can be written in Go or scripted in Lua via NewLuaRule.
package schema
