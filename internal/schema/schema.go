package schema

import "github.com/dshills/inkstorm/internal/engine/node"

// Repair names the corrective action a failing rule requests.
type Repair int

const (
	// RepairNone reports a violation without a fix; the node is left
	// alone.
	RepairNone Repair = iota

	// RepairRemove removes the offending node.
	RepairRemove

	// RepairSetProps patches the offending node's properties.
	RepairSetProps
)

// Result is a rule's verdict on one node.
type Result struct {
	// OK is true when the node passes.
	OK bool

	// Repair is consulted only when OK is false.
	Repair Repair

	// Props carries the patch for RepairSetProps.
	Props map[string]any
}

// Pass is the Result for a valid node.
var Pass = Result{OK: true}

// Rule validates a single node. Implementations must be pure: they see
// one node at a time and must not retain it.
type Rule interface {
	Validate(n node.Node) Result
}

// RuleFunc adapts a function to the Rule interface.
type RuleFunc func(n node.Node) Result

// Validate implements Rule.
func (f RuleFunc) Validate(n node.Node) Result { return f(n) }
