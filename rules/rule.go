package rules

import (
	"github.com/expr-lang/expr/vm"
)

// ActionFunc issues commands for the units a rule is responsible for.
type ActionFunc func(env RuleEnv, out Issuer) error

// Rule is the atomic unit of AI behavior: a condition → action pair.
// The engine evaluates rules by priority, so priority also fixes the
// order in which managers claim units within a tick.
type Rule struct {
	Name         string      // human-readable identifier
	Priority     int         // higher = evaluated first
	Category     string      // manager the rule belongs to, for logging
	ConditionSrc string      // expr source (preserved for serialization)
	program      *vm.Program // compiled bytecode
	Action       ActionFunc
}
