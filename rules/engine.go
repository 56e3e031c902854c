package rules

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/jenkinchris11/comp250-bot/model"
)

const (
	// GridThreshold is the snapshot size at which nearest-unit queries
	// switch from a linear scan to grid buckets.
	GridThreshold = 64
	gridCellSize  = 8
)

// Engine runs compiled rules against game state each tick.
// Rules fire in priority order. The engine keeps no state between ticks
// beyond the resolved unit types.
type Engine struct {
	mu    sync.RWMutex
	rules []*Rule
	types Types
}

// NewEngine compiles all rule conditions into expr bytecode and sorts by priority.
func NewEngine(rules []*Rule, types Types) (*Engine, error) {
	if types.Table == nil {
		return nil, model.ErrNoUnitTypes
	}
	compiled, err := compileRules(rules)
	if err != nil {
		return nil, err
	}
	return &Engine{rules: compiled, types: types}, nil
}

// Evaluate runs all rules for player against the current game state and
// hands the resulting commands to out.
func (e *Engine) Evaluate(gs model.GameState, player int, out Issuer) error {
	e.mu.RLock()
	rules := e.rules
	types := e.types
	e.mu.RUnlock()

	p, ok := gs.Player(player)
	if !ok {
		return fmt.Errorf("player %d not in game state", player)
	}

	env := RuleEnv{State: gs, Player: p, Types: types, Assigned: gs.Assigned()}
	if len(gs.Units) >= GridThreshold {
		env.Grid = model.NewUnitGrid(gs.Units, gridCellSize)
	}

	for _, r := range rules {
		result, err := vm.Run(r.program, env)
		if err != nil {
			slog.Warn("rule condition error", "rule", r.Name, "error", err)
			continue
		}

		match, ok := result.(bool)
		if !ok || !match {
			continue
		}

		slog.Debug("rule fired", "rule", r.Name, "priority", r.Priority, "category", r.Category)

		if err := r.Action(env, out); err != nil {
			slog.Error("rule action error", "rule", r.Name, "error", err)
		}
	}
	return nil
}

// SetTypes replaces the resolved unit types, e.g. after the host switches
// rulesets.
func (e *Engine) SetTypes(t Types) error {
	if t.Table == nil {
		return model.ErrNoUnitTypes
	}
	e.mu.Lock()
	e.types = t
	e.mu.Unlock()
	slog.Info("unit types set", "worker", t.Worker.Name, "workerCost", t.Worker.Cost, "base", t.Base.Name, "baseCost", t.Base.Cost)
	return nil
}

// Types returns the unit types currently in use.
func (e *Engine) Types() Types {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.types
}

// RuleNames lists the active rules in evaluation order.
func (e *Engine) RuleNames() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	names := make([]string, len(e.rules))
	for i, r := range e.rules {
		names[i] = r.Name
	}
	return names
}

func compileRules(rules []*Rule) ([]*Rule, error) {
	for _, r := range rules {
		prog, err := expr.Compile(r.ConditionSrc, expr.Env(RuleEnv{}), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("compile rule %q: %w", r.Name, err)
		}
		r.program = prog
	}
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Priority > rules[j].Priority
	})
	return rules, nil
}
