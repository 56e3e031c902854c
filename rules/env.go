package rules

import (
	"github.com/jenkinchris11/comp250-bot/model"
)

// RuleEnv wraps one tick's snapshot from the controlling player's point of
// view and exposes helper methods callable from expr expressions.
type RuleEnv struct {
	State    model.GameState
	Player   model.Player
	Types    Types
	Assigned model.Assignments
	Grid     *model.UnitGrid // nil for small snapshots
}

// IsIdle reports whether the unit has no in-flight command.
func (e RuleEnv) IsIdle(id int) bool {
	_, busy := e.Assigned.CurrentCommand(id)
	return !busy
}

func (e RuleEnv) Resources() int  { return e.Player.Resources }
func (e RuleEnv) WorkerCost() int { return e.Types.Worker.Cost }
func (e RuleEnv) BaseCost() int   { return e.Types.Base.Cost }

func (e RuleEnv) owned(u model.Unit) bool { return u.Player == e.Player.ID }

// BaseCount counts bases owned by the player.
func (e RuleEnv) BaseCount() int {
	return countType(e.OwnedUnits(), e.Types.Base.Name)
}

func (e RuleEnv) OwnedUnits() []model.Unit {
	var out []model.Unit
	for _, u := range e.State.Units {
		if e.owned(u) {
			out = append(out, u)
		}
	}
	return out
}

// IdleBases returns owned, idle bases.
func (e RuleEnv) IdleBases() []model.Unit {
	var out []model.Unit
	for _, u := range e.State.Units {
		if e.owned(u) && e.Types.isBase(u) && e.IsIdle(u.ID) {
			out = append(out, u)
		}
	}
	return out
}

// IdleFighters returns owned, idle units that can attack but not harvest.
func (e RuleEnv) IdleFighters() []model.Unit {
	var out []model.Unit
	for _, u := range e.State.Units {
		ut := e.Types.Of(u)
		if e.owned(u) && ut.CanAttack && !ut.CanHarvest && e.IsIdle(u.ID) {
			out = append(out, u)
		}
	}
	return out
}

// Workers returns every owned unit that can harvest, busy or not.
func (e RuleEnv) Workers() []model.Unit {
	var out []model.Unit
	for _, u := range e.State.Units {
		if e.owned(u) && e.Types.Of(u).CanHarvest {
			out = append(out, u)
		}
	}
	return out
}

// FreeWorkers returns the workers available for economy roles: idle ones
// and ones already harvesting or building. Anything else is committed.
func (e RuleEnv) FreeWorkers() []model.Unit {
	var out []model.Unit
	for _, u := range e.Workers() {
		cur, busy := e.Assigned.CurrentCommand(u.ID)
		if !busy || cur.Kind == model.CommandHarvest || cur.Kind == model.CommandBuild {
			out = append(out, u)
		}
	}
	return out
}

// IdleUnits counts owned units with no in-flight command.
func (e RuleEnv) IdleUnits() int {
	n := 0
	for _, u := range e.OwnedUnits() {
		if e.IsIdle(u.ID) {
			n++
		}
	}
	return n
}

func (e RuleEnv) HostileCount() int {
	n := 0
	for _, u := range e.State.Units {
		if e.isHostile(u) {
			n++
		}
	}
	return n
}

func (e RuleEnv) ResourceCount() int {
	n := 0
	for _, u := range e.State.Units {
		if e.isResource(u) {
			n++
		}
	}
	return n
}

func (e RuleEnv) StockpileCount() int {
	n := 0
	for _, u := range e.State.Units {
		if e.isStockpile(u) {
			n++
		}
	}
	return n
}

// isHostile excludes neutral units: their owner is model.NoPlayer.
func (e RuleEnv) isHostile(u model.Unit) bool {
	return u.Player >= 0 && u.Player != e.Player.ID
}

func (e RuleEnv) isResource(u model.Unit) bool {
	return e.Types.Of(u).IsResource
}

func (e RuleEnv) isStockpile(u model.Unit) bool {
	return e.owned(u) && e.Types.Of(u).IsStockpile
}

// nearest finds the matching unit closest to from. Ties go to the unit
// that comes first in the snapshot.
func (e RuleEnv) nearest(from model.Unit, match func(model.Unit) bool) (model.Unit, bool) {
	if e.Grid != nil {
		return e.Grid.Nearest(from.X, from.Y, match)
	}
	return model.NearestUnit(e.State.Units, from.X, from.Y, match)
}

// occupied reports whether a unit other than except stands on (x, y).
func (e RuleEnv) occupied(x, y, except int) bool {
	for _, u := range e.State.Units {
		if u.X == x && u.Y == y && u.ID != except {
			return true
		}
	}
	return false
}

func (e RuleEnv) inBounds(x, y int) bool {
	if x < 0 || y < 0 {
		return false
	}
	// Zero dimensions mean the host did not report the map size.
	if e.State.Width > 0 && x >= e.State.Width {
		return false
	}
	if e.State.Height > 0 && y >= e.State.Height {
		return false
	}
	return true
}
