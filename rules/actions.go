package rules

import (
	"log/slog"

	"github.com/jenkinchris11/comp250-bot/model"
)

// ActionTrainWorkers starts a worker on every idle base while the player can
// afford one. Each base checks the full stock; the engine rejects whatever
// the player cannot actually pay for.
func ActionTrainWorkers(env RuleEnv, out Issuer) error {
	for _, u := range env.IdleBases() {
		if env.Resources() < env.WorkerCost() {
			return nil
		}
		out.Issue(u.ID, model.Train(env.Types.Worker.Name))
	}
	return nil
}

// ActionAttackNearest sends every idle dedicated fighter at the closest
// hostile unit.
func ActionAttackNearest(env RuleEnv, out Issuer) error {
	for _, u := range env.IdleFighters() {
		attackNearest(env, u, out)
	}
	return nil
}

// ActionManageWorkers assigns worker roles for the tick: at most one builder
// while the player has no base, exactly one harvester, and every remaining
// idle worker joins the fight.
func ActionManageWorkers(env RuleEnv, out Issuer) error {
	if len(env.Workers()) == 0 {
		return nil
	}
	free := env.FreeWorkers()

	// Resources committed this tick. Never written back; the engine owns
	// the real accounting.
	reserved := 0
	sites := make(map[int]bool)

	var spent int
	free, spent = planBase(env, free, reserved, sites, out)
	reserved += spent

	if len(free) == 0 {
		return nil
	}
	harvester := free[0]
	harvestNearest(env, harvester, out)

	for _, u := range free[1:] {
		if env.IsIdle(u.ID) {
			attackNearest(env, u, out)
		}
	}

	slog.Debug("workers assigned",
		"workers", len(env.Workers()),
		"free", len(free),
		"harvester", harvester.ID,
		"reserved", reserved,
	)
	return nil
}

func attackNearest(env RuleEnv, u model.Unit, out Issuer) {
	target, ok := env.nearest(u, env.isHostile)
	if !ok {
		slog.Debug("no hostile unit to attack", "unit", u.ID)
		return
	}
	out.Issue(u.ID, model.Attack(target.ID))
}

// harvestNearest keeps the harvester on the closest deposit and the closest
// owned stockpile. A running harvest with the same targets is left alone.
func harvestNearest(env RuleEnv, w model.Unit, out Issuer) {
	resource, ok := env.nearest(w, env.isResource)
	if !ok {
		slog.Debug("no resource to harvest", "unit", w.ID)
		return
	}
	base, ok := env.nearest(w, env.isStockpile)
	if !ok {
		slog.Debug("no stockpile to deliver to", "unit", w.ID)
		return
	}
	if cur, ok := env.Assigned.CurrentCommand(w.ID); ok && cur.Kind == model.CommandHarvest &&
		cur.TargetID == resource.ID && cur.BaseID == base.ID {
		return
	}
	out.Issue(w.ID, model.Harvest(resource.ID, base.ID))
}

// planBase pulls a builder out of free while the player has no base and
// can pay for one. It returns the remaining free workers and the stock
// committed by a newly issued Build.
func planBase(env RuleEnv, free []model.Unit, reserved int, sites map[int]bool, out Issuer) ([]model.Unit, int) {
	if env.BaseCount() > 0 || len(free) == 0 || env.Resources() < env.BaseCost()+reserved {
		return free, 0
	}
	builder, rest := popBuilder(env, free)
	if !buildIfNotAlreadyBuilding(env, builder, env.Types.Base, sites, out) {
		return rest, 0
	}
	return rest, env.BaseCost()
}

// popBuilder takes the builder out of the free list. A worker already
// building is kept on the job; otherwise the first free worker goes.
func popBuilder(env RuleEnv, free []model.Unit) (model.Unit, []model.Unit) {
	pick := 0
	for i, u := range free {
		if cur, ok := env.Assigned.CurrentCommand(u.ID); ok && cur.Kind == model.CommandBuild {
			pick = i
			break
		}
	}
	builder := free[pick]
	rest := make([]model.Unit, 0, len(free)-1)
	rest = append(rest, free[:pick]...)
	rest = append(rest, free[pick+1:]...)
	return builder, rest
}

// buildIfNotAlreadyBuilding orders u to build ut on its own tile, unless it
// is already building that type. sites holds tiles claimed this tick, keyed
// by y*width+x. Reports whether a Build was issued.
func buildIfNotAlreadyBuilding(env RuleEnv, u model.Unit, ut model.UnitType, sites map[int]bool, out Issuer) bool {
	if cur, ok := env.Assigned.CurrentCommand(u.ID); ok && cur.Kind == model.CommandBuild &&
		cur.UnitType == ut.Name {
		return false
	}
	x, y, ok := findBuildPosition(env, u, u.X, u.Y, sites)
	if !ok {
		slog.Debug("no free tile to build on", "unit", u.ID, "type", ut.Name)
		return false
	}
	sites[siteKey(env, x, y)] = true
	out.Issue(u.ID, model.Build(ut.Name, x, y))
	return true
}

// findBuildPosition returns the desired tile when it is free, otherwise the
// closest free tile by Manhattan rings. The builder's own tile counts as free.
func findBuildPosition(env RuleEnv, builder model.Unit, x, y int, sites map[int]bool) (int, int, bool) {
	free := func(px, py int) bool {
		return env.inBounds(px, py) && !sites[siteKey(env, px, py)] && !env.occupied(px, py, builder.ID)
	}
	if free(x, y) {
		return x, y, true
	}

	limit := env.State.Width + env.State.Height
	if limit == 0 {
		limit = 2 * len(env.State.Units)
	}
	for r := 1; r <= limit; r++ {
		for dx := -r; dx <= r; dx++ {
			dy := r - abs(dx)
			if free(x+dx, y-dy) {
				return x + dx, y - dy, true
			}
			if dy != 0 && free(x+dx, y+dy) {
				return x + dx, y + dy, true
			}
		}
	}
	return 0, 0, false
}

func siteKey(env RuleEnv, x, y int) int {
	w := env.State.Width
	if w <= 0 {
		w = 1 << 16
	}
	return y*w + x
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
