package rules

// Rule priorities. They fix the per-tick order: production, then dedicated
// combat units, then workers.
const (
	PriorityProduction = 300
	PriorityCombat     = 200
	PriorityEconomy    = 100
)

// DefaultRules returns the worker-rush rule set. Conditions are cheap gates;
// the actions re-check every unit they touch.
func DefaultRules() []*Rule {
	return []*Rule{
		{
			Name:         "train-workers",
			Priority:     PriorityProduction,
			Category:     "production",
			ConditionSrc: `len(IdleBases()) > 0 && Resources() >= WorkerCost()`,
			Action:       ActionTrainWorkers,
		},
		{
			Name:         "attack-nearest",
			Priority:     PriorityCombat,
			Category:     "combat",
			ConditionSrc: `len(IdleFighters()) > 0 && HostileCount() > 0`,
			Action:       ActionAttackNearest,
		},
		{
			Name:         "manage-workers",
			Priority:     PriorityEconomy,
			Category:     "economy",
			ConditionSrc: `len(Workers()) > 0`,
			Action:       ActionManageWorkers,
		},
	}
}
