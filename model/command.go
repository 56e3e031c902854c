package model

import "fmt"

// CommandKind tags an abstract command. Values must stay in sync with the
// host's translation layer.
type CommandKind string

const (
	CommandTrain   CommandKind = "train"
	CommandAttack  CommandKind = "attack"
	CommandHarvest CommandKind = "harvest"
	CommandBuild   CommandKind = "build"
)

// Command is a high-level intent for one unit. The host turns it into
// pathfinding and per-tick primitive actions.
type Command struct {
	Kind     CommandKind `json:"kind"`
	UnitType string      `json:"unit_type,omitempty"` // train, build
	TargetID int         `json:"target_id"`           // attack target or harvested deposit
	BaseID   int         `json:"base_id"`             // harvest drop-off
	X        int         `json:"x"`                   // build site
	Y        int         `json:"y"`
}

func Train(unitType string) Command {
	return Command{Kind: CommandTrain, UnitType: unitType}
}

func Attack(target int) Command {
	return Command{Kind: CommandAttack, TargetID: target}
}

func Harvest(resource, base int) Command {
	return Command{Kind: CommandHarvest, TargetID: resource, BaseID: base}
}

func Build(unitType string, x, y int) Command {
	return Command{Kind: CommandBuild, UnitType: unitType, X: x, Y: y}
}

func (c Command) String() string {
	switch c.Kind {
	case CommandTrain:
		return fmt.Sprintf("train(%s)", c.UnitType)
	case CommandAttack:
		return fmt.Sprintf("attack(%d)", c.TargetID)
	case CommandHarvest:
		return fmt.Sprintf("harvest(%d->%d)", c.TargetID, c.BaseID)
	case CommandBuild:
		return fmt.Sprintf("build(%s@%d,%d)", c.UnitType, c.X, c.Y)
	}
	return string(c.Kind)
}

// UnitCommand pairs a command with the unit that should execute it.
type UnitCommand struct {
	UnitID  int     `json:"unit_id"`
	Command Command `json:"command"`
}
