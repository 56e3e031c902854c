package rules

import (
	"log/slog"

	"github.com/jenkinchris11/comp250-bot/model"
)

// Issuer receives the abstract commands decided for a tick. The host's
// translation layer sits behind it.
type Issuer interface {
	Issue(unitID int, cmd model.Command)
}

// Batch collects one tick's commands. A unit gets at most one command per
// tick; later issues for the same unit are dropped.
type Batch struct {
	Tick     int
	Player   int
	commands []model.UnitCommand
	issued   map[int]bool
}

func NewBatch(tick, player int) *Batch {
	return &Batch{Tick: tick, Player: player, issued: make(map[int]bool)}
}

func (b *Batch) Issue(unitID int, cmd model.Command) {
	if b.issued[unitID] {
		slog.Debug("dropping second command for unit", "unit", unitID, "command", cmd.String())
		return
	}
	b.issued[unitID] = true
	b.commands = append(b.commands, model.UnitCommand{UnitID: unitID, Command: cmd})
	slog.Debug("command issued", "unit", unitID, "command", cmd.String())
}

// Commands returns the issued commands in issue order.
func (b *Batch) Commands() []model.UnitCommand {
	out := make([]model.UnitCommand, len(b.commands))
	copy(out, b.commands)
	return out
}

func (b *Batch) Len() int { return len(b.commands) }

// Counts tallies issued commands by kind.
func (b *Batch) Counts() map[model.CommandKind]int {
	c := make(map[model.CommandKind]int)
	for _, uc := range b.commands {
		c[uc.Command.Kind]++
	}
	return c
}
