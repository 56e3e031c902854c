package ipc

import "github.com/jenkinchris11/comp250-bot/model"

// CommandsMessage answers a game_state with the tick's abstract commands.
// PathFinding names the strategy the host's translation layer should use to
// turn them into movement.
type CommandsMessage struct {
	Tick        int                 `json:"tick"`
	Player      int                 `json:"player"`
	PathFinding string              `json:"pathfinding"`
	Commands    []model.UnitCommand `json:"commands"`
}
