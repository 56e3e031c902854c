package ipc

import "github.com/jenkinchris11/comp250-bot/model"

// These constants must stay in sync with the host's message types.
const (
	TypeHello     = "hello"
	TypeAck       = "ack"
	TypeGameState = "game_state"
	TypeCommands  = "commands"
)

// HelloMessage opens a session. UnitTypes is optional; when absent the
// bot keeps the table it was started with.
type HelloMessage struct {
	Player    int              `json:"player"`
	Width     int              `json:"width"`
	Height    int              `json:"height"`
	UnitTypes []model.UnitType `json:"unit_types,omitempty"`
}

type AckMessage struct {
	Status string `json:"status"`
}
