package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"github.com/jenkinchris11/comp250-bot/config"
	"github.com/jenkinchris11/comp250-bot/decisionlog"
	"github.com/jenkinchris11/comp250-bot/ipc"
	"github.com/jenkinchris11/comp250-bot/model"
	"github.com/jenkinchris11/comp250-bot/rules"
)

// Options tune an Agent. The zero value uses the default pathfinding and
// keeps no journal.
type Options struct {
	PathFinding string
	Journal     *decisionlog.Journal
}

// Agent owns the decision-making for a single player session.
type Agent struct {
	Conn        *ipc.Connection
	PathFinding string
	Engine      *rules.Engine
	Journal     *decisionlog.Journal

	mu     sync.Mutex
	player int
	width  int
	height int
}

// New resolves the Worker and Base types from tbl and compiles the default
// rules. A missing table or type is an error here, never during a tick.
func New(conn *ipc.Connection, tbl *model.UnitTypeTable, opts Options) (*Agent, error) {
	types, err := rules.ResolveTypes(tbl)
	if err != nil {
		return nil, fmt.Errorf("resolve unit types: %w", err)
	}
	engine, err := rules.NewEngine(rules.DefaultRules(), types)
	if err != nil {
		return nil, err
	}

	pf := opts.PathFinding
	if pf == "" {
		pf = config.DefaultPathFinding
	}
	if !config.ValidPathFinding(pf) {
		return nil, fmt.Errorf("unknown pathfinding %q", pf)
	}

	return &Agent{
		Conn:        conn,
		PathFinding: pf,
		Engine:      engine,
		Journal:     opts.Journal,
		player:      model.NoPlayer,
	}, nil
}

// Reset swaps in a new unit type table, e.g. when the host changes
// rulesets. The old handles stay in place if tbl can't be resolved.
func (a *Agent) Reset(tbl *model.UnitTypeTable) error {
	types, err := rules.ResolveTypes(tbl)
	if err != nil {
		return fmt.Errorf("reset unit types: %w", err)
	}
	return a.Engine.SetTypes(types)
}

// Player is the index the host assigned in its hello, or model.NoPlayer.
func (a *Agent) Player() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.player
}

// Decide runs one tick for player. It never fails: a snapshot the engine
// can't work with yields an empty batch.
func (a *Agent) Decide(player int, gs model.GameState) *rules.Batch {
	batch := rules.NewBatch(gs.Tick, player)
	if err := a.Engine.Evaluate(gs, player, batch); err != nil {
		slog.Warn("decision skipped", "tick", gs.Tick, "player", player, "error", err)
		return batch
	}

	p, _ := gs.Player(player)
	idle := a.idleUnits(gs, p)
	slog.Info("tick decided",
		"tick", gs.Tick,
		"player", player,
		"resources", p.Resources,
		"idle", idle,
		"commands", batch.Counts(),
	)
	return batch
}

func (a *Agent) idleUnits(gs model.GameState, p model.Player) int {
	env := rules.RuleEnv{State: gs, Player: p, Types: a.Engine.Types(), Assigned: gs.Assigned()}
	return env.IdleUnits()
}

// HandleHello completes the handshake so the host knows the bot is ready.
func (a *Agent) HandleHello(env ipc.Envelope) (*ipc.Envelope, error) {
	var hello ipc.HelloMessage
	if err := json.Unmarshal(env.Data, &hello); err != nil {
		return nil, fmt.Errorf("unmarshal hello: %w", err)
	}

	if len(hello.UnitTypes) > 0 {
		tbl, err := model.NewUnitTypeTable(hello.UnitTypes)
		if err != nil {
			return nil, fmt.Errorf("hello unit types: %w", err)
		}
		if err := a.Reset(tbl); err != nil {
			return nil, err
		}
	}

	a.mu.Lock()
	a.player = hello.Player
	a.width = hello.Width
	a.height = hello.Height
	a.mu.Unlock()
	if a.Conn != nil {
		a.Conn.Player = strconv.Itoa(hello.Player)
	}
	slog.Info("player identified", "player", hello.Player, "width", hello.Width, "height", hello.Height, "pathfinding", a.PathFinding)

	ack, err := ipc.NewEnvelope(ipc.TypeAck, ipc.AckMessage{Status: "ok"})
	if err != nil {
		return nil, err
	}
	return &ack, nil
}

// HandleGameState decides the tick and replies with the command batch.
func (a *Agent) HandleGameState(env ipc.Envelope) (*ipc.Envelope, error) {
	var gs model.GameState
	if err := json.Unmarshal(env.Data, &gs); err != nil {
		return nil, fmt.Errorf("unmarshal GameState: %w", err)
	}

	a.mu.Lock()
	player := a.player
	if gs.Width == 0 && gs.Height == 0 {
		gs.Width, gs.Height = a.width, a.height
	}
	a.mu.Unlock()
	if player == model.NoPlayer {
		return nil, fmt.Errorf("game_state for tick %d before hello", gs.Tick)
	}

	batch := a.Decide(player, gs)
	commands := batch.Commands()

	if a.Journal != nil {
		p, _ := gs.Player(player)
		err := a.Journal.Record(context.Background(), decisionlog.Entry{
			Tick:      gs.Tick,
			Player:    player,
			Resources: p.Resources,
			IdleUnits: a.idleUnits(gs, p),
			Commands:  commands,
		})
		if err != nil {
			slog.Warn("journal write failed", "tick", gs.Tick, "error", err)
		}
	}

	reply, err := ipc.NewEnvelope(ipc.TypeCommands, ipc.CommandsMessage{
		Tick:        gs.Tick,
		Player:      player,
		PathFinding: a.PathFinding,
		Commands:    commands,
	})
	if err != nil {
		return nil, err
	}
	return &reply, nil
}

// Close flushes the journal.
func (a *Agent) Close() error {
	if a.Journal == nil {
		return nil
	}
	return a.Journal.Close()
}
