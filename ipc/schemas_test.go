package ipc_test

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/jenkinchris11/comp250-bot/ipc"
	"github.com/jenkinchris11/comp250-bot/model"
)

func compileSchema(t *testing.T, name string) *jsonschema.Schema {
	t.Helper()
	p := filepath.Join("..", "schemas", name)
	s, err := jsonschema.Compile(p)
	if err != nil {
		t.Fatalf("compile %s: %v", name, err)
	}
	return s
}

// asJSON round-trips v through encoding/json so the validator sees plain
// decoded values.
func asJSON(t *testing.T, v any) any {
	t.Helper()
	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatal(err)
	}
	return out
}

func TestSchemas_ValidateSamples(t *testing.T) {
	helloSchema := compileSchema(t, "hello.schema.json")
	stateSchema := compileSchema(t, "game_state.schema.json")

	var hello any
	_ = json.Unmarshal([]byte(`{
	  "type":"hello",
	  "data":{"player":0,"width":8,"height":8,
	    "unit_types":[{"name":"Worker","cost":1,"can_harvest":true},{"name":"Base","cost":10}]}
	}`), &hello)
	if err := helloSchema.Validate(hello); err != nil {
		t.Errorf("hello: %v", err)
	}

	var state any
	_ = json.Unmarshal([]byte(`{
	  "type":"game_state",
	  "data":{
	    "tick":40,"width":8,"height":8,
	    "players":[{"id":0,"resources":5},{"id":1,"resources":3}],
	    "units":[
	      {"id":1,"type":"Base","player":0,"x":1,"y":1,"hp":10,"resources":0},
	      {"id":2,"type":"Worker","player":0,"x":2,"y":1,"hp":1,"resources":1},
	      {"id":3,"type":"Resource","player":-1,"x":0,"y":0,"hp":1,"resources":20}
	    ],
	    "assignments":[
	      {"unit_id":2,"command":{"kind":"harvest","target_id":3,"base_id":1,"x":0,"y":0}}
	    ]
	  }
	}`), &state)
	if err := stateSchema.Validate(state); err != nil {
		t.Errorf("game_state: %v", err)
	}
}

func TestSchemas_RejectNeutralBelowSentinel(t *testing.T) {
	stateSchema := compileSchema(t, "game_state.schema.json")
	var state any
	_ = json.Unmarshal([]byte(`{
	  "type":"game_state",
	  "data":{"tick":1,"players":[],"units":[{"id":1,"type":"Resource","player":-2,"x":0,"y":0}]}
	}`), &state)
	if err := stateSchema.Validate(state); err == nil {
		t.Error("expected owner below -1 to be rejected")
	}
}

func TestSchemas_GameStateModelConforms(t *testing.T) {
	stateSchema := compileSchema(t, "game_state.schema.json")
	gs := model.GameState{
		Tick: 3, Width: 4, Height: 4,
		Players: []model.Player{{ID: 0, Resources: 2}},
		Units: []model.Unit{
			{ID: 1, Type: "Worker", Player: 0, X: 1, Y: 2},
			{ID: 2, Type: "Resource", Player: model.NoPlayer, X: 3, Y: 3, Resources: 10},
		},
		Assignments: []model.Assignment{{UnitID: 1, Command: model.Build("Base", 1, 2)}},
	}
	env, err := ipc.NewEnvelope(ipc.TypeGameState, gs)
	if err != nil {
		t.Fatal(err)
	}
	if err := stateSchema.Validate(asJSON(t, env)); err != nil {
		t.Errorf("marshalled GameState: %v", err)
	}
}

func TestSchemas_CommandsMessageConforms(t *testing.T) {
	commandsSchema := compileSchema(t, "commands.schema.json")
	msg := ipc.CommandsMessage{
		Tick:        9,
		Player:      0,
		PathFinding: "astar",
		Commands: []model.UnitCommand{
			{UnitID: 1, Command: model.Train("Worker")},
			{UnitID: 2, Command: model.Attack(7)},
			{UnitID: 3, Command: model.Harvest(4, 1)},
			{UnitID: 5, Command: model.Build("Base", 2, 3)},
		},
	}
	env, err := ipc.NewEnvelope(ipc.TypeCommands, msg)
	if err != nil {
		t.Fatal(err)
	}
	if err := commandsSchema.Validate(asJSON(t, env)); err != nil {
		t.Errorf("commands: %v", err)
	}

	// A train without a unit type is malformed.
	bad := asJSON(t, env).(map[string]any)
	cmds := bad["data"].(map[string]any)["commands"].([]any)
	delete(cmds[0].(map[string]any)["command"].(map[string]any), "unit_type")
	if err := commandsSchema.Validate(bad); err == nil {
		t.Error("expected train without unit_type to be rejected")
	}
}
