package rules

import (
	"errors"
	"testing"

	"github.com/jenkinchris11/comp250-bot/model"
)

func testTypes(t *testing.T) Types {
	t.Helper()
	types, err := ResolveTypes(model.DefaultUnitTypeTable())
	if err != nil {
		t.Fatalf("ResolveTypes: %v", err)
	}
	return types
}

func evaluate(t *testing.T, gs model.GameState, player int) *Batch {
	t.Helper()
	engine, err := NewEngine(DefaultRules(), testTypes(t))
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	b := NewBatch(gs.Tick, player)
	if err := engine.Evaluate(gs, player, b); err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	return b
}

func commandFor(b *Batch, unitID int) (model.Command, bool) {
	for _, uc := range b.Commands() {
		if uc.UnitID == unitID {
			return uc.Command, true
		}
	}
	return model.Command{}, false
}

func TestDefaultRulesCompile(t *testing.T) {
	engine, err := NewEngine(DefaultRules(), testTypes(t))
	if err != nil {
		t.Fatalf("NewEngine(DefaultRules()) failed: %v", err)
	}
	want := []string{"train-workers", "attack-nearest", "manage-workers"}
	got := engine.RuleNames()
	if len(got) != len(want) {
		t.Fatalf("expected %d rules, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("rule %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestNewEngineRejectsBadCondition(t *testing.T) {
	_, err := NewEngine([]*Rule{{Name: "broken", ConditionSrc: `NoSuchHelper() > 1`}}, testTypes(t))
	if err == nil {
		t.Fatal("expected compile error")
	}
}

func TestNewEngineRequiresTypes(t *testing.T) {
	_, err := NewEngine(DefaultRules(), Types{})
	if !errors.Is(err, model.ErrNoUnitTypes) {
		t.Errorf("expected ErrNoUnitTypes, got %v", err)
	}
}

func TestResolveTypesMissingWorker(t *testing.T) {
	tbl, err := model.NewUnitTypeTable([]model.UnitType{{Name: "Base", Cost: 10}})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ResolveTypes(tbl); !errors.Is(err, model.ErrUnknownUnitType) {
		t.Errorf("expected ErrUnknownUnitType, got %v", err)
	}
	if _, err := ResolveTypes(nil); !errors.Is(err, model.ErrNoUnitTypes) {
		t.Errorf("expected ErrNoUnitTypes, got %v", err)
	}
}

func TestEvaluateUnknownPlayer(t *testing.T) {
	engine, err := NewEngine(DefaultRules(), testTypes(t))
	if err != nil {
		t.Fatal(err)
	}
	gs := model.GameState{Players: []model.Player{{ID: 0}}}
	if err := engine.Evaluate(gs, 3, NewBatch(0, 3)); err == nil {
		t.Error("expected error for missing player")
	}
}

func TestSetTypesRefreshesCosts(t *testing.T) {
	engine, err := NewEngine(DefaultRules(), testTypes(t))
	if err != nil {
		t.Fatal(err)
	}
	gs := model.GameState{
		Players: []model.Player{{ID: 0, Resources: 3}},
		Units:   []model.Unit{{ID: 1, Type: "Base", Player: 0}},
	}

	b := NewBatch(0, 0)
	_ = engine.Evaluate(gs, 0, b)
	if b.Len() != 1 {
		t.Fatalf("expected train with default costs, got %d commands", b.Len())
	}

	pricey, err := model.NewUnitTypeTable([]model.UnitType{
		{Name: "Worker", Cost: 5, CanHarvest: true, CanAttack: true},
		{Name: "Base", Cost: 10, IsStockpile: true},
	})
	if err != nil {
		t.Fatal(err)
	}
	types, err := ResolveTypes(pricey)
	if err != nil {
		t.Fatal(err)
	}
	if err := engine.SetTypes(types); err != nil {
		t.Fatal(err)
	}

	b = NewBatch(0, 0)
	_ = engine.Evaluate(gs, 0, b)
	if b.Len() != 0 {
		t.Errorf("expected no train after worker cost rose to 5, got %v", b.Commands())
	}
}
