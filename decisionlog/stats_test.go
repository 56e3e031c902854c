package decisionlog

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jenkinchris11/comp250-bot/model"
)

func openTestDB(t *testing.T) *StatsDB {
	t.Helper()
	db, err := OpenStatsDB(filepath.Join(t.TempDir(), "stats", "decisions.db"))
	if err != nil {
		t.Fatalf("OpenStatsDB: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestOpenStatsDBRequiresPath(t *testing.T) {
	if _, err := OpenStatsDB(""); err == nil {
		t.Error("expected error for empty path")
	}
}

func TestRecordTickTotals(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	rows := []TickStats{
		{Session: "a", Tick: 1, Counts: map[model.CommandKind]int{model.CommandTrain: 1, model.CommandHarvest: 1}},
		{Session: "a", Tick: 2, Counts: map[model.CommandKind]int{model.CommandAttack: 3}},
		{Session: "b", Tick: 1, Counts: map[model.CommandKind]int{model.CommandBuild: 1}},
	}
	for _, r := range rows {
		if err := db.RecordTick(ctx, r); err != nil {
			t.Fatalf("RecordTick: %v", err)
		}
	}

	totals, err := db.SessionTotals(ctx, "a")
	if err != nil {
		t.Fatal(err)
	}
	want := map[model.CommandKind]int{
		model.CommandTrain:   1,
		model.CommandAttack:  3,
		model.CommandHarvest: 1,
		model.CommandBuild:   0,
	}
	for k, v := range want {
		if totals[k] != v {
			t.Errorf("%s = %d, want %d", k, totals[k], v)
		}
	}
}

func TestRecordTickReplacesResentTick(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	_ = db.RecordTick(ctx, TickStats{Session: "s", Tick: 5, Counts: map[model.CommandKind]int{model.CommandAttack: 2}})
	_ = db.RecordTick(ctx, TickStats{Session: "s", Tick: 5, Counts: map[model.CommandKind]int{model.CommandAttack: 1}})

	totals, err := db.SessionTotals(ctx, "s")
	if err != nil {
		t.Fatal(err)
	}
	if totals[model.CommandAttack] != 1 {
		t.Errorf("attack = %d, want 1", totals[model.CommandAttack])
	}
}

func TestSessionTotalsEmpty(t *testing.T) {
	db := openTestDB(t)
	totals, err := db.SessionTotals(context.Background(), "missing")
	if err != nil {
		t.Fatal(err)
	}
	for k, v := range totals {
		if v != 0 {
			t.Errorf("%s = %d, want 0", k, v)
		}
	}
}
