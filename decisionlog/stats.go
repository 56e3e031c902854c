package decisionlog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/jenkinchris11/comp250-bot/model"
)

// StatsDB indexes per-tick command counts so matches can be compared after
// the fact. Safe for use by several sessions at once.
type StatsDB struct {
	db *sql.DB
}

// TickStats is one row of the decisions table.
type TickStats struct {
	Session   string
	Tick      int
	Player    int
	Resources int
	IdleUnits int
	Counts    map[model.CommandKind]int
}

func OpenStatsDB(path string) (*StatsDB, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &StatsDB{db: db}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS decisions (
			session TEXT NOT NULL,
			tick INTEGER NOT NULL,
			player INTEGER NOT NULL,
			resources INTEGER NOT NULL,
			idle_units INTEGER NOT NULL,
			train INTEGER NOT NULL,
			attack INTEGER NOT NULL,
			harvest INTEGER NOT NULL,
			build INTEGER NOT NULL,
			PRIMARY KEY (session, tick, player)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_decisions_session ON decisions(session, tick);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

// RecordTick upserts a tick's counts. Hosts may resend a tick after a
// hiccup; the last decision wins.
func (s *StatsDB) RecordTick(ctx context.Context, ts TickStats) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO decisions
			(session, tick, player, resources, idle_units, train, attack, harvest, build)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ts.Session, ts.Tick, ts.Player, ts.Resources, ts.IdleUnits,
		ts.Counts[model.CommandTrain],
		ts.Counts[model.CommandAttack],
		ts.Counts[model.CommandHarvest],
		ts.Counts[model.CommandBuild],
	)
	if err != nil {
		return fmt.Errorf("record tick %d: %w", ts.Tick, err)
	}
	return nil
}

// SessionTotals sums command counts over a session.
func (s *StatsDB) SessionTotals(ctx context.Context, session string) (map[model.CommandKind]int, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(train),0), COALESCE(SUM(attack),0), COALESCE(SUM(harvest),0), COALESCE(SUM(build),0)
			FROM decisions WHERE session = ?`, session)
	var train, attack, harvest, build int
	if err := row.Scan(&train, &attack, &harvest, &build); err != nil {
		return nil, fmt.Errorf("session totals: %w", err)
	}
	return map[model.CommandKind]int{
		model.CommandTrain:   train,
		model.CommandAttack:  attack,
		model.CommandHarvest: harvest,
		model.CommandBuild:   build,
	}, nil
}

func (s *StatsDB) Close() error {
	return s.db.Close()
}
