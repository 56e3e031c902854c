package decisionlog

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/jenkinchris11/comp250-bot/model"
)

// Entry is one tick's decision as written to the journal.
type Entry struct {
	Session   string              `json:"session"`
	Tick      int                 `json:"tick"`
	Player    int                 `json:"player"`
	Resources int                 `json:"resources"`
	IdleUnits int                 `json:"idle_units"`
	Commands  []model.UnitCommand `json:"commands"`
	At        time.Time           `json:"at"`
}

// Journal records one session's decisions. Either sink may be absent.
type Journal struct {
	Session string
	log     *JSONLZstdWriter
	stats   *StatsDB
}

// NewJournal starts a session with a fresh ID. The compressed log goes to
// dir/<session>.jsonl.zst when dir is set. stats is shared across sessions
// and is not closed by the journal.
func NewJournal(dir string, stats *StatsDB) *Journal {
	j := &Journal{Session: uuid.NewString(), stats: stats}
	if dir != "" {
		j.log = NewJSONLZstdWriter(filepath.Join(dir, j.Session+".jsonl.zst"))
	}
	return j
}

func (j *Journal) Record(ctx context.Context, e Entry) error {
	e.Session = j.Session
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}

	var errs []error
	if j.log != nil {
		errs = append(errs, j.log.Write(e))
	}
	if j.stats != nil {
		counts := make(map[model.CommandKind]int)
		for _, uc := range e.Commands {
			counts[uc.Command.Kind]++
		}
		errs = append(errs, j.stats.RecordTick(ctx, TickStats{
			Session:   j.Session,
			Tick:      e.Tick,
			Player:    e.Player,
			Resources: e.Resources,
			IdleUnits: e.IdleUnits,
			Counts:    counts,
		}))
	}
	return errors.Join(errs...)
}

// LogPath is where the compressed log is written, or "" when disabled.
func (j *Journal) LogPath() string {
	if j.log == nil {
		return ""
	}
	return j.log.Path()
}

func (j *Journal) Close() error {
	if j.log == nil {
		return nil
	}
	return j.log.Close()
}
