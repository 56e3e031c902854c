package config

import (
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Pathfinding strategies the host's translation layer understands.
const (
	PathFindingAStar     = "astar"
	PathFindingBFS       = "bfs"
	PathFindingGreedy    = "greedy"
	PathFindingFloodFill = "flood-fill"

	DefaultPathFinding = PathFindingAStar
)

var PathFindings = []string{PathFindingAStar, PathFindingBFS, PathFindingGreedy, PathFindingFloodFill}

// Config holds process settings. Only PathFinding reaches the decision
// output; the rest is plumbing.
type Config struct {
	Socket         string `yaml:"socket"`
	LogLevel       string `yaml:"log_level"`
	PathFinding    string `yaml:"pathfinding"`
	UnitTypes      string `yaml:"unit_types"`       // optional YAML unit type table
	DecisionLogDir string `yaml:"decision_log_dir"` // optional compressed decision journal
	StatsDB        string `yaml:"stats_db"`         // optional SQLite per-tick stats
}

func Default() Config {
	return Config{
		Socket:      "/tmp/comp250-bot.sock",
		LogLevel:    "info",
		PathFinding: DefaultPathFinding,
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return c, fmt.Errorf("%s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func (c Config) Validate() error {
	if !ValidPathFinding(c.PathFinding) {
		return fmt.Errorf("unknown pathfinding %q (want one of %s)", c.PathFinding, strings.Join(PathFindings, ", "))
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.Socket == "" {
		return fmt.Errorf("socket path is empty")
	}
	return nil
}

func ValidPathFinding(name string) bool {
	return slices.Contains(PathFindings, name)
}

func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}
