package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/jenkinchris11/comp250-bot/agent"
	"github.com/jenkinchris11/comp250-bot/config"
	"github.com/jenkinchris11/comp250-bot/decisionlog"
	"github.com/jenkinchris11/comp250-bot/ipc"
	"github.com/jenkinchris11/comp250-bot/model"
)

const banner = `
 ___ ___  __  __ ___ ___ ___  ___
/ __/ _ \|  \/  | _ \_  ) __|/ _ \
| (_| (_) | |\/| |  _// /|__ \ (_) |
\___\___/|_|  |_|_| /___|___/\___/

Worker Rush`

func main() {
	configPath := flag.String("config", "", "path to YAML config (defaults when empty)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	level, _ := config.ParseLevel(cfg.LogLevel)
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	fmt.Println(banner)

	slog.Info("starting comp250-bot", "pathfinding", cfg.PathFinding)

	tbl := model.DefaultUnitTypeTable()
	if cfg.UnitTypes != "" {
		tbl, err = model.LoadUnitTypeTable(cfg.UnitTypes)
		if err != nil {
			slog.Error("failed to load unit types", "path", cfg.UnitTypes, "error", err)
			os.Exit(1)
		}
	}
	// Fail before accepting anyone if the table can't drive the managers.
	if _, err := agent.New(nil, tbl, agent.Options{PathFinding: cfg.PathFinding}); err != nil {
		slog.Error("invalid unit types", "error", err)
		os.Exit(1)
	}

	var stats *decisionlog.StatsDB
	if cfg.StatsDB != "" {
		stats, err = decisionlog.OpenStatsDB(cfg.StatsDB)
		if err != nil {
			slog.Error("failed to open stats db", "path", cfg.StatsDB, "error", err)
			os.Exit(1)
		}
		defer stats.Close()
	}

	socketPath := cfg.Socket

	// Unix sockets leave behind a file on unclean shutdown; remove it so we can rebind.
	if err := os.RemoveAll(socketPath); err != nil {
		slog.Error("failed to clean up socket", "path", socketPath, "error", err)
		os.Exit(1)
	}

	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		slog.Error("failed to listen on socket", "path", socketPath, "error", err)
		os.Exit(1)
	}
	defer listener.Close()
	defer os.Remove(socketPath)

	slog.Info("listening on domain socket", "path", socketPath)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &ipc.Server{
		Listener: listener,
		Handle: func(conn net.Conn) {
			handleConn(conn, cfg, tbl, stats)
		},
	}
	// Returns once every session has closed its journal, before stats closes.
	srv.Serve(ctx)
	slog.Info("stopped")
}

func handleConn(conn net.Conn, cfg config.Config, tbl *model.UnitTypeTable, stats *decisionlog.StatsDB) {
	c := ipc.NewConnection(conn, nil)

	opts := agent.Options{PathFinding: cfg.PathFinding}
	if cfg.DecisionLogDir != "" || stats != nil {
		opts.Journal = decisionlog.NewJournal(cfg.DecisionLogDir, stats)
		slog.Info("journaling decisions", "session", opts.Journal.Session, "path", opts.Journal.LogPath())
	}

	a, err := agent.New(c, tbl, opts)
	if err != nil {
		slog.Error("failed to create agent", "error", err)
		_ = conn.Close()
		return
	}
	defer func() {
		if err := a.Close(); err != nil {
			slog.Warn("failed to close journal", "error", err)
		}
	}()

	c.RegisterHandler(ipc.TypeHello, a.HandleHello)
	c.RegisterHandler(ipc.TypeGameState, a.HandleGameState)
	if err := c.ReadLoop(); err != nil {
		slog.Error("connection error", "player", c.Player, "error", err)
	}
}
