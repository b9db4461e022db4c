// Command tycoon runs the Task Tycoon company simulation server and offers
// a few commands for inspecting the saved company from a terminal.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/talgya/task-tycoon/internal/config"
	"github.com/talgya/task-tycoon/internal/economy"
	"github.com/talgya/task-tycoon/internal/engine"
	"github.com/talgya/task-tycoon/internal/entropy"
	"github.com/talgya/task-tycoon/internal/persistence"
)

var (
	dataDir   string
	storeKind string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tycoon",
		Short: "Task Tycoon company simulation server",
		Long: `Task Tycoon keeps one company document and changes it through
player actions: tasks, day ends, departments, and staff.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&dataDir, "data", "d", "", "Data directory (overrides TYCOON_DATA_DIR)")
	rootCmd.PersistentFlags().StringVarP(&storeKind, "store", "s", "", "Store kind: sqlite, file, or memory (overrides TYCOON_STORE)")

	rootCmd.AddCommand(serveCmd(), statusCmd(), historyCmd(), resetCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app is the wiring shared by every command.
type app struct {
	cfg   *config.Config
	store persistence.Store
	proc  *engine.Processor
}

func openApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if storeKind != "" {
		cfg.Store = storeKind
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	tables, err := cfg.Tables()
	if err != nil {
		return nil, fmt.Errorf("balance tables: %w", err)
	}

	store, err := persistence.Open(cfg.Store, cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	slog.Debug("store opened", "kind", cfg.Store, "data_dir", cfg.DataDir)

	eng := engine.New(tables, entropy.New(cfg.Seed), economy.NewLaborMarket(cfg.Seed))
	return &app{
		cfg:   cfg,
		store: store,
		proc:  engine.NewProcessor(store, eng),
	}, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		slog.Error("close store", "error", err)
	}
}
