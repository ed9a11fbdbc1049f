package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"daylist/internal/config"
	"daylist/internal/engine"
	"daylist/internal/logger"
	"daylist/internal/storage"
	"daylist/internal/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "daylist failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := os.Getenv("DAYLIST_CONFIG")
	if configPath == "" {
		configPath = config.DefaultConfigFileName
	}
	cfg, err := config.LoadOrCreate(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "daylist: config %s unusable, continuing with defaults: %v\n", configPath, err)
	}

	log, err := logger.New(cfg.LogDir, os.Getenv("DAYLIST_DEBUG") != "")
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	// A missing database file means a first run, which seeds example tasks.
	_, statErr := os.Stat(cfg.DBPath)
	fresh := os.IsNotExist(statErr)

	repo, err := storage.OpenSQLite(cfg.DBPath)
	if err != nil {
		return err
	}
	defer repo.Close()
	if err := storage.MigrateUp(repo.DB()); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	gateway := storage.NewGateway(repo, log)

	store := engine.NewStore(engine.SortMode(cfg.DefaultSort))
	store.Load(gateway.LoadTasks(fresh))

	trash := engine.NewTrash(store, time.Duration(cfg.UndoSeconds)*time.Second, log)
	defer trash.Stop()
	trash.Load(gateway.LoadTrash())
	trash.PurgeExpired(time.Duration(cfg.TrashMaxAgeDays) * 24 * time.Hour)

	store.Subscribe(func() { gateway.SaveTasks(store.Tasks()) })
	trash.Subscribe(func() { gateway.SaveTrash(trash.Entries()) })

	program := tea.NewProgram(ui.New(store, trash, cfg), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
