package main

import (
	"fmt"
	"os"

	"medremind/internal/config"
	"medremind/internal/logging"
	"medremind/internal/reminder"
	"medremind/internal/storage"
	"medremind/internal/ui"
)

func main() {
	configPath := config.ResolveConfigPath()
	cfg, err := config.LoadOrCreate(configPath)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, logCloser, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		fmt.Printf("failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer logCloser.Close()

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		fmt.Printf("failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	log.Info().Str("config", configPath).Str("db", cfg.DBPath).Msg("starting")

	reminders := storage.NewReminderStore(store, cfg.StoreKey, reminder.Seed, log)
	tracker := reminder.NewTracker(reminders,
		reminder.WithLogger(log),
		reminder.WithCompletedLimit(cfg.CompletedLimit),
	)

	if err := ui.Run(tracker, cfg, log); err != nil {
		fmt.Printf("error running program: %v\n", err)
		os.Exit(1)
	}
}
