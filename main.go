package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"annobot/cmd"
	"annobot/config"
	"annobot/database"

	log "github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}
	if err := cfg.ConfigureLogging(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	// Check for migration subcommands
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		if err := handleMigrationCommand(cfg.GetDatabaseURL(), os.Args[2:]); err != nil {
			log.Fatalf("Migration error: %v", err)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.Run(ctx, cfg); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func handleMigrationCommand(databaseURL string, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: annobot migrate [up|down|status] [args...]")
	}

	switch args[0] {
	case "up":
		return database.MigrateUp(databaseURL)
	case "down":
		steps := "1"
		if len(args) > 1 {
			steps = args[1]
		}
		return database.MigrateDown(databaseURL, steps)
	case "status":
		return database.MigrateStatus(databaseURL)
	default:
		return fmt.Errorf("unknown migration command: %s", args[0])
	}
}
