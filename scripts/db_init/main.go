package main

import (
	"context"
	"fmt"
	"os"

	dbfs "github.com/garnizeh/talentdesk/db"
	"github.com/garnizeh/talentdesk/internal/config"
	"github.com/garnizeh/talentdesk/internal/db"
)

func main() {
	ctx := context.Background()
	if err := config.LoadEnvFile(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "Env error: %v\n", err)
		os.Exit(1)
	}
	cfg, err := config.LoadConfig("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if cfg.Storage.Driver != config.DriverSQLite {
		fmt.Fprintf(os.Stderr, "db_init only applies to the sqlite driver (got %q)\n", cfg.Storage.Driver)
		os.Exit(1)
	}

	database, err := db.New(ctx, cfg.Storage.DatabasePath, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "DB init error: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := db.Migrate(ctx, database, dbfs.Migrations); err != nil {
		fmt.Fprintf(os.Stderr, "Migration runner error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Database initialized successfully.")
}
