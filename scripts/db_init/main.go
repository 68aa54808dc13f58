package main

import (
	"context"
	"fmt"
	"os"

	dbfs "github.com/garnizeh/portfolio/db"
	"github.com/garnizeh/portfolio/internal/config"
	"github.com/garnizeh/portfolio/internal/db"
	"github.com/garnizeh/portfolio/internal/logging"
	"github.com/garnizeh/portfolio/internal/repository/postgres"
)

func main() {
	ctx := context.Background()
	cfg, err := config.LoadConfig("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	logger := logging.New(cfg.Env)

	switch cfg.Database.Driver {
	case "postgres":
		repo, err := postgres.New(ctx, cfg.Database.URL, cfg.Database.MaxConns, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "DB init error: %v\n", err)
			os.Exit(1)
		}
		defer repo.Close()
		if err := repo.Migrate(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Migration runner error: %v\n", err)
			os.Exit(1)
		}
	default:
		database, err := db.New(ctx, cfg.Database.Path, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "DB init error: %v\n", err)
			os.Exit(1)
		}
		defer database.Close()
		if err := db.Migrate(ctx, database, dbfs.Migrations); err != nil {
			fmt.Fprintf(os.Stderr, "Migration runner error: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Println("Database initialized successfully.")
}
