package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/garnizeh/portfolio/internal/config"
	"github.com/garnizeh/portfolio/internal/db"
)

func main() {
	out := flag.String("out", "", "Backup file (default <database path>.bak)")
	flag.Parse()

	cfg, err := config.LoadConfig("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if cfg.Database.Driver != "sqlite" {
		fmt.Fprintf(os.Stderr, "Backup error: only the sqlite store can be backed up, use pg_dump for %s\n", cfg.Database.Driver)
		os.Exit(1)
	}
	dst := *out
	if dst == "" {
		dst = cfg.Database.Path + ".bak"
	}
	// VACUUM INTO refuses to overwrite
	if err := os.Remove(dst); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Backup error: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	database, err := db.New(ctx, cfg.Database.Path, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Backup error: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	if _, err := database.Exec(ctx, `VACUUM INTO ?`, dst); err != nil {
		fmt.Fprintf(os.Stderr, "Backup error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Database backup written to %s.\n", dst)
}
