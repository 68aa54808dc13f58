package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	dbfs "github.com/garnizeh/portfolio/db"

	"github.com/garnizeh/portfolio/api"
	"github.com/garnizeh/portfolio/internal/config"
	"github.com/garnizeh/portfolio/internal/db"
	"github.com/garnizeh/portfolio/internal/logging"
	"github.com/garnizeh/portfolio/internal/repository/postgres"
	"github.com/garnizeh/portfolio/internal/repository/sqlite"
	"github.com/garnizeh/portfolio/internal/storage"
	"github.com/garnizeh/portfolio/internal/validation"
	"github.com/garnizeh/portfolio/pkg/repository"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	var configPath = flag.String("config", "", "Path to config YAML file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		slog.Error("failed to load config", slog.Any("err", err))
		os.Exit(1)
	}
	logger := logging.New(cfg.Env)
	api.SetLogger(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid config", slog.Any("err", err))
		os.Exit(1)
	}

	logger.Info("starting portfolio server", slog.String("version", version), slog.String("build_time", buildTime))

	ctx := context.Background()

	repo, closeRepo, err := openRepo(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("failed to open store", slog.String("driver", cfg.Database.Driver), slog.Any("err", err))
		os.Exit(1)
	}
	defer closeRepo()

	files, err := storage.NewLocal(cfg.Storage.Dir, cfg.Storage.MaxUploadBytes, logger)
	if err != nil {
		logger.Error("failed to prepare upload dir", slog.Any("err", err))
		os.Exit(1)
	}
	validator, err := validation.New()
	if err != nil {
		logger.Error("failed to compile schemas", slog.Any("err", err))
		os.Exit(1)
	}

	handler := api.SetupRoutes(cfg, version, buildTime, api.Deps{
		Repo:      repo,
		Files:     files,
		FilesDir:  files.Dir(),
		Validator: validator,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.APITimeout,
		WriteTimeout: cfg.APITimeout,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", slog.String("addr", cfg.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-errCh:
		logger.Error("server failed", slog.Any("err", err))
		closeRepo()
		os.Exit(1)
	}
	logger.Info("shutting down server")

	// Give outstanding requests 30 seconds to complete
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", slog.Any("err", err))
	}
	logger.Info("server exited")
}

// openRepo opens the configured document store and applies its migrations.
func openRepo(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (repository.EntityRepo, func(), error) {
	switch cfg.Driver {
	case "postgres":
		repo, err := postgres.New(ctx, cfg.URL, cfg.MaxConns, logger)
		if err != nil {
			return nil, nil, err
		}
		if err := repo.Migrate(ctx); err != nil {
			repo.Close()
			return nil, nil, err
		}
		return repo, repo.Close, nil
	case "sqlite":
		conn, err := db.New(ctx, cfg.Path, logger)
		if err != nil {
			return nil, nil, err
		}
		if err := db.Migrate(ctx, conn, dbfs.Migrations); err != nil {
			_ = conn.Close()
			return nil, nil, err
		}
		closeFn := func() {
			if err := conn.Close(); err != nil {
				logger.Error("error closing db", slog.Any("err", err))
			}
		}
		return sqlite.New(conn, logger), closeFn, nil
	}
	return nil, nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
}
