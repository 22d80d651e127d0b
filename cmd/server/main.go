package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/garnizeh/talentdesk/api"
	dbfs "github.com/garnizeh/talentdesk/db"
	"github.com/garnizeh/talentdesk/internal/config"
	"github.com/garnizeh/talentdesk/internal/db"
	"github.com/garnizeh/talentdesk/internal/portal"
	"github.com/garnizeh/talentdesk/internal/repository/redis"
	"github.com/garnizeh/talentdesk/internal/repository/sqlite"
	"github.com/garnizeh/talentdesk/internal/schema"
	"github.com/garnizeh/talentdesk/internal/seed"
	"github.com/garnizeh/talentdesk/internal/session"
	"github.com/garnizeh/talentdesk/internal/storage"
	"github.com/garnizeh/talentdesk/pkg/repository"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	var (
		configPath = flag.String("config", "", "Path to config YAML file")
		envPath    = flag.String("env", ".env", "Path to dotenv file")
	)
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)
	api.SetLogger(logger)

	if err := run(*configPath, *envPath, logger); err != nil {
		logger.Error("server stopped", slog.Any("err", err))
		os.Exit(1)
	}
}

func run(configPath, envPath string, logger *slog.Logger) error {
	if err := config.LoadEnvFile(envPath); err != nil {
		return err
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger.Info("starting talentdesk",
		slog.String("version", version),
		slog.String("build_time", buildTime),
		slog.String("storage", cfg.Storage.Driver),
	)

	ctx := context.Background()

	kv, closeStore, err := openStorage(ctx, cfg.Storage, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Error("close storage", slog.Any("err", err))
		}
	}()

	schemas, err := schema.NewLoader(dbfs.Schemas)
	if err != nil {
		return fmt.Errorf("load schemas: %w", err)
	}
	demo, err := seed.Default(ctx, schemas)
	if err != nil {
		return fmt.Errorf("load demo data: %w", err)
	}

	p, err := portal.New(ctx, kv, demo, logger,
		portal.WithSessionOptions(session.WithBcryptCost(cfg.BcryptCost)))
	if err != nil {
		return fmt.Errorf("open portal: %w", err)
	}

	handler := api.SetupRoutes(cfg, version, buildTime, p, schemas)

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
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-quit:
	}
	logger.Info("shutting down server")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("server exited")
	return nil
}

// openStorage returns the key-value backend selected by cfg and a func that
// releases it.
func openStorage(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) (repository.KeyValueStore, func() error, error) {
	switch cfg.Driver {
	case config.DriverRedis:
		rdb, err := redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		kv := redis.New(rdb, logger)
		return storage.WithPrefix(kv, cfg.KeyPrefix), kv.Close, nil

	case config.DriverSQLite:
		database, err := db.New(ctx, cfg.DatabasePath, logger)
		if err != nil {
			return nil, nil, err
		}
		if cfg.MigrateOnStart {
			if err := db.Migrate(ctx, database, dbfs.Migrations); err != nil {
				_ = database.Close()
				return nil, nil, fmt.Errorf("migrate: %w", err)
			}
		}
		return storage.WithPrefix(sqlite.New(database, logger), cfg.KeyPrefix), database.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
