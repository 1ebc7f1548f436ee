// @title           Legal Practice Management API
// @version         1.0
// @description     Lawyers, clients, cases with their teams, comments, notes and files, appointments and blog posts.
// @BasePath        /api
// @schemes         http
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aldoetobex/legal-practice-backend/internal/storage"
	"github.com/aldoetobex/legal-practice-backend/pkg/config"
	"github.com/aldoetobex/legal-practice-backend/pkg/database"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := config.SetupLogger(cfg)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", slog.Any("err", err))
		os.Exit(1)
	}
	logger.Info("server stopped")
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	if err := database.Migrate(cfg, db, logger); err != nil {
		return err
	}

	store, err := storage.New(ctx, cfg, logger)
	if err != nil {
		return err
	}

	app := newApp(db, store, logger, cfg)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening",
			slog.String("port", cfg.Port),
			slog.String("env", cfg.AppEnv),
			slog.String("db", cfg.DBDriver),
			slog.String("storage", cfg.StorageDriver),
		)
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}
