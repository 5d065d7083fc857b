package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"userRegistry/internal/cli"
	"userRegistry/internal/config"
	"userRegistry/internal/logging"
	"userRegistry/repository"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	logger.Debug("configuration loaded", zap.Stringer("config", cfg))

	// Open DB
	store, err := repository.OpenUserStore(cfg.Database, repository.WithLogger(logger))
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("close db", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cli.NewApp(store, os.Stdin, os.Stdout).Run(ctx); err != nil {
		if errors.Is(err, repository.ErrStorageUnavailable) {
			logger.Error("user store unavailable", zap.String("path", cfg.Database.Path), zap.Error(err))
		}
		return err
	}
	return nil
}
