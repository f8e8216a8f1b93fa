package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/golang-migrate/migrate/v4"

	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/database"
	"github.com/vancomm/minesweeper-engine/internal/logging"
)

func run(logger *slog.Logger, down bool) error {
	url, err := config.DbURL()
	if err != nil {
		return err
	}
	migrator, err := database.NewMigrator(url, database.Migrations)
	if err != nil {
		return err
	}
	defer migrator.Close()

	if down {
		err = migrator.Down()
	} else {
		err = migrator.Up()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration failed: %w", err)
	}

	version, dirty, err := migrator.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		logger.Info("no migrations applied")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to check migration version: %w", err)
	}
	logger.Info("migration successful", slog.Uint64("version", uint64(version)), slog.Bool("dirty", dirty))
	return nil
}

func main() {
	down := flag.Bool("down", false, "roll back every migration instead")
	flag.Parse()

	if err := config.LoadEnv(); err != nil {
		slog.Error("failed to load .env", slog.Any("error", err))
		os.Exit(1)
	}
	logger := logging.Default(config.Development())

	if err := run(logger, *down); err != nil {
		logger.Error("failed to migrate db", slog.Any("error", err))
		os.Exit(1)
	}
}
