package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/vancomm/minesweeper-engine/internal/app"
	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/logging"
	"github.com/vancomm/minesweeper-engine/internal/mines"
)

func main() {
	if err := config.LoadEnv(); err != nil {
		slog.Error("failed to load .env", slog.Any("error", err))
		os.Exit(1)
	}

	development := config.Development()
	logger := logging.Default(development)

	logFile, _ := config.LogFile()
	if err := logging.SetupEngine(mines.Log, development, logFile); err != nil {
		logger.Error("failed to set up engine log", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := app.New(logger).Start(ctx); err != nil {
		logger.Error("exit reason", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("server stopped")
}
