package logging

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"
)

// New returns the application logger: colored text for development, JSON
// otherwise.
func New(w io.Writer, development bool) *slog.Logger {
	if development {
		return slog.New(tint.NewHandler(w, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.TimeOnly,
		}))
	}
	return slog.New(slog.NewJSONHandler(w, nil))
}

func Default(development bool) *slog.Logger {
	return New(os.Stderr, development)
}

// RotateFile limits for the engine log file.
const (
	maxSizeMB  = 50
	maxBackups = 3
	maxAgeDays = 28
)

// SetupEngine configures a package level logrus logger. When logFile is
// not empty every entry is also written there as JSON, rotated by size.
func SetupEngine(log *logrus.Logger, development bool, logFile string) error {
	logLevel := logrus.InfoLevel
	if development {
		logLevel = logrus.DebugLevel
	}
	log.SetLevel(logLevel)
	log.SetFormatter(&logrus.TextFormatter{ForceColors: development})

	if logFile == "" {
		return nil
	}
	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   logFile,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
		Level:      logLevel,
		Formatter:  &logrus.JSONFormatter{},
	})
	if err != nil {
		return err
	}
	log.AddHook(hook)
	return nil
}
