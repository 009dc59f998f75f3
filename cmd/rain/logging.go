package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lmittmann/tint"
)

const (
	logDir      = "logs"
	logFileName = "rain.log"
	maxLogSize  = 10 * 1024 * 1024
)

// setupLogging routes slog (and the std log package) to logs/rain.log when debug
// is set, rotating an oversized file first. Otherwise everything is discarded:
// stdout and stderr belong to the drawing.
func setupLogging(debug bool) (*os.File, *slog.Logger) {
	discard := slog.New(slog.DiscardHandler)
	if !debug {
		slog.SetDefault(discard)
		return nil, discard
	}

	if err := os.MkdirAll(logDir, 0o755); err != nil {
		slog.SetDefault(discard)
		return nil, discard
	}

	logPath := filepath.Join(logDir, logFileName)
	if info, err := os.Stat(logPath); err == nil && info.Size() > maxLogSize {
		rotated := filepath.Join(logDir, fmt.Sprintf("rain_%s.log", time.Now().Format("20060102_150405")))
		os.Rename(logPath, rotated)
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		slog.SetDefault(discard)
		return nil, discard
	}

	logger := slog.New(tint.NewHandler(f, &tint.Options{
		Level:      slog.LevelDebug,
		TimeFormat: time.StampMilli,
		NoColor:    true,
	}))
	slog.SetDefault(logger)
	return f, logger
}
