package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/soocke/roi-ocr-go/app"
	"github.com/soocke/roi-ocr-go/config"
	"github.com/soocke/roi-ocr-go/debug"
)

func main() {
	flags, err := config.ParseFlags(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		os.Exit(2)
	}

	cfg, err := config.Load(flags.Path)

	level := slog.LevelInfo
	if flags.Debug || cfg.Debug {
		level = slog.LevelDebug
	}
	logger := NewLogger(level)
	if err != nil {
		logger.Warn("config load failed, using defaults", "path", flags.Path, "error", err)
	}

	if level == slog.LevelDebug {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		debug.StartRuntimeLogger(ctx, 5*time.Second, logger)
	}

	c, err := app.BuildContainer(cfg, flags.Path, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}
	app.NewApp("ROI OCR Transcriber", c).Start()
}
