// Package main is the entry point for the ascii3d terminal viewer.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Faultbox/ascii3d/internal/assets"
	"github.com/Faultbox/ascii3d/internal/config"
	"github.com/Faultbox/ascii3d/internal/engine/display"
	"github.com/Faultbox/ascii3d/internal/game"
	"github.com/Faultbox/ascii3d/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "ascii3d: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	// The terminal belongs to the viewer, so logs only go to the log file.
	if err := logger.InitQuiet(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer logger.Sync()

	logger.Info("=== ascii3d ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if config.SaveRequested() {
		path, err := cfg.Save()
		if err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		logger.Info("config saved", zap.String("path", path))
		fmt.Fprintf(os.Stderr, "config written to %s\n", path)
	}

	maps := assets.NewManager()
	defer maps.Close()
	if err := maps.AddDir(config.MapDir()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("skipping user map dir", zap.Error(err))
	}
	for _, dir := range cfg.Map.Dirs {
		if err := maps.AddDir(dir); err != nil {
			return err
		}
	}

	grid, err := assets.OpenGrid(maps, cfg.Map)
	if err != nil {
		logger.Error("failed to load map", zap.Error(err))
		return err
	}
	logger.Info("map loaded",
		zap.String("name", grid.Name()),
		zap.Int("width", grid.Width()),
		zap.Int("height", grid.Height()),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	term, err := display.OpenTerminal()
	if err != nil {
		logger.Error("failed to open terminal", zap.Error(err))
		return err
	}
	defer term.Close()

	g, err := game.New(cfg, grid, term)
	if err != nil {
		logger.Error("failed to create game", zap.Error(err))
		return err
	}

	if err := g.Run(ctx); err != nil {
		logger.Error("game error", zap.Error(err))
		return err
	}

	logger.Info("viewer closed normally", zap.Int("frames", g.Frames()))
	return nil
}
