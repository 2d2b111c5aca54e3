package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gravity-maze/internal/audio"
	"github.com/vovakirdan/gravity-maze/internal/config"
	"github.com/vovakirdan/gravity-maze/internal/core"
	"github.com/vovakirdan/gravity-maze/internal/games/mazegame"
	"github.com/vovakirdan/gravity-maze/internal/levels"
	"github.com/vovakirdan/gravity-maze/internal/platform"
	"github.com/vovakirdan/gravity-maze/internal/registry"
	"github.com/vovakirdan/gravity-maze/internal/storage"
)

// app is everything a command needs after startup.
type app struct {
	cfg    config.Config
	levels []*levels.Level
	reg    *registry.Registry
	logger *log.Logger
	store  *storage.Store

	logFile *os.File
}

// logTarget selects where logs go when --log-file is not set.
type logTarget int

const (
	logDiscard logTarget = iota // the terminal belongs to Bubble Tea
	logStderr
)

// setup loads config and levels and builds the registry and logger.
// Failures are fatal: they are printed and the process exits.
func setup(target logTarget) *app {
	a := &app{}

	logger, f, err := newLogger(target)
	if err != nil {
		fatalf("Error: %v\n", err)
	}
	a.logger, a.logFile = logger, f

	cfg, source, err := config.Load(flagConfig)
	if err != nil {
		fatalf("Error loading config: %v\n", err)
	}
	if flagSpeed != "" {
		if err := config.ApplySpeedPreset(&cfg, config.SpeedPreset(flagSpeed)); err != nil {
			fatalf("Error: %v\n", err)
		}
	}
	a.cfg = cfg
	a.logger.Debug("config loaded", "source", source, "step", cfg.Physics.Step)

	dir := expandHome(cfg.LevelsDir)
	if dir == "" {
		dir = levels.UserDir()
	}
	all, err := levels.Load(dir, cfg.Physics.ActorSize, cfg.Physics.Step)
	if err != nil {
		fatalf("Error loading levels: %v\n", err)
	}
	a.levels = all

	a.reg = registry.New()
	if err := mazegame.Register(a.reg, all, mazegame.OptionsFromConfig(cfg)); err != nil {
		fatalf("Error registering levels: %v\n", err)
	}
	a.logger.Debug("levels ready", "count", a.reg.Len(), "dir", dir)
	return a
}

func newLogger(target logTarget) (*log.Logger, *os.File, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q", flagLogLevel)
	}

	var (
		w io.Writer = io.Discard
		f *os.File
	)
	switch {
	case flagLogFile != "":
		f, err = os.OpenFile(expandHome(flagLogFile), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
	case target == logStderr:
		w = os.Stderr
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "maze",
		Level:           level,
	})
	return logger, f, nil
}

// openStore opens the times database. Persistence is best-effort unless
// required is set.
func (a *app) openStore(required bool) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		if required {
			fatalf("Error opening times database: %v\n", err)
		}
		fmt.Fprintf(os.Stderr, "Warning: could not open times database: %v\n", err)
		a.logger.Warn("times database unavailable", "path", flagDBPath, "error", err)
		return
	}
	a.store = store
}

// services builds the session services. The speaker is opened only when
// audio is enabled in config and not muted.
func (a *app) services(withAudio bool) platform.Services {
	svc := platform.Services{
		Logger:    a.logger,
		HoldTicks: a.cfg.Input.HoldTicks,
	}
	if a.store != nil {
		svc.Store = a.store
	}
	if withAudio && a.cfg.Audio.Enabled && !flagMute {
		player, err := audio.NewBeepPlayer(a.cfg.Audio.Volume)
		if err != nil {
			fatalf("Error: %v (use --mute to play without sound)\n", err)
		}
		svc.Audio = player
	}
	return svc.WithDefaults()
}

func (a *app) runtimeConfig(w, h int) core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: w, ScreenH: h, TickRate: flagFPS}
}

// close releases the store, speaker and log file.
func (a *app) close(svc platform.Services) {
	if svc.Audio != nil {
		if err := svc.Audio.Close(); err != nil {
			a.logger.Warn("closing audio", "error", err)
		}
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Warn("closing times database", "error", err)
		}
	}
	if a.logFile != nil {
		a.logFile.Close()
	}
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(1)
}
