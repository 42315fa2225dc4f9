package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"smokerocket/internal/config"
	"smokerocket/internal/desktop"
	"smokerocket/internal/game"
	"smokerocket/internal/telemetry"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run on the CPU device without a window")
	frames := flag.Int("frames", 600, "Frames to simulate in headless mode")
	snapshot := flag.String("snapshot", "", "Write the final density field to this PNG (headless)")
	seed := flag.Uint64("seed", 0, "RNG seed (0 = config value, then time-based)")
	logJSON := flag.Bool("log-json", false, "Log as JSON instead of text")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error")
	csvPath := flag.String("csv", "", "Frame telemetry CSV path (overrides telemetry.csv_path)")
	dumpConfig := flag.String("dump-config", "", "Write the effective config to this YAML file and exit")

	flag.Parse()

	logger := newLogger(*logJSON, *logLevel)
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *dumpConfig != "" {
		if err := cfg.WriteYAML(*dumpConfig); err != nil {
			logger.Error("failed to write config", "error", err)
			os.Exit(1)
		}
		logger.Info("config written", "path", *dumpConfig)
		return
	}

	opts := game.OptionsFromConfig(cfg)
	if *seed != 0 {
		opts.Seed = *seed
	}
	if *csvPath != "" {
		cfg.Telemetry.CSVPath = *csvPath
	}
	rec, err := telemetry.NewRecorder(cfg.Telemetry.CSVPath)
	if err != nil {
		logger.Error("failed to open telemetry output", "error", err)
		os.Exit(1)
	}
	defer rec.Close()
	opts.Recorder = rec

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *headless {
		res, err := game.RunHeadless(ctx, opts, game.HeadlessOptions{
			Frames:   *frames,
			Width:    cfg.Window.Width,
			Height:   cfg.Window.Height,
			Snapshot: *snapshot,
		}, logger)
		if err != nil {
			logger.Error("headless run failed", "error", err, "frames", res.Frames)
			rec.Close()
			os.Exit(1)
		}
		return
	}

	if err := desktop.Run(ctx, cfg, opts, logger); err != nil {
		logger.Error("game exited with error", "error", err)
		rec.Close()
		os.Exit(1)
	}
}

func newLogger(json bool, level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	hopts := &slog.HandlerOptions{Level: lvl}
	if json {
		return slog.New(slog.NewJSONHandler(os.Stdout, hopts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, hopts))
}
