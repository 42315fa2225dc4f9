package game_test

import (
	"context"
	"errors"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"smokerocket/internal/game"
	"smokerocket/internal/sprite"
)

func TestScriptedControls(t *testing.T) {
	tests := []struct {
		frame int
		want  sprite.Controls
	}{
		{0, sprite.Controls{Forward: true}},
		{100, sprite.Controls{Forward: true, RotateCW: true}},
		{130, sprite.Controls{ThrustLeft: true, Fire: true}},
		{131, sprite.Controls{ThrustLeft: true}},
		{200, sprite.Controls{Brake: true}},
		{240, sprite.Controls{Forward: true}},
	}
	for _, tc := range tests {
		if got := game.ScriptedControls(tc.frame); got != tc.want {
			t.Errorf("frame %d: expected %+v, got %+v", tc.frame, tc.want, got)
		}
	}
}

func TestRunHeadlessWritesSnapshot(t *testing.T) {
	clk := newClock()
	opts := testOptions(clk)
	opts.StartupBurst = true
	snap := filepath.Join(t.TempDir(), "out", "density.png")
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	res, err := game.RunHeadless(context.Background(), opts, game.HeadlessOptions{
		Frames:   12,
		Width:    128,
		Height:   96,
		Snapshot: snap,
	}, log)
	if err != nil {
		t.Fatalf("RunHeadless: %v", err)
	}
	if res.Frames != 12 {
		t.Errorf("expected 12 frames, got %d", res.Frames)
	}
	if res.Density.Mass <= 0 {
		t.Errorf("expected smoke after the startup burst")
	}

	f, err := os.Open(snap)
	if err != nil {
		t.Fatalf("open snapshot: %v", err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if cfg.Width != 64 || cfg.Height != 48 {
		t.Errorf("expected a 64x48 grid snapshot, got %dx%d", cfg.Width, cfg.Height)
	}
}

func TestRunHeadlessStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	opts := testOptions(newClock())
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	res, err := game.RunHeadless(ctx, opts, game.HeadlessOptions{Frames: 10, Width: 32, Height: 32}, log)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if res.Frames != 0 {
		t.Errorf("expected no frames, got %d", res.Frames)
	}
}

func TestRunHeadlessRejectsEmptySurface(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	if _, err := game.RunHeadless(context.Background(), testOptions(newClock()), game.HeadlessOptions{Frames: 1}, log); err == nil {
		t.Error("expected an error for a zero-sized run")
	}
}
