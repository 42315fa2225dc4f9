package game

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"smokerocket/internal/fluid"
	"smokerocket/internal/sprite"
	"smokerocket/internal/telemetry"
)

// HeadlessOptions configures a run without a window.
type HeadlessOptions struct {
	Frames        int
	Width, Height int
	// FrameTime is the simulated wall-clock time between frames.
	FrameTime time.Duration
	// Snapshot is an optional PNG path for the final density field.
	Snapshot string
	// Pilot defaults to ScriptedControls.
	Pilot func(frame int) sprite.Controls
}

// HeadlessResult summarises a finished headless run.
type HeadlessResult struct {
	Frames  int
	Bullets int
	Density fluid.Stats
}

type fixedSurface struct{ w, h int }

func (s fixedSurface) FramebufferSize() (int, int) { return s.w, s.h }

type nullOverlay struct{}

func (nullOverlay) Resize(int, int) error                                 { return nil }
func (nullOverlay) Begin()                                                {}
func (nullOverlay) Circle(x, y, radius float64)                           {}
func (nullOverlay) Sprite(kind sprite.Kind, x, y, w, h, rotation float64) {}
func (nullOverlay) End()                                                  {}

// ScriptedControls is a repeating 240-frame flight: climb, climb while
// turning, strafe left while firing, then brake.
func ScriptedControls(frame int) sprite.Controls {
	var c sprite.Controls
	switch phase := frame % 240; {
	case phase < 90:
		c.Forward = true
	case phase < 120:
		c.Forward = true
		c.RotateCW = true
	case phase < 180:
		c.ThrustLeft = true
		c.Fire = phase%10 == 0
	default:
		c.Brake = true
	}
	return c
}

// RunHeadless drives the game on the CPU device with a simulated clock.
func RunHeadless(ctx context.Context, opts Options, h HeadlessOptions, log *slog.Logger) (HeadlessResult, error) {
	if log == nil {
		log = slog.Default()
	}
	if h.Width <= 0 || h.Height <= 0 {
		return HeadlessResult{}, fmt.Errorf("invalid headless size %dx%d", h.Width, h.Height)
	}
	if h.FrameTime <= 0 {
		h.FrameTime = time.Second / 60
	}
	pilot := h.Pilot
	if pilot == nil {
		pilot = ScriptedControls
	}

	now := time.Unix(0, 0)
	opts.Clock = func() time.Time { return now }

	dev := fluid.NewCPUDevice(true)
	d, err := NewDriver(dev, fixedSurface{h.Width, h.Height}, nullOverlay{}, opts, log)
	if err != nil {
		return HeadlessResult{}, err
	}
	defer d.Close()

	log.Info("starting headless run", "frames", h.Frames, "width", h.Width, "height", h.Height, "frame_time", h.FrameTime)
	for i := 0; i < h.Frames; i++ {
		if err := ctx.Err(); err != nil {
			return HeadlessResult{Frames: d.FrameCount()}, err
		}
		now = now.Add(h.FrameTime)
		if err := d.Frame(pilot(i)); err != nil {
			return HeadlessResult{Frames: d.FrameCount()}, fmt.Errorf("frame %d: %w", i, err)
		}
	}

	res := HeadlessResult{Frames: d.FrameCount(), Bullets: len(d.Bullets())}
	if res.Density, err = d.Simulation().MeasureDensity(); err != nil {
		return res, err
	}
	if h.Snapshot != "" {
		data, err := dev.ReadField(d.Simulation().Fields().Density.Read())
		if err != nil {
			return res, err
		}
		if err := telemetry.SavePNG(h.Snapshot, data); err != nil {
			return res, err
		}
		log.Info("snapshot written", "path", h.Snapshot)
	}
	log.Info("headless run finished", "frames", res.Frames, "bullets", res.Bullets, "density_mass", res.Density.Mass)
	return res, nil
}
