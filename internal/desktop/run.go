package desktop

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"

	"smokerocket/internal/config"
	"smokerocket/internal/game"
	"smokerocket/internal/gpu"
)

// Run opens the window and drives frames until the window closes, Escape is
// pressed or ctx is cancelled.
func Run(ctx context.Context, cfg *config.Config, opts game.Options, log *slog.Logger) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	win, err := OpenWindow(cfg.Window)
	if err != nil {
		return err
	}
	defer win.Close()

	dev, err := gpu.NewDevice(log)
	if err != nil {
		return fmt.Errorf("gpu device: %w", err)
	}
	defer dev.Close()

	overlay := gpu.NewOverlay(dev)
	defer overlay.Close()

	d, err := game.NewDriver(dev, win, overlay, opts, log)
	if err != nil {
		return err
	}
	defer d.Close()

	in := win.Input()
	for !win.ShouldClose() {
		if err := ctx.Err(); err != nil {
			log.Info("stopping", "reason", err)
			return nil
		}
		glfw.PollEvents()
		if in.TakeBurst() {
			d.Burst()
		}
		if in.TakeDebug() {
			d.LogDebug(in.Controls())
		}
		if err := d.Frame(in.Controls()); err != nil {
			return err
		}
		win.Swap()
	}
	log.Info("window closed", "frames", d.FrameCount())
	return nil
}
