package game

import (
	"fmt"
	"log/slog"
	"time"

	"smokerocket/internal/config"
	"smokerocket/internal/fluid"
	"smokerocket/internal/sprite"
	"smokerocket/internal/telemetry"
)

//go:generate go tool mockgen -destination=./mocks/game_mock.go -package=mocks . Surface,Overlay

// Surface is the presentation target. Its size is polled once per frame.
type Surface interface {
	FramebufferSize() (width, height int)
}

// Overlay is the 2D layer drawn over the fluid display. Coordinates are
// pixels with y down; rotation is in degrees.
type Overlay interface {
	Resize(width, height int) error
	// Begin clears the layer to transparent.
	Begin()
	Circle(x, y, radius float64)
	Sprite(kind sprite.Kind, x, y, w, h, rotation float64)
	// End composites the layer over the current display.
	End()
}

const circleRadius = 100

// Options configures a Driver.
type Options struct {
	Fluid        fluid.Params
	Injector     fluid.InjectorConfig
	Rocket       sprite.RocketConfig
	Bullet       sprite.BulletConfig
	Policy       sprite.Policy
	Seed         uint64
	StartupBurst bool
	// LogInterval is the number of frames between stats logs; 0 disables.
	LogInterval int
	// Clock defaults to time.Now.
	Clock    func() time.Time
	Recorder *telemetry.Recorder
}

// OptionsFromConfig maps the loaded configuration onto driver options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Fluid:        cfg.FluidParams(),
		Injector:     cfg.InjectorConfig(),
		Rocket:       cfg.RocketConfig(),
		Bullet:       cfg.BulletConfig(),
		Policy:       cfg.Policy(),
		Seed:         cfg.Splat.Seed,
		StartupBurst: cfg.Splat.StartupBurst,
		LogInterval:  cfg.Telemetry.LogIntervalFrames,
	}
}

// Driver runs one frame of the game per call: resize check, time step,
// fluid step, display, overlay, then sprite updates.
type Driver struct {
	log     *slog.Logger
	opts    Options
	clock   func() time.Time
	surface Surface
	overlay Overlay

	sim      *fluid.Simulation
	injector *fluid.Injector
	events   *EventBus
	perf     *telemetry.PerfCollector

	rocket  *sprite.Rocket
	bullets []*sprite.Bullet

	w, h   int
	last   time.Time
	frame  int
	lastDT float32
}

// NewDriver builds the simulation on dev at the surface's current size.
func NewDriver(dev fluid.Device, surface Surface, overlay Overlay, opts Options, log *slog.Logger) (*Driver, error) {
	if log == nil {
		log = slog.Default()
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	seed := opts.Seed
	if seed == 0 {
		seed = uint64(clock().UnixNano())
	}

	w, h := surface.FramebufferSize()
	sim, err := fluid.New(dev, opts.Fluid, w, h, log)
	if err != nil {
		return nil, fmt.Errorf("fluid simulation: %w", err)
	}
	if err := overlay.Resize(w, h); err != nil {
		sim.Close()
		return nil, fmt.Errorf("overlay: %w", err)
	}

	d := &Driver{
		log:      log,
		opts:     opts,
		clock:    clock,
		surface:  surface,
		overlay:  overlay,
		sim:      sim,
		injector: fluid.NewInjector(opts.Injector, seed),
		events:   NewEventBus(),
		perf:     telemetry.NewPerfCollector(60),
		rocket:   sprite.NewRocket(opts.Rocket, opts.Bullet, float64(w)/2, float64(h)/2),
		w:        w,
		h:        h,
		last:     clock(),
	}
	for _, t := range []EventType{EventResize, EventBurst, EventBulletFired, EventBulletRemoved} {
		d.events.Subscribe(t, d.logEvent)
	}
	if opts.StartupBurst {
		d.Burst()
	}
	log.Info("driver ready", "width", w, "height", h, "seed", seed)
	return d, nil
}

func (d *Driver) logEvent(e Event) {
	d.log.Debug("event", "type", e.Type.String(), "frame", e.Frame, "x", e.X, "y", e.Y, "data", e.Data)
}

func (d *Driver) Events() *EventBus             { return d.events }
func (d *Driver) Simulation() *fluid.Simulation { return d.sim }
func (d *Driver) Rocket() *sprite.Rocket        { return d.rocket }
func (d *Driver) Bullets() []*sprite.Bullet     { return d.bullets }
func (d *Driver) FrameCount() int               { return d.frame }

// LastStep returns the clamped time step used by the most recent frame.
func (d *Driver) LastStep() float32 { return d.lastDT }

// Burst queues the configured number of random splats for the next frame.
func (d *Driver) Burst() {
	d.injector.Burst(0)
	d.events.Emit(Event{Type: EventBurst, Frame: d.frame, Data: d.injector.Pending()})
}

// Frame advances and draws one frame with the pilot's controls.
func (d *Driver) Frame(c sprite.Controls) error {
	now := d.clock()
	d.perf.StartFrame()

	if err := d.checkResize(); err != nil {
		return err
	}
	if d.w <= 0 || d.h <= 0 {
		d.last = now
		return nil
	}
	dt := d.opts.Fluid.ClampDT(now.Sub(d.last).Seconds())
	d.last = now
	d.lastDT = dt

	d.perf.StartPhase(telemetry.PhaseSolve)
	splats := d.injector.Drain(d.w, d.h)
	d.sim.Step(dt, d.rocket.SmokeCurl(), splats)

	d.perf.StartPhase(telemetry.PhaseDisplay)
	d.sim.Render(d.w, d.h)

	d.perf.StartPhase(telemetry.PhaseOverlay)
	d.drawOverlay()

	d.perf.StartPhase(telemetry.PhaseSprites)
	d.updateSprites(c, now)
	d.perf.EndFrame()

	d.frame++
	d.report(dt, len(splats))
	return nil
}

// checkResize polls the surface and reallocates everything sized to it. A
// zero-sized surface (minimised window) is ignored.
func (d *Driver) checkResize() error {
	w, h := d.surface.FramebufferSize()
	if w <= 0 || h <= 0 || (w == d.w && h == d.h) {
		return nil
	}
	if err := d.sim.Resize(w, h); err != nil {
		return fmt.Errorf("resize fluid: %w", err)
	}
	if err := d.overlay.Resize(w, h); err != nil {
		return fmt.Errorf("resize overlay: %w", err)
	}
	d.w, d.h = w, h
	d.events.Emit(Event{Type: EventResize, Frame: d.frame, Data: w})
	d.log.Info("viewport resized", "width", w, "height", h)
	return nil
}

func (d *Driver) drawOverlay() {
	o := d.overlay
	o.Begin()
	fw, fh := float64(d.w), float64(d.h)
	o.Circle(fw/3, fh/2, circleRadius)
	o.Circle(2*fw/3, fh/2, circleRadius)

	r := d.rocket
	o.Sprite(sprite.KindRocket, r.Pos[0], r.Pos[1], r.Width, r.Height, r.DrawRotation())
	for _, b := range d.bullets {
		o.Sprite(sprite.KindBullet, b.Pos[0], b.Pos[1], b.Width, b.Height, b.DrawRotation())
	}
	o.End()
}

func (d *Driver) updateSprites(c sprite.Controls, now time.Time) {
	bounds := sprite.Bounds{W: float64(d.w), H: float64(d.h)}

	live := d.bullets[:0]
	for _, b := range d.bullets {
		if b.Dead(now, bounds) {
			d.events.Emit(Event{Type: EventBulletRemoved, Frame: d.frame, X: b.Pos[0], Y: b.Pos[1]})
			continue
		}
		live = append(live, b)
	}
	for i := len(live); i < len(d.bullets); i++ {
		d.bullets[i] = nil
	}
	d.bullets = live

	if b := d.rocket.Update(c, bounds, d.opts.Policy, now); b != nil {
		d.bullets = append(d.bullets, b)
		d.events.Emit(Event{Type: EventBulletFired, Frame: d.frame, X: b.Pos[0], Y: b.Pos[1], Data: len(d.bullets)})
	}
	if ex, ok := d.rocket.Exhaust(c); ok {
		d.injector.Emit(ex.X, ex.Y, ex.Radius)
	}
	for _, b := range d.bullets {
		b.Update(bounds)
	}
}

func (d *Driver) report(dt float32, splats int) {
	every := d.opts.LogInterval
	if every <= 0 || d.frame%every != 0 {
		return
	}
	rec := telemetry.FrameRecord{
		Frame:   d.frame,
		DT:      dt,
		Splats:  splats,
		Bullets: len(d.bullets),
		Curl:    d.rocket.SmokeCurl(),
	}
	attrs := []any{"frame", d.frame, "perf", d.perf.Stats(), "bullets", len(d.bullets)}
	if st, err := d.sim.MeasureDensity(); err == nil {
		rec.Energy, rec.Mass = st.Energy, st.Mass
		rec.CentroidX, rec.CentroidY = st.CentroidX, st.CentroidY
		attrs = append(attrs, "density_energy", st.Energy, "density_mass", st.Mass)
	} else {
		d.log.Debug("density readback unavailable", "err", err)
	}
	d.log.Info("frame stats", attrs...)
	if err := d.opts.Recorder.Write(rec); err != nil {
		d.log.Warn("telemetry write failed", "err", err)
	}
}

// LogDebug writes the control state and sprite state as structured attributes.
func (d *Driver) LogDebug(c sprite.Controls) {
	d.log.Info("debug",
		"frame", d.frame,
		"controls", c,
		"rocket", d.rocket,
		"bullets", len(d.bullets),
		"dt", d.lastDT,
		"manual_filtering", d.sim.ManualFiltering(),
	)
}

// Close releases the simulation fields.
func (d *Driver) Close() {
	d.sim.Close()
}
