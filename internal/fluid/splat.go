package fluid

// Splat is one stimulus in texture space: X, Y in [0,1] with y up, DX, DY
// the velocity impulse in texels per second.
type Splat struct {
	X, Y   float32
	DX, DY float32
	Color  [3]float32
	Radius float32
}

// InjectorConfig tunes the stimulus sources.
type InjectorConfig struct {
	BurstCount       int     // splats queued by one Burst call
	ColorCycleFrames int     // emitting frames between pointer colour changes
	VelocityScale    float32 // pointer impulse per pixel of tail movement
	Radius           float32 // initial splat radius
}

func DefaultInjectorConfig() InjectorConfig {
	return InjectorConfig{
		BurstCount:       10,
		ColorCycleFrames: 20,
		VelocityScale:    10,
		Radius:           0.0005,
	}
}

// pointer is the active stimulus that follows the rocket's exhaust, in
// viewport pixels with y down.
type pointer struct {
	x, y   float32
	dx, dy float32
	color  [3]float32
	moved  bool
}

// Injector collects the stimuli for one frame: queued random bursts and the
// single active pointer.
type Injector struct {
	cfg InjectorConfig
	rng *Rand

	pending  int
	ptr      pointer
	colorAge int
	radius   float32
}

func NewInjector(cfg InjectorConfig, seed uint64) *Injector {
	in := &Injector{
		cfg:    cfg,
		rng:    NewRand(seed),
		radius: cfg.Radius,
	}
	in.ptr.color = in.randomColor()
	return in
}

func (in *Injector) randomColor() [3]float32 {
	return [3]float32{
		in.rng.Float32() + 0.2,
		in.rng.Float32() + 0.2,
		in.rng.Float32() + 0.2,
	}
}

// Burst queues n random splats for the next drain. n <= 0 queues the
// configured burst size.
func (in *Injector) Burst(n int) {
	if n <= 0 {
		n = in.cfg.BurstCount
	}
	in.pending += n
}

// Pending returns the number of queued burst splats.
func (in *Injector) Pending() int { return in.pending }

// Radius returns the splat radius currently in effect.
func (in *Injector) Radius() float32 { return in.radius }

// Emit moves the active pointer to the exhaust position (viewport pixels)
// and marks it for injection this frame.
func (in *Injector) Emit(x, y float64, radius float32) {
	in.colorAge++
	if in.colorAge > in.cfg.ColorCycleFrames {
		in.ptr.color = in.randomColor()
		in.colorAge = 0
	}
	in.radius = radius

	fx, fy := float32(x), float32(y)
	in.ptr.dx = (fx - in.ptr.x) * in.cfg.VelocityScale
	in.ptr.dy = (fy - in.ptr.y) * in.cfg.VelocityScale
	in.ptr.x, in.ptr.y = fx, fy
	in.ptr.moved = true
}

// Drain converts the queued stimuli to texture space for a viewW x viewH
// viewport and clears them.
func (in *Injector) Drain(viewW, viewH int) []Splat {
	if viewW <= 0 || viewH <= 0 {
		in.pending = 0
		in.ptr.moved = false
		return nil
	}
	w, h := float32(viewW), float32(viewH)
	var out []Splat
	for ; in.pending > 0; in.pending-- {
		color := [3]float32{in.rng.Float32() * 10, in.rng.Float32() * 10, in.rng.Float32() * 10}
		x := w * in.rng.Float32()
		y := h * in.rng.Float32()
		dx := 1000 * (in.rng.Float32() - 0.5)
		dy := 1000 * (in.rng.Float32() - 0.5)
		out = append(out, in.toTexture(x, y, dx, dy, color, w, h))
	}
	if in.ptr.moved {
		out = append(out, in.toTexture(in.ptr.x, in.ptr.y, in.ptr.dx, in.ptr.dy, in.ptr.color, w, h))
		in.ptr.moved = false
	}
	return out
}

func (in *Injector) toTexture(x, y, dx, dy float32, color [3]float32, w, h float32) Splat {
	return Splat{
		X:      x / w,
		Y:      1 - y/h,
		DX:     dx,
		DY:     -dy,
		Color:  color,
		Radius: in.radius,
	}
}
