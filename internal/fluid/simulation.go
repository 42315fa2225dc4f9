package fluid

import (
	"fmt"
	"log/slog"
)

// densityColorScale attenuates splat colour written into the density field.
const densityColorScale = 0.3

// Simulation is the single context that owns the device, the field buffers
// and the fixed parameters. Every pass receives it explicitly.
type Simulation struct {
	dev    Device
	params Params
	log    *slog.Logger

	filter Filter
	manual bool

	viewW, viewH int
	fields       *Fields
}

// New allocates fields for a viewW x viewH viewport. The advection filter is
// chosen once here from the device capabilities.
func New(dev Device, params Params, viewW, viewH int, log *slog.Logger) (*Simulation, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("fluid params: %w", err)
	}
	if log == nil {
		log = slog.Default()
	}
	s := &Simulation{
		dev:    dev,
		params: params,
		log:    log,
		filter: FilterNearest,
		manual: true,
	}
	if dev.LinearFloatFiltering() && !params.ForceManualFiltering {
		s.filter = FilterLinear
		s.manual = false
	}
	log.Info("fluid simulation configured",
		"filter", s.filter.String(),
		"manual_advection", s.manual,
		"pressure_iterations", params.PressureIterations,
	)
	if err := s.Resize(viewW, viewH); err != nil {
		return nil, err
	}
	return s, nil
}

// Resize discards every field and reallocates at the grid size derived from
// the new viewport. All simulation state is lost.
func (s *Simulation) Resize(viewW, viewH int) error {
	w, h := gridSize(viewW, viewH, s.params.TextureDownsample)
	fs, err := newFields(s.dev, w, h, s.filter)
	if err != nil {
		return fmt.Errorf("allocate fields: %w", err)
	}
	s.fields.release(s.dev)
	s.fields = fs
	s.viewW, s.viewH = viewW, viewH
	s.log.Debug("fluid fields allocated", "view_w", viewW, "view_h", viewH, "grid_w", w, "grid_h", h)
	return nil
}

// Close releases all device fields.
func (s *Simulation) Close() {
	s.fields.release(s.dev)
	s.fields = nil
}

func (s *Simulation) Fields() *Fields       { return s.fields }
func (s *Simulation) Params() Params        { return s.params }
func (s *Simulation) ManualFiltering() bool { return s.manual }

// ViewSize returns the viewport the fields were last allocated for.
func (s *Simulation) ViewSize() (int, int) { return s.viewW, s.viewH }

// Step advances velocity and density by dt. The pass order is fixed; curl
// is the vorticity confinement strength for this frame.
func (s *Simulation) Step(dt, curl float32, splats []Splat) {
	advectVelocity(s, dt)
	advectDensity(s, dt)
	for _, sp := range splats {
		applySplat(s, sp)
	}
	computeCurl(s)
	confineVorticity(s, curl, dt)
	computeDivergence(s)
	solvePressure(s)
	subtractGradient(s)
}

// Render displays the density field over the full viewport.
func (s *Simulation) Render(width, height int) {
	s.dev.Display(s.fields.Density.Read(), width, height)
}

func advectVelocity(s *Simulation, dt float32) {
	v := s.fields.Velocity
	s.dev.Advect(v.Write(), v.Read(), v.Read(), AdvectParams{
		DT:          dt,
		Dissipation: s.params.VelocityDissipation,
		Manual:      s.manual,
	})
	v.Swap()
}

func advectDensity(s *Simulation, dt float32) {
	d := s.fields.Density
	s.dev.Advect(d.Write(), s.fields.Velocity.Read(), d.Read(), AdvectParams{
		DT:          dt,
		Dissipation: s.params.DensityDissipation,
		Manual:      s.manual,
	})
	d.Swap()
}

func applySplat(s *Simulation, sp Splat) {
	aspect := float32(1)
	if s.viewH > 0 {
		aspect = float32(s.viewW) / float32(s.viewH)
	}
	point := [2]float32{sp.X, sp.Y}

	v := s.fields.Velocity
	s.dev.Splat(v.Write(), v.Read(), SplatParams{
		Point:  point,
		Color:  [3]float32{sp.DX, sp.DY, 1},
		Radius: sp.Radius,
		Aspect: aspect,
	})
	v.Swap()

	d := s.fields.Density
	s.dev.Splat(d.Write(), d.Read(), SplatParams{
		Point: point,
		Color: [3]float32{
			sp.Color[0] * densityColorScale,
			sp.Color[1] * densityColorScale,
			sp.Color[2] * densityColorScale,
		},
		Radius: sp.Radius,
		Aspect: aspect,
	})
	d.Swap()
}

func computeCurl(s *Simulation) {
	s.dev.Curl(s.fields.Curl, s.fields.Velocity.Read())
}

func confineVorticity(s *Simulation, curl, dt float32) {
	v := s.fields.Velocity
	s.dev.Vorticity(v.Write(), v.Read(), s.fields.Curl, curl, dt)
	v.Swap()
}

func computeDivergence(s *Simulation) {
	s.dev.Divergence(s.fields.Divergence, s.fields.Velocity.Read())
}

// solvePressure decays last frame's pressure, then runs a fixed number of
// Jacobi sweeps.
func solvePressure(s *Simulation) {
	p := s.fields.Pressure
	s.dev.Clear(p.Write(), p.Read(), s.params.PressureDissipation)
	p.Swap()
	for i := 0; i < s.params.PressureIterations; i++ {
		s.dev.Jacobi(p.Write(), p.Read(), s.fields.Divergence)
		p.Swap()
	}
}

func subtractGradient(s *Simulation) {
	v := s.fields.Velocity
	s.dev.SubtractGradient(v.Write(), s.fields.Pressure.Read(), v.Read())
	v.Swap()
}
