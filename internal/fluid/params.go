package fluid

import (
	"fmt"
	"math"
)

const (
	// DefaultMaxTimeStep bounds a single solver step in seconds.
	DefaultMaxTimeStep = 0.016
	// MinTimeStep is used when the wall clock reports no progress.
	MinTimeStep = 1e-6
)

// Params is the fixed solver configuration for a run.
type Params struct {
	TextureDownsample   int
	DensityDissipation  float32
	VelocityDissipation float32
	PressureDissipation float32
	PressureIterations  int
	MaxTimeStep         float32
	// ForceManualFiltering selects the manual-bilinear advection kernel even
	// when the device supports linear float filtering.
	ForceManualFiltering bool
}

func DefaultParams() Params {
	return Params{
		TextureDownsample:   1,
		DensityDissipation:  0.99,
		VelocityDissipation: 0.985,
		PressureDissipation: 0.4,
		PressureIterations:  25,
		MaxTimeStep:         DefaultMaxTimeStep,
	}
}

func (p Params) Validate() error {
	if p.TextureDownsample < 0 || p.TextureDownsample > 8 {
		return fmt.Errorf("texture downsample %d out of range [0,8]", p.TextureDownsample)
	}
	if p.PressureIterations < 0 {
		return fmt.Errorf("pressure iterations %d must not be negative", p.PressureIterations)
	}
	for _, d := range []struct {
		name string
		v    float32
	}{
		{"density", p.DensityDissipation},
		{"velocity", p.VelocityDissipation},
		{"pressure", p.PressureDissipation},
	} {
		if d.v < 0 || d.v > 1 {
			return fmt.Errorf("%s dissipation %v out of range [0,1]", d.name, d.v)
		}
	}
	if !(p.MaxTimeStep > MinTimeStep) || p.MaxTimeStep > DefaultMaxTimeStep {
		return fmt.Errorf("max time step %v out of range (%v,%v]", p.MaxTimeStep, MinTimeStep, DefaultMaxTimeStep)
	}
	return nil
}

// ClampDT turns a wall-clock delta in seconds into the solver step. The
// result is always in (0, MaxTimeStep] and never above DefaultMaxTimeStep.
// This is a cap, not an accumulator: one step still runs per displayed frame.
func (p Params) ClampDT(seconds float64) float32 {
	limit := float64(p.MaxTimeStep)
	if !(limit > MinTimeStep) || limit > DefaultMaxTimeStep {
		limit = DefaultMaxTimeStep
	}
	if math.IsNaN(seconds) || seconds < MinTimeStep {
		return MinTimeStep
	}
	if seconds > limit {
		return float32(limit)
	}
	return float32(seconds)
}
