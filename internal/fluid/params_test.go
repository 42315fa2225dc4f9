package fluid

import (
	"math"
	"testing"

	"pgregory.net/rapid"
)

func TestClampDTBounds(t *testing.T) {
	p := DefaultParams()
	rapid.Check(t, func(t *rapid.T) {
		seconds := rapid.Float64().Draw(t, "seconds")
		dt := p.ClampDT(seconds)
		if !(dt > 0) || dt > p.MaxTimeStep {
			t.Fatalf("ClampDT(%v) = %v, want in (0, %v]", seconds, dt, p.MaxTimeStep)
		}
	})
}

func TestClampDTNeverExceedsCap(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := DefaultParams()
		p.MaxTimeStep = rapid.Float32Range(0, 10).Draw(t, "max")
		seconds := rapid.Float64Range(0, 10).Draw(t, "seconds")
		dt := p.ClampDT(seconds)
		if !(dt > 0) || dt > DefaultMaxTimeStep {
			t.Fatalf("ClampDT(%v) with cap %v = %v, want in (0, %v]", seconds, p.MaxTimeStep, dt, DefaultMaxTimeStep)
		}
	})
}

func TestClampDTCases(t *testing.T) {
	p := DefaultParams()
	tests := []struct {
		name    string
		seconds float64
		want    float32
	}{
		{"normal frame", 0.010, 0.010},
		{"exact cap", 0.016, 0.016},
		{"stall after backgrounding", 4.5, 0.016},
		{"zero delta", 0, MinTimeStep},
		{"clock went backwards", -0.2, MinTimeStep},
		{"nan", math.NaN(), MinTimeStep},
		{"inf", math.Inf(1), 0.016},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := p.ClampDT(tc.seconds); got != tc.want {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestParamsValidate(t *testing.T) {
	if err := DefaultParams().Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	bad := []func(p *Params){
		func(p *Params) { p.TextureDownsample = -1 },
		func(p *Params) { p.PressureIterations = -3 },
		func(p *Params) { p.DensityDissipation = 1.5 },
		func(p *Params) { p.PressureDissipation = -0.1 },
		func(p *Params) { p.MaxTimeStep = 0 },
		func(p *Params) { p.MaxTimeStep = 0.5 },
	}
	for i, mutate := range bad {
		p := DefaultParams()
		mutate(&p)
		if err := p.Validate(); err == nil {
			t.Errorf("case %d: expected validation error", i)
		}
	}
}
