package fluid

import (
	"math"
	"testing"
)

func newCPUField(t *testing.T, dev *CPUDevice, w, h int, format Format, filter Filter) *cpuField {
	t.Helper()
	f, err := dev.NewField(w, h, format, filter)
	if err != nil {
		t.Fatal(err)
	}
	return field(f)
}

func fill(f *cpuField, v ...float32) {
	for i := 0; i < len(f.pix); i += f.ch {
		copy(f.pix[i:i+f.ch], v)
	}
}

func TestCPUSampling(t *testing.T) {
	dev := NewCPUDevice(true)
	f := newCPUField(t, dev, 2, 1, FormatRG, FilterLinear)
	f.store(0, 0, vec4{2, 4})
	f.store(1, 0, vec4{6, 8})

	tests := []struct {
		name   string
		filter Filter
		u      float32
		want   vec4
	}{
		{"nearest first centre", FilterNearest, 0.25, vec4{2, 4, 0, 1}},
		{"nearest second centre", FilterNearest, 0.75, vec4{6, 8, 0, 1}},
		{"linear midpoint", FilterLinear, 0.5, vec4{4, 6, 0, 1}},
		{"linear clamps left", FilterLinear, 0, vec4{2, 4, 0, 1}},
		{"linear clamps right", FilterLinear, 1, vec4{6, 8, 0, 1}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f.filter = tc.filter
			if got := f.sample(tc.u, 0.5); got != tc.want {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestCPUDivergenceReflectsAtWalls(t *testing.T) {
	dev := NewCPUDevice(true)
	vel := newCPUField(t, dev, 4, 4, FormatRG, FilterNearest)
	fill(vel, 1, 0)
	div := newCPUField(t, dev, 4, 4, FormatRG, FilterNearest)

	dev.Divergence(div, vel)

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			want := float32(0)
			switch x {
			case 0:
				want = 1
			case 3:
				want = -1
			}
			if got := div.texel(x, y)[0]; got != want {
				t.Errorf("texel (%d,%d): expected %v, got %v", x, y, want, got)
			}
		}
	}
}

func TestCPUCurlOfUniformFlowIsZero(t *testing.T) {
	dev := NewCPUDevice(true)
	vel := newCPUField(t, dev, 8, 8, FormatRG, FilterLinear)
	fill(vel, 3, -2)
	curl := newCPUField(t, dev, 8, 8, FormatRG, FilterNearest)

	dev.Curl(curl, vel)

	for i := 0; i < len(curl.pix); i += curl.ch {
		if curl.pix[i] != 0 {
			t.Fatalf("expected zero curl, got %v at %d", curl.pix[i], i/curl.ch)
		}
	}

	out := newCPUField(t, dev, 8, 8, FormatRG, FilterLinear)
	dev.Vorticity(out, vel, curl, 20, 0.016)
	for i := 0; i < len(out.pix); i += out.ch {
		if out.pix[i] != 3 || out.pix[i+1] != -2 {
			t.Fatalf("expected velocity unchanged without curl, got (%v, %v)", out.pix[i], out.pix[i+1])
		}
	}
}

func TestCPUJacobiKeepsZeroPressure(t *testing.T) {
	dev := NewCPUDevice(true)
	p := newCPUField(t, dev, 8, 8, FormatRG, FilterNearest)
	div := newCPUField(t, dev, 8, 8, FormatRG, FilterNearest)
	out := newCPUField(t, dev, 8, 8, FormatRG, FilterNearest)
	fill(out, 9, 9)

	dev.Jacobi(out, p, div)

	for i, v := range out.pix {
		if v != 0 {
			t.Fatalf("expected zero pressure, got %v at %d", v, i)
		}
	}
}

func TestCPUClearScales(t *testing.T) {
	dev := NewCPUDevice(true)
	src := newCPUField(t, dev, 4, 4, FormatRG, FilterNearest)
	fill(src, 2, 0)
	dst := newCPUField(t, dev, 4, 4, FormatRG, FilterNearest)

	dev.Clear(dst, src, 0.4)

	want := float32(2) * 0.4
	for i := 0; i < len(dst.pix); i += dst.ch {
		if dst.pix[i] != want {
			t.Fatalf("expected %v, got %v", want, dst.pix[i])
		}
	}
}

func TestCPUSplatPeak(t *testing.T) {
	dev := NewCPUDevice(true)
	base := newCPUField(t, dev, 8, 8, FormatRGBA, FilterLinear)
	fill(base, 0.5, 0, 0, 1)
	out := newCPUField(t, dev, 8, 8, FormatRGBA, FilterLinear)

	dev.Splat(out, base, SplatParams{
		Point:  [2]float32{0.5625, 0.5625},
		Color:  [3]float32{1, 2, 3},
		Radius: 0.001,
		Aspect: 1,
	})

	if got := out.texel(4, 4); got != (vec4{1.5, 2, 3, 1}) {
		t.Errorf("expected full colour at the splat centre, got %v", got)
	}
	far := out.texel(0, 0)
	if far[0] > 0.5001 || far[1] > 0.0001 {
		t.Errorf("expected the splat to fade out away from the centre, got %v", far)
	}
}

func TestCPUManualAdvectionMatchesHardwareFilter(t *testing.T) {
	dev := NewCPUDevice(true)
	const n = 16
	vel := newCPUField(t, dev, n, n, FormatRG, FilterLinear)
	fill(vel, 23, -11)

	linSrc := newCPUField(t, dev, n, n, FormatRGBA, FilterLinear)
	nearSrc := newCPUField(t, dev, n, n, FormatRGBA, FilterNearest)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			v := vec4{float32(x*x) / 10, float32(y) * 0.3, float32((x + y) % 5), 1}
			linSrc.store(x, y, v)
			nearSrc.store(x, y, v)
		}
	}
	hw := newCPUField(t, dev, n, n, FormatRGBA, FilterLinear)
	manual := newCPUField(t, dev, n, n, FormatRGBA, FilterNearest)

	dev.Advect(hw, vel, linSrc, AdvectParams{DT: 0.016, Dissipation: 0.99})
	dev.Advect(manual, vel, nearSrc, AdvectParams{DT: 0.016, Dissipation: 0.99, Manual: true})

	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			a, b := hw.texel(x, y), manual.texel(x, y)
			for c := 0; c < 3; c++ {
				if math.Abs(float64(a[c]-b[c])) > 1e-3 {
					t.Fatalf("texel (%d,%d) channel %d: hardware %v, manual %v", x, y, c, a[c], b[c])
				}
			}
		}
	}
}
