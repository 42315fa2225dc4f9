package fluid

import (
	"errors"
	"fmt"
	"math"
)

var errForeignField = errors.New("field does not belong to this device")

// CPUDevice evaluates every kernel texel by texel in Go, following GL
// sampling rules: texel centres at (i+0.5)/n, clamp-to-edge addressing, and
// nearest or bilinear filtering per field. Missing channels read as 0 with
// alpha 1. It backs headless runs and the solver tests.
type CPUDevice struct {
	linear bool

	displayed Field
	displays  int
}

// NewCPUDevice returns a device; linear reports whether it advertises
// hardware-style linear float filtering.
func NewCPUDevice(linear bool) *CPUDevice {
	return &CPUDevice{linear: linear}
}

type cpuField struct {
	w, h   int
	ch     int
	filter Filter
	pix    []float32
}

func (f *cpuField) Size() (int, int) { return f.w, f.h }

func (d *CPUDevice) LinearFloatFiltering() bool { return d.linear }

func (d *CPUDevice) NewField(width, height int, format Format, filter Filter) (Field, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid field size %dx%d", width, height)
	}
	ch := format.Channels()
	return &cpuField{
		w:      width,
		h:      height,
		ch:     ch,
		filter: filter,
		pix:    make([]float32, width*height*ch),
	}, nil
}

func (d *CPUDevice) ReleaseField(f Field) {
	if cf, ok := f.(*cpuField); ok {
		cf.pix = nil
	}
}

// LastDisplayed returns the field passed to the most recent Display call and
// the number of Display calls so far.
func (d *CPUDevice) LastDisplayed() (Field, int) { return d.displayed, d.displays }

func (d *CPUDevice) ReadField(f Field) (FieldData, error) {
	cf, ok := f.(*cpuField)
	if !ok {
		return FieldData{}, errForeignField
	}
	pix := make([]float32, len(cf.pix))
	copy(pix, cf.pix)
	return FieldData{Width: cf.w, Height: cf.h, Channels: cf.ch, Pix: pix}, nil
}

func field(f Field) *cpuField {
	cf, ok := f.(*cpuField)
	if !ok {
		panic(errForeignField)
	}
	return cf
}

type vec4 [4]float32

func (f *cpuField) texel(i, j int) vec4 {
	if i < 0 {
		i = 0
	} else if i >= f.w {
		i = f.w - 1
	}
	if j < 0 {
		j = 0
	} else if j >= f.h {
		j = f.h - 1
	}
	out := vec4{0, 0, 0, 1}
	base := (j*f.w + i) * f.ch
	copy(out[:f.ch], f.pix[base:base+f.ch])
	return out
}

func (f *cpuField) sample(u, v float32) vec4 {
	if f.filter == FilterNearest {
		return f.texel(int(math.Floor(float64(u*float32(f.w)))), int(math.Floor(float64(v*float32(f.h)))))
	}
	s := float64(u*float32(f.w) - 0.5)
	t := float64(v*float32(f.h) - 0.5)
	i0, j0 := math.Floor(s), math.Floor(t)
	fx, fy := float32(s-i0), float32(t-j0)
	a := f.texel(int(i0), int(j0))
	b := f.texel(int(i0)+1, int(j0))
	c := f.texel(int(i0), int(j0)+1)
	e := f.texel(int(i0)+1, int(j0)+1)
	return mix4(mix4(a, b, fx), mix4(c, e, fx), fy)
}

func (f *cpuField) store(x, y int, v vec4) {
	base := (y*f.w + x) * f.ch
	copy(f.pix[base:base+f.ch], v[:f.ch])
}

func mix4(a, b vec4, t float32) vec4 {
	var out vec4
	for i := range out {
		out[i] = a[i]*(1-t) + b[i]*t
	}
	return out
}

func scale4(v vec4, s float32) vec4 {
	for i := range v {
		v[i] *= s
	}
	return v
}

// frag carries the per-texel inputs the shared vertex stage provides.
type frag struct {
	x, y   int
	uv     [2]float32
	l, r   [2]float32
	t, b   [2]float32
	texelX float32
	texelY float32
}

func each(dst *cpuField, fn func(fr frag) vec4) {
	tx, ty := 1/float32(dst.w), 1/float32(dst.h)
	for y := 0; y < dst.h; y++ {
		for x := 0; x < dst.w; x++ {
			u := (float32(x) + 0.5) * tx
			v := (float32(y) + 0.5) * ty
			fr := frag{
				x: x, y: y,
				uv:     [2]float32{u, v},
				l:      [2]float32{u - tx, v},
				r:      [2]float32{u + tx, v},
				t:      [2]float32{u, v + ty},
				b:      [2]float32{u, v - ty},
				texelX: tx,
				texelY: ty,
			}
			dst.store(x, y, fn(fr))
		}
	}
}

func at(f *cpuField, p [2]float32) vec4 { return f.sample(p[0], p[1]) }

func clampUV(p [2]float32) [2]float32 {
	for i := range p {
		if p[i] < 0 {
			p[i] = 0
		} else if p[i] > 1 {
			p[i] = 1
		}
	}
	return p
}

func (d *CPUDevice) Advect(dst, velocity, source Field, p AdvectParams) {
	out, vel, src := field(dst), field(velocity), field(source)
	if !p.Manual {
		each(out, func(fr frag) vec4 {
			v := at(vel, fr.uv)
			u := fr.uv[0] - p.DT*v[0]*fr.texelX
			w := fr.uv[1] - p.DT*v[1]*fr.texelY
			return scale4(src.sample(u, w), p.Dissipation)
		})
		return
	}
	each(out, func(fr frag) vec4 {
		v := at(vel, fr.uv)
		px := float32(fr.x) + 0.5 - p.DT*v[0]
		py := float32(fr.y) + 0.5 - p.DT*v[1]
		sx := float32(math.Floor(float64(px-0.5))) + 0.5
		sy := float32(math.Floor(float64(py-0.5))) + 0.5
		a := src.sample(sx*fr.texelX, sy*fr.texelY)
		b := src.sample((sx+1)*fr.texelX, sy*fr.texelY)
		c := src.sample(sx*fr.texelX, (sy+1)*fr.texelY)
		e := src.sample((sx+1)*fr.texelX, (sy+1)*fr.texelY)
		res := scale4(mix4(mix4(a, b, px-sx), mix4(c, e, px-sx), py-sy), p.Dissipation)
		res[3] = 1
		return res
	})
}

func (d *CPUDevice) Curl(dst, velocity Field) {
	out, vel := field(dst), field(velocity)
	each(out, func(fr frag) vec4 {
		l := at(vel, fr.l)[1]
		r := at(vel, fr.r)[1]
		t := at(vel, fr.t)[0]
		b := at(vel, fr.b)[0]
		return vec4{r - l - t + b, 0, 0, 1}
	})
}

func (d *CPUDevice) Vorticity(dst, velocity, curl Field, strength, dt float32) {
	out, vel, cu := field(dst), field(velocity), field(curl)
	each(out, func(fr frag) vec4 {
		l := at(cu, fr.l)[0]
		r := at(cu, fr.r)[0]
		t := at(cu, fr.t)[0]
		b := at(cu, fr.b)[0]
		c := at(cu, fr.uv)[0]
		fx := abs32(t) - abs32(b)
		fy := abs32(r) - abs32(l)
		n := float32(math.Hypot(float64(fx+1e-5), float64(fy+1e-5)))
		k := strength * c / n
		fx, fy = fx*k, fy*k
		v := at(vel, fr.uv)
		return vec4{v[0] + fx*dt, v[1] + fy*dt, 0, 1}
	})
}

// reflected samples velocity with out-of-range taps clamped to the edge and
// the component normal to that edge negated.
func reflected(vel *cpuField, p [2]float32) [2]float32 {
	mx, my := float32(1), float32(1)
	if p[0] < 0 {
		p[0], mx = 0, -1
	}
	if p[0] > 1 {
		p[0], mx = 1, -1
	}
	if p[1] < 0 {
		p[1], my = 0, -1
	}
	if p[1] > 1 {
		p[1], my = 1, -1
	}
	v := at(vel, p)
	return [2]float32{mx * v[0], my * v[1]}
}

func (d *CPUDevice) Divergence(dst, velocity Field) {
	out, vel := field(dst), field(velocity)
	each(out, func(fr frag) vec4 {
		l := reflected(vel, fr.l)[0]
		r := reflected(vel, fr.r)[0]
		t := reflected(vel, fr.t)[1]
		b := reflected(vel, fr.b)[1]
		return vec4{0.5 * (r - l + t - b), 0, 0, 1}
	})
}

func (d *CPUDevice) Clear(dst, src Field, value float32) {
	out, in := field(dst), field(src)
	each(out, func(fr frag) vec4 {
		return scale4(at(in, fr.uv), value)
	})
}

func (d *CPUDevice) Jacobi(dst, pressure, divergence Field) {
	out, pr, div := field(dst), field(pressure), field(divergence)
	each(out, func(fr frag) vec4 {
		l := at(pr, clampUV(fr.l))[0]
		r := at(pr, clampUV(fr.r))[0]
		t := at(pr, clampUV(fr.t))[0]
		b := at(pr, clampUV(fr.b))[0]
		dv := at(div, fr.uv)[0]
		return vec4{(l + r + b + t - dv) * 0.25, 0, 0, 1}
	})
}

func (d *CPUDevice) SubtractGradient(dst, pressure, velocity Field) {
	out, pr, vel := field(dst), field(pressure), field(velocity)
	each(out, func(fr frag) vec4 {
		l := at(pr, clampUV(fr.l))[0]
		r := at(pr, clampUV(fr.r))[0]
		t := at(pr, clampUV(fr.t))[0]
		b := at(pr, clampUV(fr.b))[0]
		v := at(vel, fr.uv)
		return vec4{v[0] - (r - l), v[1] - (t - b), 0, 1}
	})
}

func (d *CPUDevice) Splat(dst, target Field, p SplatParams) {
	out, tgt := field(dst), field(target)
	each(out, func(fr frag) vec4 {
		px := (fr.uv[0] - p.Point[0]) * p.Aspect
		py := fr.uv[1] - p.Point[1]
		g := float32(math.Exp(-float64(px*px+py*py) / float64(p.Radius)))
		base := at(tgt, fr.uv)
		return vec4{base[0] + g*p.Color[0], base[1] + g*p.Color[1], base[2] + g*p.Color[2], 1}
	})
}

func (d *CPUDevice) Display(src Field, width, height int) {
	d.displayed = src
	d.displays++
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
