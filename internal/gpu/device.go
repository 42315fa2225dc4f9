package gpu

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-gl/gl/v4.1-core/gl"

	"smokerocket/internal/fluid"
)

var errForeignField = errors.New("gpu: field was not created by this device")

// Device runs the fluid kernels as fragment-shader passes. Every pass binds
// its own target, viewport, program and textures; nothing is assumed to
// survive from a previous call. A current GL context is required.
type Device struct {
	log     *slog.Logger
	caps    Caps
	shaders *shaderSet
	quad    *quad
}

var (
	_ fluid.Device = (*Device)(nil)
	_ fluid.Reader = (*Device)(nil)
)

// NewDevice compiles every program against the current context.
func NewDevice(log *slog.Logger) (*Device, error) {
	if log == nil {
		log = slog.Default()
	}
	caps, err := detectCaps()
	if err != nil {
		return nil, err
	}
	shaders, err := newShaderSet()
	if err != nil {
		return nil, err
	}
	gl.Disable(gl.BLEND)
	gl.Disable(gl.DEPTH_TEST)
	log.Info("gpu device ready", "caps", caps)
	return &Device{log: log, caps: caps, shaders: shaders, quad: newQuad()}, nil
}

func (d *Device) Caps() Caps { return d.caps }

func (d *Device) LinearFloatFiltering() bool { return d.caps.LinearFloatFiltering }

func (d *Device) NewField(width, height int, format fluid.Format, filter fluid.Filter) (fluid.Field, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid field size %dx%d", width, height)
	}
	f, err := newFramebuffer(width, height, format, filter)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (d *Device) ReleaseField(f fluid.Field) {
	if fb, ok := f.(*Framebuffer); ok {
		fb.Delete()
	}
}

func framebuffer(f fluid.Field) *Framebuffer {
	fb, ok := f.(*Framebuffer)
	if !ok {
		panic(errForeignField)
	}
	return fb
}

// begin targets dst with p and sets the shared vertex stage's texel size.
func (d *Device) begin(dst *Framebuffer, p *Program) {
	dst.target()
	p.Bind()
	if loc, ok := p.lookup("texelSize"); ok {
		gl.Uniform2f(loc, 1/float32(dst.w), 1/float32(dst.h))
	}
}

func (d *Device) Advect(dst, velocity, source fluid.Field, ap fluid.AdvectParams) {
	out, vel, src := framebuffer(dst), framebuffer(velocity), framebuffer(source)
	p := d.shaders.advection
	if ap.Manual {
		p = d.shaders.advectionManual
	}
	d.begin(out, p)
	gl.Uniform1i(p.Uniform("uVelocity"), vel.attach(0))
	gl.Uniform1i(p.Uniform("uSource"), src.attach(1))
	gl.Uniform1f(p.Uniform("dt"), ap.DT)
	gl.Uniform1f(p.Uniform("dissipation"), ap.Dissipation)
	d.quad.draw()
}

func (d *Device) Curl(dst, velocity fluid.Field) {
	out, vel := framebuffer(dst), framebuffer(velocity)
	p := d.shaders.curl
	d.begin(out, p)
	gl.Uniform1i(p.Uniform("uVelocity"), vel.attach(0))
	d.quad.draw()
}

func (d *Device) Vorticity(dst, velocity, curl fluid.Field, strength, dt float32) {
	out, vel, cu := framebuffer(dst), framebuffer(velocity), framebuffer(curl)
	p := d.shaders.vorticity
	d.begin(out, p)
	gl.Uniform1i(p.Uniform("uVelocity"), vel.attach(0))
	gl.Uniform1i(p.Uniform("uCurl"), cu.attach(1))
	gl.Uniform1f(p.Uniform("curl"), strength)
	gl.Uniform1f(p.Uniform("dt"), dt)
	d.quad.draw()
}

func (d *Device) Divergence(dst, velocity fluid.Field) {
	out, vel := framebuffer(dst), framebuffer(velocity)
	p := d.shaders.divergence
	d.begin(out, p)
	gl.Uniform1i(p.Uniform("uVelocity"), vel.attach(0))
	d.quad.draw()
}

func (d *Device) Clear(dst, src fluid.Field, value float32) {
	out, in := framebuffer(dst), framebuffer(src)
	p := d.shaders.clear
	d.begin(out, p)
	gl.Uniform1i(p.Uniform("uTexture"), in.attach(0))
	gl.Uniform1f(p.Uniform("value"), value)
	d.quad.draw()
}

func (d *Device) Jacobi(dst, pressure, divergence fluid.Field) {
	out, pr, div := framebuffer(dst), framebuffer(pressure), framebuffer(divergence)
	p := d.shaders.pressure
	d.begin(out, p)
	gl.Uniform1i(p.Uniform("uPressure"), pr.attach(0))
	gl.Uniform1i(p.Uniform("uDivergence"), div.attach(1))
	d.quad.draw()
}

func (d *Device) SubtractGradient(dst, pressure, velocity fluid.Field) {
	out, pr, vel := framebuffer(dst), framebuffer(pressure), framebuffer(velocity)
	p := d.shaders.gradient
	d.begin(out, p)
	gl.Uniform1i(p.Uniform("uPressure"), pr.attach(0))
	gl.Uniform1i(p.Uniform("uVelocity"), vel.attach(1))
	d.quad.draw()
}

func (d *Device) Splat(dst, target fluid.Field, sp fluid.SplatParams) {
	out, tgt := framebuffer(dst), framebuffer(target)
	p := d.shaders.splat
	d.begin(out, p)
	gl.Uniform1i(p.Uniform("uTarget"), tgt.attach(0))
	gl.Uniform1f(p.Uniform("aspectRatio"), sp.Aspect)
	gl.Uniform2f(p.Uniform("point"), sp.Point[0], sp.Point[1])
	gl.Uniform3f(p.Uniform("color"), sp.Color[0], sp.Color[1], sp.Color[2])
	gl.Uniform1f(p.Uniform("radius"), sp.Radius)
	d.quad.draw()
}

// Display draws src stretched over the default framebuffer.
func (d *Device) Display(src fluid.Field, width, height int) {
	in := framebuffer(src)
	p := d.shaders.display
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, int32(width), int32(height))
	p.Bind()
	if loc, ok := p.lookup("texelSize"); ok {
		gl.Uniform2f(loc, 1/float32(in.w), 1/float32(in.h))
	}
	gl.Uniform1i(p.Uniform("uTexture"), in.attach(0))
	d.quad.draw()
}

// ReadField copies f back to host memory. It stalls the pipeline.
func (d *Device) ReadField(f fluid.Field) (fluid.FieldData, error) {
	fb, ok := f.(*Framebuffer)
	if !ok {
		return fluid.FieldData{}, errForeignField
	}
	data := fb.read()
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fluid.FieldData{}, fmt.Errorf("read %dx%d field: gl error 0x%x", fb.w, fb.h, code)
	}
	return data, nil
}

// Close deletes every program and the shared quad.
func (d *Device) Close() {
	d.shaders.Delete()
	d.quad.Delete()
}
