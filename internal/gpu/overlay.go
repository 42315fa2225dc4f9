package gpu

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl64"

	"smokerocket/internal/sprite"
)

// shape selects the procedural drawing in the overlay fragment shader.
type shape float32

const (
	shapeCircle shape = 0
	shapeRocket shape = 1
	shapeBullet shape = 2
)

func shapeFor(k sprite.Kind) shape {
	if k == sprite.KindRocket {
		return shapeRocket
	}
	return shapeBullet
}

const (
	floatsPerVertex = 5 // x, y, local x, local y, shape
	verticesPerQuad = 6
)

var quadCorners = [4]mgl64.Vec2{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}

// appendQuad appends two triangles covering a w x h rectangle centred on
// (x, y) and rotated by rotation degrees (clockwise on a y-down screen).
func appendQuad(buf []float32, s shape, x, y, w, h, rotation float64) []float32 {
	rot := mgl64.Rotate2D(mgl64.DegToRad(rotation))
	centre := mgl64.Vec2{x, y}
	var px [4]mgl64.Vec2
	for i, c := range quadCorners {
		px[i] = centre.Add(rot.Mul2x1(mgl64.Vec2{c[0] * w / 2, c[1] * h / 2}))
	}
	for _, i := range [verticesPerQuad]int{0, 1, 2, 0, 2, 3} {
		buf = append(buf,
			float32(px[i][0]), float32(px[i][1]),
			float32(quadCorners[i][0]), float32(quadCorners[i][1]),
			float32(s),
		)
	}
	return buf
}

// Overlay is the 2D sprite layer. Shapes are batched on the CPU between
// Begin and End, drawn into an RGBA8 layer, then composited over the
// default framebuffer.
type Overlay struct {
	shaders *shaderSet
	quad    *quad

	vao, vbo uint32
	tex, fbo uint32
	w, h     int
	verts    []float32
}

// NewOverlay shares dev's programs. A current GL context is required.
func NewOverlay(dev *Device) *Overlay {
	o := &Overlay{shaders: dev.shaders, quad: dev.quad}
	gl.GenVertexArrays(1, &o.vao)
	gl.GenBuffers(1, &o.vbo)
	gl.BindVertexArray(o.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, o.vbo)

	stride := int32(floatsPerVertex * 4)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, glOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, stride, glOffset(2*4))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 1, gl.FLOAT, false, stride, glOffset(4*4))
	gl.BindVertexArray(0)

	gl.GenTextures(1, &o.tex)
	gl.GenFramebuffers(1, &o.fbo)
	return o
}

// Resize reallocates the layer texture. A zero size disables drawing.
func (o *Overlay) Resize(width, height int) error {
	o.w, o.h = width, height
	if width <= 0 || height <= 0 {
		return nil
	}
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, o.tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)

	gl.BindFramebuffer(gl.FRAMEBUFFER, o.fbo)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, o.tex, 0)
	if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		return fmt.Errorf("%w: overlay %dx%d status 0x%x", ErrIncompleteFramebuffer, width, height, status)
	}
	return nil
}

func (o *Overlay) enabled() bool { return o.w > 0 && o.h > 0 }

// Begin clears the layer to transparent and starts a new batch.
func (o *Overlay) Begin() {
	o.verts = o.verts[:0]
	if !o.enabled() {
		return
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, o.fbo)
	gl.Viewport(0, 0, int32(o.w), int32(o.h))
	gl.ClearColor(0, 0, 0, 0)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

func (o *Overlay) Circle(x, y, radius float64) {
	o.verts = appendQuad(o.verts, shapeCircle, x, y, 2*radius, 2*radius, 0)
}

func (o *Overlay) Sprite(kind sprite.Kind, x, y, w, h, rotation float64) {
	o.verts = appendQuad(o.verts, shapeFor(kind), x, y, w, h, rotation)
}

// End draws the batch into the layer and composites it over the display.
func (o *Overlay) End() {
	if !o.enabled() || len(o.verts) == 0 {
		return
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, o.fbo)
	gl.Viewport(0, 0, int32(o.w), int32(o.h))
	gl.Enable(gl.BLEND)
	gl.BlendFuncSeparate(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA, gl.ONE, gl.ONE_MINUS_SRC_ALPHA)

	p := o.shaders.overlay
	p.Bind()
	gl.Uniform2f(p.Uniform("uResolution"), float32(o.w), float32(o.h))
	gl.BindVertexArray(o.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, o.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(o.verts)*4, gl.Ptr(o.verts), gl.STREAM_DRAW)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(o.verts)/floatsPerVertex))

	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, int32(o.w), int32(o.h))
	gl.BlendFunc(gl.ONE, gl.ONE_MINUS_SRC_ALPHA)
	c := o.shaders.composite
	c.Bind()
	if loc, ok := c.lookup("texelSize"); ok {
		gl.Uniform2f(loc, 1/float32(o.w), 1/float32(o.h))
	}
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, o.tex)
	gl.Uniform1i(c.Uniform("uLayer"), 0)
	o.quad.draw()
	gl.Disable(gl.BLEND)
}

func (o *Overlay) Close() {
	gl.DeleteFramebuffers(1, &o.fbo)
	gl.DeleteTextures(1, &o.tex)
	gl.DeleteBuffers(1, &o.vbo)
	gl.DeleteVertexArrays(1, &o.vao)
}
