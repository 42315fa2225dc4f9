package gpu

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"smokerocket/internal/fluid"
)

// ErrIncompleteFramebuffer is returned when a render target cannot be used
// with the requested texture format.
var ErrIncompleteFramebuffer = errors.New("framebuffer incomplete")

// Framebuffer is a float texture with its own render target. It implements
// fluid.Field.
type Framebuffer struct {
	tex    uint32
	fbo    uint32
	w, h   int
	format fluid.Format
}

func (f *Framebuffer) Size() (int, int) { return f.w, f.h }

func textureFormat(format fluid.Format) (internal int32, layout uint32) {
	if format == fluid.FormatRGBA {
		return gl.RGBA16F, gl.RGBA
	}
	return gl.RG16F, gl.RG
}

func textureFilter(filter fluid.Filter) int32 {
	if filter == fluid.FilterLinear {
		return gl.LINEAR
	}
	return gl.NEAREST
}

// newFramebuffer allocates a half-float texture, attaches it to a new FBO
// and clears it to zero. It leaves the FBO bound.
func newFramebuffer(w, h int, format fluid.Format, filter fluid.Filter) (*Framebuffer, error) {
	internal, layout := textureFormat(format)
	param := textureFilter(filter)

	f := &Framebuffer{w: w, h: h, format: format}
	gl.ActiveTexture(gl.TEXTURE0)
	gl.GenTextures(1, &f.tex)
	gl.BindTexture(gl.TEXTURE_2D, f.tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, param)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, param)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, internal, int32(w), int32(h), 0, layout, gl.HALF_FLOAT, nil)

	gl.GenFramebuffers(1, &f.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, f.fbo)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, f.tex, 0)
	if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		f.Delete()
		return nil, fmt.Errorf("%w: %dx%d status 0x%x", ErrIncompleteFramebuffer, w, h, status)
	}
	gl.Viewport(0, 0, int32(w), int32(h))
	gl.ClearColor(0, 0, 0, 0)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	return f, nil
}

// attach binds the texture to unit and returns the unit for a sampler
// uniform.
func (f *Framebuffer) attach(unit uint32) int32 {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, f.tex)
	return int32(unit)
}

// target binds f as the render target with a matching viewport.
func (f *Framebuffer) target() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, f.fbo)
	gl.Viewport(0, 0, int32(f.w), int32(f.h))
}

func (f *Framebuffer) read() fluid.FieldData {
	ch := f.format.Channels()
	_, layout := textureFormat(f.format)
	pix := make([]float32, f.w*f.h*ch)
	gl.BindFramebuffer(gl.FRAMEBUFFER, f.fbo)
	gl.ReadBuffer(gl.COLOR_ATTACHMENT0)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 4)
	gl.ReadPixels(0, 0, int32(f.w), int32(f.h), layout, gl.FLOAT, unsafe.Pointer(&pix[0]))
	return fluid.FieldData{Width: f.w, Height: f.h, Channels: ch, Pix: pix}
}

func (f *Framebuffer) Delete() {
	if f.fbo != 0 {
		gl.DeleteFramebuffers(1, &f.fbo)
		f.fbo = 0
	}
	if f.tex != 0 {
		gl.DeleteTextures(1, &f.tex)
		f.tex = 0
	}
}

// glOffset converts a byte offset to unsafe.Pointer for VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

// quad is the full-screen triangle pair every fluid pass draws.
type quad struct {
	vao, vbo uint32
}

func newQuad() *quad {
	q := &quad{}
	gl.GenVertexArrays(1, &q.vao)
	gl.GenBuffers(1, &q.vbo)
	gl.BindVertexArray(q.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, q.vbo)

	verts := [12]float32{
		-1, -1, 1, -1, 1, 1,
		-1, -1, 1, 1, -1, 1,
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(&verts[0]), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, glOffset(0))
	gl.BindVertexArray(0)
	return q
}

func (q *quad) draw() {
	gl.BindVertexArray(q.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
}

func (q *quad) Delete() {
	gl.DeleteBuffers(1, &q.vbo)
	gl.DeleteVertexArrays(1, &q.vao)
}
