package gpu

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// CompileError carries the driver's info log for a shader that failed to
// compile.
type CompileError struct {
	Stage string
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compile %s shader: %s", e.Stage, e.Log)
}

// LinkError carries the driver's info log for a program that failed to link.
type LinkError struct {
	Program string
	Log     string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("link %s program: %s", e.Program, e.Log)
}

// Program is a linked shader program with its active uniforms resolved once
// at link time.
type Program struct {
	id       uint32
	name     string
	uniforms map[string]int32
}

// Uniform returns the location of an active uniform. Asking for a name the
// program does not use is a programming error and panics.
func (p *Program) Uniform(name string) int32 {
	loc, ok := p.uniforms[name]
	if !ok {
		panic(fmt.Sprintf("gpu: program %s has no active uniform %q", p.name, name))
	}
	return loc
}

// lookup is Uniform for uniforms the linker may legitimately drop, such as
// texelSize in passes whose fragment stage ignores the neighbour taps.
func (p *Program) lookup(name string) (int32, bool) {
	loc, ok := p.uniforms[name]
	return loc, ok
}

// Bind makes p the current program.
func (p *Program) Bind() { gl.UseProgram(p.id) }

func (p *Program) Delete() {
	if p.id != 0 {
		gl.DeleteProgram(p.id)
		p.id = 0
	}
}

func compileShader(stage, source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		buf := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(buf))
		gl.DeleteShader(shader)
		return 0, &CompileError{Stage: stage, Log: strings.TrimRight(buf, "\x00")}
	}
	return shader, nil
}

// linkProgram links an already compiled vertex stage with fragSrc. The
// vertex shader stays owned by the caller.
func linkProgram(name string, vs uint32, fragSrc string) (*Program, error) {
	fs, err := compileShader(name, fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return nil, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)

	gl.DetachShader(program, vs)
	gl.DetachShader(program, fs)
	gl.DeleteShader(fs)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		buf := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(program, logLen, nil, gl.Str(buf))
		gl.DeleteProgram(program)
		return nil, &LinkError{Program: name, Log: strings.TrimRight(buf, "\x00")}
	}
	return &Program{id: program, name: name, uniforms: activeUniforms(program)}, nil
}

func activeUniforms(program uint32) map[string]int32 {
	var count, maxLen int32
	gl.GetProgramiv(program, gl.ACTIVE_UNIFORMS, &count)
	gl.GetProgramiv(program, gl.ACTIVE_UNIFORM_MAX_LENGTH, &maxLen)

	uniforms := make(map[string]int32, count)
	buf := make([]uint8, maxLen+1)
	for i := int32(0); i < count; i++ {
		var length, size int32
		var xtype uint32
		gl.GetActiveUniform(program, uint32(i), maxLen+1, &length, &size, &xtype, &buf[0])
		name := uniformName(string(buf[:length]))
		uniforms[name] = gl.GetUniformLocation(program, gl.Str(name+"\x00"))
	}
	return uniforms
}

// uniformName strips the "[0]" suffix drivers report for array uniforms.
func uniformName(s string) string {
	return strings.TrimSuffix(s, "[0]")
}

// shaderSet is the registry of every program the device and overlay use.
type shaderSet struct {
	clear, display, splat       *Program
	advection, divergence, curl *Program
	advectionManual, vorticity  *Program
	pressure, gradient          *Program
	overlay, composite          *Program
}

type programSource struct {
	name string
	vert string
	frag string
	dst  **Program
}

// newShaderSet compiles the shared vertex stages once and links every
// program. Any failure is fatal for the caller.
func newShaderSet() (*shaderSet, error) {
	s := &shaderSet{}
	sources := []programSource{
		{"clear", baseVertSrc, clearFragSrc, &s.clear},
		{"display", baseVertSrc, displayFragSrc, &s.display},
		{"splat", baseVertSrc, splatFragSrc, &s.splat},
		{"advection", baseVertSrc, advectionFragSrc, &s.advection},
		{"advection_manual", baseVertSrc, advectionManualFragSrc, &s.advectionManual},
		{"divergence", baseVertSrc, divergenceFragSrc, &s.divergence},
		{"curl", baseVertSrc, curlFragSrc, &s.curl},
		{"vorticity", baseVertSrc, vorticityFragSrc, &s.vorticity},
		{"pressure", baseVertSrc, pressureFragSrc, &s.pressure},
		{"gradient_subtract", baseVertSrc, gradientSubtractFragSrc, &s.gradient},
		{"overlay", overlayVertSrc, overlayFragSrc, &s.overlay},
		{"composite", baseVertSrc, compositeFragSrc, &s.composite},
	}

	vertex := map[string]uint32{}
	defer func() {
		for _, vs := range vertex {
			gl.DeleteShader(vs)
		}
	}()
	for _, src := range sources {
		vs, ok := vertex[src.vert]
		if !ok {
			var err error
			stage := "base vertex"
			if src.vert == overlayVertSrc {
				stage = "overlay vertex"
			}
			if vs, err = compileShader(stage, src.vert, gl.VERTEX_SHADER); err != nil {
				s.Delete()
				return nil, err
			}
			vertex[src.vert] = vs
		}
		p, err := linkProgram(src.name, vs, src.frag)
		if err != nil {
			s.Delete()
			return nil, fmt.Errorf("%s program: %w", src.name, err)
		}
		*src.dst = p
	}
	return s, nil
}

func (s *shaderSet) all() []*Program {
	return []*Program{
		s.clear, s.display, s.splat, s.advection, s.advectionManual,
		s.divergence, s.curl, s.vorticity, s.pressure, s.gradient, s.overlay, s.composite,
	}
}

func (s *shaderSet) Delete() {
	for _, p := range s.all() {
		if p != nil {
			p.Delete()
		}
	}
}
