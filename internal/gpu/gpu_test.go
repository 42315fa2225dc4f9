package gpu

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"smokerocket/internal/sprite"
)

func TestParseGLVersion(t *testing.T) {
	tests := []struct {
		in           string
		major, minor int
		wantErr      bool
	}{
		{"4.1 Metal - 83.1", 4, 1, false},
		{"4.6.0 NVIDIA 535.54.03", 4, 6, false},
		{"  3.3 (Core Profile) Mesa 23.0.4", 3, 3, false},
		{"OpenGL", 0, 0, true},
		{"x.1", 0, 0, true},
		{"", 0, 0, true},
	}
	for _, tc := range tests {
		major, minor, err := parseGLVersion(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("%q: unexpected error state %v", tc.in, err)
			continue
		}
		if major != tc.major || minor != tc.minor {
			t.Errorf("%q: expected %d.%d, got %d.%d", tc.in, tc.major, tc.minor, major, minor)
		}
	}
}

func TestUniformPanicsOnUnknownName(t *testing.T) {
	p := &Program{name: "splat", uniforms: map[string]int32{"radius": 3}}
	if got := p.Uniform("radius"); got != 3 {
		t.Errorf("expected location 3, got %d", got)
	}
	if _, ok := p.lookup("texelSize"); ok {
		t.Error("expected texelSize to be absent")
	}

	defer func() {
		if recover() == nil {
			t.Error("expected a panic for an unknown uniform")
		}
	}()
	p.Uniform("radiuss")
}

func TestUniformName(t *testing.T) {
	if got := uniformName("weights[0]"); got != "weights" {
		t.Errorf("expected weights, got %q", got)
	}
	if got := uniformName("texelSize"); got != "texelSize" {
		t.Errorf("expected texelSize, got %q", got)
	}
}

func TestShaderErrorsUnwrap(t *testing.T) {
	err := fmt.Errorf("vorticity program: %w", &CompileError{Stage: "vorticity", Log: "0:12: syntax error"})
	var ce *CompileError
	if !errors.As(err, &ce) || ce.Stage != "vorticity" {
		t.Errorf("expected a CompileError for vorticity, got %v", err)
	}
	var le *LinkError
	if errors.As(err, &le) {
		t.Error("did not expect a LinkError")
	}
}

func TestAppendQuad(t *testing.T) {
	const eps = 1e-4
	near := func(a float32, b float64) bool { return math.Abs(float64(a)-b) < eps }

	t.Run("axis aligned", func(t *testing.T) {
		buf := appendQuad(nil, shapeCircle, 50, 40, 200, 100, 0)
		if len(buf) != verticesPerQuad*floatsPerVertex {
			t.Fatalf("expected %d floats, got %d", verticesPerQuad*floatsPerVertex, len(buf))
		}
		// first vertex is the top-left corner
		if !near(buf[0], -50) || !near(buf[1], -10) || buf[2] != -1 || buf[3] != -1 || buf[4] != 0 {
			t.Errorf("unexpected first vertex %v", buf[:floatsPerVertex])
		}
		// third vertex is the bottom-right corner
		v := buf[2*floatsPerVertex : 3*floatsPerVertex]
		if !near(v[0], 150) || !near(v[1], 90) || v[2] != 1 || v[3] != 1 {
			t.Errorf("unexpected third vertex %v", v)
		}
	})

	t.Run("quarter turn", func(t *testing.T) {
		buf := appendQuad(nil, shapeFor(sprite.KindRocket), 10, 10, 4, 2, 90)
		// (-2, -1) rotated clockwise on screen lands at (+1, -2).
		if !near(buf[0], 11) || !near(buf[1], 8) {
			t.Errorf("expected (11, 8), got (%v, %v)", buf[0], buf[1])
		}
		if buf[4] != float32(shapeRocket) {
			t.Errorf("expected rocket shape, got %v", buf[4])
		}
	})

	t.Run("appends", func(t *testing.T) {
		buf := appendQuad(nil, shapeCircle, 0, 0, 1, 1, 0)
		buf = appendQuad(buf, shapeFor(sprite.KindBullet), 0, 0, 1, 1, 45)
		if len(buf) != 2*verticesPerQuad*floatsPerVertex {
			t.Fatalf("expected two quads, got %d floats", len(buf))
		}
		if buf[len(buf)-1] != float32(shapeBullet) {
			t.Errorf("expected bullet shape on the second quad")
		}
	})
}
