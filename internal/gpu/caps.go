package gpu

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Caps describes the current GL context.
type Caps struct {
	Version      string
	Renderer     string
	Major, Minor int
	// LinearFloatFiltering is true when half-float textures can be sampled
	// with GL_LINEAR. Core profiles from 3.0 on guarantee it.
	LinearFloatFiltering bool
}

func (c Caps) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("version", c.Version),
		slog.String("renderer", c.Renderer),
		slog.Bool("linear_float_filtering", c.LinearFloatFiltering),
	)
}

func detectCaps() (Caps, error) {
	c := Caps{
		Version:  gl.GoStr(gl.GetString(gl.VERSION)),
		Renderer: gl.GoStr(gl.GetString(gl.RENDERER)),
	}
	var err error
	if c.Major, c.Minor, err = parseGLVersion(c.Version); err != nil {
		return c, err
	}
	c.LinearFloatFiltering = c.Major >= 3
	return c, nil
}

// parseGLVersion reads the leading "major.minor" of a GL_VERSION string such
// as "4.1 Metal - 83.1" or "4.6.0 NVIDIA 535.54".
func parseGLVersion(s string) (major, minor int, err error) {
	head, _, _ := strings.Cut(strings.TrimSpace(s), " ")
	parts := strings.SplitN(head, ".", 3)
	if len(parts) < 2 {
		return 0, 0, fmt.Errorf("unrecognised GL version %q", s)
	}
	if major, err = strconv.Atoi(parts[0]); err != nil {
		return 0, 0, fmt.Errorf("unrecognised GL version %q: %w", s, err)
	}
	if minor, err = strconv.Atoi(parts[1]); err != nil {
		return 0, 0, fmt.Errorf("unrecognised GL version %q: %w", s, err)
	}
	return major, minor, nil
}
