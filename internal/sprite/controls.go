package sprite

import "log/slog"

// Controls is the pilot's held input, sampled once per frame.
type Controls struct {
	Forward     bool
	Brake       bool
	RotateCCW   bool
	RotateCW    bool
	ThrustUp    bool
	ThrustDown  bool
	ThrustLeft  bool
	ThrustRight bool
	Fire        bool
}

// Emitting reports whether the rocket produces smoke this frame.
func (c Controls) Emitting() bool { return c.Forward || c.Brake }

// LogValue implements slog.LogValuer for structured logging.
func (c Controls) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("forward", c.Forward),
		slog.Bool("brake", c.Brake),
		slog.Bool("rotate_ccw", c.RotateCCW),
		slog.Bool("rotate_cw", c.RotateCW),
		slog.Bool("thrust_up", c.ThrustUp),
		slog.Bool("thrust_down", c.ThrustDown),
		slog.Bool("thrust_left", c.ThrustLeft),
		slog.Bool("thrust_right", c.ThrustRight),
		slog.Bool("fire", c.Fire),
	)
}
