package sprite

import (
	"log/slog"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

type BulletConfig struct {
	Width, Height    float64
	Friction         float64
	RotationFriction float64
	MinVelocity      float64
	Lifetime         time.Duration
}

func DefaultBulletConfig() BulletConfig {
	return BulletConfig{
		Width:            40,
		Height:           40,
		Friction:         0.995,
		RotationFriction: 0.995,
		MinVelocity:      0.04,
		Lifetime:         15 * time.Second,
	}
}

type Bullet struct {
	Body

	cfg  BulletConfig
	Shot time.Time
}

func newBullet(cfg BulletConfig, pos, vel mgl64.Vec2, angle, rotVel float64, now time.Time) *Bullet {
	return &Bullet{
		Body: Body{
			Pos:    pos,
			Vel:    vel,
			Angle:  angle,
			RotVel: rotVel,
			Width:  cfg.Width,
			Height: cfg.Height,
		},
		cfg:  cfg,
		Shot: now,
	}
}

// Update advances the bullet one frame. Bullets always reflect; floor and
// ceiling take 180 minus the angle, walls negate it.
func (b *Bullet) Update(bounds Bounds) {
	b.damp(b.cfg.Friction, b.cfg.RotationFriction, b.cfg.MinVelocity)
	b.integrate()
	if reflect(&b.Pos[1], &b.Vel[1], b.Height/2, bounds.H) {
		b.Angle = 180 - b.Angle
	}
	if reflect(&b.Pos[0], &b.Vel[0], b.Width/2, bounds.W) {
		b.Angle = -b.Angle
	}
}

func (b *Bullet) Expired(now time.Time) bool {
	return now.Sub(b.Shot) >= b.cfg.Lifetime
}

func (b *Bullet) OffScreen(bounds Bounds) bool {
	return b.Pos[0] < 0 || b.Pos[1] < 0 || b.Pos[0] > bounds.W || b.Pos[1] > bounds.H
}

// Dead reports whether the bullet should be removed this frame.
func (b *Bullet) Dead(now time.Time, bounds Bounds) bool {
	return b.Expired(now) || b.OffScreen(bounds)
}

// LogValue implements slog.LogValuer for structured logging.
func (b *Bullet) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("x", b.Pos[0]),
		slog.Float64("y", b.Pos[1]),
		slog.Float64("vx", b.Vel[0]),
		slog.Float64("vy", b.Vel[1]),
		slog.Float64("angle", b.Angle),
		slog.Time("shot", b.Shot),
	)
}
