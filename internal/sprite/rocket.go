package sprite

import (
	"log/slog"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// SmokeConfig tunes the exhaust for the two emitting modes.
type SmokeConfig struct {
	ThrustCurl     float32
	ThrustRadius   float32
	ThrustDistance float64 // pixels behind the hull edge
	BrakeCurl      float32
	BrakeRadius    float32
	BrakeDistance  float64
}

type RocketConfig struct {
	Width, Height    float64
	Friction         float64
	RotationFriction float64
	MinVelocity      float64
	MaxVelocity      float64
	Thrust           float64
	RotationThrust   float64
	ReverseThrust    float64
	BrakeForce       float64
	RotationBrake    float64
	// MuzzleBoost is added to MaxVelocity to get a bullet's launch speed.
	MuzzleBoost float64
	Reload      time.Duration
	Smoke       SmokeConfig
}

func DefaultRocketConfig() RocketConfig {
	return RocketConfig{
		Width:            70,
		Height:           70,
		Friction:         0.98,
		RotationFriction: 0.96,
		MinVelocity:      0.04,
		MaxVelocity:      10,
		Thrust:           0.5,
		RotationThrust:   0.4,
		ReverseThrust:    0.1,
		BrakeForce:       0.1,
		RotationBrake:    0.1,
		MuzzleBoost:      20,
		Reload:           150 * time.Millisecond,
		Smoke: SmokeConfig{
			ThrustCurl:     20,
			ThrustRadius:   0.0005,
			ThrustDistance: 20,
			BrakeCurl:      10,
			BrakeRadius:    0.0001,
			BrakeDistance:  10,
		},
	}
}

// Rocket is the player ship.
type Rocket struct {
	Body

	cfg    RocketConfig
	bullet BulletConfig

	reversing bool
	lastShot  time.Time
	curl      float32
	radius    float32
}

// NewRocket places a rocket at (x, y) pointing up.
func NewRocket(cfg RocketConfig, bullet BulletConfig, x, y float64) *Rocket {
	return &Rocket{
		Body: Body{
			Pos:    mgl64.Vec2{x, y},
			Angle:  -90,
			Width:  cfg.Width,
			Height: cfg.Height,
		},
		cfg:    cfg,
		bullet: bullet,
		curl:   cfg.Smoke.ThrustCurl,
		radius: cfg.Smoke.ThrustRadius,
	}
}

func (r *Rocket) Config() RocketConfig { return r.cfg }

// Reversing reports whether braking has turned into reverse thrust.
func (r *Rocket) Reversing() bool { return r.reversing }

// SmokeCurl is the vorticity strength of the most recent exhaust.
func (r *Rocket) SmokeCurl() float32 { return r.curl }

// Update advances the rocket one frame and returns the bullet fired this
// frame, if any.
func (r *Rocket) Update(c Controls, bounds Bounds, policy Policy, now time.Time) *Bullet {
	r.steer(c)
	r.damp(r.cfg.Friction, r.cfg.RotationFriction, r.cfg.MinVelocity)
	r.integrate()
	r.applyBounds(bounds, policy)
	if c.Fire {
		return r.Fire(now)
	}
	return nil
}

func (r *Rocket) steer(c Controls) {
	maxV := r.cfg.MaxVelocity

	if c.ThrustUp && !c.ThrustDown && r.Vel[1] > -maxV {
		r.Vel[1] -= r.cfg.Thrust
		r.reversing = false
	} else if !c.ThrustUp && c.ThrustDown && r.Vel[1] < maxV {
		r.Vel[1] += r.cfg.Thrust
		r.reversing = false
	}

	if c.ThrustLeft && !c.ThrustRight && r.Vel[0] > -maxV {
		r.Vel[0] -= r.cfg.Thrust
		r.reversing = false
	} else if !c.ThrustLeft && c.ThrustRight && r.Vel[0] < maxV {
		r.Vel[0] += r.cfg.Thrust
		r.reversing = false
	}

	if c.RotateCCW && !c.RotateCW && r.RotVel > -maxV {
		r.RotVel -= r.cfg.RotationThrust
	} else if !c.RotateCCW && c.RotateCW && r.RotVel < maxV {
		r.RotVel += r.cfg.RotationThrust
	}

	if c.Forward && !c.Brake {
		r.Vel = r.Vel.Add(r.Heading().Mul(r.cfg.Thrust))
		r.reversing = false
	}

	if !c.Brake {
		return
	}
	still := r.Vel[0] == 0 && r.Vel[1] == 0
	if !c.Forward && (still || r.reversing) {
		r.reversing = true
		r.Vel = r.Vel.Sub(r.Heading().Mul(r.cfg.ReverseThrust))
	} else {
		r.Vel = r.Vel.Mul(1 - r.cfg.BrakeForce)
	}
	r.RotVel *= 1 - r.cfg.RotationBrake
}

// applyBounds handles each axis independently. Reflection mirrors the angle:
// floor and ceiling negate it, walls take 180 minus it.
func (r *Rocket) applyBounds(bounds Bounds, policy Policy) {
	if policy.BounceFloorCeiling {
		if reflect(&r.Pos[1], &r.Vel[1], r.Height/2, bounds.H) {
			r.Angle = -r.Angle
		}
	} else {
		wrap(&r.Pos[1], r.Vel[1], r.Height/2, bounds.H)
	}
	if policy.BounceWalls {
		if reflect(&r.Pos[0], &r.Vel[0], r.Width/2, bounds.W) {
			r.Angle = 180 - r.Angle
		}
	} else {
		wrap(&r.Pos[0], r.Vel[0], r.Width/2, bounds.W)
	}
}

// Fire launches a bullet unless the previous one left less than the reload
// interval ago. Rejected shots are dropped.
func (r *Rocket) Fire(now time.Time) *Bullet {
	if !r.lastShot.IsZero() && now.Sub(r.lastShot) < r.cfg.Reload {
		return nil
	}
	r.lastShot = now
	muzzle := r.Heading().Mul(r.cfg.MaxVelocity + r.cfg.MuzzleBoost)
	return newBullet(r.bullet, r.Pos, muzzle.Add(r.Vel), r.Angle-90, -r.RotVel, now)
}

// Exhaust is where and how smoke leaves the rocket this frame, in pixels.
type Exhaust struct {
	X, Y   float64
	Radius float32
	Curl   float32
}

// Exhaust computes the tail emission point for c. It returns false when the
// rocket is not emitting. Braking aims the plume using the velocity angle and
// uses the smaller brake tuning; the chosen curl persists for later frames.
func (r *Rocket) Exhaust(c Controls) (Exhaust, bool) {
	if !c.Emitting() {
		return Exhaust{}, false
	}
	s := r.cfg.Smoke
	curl, radius, distance := s.ThrustCurl, s.ThrustRadius, s.ThrustDistance
	offset := 180.0
	if c.Brake {
		curl, radius, distance = s.BrakeCurl, s.BrakeRadius, s.BrakeDistance
		// Radians added to a degree angle; the plume tuning depends on it.
		offset = math.Atan2(r.Vel[0], r.Vel[1])
	}
	r.curl, r.radius = curl, radius

	tail := r.Pos.Add(direction(r.Angle + offset).Mul(r.Height/2 + distance))
	return Exhaust{X: tail[0], Y: tail[1], Radius: radius, Curl: curl}, true
}

// LogValue implements slog.LogValuer for structured logging.
func (r *Rocket) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("x", r.Pos[0]),
		slog.Float64("y", r.Pos[1]),
		slog.Float64("vx", r.Vel[0]),
		slog.Float64("vy", r.Vel[1]),
		slog.Float64("angle", r.Angle),
		slog.Float64("rot_vel", r.RotVel),
		slog.Bool("reversing", r.reversing),
		slog.Float64("smoke_curl", float64(r.curl)),
		slog.Float64("smoke_radius", float64(r.radius)),
		slog.Time("last_shot", r.lastShot),
	)
}
