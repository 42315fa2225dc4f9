package sprite

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Bounds is the visible area in pixels, y down.
type Bounds struct {
	W, H float64
}

// Policy selects reflect (true) or wrap (false) per pair of edges.
type Policy struct {
	BounceFloorCeiling bool
	BounceWalls        bool
}

func DefaultPolicy() Policy {
	return Policy{BounceFloorCeiling: false, BounceWalls: true}
}

// Body is the kinematic state shared by every sprite. Angle is in degrees,
// 0 facing +x, increasing clockwise on screen.
type Body struct {
	Pos           mgl64.Vec2
	Vel           mgl64.Vec2
	Angle         float64
	RotVel        float64
	Width, Height float64
}

// Heading returns the unit vector the body faces.
func (b *Body) Heading() mgl64.Vec2 {
	return direction(b.Angle)
}

func direction(deg float64) mgl64.Vec2 {
	rad := mgl64.DegToRad(deg)
	return mgl64.Vec2{math.Cos(rad), math.Sin(rad)}
}

// damp applies friction, then snaps components below minVel to zero.
func (b *Body) damp(friction, rotFriction, minVel float64) {
	b.Vel = b.Vel.Mul(friction)
	b.RotVel *= rotFriction
	for i := range b.Vel {
		if math.Abs(b.Vel[i]) < minVel {
			b.Vel[i] = 0
		}
	}
	if math.Abs(b.RotVel) < minVel {
		b.RotVel = 0
	}
}

func (b *Body) integrate() {
	b.Pos = b.Pos.Add(b.Vel)
	b.Angle += b.RotVel
}

// reflect mirrors pos back inside [0, limit] when the body's edge has
// crossed a bound while still moving outward. It reports whether it bounced.
func reflect(pos, vel *float64, half, limit float64) bool {
	switch {
	case *pos-half < 0 && *vel < 0:
		*pos = math.Abs(*pos)
	case *pos+half > limit && *vel > 0:
		*pos = limit - math.Abs(*pos-limit)
	default:
		return false
	}
	*vel = -*vel
	return true
}

// wrap moves a body that has fully left one edge to the opposite edge.
func wrap(pos *float64, vel, half, limit float64) {
	switch {
	case *pos+half < 0 && vel < 0:
		*pos = limit + math.Abs(*pos)
	case *pos-half > limit && vel > 0:
		*pos = -math.Abs(*pos - limit)
	}
}

// Kind identifies what an overlay sprite looks like.
type Kind uint8

const (
	KindRocket Kind = iota
	KindBullet
)

func (k Kind) String() string {
	switch k {
	case KindRocket:
		return "rocket"
	case KindBullet:
		return "bullet"
	}
	return "unknown"
}

// DrawRotation is the overlay rotation in degrees for a body whose artwork
// points up.
func (b *Body) DrawRotation() float64 { return b.Angle + 90 }
