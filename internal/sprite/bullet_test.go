package sprite

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

func testBullet(x, y, vx, vy float64) *Bullet {
	return newBullet(DefaultBulletConfig(), mgl64.Vec2{x, y}, mgl64.Vec2{vx, vy}, 30, 0, t0)
}

func TestBulletLifetime(t *testing.T) {
	life := DefaultBulletConfig().Lifetime
	b := testBullet(100, 100, 0, 0)

	if b.Expired(t0.Add(life - time.Nanosecond)) {
		t.Errorf("expected bullet alive just before its lifetime")
	}
	if !b.Expired(t0.Add(life)) {
		t.Errorf("expected bullet expired at its lifetime")
	}
}

func TestBulletOffScreen(t *testing.T) {
	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"inside", 10, 10, false},
		{"on the edge", 0, screen.H, false},
		{"left", -0.1, 10, true},
		{"above", 10, -0.1, true},
		{"right", screen.W + 0.1, 10, true},
		{"below", 10, screen.H + 0.1, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := testBullet(tc.x, tc.y, 0, 0)
			if got := b.OffScreen(screen); got != tc.want {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
			if got := b.Dead(t0, screen); got != tc.want {
				t.Errorf("expected Dead=%v before expiry, got %v", tc.want, got)
			}
		})
	}
}

func TestBulletReflects(t *testing.T) {
	tests := []struct {
		name      string
		x, y      float64
		vx, vy    float64
		wantAngle float64
	}{
		{"ceiling", 400, 5, 0, -20, 150},
		{"floor", 400, screen.H - 5, 0, 20, 150},
		{"left wall", 5, 300, -20, 0, -30},
		{"right wall", screen.W - 5, 300, 20, 0, -30},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := testBullet(tc.x, tc.y, tc.vx, tc.vy)
			b.Update(screen)
			if tc.vx*b.Vel[0] > 0 || tc.vy*b.Vel[1] > 0 {
				t.Errorf("expected velocity to flip, got %v", b.Vel)
			}
			if b.Pos[0] < 0 || b.Pos[0] > screen.W || b.Pos[1] < 0 || b.Pos[1] > screen.H {
				t.Errorf("expected position inside bounds, got %v", b.Pos)
			}
			if b.Angle != tc.wantAngle {
				t.Errorf("expected angle %v, got %v", tc.wantAngle, b.Angle)
			}
		})
	}
}

func TestBulletSlowsWithFriction(t *testing.T) {
	b := testBullet(400, 300, 10, 0)
	b.Update(Bounds{W: 1e6, H: 1e6})
	want := 10 * DefaultBulletConfig().Friction
	if b.Vel[0] != want {
		t.Errorf("expected vx %v, got %v", want, b.Vel[0])
	}
	if b.Pos[0] != 400+want {
		t.Errorf("expected x %v, got %v", 400+want, b.Pos[0])
	}
}
