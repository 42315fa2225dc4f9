package sprite

import (
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"pgregory.net/rapid"
)

var (
	screen = Bounds{W: 800, H: 600}
	t0     = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
)

func newTestRocket() *Rocket {
	return NewRocket(DefaultRocketConfig(), DefaultBulletConfig(), screen.W/2, screen.H/2)
}

func TestRocketCoastsToExactStop(t *testing.T) {
	open := Bounds{W: 1e9, H: 1e9}
	rapid.Check(t, func(t *rapid.T) {
		r := NewRocket(DefaultRocketConfig(), DefaultBulletConfig(), open.W/2, open.H/2)
		r.Vel = mgl64.Vec2{
			rapid.Float64Range(-10, 10).Draw(t, "vx"),
			rapid.Float64Range(-10, 10).Draw(t, "vy"),
		}
		r.RotVel = rapid.Float64Range(-10, 10).Draw(t, "rot")

		prev := r.Vel.Len()
		for i := 0; i < 400; i++ {
			r.Update(Controls{}, open, DefaultPolicy(), t0)
			if l := r.Vel.Len(); l > prev {
				t.Fatalf("frame %d: speed rose from %v to %v", i, prev, l)
			}
			prev = r.Vel.Len()
		}
		if r.Vel[0] != 0 || r.Vel[1] != 0 || r.RotVel != 0 {
			t.Fatalf("expected exact rest, got vel=%v rot=%v", r.Vel, r.RotVel)
		}
	})
}

func TestRocketReflectsOffWalls(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		r := newTestRocket()
		left := rapid.Bool().Draw(t, "left")
		inset := rapid.Float64Range(0, r.Width/2-0.01).Draw(t, "inset")
		speed := rapid.Float64Range(1, 10).Draw(t, "speed")
		r.Pos[0] = inset
		r.Vel[0] = -speed
		if !left {
			r.Pos[0] = screen.W - inset
			r.Vel[0] = speed
		}
		r.Vel[1] = 0
		angle := r.Angle

		r.Update(Controls{}, screen, Policy{BounceWalls: true}, t0)

		if left && r.Vel[0] <= 0 || !left && r.Vel[0] >= 0 {
			t.Fatalf("expected horizontal velocity to flip, got %v", r.Vel[0])
		}
		if r.Pos[0] < 0 || r.Pos[0] > screen.W {
			t.Fatalf("expected x inside bounds, got %v", r.Pos[0])
		}
		if r.Angle != 180-angle {
			t.Fatalf("expected angle %v, got %v", 180-angle, r.Angle)
		}
	})
}

func TestRocketReflectsOffCeiling(t *testing.T) {
	r := newTestRocket()
	r.Pos[1] = 10
	r.Vel[1] = -5
	r.Angle = -60

	r.Update(Controls{}, screen, Policy{BounceFloorCeiling: true, BounceWalls: true}, t0)

	if r.Vel[1] <= 0 {
		t.Errorf("expected vertical velocity to flip, got %v", r.Vel[1])
	}
	if r.Pos[1] < 0 {
		t.Errorf("expected y mirrored inside, got %v", r.Pos[1])
	}
	if r.Angle != 60 {
		t.Errorf("expected angle 60, got %v", r.Angle)
	}
}

func TestRocketWrapsThroughCeilingAndFloor(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		r := newTestRocket()
		cfg := r.Config()
		up := rapid.Bool().Draw(t, "up")
		beyond := rapid.Float64Range(r.Height/2+15, 1000).Draw(t, "beyond")
		speed := rapid.Float64Range(1, 10).Draw(t, "speed")
		r.Vel = mgl64.Vec2{0, speed}
		r.Pos[1] = screen.H + beyond
		if up {
			r.Vel[1] = -speed
			r.Pos[1] = -beyond
		}
		moved := r.Pos[1] + r.Vel[1]*cfg.Friction

		r.Update(Controls{}, screen, DefaultPolicy(), t0)

		want := -math.Abs(moved - screen.H)
		if up {
			want = screen.H + math.Abs(moved)
		}
		if r.Pos[1] != want {
			t.Fatalf("expected re-entry at %v, got %v", want, r.Pos[1])
		}
		if up && r.Pos[1] <= screen.H || !up && r.Pos[1] >= 0 {
			t.Fatalf("expected to re-enter from the opposite edge, got %v", r.Pos[1])
		}
		if math.Signbit(r.Vel[1]) != up {
			t.Fatalf("wrap must not change velocity, got %v", r.Vel[1])
		}
	})
}

func TestRocketBrake(t *testing.T) {
	cfg := DefaultRocketConfig()

	t.Run("still rocket reverses", func(t *testing.T) {
		r := newTestRocket()
		r.Update(Controls{Brake: true}, screen, DefaultPolicy(), t0)
		if !r.Reversing() {
			t.Fatalf("expected reversing state")
		}
		want := cfg.ReverseThrust * cfg.Friction
		if math.Abs(r.Vel[1]-want) > 1e-12 || math.Abs(r.Vel[0]) > 1e-12 {
			t.Errorf("expected backward drift (0, %v), got %v", want, r.Vel)
		}
	})

	t.Run("moving rocket slows", func(t *testing.T) {
		r := newTestRocket()
		r.Vel = mgl64.Vec2{4, 0}
		r.Update(Controls{Brake: true}, screen, DefaultPolicy(), t0)
		if r.Reversing() {
			t.Errorf("expected plain braking while moving")
		}
		want := 4 * (1 - cfg.BrakeForce) * cfg.Friction
		if math.Abs(r.Vel[0]-want) > 1e-12 {
			t.Errorf("expected vx %v, got %v", want, r.Vel[0])
		}
	})

	t.Run("forward cancels reverse", func(t *testing.T) {
		r := newTestRocket()
		r.Update(Controls{Brake: true}, screen, DefaultPolicy(), t0)
		r.Update(Controls{Forward: true}, screen, DefaultPolicy(), t0)
		if r.Reversing() {
			t.Errorf("expected forward thrust to leave reverse")
		}
	})
}

func TestRocketThrustRespectsMaxVelocity(t *testing.T) {
	r := NewRocket(DefaultRocketConfig(), DefaultBulletConfig(), 0, 0)
	open := Bounds{W: 1e9, H: 1e9}
	for i := 0; i < 200; i++ {
		r.Update(Controls{ThrustRight: true, RotateCW: true}, open, DefaultPolicy(), t0)
	}
	maxV := r.Config().MaxVelocity
	if r.Vel[0] > maxV+r.Config().Thrust {
		t.Errorf("expected vx capped near %v, got %v", maxV, r.Vel[0])
	}
	if r.RotVel > maxV+r.Config().RotationThrust {
		t.Errorf("expected rotation capped near %v, got %v", maxV, r.RotVel)
	}
}

func TestRocketFireRateLimit(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		r := newTestRocket()
		reload := r.Config().Reload
		gap := time.Duration(rapid.Int64Range(0, int64(reload)-1).Draw(t, "gap"))

		first := r.Fire(t0)
		second := r.Fire(t0.Add(gap))
		if first == nil || second != nil {
			t.Fatalf("expected exactly one bullet for a %v gap", gap)
		}
		if r.Fire(t0.Add(reload)) == nil {
			t.Fatalf("expected a bullet once the reload elapsed")
		}
	})
}

func TestRocketFireLaunchesFromNose(t *testing.T) {
	r := newTestRocket()
	r.Vel = mgl64.Vec2{1, 0}
	r.RotVel = 2

	b := r.Fire(t0)
	if b == nil {
		t.Fatal("expected a bullet")
	}
	speed := r.Config().MaxVelocity + r.Config().MuzzleBoost
	if math.Abs(b.Vel[0]-1) > 1e-9 || math.Abs(b.Vel[1]+speed) > 1e-9 {
		t.Errorf("expected velocity (1, %v), got %v", -speed, b.Vel)
	}
	if b.Angle != -180 || b.RotVel != -2 {
		t.Errorf("expected angle -180 and spin -2, got %v and %v", b.Angle, b.RotVel)
	}
	if b.Pos != r.Pos || !b.Shot.Equal(t0) {
		t.Errorf("expected bullet at the rocket with shot time set")
	}
}

func TestRocketExhaust(t *testing.T) {
	smoke := DefaultRocketConfig().Smoke
	tests := []struct {
		name     string
		controls Controls
		wantY    float64
		curl     float32
		radius   float32
	}{
		{"forward thrust trails below", Controls{Forward: true}, 300 + 35 + smoke.ThrustDistance, smoke.ThrustCurl, smoke.ThrustRadius},
		{"brake from rest plumes ahead", Controls{Brake: true}, 300 - 35 - smoke.BrakeDistance, smoke.BrakeCurl, smoke.BrakeRadius},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRocket()
			ex, ok := r.Exhaust(tc.controls)
			if !ok {
				t.Fatal("expected emission")
			}
			if math.Abs(ex.X-400) > 1e-9 || math.Abs(ex.Y-tc.wantY) > 1e-9 {
				t.Errorf("expected tail (400, %v), got (%v, %v)", tc.wantY, ex.X, ex.Y)
			}
			if ex.Curl != tc.curl || ex.Radius != tc.radius || r.SmokeCurl() != tc.curl {
				t.Errorf("expected curl %v radius %v, got %v %v", tc.curl, tc.radius, ex.Curl, ex.Radius)
			}
		})
	}
}

func TestRocketExhaustIdleKeepsCurl(t *testing.T) {
	r := newTestRocket()
	r.Exhaust(Controls{Brake: true})
	if _, ok := r.Exhaust(Controls{Fire: true}); ok {
		t.Fatal("expected no emission without thrust or brake")
	}
	if r.SmokeCurl() != DefaultRocketConfig().Smoke.BrakeCurl {
		t.Errorf("expected the last curl to persist, got %v", r.SmokeCurl())
	}
}

func TestLogValuesEnumerateFields(t *testing.T) {
	c := Controls{Forward: true, Fire: true}
	attrs := c.LogValue().Group()
	if len(attrs) != 9 {
		t.Fatalf("expected 9 control attrs, got %d", len(attrs))
	}
	if attrs[0].Key != "forward" || !attrs[0].Value.Bool() {
		t.Errorf("expected forward=true first, got %v", attrs[0])
	}

	r := newTestRocket()
	got := map[string]bool{}
	for _, a := range r.LogValue().Group() {
		got[a.Key] = true
	}
	for _, k := range []string{"x", "y", "vx", "vy", "angle", "smoke_curl"} {
		if !got[k] {
			t.Errorf("expected rocket attr %q", k)
		}
	}
}
