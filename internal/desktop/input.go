package desktop

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"smokerocket/internal/sprite"
)

// Input is the held control state plus one-shot requests, fed by the key
// callback and read once per frame.
type Input struct {
	controls sprite.Controls
	burst    bool
	debug    bool
	quit     bool
}

// control returns the held-control flag bound to key, or nil. W/A and Z/Q
// share bindings so both QWERTY and AZERTY layouts work.
func (in *Input) control(key glfw.Key) *bool {
	c := &in.controls
	switch key {
	case glfw.KeyUp:
		return &c.Forward
	case glfw.KeyDown:
		return &c.Brake
	case glfw.KeyLeft:
		return &c.RotateCCW
	case glfw.KeyRight:
		return &c.RotateCW
	case glfw.KeyW, glfw.KeyZ:
		return &c.ThrustUp
	case glfw.KeyA, glfw.KeyQ:
		return &c.ThrustLeft
	case glfw.KeyS:
		return &c.ThrustDown
	case glfw.KeyD:
		return &c.ThrustRight
	case glfw.KeySpace, glfw.KeyE:
		return &c.Fire
	}
	return nil
}

// Key applies one key event. Repeats are ignored; the held state only
// changes on press and release.
func (in *Input) Key(key glfw.Key, action glfw.Action) {
	if action == glfw.Repeat {
		return
	}
	down := action == glfw.Press
	if flag := in.control(key); flag != nil {
		*flag = down
		return
	}
	if !down {
		return
	}
	switch key {
	case glfw.KeyB:
		in.burst = true
	case glfw.KeyF1:
		in.debug = true
	case glfw.KeyEscape:
		in.quit = true
	}
}

// Controls returns the currently held controls.
func (in *Input) Controls() sprite.Controls { return in.controls }

// TakeBurst reports and clears a pending burst request.
func (in *Input) TakeBurst() bool {
	b := in.burst
	in.burst = false
	return b
}

// TakeDebug reports and clears a pending debug dump request.
func (in *Input) TakeDebug() bool {
	d := in.debug
	in.debug = false
	return d
}

func (in *Input) Quit() bool { return in.quit }
