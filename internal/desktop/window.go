package desktop

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"smokerocket/internal/config"
)

// ErrNoContext is returned when no OpenGL 4.1 core context can be created.
var ErrNoContext = errors.New("no OpenGL 4.1 core context")

// Window is a glfw window with a current GL context. It implements
// game.Surface. Must be used from the locked main thread.
type Window struct {
	win   *glfw.Window
	input *Input
}

// OpenWindow initialises glfw and GL and makes the new context current.
func OpenWindow(cfg config.WindowConfig) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("%w: glfw init: %v", ErrNoContext, err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.Decorated, glfw.True)

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("%w: create window: %v", ErrNoContext, err)
	}
	win.MakeContextCurrent()
	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	if err := gl.Init(); err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("%w: gl init: %v", ErrNoContext, err)
	}

	w := &Window{win: win, input: &Input{}}
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		w.input.Key(key, action)
	})
	return w, nil
}

func (w *Window) FramebufferSize() (int, int) { return w.win.GetFramebufferSize() }

func (w *Window) Input() *Input { return w.input }

func (w *Window) ShouldClose() bool { return w.win.ShouldClose() || w.input.Quit() }

func (w *Window) Swap() { w.win.SwapBuffers() }

func (w *Window) Close() {
	w.win.Destroy()
	glfw.Terminate()
}
