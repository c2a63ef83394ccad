package game

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func initWindow() (*glfw.Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.Decorated, glfw.True)
	glfw.WindowHint(glfw.Samples, 4)

	window, err := glfw.CreateWindow(WindowWidth, WindowHeight, "Racing", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	return window, nil
}

// toggleFullscreen switches between the windowed size and a fullscreen mode on
// the primary monitor.
func toggleFullscreen(window *glfw.Window, fullscreen bool) bool {
	if fullscreen {
		window.SetMonitor(nil, 100, 100, WindowWidth, WindowHeight, glfw.DontCare)
		return false
	}
	mon := glfw.GetPrimaryMonitor()
	if mon == nil {
		return false
	}
	window.SetMonitor(mon, 0, 0, FullscreenWidth, FullscreenHeight, glfw.DontCare)
	return true
}
