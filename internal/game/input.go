package game

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"racer/internal/sim"
)

// keySource is the part of *glfw.Window the input layer reads.
type keySource interface {
	GetKey(key glfw.Key) glfw.Action
}

type Input struct {
	prevKeys map[glfw.Key]bool
}

func NewInput() *Input {
	return &Input{
		prevKeys: make(map[glfw.Key]bool),
	}
}

func (in *Input) JustPressed(window keySource, key glfw.Key) bool {
	down := window.GetKey(key) == glfw.Press
	jp := down && !in.prevKeys[key]
	in.prevKeys[key] = down
	return jp
}

func anyDown(window keySource, keys ...glfw.Key) bool {
	for _, k := range keys {
		if window.GetKey(k) == glfw.Press {
			return true
		}
	}
	return false
}

// Controls samples the held driving keys. Gear shifts are reported as held;
// the simulation turns them into single shifts on the press edge.
func Controls(window keySource) sim.Input {
	return sim.Input{
		Throttle:   anyDown(window, glfw.KeyUp, glfw.KeyW),
		Reverse:    anyDown(window, glfw.KeyDown, glfw.KeyS),
		Brake:      anyDown(window, glfw.KeySpace),
		SteerLeft:  anyDown(window, glfw.KeyLeft, glfw.KeyA),
		SteerRight: anyDown(window, glfw.KeyRight, glfw.KeyD),
		ShiftUp:    anyDown(window, glfw.KeyLeftShift),
		ShiftDown:  anyDown(window, glfw.KeyLeftControl),
	}
}
