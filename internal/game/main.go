package game

import (
	"fmt"
	"math"
	"os"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl64"

	"racer/internal/sim"
)

func RunDesktop() {
	runtime.LockOSThread()

	window, err := initWindow()
	if err != nil {
		panic(err)
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		panic(fmt.Errorf("gl init: %w", err))
	}

	// Initialize audio system.
	if err := InitAudio(); err != nil {
		fmt.Fprintf(os.Stderr, "audio init failed (continuing without sound): %v\n", err)
	} else {
		StartEngine()
	}

	cfg := raceConfig()
	session, err := NewSession(cfg)
	if err != nil {
		panic(err)
	}
	race := session.Race
	BindAudio(race.Events())

	cam := Camera{}
	particles := NewParticleSystem(MaxParticles, cfg.Seed^0xBEAD)
	race.Events().Subscribe(sim.EventCollision, func(e sim.Event) {
		cam.AddShake(0.12, 0.25)
		y := race.Player().Pos[1]
		particles.SpawnSparks(mgl64.Vec3{e.X, y, e.Z}, 1)
	})
	race.Events().Subscribe(sim.EventRaceFinished, func(sim.Event) {
		particles.SpawnConfetti(race.Player().Pos)
	})
	race.Events().Subscribe(sim.EventReset, func(sim.Event) {
		particles.Clear()
	})

	// GL state.
	gl.Disable(gl.CULL_FACE)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)

	// Renderer.
	rend, err := NewRenderer()
	if err != nil {
		panic(fmt.Errorf("renderer: %w", err))
	}
	defer rend.Destroy()
	if err := rend.InitFont(); err != nil {
		panic(fmt.Errorf("font: %w", err))
	}

	world := TrackMesh(race.Track())
	world.Append(LandscapeMesh(race.Scenery(), Mountains(sim.NewRand(cfg.Seed^0x40DE5))))
	rend.UploadWorld(world)
	rend.UploadCar(CarMesh())

	input := NewInput()
	fullscreen := false

	last := glfw.GetTime()
	session.Restart(last)
	for !window.ShouldClose() {
		now := glfw.GetTime()
		dt := now - last
		last = now

		glfw.PollEvents()
		if window.GetKey(glfw.KeyEscape) == glfw.Press {
			window.SetShouldClose(true)
			continue
		}
		if input.JustPressed(window, glfw.KeyF) {
			fullscreen = toggleFullscreen(window, fullscreen)
		}
		if input.JustPressed(window, glfw.KeyEnter) && session.CanRestart() {
			session.Restart(now)
		}

		fbW, fbH := window.GetFramebufferSize()
		if fbW <= 0 || fbH <= 0 {
			continue
		}

		snap := session.Frame(now, dt, Controls(window))
		SetEngine(snap.SpeedFraction)

		player := snap.Vehicles[0]
		if snap.State == sim.StateRacing && snap.OffTrack {
			particles.SpawnDust(player.Pos, player.Yaw, math.Abs(player.Speed))
		}
		particles.Update(clampF(dt, 0, MaxFrameDelta), GroundLevel)

		cam.Follow(player.Pos, player.Yaw)
		cam.UpdateShake(dt, cfg.Seed^uint64(now*1000))
		viewProj := cam.ViewProj(fbW, fbH)

		rend.BeginFrame(fbW, fbH)
		rend.DrawWorld(viewProj)
		for _, v := range snap.Vehicles {
			rend.DrawCar(viewProj, CarModel(v.Pos, v.Yaw), fromSim(v.Color))
		}
		rend.DrawParticles(particles, viewProj, fbH)
		rend.RenderHUD(HUDLayout(snap, cfg.CountdownInterval, fbW, fbH), fbW, fbH)

		window.SwapBuffers()
	}
}
