package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"

	"racer/internal/sim"
)

// Camera is a chase camera that sits behind and above the player car.
type Camera struct {
	Eye    mgl32.Vec3
	Target mgl32.Vec3

	// Screen shake.
	ShakeX, ShakeY float64 // current offset in world units
	ShakeTimer     float64 // remaining shake time
	ShakeIntensity float64 // max offset magnitude
}

// Follow places the camera CameraDistance behind the car along its yaw and
// CameraHeight above it, looking at the car.
func (c *Camera) Follow(pos mgl64.Vec3, yaw float64) {
	rad := yaw * math.Pi / 180
	back := mgl64.Vec3{-math.Sin(rad), 0, -math.Cos(rad)}.Mul(CameraDistance)
	c.Eye = vec32(pos.Add(back).Add(mgl64.Vec3{0, CameraHeight, 0}))
	c.Target = vec32(pos)
}

// AddShake triggers screen shake with given intensity and duration.
func (c *Camera) AddShake(intensity, duration float64) {
	if intensity > c.ShakeIntensity {
		c.ShakeIntensity = intensity
	}
	if duration > c.ShakeTimer {
		c.ShakeTimer = duration
	}
}

// UpdateShake decays shake and computes random offsets.
func (c *Camera) UpdateShake(dt float64, seed uint64) {
	if c.ShakeTimer <= 0 {
		c.ShakeX = 0
		c.ShakeY = 0
		c.ShakeIntensity = 0
		return
	}
	c.ShakeTimer -= dt
	if c.ShakeTimer < 0 {
		c.ShakeTimer = 0
	}
	t := c.ShakeTimer
	rr := sim.NewRand(seed ^ uint64(t*10000))
	mag := c.ShakeIntensity * (t / (t + 0.08))
	c.ShakeX = rr.RangeF(-mag, mag)
	c.ShakeY = rr.RangeF(-mag, mag)
}

// ViewProj returns projection * view for a framebuffer of the given size,
// with shake applied to the eye.
func (c *Camera) ViewProj(fbW, fbH int) mgl32.Mat4 {
	aspect := float32(1)
	if fbH > 0 {
		aspect = float32(fbW) / float32(fbH)
	}
	proj := mgl32.Perspective(mgl32.DegToRad(CameraFOV), aspect, CameraNear, CameraFar)
	eye := c.Eye.Add(mgl32.Vec3{float32(c.ShakeX), float32(c.ShakeY), 0})
	view := mgl32.LookAtV(eye, c.Target, mgl32.Vec3{0, 1, 0})
	return proj.Mul4(view)
}

// CarModel is the model matrix for a car mesh at pos facing yaw degrees.
func CarModel(pos mgl64.Vec3, yaw float64) mgl32.Mat4 {
	p := vec32(pos)
	return mgl32.Translate3D(p[0], p[1], p[2]).Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(float32(yaw))))
}
