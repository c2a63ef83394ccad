package sim

import "github.com/go-gl/mathgl/mgl64"

// VehicleID is a stable small index: the player is 0, opponents are 1..n.
// It keys the checkpoint ledger and the standings.
type VehicleID int

const PlayerID VehicleID = 0

type Kind int

const (
	KindPlayer Kind = iota
	KindAI
)

type RGB struct {
	R, G, B float32
}

var (
	PlayerColor = RGB{R: 0.9, G: 0.1, B: 0.1}
	AIColors    = [MaxOpponents]RGB{
		{R: 1.0, G: 0.0, B: 0.0},
		{R: 0.0, G: 1.0, B: 0.0},
		{R: 0.0, G: 0.0, B: 1.0},
		{R: 1.0, G: 1.0, B: 0.0},
		{R: 1.0, G: 0.0, B: 1.0},
		{R: 0.0, G: 1.0, B: 1.0},
		{R: 1.0, G: 0.5, B: 0.0},
	}
)

// Car is the state every vehicle shares, whoever drives it.
type Car struct {
	ID     VehicleID
	Kind   Kind
	Pos    mgl64.Vec3
	Yaw    float64 // degrees, 0 faces +z, 90 faces +x
	Speed  float64 // world units per tick, negative in reverse
	Radius float64
	Laps   int

	// Nearest is the centerline index found on the last update and
	// TrackPosition is Nearest + Laps*track length.
	Nearest       int
	TrackPosition int

	Color RGB
}

// Integrate moves the car one tick along its yaw. Elevation is left alone.
func (c *Car) Integrate() {
	c.Pos = c.Pos.Add(heading(c.Yaw).Mul(c.Speed))
}

// Collide resolves contact between two cars. Both lose the same fraction of
// speed and are pushed apart by equal and opposite amounts along the line
// between their centres. Coincident cars only lose speed.
func Collide(a, b *Car) bool {
	sep := planar(a.Pos.Sub(b.Pos))
	d := sep.Len()
	if d >= a.Radius+b.Radius {
		return false
	}
	a.Speed *= CollisionDamping
	b.Speed *= CollisionDamping
	if d > 0 {
		push := sep.Mul(CollisionPush / 2 / d)
		a.Pos = a.Pos.Add(push)
		b.Pos = b.Pos.Sub(push)
	}
	return true
}
