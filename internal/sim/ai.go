package sim

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// AIDriver follows the centerline one sample ahead, slowing into sharp
// corrections and recovering on the straights.
type AIDriver struct {
	Car
	TargetSpeed float64
}

func NewAIDriver(id VehicleID, pos mgl64.Vec3, yaw float64, r *Rand, col RGB) *AIDriver {
	return &AIDriver{
		Car: Car{
			ID:     id,
			Kind:   KindAI,
			Pos:    pos,
			Yaw:    yaw,
			Speed:  r.RangeF(AIStartSpeedLo, AIStartSpeedHi),
			Radius: CollisionRadius,
			Color:  col,
		},
		TargetSpeed: r.RangeF(AITargetLo, AITargetHi),
	}
}

// Update moves the car, then re-aims and re-paces it for the next tick.
// It returns the nearest centerline index after the move.
func (a *AIDriver) Update(t *Track, dt float64, r *Rand) int {
	a.Integrate()

	nearest, sample, _ := t.NearestIndex(a.Pos)
	target := t.Sample(nearest + 1)

	diff := angDiffDeg(a.Yaw, bearing(a.Pos, target))
	a.Yaw = normDeg(a.Yaw + diff*dt*AISteerGain)

	curve := math.Abs(diff)
	if curve > AISharpTurn {
		a.TargetSpeed = math.Max(AIMinTarget, a.TargetSpeed-AICurveBrake*curve)
	} else {
		a.TargetSpeed = math.Min(r.RangeF(AITargetLo, AITargetHi), a.TargetSpeed+AITargetRecover)
	}

	// Brakes bite harder than the throttle pulls.
	if a.Speed < a.TargetSpeed {
		a.Speed = approach(a.Speed, a.TargetSpeed, AISpeedUp)
	} else {
		a.Speed = approach(a.Speed, a.TargetSpeed, AISpeedDown)
	}

	a.Pos[1] = sample[1] + RideHeight
	a.Nearest = nearest
	return nearest
}
