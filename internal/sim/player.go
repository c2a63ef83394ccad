package sim

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Input is the held state of the player's controls for one tick.
type Input struct {
	Throttle   bool
	Reverse    bool
	Brake      bool
	SteerLeft  bool
	SteerRight bool
	ShiftUp    bool
	ShiftDown  bool
}

// Player is the human-driven car with a sequential gearbox.
type Player struct {
	Car
	Accel        float64
	Gear         int
	MaxGear      int
	MaxSpeed     float64
	MaxReverse   float64
	SteeringRate float64

	prevShiftUp   bool
	prevShiftDown bool
}

func NewPlayer(pos mgl64.Vec3, yaw float64) *Player {
	return &Player{
		Car: Car{
			ID:     PlayerID,
			Kind:   KindPlayer,
			Pos:    pos,
			Yaw:    yaw,
			Radius: CollisionRadius,
			Color:  PlayerColor,
		},
		MaxGear:      PlayerMaxGear,
		MaxSpeed:     PlayerMaxSpeed,
		MaxReverse:   PlayerMaxReverse,
		SteeringRate: PlayerSteeringRate,
	}
}

// GearCap is the forward speed ceiling of the current gear.
func (p *Player) GearCap() float64 {
	return float64(p.Gear) / float64(p.MaxGear) * p.MaxSpeed
}

// Drive applies one tick of input: gear changes, throttle, speed clamp,
// brake, steering, then movement. It reports whether the gear changed.
func (p *Player) Drive(in Input) bool {
	shifted := p.shift(in)

	switch {
	case in.Throttle:
		p.Accel = 0
		if p.Gear > 0 {
			p.Accel = PlayerGearAccel * float64(p.Gear)
		}
		p.Speed += p.Accel
	case in.Reverse:
		p.Accel = PlayerReverseAccel
		p.Speed += p.Accel
	default:
		// Engine braking bleeds speed toward a standstill.
		before := p.Speed
		p.Speed = approach(p.Speed, 0, -PlayerEngineBraking)
		p.Accel = p.Speed - before
	}
	p.Speed = clampF(p.Speed, -p.MaxReverse, p.GearCap())

	if in.Brake {
		p.Speed *= PlayerBrakeDamping
	}

	p.steer(in)
	p.Integrate()
	return shifted
}

// shift changes gear once per press. Holding a shift key does nothing after
// the first tick.
func (p *Player) shift(in Input) bool {
	changed := false
	if in.ShiftUp && !p.prevShiftUp {
		if p.Gear < p.MaxGear && (p.Gear == 0 || p.Speed >= float64(p.Gear)*PlayerShiftSpeed) {
			p.Gear++
			changed = true
		}
	}
	if in.ShiftDown && !p.prevShiftDown {
		if p.Gear > 0 {
			p.Gear--
			changed = true
		}
	}
	p.prevShiftUp = in.ShiftUp
	p.prevShiftDown = in.ShiftDown
	return changed
}

func (p *Player) steer(in Input) {
	rate := p.SteeringRate * (1 - math.Abs(p.Speed/p.MaxSpeed)*0.5)
	if in.SteerLeft {
		p.Yaw += rate
	}
	if in.SteerRight {
		p.Yaw -= rate
	}
	p.Yaw = normDeg(p.Yaw)
}
