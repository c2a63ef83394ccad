package game

import "math"

const (
	particleGravity    = 9.8
	particleBounce     = 0.3
	particleGroundFric = 0.5
	particleAirDrag    = 1.2
	confettiFall       = 1.5 // terminal fall speed of paper
)

// particleDecays holds exponential drag factors precomputed once per frame.
type particleDecays struct {
	spark float64 // exp(-particleAirDrag * dt)
	dust  float64 // exp(-2.5 * dt)
	paper float64 // exp(-3.0 * dt)
}

func computeDecays(dt float64) particleDecays {
	return particleDecays{
		spark: math.Exp(-particleAirDrag * dt),
		dust:  math.Exp(-2.5 * dt),
		paper: math.Exp(-3.0 * dt),
	}
}

// Update advances particles and drops the expired ones. ground is the height
// particles land on.
func (ps *ParticleSystem) Update(dt, ground float64) {
	if dt <= 0 {
		return
	}

	d := computeDecays(dt)

	for i := 0; i < len(ps.P); {
		p := &ps.P[i]

		p.Life += dt
		if p.Life >= p.MaxLife {
			ps.P[i] = ps.P[len(ps.P)-1]
			ps.P = ps.P[:len(ps.P)-1]
			continue
		}

		// Skip delayed particles.
		if p.Life < 0 {
			i++
			continue
		}

		switch p.Kind {
		case ParticleSpark:
			p.Vel[1] -= particleGravity * dt
			p.Vel[0] *= d.spark
			p.Vel[2] *= d.spark
		case ParticleDust:
			p.Vel = p.Vel.Mul(d.dust)
		case ParticleConfetti:
			p.Vel[0] *= d.paper
			p.Vel[2] *= d.paper
			p.Vel[1] -= particleGravity * dt
			if p.Vel[1] < -confettiFall {
				p.Vel[1] = -confettiFall
			}
		}

		p.Pos = p.Pos.Add(p.Vel.Mul(dt))

		// Ground contact.
		if p.Pos[1] < ground {
			p.Pos[1] = ground
			switch p.Kind {
			case ParticleSpark:
				p.Vel[1] = -p.Vel[1] * particleBounce
				p.Vel[0] *= particleGroundFric
				p.Vel[2] *= particleGroundFric
			default:
				p.Vel = p.Vel.Mul(0)
			}
		}

		i++
	}
}
