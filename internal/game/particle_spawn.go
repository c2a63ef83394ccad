package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"racer/internal/sim"
)

// rand gives every burst its own deterministic stream.
func (ps *ParticleSystem) rand() *sim.Rand {
	ps.spawns++
	return sim.NewRand(ps.seed ^ ps.spawns*0x9E3779B97F4A7C15)
}

// SpawnSparks throws a shower of hot sparks from a contact point.
func (ps *ParticleSystem) SpawnSparks(at mgl64.Vec3, intensity float64) {
	if intensity <= 0 {
		return
	}
	r := ps.rand()
	for range int(40 * intensity) {
		ang := r.RangeF(0, math.Pi*2)
		spd := r.RangeF(3, 9) * intensity
		col := Palette.SparkHot
		if r.Intn(3) == 0 {
			col = Palette.SparkCool
		}
		ps.Add(Particle{
			Pos:  at.Add(mgl64.Vec3{r.RangeF(-0.3, 0.3), r.RangeF(0.2, 0.8), r.RangeF(-0.3, 0.3)}),
			Vel:  mgl64.Vec3{math.Cos(ang) * spd, r.RangeF(2, 6), math.Sin(ang) * spd},
			Size: r.RangeF(0.05, 0.12), MaxLife: r.RangeF(0.25, 0.6),
			Col: col, Kind: ParticleSpark,
		})
	}
}

// SpawnDust kicks up a small puff behind a car running on the grass.
func (ps *ParticleSystem) SpawnDust(at mgl64.Vec3, yaw, speed float64) {
	if speed <= 0 {
		return
	}
	r := ps.rand()
	rad := yaw * math.Pi / 180
	back := mgl64.Vec3{-math.Sin(rad), 0, -math.Cos(rad)}
	for range 3 {
		ps.Add(Particle{
			Pos: at.Add(back.Mul(1.4)).Add(mgl64.Vec3{r.RangeF(-0.6, 0.6), 0.1, r.RangeF(-0.6, 0.6)}),
			Vel: back.Mul(r.RangeF(1, 3) * speed).Add(mgl64.Vec3{r.RangeF(-0.5, 0.5), r.RangeF(0.5, 1.5), r.RangeF(-0.5, 0.5)}),
			Size: r.RangeF(0.2, 0.4), MaxLife: r.RangeF(0.5, 1.0),
			Col: Palette.Dust, Kind: ParticleDust,
		})
	}
}

// SpawnConfetti bursts coloured paper over the finish line.
func (ps *ParticleSystem) SpawnConfetti(at mgl64.Vec3) {
	r := ps.rand()
	for i := range 160 {
		ang := r.RangeF(0, math.Pi*2)
		spd := r.RangeF(1, 5)
		ps.Add(Particle{
			Pos:  at.Add(mgl64.Vec3{0, 3, 0}),
			Vel:  mgl64.Vec3{math.Cos(ang) * spd, r.RangeF(6, 12), math.Sin(ang) * spd},
			Size: 0.15, MaxLife: r.RangeF(2, 3.5),
			Life: -float64(i%4) * 0.15,
			Col:  fromSim(sim.AIColors[i%len(sim.AIColors)]),
			Kind: ParticleConfetti,
		})
	}
}
