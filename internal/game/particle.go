package game

import "github.com/go-gl/mathgl/mgl64"

type ParticleKind uint8

const (
	ParticleSpark ParticleKind = iota
	ParticleDust
	ParticleConfetti
)

const (
	MaxParticles      = 2048
	MaxParticleRender = MaxParticles
)

// particleFloats is the render layout: position(3), size, colour(4).
const particleFloats = 8

type Particle struct {
	Pos mgl64.Vec3
	Vel mgl64.Vec3

	Size float64

	Life    float64 // negative = delayed start
	MaxLife float64

	Col  RGB
	Kind ParticleKind
}

type ParticleSystem struct {
	Max    int
	P      []Particle
	seed   uint64
	spawns uint64
	ovrIdx int // circular overwrite index when full
}

func NewParticleSystem(maxParticles int, seed uint64) *ParticleSystem {
	if maxParticles <= 0 {
		maxParticles = MaxParticles
	}
	if seed == 0 {
		seed = 1
	}
	return &ParticleSystem{
		Max:  maxParticles,
		P:    make([]Particle, 0, maxParticles),
		seed: seed,
	}
}

func (ps *ParticleSystem) Clear() {
	ps.P = ps.P[:0]
	ps.ovrIdx = 0
}

func (ps *ParticleSystem) Add(p Particle) {
	if len(ps.P) < ps.Max {
		ps.P = append(ps.P, p)
		return
	}
	// Circular overwrite.
	if ps.ovrIdx >= ps.Max {
		ps.ovrIdx = 0
	}
	ps.P[ps.ovrIdx] = p
	ps.ovrIdx++
}

// ParticleRenderData fills buf with live particles.
// Format: [x, y, z, size, r, g, b, a] * N.
func (ps *ParticleSystem) ParticleRenderData(buf []float32) []float32 {
	buf = buf[:0]
	for _, p := range ps.P {
		if p.Life < 0 {
			continue
		}
		t := clampF(p.Life/p.MaxLife, 0, 1)

		a := 1.0 - t
		size := p.Size
		switch p.Kind {
		case ParticleDust:
			a = (1.0 - t) * 0.6
			size *= 1.0 + t*2.0
		case ParticleConfetti:
			a = 1.0
			if t > 0.8 {
				a = (1.0 - t) / 0.2
			}
		}
		if a <= 0 {
			continue
		}

		r, g, b := p.Col.Float()
		buf = append(buf,
			float32(p.Pos[0]), float32(p.Pos[1]), float32(p.Pos[2]),
			float32(size), r, g, b, float32(clampF(a, 0, 1)))
	}
	return buf
}
