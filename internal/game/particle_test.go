package game

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParticleAddOverwritesWhenFull(t *testing.T) {
	ps := NewParticleSystem(3, 1)
	for i := 0; i < 5; i++ {
		ps.Add(Particle{Size: float64(i), MaxLife: 1})
	}
	require.Len(t, ps.P, 3)
	assert.Equal(t, []float64{3, 4, 2}, []float64{ps.P[0].Size, ps.P[1].Size, ps.P[2].Size})
}

func TestParticlesExpire(t *testing.T) {
	ps := NewParticleSystem(0, 0)
	ps.Add(Particle{MaxLife: 0.1})
	ps.Add(Particle{MaxLife: 1.0})
	ps.Update(0.2, 0)
	require.Len(t, ps.P, 1)
	assert.Equal(t, 1.0, ps.P[0].MaxLife)

	ps.Update(0, 0)
	assert.Len(t, ps.P, 1, "zero dt is a no-op")
}

func TestSparksStayAboveGround(t *testing.T) {
	ps := NewParticleSystem(0, 3)
	ps.SpawnSparks(mgl64.Vec3{10, 0, 10}, 1)
	require.NotEmpty(t, ps.P)

	for i := 0; i < 30; i++ {
		ps.Update(1.0/60, -0.1)
		for _, p := range ps.P {
			require.GreaterOrEqual(t, p.Pos[1], -0.1)
		}
	}
	ps.Update(1, -0.1)
	assert.Empty(t, ps.P, "sparks burn out within a second")
}

func TestSpawnIsDeterministic(t *testing.T) {
	a := NewParticleSystem(0, 11)
	b := NewParticleSystem(0, 11)
	a.SpawnSparks(mgl64.Vec3{}, 0.5)
	b.SpawnSparks(mgl64.Vec3{}, 0.5)
	assert.Equal(t, a.P, b.P)

	n := len(a.P)
	a.SpawnSparks(mgl64.Vec3{}, 0.5)
	assert.NotEqual(t, a.P[:n], a.P[n:], "each burst draws a new stream")
}

func TestDustNeedsSpeed(t *testing.T) {
	ps := NewParticleSystem(0, 1)
	ps.SpawnDust(mgl64.Vec3{}, 0, 0)
	assert.Empty(t, ps.P)

	ps.SpawnDust(mgl64.Vec3{}, 0, 0.5)
	require.Len(t, ps.P, 3)
	for _, p := range ps.P {
		assert.Less(t, p.Pos[2], 0.0, "dust starts behind a car facing +z")
	}
}

func TestDelayedConfettiIsHidden(t *testing.T) {
	ps := NewParticleSystem(0, 1)
	ps.SpawnConfetti(mgl64.Vec3{})
	require.Len(t, ps.P, 160)

	buf := ps.ParticleRenderData(nil)
	assert.Len(t, buf, 40*particleFloats, "only the first wave is live")

	ps.Update(0.5, -0.1)
	buf = ps.ParticleRenderData(buf)
	assert.Len(t, buf, 160*particleFloats)
	for i := 7; i < len(buf); i += particleFloats {
		assert.InDelta(t, 1, buf[i], 1e-6, "confetti is opaque early on")
	}
}
