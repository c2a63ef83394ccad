package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frame = 1.0 / 60

func TestAISteersProportionally(t *testing.T) {
	tr := defaultTrack()
	r := NewRand(3)
	pos := tr.Sample(10)
	a := NewAIDriver(1, pos, 0, r, AIColors[0])
	a.Speed = 0

	want := bearing(pos, tr.Sample(11))
	diff := angDiffDeg(0, want)
	nearest := a.Update(tr, frame, r)

	assert.Equal(t, 10, nearest)
	assert.InDelta(t, normDeg(diff*frame*AISteerGain), a.Yaw, 1e-9)
	assert.NotEqual(t, want, a.Yaw, "steering must not snap to the target")
}

func TestAIBrakesForSharpTurns(t *testing.T) {
	tr := defaultTrack()
	r := NewRand(3)
	pos := tr.Sample(10)
	yaw := normDeg(bearing(pos, tr.Sample(11)) + 90)
	a := NewAIDriver(1, pos, yaw, r, AIColors[0])
	a.Speed = 0.5
	a.TargetSpeed = 0.5

	a.Update(tr, frame, r)

	assert.Less(t, a.TargetSpeed, 0.5-AICurveBrake*AISharpTurn)
	assert.Greater(t, a.TargetSpeed, AIMinTarget)
	assert.InDelta(t, 0.5-AISpeedDown, a.Speed, 1e-12, "decelerates at the braking rate")
}

func TestAITargetSpeedFloor(t *testing.T) {
	tr := defaultTrack()
	r := NewRand(3)
	pos := tr.Sample(10)
	a := NewAIDriver(1, pos, normDeg(bearing(pos, tr.Sample(11))+150), r, AIColors[0])
	a.Speed = 0
	a.TargetSpeed = AIMinTarget + 0.01

	a.Update(tr, frame, r)
	assert.Equal(t, AIMinTarget, a.TargetSpeed)
}

func TestAIAcceleratesOnStraights(t *testing.T) {
	tr := defaultTrack()
	r := NewRand(3)
	pos := tr.Sample(10)
	a := NewAIDriver(1, pos, bearing(pos, tr.Sample(11)), r, AIColors[0])
	a.Speed = 0.3
	a.TargetSpeed = 0.6

	a.Update(tr, frame, r)

	assert.GreaterOrEqual(t, a.TargetSpeed, AITargetLo)
	assert.LessOrEqual(t, a.TargetSpeed, 0.61)
	assert.InDelta(t, minF(0.3+AISpeedUp, a.TargetSpeed), a.Speed, 1e-12)
}

func TestAIRidesOnTheRoad(t *testing.T) {
	tr := defaultTrack()
	r := NewRand(3)
	a := NewAIDriver(1, tr.Sample(20), 0, r, AIColors[0])
	n := a.Update(tr, frame, r)
	assert.InDelta(t, tr.Sample(n)[1]+RideHeight, a.Pos[1], 1e-12)
	assert.Equal(t, n, a.Nearest)
}

func TestAILapsTheTrack(t *testing.T) {
	for _, gate := range []GateKind{GateSegment, GateHeuristic} {
		cfg := DefaultConfig()
		cfg.Opponents = 3
		cfg.Gate = gate
		race, err := New(cfg)
		require.NoError(t, err)
		now := startRace(t, race)

		for tick := 0; tick < 6000; tick++ {
			now += frame
			race.Advance(now, frame, Input{})
		}
		for _, a := range race.Opponents() {
			assert.GreaterOrEqual(t, a.Laps, 1, "gate %d: opponent %d never completed a lap", gate, a.ID)
			assert.Equal(t, a.Nearest+a.Laps*race.Track().Len(), a.TrackPosition)
		}
	}
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
