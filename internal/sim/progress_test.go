package sim

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestLedgerStride(t *testing.T) {
	l := NewLedger(2, 25)

	l.Advance(0, 10)
	assert.Equal(t, 10, l.Get(0))
	l.Advance(0, 40)
	assert.Equal(t, 10, l.Get(0), "jump past the stride is ignored")
	l.Advance(0, 5)
	assert.Equal(t, 10, l.Get(0), "ledger never moves backwards")
	l.Advance(0, 35)
	assert.Equal(t, 35, l.Get(0))
	assert.Equal(t, 0, l.Get(1))

	l.Clear(0)
	assert.Equal(t, 0, l.Get(0))
	l.Advance(1, 3)
	l.Reset()
	assert.Equal(t, 0, l.Get(1))
}

func newTracker() *progressTracker {
	tr := defaultTrack()
	return &progressTracker{
		track:  tr,
		gate:   newGate(GateSegment, tr),
		ledger: NewLedger(3, tr.Len()/4),
	}
}

// lineCrossing returns a short forward move across the start line.
func lineCrossing(tr *Track) (before, after mgl64.Vec3) {
	start := tr.Sample(0)
	fwd, _ := tr.Tangent(0)
	return start.Sub(fwd.Mul(0.5)), start.Add(fwd.Mul(0.5))
}

func TestLapNeedsMidpoint(t *testing.T) {
	pt := newTracker()
	before, after := lineCrossing(pt.track)

	c := &Car{ID: 1}
	pt.ledger.idx[1] = pt.track.Midpoint()
	c.Pos = after
	assert.False(t, pt.observe(c, before, 0), "ledger at the midpoint is not enough")
	assert.Zero(t, c.Laps)

	pt.ledger.idx[1] = pt.track.Midpoint() + 1
	assert.True(t, pt.observe(c, before, 0))
	assert.Equal(t, 1, c.Laps)
	assert.Zero(t, pt.ledger.Get(1))
	assert.Equal(t, pt.track.Len(), c.TrackPosition)
}

func TestReversingOverTheLineEarnsNothing(t *testing.T) {
	pt := newTracker()
	before, after := lineCrossing(pt.track)
	c := &Car{ID: 2, Pos: before}

	// Back over the line, loiter behind it, then drive forward again.
	assert.False(t, pt.observe(c, after, pt.track.Len()-1))
	assert.Zero(t, pt.ledger.Get(2))
	c.Pos = after
	assert.False(t, pt.observe(c, before, 0))
	assert.Zero(t, c.Laps)
	assert.Zero(t, pt.ledger.Get(2))
}

func TestFullLapCounts(t *testing.T) {
	pt := newTracker()
	tr := pt.track
	c := &Car{ID: 0, Pos: tr.Sample(0).Add(mgl64.Vec3{1, 0, 0})}

	laps := 0
	prev := c.Pos
	for i := 1; i <= tr.Len(); i++ {
		c.Pos = tr.Sample(i).Add(mgl64.Vec3{0.01, 0, 0})
		n, _, _ := tr.NearestIndex(c.Pos)
		if pt.observe(c, prev, n) {
			laps++
		}
		prev = c.Pos
	}
	assert.Equal(t, 1, laps)
	assert.Equal(t, 1, c.Laps)
}

func TestStandings(t *testing.T) {
	pt := newTracker()
	cars := []*Car{{ID: 0}, {ID: 1}, {ID: 2}}

	assert.Equal(t, []VehicleID{0, 1, 2}, pt.standings(cars), "level cars keep grid order")

	pt.ledger.idx[1] = 10
	cars[2].Laps = 1
	assert.Equal(t, []VehicleID{2, 1, 0}, pt.standings(cars))

	pt.ledger.idx[0] = 10
	assert.Equal(t, []VehicleID{2, 0, 1}, pt.standings(cars), "player wins ties")
}
