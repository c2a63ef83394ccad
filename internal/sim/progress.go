package sim

import (
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// Ledger records, per vehicle, the furthest centerline index reached in the
// current lap.
type Ledger struct {
	idx    []int
	stride int
}

func NewLedger(vehicles, stride int) *Ledger {
	return &Ledger{idx: make([]int, vehicles), stride: stride}
}

func (l *Ledger) Get(id VehicleID) int { return l.idx[id] }

// Advance raises the entry to nearest when it is ahead of the current value
// by no more than the stride. Larger jumps come from driving backwards over
// the line or cutting across the infield and are ignored.
func (l *Ledger) Advance(id VehicleID, nearest int) {
	cur := l.idx[id]
	if nearest > cur && nearest-cur <= l.stride {
		l.idx[id] = nearest
	}
}

func (l *Ledger) Clear(id VehicleID) { l.idx[id] = 0 }

func (l *Ledger) Reset() {
	for i := range l.idx {
		l.idx[i] = 0
	}
}

// progressTracker is the single lap/checkpoint rule applied to every car.
type progressTracker struct {
	track  *Track
	gate   FinishGate
	ledger *Ledger
}

// observe handles one move of c from prev to its current position. It returns
// true when the move completed a lap.
func (pt *progressTracker) observe(c *Car, prev mgl64.Vec3, nearest int) bool {
	lap := false
	if pt.gate.Crossed(prev, c.Pos, nearest) && pt.ledger.Get(c.ID) > pt.track.Midpoint() {
		c.Laps++
		pt.ledger.Clear(c.ID)
		lap = true
	}
	pt.ledger.Advance(c.ID, nearest)
	c.Nearest = nearest
	c.TrackPosition = nearest + c.Laps*pt.track.Len()
	return lap
}

// score is the standings key: whole laps plus ledger progress.
func (pt *progressTracker) score(c *Car) int {
	return c.Laps*pt.track.Len() + pt.ledger.Get(c.ID)
}

// standings orders cars best first. Equal scores keep the input order, which
// puts the player ahead of opponents it is level with.
func (pt *progressTracker) standings(cars []*Car) []VehicleID {
	order := make([]*Car, len(cars))
	copy(order, cars)
	sort.SliceStable(order, func(i, j int) bool {
		return pt.score(order[i]) > pt.score(order[j])
	})
	ids := make([]VehicleID, len(order))
	for i, c := range order {
		ids[i] = c.ID
	}
	return ids
}
