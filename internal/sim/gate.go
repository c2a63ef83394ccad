package sim

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// FinishGate decides whether a move from prev to cur crossed the start/finish
// line. nearest is the nearest centerline index of cur.
type FinishGate interface {
	Crossed(prev, cur mgl64.Vec3, nearest int) bool
}

// HeuristicGate treats being near sample 0 on the +z side and close to x=0 as
// the finish line. It only fits NewOvalTrack's layout, where sample 0 lies on
// the z axis; on any other shape it can fire away from the real line.
type HeuristicGate struct {
	Window int
	Band   float64
}

func (g HeuristicGate) Crossed(_, cur mgl64.Vec3, nearest int) bool {
	return nearest < g.Window && cur[2] > 0 && math.Abs(cur[0]) < g.Band
}

// SegmentGate is a line across the road at one sample. A lap crossing is a
// move whose path intersects the line while heading along the track tangent.
type SegmentGate struct {
	A, B    mgl64.Vec3
	Forward mgl64.Vec3
}

// NewSegmentGate spans the road at sample i, padded by pad beyond each edge.
func NewSegmentGate(t *Track, i int, pad float64) SegmentGate {
	left, right := t.RoadBoundaries(i)
	fwd, ok := t.Tangent(i)
	if !ok {
		return SegmentGate{A: left, B: right}
	}
	across := planar(left.Sub(right))
	if l := across.Len(); l > 0 {
		across = across.Mul(pad / l)
	}
	return SegmentGate{A: left.Add(across), B: right.Sub(across), Forward: fwd}
}

func (g SegmentGate) Crossed(prev, cur mgl64.Vec3, _ int) bool {
	move := planar(cur.Sub(prev))
	if move.Dot(g.Forward) <= 0 {
		return false
	}
	return segmentsIntersect(prev, cur, g.A, g.B)
}

// segmentsIntersect tests planar (x,z) segments p1-p2 and q1-q2. Touching the
// gate from behind counts; starting exactly on it does not, so a car parked on
// the line is not counted twice.
func segmentsIntersect(p1, p2, q1, q2 mgl64.Vec3) bool {
	d1 := cross2(q1, q2, p1)
	d2 := cross2(q1, q2, p2)
	d3 := cross2(p1, p2, q1)
	d4 := cross2(p1, p2, q2)
	if d1 == 0 {
		return false
	}
	if (d1 > 0) == (d2 > 0) && d2 != 0 {
		return false
	}
	return (d3 > 0) != (d4 > 0) || d3 == 0 || d4 == 0
}

// cross2 is the z of (b-a) x (c-a) in the x/z plane.
func cross2(a, b, c mgl64.Vec3) float64 {
	return (b[0]-a[0])*(c[2]-a[2]) - (b[2]-a[2])*(c[0]-a[0])
}

func newGate(kind GateKind, t *Track) FinishGate {
	if kind == GateHeuristic {
		return HeuristicGate{Window: HeuristicGateWindow, Band: HeuristicGateBand}
	}
	return NewSegmentGate(t, 0, t.Width()/2)
}
