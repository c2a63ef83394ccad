package sim

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const minTrackSamples = 3

// Track is a closed loop of centerline samples with a constant road width.
// It is built once per race and never mutated.
type Track struct {
	points []mgl64.Vec3
	width  float64
}

// NewOvalTrack samples an oval with a gentle elevation wave. Sample 0 sits on
// the +z end of the oval and indices increase clockwise when viewed from above.
func NewOvalTrack(samples int, radiusX, radiusZ, elevation, width float64) (*Track, error) {
	if samples < minTrackSamples {
		return nil, fmt.Errorf("%w: track needs at least %d samples, got %d", ErrInvalidConfig, minTrackSamples, samples)
	}
	pts := make([]mgl64.Vec3, samples)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(samples)
		pts[i] = mgl64.Vec3{
			math.Sin(a) * radiusX,
			math.Sin(a*2) * elevation,
			math.Cos(a) * radiusZ,
		}
	}
	return &Track{points: pts, width: width}, nil
}

// NewTrack wraps an arbitrary closed polyline of at least three points.
func NewTrack(points []mgl64.Vec3, width float64) (*Track, error) {
	if len(points) < minTrackSamples {
		return nil, fmt.Errorf("%w: track needs at least %d samples, got %d", ErrInvalidConfig, minTrackSamples, len(points))
	}
	return &Track{points: append([]mgl64.Vec3(nil), points...), width: width}, nil
}

func (t *Track) Len() int { return len(t.points) }

func (t *Track) Width() float64 { return t.width }

// Sample returns centerline point i (modulo the track length).
func (t *Track) Sample(i int) mgl64.Vec3 {
	return t.points[t.wrap(i)]
}

func (t *Track) wrap(i int) int {
	n := len(t.points)
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// NearestIndex scans every sample for the smallest planar distance to pos.
// Ties keep the lowest index.
func (t *Track) NearestIndex(pos mgl64.Vec3) (int, mgl64.Vec3, float64) {
	best := 0
	bestD := math.Inf(1)
	for i, p := range t.points {
		d := planarDist(pos, p)
		if d < bestD {
			bestD = d
			best = i
		}
	}
	return best, t.points[best], bestD
}

// Tangent returns the unit planar direction from sample i to its successor.
// The second result is false for a zero-length segment.
func (t *Track) Tangent(i int) (mgl64.Vec3, bool) {
	d := planar(t.Sample(i + 1).Sub(t.Sample(i)))
	l := d.Len()
	if l == 0 {
		return mgl64.Vec3{}, false
	}
	return d.Mul(1 / l), true
}

// RoadBoundaries offsets sample i by half the road width to each side of the
// segment toward i+1. A degenerate segment yields the sample for both edges.
func (t *Track) RoadBoundaries(i int) (left, right mgl64.Vec3) {
	p := t.Sample(i)
	dir, ok := t.Tangent(i)
	if !ok {
		return p, p
	}
	perp := mgl64.Vec3{-dir[2], 0, dir[0]}.Mul(t.width / 2)
	return p.Add(perp), p.Sub(perp)
}

// OffTrack reports whether pos is further than half the road width from the
// road centre at sample i.
func (t *Track) OffTrack(pos mgl64.Vec3, i int) bool {
	left, right := t.RoadBoundaries(i)
	centre := left.Add(right).Mul(0.5)
	return planarDist(pos, centre) > t.width/2
}

// Circumference sums the planar segment lengths of the loop.
func (t *Track) Circumference() float64 {
	total := 0.0
	for i := range t.points {
		total += planarDist(t.points[i], t.Sample(i+1))
	}
	return total
}

// Midpoint is the ledger index a vehicle must pass before a line crossing
// counts as a lap.
func (t *Track) Midpoint() int {
	return len(t.points) / 2
}

// Tree is a scenery placement beside the road.
type Tree struct {
	Pos    mgl64.Vec3
	Height float64
}

// Scenery scatters trees just outside the road edges.
func (t *Track) Scenery(r *Rand, count int) []Tree {
	trees := make([]Tree, 0, count)
	for k := 0; k < count; k++ {
		i := r.Intn(len(t.points))
		p := t.points[i]
		side := 1.0
		if r.Intn(2) == 0 {
			side = -1
		}
		offset := r.RangeF(2, 5)
		dir, ok := t.Tangent(i)
		out := p
		if ok {
			perp := mgl64.Vec3{-dir[2], 0, dir[0]}
			out = p.Add(perp.Mul(side * (t.width/2 + offset)))
		}
		out[1] = p[1] + 0.1
		trees = append(trees, Tree{Pos: out, Height: r.RangeF(3, 6)})
	}
	return trees
}
