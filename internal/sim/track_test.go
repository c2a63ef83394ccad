package sim

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultTrack() *Track {
	tr, err := NewOvalTrack(TrackSamples, TrackRadiusX, TrackRadiusZ, TrackElevation, TrackWidth)
	if err != nil {
		panic(err)
	}
	return tr
}

func newTrack(t *testing.T, points []mgl64.Vec3, width float64) *Track {
	t.Helper()
	tr, err := NewTrack(points, width)
	require.NoError(t, err)
	return tr
}

func TestNewTrackRejectsTooFewSamples(t *testing.T) {
	for _, n := range []int{-1, 0, 1, 2} {
		tr, err := NewOvalTrack(n, TrackRadiusX, TrackRadiusZ, TrackElevation, TrackWidth)
		assert.Nil(t, tr)
		assert.ErrorIs(t, err, ErrInvalidConfig, "%d samples", n)
	}
	for _, pts := range [][]mgl64.Vec3{nil, {{1, 0, 0}}, {{1, 0, 0}, {0, 0, 1}}} {
		tr, err := NewTrack(pts, 2)
		assert.Nil(t, tr)
		assert.ErrorIs(t, err, ErrInvalidConfig, "%d points", len(pts))
	}

	tr, err := NewOvalTrack(3, TrackRadiusX, TrackRadiusZ, TrackElevation, TrackWidth)
	require.NoError(t, err)
	assert.Equal(t, 3, tr.Len())
}

func TestNearestIndexIsMinimal(t *testing.T) {
	tr := defaultTrack()
	r := NewRand(42)
	for k := 0; k < 500; k++ {
		pos := mgl64.Vec3{r.RangeF(-80, 80), r.RangeF(-5, 5), r.RangeF(-130, 130)}
		idx, sample, d := tr.NearestIndex(pos)

		require.GreaterOrEqual(t, idx, 0)
		require.Less(t, idx, tr.Len())
		assert.Equal(t, tr.Sample(idx), sample)
		assert.InDelta(t, planarDist(pos, sample), d, 1e-12)
		for i := 0; i < tr.Len(); i++ {
			require.LessOrEqual(t, d, planarDist(pos, tr.Sample(i)), "sample %d is closer than %d", i, idx)
		}
	}
}

func TestNearestIndexTieKeepsLowest(t *testing.T) {
	tr := newTrack(t, []mgl64.Vec3{{1, 0, 0}, {-1, 0, 0}, {0, 0, 5}}, 2)
	idx, _, d := tr.NearestIndex(mgl64.Vec3{0, 3, 0})
	assert.Equal(t, 0, idx)
	assert.Equal(t, 1.0, d)
}

func TestNearestIndexIgnoresElevation(t *testing.T) {
	tr := newTrack(t, []mgl64.Vec3{{0, 100, 0}, {10, 0, 0}, {0, 0, 10}}, 2)
	idx, _, d := tr.NearestIndex(mgl64.Vec3{0, 0, 0})
	assert.Equal(t, 0, idx)
	assert.Zero(t, d)
}

func TestRoadBoundariesSymmetric(t *testing.T) {
	tr := defaultTrack()
	half := tr.Width() / 2
	for i := 0; i < tr.Len(); i++ {
		p := tr.Sample(i)
		left, right := tr.RoadBoundaries(i)

		assert.InDelta(t, half, planarDist(left, p), 1e-9, "left edge at %d", i)
		assert.InDelta(t, half, planarDist(right, p), 1e-9, "right edge at %d", i)
		mid := left.Add(right).Mul(0.5)
		assert.InDelta(t, 0, planarDist(mid, p), 1e-9)
		assert.Equal(t, p[1], left[1])
		assert.Equal(t, p[1], right[1])

		// Edges sit square to the segment toward the next sample.
		dir, ok := tr.Tangent(i)
		require.True(t, ok)
		assert.InDelta(t, 0, planar(left.Sub(right)).Dot(dir), 1e-9)
	}
}

func TestRoadBoundariesLeftSide(t *testing.T) {
	// Heading +z, left is -x with the (-dz, dx) perpendicular.
	tr := newTrack(t, []mgl64.Vec3{{0, 0, 0}, {0, 0, 10}, {5, 0, 5}}, 4)
	left, right := tr.RoadBoundaries(0)
	assert.InDelta(t, -2, left[0], 1e-12)
	assert.InDelta(t, 2, right[0], 1e-12)
}

func TestRoadBoundariesDegenerateSegment(t *testing.T) {
	tr := newTrack(t, []mgl64.Vec3{{3, 1, 3}, {3, 7, 3}, {10, 0, 0}}, 10)
	left, right := tr.RoadBoundaries(0)
	assert.Equal(t, tr.Sample(0), left)
	assert.Equal(t, tr.Sample(0), right)
	for _, v := range []mgl64.Vec3{left, right} {
		for _, c := range v {
			assert.False(t, math.IsNaN(c))
		}
	}
	_, ok := tr.Tangent(0)
	assert.False(t, ok)
}

func TestSampleWraps(t *testing.T) {
	tr := defaultTrack()
	assert.Equal(t, tr.Sample(0), tr.Sample(tr.Len()))
	assert.Equal(t, tr.Sample(tr.Len()-1), tr.Sample(-1))
}

func TestOvalShape(t *testing.T) {
	tr := defaultTrack()
	assert.InDelta(t, 0, tr.Sample(0)[0], 1e-9)
	assert.InDelta(t, TrackRadiusZ, tr.Sample(0)[2], 1e-9)
	assert.InDelta(t, TrackRadiusX, tr.Sample(25)[0], 1e-9)
	assert.InDelta(t, -TrackRadiusZ, tr.Sample(50)[2], 1e-9)
	assert.Equal(t, 50, tr.Midpoint())
	assert.InDelta(t, 484.4, tr.Circumference(), 1.0)
}

func TestOffTrack(t *testing.T) {
	tr := defaultTrack()
	p := tr.Sample(10)
	assert.False(t, tr.OffTrack(p, 10))
	assert.True(t, tr.OffTrack(mgl64.Vec3{}, 25))
}

func TestSceneryOutsideRoad(t *testing.T) {
	tr := defaultTrack()
	trees := tr.Scenery(NewRand(7), 100)
	require.Len(t, trees, 100)
	for _, tree := range trees {
		_, _, d := tr.NearestIndex(tree.Pos)
		// Trees sit at least 2 units past the edge of their own sample; the
		// nearest sample can only be closer on the inside of a bend.
		assert.Greater(t, d, tr.Width()/2)
		assert.GreaterOrEqual(t, tree.Height, 3.0)
		assert.Less(t, tree.Height, 6.0)
	}
}
