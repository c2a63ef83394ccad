package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"racer/internal/sim"
)

// vertexFloats is the interleaved vertex layout: position(3), colour(3), paint(1).
// Paint 1 means the colour is multiplied by the per-draw body colour.
const vertexFloats = 7

// lightDir shades flat triangles so boxes read as solids without a lighting pass.
var lightDir = mgl32.Vec3{0.3, 1, 0.2}.Normalize()

// Mesh is a CPU-side vertex list ready for upload.
type Mesh struct {
	Tris  []float32
	Lines []float32
}

func (m *Mesh) TriCount() int  { return len(m.Tris) / vertexFloats / 3 }
func (m *Mesh) LineCount() int { return len(m.Lines) / vertexFloats / 2 }

func appendVertex(dst []float32, p mgl32.Vec3, r, g, b, paint float32) []float32 {
	return append(dst, p[0], p[1], p[2], r, g, b, paint)
}

func (m *Mesh) tri(a, b, c mgl32.Vec3, col RGB, paint float32) {
	shade := float32(1)
	if n := b.Sub(a).Cross(c.Sub(a)); n.Len() > 0 {
		d := n.Normalize().Dot(lightDir)
		if d < 0 {
			d = -d
		}
		shade = 0.6 + 0.4*d
	}
	r, g, bl := col.Float()
	r, g, bl = r*shade, g*shade, bl*shade
	m.Tris = appendVertex(m.Tris, a, r, g, bl, paint)
	m.Tris = appendVertex(m.Tris, b, r, g, bl, paint)
	m.Tris = appendVertex(m.Tris, c, r, g, bl, paint)
}

func (m *Mesh) quad(a, b, c, d mgl32.Vec3, col RGB, paint float32) {
	m.tri(a, b, c, col, paint)
	m.tri(a, c, d, col, paint)
}

func (m *Mesh) line(a, b mgl32.Vec3, col RGB) {
	r, g, bl := col.Float()
	m.Lines = appendVertex(m.Lines, a, r, g, bl, 0)
	m.Lines = appendVertex(m.Lines, b, r, g, bl, 0)
}

func (m *Mesh) box(centre, half mgl32.Vec3, col RGB, paint float32) {
	x0, x1 := centre[0]-half[0], centre[0]+half[0]
	y0, y1 := centre[1]-half[1], centre[1]+half[1]
	z0, z1 := centre[2]-half[2], centre[2]+half[2]
	v := func(x, y, z float32) mgl32.Vec3 { return mgl32.Vec3{x, y, z} }
	m.quad(v(x0, y0, z0), v(x1, y0, z0), v(x1, y0, z1), v(x0, y0, z1), col, paint)
	m.quad(v(x0, y1, z0), v(x1, y1, z0), v(x1, y1, z1), v(x0, y1, z1), col, paint)
	m.quad(v(x0, y0, z0), v(x1, y0, z0), v(x1, y1, z0), v(x0, y1, z0), col, paint)
	m.quad(v(x0, y0, z1), v(x1, y0, z1), v(x1, y1, z1), v(x0, y1, z1), col, paint)
	m.quad(v(x0, y0, z0), v(x0, y0, z1), v(x0, y1, z1), v(x0, y1, z0), col, paint)
	m.quad(v(x1, y0, z0), v(x1, y0, z1), v(x1, y1, z1), v(x1, y1, z0), col, paint)
}

// cone adds a sides-gon cone (no base) standing on base with its tip at apex height.
func (m *Mesh) cone(base mgl32.Vec3, radius, height float32, sides int, col RGB) {
	tip := base.Add(mgl32.Vec3{0, height, 0})
	for i := 0; i < sides; i++ {
		a0 := 2 * math.Pi * float64(i) / float64(sides)
		a1 := 2 * math.Pi * float64(i+1) / float64(sides)
		p0 := base.Add(mgl32.Vec3{radius * float32(math.Cos(a0)), 0, radius * float32(math.Sin(a0))})
		p1 := base.Add(mgl32.Vec3{radius * float32(math.Cos(a1)), 0, radius * float32(math.Sin(a1))})
		m.tri(tip, p0, p1, col, 0)
	}
}

// cylinder adds the side wall of an upright sides-gon prism.
func (m *Mesh) cylinder(base mgl32.Vec3, radius, height float32, sides int, col RGB) {
	up := mgl32.Vec3{0, height, 0}
	for i := 0; i < sides; i++ {
		a0 := 2 * math.Pi * float64(i) / float64(sides)
		a1 := 2 * math.Pi * float64(i+1) / float64(sides)
		p0 := base.Add(mgl32.Vec3{radius * float32(math.Cos(a0)), 0, radius * float32(math.Sin(a0))})
		p1 := base.Add(mgl32.Vec3{radius * float32(math.Cos(a1)), 0, radius * float32(math.Sin(a1))})
		m.quad(p0, p1, p1.Add(up), p0.Add(up), col, 0)
	}
}

// TrackMesh builds the road surface, the checkerboard start strip, the dashed
// centre line and both guardrails.
func TrackMesh(t *sim.Track) Mesh {
	var m Mesh
	n := t.Len()
	for i := 0; i < n; i++ {
		l1, r1 := t.RoadBoundaries(i)
		l2, r2 := t.RoadBoundaries(i + 1)
		L1, R1, L2, R2 := vec32(l1), vec32(r1), vec32(l2), vec32(r2)

		col := Palette.Road
		if i < CheckerSamples || i > n-CheckerSamples {
			col = Palette.CheckerB
			if i%2 == 0 {
				col = Palette.CheckerA
			}
		}
		m.quad(L1, R1, R2, L2, col, 0)

		if i%2 == 0 {
			lift := mgl32.Vec3{0, CentreLineLift, 0}
			m.line(L1.Add(R1).Mul(0.5).Add(lift), L2.Add(R2).Mul(0.5).Add(lift), Palette.Centre)
		}

		rail := mgl32.Vec3{0, GuardrailHeight, 0}
		m.line(L1.Add(rail), L2.Add(rail), Palette.Guardrail)
		m.line(R1.Add(rail), R2.Add(rail), Palette.Guardrail)
	}
	return m
}

// Mountain is a distant cone on the horizon.
type Mountain struct {
	X, Z   float32
	Height float32
}

// Mountains places the backdrop peaks; only their heights vary with r.
func Mountains(r *sim.Rand) []Mountain {
	spots := [][2]float32{{-100, -150}, {150, -200}, {0, -250}, {-200, -180}, {80, -220}}
	out := make([]Mountain, len(spots))
	for i, s := range spots {
		out[i] = Mountain{X: s[0], Z: s[1], Height: float32(r.RangeF(20, 40))}
	}
	return out
}

// LandscapeMesh builds the ground plane, mountains and trees.
func LandscapeMesh(trees []sim.Tree, mountains []Mountain) Mesh {
	var m Mesh
	g := float32(GroundHalfSize)
	y := float32(GroundLevel)
	m.quad(mgl32.Vec3{-g, y, -g}, mgl32.Vec3{-g, y, g}, mgl32.Vec3{g, y, g}, mgl32.Vec3{g, y, -g}, Palette.Ground, 0)

	for _, mt := range mountains {
		m.cone(mgl32.Vec3{mt.X, 0, mt.Z}, mt.Height*0.8, mt.Height, MountainSides, Palette.Mountain)
	}
	for _, tr := range trees {
		base := vec32(tr.Pos)
		h := float32(tr.Height)
		m.cylinder(base, 0.2, h, TreeSides, Palette.Trunk)
		m.cone(base.Add(mgl32.Vec3{0, h, 0}), 1.0, 2.0, TreeSides, Palette.Leaves)
	}
	return m
}

// CarMesh builds one car in local space, nose toward +z. Body panels are
// painted per draw; glass and tyres keep their own colour.
func CarMesh() Mesh {
	var m Mesh
	v := func(x, y, z float32) mgl32.Vec3 { return mgl32.Vec3{x, y, z} }
	body := Palette.CheckerA

	m.quad(v(-0.7, 0, -1.5), v(0.7, 0, -1.5), v(0.7, 0, 1.5), v(-0.7, 0, 1.5), body, 1)         // bottom
	m.quad(v(-0.7, 0, 1.5), v(0.7, 0, 1.5), v(0.7, 0.5, 1.2), v(-0.7, 0.5, 1.2), body, 1)       // nose
	m.quad(v(-0.7, 0, -1.5), v(0.7, 0, -1.5), v(0.7, 0.5, -1.3), v(-0.7, 0.5, -1.3), body, 1)   // tail
	m.quad(v(-0.7, 0, -1.5), v(-0.7, 0, 1.5), v(-0.7, 0.5, 1.2), v(-0.7, 0.5, -1.3), body, 1)   // left
	m.quad(v(0.7, 0, -1.5), v(0.7, 0, 1.5), v(0.7, 0.5, 1.2), v(0.7, 0.5, -1.3), body, 1)       // right
	m.quad(v(-0.7, 0.5, -1.3), v(0.7, 0.5, -1.3), v(0.7, 0.5, 1.2), v(-0.7, 0.5, 1.2), body, 1) // deck
	m.quad(v(-0.65, 0.5, 1.0), v(0.65, 0.5, 1.0), v(0.65, 1, 0), v(-0.65, 1, 0), Palette.Glass, 0)
	m.quad(v(-0.65, 1, 0), v(0.65, 1, 0), v(0.65, 1, -1), v(-0.65, 1, -1), body, 1) // roof
	m.quad(v(-0.65, 1, -1), v(0.65, 1, -1), v(0.65, 0.5, -1.3), v(-0.65, 0.5, -1.3), Palette.Glass, 0)

	wheel := mgl32.Vec3{0.15, 0.3, 0.3}
	for _, c := range []mgl32.Vec3{{-0.7, 0.2, 1}, {0.7, 0.2, 1}, {-0.7, 0.2, -1}, {0.7, 0.2, -1}} {
		m.box(c, wheel, Palette.Tyre, 0)
	}
	return m
}

// Append concatenates o onto m.
func (m *Mesh) Append(o Mesh) {
	m.Tris = append(m.Tris, o.Tris...)
	m.Lines = append(m.Lines, o.Lines...)
}
