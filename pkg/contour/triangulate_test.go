package contour

import (
	"math"
	"testing"

	"mesh-squares/pkg/geom"
)

// cellGrid builds a single-cell grid (2×2 samples, cell size 1) with the
// corner states of code and crossings at the edge midpoints.
func cellGrid(code int) *Grid {
	g := NewGrid(2, 2, DefaultFeatureAngle)
	a, b, c, d := g.Sample(0, 0), g.Sample(1, 0), g.Sample(0, 1), g.Sample(1, 1)
	a.Filled = code&1 != 0
	b.Filled = code&2 != 0
	c.Filled = code&4 != 0
	d.Filled = code&8 != 0
	if a.Filled != b.Filled {
		a.XEdge = 1
	}
	if a.Filled != c.Filled {
		a.YEdge = 1
	}
	if c.Filled != d.Filled {
		c.XEdge = 1
	}
	if b.Filled != d.Filled {
		b.YEdge = 1
	}
	return g
}

func meshOf(g *Grid) *Mesh {
	m := &Mesh{}
	v, idx := g.Mesh()
	m.SetMesh(v, idx)
	return m
}

func TestCaseTemplates(t *testing.T) {
	cases := []struct {
		code      int
		vertices  int
		triangles int
		area      float64
	}{
		{0, 0, 0, 0},
		{1, 3, 1, 0.125},
		{2, 3, 1, 0.125},
		{3, 4, 2, 0.5},
		{4, 3, 1, 0.125},
		{5, 4, 2, 0.5},
		{6, 6, 2, 0.25},
		{7, 5, 3, 0.875},
		{8, 3, 1, 0.125},
		{9, 6, 2, 0.25},
		{10, 4, 2, 0.5},
		{11, 5, 3, 0.875},
		{12, 4, 2, 0.5},
		{13, 5, 3, 0.875},
		{14, 5, 3, 0.875},
		{15, 4, 2, 1},
	}
	for _, tc := range cases {
		g := cellGrid(tc.code)
		g.Triangulate()
		m := meshOf(g)
		if m.VertexCount() != tc.vertices {
			t.Errorf("case %d: vertices = %d, want %d", tc.code, m.VertexCount(), tc.vertices)
		}
		if m.TriangleCount() != tc.triangles {
			t.Errorf("case %d: triangles = %d, want %d", tc.code, m.TriangleCount(), tc.triangles)
		}
		if math.Abs(m.Area()-tc.area) > 1e-12 {
			t.Errorf("case %d: area = %f, want %f", tc.code, m.Area(), tc.area)
		}
		for tri := 0; tri < m.TriangleCount(); tri++ {
			if area := TriangleArea(m.Triangle(tri)); area <= 0 {
				t.Errorf("case %d: triangle %d not counter-clockwise (area %f)", tc.code, tri, area)
			}
		}
	}
}

func TestCaseTriangleOrder(t *testing.T) {
	var (
		A  = geom.Vec2{X: 0.5, Y: 0.5}
		AB = geom.Vec2{X: 1, Y: 0.5}
		B  = geom.Vec2{X: 1.5, Y: 0.5}
		C  = geom.Vec2{X: 0.5, Y: 1.5}
		AC = geom.Vec2{X: 0.5, Y: 1}
		CD = geom.Vec2{X: 1, Y: 1.5}
		D  = geom.Vec2{X: 1.5, Y: 1.5}
		BD = geom.Vec2{X: 1.5, Y: 1}
	)
	// Vertices are emitted corner a, bottom crossing, b, c, left crossing,
	// top crossing, d, right crossing, skipping those a case does not use.
	emitOrder := []geom.Vec2{A, AB, B, C, AC, CD, D, BD}
	want := [16][][3]geom.Vec2{
		0:  {},
		1:  {{A, AB, AC}},
		2:  {{B, BD, AB}},
		3:  {{A, BD, AC}, {A, B, BD}},
		4:  {{C, AC, CD}},
		5:  {{A, CD, C}, {A, AB, CD}},
		6:  {{B, BD, AB}, {C, AC, CD}},
		7:  {{A, CD, C}, {A, BD, CD}, {A, B, BD}},
		8:  {{D, CD, BD}},
		9:  {{A, AB, AC}, {D, CD, BD}},
		10: {{AB, D, CD}, {AB, B, D}},
		11: {{B, AC, A}, {B, CD, AC}, {B, D, CD}},
		12: {{AC, D, C}, {AC, BD, D}},
		13: {{C, BD, D}, {C, AB, BD}, {C, A, AB}},
		14: {{D, AB, B}, {D, AC, AB}, {D, C, AC}},
		15: {{A, D, C}, {A, B, D}},
	}

	for code, tris := range want {
		g := cellGrid(code)
		g.Triangulate()
		m := meshOf(g)

		used := map[geom.Vec2]bool{}
		for _, tri := range tris {
			for _, p := range tri {
				used[p] = true
			}
		}
		var vertices []geom.Vec2
		for _, p := range emitOrder {
			if used[p] {
				vertices = append(vertices, p)
			}
		}
		if len(m.Vertices) != len(vertices) {
			t.Fatalf("case %d: vertices = %v, want %v", code, m.Vertices, vertices)
		}
		for i := range vertices {
			if m.Vertices[i] != vertices[i] {
				t.Fatalf("case %d: vertex %d = %v, want %v", code, i, m.Vertices[i], vertices[i])
			}
		}

		if m.TriangleCount() != len(tris) {
			t.Fatalf("case %d: triangles = %d, want %d", code, m.TriangleCount(), len(tris))
		}
		for i, tri := range tris {
			a, b, c := m.Triangle(i)
			if a != tri[0] || b != tri[1] || c != tri[2] {
				t.Fatalf("case %d: triangle %d = %v %v %v, want %v", code, i, a, b, c, tri)
			}
		}
	}
}

func TestSingleCornerPattern(t *testing.T) {
	g := cellGrid(1)
	g.Triangulate()
	v, idx := g.Mesh()

	want := []geom.Vec2{{X: 0.5, Y: 0.5}, {X: 1, Y: 0.5}, {X: 0.5, Y: 1}}
	if len(v) != len(want) {
		t.Fatalf("vertices = %v", v)
	}
	for i := range want {
		if v[i] != want[i] {
			t.Fatalf("vertex %d = %v, want %v", i, v[i], want[i])
		}
	}
	// a, ab, ac
	if len(idx) != 3 || idx[0] != 0 || idx[1] != 1 || idx[2] != 2 {
		t.Fatalf("indices = %v, want [0 1 2]", idx)
	}
}

func TestSaddleCasesSplitIntoCornerTriangles(t *testing.T) {
	// Cases 6 and 9 always cut off the two filled corners separately; the
	// centre of the cell stays empty regardless of the local gradient.
	for _, code := range []int{6, 9} {
		g := cellGrid(code)
		g.Triangulate()
		m := meshOf(g)
		centre := geom.Vec2{X: 1, Y: 1}
		for tri := 0; tri < m.TriangleCount(); tri++ {
			a, b, c := m.Triangle(tri)
			if containsPoint(a, b, c, centre) {
				t.Fatalf("case %d covers the cell centre", code)
			}
		}
	}
}

func containsPoint(a, b, c, p geom.Vec2) bool {
	return TriangleArea(a, b, p) > 0 && TriangleArea(b, c, p) > 0 && TriangleArea(c, a, p) > 0
}

func TestSharpSingleCornerBecomesQuad(t *testing.T) {
	g := cellGrid(1)
	a := g.Sample(0, 0)
	a.XNormal = geom.Vec2{X: 1}
	a.YNormal = geom.Vec2{Y: 1}
	g.Triangulate()
	m := meshOf(g)

	if m.VertexCount() != 4 || m.TriangleCount() != 2 {
		t.Fatalf("got %d vertices / %d triangles, want 4 / 2", m.VertexCount(), m.TriangleCount())
	}
	if sharp := m.Vertices[3]; sharp != (geom.Vec2{X: 1, Y: 1}) {
		t.Fatalf("sharp vertex = %v, want (1,1)", sharp)
	}
	if math.Abs(m.Area()-0.25) > 1e-12 {
		t.Fatalf("area = %f, want 0.25", m.Area())
	}
}

func TestSharpCornerClampsTowardFarSide(t *testing.T) {
	g := cellGrid(1)
	a := g.Sample(0, 0)
	// Tangents meet at (3.5, 1), beyond d's column; x is pulled back onto d.
	a.XNormal = geom.Vec2{X: 0.2, Y: -1}.Normalize()
	a.YNormal = geom.Vec2{Y: 1}
	p, ok := sharpCorner(&caseTable[1], g.sharpLimit, a, g.Sample(1, 0), g.Sample(0, 1), g.Sample(1, 1))
	if !ok {
		t.Fatal("expected the corner to resolve")
	}
	if !p.Near(geom.Vec2{X: 1.5, Y: 1}, 1e-9) {
		t.Fatalf("sharp vertex = %v, want (1.5,1)", p)
	}
}

func TestSharpCornerRejectedBehindCorner(t *testing.T) {
	p, ok := clampToCell(clampMaxMax, geom.Vec2{X: 0.2, Y: 1}, geom.Vec2{X: 0.5, Y: 0.5}, geom.Vec2{X: 1.5, Y: 1.5})
	if ok {
		t.Fatalf("point left of the corner accepted as %v", p)
	}
}

func TestSharpNotchBecomesHexagon(t *testing.T) {
	g := cellGrid(14)
	a := g.Sample(0, 0)
	a.XNormal = geom.Vec2{X: -1}
	a.YNormal = geom.Vec2{Y: -1}
	g.Triangulate()
	m := meshOf(g)

	if m.VertexCount() != 6 || m.TriangleCount() != 4 {
		t.Fatalf("got %d vertices / %d triangles, want 6 / 4", m.VertexCount(), m.TriangleCount())
	}
	if math.Abs(m.Area()-0.75) > 1e-12 {
		t.Fatalf("area = %f, want 0.75", m.Area())
	}
	for tri := 0; tri < m.TriangleCount(); tri++ {
		if area := TriangleArea(m.Triangle(tri)); area <= 0 {
			t.Fatalf("hexagon triangle %d not counter-clockwise", tri)
		}
	}
}

func TestNotchOnCellBorderFallsBackToPentagon(t *testing.T) {
	g := cellGrid(14)
	a := g.Sample(0, 0)
	a.XEdge, a.YEdge = 1.5, 1.5
	a.XNormal = geom.Vec2{X: -1}
	a.YNormal = geom.Vec2{Y: -1}
	g.Triangulate()
	if _, idx := g.Mesh(); len(idx) != 9 {
		t.Fatalf("indices = %d, want a pentagon (9)", len(idx))
	}
}

func TestSharpFeatureBoundaries(t *testing.T) {
	limit := math.Cos(DefaultFeatureAngle * math.Pi / 180)
	n1 := geom.Vec2{X: 1}
	atLimit := geom.Vec2{X: -limit, Y: math.Sqrt(1 - limit*limit)}
	if got := n1.Dot(atLimit.Neg()); got != limit {
		t.Fatalf("test setup: dot = %v, want %v", got, limit)
	}

	first := isSharpFeature(n1, atLimit, limit)
	if !first {
		t.Fatal("normals exactly at the limit are sharp")
	}
	for i := 0; i < 10; i++ {
		if isSharpFeature(n1, atLimit, limit) != first {
			t.Fatal("sharp test not deterministic")
		}
	}

	if isSharpFeature(n1, geom.Vec2{X: 1}, limit) {
		t.Fatal("equal normals describe a straight boundary, not a corner")
	}
	if isSharpFeature(n1, geom.Vec2{X: -1}, limit) {
		t.Fatal("opposed normals have parallel tangents and must not be intersected")
	}
	if isSharpFeature(geom.Vec2{}, geom.Vec2{Y: 1}, limit) {
		t.Fatal("missing normals are never sharp")
	}
	if !isSharpFeature(n1, geom.Vec2{Y: 1}, limit) {
		t.Fatal("right angle is sharp")
	}
}

func TestIntersectParallelLines(t *testing.T) {
	if _, ok := intersect(geom.Vec2{}, geom.Vec2{X: 1}, geom.Vec2{Y: 1}, geom.Vec2{X: 1}); ok {
		t.Fatal("parallel tangents have no intersection")
	}
	p, ok := intersect(geom.Vec2{X: 1, Y: 0.5}, geom.Vec2{X: 1}, geom.Vec2{X: 0.5, Y: 1}, geom.Vec2{Y: 1})
	if !ok || p != (geom.Vec2{X: 1, Y: 1}) {
		t.Fatalf("intersection = %v ok=%v, want (1,1)", p, ok)
	}
}

func TestTriangulateIsRepeatable(t *testing.T) {
	g := NewGrid(8, 8, DefaultFeatureAngle)
	c := NewCircle(true, 2.3)
	c.SetCenter(3.7, 4.1)
	g.Apply(c)
	first := meshOf(g)

	g.Triangulate()
	second := meshOf(g)
	if len(first.Vertices) != len(second.Vertices) || len(first.Indices) != len(second.Indices) {
		t.Fatal("repeated triangulation changed the mesh size")
	}
	for i := range first.Vertices {
		if first.Vertices[i] != second.Vertices[i] {
			t.Fatalf("vertex %d differs between runs", i)
		}
	}
	for i := range first.Indices {
		if first.Indices[i] != second.Indices[i] {
			t.Fatalf("index %d differs between runs", i)
		}
	}
}

type countingSink struct {
	calls     int
	triangles int
}

func (s *countingSink) SetMesh(_ []geom.Vec2, indices []int) {
	s.calls++
	s.triangles = len(indices) / 3
}

func TestSinkReceivesEveryRebuild(t *testing.T) {
	g := NewGrid(4, 4, DefaultFeatureAngle)
	sink := &countingSink{}
	g.SetSink(sink)

	full := NewSquare(true, 2)
	full.SetCenter(2, 2)
	g.Apply(full)
	g.Apply(NewSquare(true, -1))
	g.Triangulate()

	if sink.calls != 2 {
		t.Fatalf("sink calls = %d, want 2 (inert edits do not rebuild)", sink.calls)
	}
	if sink.triangles != 18 {
		t.Fatalf("sink triangles = %d, want 18", sink.triangles)
	}
}
