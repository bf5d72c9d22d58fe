package contour

import (
	"math"

	"mesh-squares/pkg/geom"
)

// MeshSink receives every mesh a grid rebuilds. The slices belong to the grid
// and are only valid until the next triangulation.
type MeshSink interface {
	SetMesh(vertices []geom.Vec2, indices []int)
}

// Mesh is a flat triangle mesh: three indices per counter-clockwise triangle.
type Mesh struct {
	Vertices []geom.Vec2
	Indices  []int
}

// SetMesh copies the incoming buffers so the mesh outlives the grid's reuse.
func (m *Mesh) SetMesh(vertices []geom.Vec2, indices []int) {
	m.Vertices = append(m.Vertices[:0], vertices...)
	m.Indices = append(m.Indices[:0], indices...)
}

// Append adds a vertex/index list translated by offset, rebasing its indices.
func (m *Mesh) Append(vertices []geom.Vec2, indices []int, offset geom.Vec2) {
	base := len(m.Vertices)
	for _, v := range vertices {
		m.Vertices = append(m.Vertices, v.Add(offset))
	}
	for _, idx := range indices {
		m.Indices = append(m.Indices, idx+base)
	}
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int { return len(m.Vertices) }

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int { return len(m.Indices) / 3 }

// IsEmpty returns true if the mesh has no triangles.
func (m *Mesh) IsEmpty() bool { return len(m.Indices) == 0 }

// Triangle returns the corners of triangle t.
func (m *Mesh) Triangle(t int) (geom.Vec2, geom.Vec2, geom.Vec2) {
	return m.Vertices[m.Indices[t*3]], m.Vertices[m.Indices[t*3+1]], m.Vertices[m.Indices[t*3+2]]
}

// Area sums the signed areas of all triangles. Counter-clockwise triangles
// count positive.
func (m *Mesh) Area() float64 {
	area := 0.0
	for t := 0; t < m.TriangleCount(); t++ {
		area += TriangleArea(m.Triangle(t))
	}
	return area
}

// Bounds returns the min and max corners of all vertices.
func (m *Mesh) Bounds() (geom.Vec2, geom.Vec2) {
	if len(m.Vertices) == 0 {
		return geom.Vec2{}, geom.Vec2{}
	}
	lo := geom.Vec2{X: math.Inf(1), Y: math.Inf(1)}
	hi := geom.Vec2{X: math.Inf(-1), Y: math.Inf(-1)}
	for _, v := range m.Vertices {
		lo.X, lo.Y = math.Min(lo.X, v.X), math.Min(lo.Y, v.Y)
		hi.X, hi.Y = math.Max(hi.X, v.X), math.Max(hi.Y, v.Y)
	}
	return lo, hi
}

// TriangleArea is the signed area of abc, positive when counter-clockwise.
func TriangleArea(a, b, c geom.Vec2) float64 {
	return 0.5 * b.Sub(a).Cross(c.Sub(a))
}
