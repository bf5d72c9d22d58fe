package contour

import (
	"math"

	"mesh-squares/pkg/geom"
)

// Direction names a neighbouring grid relative to this one.
type Direction uint8

const (
	// NeighborX is the grid one extent toward +x.
	NeighborX Direction = iota
	// NeighborY is the grid one extent toward +y.
	NeighborY
	// NeighborXY is the diagonal grid toward +x+y.
	NeighborXY
)

// NeighborLookup resolves a neighbour handle through whatever owns the grids.
// It returns nil when there is no grid in that direction. A grid only reads
// neighbours and never manages their lifetime.
type NeighborLookup func(dir Direction) *Grid

// DefaultFeatureAngle is the widest corner angle, in degrees, still
// reconstructed as a sharp feature.
const DefaultFeatureAngle = 135.0

// Grid owns a resolution×resolution block of samples and the mesh built from
// them. Samples are stored row-major, index y*resolution+x.
type Grid struct {
	resolution int
	cellSize   float64
	extent     float64
	sharpLimit float64

	samples   []Sample
	neighbors NeighborLookup

	vertices []geom.Vec2
	indices  []int
	sink     MeshSink

	rowCacheMin, rowCacheMax []int
	edgeCacheMin, edgeCacheMax int
}

// NewGrid allocates an empty grid covering size×size in local units.
// maxFeatureAngle is in degrees; corners sharper than it are reconstructed.
func NewGrid(resolution int, size, maxFeatureAngle float64) *Grid {
	if resolution <= 0 {
		resolution = 1
	}
	g := &Grid{
		resolution:  resolution,
		cellSize:    size / float64(resolution),
		extent:      size,
		sharpLimit:  math.Cos(maxFeatureAngle * math.Pi / 180),
		samples:     make([]Sample, resolution*resolution),
		rowCacheMin: make([]int, resolution*2+1),
		rowCacheMax: make([]int, resolution*2+1),
	}
	for i, y := 0, 0; y < resolution; y++ {
		for x := 0; x < resolution; x, i = x+1, i+1 {
			g.samples[i] = NewSample(x, y, g.cellSize)
		}
	}
	g.Triangulate()
	return g
}

// Resolution is the number of samples along each axis.
func (g *Grid) Resolution() int { return g.resolution }

// CellSize is the distance between adjacent sample centres.
func (g *Grid) CellSize() float64 { return g.cellSize }

// Extent is the side length of the grid in local units.
func (g *Grid) Extent() float64 { return g.extent }

// SharpFeatureLimit is the cosine bound used by the sharp-feature test.
func (g *Grid) SharpFeatureLimit() float64 { return g.sharpLimit }

// Sample returns the sample at (x, y). Callers must stay in range.
func (g *Grid) Sample(x, y int) *Sample { return &g.samples[y*g.resolution+x] }

// Samples exposes the backing slice in row-major order.
func (g *Grid) Samples() []Sample { return g.samples }

// SetNeighbors installs the lookup used to reach adjacent grids. Pass nil to
// detach the grid.
func (g *Grid) SetNeighbors(lookup NeighborLookup) { g.neighbors = lookup }

// SetSink registers a receiver for every rebuilt mesh.
func (g *Grid) SetSink(sink MeshSink) { g.sink = sink }

func (g *Grid) neighbor(dir Direction) *Grid {
	if g.neighbors == nil {
		return nil
	}
	return g.neighbors(dir)
}

// xDummy copies the neighbour's sample i shifted one extent along +x.
func (g *Grid) xDummy(n *Grid, i int) Sample { return dummyOf(&n.samples[i], g.extent, 0) }

// yDummy copies the neighbour's sample i shifted one extent along +y.
func (g *Grid) yDummy(n *Grid, i int) Sample { return dummyOf(&n.samples[i], 0, g.extent) }

// xyDummy copies the neighbour's sample i shifted one extent along both axes.
func (g *Grid) xyDummy(n *Grid, i int) Sample { return dummyOf(&n.samples[i], g.extent, g.extent) }

// Apply writes the stencil into every sample it covers, repairs the crossings
// around the edit and rebuilds the mesh. Inert stencils change nothing.
func (g *Grid) Apply(st Stencil) {
	b, ok := st.Bounds()
	if !ok {
		return
	}
	xStart := int(math.Floor(b.XStart / g.cellSize))
	xEnd := int(math.Floor(b.XEnd / g.cellSize))
	yStart := int(math.Floor(b.YStart / g.cellSize))
	yEnd := int(math.Floor(b.YEnd / g.cellSize))

	last := g.resolution - 1
	for y := max(yStart, 0); y <= min(yEnd, last); y++ {
		i := y*g.resolution + max(xStart, 0)
		for x := max(xStart, 0); x <= min(xEnd, last); x, i = x+1, i+1 {
			st.Apply(&g.samples[i])
		}
	}

	g.SetCrossings(st, xStart, xEnd, yStart, yEnd)
	g.Triangulate()
}

// SetCrossings recomputes the crossings owned by every sample whose outgoing
// edges touch the index rectangle [xStart, xEnd]×[yStart, yEnd]. That is the
// rectangle grown by one sample toward -x and -y, since a sample owns the
// edges to its +x and +y neighbours. Edges leaving the grid are resolved
// against dummy copies of the neighbouring grid's border samples.
func (g *Grid) SetCrossings(st Stencil, xStart, xEnd, yStart, yEnd int) {
	last := g.resolution - 1
	x0, x1 := max(xStart-1, 0), min(xEnd, last)
	y0, y1 := max(yStart-1, 0), min(yEnd, last)
	if x0 > x1 || y0 > y1 {
		return
	}
	xn := g.neighbor(NeighborX)
	yn := g.neighbor(NeighborY)

	n := g.resolution
	for y := y0; y <= y1; y++ {
		i := y*n + x0
		for x := x0; x <= x1; x, i = x+1, i+1 {
			s := &g.samples[i]
			switch {
			case x < last:
				setHorizontalCrossing(st, s, &g.samples[i+1])
			case xn != nil:
				d := g.xDummy(xn, y*n)
				setHorizontalCrossing(st, s, &d)
			}
			switch {
			case y < last:
				setVerticalCrossing(st, s, &g.samples[i+n])
			case yn != nil:
				d := g.yDummy(yn, x)
				setVerticalCrossing(st, s, &d)
			}
		}
	}
}

func setHorizontalCrossing(st Stencil, xMin, xMax *Sample) {
	if xMin.Filled == xMax.Filled {
		xMin.clearXCrossing()
		return
	}
	st.ComputeHorizontalCrossing(xMin, xMax)
}

func setVerticalCrossing(st Stencil, yMin, yMax *Sample) {
	if yMin.Filled == yMax.Filled {
		yMin.clearYCrossing()
		return
	}
	st.ComputeVerticalCrossing(yMin, yMax)
}
