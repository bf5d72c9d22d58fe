package contour

import "mesh-squares/pkg/geom"

// Triangulate rebuilds the mesh from the current sample states and crossings.
// Cells are swept row by row from the bottom. Every corner and crossing vertex
// is emitted once: the row caches hold the previous and current row's corner
// and bottom/top crossing indices, the edge cache the left and right crossing
// of the current cell. When neighbours are present one gap cell per row, a
// gap row and the diagonal gap cell are triangulated against dummy samples.
func (g *Grid) Triangulate() {
	g.vertices = g.vertices[:0]
	g.indices = g.indices[:0]

	xn := g.neighbor(NeighborX)
	g.fillFirstRowCache(xn)
	g.triangulateCellRows(xn)
	if yn := g.neighbor(NeighborY); yn != nil {
		g.triangulateGapRow(xn, yn, g.neighbor(NeighborXY))
	}

	if g.sink != nil {
		g.sink.SetMesh(g.vertices, g.indices)
	}
}

// Mesh returns the most recent triangulation. The slices are reused by the
// next Triangulate call.
func (g *Grid) Mesh() ([]geom.Vec2, []int) { return g.vertices, g.indices }

func (g *Grid) fillFirstRowCache(xn *Grid) {
	s := g.samples
	cells := g.resolution - 1
	g.cacheFirstCorner(&s[0])
	for x := 0; x < cells; x++ {
		g.cacheNextEdgeAndCorner(x*2, &s[x], &s[x+1])
	}
	if xn != nil {
		d := g.xDummy(xn, 0)
		g.cacheNextEdgeAndCorner(cells*2, &s[cells], &d)
	}
}

func (g *Grid) triangulateCellRows(xn *Grid) {
	s := g.samples
	n := g.resolution
	cells := n - 1
	for y := 0; y < cells; y++ {
		i := y * n
		g.swapRowCaches()
		g.cacheFirstCorner(&s[i+n])
		g.cacheNextMiddleEdge(&s[i], &s[i+n])

		for x := 0; x < cells; x, i = x+1, i+1 {
			a, b, c, d := &s[i], &s[i+1], &s[i+n], &s[i+n+1]
			cacheIndex := x * 2
			g.cacheNextEdgeAndCorner(cacheIndex, c, d)
			g.cacheNextMiddleEdge(b, d)
			g.triangulateCell(cacheIndex, a, b, c, d)
		}

		if xn != nil {
			g.triangulateGapCell(xn, y)
		}
	}
}

// triangulateGapCell closes row y against the +x neighbour's first column.
func (g *Grid) triangulateGapCell(xn *Grid, y int) {
	s := g.samples
	n := g.resolution
	i := y*n + n - 1
	lo := g.xDummy(xn, y*n)
	hi := g.xDummy(xn, (y+1)*n)
	cacheIndex := (n - 1) * 2
	g.cacheNextEdgeAndCorner(cacheIndex, &s[i+n], &hi)
	g.cacheNextMiddleEdge(&lo, &hi)
	g.triangulateCell(cacheIndex, &s[i], &lo, &s[i+n], &hi)
}

// triangulateGapRow closes the top row against the +y neighbour's first row,
// then the corner cell against the +x and +x+y neighbours.
func (g *Grid) triangulateGapRow(xn, yn, xyn *Grid) {
	s := g.samples
	n := g.resolution
	cells := n - 1
	offset := cells * n

	g.swapRowCaches()
	prev := g.yDummy(yn, 0)
	g.cacheFirstCorner(&prev)
	g.cacheNextMiddleEdge(&s[offset], &prev)

	for x := 0; x < cells; x++ {
		next := g.yDummy(yn, x+1)
		cacheIndex := x * 2
		g.cacheNextEdgeAndCorner(cacheIndex, &prev, &next)
		g.cacheNextMiddleEdge(&s[offset+x+1], &next)
		g.triangulateCell(cacheIndex, &s[offset+x], &s[offset+x+1], &prev, &next)
		prev = next
	}

	if xn == nil || xyn == nil {
		return
	}
	right := g.xDummy(xn, offset)
	corner := g.xyDummy(xyn, 0)
	cacheIndex := cells * 2
	g.cacheNextEdgeAndCorner(cacheIndex, &prev, &corner)
	g.cacheNextMiddleEdge(&right, &corner)
	g.triangulateCell(cacheIndex, &s[len(s)-1], &right, &prev, &corner)
}

func (g *Grid) swapRowCaches() {
	g.rowCacheMin, g.rowCacheMax = g.rowCacheMax, g.rowCacheMin
}

func (g *Grid) cacheFirstCorner(s *Sample) {
	if s.Filled {
		g.rowCacheMax[0] = g.addVertex(s.Position)
	}
}

func (g *Grid) cacheNextEdgeAndCorner(i int, xMin, xMax *Sample) {
	if xMin.Filled != xMax.Filled {
		g.rowCacheMax[i+1] = g.addVertex(xMin.XEdgePoint())
	}
	if xMax.Filled {
		g.rowCacheMax[i+2] = g.addVertex(xMax.Position)
	}
}

func (g *Grid) cacheNextMiddleEdge(yMin, yMax *Sample) {
	g.edgeCacheMin = g.edgeCacheMax
	if yMin.Filled != yMax.Filled {
		g.edgeCacheMax = g.addVertex(yMin.YEdgePoint())
	}
}

func (g *Grid) addVertex(p geom.Vec2) int {
	g.vertices = append(g.vertices, p)
	return len(g.vertices) - 1
}

func (g *Grid) triangulateCell(i int, a, b, c, d *Sample) {
	cs := &caseTable[caseCode(a, b, c, d)]
	if p, ok := sharpCorner(cs, g.sharpLimit, a, b, c, d); ok {
		g.addPolygon(i, cs.sharp, g.addVertex(p))
		return
	}
	for _, poly := range cs.polygons {
		g.addPolygon(i, poly, -1)
	}
}

// vertexFor maps a role to a vertex index for the cell at cache slot i.
func (g *Grid) vertexFor(i int, r role, sharp int) int {
	switch r {
	case roleA:
		return g.rowCacheMin[i]
	case roleAB:
		return g.rowCacheMin[i+1]
	case roleB:
		return g.rowCacheMin[i+2]
	case roleC:
		return g.rowCacheMax[i]
	case roleCD:
		return g.rowCacheMax[i+1]
	case roleD:
		return g.rowCacheMax[i+2]
	case roleAC:
		return g.edgeCacheMin
	case roleBD:
		return g.edgeCacheMax
	default:
		return sharp
	}
}

// addPolygon emits poly as a triangle fan around its first vertex. Polygons
// are listed clockwise, so each triangle is written in reverse to come out
// counter-clockwise.
func (g *Grid) addPolygon(i int, poly []role, sharp int) {
	first := g.vertexFor(i, poly[0], sharp)
	for k := 1; k+1 < len(poly); k++ {
		g.indices = append(g.indices,
			first,
			g.vertexFor(i, poly[k+1], sharp),
			g.vertexFor(i, poly[k], sharp),
		)
	}
}
