package contour

import (
	"math"

	"mesh-squares/pkg/geom"
)

// role names one vertex of a cell by where it sits, not by its index in the
// vertex list. Cell corners are a (bottom-left), b (bottom-right), c
// (top-left) and d (top-right).
type role uint8

const (
	roleA     role = iota // corner a
	roleAB                // crossing on the bottom edge
	roleB                 // corner b
	roleC                 // corner c
	roleCD                // crossing on the top edge
	roleD                 // corner d
	roleAC                // crossing on the left edge
	roleBD                // crossing on the right edge
	roleSharp             // reconstructed sharp corner
)

// edge identifies the crossing whose point and normal feed the sharp test.
type edge uint8

const (
	edgeAB edge = iota
	edgeCD
	edgeAC
	edgeBD
)

type feature uint8

const (
	featureNone feature = iota
	// featureCorner turns a single filled corner into a quad when the
	// intersection survives clamping toward that corner.
	featureCorner
	// featureNotch turns a pentagon into a hexagon when the intersection
	// lies strictly inside the cell.
	featureNotch
)

// clamp selects which cell sides bound a featureCorner intersection. The
// first word is the x side, the second the y side that the point is pulled
// toward; the opposite sides reject it outright.
type clamp uint8

const (
	clampMaxMax clamp = iota
	clampMinMax
	clampMaxMin
	clampMinMin
)

// cellCase is the triangulation template for one of the 16 corner patterns.
// Polygons are listed clockwise and emitted as counter-clockwise fans.
type cellCase struct {
	polygons [][]role
	feature  feature
	edges    [2]edge
	clamp    clamp
	sharp    []role
}

// caseTable is indexed by the case code: bit0 a, bit1 b, bit2 c, bit3 d.
var caseTable = [16]cellCase{
	0: {},
	1: {
		polygons: [][]role{{roleA, roleAC, roleAB}},
		feature:  featureCorner,
		edges:    [2]edge{edgeAB, edgeAC},
		clamp:    clampMaxMax,
		sharp:    []role{roleSharp, roleAB, roleA, roleAC},
	},
	2: {
		polygons: [][]role{{roleB, roleAB, roleBD}},
		feature:  featureCorner,
		edges:    [2]edge{edgeAB, edgeBD},
		clamp:    clampMinMax,
		sharp:    []role{roleSharp, roleBD, roleB, roleAB},
	},
	3: {polygons: [][]role{{roleA, roleAC, roleBD, roleB}}},
	4: {
		polygons: [][]role{{roleC, roleCD, roleAC}},
		feature:  featureCorner,
		edges:    [2]edge{edgeCD, edgeAC},
		clamp:    clampMaxMin,
		sharp:    []role{roleSharp, roleAC, roleC, roleCD},
	},
	5: {polygons: [][]role{{roleA, roleC, roleCD, roleAB}}},
	6: {polygons: [][]role{{roleB, roleAB, roleBD}, {roleC, roleCD, roleAC}}},
	7: {
		polygons: [][]role{{roleA, roleC, roleCD, roleBD, roleB}},
		feature:  featureNotch,
		edges:    [2]edge{edgeCD, edgeBD},
		sharp:    []role{roleSharp, roleBD, roleB, roleA, roleC, roleCD},
	},
	8: {
		polygons: [][]role{{roleD, roleBD, roleCD}},
		feature:  featureCorner,
		edges:    [2]edge{edgeCD, edgeBD},
		clamp:    clampMinMin,
		sharp:    []role{roleSharp, roleCD, roleD, roleBD},
	},
	9:  {polygons: [][]role{{roleA, roleAC, roleAB}, {roleD, roleBD, roleCD}}},
	10: {polygons: [][]role{{roleAB, roleCD, roleD, roleB}}},
	11: {
		polygons: [][]role{{roleB, roleA, roleAC, roleCD, roleD}},
		feature:  featureNotch,
		edges:    [2]edge{edgeCD, edgeAC},
		sharp:    []role{roleSharp, roleCD, roleD, roleB, roleA, roleAC},
	},
	12: {polygons: [][]role{{roleAC, roleC, roleD, roleBD}}},
	13: {
		polygons: [][]role{{roleC, roleD, roleBD, roleAB, roleA}},
		feature:  featureNotch,
		edges:    [2]edge{edgeAB, edgeBD},
		sharp:    []role{roleSharp, roleAB, roleA, roleC, roleD, roleBD},
	},
	14: {
		polygons: [][]role{{roleD, roleB, roleAB, roleAC, roleC}},
		feature:  featureNotch,
		edges:    [2]edge{edgeAB, edgeAC},
		sharp:    []role{roleSharp, roleAC, roleC, roleD, roleB, roleAB},
	},
	15: {polygons: [][]role{{roleA, roleC, roleD, roleB}}},
}

func caseCode(a, b, c, d *Sample) int {
	code := 0
	if a.Filled {
		code |= 1
	}
	if b.Filled {
		code |= 2
	}
	if c.Filled {
		code |= 4
	}
	if d.Filled {
		code |= 8
	}
	return code
}

// crossing returns the point and normal recorded for e.
func crossing(e edge, a, b, c *Sample) (geom.Vec2, geom.Vec2) {
	switch e {
	case edgeAB:
		return a.XEdgePoint(), a.XNormal
	case edgeCD:
		return c.XEdgePoint(), c.XNormal
	case edgeAC:
		return a.YEdgePoint(), a.YNormal
	default:
		return b.YEdgePoint(), b.YNormal
	}
}

// parallelLimit excludes near-parallel normals whose intersection would run
// off toward infinity.
const parallelLimit = 0.9999

// isSharpFeature reports whether the boundary turns a corner between the two
// crossings. The lower bound is inclusive. Missing normals are never sharp.
func isSharpFeature(n1, n2 geom.Vec2, limit float64) bool {
	if n1.IsZero() || n2.IsZero() {
		return false
	}
	dot := n1.Dot(n2.Neg())
	return dot >= limit && dot < parallelLimit
}

// intersect returns where the tangent line through p1 (normal n1) meets the
// tangent line through p2 (normal n2).
func intersect(p1, n1, p2, n2 geom.Vec2) (geom.Vec2, bool) {
	u2 := n2.Perp()
	denom := n1.Dot(u2)
	if math.Abs(denom) < 1e-12 {
		return geom.Vec2{}, false
	}
	d2 := -n1.Dot(p2.Sub(p1)) / denom
	return p2.Add(u2.Mul(d2)), true
}

// clampToCell bounds p by the cell spanned by min and max positions. The
// sides named by mode pull p in; the opposite sides reject it.
func clampToCell(mode clamp, p, min, max geom.Vec2) (geom.Vec2, bool) {
	switch mode {
	case clampMaxMax:
		if p.X < min.X || p.Y < min.Y {
			return p, false
		}
		p.X = math.Min(p.X, max.X)
		p.Y = math.Min(p.Y, max.Y)
	case clampMinMin:
		if p.X > max.X || p.Y > max.Y {
			return p, false
		}
		p.X = math.Max(p.X, min.X)
		p.Y = math.Max(p.Y, min.Y)
	case clampMinMax:
		if p.X > max.X || p.Y < min.Y {
			return p, false
		}
		p.X = math.Max(p.X, min.X)
		p.Y = math.Min(p.Y, max.Y)
	case clampMaxMin:
		if p.X < min.X || p.Y > max.Y {
			return p, false
		}
		p.X = math.Min(p.X, max.X)
		p.Y = math.Max(p.Y, min.Y)
	}
	return p, true
}

func insideCell(p, min, max geom.Vec2) bool {
	return p.X > min.X && p.Y > min.Y && p.X < max.X && p.Y < max.Y
}

// sharpCorner resolves the feature vertex for cases that have one.
func sharpCorner(cs *cellCase, limit float64, a, b, c, d *Sample) (geom.Vec2, bool) {
	if cs.feature == featureNone {
		return geom.Vec2{}, false
	}
	p1, n1 := crossing(cs.edges[0], a, b, c)
	p2, n2 := crossing(cs.edges[1], a, b, c)
	if !isSharpFeature(n1, n2, limit) {
		return geom.Vec2{}, false
	}
	p, ok := intersect(p1, n1, p2, n2)
	if !ok {
		return geom.Vec2{}, false
	}
	if cs.feature == featureNotch {
		return p, insideCell(p, a.Position, d.Position)
	}
	return clampToCell(cs.clamp, p, a.Position, d.Position)
}
