package contour

import (
	"math"

	"mesh-squares/pkg/geom"
)

// NoCrossing marks an outgoing edge with no recorded boundary crossing.
const NoCrossing = -math.MaxFloat64

// Sample is one grid point: its fill state, its fixed position and the
// crossings recorded on its outgoing +x and +y edges.
//
// XEdge is the x coordinate where the boundary crosses the edge toward the +x
// neighbour, YEdge the y coordinate on the edge toward the +y neighbour. Both
// are only meaningful while the sample's state differs from that neighbour's.
type Sample struct {
	Filled   bool
	Position geom.Vec2

	XEdge, YEdge     float64
	XNormal, YNormal geom.Vec2
}

// NewSample returns an empty sample centred in cell (x, y).
func NewSample(x, y int, size float64) Sample {
	return Sample{
		Position: geom.Vec2{X: (float64(x) + 0.5) * size, Y: (float64(y) + 0.5) * size},
		XEdge:    NoCrossing,
		YEdge:    NoCrossing,
	}
}

// HasXCrossing reports whether a crossing is recorded on the +x edge.
func (s *Sample) HasXCrossing() bool { return s.XEdge != NoCrossing }

// HasYCrossing reports whether a crossing is recorded on the +y edge.
func (s *Sample) HasYCrossing() bool { return s.YEdge != NoCrossing }

// XEdgePoint is the crossing point on the +x edge.
func (s *Sample) XEdgePoint() geom.Vec2 { return geom.Vec2{X: s.XEdge, Y: s.Position.Y} }

// YEdgePoint is the crossing point on the +y edge.
func (s *Sample) YEdgePoint() geom.Vec2 { return geom.Vec2{X: s.Position.X, Y: s.YEdge} }

func (s *Sample) clearXCrossing() {
	s.XEdge = NoCrossing
	s.XNormal = geom.Vec2{}
}

func (s *Sample) clearYCrossing() {
	s.YEdge = NoCrossing
	s.YNormal = geom.Vec2{}
}

// dummyOf returns a copy of src shifted by (dx, dy). Unset crossings stay unset.
func dummyOf(src *Sample, dx, dy float64) Sample {
	d := *src
	d.Position.X += dx
	d.Position.Y += dy
	if d.XEdge != NoCrossing {
		d.XEdge += dx
	}
	if d.YEdge != NoCrossing {
		d.YEdge += dy
	}
	return d
}
