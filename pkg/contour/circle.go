package contour

import (
	"math"

	"mesh-squares/pkg/geom"
)

// CircleStencil edits a disc and records exact crossings with outward normals.
type CircleStencil struct {
	shape
	sqrRadius float64
}

// NewCircle returns an initialized circle stencil centred at the origin.
func NewCircle(fill bool, radius float64) *CircleStencil {
	c := &CircleStencil{}
	c.Initialize(fill, radius)
	return c
}

// Initialize also caches the squared radius used by the containment test.
func (c *CircleStencil) Initialize(fill bool, radius float64) {
	c.shape.Initialize(fill, radius)
	c.sqrRadius = c.radius * c.radius
}

// Apply sets the sample state when its squared distance to the centre is at
// most radius².
func (c *CircleStencil) Apply(s *Sample) {
	if c.inert {
		return
	}
	x := s.Position.X - c.center.X
	y := s.Position.Y - c.center.Y
	if x*x+y*y <= c.sqrRadius {
		s.Filled = c.fill
	}
}

// ComputeHorizontalCrossing solves the circle along the row through xMin.
// An existing crossing is only replaced by one lying further from the side
// that holds the stencil's fill state.
func (c *CircleStencil) ComputeHorizontalCrossing(xMin, xMax *Sample) {
	if c.inert {
		return
	}
	y2 := xMin.Position.Y - c.center.Y
	y2 *= y2
	if xMin.Filled == c.fill {
		x := xMin.Position.X - c.center.X
		if x*x+y2 <= c.sqrRadius {
			x = c.center.X + math.Sqrt(c.sqrRadius-y2)
			if !xMin.HasXCrossing() || xMin.XEdge < x {
				xMin.XEdge = x
				xMin.XNormal = c.normal(x, xMin.Position.Y)
			}
		}
	} else if xMax.Filled == c.fill {
		x := xMax.Position.X - c.center.X
		if x*x+y2 <= c.sqrRadius {
			x = c.center.X - math.Sqrt(c.sqrRadius-y2)
			if !xMin.HasXCrossing() || xMin.XEdge > x {
				xMin.XEdge = x
				xMin.XNormal = c.normal(x, xMin.Position.Y)
			}
		}
	}
}

// ComputeVerticalCrossing is the +y counterpart of ComputeHorizontalCrossing.
func (c *CircleStencil) ComputeVerticalCrossing(yMin, yMax *Sample) {
	if c.inert {
		return
	}
	x2 := yMin.Position.X - c.center.X
	x2 *= x2
	if yMin.Filled == c.fill {
		y := yMin.Position.Y - c.center.Y
		if y*y+x2 <= c.sqrRadius {
			y = c.center.Y + math.Sqrt(c.sqrRadius-x2)
			if !yMin.HasYCrossing() || yMin.YEdge < y {
				yMin.YEdge = y
				yMin.YNormal = c.normal(yMin.Position.X, y)
			}
		}
	} else if yMax.Filled == c.fill {
		y := yMax.Position.Y - c.center.Y
		if y*y+x2 <= c.sqrRadius {
			y = c.center.Y - math.Sqrt(c.sqrRadius-x2)
			if !yMin.HasYCrossing() || yMin.YEdge > y {
				yMin.YEdge = y
				yMin.YNormal = c.normal(yMin.Position.X, y)
			}
		}
	}
}

// normal points away from the filled side: out of the disc when filling,
// into it when digging.
func (c *CircleStencil) normal(x, y float64) geom.Vec2 {
	p := geom.Vec2{X: x, Y: y}
	if c.fill {
		return p.Sub(c.center).Normalize()
	}
	return c.center.Sub(p).Normalize()
}
