package contour

import "mesh-squares/pkg/geom"

// Bounds is the axis-aligned extent of a stencil in grid-local coordinates.
type Bounds struct {
	XStart, XEnd float64
	YStart, YEnd float64
}

// Stencil describes an edit region and the state it writes.
//
// Apply overwrites the state of samples inside the region. The crossing
// methods are only called for sample pairs whose states differ; they record
// where the region boundary cuts the edge in the lower sample of the pair.
type Stencil interface {
	Initialize(fill bool, radius float64)
	SetCenter(x, y float64)
	Center() geom.Vec2
	Fill() bool
	// Bounds reports false for an inert stencil, which edits nothing.
	Bounds() (Bounds, bool)
	Apply(s *Sample)
	ComputeHorizontalCrossing(xMin, xMax *Sample)
	ComputeVerticalCrossing(yMin, yMax *Sample)
}

// shape holds what every stencil variant shares.
type shape struct {
	fill   bool
	center geom.Vec2
	radius float64
	inert  bool
}

// Initialize sets the fill intent and half-size. A negative radius leaves the
// stencil inert until it is initialized again.
func (s *shape) Initialize(fill bool, radius float64) {
	s.fill = fill
	s.inert = radius < 0
	if s.inert {
		radius = 0
	}
	s.radius = radius
}

func (s *shape) SetCenter(x, y float64) { s.center = geom.Vec2{X: x, Y: y} }
func (s *shape) Center() geom.Vec2      { return s.center }
func (s *shape) Fill() bool             { return s.fill }

func (s *shape) Bounds() (Bounds, bool) {
	return Bounds{
		XStart: s.center.X - s.radius,
		XEnd:   s.center.X + s.radius,
		YStart: s.center.Y - s.radius,
		YEnd:   s.center.Y + s.radius,
	}, !s.inert
}

// SquareStencil edits an axis-aligned square of half-size radius.
type SquareStencil struct {
	shape
}

// NewSquare returns an initialized square stencil centred at the origin.
func NewSquare(fill bool, radius float64) *SquareStencil {
	s := &SquareStencil{}
	s.Initialize(fill, radius)
	return s
}

// Apply sets the sample state when its position lies inside the square,
// borders included.
func (s *SquareStencil) Apply(sm *Sample) {
	b, ok := s.Bounds()
	if !ok {
		return
	}
	p := sm.Position
	if p.X >= b.XStart && p.X <= b.XEnd && p.Y >= b.YStart && p.Y <= b.YEnd {
		sm.Filled = s.fill
	}
}

// ComputeHorizontalCrossing snaps the crossing to the square's vertical side
// between the two samples. Square sides carry no normal.
func (s *SquareStencil) ComputeHorizontalCrossing(xMin, xMax *Sample) {
	b, ok := s.Bounds()
	if !ok || xMin.Position.Y < b.YStart || xMin.Position.Y > b.YEnd {
		return
	}
	if xMin.Filled == s.fill {
		if xMin.Position.X <= b.XEnd && xMax.Position.X >= b.XEnd {
			xMin.XEdge = b.XEnd
			xMin.XNormal = geom.Vec2{}
		}
	} else if xMax.Filled == s.fill {
		if xMin.Position.X <= b.XStart && xMax.Position.X >= b.XStart {
			xMin.XEdge = b.XStart
			xMin.XNormal = geom.Vec2{}
		}
	}
}

// ComputeVerticalCrossing is the +y counterpart of ComputeHorizontalCrossing.
func (s *SquareStencil) ComputeVerticalCrossing(yMin, yMax *Sample) {
	b, ok := s.Bounds()
	if !ok || yMin.Position.X < b.XStart || yMin.Position.X > b.XEnd {
		return
	}
	if yMin.Filled == s.fill {
		if yMin.Position.Y <= b.YEnd && yMax.Position.Y >= b.YEnd {
			yMin.YEdge = b.YEnd
			yMin.YNormal = geom.Vec2{}
		}
	} else if yMax.Filled == s.fill {
		if yMin.Position.Y <= b.YStart && yMax.Position.Y >= b.YStart {
			yMin.YEdge = b.YStart
			yMin.YNormal = geom.Vec2{}
		}
	}
}
