package geom

import "math"

// Vec2 is a 2D point or direction in a y-up frame.
type Vec2 struct{ X, Y float64 }

func (a Vec2) Add(b Vec2) Vec2      { return Vec2{a.X + b.X, a.Y + b.Y} }
func (a Vec2) Sub(b Vec2) Vec2      { return Vec2{a.X - b.X, a.Y - b.Y} }
func (a Vec2) Mul(s float64) Vec2   { return Vec2{a.X * s, a.Y * s} }
func (a Vec2) Neg() Vec2            { return Vec2{-a.X, -a.Y} }
func (a Vec2) Dot(b Vec2) float64   { return a.X*b.X + a.Y*b.Y }
func (a Vec2) Len2() float64        { return a.Dot(a) }
func (a Vec2) Len() float64         { return math.Sqrt(a.Len2()) }
func (a Vec2) IsZero() bool         { return a.X == 0 && a.Y == 0 }
func (a Vec2) Cross(b Vec2) float64 { return a.X*b.Y - a.Y*b.X }

// Perp returns the vector rotated a quarter turn clockwise.
func (a Vec2) Perp() Vec2 { return Vec2{a.Y, -a.X} }

// Normalize returns a unit vector (or zero vector if length is zero).
func (a Vec2) Normalize() Vec2 {
	l := a.Len()
	if l < 1e-12 {
		return Vec2{}
	}
	return a.Mul(1.0 / l)
}

// Near reports whether a and b are within eps on both axes.
func (a Vec2) Near(b Vec2, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps
}
