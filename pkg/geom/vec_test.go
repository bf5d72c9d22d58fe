package geom

import (
	"math"
	"testing"
)

func TestNormalizeZeroSafe(t *testing.T) {
	if got := (Vec2{}).Normalize(); !got.IsZero() {
		t.Fatalf("normalize of zero vector = %v, want zero", got)
	}
	n := Vec2{3, 4}.Normalize()
	if math.Abs(n.Len()-1) > 1e-12 {
		t.Fatalf("normalized length = %f, want 1", n.Len())
	}
}

func TestPerpIsClockwise(t *testing.T) {
	p := Vec2{0, 1}.Perp()
	if p != (Vec2{1, 0}) {
		t.Fatalf("perp of up = %v, want right", p)
	}
	if d := (Vec2{2, 5}).Dot(Vec2{2, 5}.Perp()); d != 0 {
		t.Fatalf("perp not orthogonal, dot = %f", d)
	}
}
