package core

import (
	"testing"
	"time"
)

func TestByteGridBounds(t *testing.T) {
	g := NewByteGrid(3, 2)
	g.Set(2, 1, 7)
	g.Set(3, 1, 9)
	g.Set(-1, 0, 9)
	if got := g.At(2, 1); got != 7 {
		t.Fatalf("At(2,1) = %d, want 7", got)
	}
	if got := g.At(5, 5); got != 0 {
		t.Fatalf("out of range read = %d, want 0", got)
	}
	if got := g.Count(); got != 1 {
		t.Fatalf("Count = %d, want 1", got)
	}
	g.Clear()
	if g.Count() != 0 {
		t.Fatal("Clear left cells set")
	}
}

func TestNewByteGridClampsDimensions(t *testing.T) {
	g := NewByteGrid(0, -3)
	if g.W != 1 || g.H != 1 || len(g.Cells()) != 1 {
		t.Fatalf("grid = %dx%d with %d cells", g.W, g.H, len(g.Cells()))
	}
}

func TestFixedStepAccumulates(t *testing.T) {
	clock := time.Unix(0, 0)
	fs := NewFixedStep(10)
	fs.now = func() time.Time { return clock }

	if !fs.ShouldStep() {
		t.Fatal("first call should step")
	}
	clock = clock.Add(50 * time.Millisecond)
	if fs.ShouldStep() {
		t.Fatal("stepped before a full period elapsed")
	}
	clock = clock.Add(60 * time.Millisecond)
	if !fs.ShouldStep() {
		t.Fatal("expected a step after 110ms at 10 TPS")
	}
}

func TestSnapshotLookup(t *testing.T) {
	s := ParameterSnapshot{Groups: []ParameterGroup{
		{Name: "Brush", Params: []Parameter{{Key: "radius", Value: "2"}}},
		{Name: "Mesh", Params: []Parameter{{Key: "triangles", Value: "18"}}},
	}}
	p, ok := s.Lookup("triangles")
	if !ok || p.Value != "18" {
		t.Fatalf("Lookup(triangles) = %+v, %v", p, ok)
	}
	if _, ok := s.Lookup("missing"); ok {
		t.Fatal("Lookup found a missing key")
	}
}
