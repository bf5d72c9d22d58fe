package app

import (
	"errors"
	"flag"
	"testing"

	"mesh-squares/internal/core"
	"mesh-squares/pkg/contour"
)

func newEditor(t *testing.T) *Editor {
	t.Helper()
	e, err := NewEditor(NewConfig())
	if err != nil {
		t.Fatalf("NewEditor: %v", err)
	}
	return e
}

func TestConfigBind(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("contour", flag.ContinueOnError)
	cfg.Bind(fs)
	if err := fs.Parse([]string{"-size", "320", "-chunks", "4", "-shape", "square", "-radius", "3", "-feature-angle", "100"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Field.Size != 320 || cfg.Field.Chunks != 4 || cfg.Shape != "square" || cfg.Radius != 3 || cfg.Field.FeatureAngle != 100 {
		t.Fatalf("bound config = %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := NewConfig()
	cfg.Shape = "hexagon"
	if err := cfg.Validate(); !errors.Is(err, contour.ErrUnknownStencil) {
		t.Fatalf("unknown shape error = %v", err)
	}
	cfg = NewConfig()
	cfg.Radius = MaxBrushRadius + 1
	if err := cfg.Validate(); err == nil {
		t.Fatal("oversized radius accepted")
	}
	cfg = NewConfig()
	cfg.Scale = 0
	if _, err := NewEditor(cfg); err == nil {
		t.Fatal("zero scale accepted")
	}
}

func TestStrokeEditsSampleUnderPointer(t *testing.T) {
	e := newEditor(t)
	if got := e.Size(); got != (core.Size{W: 640, H: 640}) {
		t.Fatalf("view size = %+v", got)
	}
	// Pixel (335, 300) is field point (335.5, 339.5), inside sample (340, 340).
	if err := e.Stroke(335, 300, false); err != nil {
		t.Fatalf("Stroke: %v", err)
	}
	if got := e.Stats().FilledSamples; got != 5 {
		t.Fatalf("filled samples = %d, want 5", got)
	}
	if e.Stats().Triangles == 0 {
		t.Fatal("stroke produced no triangles")
	}
}

func TestStrokeSkipsRepeatedSample(t *testing.T) {
	e := newEditor(t)
	if err := e.Stroke(335, 300, false); err != nil {
		t.Fatalf("Stroke: %v", err)
	}
	e.Field().Fill(false)
	if err := e.Stroke(338, 302, false); err != nil {
		t.Fatalf("Stroke: %v", err)
	}
	if got := e.Field().Stats().FilledSamples; got != 0 {
		t.Fatalf("repeated sample was edited again: %d filled", got)
	}
	e.EndStroke()
	if err := e.Stroke(338, 302, false); err != nil {
		t.Fatalf("Stroke: %v", err)
	}
	if got := e.Field().Stats().FilledSamples; got != 5 {
		t.Fatalf("new stroke filled %d samples, want 5", got)
	}
}

func TestStrokeInvertDigs(t *testing.T) {
	e := newEditor(t)
	e.Fill(true)
	e.SetIntParameter("radius", 0)
	if err := e.Stroke(10, 10, true); err != nil {
		t.Fatalf("Stroke: %v", err)
	}
	if got, want := e.Stats().FilledSamples, 16*16-1; got != want {
		t.Fatalf("filled samples = %d, want %d", got, want)
	}
	if err := e.Stroke(-1, 10, true); err != nil {
		t.Fatalf("Stroke outside view: %v", err)
	}
}

func TestBrushControls(t *testing.T) {
	e := newEditor(t)
	e.CycleShape()
	if e.Brush().Shape != "square" {
		t.Fatalf("shape after cycle = %q", e.Brush().Shape)
	}
	e.CycleShape()
	if e.Brush().Shape != "circle" {
		t.Fatalf("shape after second cycle = %q", e.Brush().Shape)
	}
	e.AdjustRadius(100)
	if e.Brush().Radius != MaxBrushRadius {
		t.Fatalf("radius = %d, want clamp to %d", e.Brush().Radius, MaxBrushRadius)
	}
	e.AdjustRadius(-100)
	if e.Brush().Radius != 0 {
		t.Fatalf("radius = %d, want 0", e.Brush().Radius)
	}
	e.ToggleFill()
	if e.Brush().Fill {
		t.Fatal("toggle should switch to digging")
	}

	if e.SetChoiceParameter("shape", "blob") {
		t.Fatal("unknown shape accepted")
	}
	if !e.SetChoiceParameter("shape", "square") || e.Brush().Shape != "square" {
		t.Fatal("square shape rejected")
	}
	if e.SetIntParameter("radius", -1) {
		t.Fatal("negative radius accepted")
	}
	if !e.SetBoolParameter("fill", true) || !e.Brush().Fill {
		t.Fatal("fill toggle rejected")
	}
}

func TestParametersReportStats(t *testing.T) {
	e := newEditor(t)
	e.Fill(true)
	p, ok := e.Parameters().Lookup("triangles")
	if !ok || p.Value != "450" {
		t.Fatalf("triangles parameter = %+v, want 450", p)
	}
	if p, _ := e.Parameters().Lookup("area"); p.Value != "360000.0" {
		t.Fatalf("area parameter = %q", p.Value)
	}
	if p, _ := e.Parameters().Lookup("sharp"); p.Value != "-0.707" {
		t.Fatalf("sharp limit parameter = %q, want -0.707", p.Value)
	}
	if len(e.ParameterControls()) != 3 {
		t.Fatalf("controls = %d, want 3", len(e.ParameterControls()))
	}
}

func TestGenerateCaveRefreshesStats(t *testing.T) {
	e := newEditor(t)
	if err := e.GenerateCave(21); err != nil {
		t.Fatalf("GenerateCave: %v", err)
	}
	if got, want := e.Stats(), e.Field().Stats(); got != want {
		t.Fatalf("cached stats %+v, field reports %+v", got, want)
	}
	if e.Stats().FilledSamples == 0 {
		t.Fatal("cave left the field empty")
	}
}
