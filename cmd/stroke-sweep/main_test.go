package main

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestRandomStrokesAreDeterministic(t *testing.T) {
	a := randomStrokes(9, 640, 50)
	b := randomStrokes(9, 640, 50)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("stroke %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestChunkedScenarioHasNoSeamDrift(t *testing.T) {
	strokes := randomStrokes(3, 640, 60)
	res, err := runScenario(scenario{chunks: 4, resolution: 8, featureAngle: 135}, 640, strokes)
	if err != nil {
		t.Fatalf("runScenario: %v", err)
	}
	if res.areaDrift > 1e-4 {
		t.Fatalf("area drift %g between chunked and single-grid fields", res.areaDrift)
	}
	if res.stats.FilledSamples == 0 || res.stats.Triangles == 0 {
		t.Fatalf("strokes left the field empty: %+v", res.stats)
	}
}

func TestWritePNG(t *testing.T) {
	res, err := runScenario(scenario{chunks: 2, resolution: 8, featureAngle: 135}, 640, randomStrokes(5, 640, 20))
	if err != nil {
		t.Fatalf("runScenario: %v", err)
	}
	path := filepath.Join(t.TempDir(), "sweep.png")
	if err := writePNG(path, res.field); err != nil {
		t.Fatalf("writePNG: %v", err)
	}
	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer file.Close()
	cfg, err := png.DecodeConfig(file)
	if err != nil {
		t.Fatalf("DecodeConfig: %v", err)
	}
	if cfg.Width != 512 || cfg.Height != 512 {
		t.Fatalf("image is %dx%d, want 512x512", cfg.Width, cfg.Height)
	}
}
