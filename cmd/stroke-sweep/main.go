package main

import (
	"flag"
	"fmt"
	"image/png"
	"log"
	"math"
	"os"
	"runtime"
	"sort"
	"sync"
	"time"

	"mesh-squares/internal/app"
	"mesh-squares/internal/core"
	"mesh-squares/internal/render"
	"mesh-squares/pkg/contour"
	rng "mesh-squares/pkg/core"
	"mesh-squares/pkg/field"
	"mesh-squares/pkg/geom"
)

type scenario struct {
	chunks       int
	resolution   int
	featureAngle float64
}

func (s scenario) String() string {
	return fmt.Sprintf("chunks=%d res=%d angle=%.0f", s.chunks, s.resolution, s.featureAngle)
}

type stroke struct {
	at    geom.Vec2
	brush field.Brush
}

type scenarioResult struct {
	scenario scenario
	stats    field.Stats
	perEdit  time.Duration
	maxEdit  time.Duration

	// areaDrift is the area difference against one unchunked grid with the
	// same sample spacing; chunk seams that crack or overlap show up here.
	areaDrift float64
	field     *field.Field
}

func main() {
	steps := flag.Int("steps", 400, "random strokes per scenario")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	seed := flag.Int64("seed", 1337, "seed for the stroke sequence")
	size := flag.Float64("size", 640, "field side length")
	out := flag.String("png", "", "write a raster of the densest scenario to this file")
	flag.Parse()

	strokes := randomStrokes(*seed, *size, *steps)

	var sets []scenario
	for _, chunks := range []int{1, 2, 4} {
		for _, res := range []int{8, 16, 32} {
			for _, angle := range []float64{90, 135, 180} {
				sets = append(sets, scenario{chunks: chunks, resolution: res, featureAngle: angle})
			}
		}
	}

	fmt.Printf("Sweeping %d field configurations (%d workers, %d strokes)\n", len(sets), *workers, len(strokes))

	jobs := make(chan scenario)
	results := make(chan scenarioResult)
	var wg sync.WaitGroup

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sc := range jobs {
				res, err := runScenario(sc, *size, strokes)
				if err != nil {
					log.Printf("%s: %v", sc, err)
					continue
				}
				results <- res
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, sc := range sets {
			jobs <- sc
		}
		close(jobs)
	}()

	start := time.Now()
	var all []scenarioResult
	for res := range results {
		all = append(all, res)
		if res.areaDrift > 1e-6 {
			fmt.Printf("Seam drift %.6f with %s\n", res.areaDrift, res.scenario)
		}
	}
	elapsed := time.Since(start)

	sort.Slice(all, func(i, j int) bool { return all[i].perEdit < all[j].perEdit })
	fmt.Printf("\nResults by edit time (elapsed %s):\n", elapsed.Round(time.Millisecond))
	for i, res := range all {
		fmt.Printf("%2d) %s edit=%s max=%s samples=%d verts=%d tris=%d area=%.1f drift=%.2g\n",
			i+1, res.scenario, res.perEdit, res.maxEdit, res.stats.FilledSamples, res.stats.Vertices,
			res.stats.Triangles, res.stats.Area, res.areaDrift)
	}

	if *out != "" && len(all) > 0 {
		densest := all[0]
		for _, res := range all[1:] {
			if res.stats.Triangles > densest.stats.Triangles {
				densest = res
			}
		}
		if err := writePNG(*out, densest.field); err != nil {
			log.Fatalf("write %s: %v", *out, err)
		}
		fmt.Printf("\nWrote %s (%s)\n", *out, densest.scenario)
	}
}

// randomStrokes draws a deterministic brush sequence. Most strokes fill so
// the field accumulates shapes that later digs can carve.
func randomStrokes(seed int64, size float64, n int) []stroke {
	r := rng.NewRNG(seed)
	shapes := contour.Stencils()
	out := make([]stroke, n)
	for i := range out {
		out[i] = stroke{
			at: r.PointIn(size),
			brush: field.Brush{
				Shape:  shapes[r.IntN(len(shapes))],
				Fill:   r.Chance(0.7),
				Radius: r.IntN(app.MaxBrushRadius + 1),
			},
		}
	}
	return out
}

func runScenario(sc scenario, size float64, strokes []stroke) (scenarioResult, error) {
	chunked, err := field.New(field.Config{Size: size, Chunks: sc.chunks, Resolution: sc.resolution, FeatureAngle: sc.featureAngle})
	if err != nil {
		return scenarioResult{}, err
	}
	reference, err := field.New(field.Config{Size: size, Chunks: 1, Resolution: sc.chunks * sc.resolution, FeatureAngle: sc.featureAngle})
	if err != nil {
		return scenarioResult{}, err
	}

	var total, worst time.Duration
	for _, s := range strokes {
		begin := time.Now()
		if err := chunked.EditAt(s.at, s.brush); err != nil {
			return scenarioResult{}, err
		}
		d := time.Since(begin)
		total += d
		worst = max(worst, d)

		if err := reference.EditAt(s.at, s.brush); err != nil {
			return scenarioResult{}, err
		}
	}

	res := scenarioResult{
		scenario:  sc,
		stats:     chunked.Stats(),
		maxEdit:   worst,
		areaDrift: math.Abs(chunked.Mesh().Area() - reference.Mesh().Area()),
		field:     chunked,
	}
	if len(strokes) > 0 {
		res.perEdit = total / time.Duration(len(strokes))
	}
	return res, nil
}

func writePNG(path string, f *field.Field) error {
	const side = 512
	cells := core.NewByteGrid(side, side)
	render.FillMesh(cells, f.Mesh(), render.Viewport{Size: f.Size(), W: side, H: side}, render.Solid)
	render.MarkChunkBorders(cells, f.Config().Chunks)

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(file, render.PaletteImage(cells, render.DefaultPalette)); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
