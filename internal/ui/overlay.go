//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"mesh-squares/internal/core"
	"mesh-squares/internal/render"
	"mesh-squares/pkg/contour"
	"mesh-squares/pkg/field"
	"mesh-squares/pkg/geom"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

type fieldProvider interface {
	Field() *field.Field
	Viewport() render.Viewport
}

// Overlay draws optional debugging visuals on top of the field mesh.
type Overlay struct {
	scene core.Scene

	showSamples   bool
	showCrossings bool
	showNormals   bool
	showChunks    bool
}

// NewOverlay constructs a new overlay instance. Chunk borders start visible.
func NewOverlay(scene core.Scene) *Overlay {
	return &Overlay{scene: scene, showChunks: true}
}

// Update toggles layers with the digit keys.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showSamples = !o.showSamples
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showCrossings = !o.showCrossings
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit3) {
		o.showNormals = !o.showNormals
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit4) {
		o.showChunks = !o.showChunks
	}
}

// Draw renders the enabled layers onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	provider, ok := o.scene.(fieldProvider)
	if !ok {
		return
	}
	f := provider.Field()
	view := provider.Viewport()
	pixelsPerCell := f.CellSize() / view.Size * float64(view.W)

	if o.showChunks {
		o.drawChunkBorders(screen, f, view)
	}
	if !o.showSamples && !o.showCrossings && !o.showNormals {
		return
	}

	dot := float32(math.Max(pixelsPerCell*0.08, 1.5))
	normalLength := pixelsPerCell * 0.45
	f.ForEachSample(func(s contour.Sample) {
		if o.showSamples {
			x, y := view.ToPixel(s.Position)
			col := emptySampleColor
			if s.Filled {
				col = filledSampleColor
			}
			vector.DrawFilledCircle(screen, float32(x), float32(y), dot, col, true)
		}
		if s.HasXCrossing() {
			o.drawCrossing(screen, view, s.XEdgePoint(), s.XNormal, dot, normalLength)
		}
		if s.HasYCrossing() {
			o.drawCrossing(screen, view, s.YEdgePoint(), s.YNormal, dot, normalLength)
		}
	})
}

func (o *Overlay) drawCrossing(screen *ebiten.Image, view render.Viewport, p, n geom.Vec2, dot float32, length float64) {
	x, y := view.ToPixel(p)
	if o.showCrossings {
		vector.DrawFilledRect(screen, float32(x)-dot, float32(y)-dot, 2*dot, 2*dot, crossingColor, false)
	}
	if o.showNormals && !n.IsZero() {
		// Screen y grows downward.
		o.drawArrow(screen, x, y, n.X, -n.Y, length, normalColor)
	}
}

func (o *Overlay) drawArrow(screen *ebiten.Image, x, y, nx, ny, length float64, col color.RGBA) {
	const headAngle = math.Pi / 6

	tipX := x + nx*length
	tipY := y + ny*length
	headLength := length * 0.3
	vector.StrokeLine(screen, float32(x), float32(y), float32(tipX), float32(tipY), 1, col, true)

	angle := math.Atan2(ny, nx)
	leftX := tipX - math.Cos(angle+headAngle)*headLength
	leftY := tipY - math.Sin(angle+headAngle)*headLength
	rightX := tipX - math.Cos(angle-headAngle)*headLength
	rightY := tipY - math.Sin(angle-headAngle)*headLength
	vector.StrokeLine(screen, float32(tipX), float32(tipY), float32(leftX), float32(leftY), 1, col, true)
	vector.StrokeLine(screen, float32(tipX), float32(tipY), float32(rightX), float32(rightY), 1, col, true)
}

func (o *Overlay) drawChunkBorders(screen *ebiten.Image, f *field.Field, view render.Viewport) {
	chunks := f.Config().Chunks
	for i := 1; i < chunks; i++ {
		d := float64(i) * f.ChunkSize()
		x0, y0 := view.ToPixel(geom.Vec2{X: d, Y: 0})
		x1, y1 := view.ToPixel(geom.Vec2{X: d, Y: f.Size()})
		vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), 1, chunkColor, false)
		x0, y0 = view.ToPixel(geom.Vec2{X: 0, Y: d})
		x1, y1 = view.ToPixel(geom.Vec2{X: f.Size(), Y: d})
		vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), 1, chunkColor, false)
	}
}

var (
	filledSampleColor = color.RGBA{R: 250, G: 200, B: 90, A: 220}
	emptySampleColor  = color.RGBA{R: 90, G: 110, B: 140, A: 160}
	crossingColor     = color.RGBA{R: 230, G: 80, B: 80, A: 230}
	normalColor       = color.RGBA{R: 80, G: 200, B: 230, A: 230}
	chunkColor        = color.RGBA{R: 70, G: 90, B: 130, A: 200}
)
