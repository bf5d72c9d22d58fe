//go:build ebiten

package app

import (
	"image/color"
	"time"

	"mesh-squares/internal/core"
	"mesh-squares/internal/render"
	"mesh-squares/internal/ui"
	"mesh-squares/pkg/geom"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const hudWidth = 220

// Game adapts the editor to the ebiten.Game interface.
type Game struct {
	editor  *Editor
	painter *render.MeshPainter
	raster  *render.RasterPainter
	cells   *core.ByteGrid
	overlay *ui.Overlay
	hud     *ui.HUD

	fillColor  color.Color
	background color.Color

	showRaster bool
	err        error
}

// New constructs a Game around an editor.
func New(editor *Editor) *Game {
	view := editor.Viewport()
	// The raster preview runs at one cell per four screen pixels.
	rw, rh := max(view.W/4, 1), max(view.H/4, 1)
	return &Game{
		editor:     editor,
		painter:    render.NewMeshPainter(view),
		raster:     render.NewRasterPainter(rw, rh),
		cells:      core.NewByteGrid(rw, rh),
		overlay:    ui.NewOverlay(editor),
		hud:        ui.NewHUD(editor, hudWidth),
		fillColor:  render.DefaultPalette[render.Solid],
		background: render.DefaultPalette[render.Empty],
	}
}

// Update handles keyboard shortcuts and mouse strokes.
func (g *Game) Update() error {
	if g.err != nil {
		return g.err
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.editor.CycleShape()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.editor.ToggleFill()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft) {
		g.editor.AdjustRadius(-1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketRight) {
		g.editor.AdjustRadius(1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.editor.Fill(false)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		g.editor.Fill(true)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		if err := g.editor.GenerateCave(time.Now().UnixNano()); err != nil {
			return err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		g.showRaster = !g.showRaster
	}

	g.overlay.Update()
	g.hud.Update(g.editor.Size().W)

	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	if !left && !right {
		g.editor.EndStroke()
		return nil
	}
	x, y := ebiten.CursorPosition()
	if err := g.editor.Stroke(x, y, right && !left); err != nil {
		g.err = err
	}
	return g.err
}

// Draw renders the field mesh, the overlay and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.background)
	f := g.editor.Field()
	if g.showRaster {
		g.cells.Clear()
		render.FillMesh(g.cells, f.Mesh(), render.Viewport{Size: f.Size(), W: g.cells.W, H: g.cells.H}, render.Solid)
		render.MarkChunkBorders(g.cells, f.Config().Chunks)
		g.raster.Blit(screen, g.cells.Cells(), render.DefaultPalette, float64(g.editor.Size().W)/float64(g.cells.W))
	} else {
		f.ForEachChunkMesh(func(origin geom.Vec2, vertices []geom.Vec2, indices []int) {
			g.painter.Draw(screen, vertices, indices, origin, g.fillColor)
		})
	}
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.editor.Size().W)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.editor.Size()
	return s.W + g.hud.Width(), s.H
}
