//go:build ebiten

package render

import (
	"image"
	"image/color"

	"mesh-squares/pkg/geom"

	"github.com/hajimehoshi/ebiten/v2"
)

// MeshPainter draws contour meshes as solid triangles.
type MeshPainter struct {
	view  Viewport
	white *ebiten.Image

	vertices []ebiten.Vertex
	batch    indexBatch
}

// NewMeshPainter creates a painter that maps field space through view.
func NewMeshPainter(view Viewport) *MeshPainter {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	return &MeshPainter{
		view:  view,
		white: img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
	}
}

// Viewport returns the field-to-screen mapping used by the painter.
func (p *MeshPainter) Viewport() Viewport { return p.view }

// Draw paints one chunk mesh whose vertices are relative to origin. Each
// mesh vertex is converted once per batch and shared by its triangles.
func (p *MeshPainter) Draw(dst *ebiten.Image, vertices []geom.Vec2, indices []int, origin geom.Vec2, col color.Color) {
	r, g, b, a := col.RGBA()
	cr, cg, cb, ca := float32(r)/0xffff, float32(g)/0xffff, float32(b)/0xffff, float32(a)/0xffff

	p.vertices = p.vertices[:0]
	p.batch.reset(len(vertices))
	for t := 0; t+2 < len(indices); t += 3 {
		if p.batch.full() {
			p.flush(dst)
			p.batch.reset(len(vertices))
		}
		for _, vi := range indices[t : t+3] {
			if !p.batch.add(vi) {
				continue
			}
			x, y := p.view.ToPixel(vertices[vi].Add(origin))
			p.vertices = append(p.vertices, ebiten.Vertex{
				DstX: float32(x), DstY: float32(y),
				SrcX: 1, SrcY: 1,
				ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca,
			})
		}
	}
	p.flush(dst)
}

func (p *MeshPainter) flush(dst *ebiten.Image) {
	if len(p.batch.indices) > 0 {
		dst.DrawTriangles(p.vertices, p.batch.indices, p.white, &ebiten.DrawTrianglesOptions{AntiAlias: true})
	}
	p.vertices = p.vertices[:0]
}

// RasterPainter uploads a palette raster into an image and draws it scaled.
type RasterPainter struct {
	w, h int
	img  *ebiten.Image
	buf  []byte
}

// NewRasterPainter allocates a painter for a raster of size w*h.
func NewRasterPainter(w, h int) *RasterPainter {
	return &RasterPainter{w: w, h: h, img: ebiten.NewImage(w, h), buf: make([]byte, 4*w*h)}
}

// Blit uploads cells into the painter image and draws it scaled onto dst.
func (rp *RasterPainter) Blit(dst *ebiten.Image, cells []uint8, palette []color.RGBA, scale float64) {
	if len(cells) != rp.w*rp.h {
		return
	}
	fillPaletteRGBA(rp.buf, cells, palette)
	rp.img.WritePixels(rp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	dst.DrawImage(rp.img, op)
}

// Size returns the dimensions of the underlying image.
func (rp *RasterPainter) Size() (int, int) { return rp.w, rp.h }
