package render

import (
	"image"
	"image/draw"

	"mesh-squares/internal/core"
	"mesh-squares/pkg/contour"
	"mesh-squares/pkg/geom"

	"golang.org/x/image/vector"
)

// Viewport maps a square field onto a W×H raster. Field (0, 0) is the
// bottom-left corner of the raster; raster row 0 is the top.
type Viewport struct {
	Size float64
	W, H int
}

// ToPixel converts a field-space point into continuous raster coordinates.
func (v Viewport) ToPixel(p geom.Vec2) (float64, float64) {
	return p.X / v.Size * float64(v.W), float64(v.H) - p.Y/v.Size*float64(v.H)
}

// ToField converts continuous raster coordinates into field space.
func (v Viewport) ToField(x, y float64) geom.Vec2 {
	return geom.Vec2{X: x / float64(v.W) * v.Size, Y: (float64(v.H) - y) / float64(v.H) * v.Size}
}

// coverThreshold is the alpha at which a raster cell counts as covered: a
// quarter of the cell lies under the mesh.
const coverThreshold = 0x40

// FillMesh writes value into every raster cell that the mesh covers by at
// least a quarter. All triangles go into one path, so cells split between
// neighbouring triangles accumulate their full coverage. The triangles must
// share one winding, as contour meshes do.
func FillMesh(dst *core.ByteGrid, m *contour.Mesh, v Viewport, value uint8) {
	if dst == nil || m == nil || v.Size <= 0 || dst.W <= 0 || dst.H <= 0 || m.TriangleCount() == 0 {
		return
	}
	z := vector.NewRasterizer(dst.W, dst.H)
	z.DrawOp = draw.Src
	for t := 0; t < m.TriangleCount(); t++ {
		a, b, c := m.Triangle(t)
		ax, ay := v.ToPixel(a)
		bx, by := v.ToPixel(b)
		cx, cy := v.ToPixel(c)
		z.MoveTo(float32(ax), float32(ay))
		z.LineTo(float32(bx), float32(by))
		z.LineTo(float32(cx), float32(cy))
		z.ClosePath()
	}

	mask := image.NewAlpha(image.Rect(0, 0, dst.W, dst.H))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	cells := dst.Cells()
	for y := 0; y < dst.H; y++ {
		row := mask.Pix[y*mask.Stride : y*mask.Stride+dst.W]
		for x, a := range row {
			if a >= coverThreshold {
				cells[dst.Index(x, y)] = value
			}
		}
	}
}
