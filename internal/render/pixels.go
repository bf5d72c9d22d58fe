package render

import (
	"image"
	"image/color"

	"mesh-squares/internal/core"
)

// Palette indices written by FillMesh callers.
const (
	Empty uint8 = iota
	Solid
	Border
)

// DefaultPalette colours empty space, filled mesh and chunk borders.
var DefaultPalette = []color.RGBA{
	{R: 16, G: 16, B: 20, A: 255},
	{R: 222, G: 214, B: 190, A: 255},
	{R: 70, G: 90, B: 130, A: 255},
}

// fillPaletteRGBA converts cell values into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		clear(buf[:4*len(cells)])
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		col := palette[min(int(c), last)]
		base := i * 4
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// PaletteImage renders a raster into a new RGBA image.
func PaletteImage(g *core.ByteGrid, palette []color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, g.W, g.H))
	fillPaletteRGBA(img.Pix, g.Cells(), palette)
	return img
}

// MarkChunkBorders writes Border along the raster columns and rows that
// separate chunks, leaving filled cells untouched.
func MarkChunkBorders(dst *core.ByteGrid, chunks int) {
	if chunks <= 1 {
		return
	}
	for i := 1; i < chunks; i++ {
		x := i * dst.W / chunks
		y := i * dst.H / chunks
		for k := 0; k < dst.H; k++ {
			if dst.At(x, k) == Empty {
				dst.Set(x, k, Border)
			}
		}
		for k := 0; k < dst.W; k++ {
			if dst.At(k, y) == Empty {
				dst.Set(k, y, Border)
			}
		}
	}
}
