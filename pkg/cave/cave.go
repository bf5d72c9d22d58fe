// Package cave grows cave-like sample patterns with a smoothing cellular
// automaton and writes them into a field.
package cave

import (
	"fmt"

	"mesh-squares/pkg/contour"
	"mesh-squares/pkg/core"
	"mesh-squares/pkg/field"
)

// Automaton runs the 4-5 cave rule on a w×h board: a cell becomes solid
// with five or more solid neighbours and stays solid with four. Cells
// outside the board count as solid, so caves close against the edges.
type Automaton struct {
	w, h int
	cur  []uint8
	nxt  []uint8
}

// New returns an empty automaton with the provided dimensions.
func New(w, h int) *Automaton {
	cells := make([]uint8, w*h)
	return &Automaton{w: w, h: h, cur: cells, nxt: make([]uint8, len(cells))}
}

// Size returns the board dimensions.
func (a *Automaton) Size() (int, int) { return a.w, a.h }

// Cells exposes the current board, row-major, 1 for solid.
func (a *Automaton) Cells() []uint8 { return a.cur }

// Solid reports whether cell (x, y) is solid. Cells off the board are solid.
func (a *Automaton) Solid(x, y int) bool {
	if x < 0 || y < 0 || x >= a.w || y >= a.h {
		return true
	}
	return a.cur[y*a.w+x] == 1
}

// Reset fills the board with solid cells at the given density.
func (a *Automaton) Reset(seed int64, density float64) {
	rng := core.NewRNG(seed)
	for i := range a.cur {
		a.cur[i] = 0
		if rng.Chance(density) {
			a.cur[i] = 1
		}
	}
}

// Step advances the board by one smoothing generation.
func (a *Automaton) Step() {
	for y := 0; y < a.h; y++ {
		for x := 0; x < a.w; x++ {
			neighbors := 0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if (dx != 0 || dy != 0) && a.Solid(x+dx, y+dy) {
						neighbors++
					}
				}
			}
			idx := y*a.w + x
			a.nxt[idx] = 0
			if neighbors >= 5 || (a.cur[idx] == 1 && neighbors >= 4) {
				a.nxt[idx] = 1
			}
		}
	}
	a.cur, a.nxt = a.nxt, a.cur
}

// Seed replaces the field contents with the board: cell (x, y) fills the
// sample at field index (x, y). Each solid cell is written with a square
// reaching halfway to its neighbours, so crossings land on edge midpoints.
func Seed(f *field.Field, a *Automaton) error {
	n := f.Config().Chunks * f.Config().Resolution
	if a.w != n || a.h != n {
		return fmt.Errorf("cave board is %dx%d, field has %dx%d samples", a.w, a.h, n, n)
	}
	f.Fill(false)
	c := f.CellSize()
	st := contour.NewSquare(true, c/2)
	for y := 0; y < a.h; y++ {
		for x := 0; x < a.w; x++ {
			if a.cur[y*a.w+x] == 1 {
				st.SetCenter((float64(x)+0.5)*c, (float64(y)+0.5)*c)
				f.Apply(st)
			}
		}
	}
	return nil
}

// Generate grows a cave for f from seed and writes it in.
func Generate(f *field.Field, seed int64, density float64, steps int) error {
	n := f.Config().Chunks * f.Config().Resolution
	a := New(n, n)
	a.Reset(seed, density)
	for i := 0; i < steps; i++ {
		a.Step()
	}
	return Seed(f, a)
}
