// Package field tiles contour grids into one editable surface. It routes
// edits to every chunk they touch and wires each chunk to its +x, +y and
// diagonal neighbours so the chunk meshes meet without cracks.
package field

import (
	"math"
	"sync"

	"mesh-squares/pkg/contour"
	"mesh-squares/pkg/geom"
)

// Brush is a pointer-driven edit: a registered stencil shape, the state it
// writes and its radius in samples.
type Brush struct {
	Shape  string
	Fill   bool
	Radius int
}

// Stats summarises the current field mesh.
type Stats struct {
	FilledSamples int
	Vertices      int
	Triangles     int
	Area          float64
}

// Field owns a Chunks×Chunks array of grids, row-major, index y*Chunks+x.
// The mutex sequences edits so that a chunk never reads a neighbour that is
// halfway through its own update.
type Field struct {
	mu sync.Mutex

	cfg       Config
	chunkSize float64
	cellSize  float64
	chunks    []*contour.Grid

	stencils map[string]contour.Stencil
}

// New builds an empty field with all neighbours wired.
func New(cfg Config) (*Field, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	f := &Field{
		cfg:       cfg,
		chunkSize: cfg.Size / float64(cfg.Chunks),
		chunks:    make([]*contour.Grid, cfg.Chunks*cfg.Chunks),
		stencils:  map[string]contour.Stencil{},
	}
	f.cellSize = f.chunkSize / float64(cfg.Resolution)

	for i, y := 0, 0; y < cfg.Chunks; y++ {
		for x := 0; x < cfg.Chunks; x, i = x+1, i+1 {
			f.chunks[i] = contour.NewGrid(cfg.Resolution, f.chunkSize, cfg.FeatureAngle)
		}
	}
	for i, y := 0, 0; y < cfg.Chunks; y++ {
		for x := 0; x < cfg.Chunks; x, i = x+1, i+1 {
			cx, cy := x, y
			f.chunks[i].SetNeighbors(func(dir contour.Direction) *contour.Grid {
				return f.neighbor(cx, cy, dir)
			})
		}
	}
	for _, g := range f.chunks {
		g.Triangulate()
	}
	return f, nil
}

// Config returns the configuration the field was built with.
func (f *Field) Config() Config { return f.cfg }

// Size is the side length of the field.
func (f *Field) Size() float64 { return f.cfg.Size }

// ChunkSize is the side length of one chunk.
func (f *Field) ChunkSize() float64 { return f.chunkSize }

// CellSize is the distance between adjacent samples.
func (f *Field) CellSize() float64 { return f.cellSize }

// Chunks returns the grids in row-major order.
func (f *Field) Chunks() []*contour.Grid { return f.chunks }

// Chunk returns the grid at chunk coordinates (x, y), or nil when out of range.
func (f *Field) Chunk(x, y int) *contour.Grid {
	if x < 0 || y < 0 || x >= f.cfg.Chunks || y >= f.cfg.Chunks {
		return nil
	}
	return f.chunks[y*f.cfg.Chunks+x]
}

// ChunkOrigin is the field-space position of chunk (x, y)'s local origin.
func (f *Field) ChunkOrigin(x, y int) geom.Vec2 {
	return geom.Vec2{X: float64(x) * f.chunkSize, Y: float64(y) * f.chunkSize}
}

func (f *Field) neighbor(x, y int, dir contour.Direction) *contour.Grid {
	switch dir {
	case contour.NeighborX:
		return f.Chunk(x+1, y)
	case contour.NeighborY:
		return f.Chunk(x, y+1)
	case contour.NeighborXY:
		return f.Chunk(x+1, y+1)
	}
	return nil
}

// Apply edits the field with a stencil positioned in field space. Every chunk
// whose samples or gap cells the stencil can reach is re-edited in local
// space, highest row and column first so that the +x and +y neighbours a chunk
// reads through dummy samples are already up to date. The stencil's centre is
// restored before returning.
func (f *Field) Apply(st contour.Stencil) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.apply(st)
}

func (f *Field) apply(st contour.Stencil) {
	b, ok := st.Bounds()
	if !ok {
		return
	}
	total := f.cfg.Chunks * f.cfg.Resolution
	xStart := int(math.Floor(b.XStart/f.cellSize)) - 1
	xEnd := int(math.Floor(b.XEnd / f.cellSize))
	yStart := int(math.Floor(b.YStart/f.cellSize)) - 1
	yEnd := int(math.Floor(b.YEnd / f.cellSize))
	if xEnd < 0 || yEnd < 0 || xStart >= total || yStart >= total {
		return
	}
	n := f.cfg.Resolution
	cx0, cx1 := max(xStart, 0)/n, min(xEnd, total-1)/n
	cy0, cy1 := max(yStart, 0)/n, min(yEnd, total-1)/n

	center := st.Center()
	defer st.SetCenter(center.X, center.Y)
	for cy := cy1; cy >= cy0; cy-- {
		for cx := cx1; cx >= cx0; cx-- {
			origin := f.ChunkOrigin(cx, cy)
			st.SetCenter(center.X-origin.X, center.Y-origin.Y)
			f.chunks[cy*f.cfg.Chunks+cx].Apply(st)
		}
	}
}

// EditAt applies a brush centred on the sample under p. Points outside the
// field are ignored.
func (f *Field) EditAt(p geom.Vec2, br Brush) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	st, err := f.stencil(br.Shape)
	if err != nil {
		return err
	}
	if p.X < 0 || p.Y < 0 || p.X >= f.cfg.Size || p.Y >= f.cfg.Size {
		return nil
	}
	ix := math.Floor(p.X / f.cellSize)
	iy := math.Floor(p.Y / f.cellSize)
	st.Initialize(br.Fill, float64(br.Radius)*f.cellSize)
	st.SetCenter((ix+0.5)*f.cellSize, (iy+0.5)*f.cellSize)
	f.apply(st)
	return nil
}

// Fill sets every sample of the field to filled.
func (f *Field) Fill(filled bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	half := f.cfg.Size / 2
	st := contour.NewSquare(filled, half)
	st.SetCenter(half, half)
	f.apply(st)
}

func (f *Field) stencil(shape string) (contour.Stencil, error) {
	if st, ok := f.stencils[shape]; ok {
		return st, nil
	}
	st, err := contour.NewStencil(shape)
	if err != nil {
		return nil, err
	}
	f.stencils[shape] = st
	return st, nil
}

// Mesh merges every chunk mesh into one mesh in field space.
func (f *Field) Mesh() *contour.Mesh {
	f.mu.Lock()
	defer f.mu.Unlock()
	m := &contour.Mesh{}
	for i, g := range f.chunks {
		v, idx := g.Mesh()
		m.Append(v, idx, f.ChunkOrigin(i%f.cfg.Chunks, i/f.cfg.Chunks))
	}
	return m
}

// ForEachChunkMesh calls fn with every chunk's mesh and its field-space
// origin. The slices are owned by the chunk and only valid during the call.
func (f *Field) ForEachChunkMesh(fn func(origin geom.Vec2, vertices []geom.Vec2, indices []int)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, g := range f.chunks {
		v, idx := g.Mesh()
		fn(f.ChunkOrigin(i%f.cfg.Chunks, i/f.cfg.Chunks), v, idx)
	}
}

// ForEachSample calls fn with a field-space copy of every sample.
func (f *Field) ForEachSample(fn func(s contour.Sample)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, g := range f.chunks {
		o := f.ChunkOrigin(i%f.cfg.Chunks, i/f.cfg.Chunks)
		for _, s := range g.Samples() {
			fn(translated(s, o))
		}
	}
}

// SampleAt returns a field-space copy of the sample whose cell contains p.
func (f *Field) SampleAt(p geom.Vec2) (contour.Sample, bool) {
	if p.X < 0 || p.Y < 0 || p.X >= f.cfg.Size || p.Y >= f.cfg.Size {
		return contour.Sample{}, false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	n := f.cfg.Resolution
	ix := min(int(p.X/f.cellSize), f.cfg.Chunks*n-1)
	iy := min(int(p.Y/f.cellSize), f.cfg.Chunks*n-1)
	g := f.chunks[(iy/n)*f.cfg.Chunks+ix/n]
	return translated(*g.Sample(ix%n, iy%n), f.ChunkOrigin(ix/n, iy/n)), true
}

// Stats counts filled samples and measures the current mesh.
func (f *Field) Stats() Stats {
	var st Stats
	f.ForEachSample(func(s contour.Sample) {
		if s.Filled {
			st.FilledSamples++
		}
	})
	m := f.Mesh()
	st.Vertices = m.VertexCount()
	st.Triangles = m.TriangleCount()
	st.Area = m.Area()
	return st
}

func translated(s contour.Sample, o geom.Vec2) contour.Sample {
	s.Position = s.Position.Add(o)
	if s.HasXCrossing() {
		s.XEdge += o.X
	}
	if s.HasYCrossing() {
		s.YEdge += o.Y
	}
	return s
}
