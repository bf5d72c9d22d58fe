package app

import (
	"slices"
	"strconv"

	"mesh-squares/internal/core"
	"mesh-squares/internal/render"
	"mesh-squares/pkg/cave"
	"mesh-squares/pkg/contour"
	"mesh-squares/pkg/field"
	"mesh-squares/pkg/geom"
)

// Editor is the display-independent editing state: the field, the active
// brush and the mapping between screen pixels and field space.
type Editor struct {
	field *field.Field
	brush field.Brush
	view  render.Viewport
	stats field.Stats

	lastSample geom.Vec2
	lastFill   bool
	stroking   bool
}

// NewEditor builds an empty field from cfg.
func NewEditor(cfg *Config) (*Editor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	f, err := field.New(cfg.Field)
	if err != nil {
		return nil, err
	}
	side := max(int(cfg.Field.Size*cfg.Scale), 1)
	e := &Editor{
		field: f,
		brush: field.Brush{Shape: cfg.Shape, Fill: true, Radius: cfg.Radius},
		view:  render.Viewport{Size: cfg.Field.Size, W: side, H: side},
	}
	e.stats = f.Stats()
	return e, nil
}

// Name identifies the scene on the HUD.
func (e *Editor) Name() string { return "contour" }

// Size is the pixel size of the field view.
func (e *Editor) Size() core.Size { return core.Size{W: e.view.W, H: e.view.H} }

// Field exposes the edited field.
func (e *Editor) Field() *field.Field { return e.field }

// Viewport returns the pixel mapping of the field view.
func (e *Editor) Viewport() render.Viewport { return e.view }

// Brush returns the active brush.
func (e *Editor) Brush() field.Brush { return e.brush }

// Stats returns the mesh statistics as of the last edit.
func (e *Editor) Stats() field.Stats { return e.stats }

// Stroke applies the brush at screen pixel (x, y). invert digs with a fill
// brush and fills with a dig brush. Repeated calls on the same sample during
// one stroke are skipped.
func (e *Editor) Stroke(x, y int, invert bool) error {
	if x < 0 || y < 0 || x >= e.view.W || y >= e.view.H {
		return nil
	}
	p := e.view.ToField(float64(x)+0.5, float64(y)+0.5)
	s, ok := e.field.SampleAt(p)
	if !ok {
		return nil
	}
	br := e.brush
	br.Fill = br.Fill != invert
	if e.stroking && s.Position == e.lastSample && br.Fill == e.lastFill {
		return nil
	}
	if err := e.field.EditAt(p, br); err != nil {
		return err
	}
	e.stroking, e.lastSample, e.lastFill = true, s.Position, br.Fill
	e.stats = e.field.Stats()
	return nil
}

// EndStroke forgets the last edited sample so the next press edits again.
func (e *Editor) EndStroke() { e.stroking = false }

// Fill sets the whole field to one state.
func (e *Editor) Fill(filled bool) {
	e.field.Fill(filled)
	e.stats = e.field.Stats()
	e.stroking = false
}

// Cave generation settings used by GenerateCave.
const (
	caveDensity = 0.45
	caveSteps   = 4
)

// GenerateCave replaces the field with a cave grown from seed.
func (e *Editor) GenerateCave(seed int64) error {
	if err := cave.Generate(e.field, seed, caveDensity, caveSteps); err != nil {
		return err
	}
	e.stats = e.field.Stats()
	e.stroking = false
	return nil
}

// CycleShape switches the brush to the next registered stencil.
func (e *Editor) CycleShape() {
	names := contour.Stencils()
	i := slices.Index(names, e.brush.Shape)
	e.brush.Shape = names[(i+1)%len(names)]
}

// ToggleFill swaps the brush between filling and digging.
func (e *Editor) ToggleFill() { e.brush.Fill = !e.brush.Fill }

// AdjustRadius changes the brush radius by delta within [0, MaxBrushRadius].
func (e *Editor) AdjustRadius(delta int) {
	e.brush.Radius = min(max(e.brush.Radius+delta, 0), MaxBrushRadius)
}

// Parameters reports the brush and mesh statistics for the HUD.
func (e *Editor) Parameters() core.ParameterSnapshot {
	fill := "dig"
	if e.brush.Fill {
		fill = "fill"
	}
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Brush",
			Params: []core.Parameter{
				{Key: "shape", Label: "Shape", Type: core.ParamTypeChoice, Value: e.brush.Shape},
				{Key: "fill", Label: "Mode", Type: core.ParamTypeBool, Value: strconv.FormatBool(e.brush.Fill), Description: fill},
				{Key: "radius", Label: "Radius", Type: core.ParamTypeInt, Value: strconv.Itoa(e.brush.Radius)},
			},
		},
		{
			Name: "Mesh",
			Params: []core.Parameter{
				{Key: "samples", Label: "Filled samples", Type: core.ParamTypeInt, Value: strconv.Itoa(e.stats.FilledSamples)},
				{Key: "vertices", Label: "Vertices", Type: core.ParamTypeInt, Value: strconv.Itoa(e.stats.Vertices)},
				{Key: "triangles", Label: "Triangles", Type: core.ParamTypeInt, Value: strconv.Itoa(e.stats.Triangles)},
				{Key: "area", Label: "Area", Type: core.ParamTypeFloat, Value: strconv.FormatFloat(e.stats.Area, 'f', 1, 64)},
				{Key: "sharp", Label: "Sharp limit", Type: core.ParamTypeFloat, Value: strconv.FormatFloat(e.field.Chunk(0, 0).SharpFeatureLimit(), 'f', 3, 64), Description: "cosine bound"},
			},
		},
	}}
}

// ParameterControls lists the brush settings adjustable from the HUD.
func (e *Editor) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "shape", Label: "Shape", Type: core.ParamTypeChoice, Choices: contour.Stencils()},
		{Key: "fill", Label: "Fill", Type: core.ParamTypeBool},
		{Key: "radius", Label: "Radius", Type: core.ParamTypeInt, Step: 1, Min: 0, Max: MaxBrushRadius, HasMin: true, HasMax: true},
	}
}

// SetIntParameter updates the brush radius.
func (e *Editor) SetIntParameter(key string, value int) bool {
	if key != "radius" || value < 0 || value > MaxBrushRadius {
		return false
	}
	e.brush.Radius = value
	return true
}

// SetBoolParameter switches between filling and digging.
func (e *Editor) SetBoolParameter(key string, value bool) bool {
	if key != "fill" {
		return false
	}
	e.brush.Fill = value
	return true
}

// SetChoiceParameter picks the brush shape by stencil name.
func (e *Editor) SetChoiceParameter(key, value string) bool {
	if key != "shape" || !slices.Contains(contour.Stencils(), value) {
		return false
	}
	e.brush.Shape = value
	return true
}
