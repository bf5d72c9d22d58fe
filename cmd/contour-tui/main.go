package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"mesh-squares/internal/app"
	"mesh-squares/internal/core"
	"mesh-squares/internal/render"

	"github.com/gdamore/tcell/v2"
)

type tui struct {
	screen tcell.Screen
	editor *app.Editor
	cells  *core.ByteGrid
	step   *core.FixedStep

	dirty  bool
	status string
}

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("contour-tui: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("contour-tui: %v", err)
	}

	t, err := newTUI(screen, cfg)
	if err != nil {
		screen.Fini()
		log.Fatalf("contour-tui: %v", err)
	}
	t.run()
	screen.Fini()
}

func newTUI(screen tcell.Screen, cfg *app.Config) (*tui, error) {
	cols, rows := screen.Size()
	// Two raster rows per terminal row; the last row holds the status line.
	side := min(cols, 2*(rows-1))
	if side < 4 {
		return nil, fmt.Errorf("terminal too small: %dx%d", cols, rows)
	}
	cfg.Scale = float64(side) / cfg.Field.Size

	editor, err := app.NewEditor(cfg)
	if err != nil {
		return nil, err
	}
	screen.EnableMouse()
	screen.HideCursor()
	return &tui{
		screen: screen,
		editor: editor,
		cells:  core.NewByteGrid(side, side),
		step:   core.NewFixedStep(cfg.TPS),
		dirty:  true,
	}, nil
}

func (t *tui) run() {
	ticker := time.NewTicker(t.step.Step())
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case ev, ok := <-events:
			if !ok || !t.handle(ev) {
				return
			}
		case <-ticker.C:
			if t.dirty && t.step.ShouldStep() {
				t.draw()
				t.dirty = false
			}
		}
	}
}

func (t *tui) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyTab:
			t.editor.CycleShape()
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				t.editor.ToggleFill()
			case '[':
				t.editor.AdjustRadius(-1)
			case ']':
				t.editor.AdjustRadius(1)
			case 'c':
				t.editor.Fill(false)
			case 'f':
				t.editor.Fill(true)
			case 'g':
				if err := t.editor.GenerateCave(time.Now().UnixNano()); err != nil {
					t.status = err.Error()
				}
			}
		}
		t.dirty = true

	case *tcell.EventMouse:
		buttons := ev.Buttons()
		if buttons&(tcell.Button1|tcell.Button2) == 0 {
			t.editor.EndStroke()
			return true
		}
		col, row := ev.Position()
		invert := buttons&tcell.Button2 != 0 && buttons&tcell.Button1 == 0
		if err := t.editor.Stroke(col, 2*row, invert); err != nil {
			t.status = err.Error()
		}
		t.dirty = true

	case *tcell.EventResize:
		t.screen.Sync()
		t.dirty = true
	}
	return true
}

func (t *tui) draw() {
	f := t.editor.Field()
	t.cells.Clear()
	render.FillMesh(t.cells, f.Mesh(), t.editor.Viewport(), render.Solid)
	render.MarkChunkBorders(t.cells, f.Config().Chunks)

	t.screen.Clear()
	for row := 0; 2*row < t.cells.H; row++ {
		for col := 0; col < t.cells.W; col++ {
			r, style := halfBlock(t.cells.At(col, 2*row), t.cells.At(col, 2*row+1))
			t.screen.SetContent(col, row, r, nil, style)
		}
	}
	drawText(t.screen, 0, t.cells.H/2, statusLine(t.editor, t.status), tcell.StyleDefault)
	t.screen.Show()
}

// halfBlock packs two vertically stacked raster cells into one terminal cell.
func halfBlock(top, bottom uint8) (rune, tcell.Style) {
	return '▀', tcell.StyleDefault.Foreground(paletteColor(top)).Background(paletteColor(bottom))
}

func paletteColor(v uint8) tcell.Color {
	c := render.DefaultPalette[min(int(v), len(render.DefaultPalette)-1)]
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func statusLine(e *app.Editor, msg string) string {
	br, st := e.Brush(), e.Stats()
	mode := "dig"
	if br.Fill {
		mode = "fill"
	}
	line := fmt.Sprintf("%s %s r=%d | samples=%d verts=%d tris=%d area=%.0f | tab shape, space mode, [ ] radius, c clear, f fill, g cave, q quit",
		br.Shape, mode, br.Radius, st.FilledSamples, st.Vertices, st.Triangles, st.Area)
	if msg != "" {
		line = msg + " | " + line
	}
	return line
}

func drawText(s tcell.Screen, x, y int, text string, style tcell.Style) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}
