package render

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-runner/component"
	"github.com/lixenwraith/vi-runner/engine"
	"github.com/lixenwraith/vi-runner/vmath"
)

var (
	ColorBackground = tcell.NewRGBColor(26, 27, 38)
	ColorStatus     = tcell.NewRGBColor(192, 202, 245)
	ColorPaused     = tcell.NewRGBColor(224, 175, 104)
)

// Status is the bottom line content
type Status struct {
	Score  int
	Lives  int
	Paused bool
	Over   bool
}

// TerminalRenderer draws the world viewport scaled onto the screen, reserving the last row for status
type TerminalRenderer struct {
	screen tcell.Screen
}

// NewTerminalRenderer creates a renderer for screen
func NewTerminalRenderer(screen tcell.Screen) *TerminalRenderer {
	return &TerminalRenderer{screen: screen}
}

// RenderFrame draws every live object in insertion order, then the status line
func (r *TerminalRenderer) RenderFrame(w *engine.World, st Status) {
	r.screen.Clear()
	width, height := r.screen.Size()
	bg := tcell.StyleDefault.Background(ColorBackground)
	r.fill(0, 0, width, height, ' ', bg)

	gameHeight := height - 1
	if width > 0 && gameHeight > 0 {
		vp := w.Viewport()
		sx := float64(width) / vp.Width()
		sy := float64(gameHeight) / vp.Height()
		for _, o := range w.Objects() {
			r.drawObject(o, vp, sx, sy, width, gameHeight)
		}
	}

	r.drawStatusBar(w, st, width, height, bg)
	r.screen.Show()
}

func (r *TerminalRenderer) drawObject(o *engine.Object, vp vmath.Rect, sx, sy float64, width, height int) {
	sp, ok := o.View().(*Sprite)
	if !ok {
		return
	}
	style := sp.Style
	if component.IsHighlighted(o) {
		style = style.Reverse(true)
	}

	// Visual size ignores NoBBox; at least one cell is drawn
	p := o.Position().Sub(vp.Min)
	x0 := int(math.Floor(p.X() * sx))
	y0 := int(math.Floor(p.Y() * sy))
	x1 := max(x0+1, int(math.Ceil((p.X()+sp.Size.X())*sx)))
	y1 := max(y0+1, int(math.Ceil((p.Y()+sp.Size.Y())*sy)))

	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, width), min(y1, height)
	r.fill(x0, y0, x1-x0, y1-y0, sp.Glyph, style)
}

func (r *TerminalRenderer) drawStatusBar(w *engine.World, st Status, width, height int, bg tcell.Style) {
	if height < 1 {
		return
	}
	text := fmt.Sprintf(" SCORE %d  LIVES %d  OBJ %d  LIT %d  TICK %d",
		st.Score, st.Lives, w.Len(), len(component.Highlighted(w)), w.TickCount())
	style := bg.Foreground(ColorStatus)
	switch {
	case st.Over:
		text += "  GAME OVER"
		style = bg.Foreground(ColorPaused).Bold(true)
	case st.Paused:
		text += "  PAUSED"
		style = bg.Foreground(ColorPaused)
	}
	r.drawText(0, height-1, width, text, style)
}

func (r *TerminalRenderer) fill(x, y, w, h int, ch rune, style tcell.Style) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			r.screen.SetContent(col, row, ch, nil, style)
		}
	}
}

func (r *TerminalRenderer) drawText(x, y, maxWidth int, text string, style tcell.Style) {
	col := x
	for _, ch := range text {
		if col >= maxWidth {
			return
		}
		r.screen.SetContent(col, y, ch, nil, style)
		col++
	}
}
