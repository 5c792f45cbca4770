package component

import "github.com/lixenwraith/vi-runner/engine"

// Highlightable marks an object the renderer may emphasize
type Highlightable struct {
	Lit bool // Drawn in reverse video while set
}

func (h *Highlightable) Kind() engine.Kind { return KindHighlightable }

// Toggle flips Lit and returns the new value
func (h *Highlightable) Toggle() bool {
	h.Lit = !h.Lit
	return h.Lit
}

// IsHighlighted reports whether o carries a lit highlight
func IsHighlighted(o *engine.Object) bool {
	h, err := engine.GetAs[*Highlightable](o.Components(), KindHighlightable)
	return err == nil && h.Lit
}

// Highlighted returns the lit objects of w in insertion order
func Highlighted(w *engine.World) []*engine.Object {
	var out []*engine.Object
	for _, o := range w.Objects() {
		if IsHighlighted(o) {
			out = append(out, o)
		}
	}
	return out
}
