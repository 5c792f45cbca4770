package control

import (
	"github.com/lixenwraith/vi-runner/engine"
	"github.com/lixenwraith/vi-runner/vmath"
)

// KeepOnScreen clamps the object's box inside the world viewport, each axis independently
type KeepOnScreen struct {
	X, Y bool
}

// NewKeepOnScreen clamps both axes
func NewKeepOnScreen() *KeepOnScreen { return &KeepOnScreen{X: true, Y: true} }

func (k *KeepOnScreen) Kind() engine.Kind { return KindKeepOnScreen }

func (k *KeepOnScreen) Update(o *engine.Object, _ float64) {
	w := o.World()
	if w == nil {
		return
	}
	vp := w.Viewport()
	ext := o.Bounds().Size()
	p := o.Position()
	x, y := p.X(), p.Y()
	if k.X {
		x = vmath.Clamp(x, vp.Min.X(), vp.Max.X()-ext.X())
	}
	if k.Y {
		y = vmath.Clamp(y, vp.Min.Y(), vp.Max.Y()-ext.Y())
	}
	o.SetPosition(vmath.V2(x, y))
}

// OffscreenClean requests removal once the object's box no longer touches the viewport.
// With Trailing set only an exit past the left edge counts, so objects entering from
// the right or drifting over the top and bottom edges are kept.
type OffscreenClean struct {
	Trailing bool
}

func (OffscreenClean) Kind() engine.Kind { return KindOffscreenClean }

func (c OffscreenClean) Update(o *engine.Object, _ float64) {
	w := o.World()
	if w == nil {
		return
	}
	vp, b := w.Viewport(), o.Bounds()
	if c.Trailing {
		if b.Max.X() < vp.Min.X() {
			o.RequestRemoval()
		}
		return
	}
	if !vp.Touches(b) {
		o.RequestRemoval()
	}
}
