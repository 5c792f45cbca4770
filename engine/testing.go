package engine

import "github.com/lixenwraith/vi-runner/vmath"

// Test fixtures shared by package tests across the module

// Box is a bare View with fixed extents
type Box struct {
	W, H float64
}

func (b Box) Extents() vmath.Vec2 { return vmath.V2(b.W, b.H) }

// Flag is a component with a caller-chosen kind
type Flag struct {
	K Kind
}

func (f *Flag) Kind() Kind { return f.K }

// Eligible is a minimal collidable component
type Eligible struct {
	On bool
}

func (e *Eligible) Kind() Kind         { return KindCollidable }
func (e *Eligible) Enabled() bool      { return e.On }
func (e *Eligible) SetEnabled(on bool) { e.On = on }

// RecordingControl counts lifecycle hook calls and optionally runs a callback on update
type RecordingControl struct {
	K        Kind
	Attached int
	Updates  int
	Detached int
	OnUpdate func(o *Object, dt float64)
	Log      *[]string // shared across controls to observe global ordering
}

func (c *RecordingControl) Kind() Kind { return c.K }

func (c *RecordingControl) OnAttach(o *Object) { c.Attached++ }

func (c *RecordingControl) OnDetach(o *Object) { c.Detached++ }

func (c *RecordingControl) Update(o *Object, dt float64) {
	c.Updates++
	if c.Log != nil {
		*c.Log = append(*c.Log, string(o.Tag())+"/"+string(c.K))
	}
	if c.OnUpdate != nil {
		c.OnUpdate(o, dt)
	}
}

// NewTestObject builds a spawned object of tag at (x, y) with a w*h box, panicking on error
func NewTestObject(tag Tag, x, y, w, h float64, parts ...any) *Object {
	b := NewEntity().Type(tag).At(x, y).View(Box{W: w, H: h})
	for _, p := range parts {
		// Controls also satisfy Component, so match them first
		switch v := p.(type) {
		case Control:
			b.WithControls(v)
		case Component:
			b.With(v)
		}
	}
	o, err := b.Build()
	if err != nil {
		panic(err)
	}
	return o
}
