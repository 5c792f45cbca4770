package engine

import (
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/lixenwraith/vi-runner/vmath"
)

// Tag is the symbolic category of an object, used for collision matching
type Tag string

// Transform is an object's position and rotation in world units
type Transform struct {
	Position vmath.Vec2
	Rotation float64 // radians
}

// View is the opaque visual placeholder owned by the renderer
// The engine only reads its extents for bounding boxes
type View interface {
	Extents() vmath.Vec2
}

// State is the object lifecycle stage
type State uint8

const (
	StateSpawned State = iota
	StateActive
	StateMarkedForRemoval
	StateRemoved
)

func (s State) String() string {
	switch s {
	case StateSpawned:
		return "spawned"
	case StateActive:
		return "active"
	case StateMarkedForRemoval:
		return "marked"
	case StateRemoved:
		return "removed"
	}
	return "unknown"
}

// Object is a live game entity composed of a transform, components and controls
// Identity and tag never change after Build
type Object struct {
	id        uuid.UUID
	tag       Tag
	transform Transform
	view      View
	state     State

	components *ComponentStore
	controls   []*controlSlot

	world    *World
	handle   Handle
	markedAt uint64 // tick number of the removal request
}

func (o *Object) ID() uuid.UUID { return o.id }
func (o *Object) Tag() Tag      { return o.tag }
func (o *Object) View() View    { return o.view }
func (o *Object) State() State  { return o.state }

// Handle returns the World handle, zero before attach
func (o *Object) Handle() Handle { return o.handle }

// World returns the owning world, nil when not attached or removed
func (o *Object) World() *World { return o.world }

// Components returns the object's component store
func (o *Object) Components() *ComponentStore { return o.components }

func (o *Object) Transform() Transform     { return o.transform }
func (o *Object) Position() vmath.Vec2     { return o.transform.Position }
func (o *Object) Rotation() float64        { return o.transform.Rotation }
func (o *Object) SetPosition(p vmath.Vec2) { o.transform.Position = p }
func (o *Object) SetRotation(r float64)    { o.transform.Rotation = r }

// Translate moves the object by d
func (o *Object) Translate(d vmath.Vec2) {
	o.transform.Position = o.transform.Position.Add(d)
}

// Bounds returns the axis-aligned box at the object's position sized by its view extents
// Rotation is not applied
func (o *Object) Bounds() vmath.Rect {
	var ext vmath.Vec2
	if o.view != nil {
		ext = o.view.Extents()
	}
	return vmath.RectAt(o.transform.Position, ext)
}

// IsActive reports whether the object is live and not marked for removal
func (o *Object) IsActive() bool {
	return o.state == StateActive
}

// Controls returns attached controls in attachment order
func (o *Object) Controls() []Control {
	out := make([]Control, 0, len(o.controls))
	for _, s := range o.controls {
		out = append(out, s.control)
	}
	return out
}

// Control returns the control of kind
func (o *Object) Control(kind Kind) (Control, bool) {
	for _, s := range o.controls {
		if s.control.Kind() == kind {
			return s.control, true
		}
	}
	return nil, false
}

// ControlState returns the lifecycle state of the control of kind
func (o *Object) ControlState(kind Kind) (ControlState, bool) {
	for _, s := range o.controls {
		if s.control.Kind() == kind {
			return s.state, true
		}
	}
	return ControlDetached, false
}

// AttachControl adds a control after build
// On a live object the attach hook fires now and updates start with the next tick
func (o *Object) AttachControl(c Control) error {
	if c == nil {
		return fmt.Errorf("attach control: %w", ErrNilValue)
	}
	if o.state == StateRemoved {
		return fmt.Errorf("attach control %q: object removed", c.Kind())
	}
	if _, exists := o.Control(c.Kind()); exists {
		return fmt.Errorf("attach control %q: %w", c.Kind(), ErrDuplicateKind)
	}
	slot := &controlSlot{control: c}
	// Copy-on-write: a tick in progress keeps iterating its own snapshot
	o.controls = append(slices.Clip(o.controls), slot)
	if o.world != nil {
		slot.attach(o)
	}
	return nil
}

// DetachControl removes the control of kind, firing its detach hook once
func (o *Object) DetachControl(kind Kind) bool {
	for i, s := range o.controls {
		if s.control.Kind() != kind {
			continue
		}
		s.detach(o)
		o.controls = slices.Delete(slices.Clone(o.controls), i, i+1)
		return true
	}
	return false
}

// RequestRemoval asks the owning world to remove the object at the end of the tick
// No-op when the object is not attached
func (o *Object) RequestRemoval() {
	if o.world == nil {
		return
	}
	_ = o.world.RequestRemoval(o.handle)
}

// teardown detaches all controls and drops components
func (o *Object) teardown() {
	for _, s := range o.controls {
		s.detach(o)
	}
	o.components.clear()
	o.state = StateRemoved
	o.world = nil
}

func (o *Object) String() string {
	return fmt.Sprintf("%s#%d(%s)", o.tag, o.handle, o.state)
}
