package engine

// Control is a behaviour unit updated once per tick while its object is active
type Control interface {
	Kind() Kind
	Update(o *Object, dt float64)
}

// Attacher is implemented by controls that need a hook when their object goes live
type Attacher interface {
	OnAttach(o *Object)
}

// Detacher is implemented by controls that need a hook when they leave their object
// Fired exactly once, on explicit detach or object removal
type Detacher interface {
	OnDetach(o *Object)
}

// ControlState tracks a control through its lifecycle
type ControlState uint8

const (
	ControlPending ControlState = iota // built, object not yet attached
	ControlAttached
	ControlActive
	ControlDetached
)

func (s ControlState) String() string {
	switch s {
	case ControlPending:
		return "pending"
	case ControlAttached:
		return "attached"
	case ControlActive:
		return "active"
	case ControlDetached:
		return "detached"
	}
	return "unknown"
}

// controlSlot pairs a control with its lifecycle state
type controlSlot struct {
	control Control
	state   ControlState
}

func (s *controlSlot) attach(o *Object) {
	if s.state != ControlPending {
		return
	}
	s.state = ControlAttached
	if a, ok := s.control.(Attacher); ok {
		a.OnAttach(o)
	}
}

func (s *controlSlot) update(o *Object, dt float64) {
	if s.state == ControlDetached || s.state == ControlPending {
		return
	}
	s.state = ControlActive
	s.control.Update(o, dt)
}

func (s *controlSlot) detach(o *Object) {
	if s.state == ControlDetached {
		return
	}
	wasLive := s.state != ControlPending
	s.state = ControlDetached
	if !wasLive {
		return
	}
	if d, ok := s.control.(Detacher); ok {
		d.OnDetach(o)
	}
}
