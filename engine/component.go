package engine

// Kind identifies a component or control type; an object holds at most one of each
type Kind string

// KindCollidable is the component kind the World indexes for collision checks
const KindCollidable Kind = "collidable"

// Component is a passive data fragment attached to one Object
type Component interface {
	Kind() Kind
}

// Eligibility is implemented by the collidable component to expose its on/off flag
type Eligibility interface {
	Component
	Enabled() bool
	SetEnabled(on bool)
}
