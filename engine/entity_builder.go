package engine

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/lixenwraith/vi-runner/vmath"
)

// EntityBuilder provides a fluent interface for assembling an object before it goes live.
// Nothing is allocated or validated until Build, so an abandoned builder has no effect.
//
// Example usage:
//
//	obj, err := engine.NewEntity().
//	    Type("ENEMY").
//	    At(100, 50).
//	    View(sprite).
//	    With(component.NewCollidable(true)).
//	    WithControls(&control.Enemy{Speed: 80, Fire: fire}).
//	    BuildAndAttach(world)
type EntityBuilder struct {
	tag          Tag
	transform    Transform
	hasTransform bool
	view         View
	components   []Component
	controls     []Control
	built        bool
}

// NewEntity creates an empty builder
func NewEntity() *EntityBuilder {
	return &EntityBuilder{}
}

func (eb *EntityBuilder) mustOpen() {
	if eb.built {
		panic("entity already built - cannot modify builder after Build()")
	}
}

// Type sets the required type tag
func (eb *EntityBuilder) Type(tag Tag) *EntityBuilder {
	eb.mustOpen()
	eb.tag = tag
	return eb
}

// At sets the required origin
func (eb *EntityBuilder) At(x, y float64) *EntityBuilder {
	return eb.AtVec(vmath.V2(x, y))
}

// AtVec sets the required origin from a vector
func (eb *EntityBuilder) AtVec(p vmath.Vec2) *EntityBuilder {
	eb.mustOpen()
	eb.transform.Position = p
	eb.hasTransform = true
	return eb
}

// Rotation sets the initial rotation in radians
func (eb *EntityBuilder) Rotation(r float64) *EntityBuilder {
	eb.mustOpen()
	eb.transform.Rotation = r
	return eb
}

// View sets the required visual placeholder
func (eb *EntityBuilder) View(v View) *EntityBuilder {
	eb.mustOpen()
	eb.view = v
	return eb
}

// With queues components; duplicates surface at Build
func (eb *EntityBuilder) With(components ...Component) *EntityBuilder {
	eb.mustOpen()
	eb.components = append(eb.components, components...)
	return eb
}

// WithControls queues controls in attachment order; duplicates surface at Build
func (eb *EntityBuilder) WithControls(controls ...Control) *EntityBuilder {
	eb.mustOpen()
	eb.controls = append(eb.controls, controls...)
	return eb
}

// validate collects every configuration problem so they surface together
func (eb *EntityBuilder) validate() error {
	var errs []error

	if eb.tag == "" {
		errs = append(errs, fmt.Errorf("%w: type", ErrMissingField))
	}
	if !eb.hasTransform {
		errs = append(errs, fmt.Errorf("%w: position", ErrMissingField))
	}
	if eb.view == nil {
		errs = append(errs, fmt.Errorf("%w: view", ErrMissingField))
	}

	seen := make(map[Kind]struct{}, len(eb.components))
	for i, c := range eb.components {
		if c == nil {
			errs = append(errs, fmt.Errorf("component %d: %w", i, ErrNilValue))
			continue
		}
		if _, dup := seen[c.Kind()]; dup {
			errs = append(errs, fmt.Errorf("component %q: %w", c.Kind(), ErrDuplicateKind))
		}
		seen[c.Kind()] = struct{}{}
	}

	seen = make(map[Kind]struct{}, len(eb.controls))
	for i, c := range eb.controls {
		if c == nil {
			errs = append(errs, fmt.Errorf("control %d: %w", i, ErrNilValue))
			continue
		}
		if _, dup := seen[c.Kind()]; dup {
			errs = append(errs, fmt.Errorf("control %q: %w", c.Kind(), ErrDuplicateKind))
		}
		seen[c.Kind()] = struct{}{}
	}

	return errors.Join(errs...)
}

// Build validates the configuration and returns a new object in StateSpawned.
// On error no object is produced and the builder stays open for correction.
// After a successful Build the builder is spent; further calls panic.
func (eb *EntityBuilder) Build() (*Object, error) {
	eb.mustOpen()
	if err := eb.validate(); err != nil {
		return nil, fmt.Errorf("build %q: %w", eb.tag, err)
	}

	o := &Object{
		id:         uuid.New(),
		tag:        eb.tag,
		transform:  eb.transform,
		view:       eb.view,
		state:      StateSpawned,
		components: NewComponentStore(),
		controls:   make([]*controlSlot, 0, len(eb.controls)),
	}
	for _, c := range eb.components {
		// Kinds were checked in validate
		_ = o.components.Add(c)
	}
	for _, c := range eb.controls {
		o.controls = append(o.controls, &controlSlot{control: c})
	}

	eb.built = true
	return o, nil
}

// BuildAndAttach builds the object and hands it to w, returning it active
func (eb *EntityBuilder) BuildAndAttach(w *World) (*Object, error) {
	if w == nil {
		return nil, fmt.Errorf("build %q: world: %w", eb.tag, ErrNilValue)
	}
	o, err := eb.Build()
	if err != nil {
		return nil, err
	}
	if _, err := w.Attach(o); err != nil {
		return nil, err
	}
	return o, nil
}
