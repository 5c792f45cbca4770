package engine

import (
	"fmt"
	"slices"

	"github.com/lixenwraith/vi-runner/log"
	"github.com/lixenwraith/vi-runner/vmath"
)

// Handle is a stable per-world object reference; handles grow with insertion order and are never reused
type Handle uint64

// Option configures a World
type Option func(*World)

// WithLogger sets the world logger
func WithLogger(l *log.Logger) Option {
	return func(w *World) { w.logger = log.OrNop(l).Named("world") }
}

// WithViewport sets the rectangle controls use for screen bounds
func WithViewport(r vmath.Rect) Option {
	return func(w *World) { w.viewport = r }
}

// WithCellSize enables the uniform-grid broad phase of the collision notifier
func WithCellSize(size float64) Option {
	return func(w *World) { w.cellSize = size }
}

// World owns the live objects of one session.
// It is single-threaded: every method must be called from the simulation goroutine.
type World struct {
	logger   *log.Logger
	viewport vmath.Rect
	cellSize float64

	nextHandle Handle
	objects    []*Object // insertion order, includes objects marked for removal until flush
	byHandle   map[Handle]*Object
	collidable []*Object // insertion-ordered subset of objects
	pending    []*Object // removal queue

	notifier *CollisionNotifier
	schedule []scheduled

	tickCount uint64
	frontier  Handle // last handle issued before the current tick began
	ticking   bool
}

// NewWorld creates an empty world
func NewWorld(opts ...Option) *World {
	w := &World{
		logger:   log.NewNop(),
		viewport: vmath.RectWH(800, 600),
		byHandle: make(map[Handle]*Object),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.notifier = newCollisionNotifier(w.logger, w.cellSize)
	return w
}

// Collisions returns the notifier for handler registration
func (w *World) Collisions() *CollisionNotifier { return w.notifier }

// Viewport returns the screen rectangle in world units
func (w *World) Viewport() vmath.Rect { return w.viewport }

// TickCount returns the number of completed or running ticks
func (w *World) TickCount() uint64 { return w.tickCount }

// Len returns the number of live objects, including those awaiting removal
func (w *World) Len() int { return len(w.objects) }

// Attach takes ownership of o and makes it active.
// Objects attached during a tick take part from the next tick on.
func (w *World) Attach(o *Object) (Handle, error) {
	if o == nil {
		return 0, fmt.Errorf("attach: %w", ErrNilValue)
	}
	if o.world != nil || o.state != StateSpawned {
		return 0, fmt.Errorf("attach %s: %w", o, ErrAlreadyAttached)
	}

	w.nextHandle++
	o.handle = w.nextHandle
	o.world = w
	o.state = StateActive

	w.objects = append(w.objects, o)
	w.byHandle[o.handle] = o
	if isCollidable(o) {
		w.collidable = append(w.collidable, o)
	}

	for _, s := range o.controls {
		s.attach(o)
	}

	w.logger.Debug("attach",
		log.String("tag", string(o.tag)),
		log.Uint64("handle", uint64(o.handle)),
		log.Uint64("tick", w.tickCount),
	)
	return o.handle, nil
}

// RequestRemoval marks the object for removal at the end of the current or next tick.
// Repeated requests are no-ops.
func (w *World) RequestRemoval(h Handle) error {
	o, ok := w.byHandle[h]
	if !ok {
		return fmt.Errorf("request removal %d: %w", h, ErrUnknownHandle)
	}
	if o.state != StateActive {
		return nil
	}
	o.state = StateMarkedForRemoval
	o.markedAt = w.tickCount
	w.pending = append(w.pending, o)
	return nil
}

// Get returns the live object for h
func (w *World) Get(h Handle) (*Object, bool) {
	o, ok := w.byHandle[h]
	return o, ok
}

// Objects returns live objects in insertion order
func (w *World) Objects() []*Object {
	return slices.Clone(w.objects)
}

// ObjectsByTag returns live objects carrying tag, in insertion order
func (w *World) ObjectsByTag(tag Tag) []*Object {
	var out []*Object
	for _, o := range w.objects {
		if o.tag == tag {
			out = append(out, o)
		}
	}
	return out
}

// Collidables returns the collidable index in insertion order
func (w *World) Collidables() []*Object {
	return slices.Clone(w.collidable)
}

// SetCollidable toggles collision eligibility of o and keeps the index in sync.
// The object must carry a collidable component.
func (w *World) SetCollidable(o *Object, on bool) error {
	if o.world != w {
		return fmt.Errorf("set collidable %s: %w", o, ErrUnknownHandle)
	}
	c, err := GetAs[Eligibility](o.components, KindCollidable)
	if err != nil {
		return err
	}
	c.SetEnabled(on)

	i := slices.Index(w.collidable, o)
	switch {
	case on && i < 0:
		w.insertCollidable(o)
	case !on && i >= 0:
		w.collidable = slices.Delete(w.collidable, i, i+1)
	}
	return nil
}

// insertCollidable keeps the index sorted by handle, which is insertion order
func (w *World) insertCollidable(o *Object) {
	i, _ := slices.BinarySearchFunc(w.collidable, o.handle, func(e *Object, h Handle) int {
		switch {
		case e.handle < h:
			return -1
		case e.handle > h:
			return 1
		}
		return 0
	})
	w.collidable = slices.Insert(w.collidable, i, o)
}

// Tick advances the world by dt seconds: controls, then collisions, then the removal flush
func (w *World) Tick(dt float64) {
	if w.ticking {
		panic("world: Tick called re-entrantly")
	}
	w.ticking = true
	defer func() { w.ticking = false }()

	w.tickCount++
	w.frontier = w.nextHandle

	w.runControls(dt)
	w.notifier.run(w)
	w.flush()
}

// eligible reports whether o takes part in the current tick's passes:
// attached before the tick began and not marked for removal by an earlier tick
func (w *World) eligible(o *Object) bool {
	if o.handle > w.frontier {
		return false
	}
	switch o.state {
	case StateActive:
		return true
	case StateMarkedForRemoval:
		return o.markedAt == w.tickCount
	}
	return false
}

// flush evicts every object in the removal queue.
// Detach hooks may queue further removals; they are drained in the same flush.
func (w *World) flush() {
	if len(w.pending) == 0 {
		return
	}

	evicted := make(map[Handle]struct{}, len(w.pending))
	for i := 0; i < len(w.pending); i++ {
		o := w.pending[i]
		h := o.handle
		o.teardown()
		delete(w.byHandle, h)
		evicted[h] = struct{}{}
		w.logger.Debug("remove",
			log.String("tag", string(o.tag)),
			log.Uint64("handle", uint64(h)),
			log.Uint64("tick", w.tickCount),
		)
	}
	w.pending = w.pending[:0]

	gone := func(o *Object) bool {
		_, ok := evicted[o.handle]
		return ok
	}
	w.objects = slices.DeleteFunc(w.objects, gone)
	w.collidable = slices.DeleteFunc(w.collidable, gone)
}

// Clear removes every live object immediately, firing detach hooks; used at session end
func (w *World) Clear() {
	for _, o := range w.objects {
		_ = w.RequestRemoval(o.handle)
	}
	w.flush()
}

func isCollidable(o *Object) bool {
	c, err := GetAs[Eligibility](o.components, KindCollidable)
	return err == nil && c.Enabled()
}
