package registry

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/lixenwraith/vi-runner/engine"
	"github.com/lixenwraith/vi-runner/log"
)

var (
	ErrDuplicateType = errors.New("spawn type already registered")
	ErrSealed        = errors.New("registry is sealed")
	ErrUnknownType   = errors.New("no such spawn type")
	ErrInvalidEntry  = errors.New("invalid registry entry")
)

// Factory assembles a spawned, unattached object from spawn parameters
type Factory func(SpawnData) (*engine.Object, error)

// Entry is one row of the startup spawn table
type Entry struct {
	Name    string
	Factory Factory
}

// Option configures a Registry
type Option func(*Registry)

// WithLogger sets the registry logger
func WithLogger(l *log.Logger) Option {
	return func(r *Registry) { r.logger = log.OrNop(l).Named("registry") }
}

// Registry maps spawn type names to factories.
// Populated once at startup, then sealed and read-only.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	sealed    bool
	logger    *log.Logger
}

// New creates an empty, open registry
func New(opts ...Option) *Registry {
	r := &Registry{
		factories: make(map[string]Factory),
		logger:    log.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Load registers a fixed table in order and seals the registry
func Load(entries []Entry, opts ...Option) (*Registry, error) {
	r := New(opts...)
	for _, e := range entries {
		if err := r.Register(e.Name, e.Factory); err != nil {
			return nil, err
		}
	}
	r.Seal()
	return r, nil
}

// Register adds a factory by name
func (r *Registry) Register(name string, f Factory) error {
	if name == "" || f == nil {
		return fmt.Errorf("register %q: %w", name, ErrInvalidEntry)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sealed {
		return fmt.Errorf("register %q: %w", name, ErrSealed)
	}
	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("register %q: %w", name, ErrDuplicateType)
	}
	r.factories[name] = f
	r.logger.Debug("registered", log.String("type", name))
	return nil
}

// Seal makes the registry read-only
func (r *Registry) Seal() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sealed = true
}

// Spawn builds a new object of the named type; the world is not involved
func (r *Registry) Spawn(name string, data SpawnData) (*engine.Object, error) {
	r.mu.RLock()
	f, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("spawn %q: %w", name, ErrUnknownType)
	}

	o, err := f(data)
	if err != nil {
		return nil, fmt.Errorf("spawn %q: %w", name, err)
	}
	if o == nil {
		return nil, fmt.Errorf("spawn %q: factory returned no object: %w", name, ErrInvalidEntry)
	}
	r.logger.Debug("spawned",
		log.String("type", name),
		log.Float64("x", data.X()),
		log.Float64("y", data.Y()),
	)
	return o, nil
}

// SpawnAndAttach spawns and attaches the result to w
func (r *Registry) SpawnAndAttach(w *engine.World, name string, data SpawnData) (*engine.Object, error) {
	if w == nil {
		return nil, fmt.Errorf("spawn %q: world: %w", name, engine.ErrNilValue)
	}
	o, err := r.Spawn(name, data)
	if err != nil {
		return nil, err
	}
	if _, err := w.Attach(o); err != nil {
		return nil, fmt.Errorf("spawn %q: %w", name, err)
	}
	return o, nil
}

// Has reports whether name is registered
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[name]
	return ok
}

// Names returns all registered names, sorted
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
