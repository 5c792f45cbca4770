package engine

import (
	"fmt"
	"slices"
)

// ComponentStore maps component kind to the single instance of that kind on an object
// Insertion order is kept so iteration is deterministic
type ComponentStore struct {
	byKind map[Kind]Component
	order  []Kind
}

// NewComponentStore creates an empty store
func NewComponentStore() *ComponentStore {
	return &ComponentStore{
		byKind: make(map[Kind]Component),
	}
}

// Add inserts c, failing with ErrDuplicateKind if its kind is present; the store is left unchanged on error
func (s *ComponentStore) Add(c Component) error {
	if c == nil {
		return fmt.Errorf("add component: %w", ErrNilValue)
	}
	kind := c.Kind()
	if _, exists := s.byKind[kind]; exists {
		return fmt.Errorf("add component %q: %w", kind, ErrDuplicateKind)
	}
	s.byKind[kind] = c
	s.order = append(s.order, kind)
	return nil
}

// Get returns the component of kind, or ErrComponentNotFound
func (s *ComponentStore) Get(kind Kind) (Component, error) {
	c, ok := s.byKind[kind]
	if !ok {
		return nil, fmt.Errorf("get component %q: %w", kind, ErrComponentNotFound)
	}
	return c, nil
}

// Has checks presence of kind
func (s *ComponentStore) Has(kind Kind) bool {
	_, ok := s.byKind[kind]
	return ok
}

// Remove deletes the component of kind; no-op when absent
func (s *ComponentStore) Remove(kind Kind) {
	if _, ok := s.byKind[kind]; !ok {
		return
	}
	delete(s.byKind, kind)
	if i := slices.Index(s.order, kind); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}
}

// Kinds returns present kinds in insertion order
func (s *ComponentStore) Kinds() []Kind {
	return slices.Clone(s.order)
}

// Len returns the number of components held
func (s *ComponentStore) Len() int {
	return len(s.order)
}

// clear drops every component, used on object teardown
func (s *ComponentStore) clear() {
	clear(s.byKind)
	s.order = s.order[:0]
}

// GetAs fetches the component of kind and asserts it to T
func GetAs[T Component](s *ComponentStore, kind Kind) (T, error) {
	var zero T
	c, err := s.Get(kind)
	if err != nil {
		return zero, err
	}
	typed, ok := c.(T)
	if !ok {
		return zero, fmt.Errorf("component %q has type %T, want %T", kind, c, zero)
	}
	return typed, nil
}
