package kv

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	ErrUnknownField = errors.New("kv unknown field")
	ErrFieldValue   = errors.New("kv invalid field value")
)

// FieldError reports a value that could not be converted to its bound field type
type FieldError struct {
	Line  int
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("kv field %q: cannot use %q: %v", e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("kv line %d: field %q: cannot use %q: %v", e.Line, e.Field, e.Value, e.Err)
}

func (e *FieldError) Unwrap() []error { return []error{ErrFieldValue, e.Err} }

type field[T any] struct {
	name   string
	decode func(dst *T, value string) error
	encode func(src *T) string
}

// Binding maps kv keys to fields of T through explicit accessors
type Binding[T any] struct {
	fields []field[T]
	index  map[string]int
}

// NewBinding creates an empty binding for T
func NewBinding[T any]() *Binding[T] {
	return &Binding[T]{index: make(map[string]int)}
}

func (b *Binding[T]) add(f field[T]) *Binding[T] {
	if _, dup := b.index[f.name]; dup {
		panic(fmt.Sprintf("kv: field %q bound twice", f.name))
	}
	b.index[f.name] = len(b.fields)
	b.fields = append(b.fields, f)
	return b
}

// Float binds name to a float64 field
func (b *Binding[T]) Float(name string, ptr func(*T) *float64) *Binding[T] {
	return b.add(field[T]{
		name: name,
		decode: func(dst *T, v string) error {
			n, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return err
			}
			*ptr(dst) = n
			return nil
		},
		encode: func(src *T) string { return strconv.FormatFloat(*ptr(src), 'g', -1, 64) },
	})
}

// Int binds name to an int field
func (b *Binding[T]) Int(name string, ptr func(*T) *int) *Binding[T] {
	return b.add(field[T]{
		name: name,
		decode: func(dst *T, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return err
			}
			*ptr(dst) = n
			return nil
		},
		encode: func(src *T) string { return strconv.Itoa(*ptr(src)) },
	})
}

// Bool binds name to a bool field
func (b *Binding[T]) Bool(name string, ptr func(*T) *bool) *Binding[T] {
	return b.add(field[T]{
		name: name,
		decode: func(dst *T, v string) error {
			x, err := strconv.ParseBool(v)
			if err != nil {
				return err
			}
			*ptr(dst) = x
			return nil
		},
		encode: func(src *T) string { return strconv.FormatBool(*ptr(src)) },
	})
}

// String binds name to a string field
func (b *Binding[T]) String(name string, ptr func(*T) *string) *Binding[T] {
	return b.add(field[T]{
		name: name,
		decode: func(dst *T, v string) error {
			*ptr(dst) = v
			return nil
		},
		encode: func(src *T) string { return *ptr(src) },
	})
}

// Fields returns bound names in declaration order
func (b *Binding[T]) Fields() []string {
	out := make([]string, len(b.fields))
	for i, f := range b.fields {
		out[i] = f.name
	}
	return out
}

// Decode applies every entry of f to dst in file order.
// Fields not present in f keep their current value; unbound keys are an error.
func (b *Binding[T]) Decode(f *File, dst *T) error {
	return b.decode(f, dst, true)
}

// DecodeDeclared is Decode for files shared by several readers: unbound keys are skipped
func (b *Binding[T]) DecodeDeclared(f *File, dst *T) error {
	return b.decode(f, dst, false)
}

func (b *Binding[T]) decode(f *File, dst *T, strict bool) error {
	for _, e := range f.entries {
		i, ok := b.index[e.Key]
		if !ok {
			if !strict {
				continue
			}
			return fmt.Errorf("kv line %d: %q: %w", e.Line, e.Key, ErrUnknownField)
		}
		if err := b.fields[i].decode(dst, e.Value); err != nil {
			return &FieldError{Line: e.Line, Field: e.Key, Value: e.Value, Err: err}
		}
	}
	return nil
}

// Encode writes every bound field of src in declaration order
func (b *Binding[T]) Encode(src *T) *File {
	f := New()
	for _, fd := range b.fields {
		f.entries = append(f.entries, Entry{Key: fd.name, Value: fd.encode(src)})
	}
	return f
}
