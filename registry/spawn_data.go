package registry

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/lixenwraith/vi-runner/kv"
	"github.com/lixenwraith/vi-runner/vmath"
)

var ErrMissingField = errors.New("spawn field missing")

// SpawnData is an immutable origin plus named extra fields passed to a factory.
// Factories read only the fields they declare, through Decode and a kv.Binding.
type SpawnData struct {
	x, y   float64
	fields map[string]any
}

// NewSpawnData creates spawn parameters at (x, y)
func NewSpawnData(x, y float64) SpawnData {
	return SpawnData{x: x, y: y}
}

// FromMap creates spawn parameters at (x, y) carrying a copy of fields
func FromMap(x, y float64, fields map[string]any) SpawnData {
	return SpawnData{x: x, y: y, fields: maps.Clone(fields)}
}

func (d SpawnData) X() float64 { return d.x }
func (d SpawnData) Y() float64 { return d.y }

// Position returns the origin as a vector
func (d SpawnData) Position() vmath.Vec2 { return vmath.V2(d.x, d.y) }

// At returns a copy moved to (x, y)
func (d SpawnData) At(x, y float64) SpawnData {
	d.x, d.y = x, y
	return d
}

// With returns a copy with key set to value; the receiver is unchanged
func (d SpawnData) With(key string, value any) SpawnData {
	fields := make(map[string]any, len(d.fields)+1)
	maps.Copy(fields, d.fields)
	fields[key] = value
	d.fields = fields
	return d
}

// Keys returns the extra field names, sorted
func (d SpawnData) Keys() []string {
	return slices.Sorted(maps.Keys(d.fields))
}

// KV renders the extra fields as text entries in key order.
// Strings are kept verbatim, so "007" stays "007" until a binding declares it numeric.
func (d SpawnData) KV() *kv.File {
	f := kv.New()
	for _, k := range d.Keys() {
		f.Set(k, formatValue(d.fields[k]))
	}
	return f
}

func formatValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'g', -1, 32)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		return strconv.FormatBool(x)
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprint(v)
}

// Decode fills dst from the fields b declares; fields absent from d keep dst's values
// and fields b does not declare are left to other readers
func Decode[T any](d SpawnData, b *kv.Binding[T], dst *T) error {
	if err := b.DecodeDeclared(d.KV(), dst); err != nil {
		return fmt.Errorf("spawn data: %w", err)
	}
	return nil
}
