package registry

import (
	"fmt"
	"strconv"

	"github.com/lixenwraith/vi-runner/kv"
)

// FromKV converts a kv file into spawn data. Keys x and y are required and set the
// origin; every other value is kept as text for the factory's binding to convert.
func FromKV(f *kv.File) (SpawnData, error) {
	var d SpawnData
	var hasX, hasY bool
	fields := make(map[string]any, f.Len())

	for _, e := range f.Entries() {
		switch e.Key {
		case "x", "y":
			v, err := strconv.ParseFloat(e.Value, 64)
			if err != nil {
				return SpawnData{}, &kv.FieldError{Line: e.Line, Field: e.Key, Value: e.Value, Err: err}
			}
			if e.Key == "x" {
				d.x, hasX = v, true
			} else {
				d.y, hasY = v, true
			}
		default:
			fields[e.Key] = e.Value
		}
	}
	if !hasX || !hasY {
		return SpawnData{}, fmt.Errorf("spawn data needs x and y: %w", ErrMissingField)
	}
	if len(fields) > 0 {
		d.fields = fields
	}
	return d, nil
}
