// Package patch provides tri-state fields for partial updates: absent,
// explicitly null, or set to a value.
package patch

import (
	"bytes"
	"encoding/json"
)

// Field records whether a JSON key was present and whether it was null.
type Field[T any] struct {
	Present bool
	Null    bool
	Value   T
}

// Set returns a present, non-null field.
func Set[T any](v T) Field[T] {
	return Field[T]{Present: true, Value: v}
}

// Clear returns a present, null field.
func Clear[T any]() Field[T] {
	return Field[T]{Present: true, Null: true}
}

// UnmarshalJSON is only invoked when the key exists in the payload.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Present = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		f.Null = true
		var zero T
		f.Value = zero
		return nil
	}
	f.Null = false
	return json.Unmarshal(data, &f.Value)
}

// MarshalJSON writes null for absent or null fields.
func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.Present || f.Null {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// HasValue reports present and non-null.
func (f Field[T]) HasValue() bool { return f.Present && !f.Null }

// Ptr returns nil for null, a pointer to the value otherwise. Only meaningful when Present.
func (f Field[T]) Ptr() *T {
	if f.Null {
		return nil
	}
	v := f.Value
	return &v
}

// Apply writes the field into dst when present. Null clears dst to nil.
func (f Field[T]) Apply(dst **T) {
	if !f.Present {
		return
	}
	*dst = f.Ptr()
}

// ApplyValue writes a present, non-null field into a non-nullable dst.
func (f Field[T]) ApplyValue(dst *T) {
	if f.HasValue() {
		*dst = f.Value
	}
}
