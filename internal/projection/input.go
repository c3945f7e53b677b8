// Package projection shapes entities into response bodies and merges request
// bodies onto entities.
package projection

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// Input is a request body that can be merged onto an entity of type T.
// Fields left out of the request keep the entity's current value.
type Input[T any] interface {
	Apply(*T)
}

// Nullable is an optional JSON field that tells an absent key apart from an
// explicit null.
type Nullable[T any] struct {
	Set   bool
	Valid bool
	Value T
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Valid = false
		return nil
	}
	if err := json.Unmarshal(data, &n.Value); err != nil {
		return err
	}
	n.Valid = true
	return nil
}

// MarshalJSON implements json.Marshaler.
func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// Ptr returns the value, or nil for null.
func (n Nullable[T]) Ptr() *T {
	if !n.Valid {
		return nil
	}
	v := n.Value
	return &v
}

// Of returns a present, non-null field holding v.
func Of[T any](v T) Nullable[T] {
	return Nullable[T]{Set: true, Valid: true, Value: v}
}

func set[V any](dst *V, src *V) {
	if src != nil {
		*dst = *src
	}
}

func setNullable[V any](dst **V, src Nullable[V]) {
	if src.Set {
		*dst = src.Ptr()
	}
}

func setList(dst *datatypes.JSONSlice[string], src *[]string) {
	if src == nil {
		return
	}
	if *src == nil {
		*dst = datatypes.JSONSlice[string]{}
		return
	}
	*dst = datatypes.JSONSlice[string](*src)
}

func list(src datatypes.JSONSlice[string]) []string {
	if src == nil {
		return []string{}
	}
	return []string(src)
}
