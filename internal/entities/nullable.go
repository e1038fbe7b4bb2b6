package entities

import (
	"bytes"
	"encoding/json"
)

// Nullable distinguishes the three states of an optional JSON field:
// absent (Set == false), explicit null (Set && !Valid) and a value.
type Nullable[T any] struct {
	Value T
	Valid bool
	Set   bool
}

// NewNullable returns a Nullable holding v.
func NewNullable[T any](v T) Nullable[T] {
	return Nullable[T]{Value: v, Valid: true, Set: true}
}

// Null returns an explicitly null Nullable.
func Null[T any]() Nullable[T] {
	return Nullable[T]{Set: true}
}

func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		n.Value = zero
		n.Valid = false
		return nil
	}
	if err := json.Unmarshal(data, &n.Value); err != nil {
		return err
	}
	n.Valid = true
	return nil
}

func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// IsNull reports an explicit null.
func (n Nullable[T]) IsNull() bool {
	return n.Set && !n.Valid
}

// Ptr returns a pointer to the value, or nil when unset or null.
func (n Nullable[T]) Ptr() *T {
	if !n.Valid {
		return nil
	}
	v := n.Value
	return &v
}

// Merge applies the field to current: unset keeps current, null clears it,
// a value replaces it.
func (n Nullable[T]) Merge(current *T) *T {
	if !n.Set {
		return current
	}
	return n.Ptr()
}
